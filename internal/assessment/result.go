package assessment

// Severity ranks a gap.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Priority ranks a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Gap is a single finding produced by the rule engine.
type Gap struct {
	ID             string   `json:"id"`
	Category       string   `json:"category"`
	Severity       Severity `json:"severity"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Impact         string   `json:"impact"`
	Recommendation string   `json:"recommendation"`
}

// Recommendation is an improvement initiative suggested by the rule engine.
type Recommendation struct {
	ID                     string   `json:"id"`
	Priority               Priority `json:"priority"`
	Area                   string   `json:"area"`
	Recommendation         string   `json:"recommendation"`
	ExpectedImpact         string   `json:"expectedImpact"`
	ImplementationTimeline string   `json:"implementationTimeline"`
	EstimatedCost          string   `json:"estimatedCost"`
}

// Result is the outcome of a gap analysis run.
type Result struct {
	CompanyName      string           `json:"companyName"`
	AnalysisDate     string           `json:"analysisDate"`
	OverallScore     int              `json:"overallScore"`
	Gaps             []Gap            `json:"gaps"`
	Recommendations  []Recommendation `json:"recommendations"`
	PotentialSavings *string          `json:"potentialSavings,omitempty"`
	SummaryInsights  []string         `json:"summaryInsights"`
	AISummary        string           `json:"aiSummary,omitempty"`
}

// CountBySeverity returns how many gaps carry the given severity.
func (r Result) CountBySeverity(s Severity) int {
	n := 0
	for _, g := range r.Gaps {
		if g.Severity == s {
			n++
		}
	}
	return n
}
