// Package gapanalysis turns an assessment into scored gaps, recommendations
// and summary insights. The rule evaluation is deterministic and performs no
// I/O; only the optional executive summary reaches out to a provider.
package gapanalysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aerogap-backend/internal/assessment"
	"aerogap-backend/internal/normalize"
	"aerogap-backend/internal/shared/metrics"
	"aerogap-backend/internal/shared/telemetry"
)

const (
	// DefaultCompanyName is reported when the assessment has no company name.
	DefaultCompanyName = "Your Organization"

	// AnalysisDateLayout is RFC 3339 in UTC with millisecond precision.
	AnalysisDateLayout = "2006-01-02T15:04:05.000Z07:00"

	maxScore             = 100
	savingsRate          = 0.15
	savingsUpperMultiple = 1.3

	defaultSummaryTimeout = 20 * time.Second
)

// Summarizer writes an executive summary for a finished analysis.
type Summarizer interface {
	Summarize(ctx context.Context, data assessment.Data, result assessment.Result) (string, error)
}

// Analyzer runs the rule catalogue and the optional summarizer.
type Analyzer struct {
	Summarizer     Summarizer
	SummaryTimeout time.Duration
	Now            func() time.Time
}

// Analyze evaluates data. The only error returned is the caller's context
// error; summarizer failures leave AISummary empty.
func (a *Analyzer) Analyze(ctx context.Context, data assessment.Data) (assessment.Result, error) {
	if err := ctx.Err(); err != nil {
		return assessment.Result{}, err
	}

	start := time.Now()
	metrics.IncAnalysisStarted()
	result := Evaluate(data, a.now())
	metrics.ObserveAnalysisDurationMs(metrics.SinceMillis(start))
	for _, g := range result.Gaps {
		metrics.IncGap(string(g.Severity))
	}

	if a == nil || a.Summarizer == nil {
		metrics.IncAnalysisCompleted()
		return result, nil
	}

	timeout := a.SummaryTimeout
	if timeout <= 0 {
		timeout = defaultSummaryTimeout
	}
	sctx, cancel := context.WithTimeout(ctx, timeout)
	summary, err := a.Summarizer.Summarize(sctx, data, result)
	cancel()

	if ctxErr := ctx.Err(); ctxErr != nil {
		metrics.IncAnalysisFailed()
		return assessment.Result{}, ctxErr
	}
	if err != nil {
		metrics.IncSummaryFailed()
		telemetry.Warn("gapanalysis.summary_failed", map[string]any{
			"company": result.CompanyName,
			"error":   err.Error(),
		})
	} else {
		result.AISummary = strings.TrimSpace(summary)
	}
	metrics.IncAnalysisCompleted()
	return result, nil
}

func (a *Analyzer) now() time.Time {
	if a != nil && a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Evaluate applies the gap and recommendation catalogues to data.
func Evaluate(data assessment.Data, now time.Time) assessment.Result {
	gaps := make([]assessment.Gap, 0, len(gapRules))
	deductions := 0
	for _, rule := range gapRules {
		outcome, fired := rule.Trigger(data)
		if !fired {
			continue
		}
		deductions += outcome.Deduction
		gaps = append(gaps, rule.Gap(data, outcome))
	}

	recs := make([]assessment.Recommendation, 0, len(recommendationRules))
	for _, rule := range recommendationRules {
		if rule.When(data) {
			recs = append(recs, rule.Recommendation)
		}
	}

	company := strings.TrimSpace(data.CompanyName)
	if company == "" {
		company = DefaultCompanyName
	}

	result := assessment.Result{
		CompanyName:      company,
		AnalysisDate:     now.UTC().Format(AnalysisDateLayout),
		OverallScore:     Score(deductions),
		Gaps:             gaps,
		Recommendations:  recs,
		PotentialSavings: PotentialSavings(data.AnnualRevenue),
	}
	result.SummaryInsights = insights(result, len(data.UploadedDocuments))
	return result
}

// Score converts total deductions into a 0-100 compliance score.
func Score(deductions int) int {
	score := maxScore - deductions
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// PotentialSavings estimates the savings range from annual revenue, or nil
// when revenue is not a positive amount.
func PotentialSavings(annualRevenue string) *string {
	revenue, ok := normalize.ParseMoney(annualRevenue)
	if !ok || revenue <= 0 {
		return nil
	}
	low := revenue * savingsRate / 1e6
	high := revenue * savingsRate * savingsUpperMultiple / 1e6
	s := fmt.Sprintf("$%.1fM - $%.1fM", low, high)
	return &s
}

func insights(result assessment.Result, documents int) []string {
	critical := result.CountBySeverity(assessment.SeverityCritical)
	high := result.CountBySeverity(assessment.SeverityHigh)

	out := []string{
		fmt.Sprintf("Overall compliance score: %d%%", result.OverallScore),
		fmt.Sprintf("%d critical gaps requiring immediate attention", critical),
		fmt.Sprintf("%d high-priority gaps to address within 30-60 days", high),
	}
	if len(result.Gaps) > 0 {
		out = append(out, "Prioritized action plan provided in recommendations section")
	} else {
		out = append(out, "Strong compliance posture with minor improvement opportunities")
	}
	if documents > 0 {
		noun := "documents"
		if documents == 1 {
			noun = "document"
		}
		out = append(out, fmt.Sprintf("%d supporting %s provided for review", documents, noun))
	}
	return out
}
