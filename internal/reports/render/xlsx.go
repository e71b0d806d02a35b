package render

import (
	"bytes"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"aerogap-backend/internal/assessment"
)

const (
	SheetSummary         = "Summary"
	SheetGaps            = "Gaps"
	SheetRecommendations = "Recommendations"
)

var (
	gapHeader = []string{"ID", "Severity", "Category", "Title", "Description", "Impact", "Recommendation"}
	recHeader = []string{"ID", "Priority", "Area", "Recommendation", "Expected Impact", "Timeline", "Estimated Cost"}
)

// XLSX renders the result as a workbook with Summary, Gaps and
// Recommendations sheets.
func XLSX(result assessment.Result) ([]byte, error) {
	f := xlsx.NewFile()

	summary, err := f.AddSheet(SheetSummary)
	if err != nil {
		return nil, eris.Wrap(err, "add summary sheet")
	}
	savings := ""
	if result.PotentialSavings != nil {
		savings = *result.PotentialSavings
	}
	for _, kv := range [][2]string{
		{"Company", result.CompanyName},
		{"Analysis Date", result.AnalysisDate},
		{"Overall Score", fmt.Sprintf("%d", result.OverallScore)},
		{"Critical Gaps", fmt.Sprintf("%d", result.CountBySeverity(assessment.SeverityCritical))},
		{"High Gaps", fmt.Sprintf("%d", result.CountBySeverity(assessment.SeverityHigh))},
		{"Medium Gaps", fmt.Sprintf("%d", result.CountBySeverity(assessment.SeverityMedium))},
		{"Low Gaps", fmt.Sprintf("%d", result.CountBySeverity(assessment.SeverityLow))},
		{"Potential Savings", savings},
	} {
		addRow(summary, kv[0], kv[1])
	}
	for _, insight := range result.SummaryInsights {
		addRow(summary, "Insight", insight)
	}
	if result.AISummary != "" {
		addRow(summary, "Executive Summary", result.AISummary)
	}

	gaps, err := f.AddSheet(SheetGaps)
	if err != nil {
		return nil, eris.Wrap(err, "add gaps sheet")
	}
	addRow(gaps, gapHeader...)
	for _, g := range result.Gaps {
		addRow(gaps, g.ID, string(g.Severity), g.Category, g.Title, g.Description, g.Impact, g.Recommendation)
	}

	recs, err := f.AddSheet(SheetRecommendations)
	if err != nil {
		return nil, eris.Wrap(err, "add recommendations sheet")
	}
	addRow(recs, recHeader...)
	for _, r := range result.Recommendations {
		addRow(recs, r.ID, string(r.Priority), r.Area, r.Recommendation, r.ExpectedImpact, r.ImplementationTimeline, r.EstimatedCost)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, eris.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
