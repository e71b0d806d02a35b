package gapanalysis

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aerogap-backend/internal/assessment"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.FixedZone("EST", -5*3600))

func gapIDs(r assessment.Result) []string {
	ids := make([]string, 0, len(r.Gaps))
	for _, g := range r.Gaps {
		ids = append(ids, g.ID)
	}
	return ids
}

func recIDs(r assessment.Result) []string {
	ids := make([]string, 0, len(r.Recommendations))
	for _, rec := range r.Recommendations {
		ids = append(ids, rec.ID)
	}
	return ids
}

// cleanBaseline answers every question so that no gap rule fires.
func cleanBaseline() assessment.Data {
	return assessment.Data{
		CompanyName:         "Acme MRO",
		Certifications:      []string{assessment.CertFAAPart145},
		CAPASystemStatus:    assessment.CAPAFullyImplemented,
		TrainingProgramType: assessment.TrainingFormalProgram,
		CalibrationProgram:  assessment.CalibrationYes,
		FirstPassRate:       "92%",
		RecurringFindings:   assessment.RecurringNo,
		JobMargin:           "25%",
	}
}

func TestEvaluateCompanyOnly(t *testing.T) {
	res := Evaluate(assessment.Data{CompanyName: "Acme MRO"}, fixedNow)

	assert.LessOrEqual(t, res.OverallScore, 80)
	assert.Equal(t, 68, res.OverallScore)
	require.NotEmpty(t, res.Gaps)
	assert.Equal(t, "cert-1", res.Gaps[0].ID)
	assert.Equal(t, assessment.SeverityCritical, res.Gaps[0].Severity)
	assert.Equal(t, []string{"cert-1", "training-1"}, gapIDs(res))
	assert.Equal(t, "Acme MRO", res.CompanyName)
}

func TestEvaluateCleanAssessmentScoresFull(t *testing.T) {
	res := Evaluate(cleanBaseline(), fixedNow)

	assert.Empty(t, res.Gaps)
	assert.Equal(t, 100, res.OverallScore)
	assert.Contains(t, res.SummaryInsights, "Strong compliance posture with minor improvement opportunities")
}

func TestEvaluateEmptyRecord(t *testing.T) {
	res := Evaluate(assessment.Data{}, fixedNow)

	assert.Equal(t, DefaultCompanyName, res.CompanyName)
	assert.Equal(t, "2026-03-14T14:30:00.000Z", res.AnalysisDate)
	assert.Nil(t, res.PotentialSavings)
	assert.GreaterOrEqual(t, res.OverallScore, 0)
	assert.LessOrEqual(t, res.OverallScore, 100)
	assert.Contains(t, recIDs(res), "rec-4")
}

func TestEachRuleDeductsItsWeight(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*assessment.Data)
		id        string
		severity  assessment.Severity
		deduction int
	}{
		{"no certifications", func(d *assessment.Data) { d.Certifications = []string{assessment.CertNone} }, "cert-1", assessment.SeverityCritical, 20},
		{"isbao stage missing", func(d *assessment.Data) {
			d.Certifications = append(d.Certifications, assessment.CertISBAO)
			d.ISBAOStage = assessment.NotApplicable
		}, "cert-2", assessment.SeverityMedium, 3},
		{"isbao stage 1", func(d *assessment.Data) { d.ISBAOStage = assessment.ISBAOStage1 }, "cert-3", assessment.SeverityMedium, 3},
		{"wyvern unspecified", func(d *assessment.Data) {
			d.Certifications = append(d.Certifications, assessment.CertWyvernWingman)
		}, "cert-4", assessment.SeverityLow, 2},
		{"no capa", func(d *assessment.Data) { d.CAPASystemStatus = assessment.CAPANone }, "quality-1", assessment.SeverityCritical, 15},
		{"capa partial", func(d *assessment.Data) { d.CAPASystemStatus = assessment.CAPAPartiallyImplemented }, "quality-2", assessment.SeverityHigh, 10},
		{"capa in development", func(d *assessment.Data) { d.CAPASystemStatus = assessment.CAPAInDevelopment }, "quality-2", assessment.SeverityHigh, 10},
		{"capa implemented", func(d *assessment.Data) { d.CAPASystemStatus = assessment.CAPAImplemented }, "quality-3", assessment.SeverityMedium, 6},
		{"training unset", func(d *assessment.Data) { d.TrainingProgramType = "" }, "training-1", assessment.SeverityHigh, 12},
		{"training ojt", func(d *assessment.Data) { d.TrainingProgramType = assessment.TrainingOJTOnly }, "training-1", assessment.SeverityHigh, 12},
		{"no calibration", func(d *assessment.Data) { d.CalibrationProgram = assessment.CalibrationNo }, "calibration-1", assessment.SeverityCritical, 15},
		{"overdue calibration", func(d *assessment.Data) { d.OverdueCalibrations = assessment.Overdue4To10 }, "calibration-1", assessment.SeverityHigh, 8},
		{"partial calibration", func(d *assessment.Data) { d.CalibrationProgram = assessment.CalibrationPartially }, "calibration-2", assessment.SeverityHigh, 8},
		{"no tool control", func(d *assessment.Data) { d.ToolControlMethod = assessment.ToolControlNone }, "tool-1", assessment.SeverityHigh, 10},
		{"tool errors", func(d *assessment.Data) { d.ToolControlErrors = assessment.AnswerYes }, "tool-1", assessment.SeverityMedium, 5},
		{"first pass very low", func(d *assessment.Data) { d.FirstPassRate = "60-70%" }, "production-1", assessment.SeverityHigh, 8},
		{"first pass low", func(d *assessment.Data) { d.FirstPassRate = "80%" }, "production-1", assessment.SeverityMedium, 5},
		{"recurring findings", func(d *assessment.Data) { d.RecurringFindings = assessment.RecurringYes }, "audit-1", assessment.SeverityCritical, 15},
		{"some recurring findings", func(d *assessment.Data) { d.RecurringFindings = assessment.RecurringSome }, "audit-1", assessment.SeverityHigh, 8},
		{"low margin", func(d *assessment.Data) { d.JobMargin = "10%" }, "financial-1", assessment.SeverityMedium, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := cleanBaseline()
			tc.mutate(&data)
			res := Evaluate(data, fixedNow)

			require.Len(t, res.Gaps, 1, "gaps: %v", gapIDs(res))
			assert.Equal(t, tc.id, res.Gaps[0].ID)
			assert.Equal(t, tc.severity, res.Gaps[0].Severity)
			assert.Equal(t, 100-tc.deduction, res.OverallScore)
		})
	}
}

func TestUnparsableValuesNeverTrigger(t *testing.T) {
	data := cleanBaseline()
	data.FirstPassRate = "Unknown"
	data.JobMargin = "about a third"
	data.OverdueCalibrations = assessment.OverdueUnknown
	data.TurnoverRate = "n/a"

	res := Evaluate(data, fixedNow)
	assert.Empty(t, res.Gaps)
	assert.Equal(t, 100, res.OverallScore)
	assert.NotContains(t, recIDs(res), "rec-1")
}

func TestScoreClampsAtZero(t *testing.T) {
	data := assessment.Data{
		ISBAOStage:          assessment.ISBAOStage1,
		CAPASystemStatus:    assessment.CAPANone,
		TrainingProgramType: assessment.TrainingMinimal,
		CalibrationProgram:  assessment.CalibrationNo,
		ToolControlMethod:   assessment.ToolControlNone,
		FirstPassRate:       "50%",
		RecurringFindings:   assessment.RecurringYes,
		JobMargin:           "5%",
	}
	res := Evaluate(data, fixedNow)
	// 20+3+15+12+15+10+8+15+5 exceeds the maximum
	assert.Len(t, res.Gaps, 9)
	assert.Equal(t, 0, res.OverallScore)
	assert.Equal(t, 0, Score(120))
	assert.Equal(t, 100, Score(-5))
}

func TestRecommendations(t *testing.T) {
	data := cleanBaseline()
	data.MaintenanceTrackingSoftware = []string{"CAMP"}
	data.SoftwareSatisfaction = assessment.SatisfactionSatisfied
	data.PartsInventoryMethod = assessment.InventoryComputerized
	data.InventoryAccuracy = assessment.Accuracy95To100
	assert.Equal(t, []string{"rec-4"}, recIDs(Evaluate(data, fixedNow)))

	data.TurnoverRate = "20%"
	data.SoftwareSatisfaction = "very dissatisfied"
	data.InventoryAccuracy = assessment.Accuracy85To94
	assert.Equal(t, []string{"rec-1", "rec-2", "rec-3", "rec-4"}, recIDs(Evaluate(data, fixedNow)))

	noneOnly := cleanBaseline()
	noneOnly.MaintenanceTrackingSoftware = []string{"None"}
	noneOnly.SoftwareSatisfaction = assessment.SatisfactionVerySatisfied
	assert.Contains(t, recIDs(Evaluate(noneOnly, fixedNow)), "rec-2")

	spreadsheet := cleanBaseline()
	spreadsheet.InventoryAccuracy = assessment.Accuracy95To100
	spreadsheet.PartsInventoryMethod = assessment.InventoryManualPaper
	assert.Contains(t, recIDs(Evaluate(spreadsheet, fixedNow)), "rec-3")
}

func TestPotentialSavings(t *testing.T) {
	got := PotentialSavings("$5M-$10M")
	require.NotNil(t, got)
	assert.Equal(t, "$1.1M - $1.5M", *got)

	assert.Nil(t, PotentialSavings(""))
	assert.Nil(t, PotentialSavings("Unknown"))
	assert.Nil(t, PotentialSavings("$0"))
}

func TestSummaryInsights(t *testing.T) {
	data := assessment.Data{
		CompanyName:       "Acme MRO",
		CAPASystemStatus:  assessment.CAPANone,
		UploadedDocuments: []assessment.UploadedDocument{{FileName: "rsm.pdf"}, {FileName: "qcm.docx"}},
	}
	res := Evaluate(data, fixedNow)

	assert.Equal(t, []string{
		"Overall compliance score: 53%",
		"2 critical gaps requiring immediate attention",
		"1 high-priority gaps to address within 30-60 days",
		"Prioritized action plan provided in recommendations section",
		"2 supporting documents provided for review",
	}, res.SummaryInsights)
}

func TestEvaluateDeterministic(t *testing.T) {
	data := cleanBaseline()
	data.CAPASystemStatus = assessment.CAPAImplemented
	data.AnnualRevenue = "$2,000,000"
	first := Evaluate(data, fixedNow)
	second := Evaluate(data, fixedNow)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results for identical input")
	}
}

func TestGapDetailInterpolatesAnswer(t *testing.T) {
	data := cleanBaseline()
	data.FirstPassRate = "75%"
	data.JobMargin = "12%"
	res := Evaluate(data, fixedNow)
	require.Len(t, res.Gaps, 2)
	assert.Equal(t, "First pass rate of 75% is below industry standard of 85-95%.", res.Gaps[0].Description)
	assert.Equal(t, "Job margins of 12% are below industry standard of 20-30%.", res.Gaps[1].Description)
}

type stubSummarizer struct {
	out   string
	err   error
	block bool
	calls int
}

func (s *stubSummarizer) Summarize(ctx context.Context, data assessment.Data, result assessment.Result) (string, error) {
	s.calls++
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.out, s.err
}

func TestAnalyzeAddsSummary(t *testing.T) {
	sum := &stubSummarizer{out: "  Executive summary.  "}
	a := &Analyzer{Summarizer: sum, Now: func() time.Time { return fixedNow }}

	res, err := a.Analyze(context.Background(), cleanBaseline())
	require.NoError(t, err)
	assert.Equal(t, "Executive summary.", res.AISummary)
	assert.Equal(t, 1, sum.calls)
}

func TestAnalyzeSwallowsSummarizerFailure(t *testing.T) {
	a := &Analyzer{Summarizer: &stubSummarizer{err: errors.New("provider down")}}

	res, err := a.Analyze(context.Background(), assessment.Data{CompanyName: "Acme MRO"})
	require.NoError(t, err)
	assert.Empty(t, res.AISummary)
	assert.Equal(t, 68, res.OverallScore)
}

func TestAnalyzeSummarizerTimeout(t *testing.T) {
	a := &Analyzer{Summarizer: &stubSummarizer{block: true}, SummaryTimeout: 10 * time.Millisecond}

	res, err := a.Analyze(context.Background(), cleanBaseline())
	require.NoError(t, err)
	assert.Empty(t, res.AISummary)
	assert.Equal(t, 100, res.OverallScore)
}

func TestAnalyzeCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var a Analyzer
	_, err := a.Analyze(ctx, cleanBaseline())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeWithoutSummarizer(t *testing.T) {
	var a Analyzer
	res, err := a.Analyze(context.Background(), cleanBaseline())
	require.NoError(t, err)
	assert.Empty(t, res.AISummary)
	assert.True(t, strings.HasSuffix(res.AnalysisDate, "Z"))
}
