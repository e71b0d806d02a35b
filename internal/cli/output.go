package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"aerogap-backend/internal/assessment"
)

func severityColor(s assessment.Severity) *color.Color {
	switch s {
	case assessment.SeverityCritical:
		return color.New(color.FgRed, color.Bold)
	case assessment.SeverityHigh:
		return color.New(color.FgRed)
	case assessment.SeverityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func priorityColor(p assessment.Priority) *color.Color {
	switch p {
	case assessment.PriorityHigh:
		return color.New(color.FgRed, color.Bold)
	case assessment.PriorityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

// scoreColor uses the report thresholds: green from 80, amber from 60.
func scoreColor(score int) *color.Color {
	switch {
	case score >= 80:
		return color.New(color.FgGreen, color.Bold)
	case score >= 60:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(w io.Writer, source string, r assessment.Result) {
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	cyan.Fprintf(w, "== %s ==\n", source)
	name := r.CompanyName
	if name == "" {
		name = "(unnamed organization)"
	}
	white.Fprintf(w, "%s\n", name)
	fmt.Fprintf(w, "Overall score: %s\n", scoreColor(r.OverallScore).Sprintf("%d%%", r.OverallScore))
	if r.PotentialSavings != nil {
		fmt.Fprintf(w, "Potential savings: %s\n", color.GreenString(*r.PotentialSavings))
	}

	fmt.Fprintf(w, "\nGaps (%d):\n", len(r.Gaps))
	if len(r.Gaps) == 0 {
		fmt.Fprintln(w, "  none identified")
	}
	for _, g := range r.Gaps {
		label := severityColor(g.Severity).Sprintf("[%s]", strings.ToUpper(string(g.Severity)))
		fmt.Fprintf(w, "  %s %s (%s)\n", label, g.Title, g.Category)
		fmt.Fprintf(w, "      %s\n", g.Description)
		if g.Recommendation != "" {
			fmt.Fprintf(w, "      Fix: %s\n", g.Recommendation)
		}
	}

	if len(r.Recommendations) > 0 {
		fmt.Fprintf(w, "\nRecommendations (%d):\n", len(r.Recommendations))
		for _, rec := range r.Recommendations {
			label := priorityColor(rec.Priority).Sprintf("[%s]", strings.ToUpper(string(rec.Priority)))
			fmt.Fprintf(w, "  %s %s: %s\n", label, rec.Area, rec.Recommendation)
			fmt.Fprintf(w, "      %s | %s\n", rec.ImplementationTimeline, rec.EstimatedCost)
		}
	}

	if len(r.SummaryInsights) > 0 {
		fmt.Fprintln(w, "\nInsights:")
		for _, s := range r.SummaryInsights {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
	fmt.Fprintln(w)
}

// progressBar draws share (0..1) as a fixed width bar.
func progressBar(share float64, width int) string {
	if share < 0 {
		share = 0
	}
	if share > 1 {
		share = 1
	}
	filled := int(share*float64(width) + 0.5)
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}

func newSpinner(w io.Writer, suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = suffix
	return s
}
