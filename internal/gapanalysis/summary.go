package gapanalysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"aerogap-backend/internal/assessment"
	"aerogap-backend/internal/llm"
)

const summarySystemPrompt = `You are an aviation maintenance quality consultant. Write a concise executive summary
of a Part 145 repair station gap analysis for the accountable manager. Use plain prose in two or three short
paragraphs, no headings or bullet lists. Refer only to the findings provided; do not invent regulations,
numbers or findings.`

const maxExcerptChars = 4000

// ExcerptSource returns short text excerpts of the supporting documents
// attached to an assessment.
type ExcerptSource interface {
	Excerpts(ctx context.Context, docs []assessment.UploadedDocument) []string
}

// LLMSummarizer asks a completion provider for the executive summary.
type LLMSummarizer struct {
	Client    llm.Client
	Documents ExcerptSource
	MaxTokens int64
}

// Summarize implements Summarizer.
func (s LLMSummarizer) Summarize(ctx context.Context, data assessment.Data, result assessment.Result) (string, error) {
	if s.Client == nil {
		return "", llm.ErrNotImplemented
	}
	var excerpts []string
	if s.Documents != nil && len(data.UploadedDocuments) > 0 {
		excerpts = s.Documents.Excerpts(ctx, data.UploadedDocuments)
	}
	out, err := s.Client.Complete(ctx, llm.Request{
		System:    summarySystemPrompt,
		Prompt:    SummaryPrompt(data, result, excerpts),
		MaxTokens: s.MaxTokens,
	})
	if err != nil {
		return "", eris.Wrap(err, "summarize gap analysis")
	}
	return out, nil
}

// SummaryPrompt renders the findings as the user turn of the summary request.
func SummaryPrompt(data assessment.Data, result assessment.Result, excerpts []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Organization: %s\n", result.CompanyName)
	if certs := data.SelectedCertifications(); len(certs) > 0 {
		fmt.Fprintf(&b, "Certifications: %s\n", strings.Join(certs, ", "))
	} else {
		b.WriteString("Certifications: none reported\n")
	}
	if data.EmployeeCount != "" {
		fmt.Fprintf(&b, "Employees: %s\n", data.EmployeeCount)
	}
	fmt.Fprintf(&b, "Overall compliance score: %d%%\n", result.OverallScore)
	if result.PotentialSavings != nil {
		fmt.Fprintf(&b, "Estimated savings opportunity: %s\n", *result.PotentialSavings)
	}

	b.WriteString("\nGaps:\n")
	if len(result.Gaps) == 0 {
		b.WriteString("- none identified\n")
	}
	for _, g := range result.Gaps {
		fmt.Fprintf(&b, "- [%s] %s (%s): %s\n", g.Severity, g.Title, g.Category, g.Description)
	}

	b.WriteString("\nRecommendations:\n")
	for _, r := range result.Recommendations {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", r.Priority, r.Area, r.Recommendation)
	}

	if concerns := strings.TrimSpace(data.SpecificConcerns); concerns != "" {
		fmt.Fprintf(&b, "\nConcerns raised by the organization: %s\n", concerns)
	}

	if len(excerpts) > 0 {
		b.WriteString("\nSupporting document excerpts:\n")
		remaining := maxExcerptChars
		for _, e := range excerpts {
			e = strings.TrimSpace(e)
			if e == "" || remaining <= 0 {
				continue
			}
			if len(e) > remaining {
				e = truncateBytes(e, remaining)
			}
			remaining -= len(e)
			fmt.Fprintf(&b, "---\n%s\n", e)
		}
	}
	return b.String()
}

// truncateBytes cuts s to at most maxBytes bytes, backing off to the last
// rune boundary so the result stays valid UTF-8.
func truncateBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := 0
	for i := range s {
		if i > maxBytes {
			break
		}
		cut = i
	}
	return s[:cut]
}
