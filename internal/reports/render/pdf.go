package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rotisserie/eris"

	"aerogap-backend/internal/assessment"
)

const (
	pageW    = 595.0
	pageH    = 842.0
	margin   = 50.0
	contentW = pageW - 2*margin

	footerText = "© %d AeroGap | Confidential"
)

type rgb struct{ r, g, b int }

var (
	navy      = rgb{30, 41, 59}
	skyBlue   = rgb{14, 165, 233}
	gold      = rgb{245, 158, 11}
	textColor = rgb{51, 51, 51}
	grayText  = rgb{128, 128, 128}
	white     = rgb{255, 255, 255}
)

// scoreColor picks the bar color: green from 80, amber from 60, red below.
func scoreColor(score int) rgb {
	switch {
	case score >= 80:
		return rgb{0, 200, 0}
	case score >= 60:
		return rgb{255, 166, 0}
	default:
		return rgb{255, 0, 0}
	}
}

func severityColor(s assessment.Severity) rgb {
	switch s {
	case assessment.SeverityCritical:
		return rgb{220, 38, 38}
	case assessment.SeverityHigh:
		return rgb{255, 128, 0}
	case assessment.SeverityMedium:
		return rgb{234, 179, 8}
	default:
		return rgb{0, 128, 255}
	}
}

func priorityColor(p assessment.Priority) rgb {
	switch p {
	case assessment.PriorityHigh:
		return rgb{220, 38, 38}
	case assessment.PriorityMedium:
		return rgb{234, 179, 8}
	default:
		return rgb{22, 163, 74}
	}
}

type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (w pdfWriter) text(c rgb) { w.pdf.SetTextColor(c.r, c.g, c.b) }
func (w pdfWriter) fill(c rgb) { w.pdf.SetFillColor(c.r, c.g, c.b) }
func (w pdfWriter) draw(c rgb) { w.pdf.SetDrawColor(c.r, c.g, c.b) }

func (w pdfWriter) line(x float64, style string, size float64, c rgb, s string) {
	w.pdf.SetFont("Helvetica", style, size)
	w.text(c)
	w.pdf.SetX(x)
	w.pdf.MultiCell(pageW-margin-x, size*1.35, w.tr(s), "", "L", false)
}

// ensure starts a new page when fewer than need points remain.
func (w pdfWriter) ensure(need float64) {
	if w.pdf.GetY()+need > pageH-margin {
		w.pdf.AddPage()
	}
}

// PDF renders the report: a title page with the score, then the executive
// summary, gaps and recommendations.
func PDF(result assessment.Result) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle("Gap Analysis Report", true)
	pdf.SetCreator("AeroGap", true)

	w := pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	year := time.Now().Year()
	if t, ok := analysisTime(result.AnalysisDate); ok {
		year = t.Year()
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin + 10)
		pdf.SetFont("Helvetica", "", 8)
		w.text(grayText)
		pdf.CellFormat(contentW/2, 10, w.tr(fmt.Sprintf(footerText, year)), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW/2, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	titlePage(w, result)

	pdf.AddPage()
	w.line(margin, "B", 20, navy, "Identified Gaps & Recommendations")
	pdf.Ln(12)

	executiveSummary(w, result)
	gapsSection(w, result.Gaps)
	recommendationsSection(w, result.Recommendations)

	if err := pdf.Error(); err != nil {
		return nil, eris.Wrap(err, "layout pdf")
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, eris.Wrap(err, "write pdf")
	}
	return buf.Bytes(), nil
}

func titlePage(w pdfWriter, result assessment.Result) {
	pdf := w.pdf
	pdf.AddPage()
	w.fill(navy)
	pdf.Rect(0, 0, pageW, pageH, "F")

	pdf.SetY(margin + 10)
	w.line(margin, "B", 32, skyBlue, "AeroGap Assessment")
	pdf.Ln(8)
	w.line(margin, "B", 24, white, "Gap Analysis Report")
	pdf.Ln(60)
	w.line(margin, "", 20, white, result.CompanyName)
	pdf.Ln(4)
	w.line(margin, "", 12, grayText, "Analysis Date: "+displayDate(result.AnalysisDate))
	pdf.Ln(60)

	boxY := pdf.GetY()
	w.draw(skyBlue)
	pdf.SetLineWidth(2)
	pdf.Rect(margin, boxY, contentW, 100, "D")

	pdf.SetXY(margin+20, boxY+18)
	pdf.SetFont("Helvetica", "", 14)
	w.text(white)
	pdf.Cell(160, 16, "Overall Compliance Score")

	pdf.SetXY(margin+20, boxY+44)
	pdf.SetFont("Helvetica", "B", 36)
	w.text(gold)
	pdf.Cell(160, 36, fmt.Sprintf("%d%%", result.OverallScore))

	barW := (contentW - 220) * float64(clampScore(result.OverallScore)) / 100
	if barW > 0 {
		w.fill(scoreColor(result.OverallScore))
		pdf.Rect(margin+200, boxY+50, barW, 20, "F")
	}
	pdf.SetY(boxY + 120)

	if result.PotentialSavings != nil {
		w.line(margin, "", 12, white, "Estimated savings opportunity: "+*result.PotentialSavings)
	}
}

func executiveSummary(w pdfWriter, result assessment.Result) {
	if len(result.SummaryInsights) == 0 && result.AISummary == "" {
		return
	}
	w.line(margin, "B", 14, textColor, "Executive Summary")
	w.pdf.Ln(6)
	for _, insight := range result.SummaryInsights {
		w.ensure(30)
		w.line(margin+10, "", 10, textColor, "• "+insight)
	}
	if summary := strings.TrimSpace(result.AISummary); summary != "" {
		w.pdf.Ln(8)
		for _, para := range strings.Split(summary, "\n") {
			if para = strings.TrimSpace(para); para == "" {
				continue
			}
			w.ensure(30)
			w.line(margin+10, "", 10, textColor, para)
			w.pdf.Ln(4)
		}
	}
	w.pdf.Ln(16)
}

func badge(w pdfWriter, label string, c rgb) {
	pdf := w.pdf
	y := pdf.GetY()
	w.fill(c)
	pdf.Rect(margin, y, 60, 15, "F")
	pdf.SetXY(margin, y+1)
	pdf.SetFont("Helvetica", "B", 8)
	w.text(white)
	pdf.CellFormat(60, 13, strings.ToUpper(label), "", 0, "C", false, 0, "")
}

func gapsSection(w pdfWriter, gaps []assessment.Gap) {
	if len(gaps) == 0 {
		return
	}
	w.ensure(60)
	w.line(margin, "B", 14, textColor, "Identified Gaps")
	w.pdf.Ln(8)
	for _, g := range gaps {
		w.ensure(120)
		y := w.pdf.GetY()
		badge(w, string(g.Severity), severityColor(g.Severity))
		w.pdf.SetXY(margin+70, y)
		w.pdf.SetFont("Helvetica", "B", 11)
		w.text(textColor)
		w.pdf.MultiCell(contentW-70, 15, w.tr(g.Title), "", "L", false)
		w.pdf.Ln(3)

		w.line(margin+10, "", 9, grayText, "Category: "+g.Category)
		w.line(margin+10, "", 9, textColor, g.Description)
		if g.Impact != "" {
			w.pdf.Ln(3)
			w.line(margin+10, "B", 9, textColor, "Impact:")
			w.line(margin+10, "", 9, textColor, g.Impact)
		}
		if g.Recommendation != "" {
			w.pdf.Ln(3)
			w.line(margin+10, "B", 9, textColor, "Recommendation:")
			w.line(margin+10, "", 9, textColor, g.Recommendation)
		}
		w.pdf.Ln(14)
	}
}

func recommendationsSection(w pdfWriter, recs []assessment.Recommendation) {
	if len(recs) == 0 {
		return
	}
	w.ensure(80)
	w.pdf.Ln(10)
	w.line(margin, "B", 14, textColor, "Prioritized Recommendations")
	w.pdf.Ln(8)
	for _, r := range recs {
		w.ensure(100)
		y := w.pdf.GetY()
		badge(w, string(r.Priority), priorityColor(r.Priority))
		w.pdf.SetXY(margin+70, y)
		w.pdf.SetFont("Helvetica", "B", 11)
		w.text(textColor)
		w.pdf.MultiCell(contentW-70, 15, w.tr(r.Area), "", "L", false)
		w.pdf.Ln(5)

		w.line(margin+10, "", 9, textColor, r.Recommendation)
		w.pdf.Ln(3)
		if r.ExpectedImpact != "" {
			w.line(margin+10, "", 8, grayText, "Expected Impact: "+r.ExpectedImpact)
		}
		if r.ImplementationTimeline != "" {
			w.line(margin+10, "", 8, grayText, "Timeline: "+r.ImplementationTimeline)
		}
		if r.EstimatedCost != "" {
			w.line(margin+10, "", 8, grayText, "Estimated Cost: "+r.EstimatedCost)
		}
		w.pdf.Ln(14)
	}
}

func analysisTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func displayDate(s string) string {
	if t, ok := analysisTime(s); ok {
		return t.UTC().Format("January 2, 2006")
	}
	return s
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
