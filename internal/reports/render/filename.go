// Package render lays out gap analysis results as PDF reports and XLSX
// workbooks. Renderers are pure: they take a result and return bytes.
package render

import (
	"regexp"
	"strings"
)

const fallbackBaseName = "Gap_Analysis"

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	disallowedRune = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	underscoreRun  = regexp.MustCompile(`_+`)
)

// BaseName reduces a company name to [A-Za-z0-9_-], collapsing whitespace to
// single underscores.
func BaseName(company string) string {
	s := whitespaceRun.ReplaceAllString(company, "_")
	s = disallowedRune.ReplaceAllString(s, "")
	s = underscoreRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return fallbackBaseName
	}
	return s
}

// FileName returns the PDF report file name for a company.
func FileName(company string) string {
	return BaseName(company) + "_Report.pdf"
}

// WorkbookName returns the XLSX export file name for a company.
func WorkbookName(company string) string {
	return BaseName(company) + "_Report.xlsx"
}
