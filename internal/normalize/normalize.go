// Package normalize turns free-text survey answers into numbers that rules can
// compare against thresholds. Every function is total: malformed input yields
// ok == false, never a panic or an error.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const unknownToken = "unknown"

var (
	percentRange = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*[-–]\s*(\d+(?:\.\d+)?)$`)
	moneyToken   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*([km])?`)
)

var overdueBuckets = map[string]int{
	"none":         0,
	"1-3 items":    2,
	"4-10 items":   7,
	"more than 10": 11,
}

// ParsePercent reads "85", "85%" or a range such as "80-90%" (midpoint).
func ParsePercent(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "%", ""))
	if s == "" || strings.EqualFold(s, unknownToken) {
		return 0, false
	}
	if m := percentRange.FindStringSubmatch(s); m != nil {
		lo, okLo := parseFinite(m[1])
		hi, okHi := parseFinite(m[2])
		if !okLo || !okHi {
			return 0, false
		}
		return (lo + hi) / 2, true
	}
	return parseFinite(s)
}

// ParseMoney reads amounts such as "$2,500,000", "$750K" or "$5M-$10M" and
// returns the average of every amount found.
func ParseMoney(raw string) (float64, bool) {
	s := strings.NewReplacer("$", "", ",", "").Replace(raw)
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(strings.ToLower(s), unknownToken) {
		return 0, false
	}
	matches := moneyToken.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return 0, false
	}
	var sum float64
	for _, m := range matches {
		v, ok := parseFinite(m[1])
		if !ok {
			return 0, false
		}
		switch strings.ToLower(m[2]) {
		case "k":
			v *= 1_000
		case "m":
			v *= 1_000_000
		}
		sum += v
	}
	return sum / float64(len(matches)), true
}

// MapOverdueCalibrations converts an overdue-calibration bucket label into a
// representative item count.
func MapOverdueCalibrations(raw string) (int, bool) {
	v, ok := overdueBuckets[strings.ToLower(strings.TrimSpace(raw))]
	return v, ok
}

func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
