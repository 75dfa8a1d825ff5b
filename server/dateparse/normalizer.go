// Package dateparse implements the deterministic date logic behind the
// chrono tool server: normalization of free-form date text into canonical
// YYYY-MM-DD strings, and week-offset computation relative to a reference
// instant.
//
// Every function in this package is pure and total: any input string,
// including empty or malformed ones, yields a defined result and never a
// panic.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
)

// months maps full English month names to their zero-padded numerals.
// Abbreviations (jan, feb, ...) are deliberately not recognized.
var months = map[string]string{
	"january":   "01",
	"february":  "02",
	"march":     "03",
	"april":     "04",
	"may":       "05",
	"june":      "06",
	"july":      "07",
	"august":    "08",
	"september": "09",
	"october":   "10",
	"november":  "11",
	"december":  "12",
}

var (
	// numericRe matches YYYY<sep>M[M]<sep>D[D]. Go's regexp has no
	// backreferences, so both separators are captured and compared in code.
	numericRe = regexp.MustCompile(`^(\d{4})([-./_])(\d{1,2})([-./_])(\d{1,2})$`)

	// monthFirstRe matches "monthname day[st|nd|rd|th] year" after the
	// input has been lower-cased and stripped of commas.
	monthFirstRe = regexp.MustCompile(`^([a-z]+)\s+(\d{1,2})(?:st|nd|rd|th)?\s+(\d{4})$`)

	// dayFirstRe is the mirror image: "day[st|nd|rd|th] monthname year".
	dayFirstRe = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?\s+([a-z]+)\s+(\d{4})$`)
)

// ymd is the structured triple a matcher extracts from raw text. All parts
// are already zero-padded.
type ymd struct {
	year, month, day string
}

// matchFunc attempts to extract a date triple from trimmed input. The
// matcher set is ordered; the first successful match wins.
type matchFunc func(s string) (ymd, bool)

var matchers = []matchFunc{matchNumeric, matchMonthFirst, matchDayFirst}

// Normalize turns free-form date text into a canonical YYYY-MM-DD string.
// Inputs that match none of the accepted shapes yield "".
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, match := range matchers {
		if d, ok := match(s); ok {
			return d.year + "-" + d.month + "-" + d.day
		}
	}
	return ""
}

// matchNumeric handles the separator forms: 2025-06-01, 2025.6.1,
// 2025/06/01, 2025_06_01. The same separator must appear on both sides.
func matchNumeric(s string) (ymd, bool) {
	m := numericRe.FindStringSubmatch(s)
	if m == nil || m[2] != m[4] {
		return ymd{}, false
	}
	month, _ := strconv.Atoi(m[3])
	day, _ := strconv.Atoi(m[5])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return ymd{}, false
	}
	return ymd{year: m[1], month: pad2(m[3]), day: pad2(m[5])}, true
}

// matchMonthFirst handles "June 1st, 2025" style input. The ordinal suffix
// is consumed but ignored.
func matchMonthFirst(s string) (ymd, bool) {
	m := monthFirstRe.FindStringSubmatch(fold(s))
	if m == nil {
		return ymd{}, false
	}
	month, ok := months[m[1]]
	if !ok {
		return ymd{}, false
	}
	return ymd{year: m[3], month: month, day: pad2(m[2])}, true
}

// matchDayFirst handles "1st June 2025" style input.
func matchDayFirst(s string) (ymd, bool) {
	m := dayFirstRe.FindStringSubmatch(fold(s))
	if m == nil {
		return ymd{}, false
	}
	month, ok := months[m[2]]
	if !ok {
		return ymd{}, false
	}
	return ymd{year: m[3], month: month, day: pad2(m[1])}, true
}

// fold prepares input for the month-name matchers.
func fold(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), ",", "")
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
