package dateparse

import (
	"regexp"
	"time"
)

const week = 7 * 24 * time.Hour

// fallbackWeeks is returned for every validation failure in WeeksSince.
// The contract floors results at 1, so invalid input reports the same
// nominal offset as a future date instead of a distinct zero sentinel.
const fallbackWeeks = 1

var canonicalRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// WeeksSince returns the number of whole weeks elapsed between pastDate
// (a canonical YYYY-MM-DD string, interpreted as midnight UTC) and now,
// plus a baseline of 1. The result is never less than 1.
//
// Calendar validation is strict: shapes that pass the pattern check but
// name an impossible day, such as 2025-02-30, are treated as invalid.
// Dates in the future relative to now report exactly 1.
func WeeksSince(pastDate string, now time.Time) int {
	if !canonicalRe.MatchString(pastDate) {
		return fallbackWeeks
	}
	past, err := time.Parse("2006-01-02", pastDate)
	if err != nil {
		return fallbackWeeks
	}
	if past.After(now) {
		return 1
	}
	weeks := int(now.Sub(past)/week) + 1
	if weeks < 1 {
		weeks = 1
	}
	return weeks
}

// WeeksSinceYearStart returns the week count, baseline included, between
// January 1 of now's year and now. It resolves the "ytd" entry in the
// duration-extraction prompt's conversion table.
func WeeksSinceYearStart(now time.Time) int {
	now = now.UTC()
	jan1 := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	weeks := int(now.Sub(jan1)/week) + 1
	if weeks < 1 {
		weeks = 1
	}
	return weeks
}
