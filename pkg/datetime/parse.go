// Package datetime provides date and time utility functions.
package datetime

import (
	"math"
	"time"

	"github.com/realtydash/realty-dashboard/pkg/constants"
)

const (
	// DateLayout is the calendar-date format used for transaction dates.
	DateLayout = constants.DateLayout

	// MonthKeyLayout is the year-month format used for chart bucketing.
	MonthKeyLayout = constants.MonthKeyLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDay parses a YYYY-MM-DD transaction date.
func ParseDay(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// MonthKey returns the YYYY-MM bucket key for a date.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// MonthStart returns midnight on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// SameISOWeek reports whether two times fall in the same ISO-8601 week.
// ISO weeks are Thursday-anchored; the first week of a year is the one
// containing its first Thursday.
func SameISOWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

// SameMonth reports whether two times fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// SpanMonths converts the day span between min and max into a whole month
// count using the given days-per-month divisor, rounding up and never
// returning less than 1. The floor guards annualization against division by
// zero on single-day or empty datasets.
func SpanMonths(min, max time.Time, divisor float64) int {
	days := max.Sub(min).Hours() / 24
	months := int(math.Ceil(math.Abs(days) / divisor))
	if months < 1 {
		return 1
	}
	return months
}
