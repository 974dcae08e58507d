// Package timeutil holds calendar helpers shared by filters, the calendar and
// the CLI flags.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MonthLayout is the accepted --month flag format.
	MonthLayout = "2006-01"
	// DayLayout is the accepted --day flag format.
	DayLayout = "2006-01-02"
)

// StartOfMonth returns midnight on the first day of t's month in t's location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last representable millisecond of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Millisecond)
}

// MonthBounds returns the first and last instant of t's calendar month.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	return StartOfMonth(t), EndOfMonth(t)
}

// DayBounds returns the first and last instant of t's calendar day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1).Add(-time.Millisecond)
}

// DaysIn returns the number of days in t's month.
func DaysIn(t time.Time) int {
	return EndOfMonth(t).Day()
}

// ParseMonth parses "2006-01" in loc. Empty input yields the month of now.
func ParseMonth(v string, now time.Time) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return StartOfMonth(now), nil
	}
	t, err := time.ParseInLocation(MonthLayout, v, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, want YYYY-MM", v)
	}
	return t, nil
}

// ParseDay parses "2006-01-02" in now's location.
func ParseDay(v string, now time.Time) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, strings.TrimSpace(v), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q, want YYYY-MM-DD", v)
	}
	return t, nil
}
