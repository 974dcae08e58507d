package timeutil

import (
	"testing"
	"time"
)

func TestMonthBounds(t *testing.T) {
	now := time.Date(2024, time.February, 17, 13, 45, 0, 0, time.UTC)
	start, end := MonthBounds(now)
	if !start.Equal(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", start)
	}
	if !end.Equal(time.Date(2024, time.February, 29, 23, 59, 59, 999_000_000, time.UTC)) {
		t.Fatalf("unexpected end %v", end)
	}
	if DaysIn(now) != 29 {
		t.Fatalf("expected leap february, got %d days", DaysIn(now))
	}
}

func TestDayBounds(t *testing.T) {
	now := time.Date(2025, time.December, 31, 8, 0, 0, 0, time.UTC)
	start, end := DayBounds(now)
	if start.Day() != 31 || start.Hour() != 0 {
		t.Fatalf("unexpected start %v", start)
	}
	if end.Year() != 2025 || end.Day() != 31 || end.Hour() != 23 {
		t.Fatalf("unexpected end %v", end)
	}
}

func TestParseMonth(t *testing.T) {
	now := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	got, err := ParseMonth("", now)
	if err != nil || got.Month() != time.June || got.Day() != 1 {
		t.Fatalf("expected current month, got %v (%v)", got, err)
	}
	got, err = ParseMonth("2024-11", now)
	if err != nil || got.Month() != time.November || got.Year() != 2024 {
		t.Fatalf("unexpected month %v (%v)", got, err)
	}
	if _, err := ParseMonth("11/2024", now); err == nil {
		t.Fatalf("expected error for bad month")
	}
	if _, err := ParseDay("2024-11-31", now); err == nil {
		t.Fatalf("expected error for impossible day")
	}
}
