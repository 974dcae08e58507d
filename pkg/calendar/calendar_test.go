package calendar

import (
	"reflect"
	"testing"
	"time"

	"tableflip.dev/diary/pkg/entry"
)

func at(day, hour int) entry.Timestamp {
	return entry.Timestamp{Time: time.Date(2025, time.March, day, hour, 0, 0, 0, time.UTC)}
}

func march() Month {
	ref := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	return Build(ref, []entry.Entry{
		{ID: "a", Mood: entry.Happy, CreatedAt: at(3, 8)},
		{ID: "b", Mood: entry.Sad, CreatedAt: at(3, 12)},
		{ID: "c", Mood: entry.Angry, CreatedAt: at(3, 18)},
		{ID: "d", Mood: entry.Party, CreatedAt: at(3, 22)},
		{ID: "e", Mood: entry.Sleepy, CreatedAt: at(9, 7)},
		{ID: "feb", Mood: entry.Happy, CreatedAt: entry.Timestamp{Time: time.Date(2025, time.February, 28, 9, 0, 0, 0, time.UTC)}},
	})
}

func TestWeeksGrid(t *testing.T) {
	m := march()
	weeks := m.Weeks(time.Date(2025, time.March, 9, 10, 0, 0, 0, time.UTC))

	// March 2025 starts on a Saturday and needs six rows.
	if len(weeks) != 6 {
		t.Fatalf("expected 6 weeks, got %d", len(weeks))
	}
	if weeks[0][5].Day != 0 || weeks[0][6].Day != 1 {
		t.Errorf("the 1st should fall on Saturday: %+v", weeks[0])
	}
	third := weeks[1][1]
	if third.Day != 3 || third.Count != 4 {
		t.Fatalf("unexpected cell for the 3rd: %+v", third)
	}
	if want := []entry.Mood{entry.Happy, entry.Sad, entry.Angry}; !reflect.DeepEqual(third.Moods, want) {
		t.Errorf("expected first three moods %v, got %v", want, third.Moods)
	}
	if !weeks[2][0].Today || weeks[2][0].Day != 9 {
		t.Errorf("the 9th should be today: %+v", weeks[2][0])
	}
	if m.Total() != 5 {
		t.Errorf("february entry must be ignored, total %d", m.Total())
	}
	if m.Title() != "March 2025" {
		t.Errorf("unexpected title %q", m.Title())
	}
}

func TestPick(t *testing.T) {
	m := march()

	if a := m.Pick(1); a.Kind != ActionNew || a.Date.Day() != 1 {
		t.Errorf("empty day should start a new entry, got %+v", a)
	}
	if a := m.Pick(9); a.Kind != ActionEdit || a.EntryID != "e" {
		t.Errorf("single entry should open it, got %+v", a)
	}
	a := m.Pick(3)
	if a.Kind != ActionList {
		t.Fatalf("several entries should list, got %v", a.Kind)
	}
	if !a.Query.StartDate.Equal(time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %v", a.Query.StartDate)
	}
	if !a.Query.EndDate.Equal(time.Date(2025, time.March, 3, 23, 59, 59, 999_000_000, time.UTC)) {
		t.Errorf("unexpected end %v", a.Query.EndDate)
	}
}

func TestQueryCoversMonth(t *testing.T) {
	q := Query(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))
	if q.Sort != entry.Oldest || q.StartDate.Day() != 1 || q.EndDate.Day() != 29 {
		t.Errorf("unexpected query %+v", q)
	}
}
