// Package calendar lays a month of entries out as a week grid and decides
// what picking a day does.
package calendar

import (
	"time"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/gateway"
	"tableflip.dev/diary/pkg/timeutil"
)

// MoodsPerDay is how many moods a day cell shows.
const MoodsPerDay = 3

// Month groups entries by day of one calendar month.
type Month struct {
	start time.Time
	days  map[int][]entry.Entry
}

// Query lists every entry of the month containing t, oldest first.
func Query(t time.Time) gateway.ListQuery {
	start, end := timeutil.MonthBounds(t)
	return gateway.ListQuery{StartDate: start, EndDate: end, Sort: entry.Oldest}
}

// Build groups entries into the month containing t. Entries are placed by
// their creation day in t's location; entries outside the month are ignored.
func Build(t time.Time, entries []entry.Entry) Month {
	m := Month{start: timeutil.StartOfMonth(t), days: map[int][]entry.Entry{}}
	loc := t.Location()
	for _, e := range entries {
		at := e.CreatedAt.In(loc)
		if at.Year() != m.start.Year() || at.Month() != m.start.Month() {
			continue
		}
		m.days[at.Day()] = append(m.days[at.Day()], e)
	}
	return m
}

// Start is midnight on the first of the month.
func (m Month) Start() time.Time { return m.start }

// Title is e.g. "March 2025".
func (m Month) Title() string { return m.start.Format("January 2006") }

// Entries returns the entries created on day (1-based).
func (m Month) Entries(day int) []entry.Entry { return m.days[day] }

// Total is the number of entries in the month.
func (m Month) Total() int {
	n := 0
	for _, es := range m.days {
		n += len(es)
	}
	return n
}

// Cell is one square of the grid. Day is 0 for padding before the 1st and
// after the last day.
type Cell struct {
	Day   int
	Moods []entry.Mood
	Count int
	Today bool
}

// Weeks returns the grid, Sunday first, one slice of seven cells per week.
func (m Month) Weeks(now time.Time) [][]Cell {
	lead := int(m.start.Weekday())
	total := timeutil.DaysIn(m.start)
	now = now.In(m.start.Location())
	thisMonth := now.Year() == m.start.Year() && now.Month() == m.start.Month()

	var weeks [][]Cell
	week := make([]Cell, 0, 7)
	for i := 0; i < lead; i++ {
		week = append(week, Cell{})
	}
	for d := 1; d <= total; d++ {
		es := m.days[d]
		c := Cell{Day: d, Count: len(es), Today: thisMonth && now.Day() == d}
		for i := 0; i < len(es) && i < MoodsPerDay; i++ {
			c.Moods = append(c.Moods, es[i].Mood)
		}
		week = append(week, c)
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]Cell, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, Cell{})
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// ActionKind says what picking a day leads to.
type ActionKind int

const (
	// ActionNew starts a new entry; the day is empty.
	ActionNew ActionKind = iota
	// ActionEdit opens the day's only entry.
	ActionEdit
	// ActionList lists the day's entries.
	ActionList
)

func (k ActionKind) String() string {
	switch k {
	case ActionEdit:
		return "edit"
	case ActionList:
		return "list"
	default:
		return "new"
	}
}

// Action is the outcome of picking a day.
type Action struct {
	Kind    ActionKind
	EntryID string
	Date    time.Time
	// Query is set for ActionList: the day's bounds, newest first.
	Query gateway.ListQuery
}

// Pick decides what selecting day does: one entry opens it, several list
// that day, none starts a new entry.
func (m Month) Pick(day int) Action {
	date := m.start.AddDate(0, 0, day-1)
	es := m.days[day]
	switch len(es) {
	case 0:
		return Action{Kind: ActionNew, Date: date}
	case 1:
		return Action{Kind: ActionEdit, EntryID: es[0].ID, Date: date}
	default:
		start, end := timeutil.DayBounds(date)
		return Action{
			Kind:  ActionList,
			Date:  date,
			Query: gateway.ListQuery{StartDate: start, EndDate: end, Sort: entry.Newest},
		}
	}
}
