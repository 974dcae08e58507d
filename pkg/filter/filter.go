// Package filter holds the entry list query: search text, mood, tag, the
// this-month window and the sort order.
package filter

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/gateway"
	"tableflip.dev/diary/pkg/timeutil"
)

// State is the current query. The zero value is not ready for use; call New.
// Unset mood and tag are tracked explicitly rather than by empty strings.
type State struct {
	search    string
	mood      entry.Mood
	hasMood   bool
	tag       string
	hasTag    bool
	thisMonth bool
	sort      entry.SortOrder
}

// New returns the default query: no constraints, newest first.
func New() State {
	return State{sort: entry.Newest}
}

// Search returns the search text ("" means no search).
func (s State) Search() string { return s.search }

// Mood returns the selected mood and whether one is set.
func (s State) Mood() (entry.Mood, bool) { return s.mood, s.hasMood }

// Tag returns the selected tag name and whether one is set.
func (s State) Tag() (string, bool) { return s.tag, s.hasTag }

// ThisMonth reports whether the list is limited to the current month.
func (s State) ThisMonth() bool { return s.thisMonth }

// Sort returns the sort order.
func (s State) Sort() entry.SortOrder { return s.sort }

// SetSearch stores the (already debounced) search text.
func (s *State) SetSearch(v string) bool {
	if s.search == v {
		return false
	}
	s.search = v
	return true
}

// SetMood selects m.
func (s *State) SetMood(m entry.Mood) bool {
	if s.hasMood && s.mood == m {
		return false
	}
	s.mood, s.hasMood = m, true
	return true
}

// ClearMood removes the mood constraint.
func (s *State) ClearMood() bool {
	if !s.hasMood {
		return false
	}
	s.mood, s.hasMood = "", false
	return true
}

// SetTag selects a tag by name. A blank name clears the constraint.
func (s *State) SetTag(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.ClearTag()
	}
	if s.hasTag && s.tag == name {
		return false
	}
	s.tag, s.hasTag = name, true
	return true
}

// ClearTag removes the tag constraint.
func (s *State) ClearTag() bool {
	if !s.hasTag {
		return false
	}
	s.tag, s.hasTag = "", false
	return true
}

// SetThisMonth limits (or stops limiting) the list to the current month.
func (s *State) SetThisMonth(on bool) bool {
	if s.thisMonth == on {
		return false
	}
	s.thisMonth = on
	return true
}

// ToggleThisMonth flips the this-month window.
func (s *State) ToggleThisMonth() bool {
	return s.SetThisMonth(!s.thisMonth)
}

// SetSort sets the sort order; empty means newest.
func (s *State) SetSort(o entry.SortOrder) bool {
	if o == "" {
		o = entry.Newest
	}
	if s.sort == o {
		return false
	}
	s.sort = o
	return true
}

// ToggleSort flips between newest and oldest.
func (s *State) ToggleSort() bool {
	return s.SetSort(s.sort.Toggle())
}

// Clear resets every dimension in a single transition.
func (s *State) Clear() bool {
	def := New()
	if s.Equal(def) {
		return false
	}
	*s = def
	return true
}

// Active reports whether any narrowing dimension is set. Sort order alone
// does not count.
func (s State) Active() bool {
	return s.search != "" || s.hasMood || s.hasTag || s.thisMonth
}

// Equal reports whether two queries would produce the same request.
func (s State) Equal(o State) bool {
	return s == o
}

// ToQueryParams maps the query onto the gateway parameters. Unset dimensions
// are omitted; the this-month window becomes startDate/endDate bounds of the
// calendar month containing now.
func (s State) ToQueryParams(now time.Time) gateway.ListQuery {
	q := gateway.ListQuery{Sort: s.sort}
	if s.search != "" {
		q.Search = s.search
	}
	if s.hasMood {
		q.Mood = s.mood
	}
	if s.hasTag {
		q.Tag = s.tag
	}
	if s.thisMonth {
		q.StartDate, q.EndDate = timeutil.MonthBounds(now)
	}
	return q
}

// String summarises the active constraints for status lines.
func (s State) String() string {
	parts := make([]string, 0, 5)
	if s.search != "" {
		parts = append(parts, fmt.Sprintf("search %q", s.search))
	}
	if s.hasMood {
		parts = append(parts, "mood "+string(s.mood))
	}
	if s.hasTag {
		parts = append(parts, "#"+s.tag)
	}
	if s.thisMonth {
		parts = append(parts, "this month")
	}
	if s.sort == entry.Oldest {
		parts = append(parts, "oldest first")
	} else {
		parts = append(parts, "newest first")
	}
	return strings.Join(parts, " · ")
}
