package entry

import (
	"fmt"
	"strings"
)

// Tag is a server-side tag reference attached to an entry.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Entry is one diary record as returned by the API. The client only ever
// holds a transient copy of it.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      Mood      `json:"mood"`
	Tags      []Tag     `json:"tags"`
	CreatedAt Timestamp `json:"createdAt"`
	Favorite  bool      `json:"isFavorite"`
	Images    []string  `json:"images"`
}

// SortOrder selects the server-side ordering of the entry list.
type SortOrder string

const (
	Newest SortOrder = "newest"
	Oldest SortOrder = "oldest"
)

// ParseSortOrder accepts "newest" or "oldest"; empty means newest.
func ParseSortOrder(v string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", string(Newest):
		return Newest, nil
	case string(Oldest):
		return Oldest, nil
	default:
		return "", fmt.Errorf("unknown sort order %q (want newest or oldest)", v)
	}
}

// Toggle flips between newest and oldest.
func (s SortOrder) Toggle() SortOrder {
	if s == Oldest {
		return Newest
	}
	return Oldest
}

// TagNames returns the tag names in server order.
func (e *Entry) TagNames() []string {
	names := make([]string, 0, len(e.Tags))
	for _, t := range e.Tags {
		names = append(names, t.Name)
	}
	return names
}

// HasTag reports whether the entry carries a tag with the given name.
func (e *Entry) HasTag(name string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can patch it without touching the
// original slices.
func (e Entry) Clone() Entry {
	out := e
	if e.Tags != nil {
		out.Tags = append([]Tag(nil), e.Tags...)
	}
	if e.Images != nil {
		out.Images = append([]string(nil), e.Images...)
	}
	return out
}

func (e *Entry) String() string {
	pin := " "
	if e.Favorite {
		pin = "*"
	}
	return fmt.Sprintf("%s %s  %s", pin, e.Mood, e.Title)
}
