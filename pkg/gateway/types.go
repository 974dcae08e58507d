package gateway

import (
	"net/url"
	"time"

	"tableflip.dev/diary/pkg/entry"
)

// User is the account attached to a session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Credentials are sent to the login and register endpoints.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is what login and register hand back.
type AuthResult struct {
	Token string
	User  User
}

// ListQuery is the query-parameter shape of GET /entries. Empty fields are
// left off the wire.
type ListQuery struct {
	Search    string
	Mood      entry.Mood
	Tag       string
	StartDate time.Time
	EndDate   time.Time
	Sort      entry.SortOrder
}

// Values encodes q, omitting every unset dimension.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	sort := q.Sort
	if sort == "" {
		sort = entry.Newest
	}
	v.Set("sort", string(sort))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Mood != "" {
		v.Set("mood", string(q.Mood))
	}
	if q.Tag != "" {
		v.Set("tag", q.Tag)
	}
	if !q.StartDate.IsZero() {
		v.Set("startDate", entry.FormatTime(q.StartDate))
	}
	if !q.EndDate.IsZero() {
		v.Set("endDate", entry.FormatTime(q.EndDate))
	}
	return v
}

// EntryPatch is the body of PATCH /entries/{id} and POST /entries. Only
// non-nil fields are sent.
type EntryPatch struct {
	Title    *string     `json:"title,omitempty"`
	Content  *string     `json:"content,omitempty"`
	Mood     *entry.Mood `json:"mood,omitempty"`
	Tags     *[]string   `json:"tags,omitempty"`
	Images   *[]string   `json:"images,omitempty"`
	Favorite *bool       `json:"isFavorite,omitempty"`
}

// FavoritePatch carries only the favorite flag.
func FavoritePatch(favorite bool) EntryPatch {
	return EntryPatch{Favorite: &favorite}
}

// MoodStat is one slice of the mood distribution.
type MoodStat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Analytics is the payload of GET /entries/analytics.
type Analytics struct {
	MoodDistribution []MoodStat `json:"moodDistribution"`
	TotalEntries     int        `json:"totalEntries"`
}
