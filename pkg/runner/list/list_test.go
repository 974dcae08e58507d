package list

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/filter"
	"tableflip.dev/diary/pkg/gateway"
	"tableflip.dev/diary/pkg/gateway/gatewaytest"
)

func init() {
	color.NoColor = true
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func at(day int) entry.Timestamp {
	return entry.Timestamp{Time: time.Date(2025, time.March, day, 9, 0, 0, 0, time.UTC)}
}

func setup(t *testing.T) (*gatewaytest.Server, *gateway.Client) {
	t.Helper()
	srv := gatewaytest.New(
		entry.Entry{ID: "e1", Title: "Rainy day", Mood: entry.Sad, CreatedAt: at(1)},
		entry.Entry{ID: "e2", Title: "Long walk", Mood: entry.Sleepy, CreatedAt: at(2)},
		entry.Entry{ID: "e3", Title: "Pizza night", Mood: entry.Party, CreatedAt: at(3), Favorite: true},
	)
	t.Cleanup(srv.Close)
	api, err := gateway.New(srv.APIURL(), gateway.WithTokenSource(staticToken(srv.AddUser("a@b.c", "secret1"))))
	require.NoError(t, err)
	return srv, api
}

func TestListCardsFavoritesFirst(t *testing.T) {
	_, api := setup(t)
	var out bytes.Buffer

	l := &List{Gateway: api, Filter: filter.New(), Out: &out}
	require.NoError(t, l.Do(context.Background()))

	s := out.String()
	require.Contains(t, s, "Entries - 3 entries")
	pizza, walk, rain := strings.Index(s, "Pizza night"), strings.Index(s, "Long walk"), strings.Index(s, "Rainy day")
	require.True(t, pizza < walk && walk < rain, s)
}

func TestListJSON(t *testing.T) {
	_, api := setup(t)
	var out bytes.Buffer

	f := filter.New()
	f.SetSort(entry.Oldest)
	l := &List{Gateway: api, Filter: f, Format: FormatJSON, Out: &out}
	require.NoError(t, l.Do(context.Background()))

	var got []entry.Entry
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 3)
	require.Equal(t, []string{"e3", "e1", "e2"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestListEmptyWithFilter(t *testing.T) {
	_, api := setup(t)
	var out bytes.Buffer

	f := filter.New()
	f.SetMood(entry.Happy)
	l := &List{Gateway: api, Filter: f, Out: &out}
	require.NoError(t, l.Do(context.Background()))
	require.Contains(t, out.String(), "No entries found.")
	require.Contains(t, out.String(), "without filters")
}

func TestListServerError(t *testing.T) {
	srv, api := setup(t)
	srv.Fail(http.MethodGet, "/entries", http.StatusInternalServerError, "database down")

	l := &List{Gateway: api, Filter: filter.New(), Out: &bytes.Buffer{}}
	err := l.Do(context.Background())
	require.ErrorIs(t, err, apperr.ErrServer)
	require.Equal(t, "database down", apperr.Describe(err))
}
