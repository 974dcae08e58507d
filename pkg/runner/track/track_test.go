package track

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/gateway"
	"tableflip.dev/diary/pkg/gateway/gatewaytest"
)

func init() {
	color.NoColor = true
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func at(month time.Month, day int) entry.Timestamp {
	return entry.Timestamp{Time: time.Date(2025, month, day, 9, 0, 0, 0, time.UTC)}
}

func setup(t *testing.T) (*gatewaytest.Server, *gateway.Client) {
	t.Helper()
	srv := gatewaytest.New(
		entry.Entry{ID: "e1", Title: "Snow", Mood: entry.Sad, CreatedAt: at(time.February, 3)},
		entry.Entry{ID: "e2", Title: "Grey", Mood: entry.Sad, CreatedAt: at(time.February, 9)},
		entry.Entry{ID: "e3", Title: "Spring", Mood: entry.Happy, CreatedAt: at(time.March, 2)},
		entry.Entry{ID: "e4", Title: "Tulips", Mood: entry.Happy, CreatedAt: at(time.March, 8)},
		entry.Entry{ID: "e5", Title: "Tax day", Mood: entry.Angry, CreatedAt: at(time.March, 12)},
	)
	t.Cleanup(srv.Close)
	api, err := gateway.New(srv.APIURL(), gateway.WithTokenSource(staticToken(srv.AddUser("a@b.c", "secret1"))))
	require.NoError(t, err)
	return srv, api
}

func march() time.Time { return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC) }

func TestTrackReportsAllTimeAndMonth(t *testing.T) {
	_, api := setup(t)
	var out bytes.Buffer

	tr := &Track{Gateway: api, Now: march, Structured: true, Out: &out}
	require.NoError(t, tr.Do(context.Background()))

	var r Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &r))
	require.Equal(t, 5, r.AllTime.Total)
	require.Equal(t, string(entry.Sad), r.AllTime.Dominant)
	require.Equal(t, 3, r.ThisMonth.Total)
	require.Equal(t, string(entry.Happy), r.ThisMonth.Dominant)
}

func TestTrackPrintsBothSections(t *testing.T) {
	_, api := setup(t)
	var out bytes.Buffer

	tr := &Track{Gateway: api, Now: march, Out: &out}
	require.NoError(t, tr.Do(context.Background()))
	require.Contains(t, out.String(), "Mood insights")
	require.Contains(t, out.String(), "March 2025")
}

func TestTrackFailsWhenEitherLoadFails(t *testing.T) {
	srv, api := setup(t)
	srv.Fail(http.MethodGet, "/entries/analytics", http.StatusInternalServerError, "stats offline")

	tr := &Track{Gateway: api, Now: march, Out: &bytes.Buffer{}}
	err := tr.Do(context.Background())
	require.ErrorIs(t, err, apperr.ErrServer)
	require.Equal(t, "stats offline", apperr.Describe(err))
}
