package gateway_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/gateway"
	"tableflip.dev/diary/pkg/gateway/gatewaytest"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func at(day int) entry.Timestamp {
	return entry.Timestamp{Time: time.Date(2025, time.March, day, 9, 0, 0, 0, time.UTC)}
}

func fixture() []entry.Entry {
	return []entry.Entry{
		{ID: "e1", Title: "Morning run", Mood: entry.Happy, CreatedAt: at(1), Tags: []entry.Tag{{ID: "t1", Name: "sport"}}},
		{ID: "e2", Title: "Rainy day", Mood: entry.Sad, CreatedAt: at(2)},
		{ID: "e3", Title: "Pizza night", Content: "<p>with friends</p>", Mood: entry.Happy, CreatedAt: at(3), Favorite: true},
	}
}

func newClient(t *testing.T, srv *gatewaytest.Server, token string) *gateway.Client {
	t.Helper()
	c, err := gateway.New(srv.APIURL(), gateway.WithTokenSource(staticToken(token)))
	require.NoError(t, err)
	return c
}

func TestListEntriesSendsOnlySetParams(t *testing.T) {
	srv := gatewaytest.New(fixture()...)
	defer srv.Close()
	c := newClient(t, srv, srv.AddUser("a@b.c", "secret1"))

	got, err := c.ListEntries(context.Background(), gateway.ListQuery{Mood: entry.Happy, Sort: entry.Oldest})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "e1", got[0].ID)
	require.Equal(t, "e3", got[1].ID)

	reqs := srv.Requests()
	last := reqs[len(reqs)-1]
	require.Equal(t, map[string]string{"mood": "😀", "sort": "oldest"}, last.Query)
	require.True(t, strings.HasPrefix(last.Auth, "Bearer "))
}

func TestListQueryValuesDateRange(t *testing.T) {
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 31, 23, 59, 59, 999_000_000, time.UTC)
	v := gateway.ListQuery{StartDate: start, EndDate: end}.Values()
	require.Equal(t, "newest", v.Get("sort"))
	require.Equal(t, "2025-03-01T00:00:00.000Z", v.Get("startDate"))
	require.Equal(t, "2025-03-31T23:59:59.999Z", v.Get("endDate"))
	require.False(t, v.Has("search"))
	require.False(t, v.Has("mood"))
	require.False(t, v.Has("tag"))
}

func TestUpdateEntrySendsOnlyFavorite(t *testing.T) {
	srv := gatewaytest.New(fixture()...)
	defer srv.Close()
	c := newClient(t, srv, srv.AddUser("a@b.c", "secret1"))

	updated, err := c.UpdateEntry(context.Background(), "e2", gateway.FavoritePatch(true))
	require.NoError(t, err)
	require.True(t, updated.Favorite)
	require.Equal(t, "Rainy day", updated.Title)

	reqs := srv.Requests()
	last := reqs[len(reqs)-1]
	require.Equal(t, http.MethodPatch, last.Method)
	require.Equal(t, map[string]any{"isFavorite": true}, last.Body)
}

func TestServerErrorsAreClassified(t *testing.T) {
	srv := gatewaytest.New(fixture()...)
	defer srv.Close()
	c := newClient(t, srv, srv.AddUser("a@b.c", "secret1"))

	srv.Fail(http.MethodGet, "/entries", http.StatusInternalServerError, "database down")
	_, err := c.ListEntries(context.Background(), gateway.ListQuery{})
	require.Error(t, err)
	require.ErrorIs(t, err, apperr.ErrServer)
	var se *apperr.ServerError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "database down", se.Message)

	_, err = c.GetEntry(context.Background(), "missing")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	anon := newClient(t, srv, "")
	_, err = anon.ListEntries(context.Background(), gateway.ListQuery{})
	require.True(t, gateway.IsUnauthorized(err))
}

func TestNetworkFailure(t *testing.T) {
	srv := gatewaytest.New()
	url := srv.APIURL()
	srv.Close()

	c, err := gateway.New(url, gateway.WithTimeout(time.Second))
	require.NoError(t, err)
	_, err = c.ListEntries(context.Background(), gateway.ListQuery{})
	require.ErrorIs(t, err, apperr.ErrNetwork)
	require.Equal(t, apperr.KindNetwork, apperr.KindOf(err))
}

func TestLoginAndRegister(t *testing.T) {
	srv := gatewaytest.New()
	defer srv.Close()
	c := newClient(t, srv, "")

	res, err := c.Register(context.Background(), gateway.Credentials{Email: "new@diary.dev", Password: "hunter22"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.Equal(t, "new@diary.dev", res.User.Email)

	_, err = c.Login(context.Background(), gateway.Credentials{Email: "new@diary.dev", Password: "wrong!!"})
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
	require.Equal(t, "Incorrect email or password", apperr.Describe(err))

	res, err = c.Login(context.Background(), gateway.Credentials{Email: "new@diary.dev", Password: "hunter22"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
}

func TestUploadImageResolvesAgainstOrigin(t *testing.T) {
	srv := gatewaytest.New()
	defer srv.Close()
	c := newClient(t, srv, srv.AddUser("a@b.c", "secret1"))

	u, err := c.UploadImage(context.Background(), "/tmp/photo.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(u, srv.URL+"/uploads/"), u)
	require.False(t, strings.Contains(u, gatewaytest.BasePath+"/uploads"))

	stored, ok := srv.Upload(strings.TrimPrefix(u, srv.URL))
	require.True(t, ok)
	require.Equal(t, "png-bytes", string(stored))

	require.Equal(t, "https://cdn.example/x.png", c.ResolveURL("https://cdn.example/x.png"))
}

func TestDeleteAndAnalytics(t *testing.T) {
	srv := gatewaytest.New(fixture()...)
	defer srv.Close()
	c := newClient(t, srv, srv.AddUser("a@b.c", "secret1"))

	require.NoError(t, c.DeleteEntry(context.Background(), "e2"))
	require.Len(t, srv.Entries(), 2)

	stats, err := c.Analytics(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalEntries)
	require.Equal(t, []gateway.MoodStat{{Name: "😀", Value: 2}}, stats.MoodDistribution)
}

func TestNewRejectsRelativeBase(t *testing.T) {
	_, err := gateway.New("/api")
	require.Error(t, err)
}
