package editor_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/editor"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/gateway"
	"tableflip.dev/diary/pkg/gateway/gatewaytest"
	"tableflip.dev/diary/pkg/logctx"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func setup(t *testing.T, seed ...entry.Entry) (*gatewaytest.Server, *editor.Editor) {
	t.Helper()
	srv := gatewaytest.New(seed...)
	t.Cleanup(srv.Close)
	gw, err := gateway.New(srv.APIURL(), gateway.WithTokenSource(staticToken(srv.AddUser("me@diary.dev", "secret1"))))
	require.NoError(t, err)
	return srv, editor.New(gw, editor.WithLogger(logctx.Discard()))
}

func seeded() entry.Entry {
	return entry.Entry{
		ID:        "e1",
		Title:     "Hike",
		Content:   "<p>Up the hill</p>",
		Mood:      entry.Excited,
		Tags:      []entry.Tag{{ID: "t1", Name: "outdoors"}, {ID: "t2", Name: "friends"}},
		Images:    []string{"http://img/1.png"},
		CreatedAt: entry.Timestamp{Time: time.Date(2025, time.May, 3, 10, 0, 0, 0, time.UTC)},
	}
}

func TestParseTags(t *testing.T) {
	require.Equal(t, []string{"a", "b c", "d"}, editor.ParseTags(" a, b c ,, d ,"))
	require.Equal(t, []string{}, editor.ParseTags("  "))
}

func TestLoadBindsForm(t *testing.T) {
	_, ed := setup(t, seeded())
	require.NoError(t, ed.Load(context.Background(), "e1"))

	f := ed.Form()
	require.Equal(t, "Hike", f.Title)
	require.Equal(t, "outdoors, friends", f.Tags)
	require.Equal(t, "Up the hill", f.PlainContent())
	require.Equal(t, []string{"http://img/1.png"}, f.Images)
	require.False(t, f.IsDraft())

	err := ed.Load(context.Background(), "nope")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSubmitSendsEveryField(t *testing.T) {
	srv, ed := setup(t, seeded())
	require.NoError(t, ed.Load(context.Background(), "e1"))

	f := ed.Form()
	f.Title = "Hike to the lake"
	f.Tags = "outdoors, lake"
	f.Mood = entry.Happy
	f.ToggleFavorite()
	require.True(t, f.RemoveImage(0))
	require.False(t, f.RemoveImage(3))

	saved, err := ed.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Hike to the lake", saved.Title)
	require.Equal(t, []string{"outdoors", "lake"}, saved.TagNames())
	require.True(t, saved.Favorite)

	reqs := srv.Requests()
	last := reqs[len(reqs)-1]
	require.Equal(t, http.MethodPatch, last.Method)
	require.Equal(t, map[string]any{
		"title":      "Hike to the lake",
		"content":    "<p>Up the hill</p>",
		"mood":       "😀",
		"tags":       []any{"outdoors", "lake"},
		"images":     []any{},
		"isFavorite": true,
	}, last.Body)
}

func TestSubmitValidates(t *testing.T) {
	srv, ed := setup(t)
	ed.Form().Title = "   "
	_, err := ed.Submit(context.Background())
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.Contains(t, apperr.Describe(err), "title is required")

	ed.Form().Title = "ok"
	ed.Form().Mood = entry.Mood("🦄")
	_, err = ed.Submit(context.Background())
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.Empty(t, srv.Requests())
}

func TestDraftCreates(t *testing.T) {
	srv, ed := setup(t)
	f := ed.Form()
	require.True(t, f.IsDraft())
	require.Equal(t, entry.DefaultMood, f.Mood)

	f.Title = "First"
	f.SetPlainContent("line one\nline <two>")
	saved, err := ed.Submit(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.Equal(t, "<p>line one</p><p>line &lt;two&gt;</p>", saved.Content)
	require.False(t, ed.Form().IsDraft())
	require.Len(t, srv.Entries(), 1)
}

func TestUploadKeepsFormOnFailure(t *testing.T) {
	srv, ed := setup(t, seeded())
	require.NoError(t, ed.Load(context.Background(), "e1"))
	ed.Form().Title = "edited locally"

	dir := t.TempDir()
	good := filepath.Join(dir, "sunset.png")
	require.NoError(t, os.WriteFile(good, []byte("png"), 0o600))
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("txt"), 0o600))
	missing := filepath.Join(dir, "gone.jpg")

	results := ed.Upload(context.Background(), missing, good, notes)
	require.Len(t, results, 3)
	require.ErrorIs(t, results[0].Err, apperr.ErrValidation)
	require.NoError(t, results[1].Err)
	require.ErrorIs(t, results[2].Err, apperr.ErrValidation)

	f := ed.Form()
	require.Equal(t, "edited locally", f.Title)
	require.Len(t, f.Images, 2)
	require.Equal(t, "http://img/1.png", f.Images[0])
	require.True(t, strings.HasPrefix(f.Images[1], srv.URL+"/uploads/"))
	require.True(t, strings.HasSuffix(f.Images[1], "-sunset.png"))
}

func TestUploadExtensionIgnoresCase(t *testing.T) {
	_, ed := setup(t, seeded())
	require.NoError(t, ed.Load(context.Background(), "e1"))

	dir := t.TempDir()
	var files []string
	for _, name := range []string{"beach.Jpg", "dunes.WEBP", "cliff.pNg"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("img"), 0o600))
		files = append(files, p)
	}

	for _, r := range ed.Upload(context.Background(), files...) {
		require.NoError(t, r.Err, r.File)
	}
	require.Len(t, ed.Form().Images, 4)
}
