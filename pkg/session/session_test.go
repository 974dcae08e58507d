package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/gateway"
	"tableflip.dev/diary/pkg/logctx"
	"tableflip.dev/diary/pkg/session"
	"tableflip.dev/diary/pkg/store"
)

func open(t *testing.T, dir string) *session.Session {
	t.Helper()
	st, err := store.Open(store.Dir(dir))
	require.NoError(t, err)
	s, err := session.Open(st, session.WithLogger(logctx.Discard()))
	require.NoError(t, err)
	return s
}

func login() gateway.AuthResult {
	return gateway.AuthResult{Token: "tok-1", User: gateway.User{ID: "u1", Email: "me@diary.dev"}}
}

func TestOpenWithoutRecordIsLoggedOut(t *testing.T) {
	s := open(t, t.TempDir())
	require.False(t, s.LoggedIn())
	require.Empty(t, s.Token())
	_, ok := s.User()
	require.False(t, ok)
}

func TestBeginPersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	s := open(t, dir)
	require.NoError(t, s.Begin(login()))
	require.Equal(t, "tok-1", s.Token())

	again := open(t, dir)
	require.True(t, again.LoggedIn())
	u, ok := again.User()
	require.True(t, ok)
	require.Equal(t, "me@diary.dev", u.Email)

	info, err := os.Stat(filepath.Join(dir, session.Key))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestEndClears(t *testing.T) {
	dir := t.TempDir()
	s := open(t, dir)
	require.NoError(t, s.Begin(login()))
	require.NoError(t, s.End())
	require.False(t, s.LoggedIn())
	require.False(t, open(t, dir).LoggedIn())
	require.NoError(t, s.End())
}

func TestBeginRejectsEmptyToken(t *testing.T) {
	s := open(t, t.TempDir())
	require.Error(t, s.Begin(gateway.AuthResult{}))
}

func TestCorruptRecordIsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, session.Key), []byte("{not json"), 0o600))
	require.False(t, open(t, dir).LoggedIn())
}

func TestWatchSeesLogoutFromAnotherProcess(t *testing.T) {
	dir := t.TempDir()
	ui := open(t, dir)
	require.NoError(t, ui.Begin(login()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := ui.Watch(ctx)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	cli := open(t, dir)
	require.NoError(t, cli.End())

	select {
	case st := <-ch:
		require.False(t, st.Valid())
		require.False(t, ui.LoggedIn())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for logout")
	}
}
