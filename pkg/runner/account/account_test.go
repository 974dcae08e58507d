package account

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/auth"
	"tableflip.dev/diary/pkg/gateway"
	"tableflip.dev/diary/pkg/gateway/gatewaytest"
	"tableflip.dev/diary/pkg/logctx"
	"tableflip.dev/diary/pkg/session"
	"tableflip.dev/diary/pkg/store"
)

type answers struct {
	plain   map[string]string
	secrets map[string]string
	asked   []string
}

func (a *answers) Ask(label string) (string, error) {
	a.asked = append(a.asked, label)
	return a.plain[label], nil
}

func (a *answers) Secret(label string) (string, error) {
	a.asked = append(a.asked, label)
	v, ok := a.secrets[label]
	if !ok {
		return "", errors.New("unexpected prompt " + label)
	}
	return v, nil
}

func newService(t *testing.T) (*session.Session, *auth.Service) {
	t.Helper()
	srv := gatewaytest.New()
	t.Cleanup(srv.Close)
	st, err := store.Open(store.Dir(t.TempDir()))
	require.NoError(t, err)
	sess, err := session.Open(st, session.WithLogger(logctx.Discard()))
	require.NoError(t, err)
	gw, err := gateway.New(srv.APIURL(), gateway.WithTokenSource(sess))
	require.NoError(t, err)
	return sess, auth.NewService(gw, sess)
}

func TestRegisterPromptsThenLogsOut(t *testing.T) {
	sess, svc := newService(t)
	var out bytes.Buffer
	a := &answers{
		plain:   map[string]string{"Email": "me@diary.dev"},
		secrets: map[string]string{"Password": "secret1", "Confirm password": "secret1"},
	}

	reg := &Login{Register: true, Service: svc, Prompt: a, Out: &out}
	require.NoError(t, reg.Do(context.Background()))
	require.Equal(t, []string{"Email", "Password", "Confirm password"}, a.asked)
	require.Contains(t, out.String(), "Registered me@diary.dev")
	require.True(t, sess.LoggedIn())
	u, ok := sess.User()
	require.True(t, ok)
	require.Equal(t, "me@diary.dev", u.Email)

	out.Reset()
	lo := &Logout{Service: svc, Out: &out}
	require.NoError(t, lo.Do(context.Background()))
	require.Contains(t, out.String(), "Logged out.")
	require.False(t, sess.LoggedIn())
}

func TestLoginWithPasswordFromStdin(t *testing.T) {
	sess, svc := newService(t)
	reg := &Login{Register: true, Email: "me@diary.dev", Password: "secret1", PasswordSet: true, Service: svc, Out: &bytes.Buffer{}}
	require.NoError(t, reg.Do(context.Background()))
	require.NoError(t, svc.Logout())

	var out bytes.Buffer
	in := &Login{Email: "me@diary.dev", Password: "secret1", PasswordSet: true, Service: svc, Out: &out}
	require.NoError(t, in.Do(context.Background()))
	require.Contains(t, out.String(), "Logged in as me@diary.dev")
	require.True(t, sess.LoggedIn())
}

func TestLoginRejected(t *testing.T) {
	sess, svc := newService(t)

	in := &Login{Email: "ghost@diary.dev", Password: "secret1", PasswordSet: true, Service: svc, Out: &bytes.Buffer{}}
	require.ErrorIs(t, in.Do(context.Background()), apperr.ErrUnauthorized)
	require.False(t, sess.LoggedIn())

	noPrompt := &Login{Email: "me@diary.dev", Service: svc, Out: &bytes.Buffer{}}
	require.Error(t, noPrompt.Do(context.Background()))
}
