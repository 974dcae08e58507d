// Package info prints where the client keeps its state and who is signed in.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/diary/pkg/config"
	"tableflip.dev/diary/pkg/session"
)

type Info struct {
	Config  *config.Config
	Session *session.Session
	// UserOnly prints just the signed in account.
	UserOnly bool
	Out      io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not get info, no session")
	}
	w := n.Out
	if w == nil {
		w = os.Stdout
	}

	st := n.Session.State()
	if n.UserOnly {
		if !st.Valid() {
			_, _ = fmt.Fprintln(w, "Not logged in.")
			return nil
		}
		_, _ = fmt.Fprintln(w, st.User.Email)
		return nil
	}

	if override := os.Getenv(config.PathEnv); override != "" {
		_, _ = fmt.Fprintln(w, config.PathEnv, "found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(w, config.PathEnv, "env var not set")
	}
	if n.Config != nil {
		file := n.Config.File
		if file == "" {
			file = "none"
		}
		_, _ = fmt.Fprintln(w, "Config.file: ", file)
		_, _ = fmt.Fprintln(w, "Config.path: ", n.Config.StatePath)
		_, _ = fmt.Fprintln(w, "API: ", n.Config.APIURL)
	}

	if !st.Valid() {
		_, _ = fmt.Fprintln(w, "Session: logged out")
		return nil
	}
	_, _ = fmt.Fprintf(w, "Session: %s (id %s) since %s\n", st.User.Email, st.User.ID, st.LoggedIn.Format("January 2, 2006 15:04"))
	return nil
}
