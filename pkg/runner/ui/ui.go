package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tableflip.dev/diary/pkg/entrylist"
	"tableflip.dev/diary/pkg/session"
	"tableflip.dev/diary/pkg/tui/app"
)

// UI runs the full-screen dashboard.
type UI struct {
	Gateway  entrylist.Gateway
	Session  *session.Session
	Debounce time.Duration
	Log      *slog.Logger
}

func (d *UI) Do(ctx context.Context) error {
	if d.Gateway == nil || d.Session == nil {
		return errors.New("can not start ui, no gateway or session")
	}
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sessions, err := d.Session.Watch(ctx)
	if err != nil {
		log.Warn("watch session failed, logouts elsewhere will not be noticed", slog.String("error", err.Error()))
		sessions = nil
	}

	list := entrylist.New(d.Gateway,
		entrylist.WithContext(ctx),
		entrylist.WithLogger(log),
		entrylist.WithDebounce(d.Debounce))
	defer list.Close()

	user, _ := d.Session.User()
	m := app.New(list, app.Options{
		User:     user.Email,
		Sessions: sessions,
		Log:      log,
	})
	return app.Run(ctx, m)
}
