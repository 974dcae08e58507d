package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/auth"
	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/config"
	"tableflip.dev/diary/pkg/gateway"
	"tableflip.dev/diary/pkg/logctx"
	"tableflip.dev/diary/pkg/session"
	"tableflip.dev/diary/pkg/store"
)

var errLoggedOut = fmt.Errorf("%w: not logged in, run `diary login`", apperr.ErrUnauthorized)

// deps is everything a runner may need, built once per command.
type deps struct {
	cfg     *config.Config
	log     *slog.Logger
	store   *store.Store
	session *session.Session
	api     *gateway.Client

	closeLog func() error
}

// loadDeps resolves config and opens the session. Logs go to stderr unless
// a log file is configured; quiet drops them instead, for full-screen use.
func loadDeps(cmd *cobra.Command, g *options.GlobalOptions, quiet bool) (*deps, error) {
	cfg, err := config.Load(config.Options{File: g.ConfigFile, Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}

	lvl, err := logctx.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	var fallback io.Writer = cmd.ErrOrStderr()
	if quiet {
		fallback = io.Discard
	}
	log, closeLog, err := logctx.New(lvl, cfg.LogFile, fallback)
	if err != nil {
		return nil, err
	}
	cmd.SetContext(logctx.Into(commandContext(cmd), log))

	st, err := store.Open(store.Dir(cfg.StatePath))
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	sess, err := session.Open(st, session.WithLogger(log))
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	api, err := gateway.New(cfg.APIURL,
		gateway.WithTimeout(cfg.Timeout),
		gateway.WithTokenSource(sess),
		gateway.WithLogger(log))
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	log.Debug("loaded config",
		slog.String("file", cfg.File),
		slog.String("api", cfg.APIURL),
		slog.String("state", cfg.StatePath))
	return &deps{cfg: cfg, log: log, store: st, session: sess, api: api, closeLog: closeLog}, nil
}

// requireLogin fails early when no session is stored.
func (d *deps) requireLogin() error {
	if !d.session.LoggedIn() {
		return errLoggedOut
	}
	return nil
}

func (d *deps) auth() *auth.Service {
	return auth.NewService(d.api, d.session)
}

// done releases the logger. A rejected token ends the stored session so the
// next command asks for a login instead of failing the same way.
func (d *deps) done(err error) error {
	if gateway.IsUnauthorized(err) && d.session.LoggedIn() {
		d.log.Info("session rejected by server, logging out")
		if endErr := d.session.End(); endErr != nil {
			d.log.Warn("clear session failed", slog.String("error", endErr.Error()))
		}
	}
	if cerr := d.closeLog(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
