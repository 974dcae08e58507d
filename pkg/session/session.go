// Package session holds who is logged in. A Session is hydrated from the
// state directory when opened, written on login and cleared on logout. It is
// passed explicitly to whatever needs the token; there is no global copy.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"tableflip.dev/diary/pkg/gateway"
	"tableflip.dev/diary/pkg/store"
)

// Key is the store key holding the persisted session.
const Key = "session"

// State is what gets persisted.
type State struct {
	Token    string       `json:"token"`
	User     gateway.User `json:"user"`
	LoggedIn time.Time    `json:"loggedInAt"`
}

// Valid reports whether the state carries a usable token.
func (s State) Valid() bool { return strings.TrimSpace(s.Token) != "" }

// Session is safe for concurrent use; the gateway reads the token from
// request goroutines.
type Session struct {
	st  *store.Store
	log *slog.Logger
	now func() time.Time

	mu    sync.RWMutex
	state State
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// Open hydrates a session from st. A missing or unreadable record yields a
// logged-out session, not an error.
func Open(st *store.Store, opts ...Option) (*Session, error) {
	if st == nil {
		return nil, errors.New("session: store is required")
	}
	s := &Session{st: st, log: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the persisted record, picking up logins and logouts from
// other processes.
func (s *Session) Reload() error {
	var st State
	err := s.st.Get(Key, &st)
	switch {
	case errors.Is(err, store.ErrNotFound):
		st = State{}
	case err != nil:
		s.log.Warn("discarding unreadable session", slog.String("error", err.Error()))
		st = State{}
	case !st.Valid():
		st = State{}
	}
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return nil
}

// Token implements gateway.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// User returns the logged in user.
func (s *Session) User() (gateway.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User, s.state.Valid()
}

// LoggedIn reports whether a token is held.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Valid()
}

// State returns a copy of the current record.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Begin stores a fresh login.
func (s *Session) Begin(res gateway.AuthResult) error {
	st := State{Token: res.Token, User: res.User, LoggedIn: s.now().UTC()}
	if !st.Valid() {
		return errors.New("session: login carried no token")
	}
	if err := s.st.Put(Key, st); err != nil {
		return fmt.Errorf("session: persist: %w", err)
	}
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.log.Info("logged in", slog.String("email", st.User.Email))
	return nil
}

// End clears the session in memory and on disk.
func (s *Session) End() error {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()
	if err := s.st.Delete(Key); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	s.log.Info("logged out")
	return nil
}

// Watch reports the session state whenever another writer changes it. The
// channel closes with ctx.
func (s *Session) Watch(ctx context.Context) (<-chan State, error) {
	events, err := s.st.Watch(ctx)
	if err != nil {
		return nil, fmt.Errorf("session: watch: %w", err)
	}
	out := make(chan State, 1)
	go func() {
		defer close(out)
		for ev := range events {
			if ev.Key != Key && ev.Op != store.OpUnknown {
				continue
			}
			before := s.State()
			_ = s.Reload()
			after := s.State()
			if before == after {
				continue
			}
			select {
			case out <- after:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
