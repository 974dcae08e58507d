package entrylist

import (
	"strings"

	"tableflip.dev/diary/pkg/apperr"
)

// Level is the severity of a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "info"
}

// Notice is a non-blocking message for the user. Err is set for failures.
type Notice struct {
	Level Level
	Text  string
	Err   error
}

func (c *Controller) notify(n Notice) {
	c.notices = append(c.notices, n)
}

// Notices returns the notices not yet drained.
func (c *Controller) Notices() []Notice {
	return append([]Notice(nil), c.notices...)
}

// DrainNotices returns and forgets the queued notices.
func (c *Controller) DrainNotices() []Notice {
	n := c.notices
	c.notices = nil
	return n
}

func failureText(op string, err error) string {
	msg := apperr.Describe(err)
	if msg == "" {
		return "Couldn't " + op
	}
	return "Couldn't " + op + ": " + strings.TrimSuffix(msg, ".")
}

// FirstError returns the error carried by the first failure in ns.
func FirstError(ns []Notice) error {
	for _, n := range ns {
		if n.Level == LevelError && n.Err != nil {
			return n.Err
		}
	}
	return nil
}
