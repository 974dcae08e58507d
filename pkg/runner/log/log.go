// Package log provides the runner logic for the monthly mood calendar.
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/gateway"
	"tableflip.dev/diary/pkg/printers"
)

// Lister fetches entries for a query.
type Lister interface {
	ListEntries(ctx context.Context, q gateway.ListQuery) ([]entry.Entry, error)
}

// Log prints a month as a calendar, or what picking one day of it leads to.
type Log struct {
	Gateway Lister
	On      time.Time
	// Day is set when a single day was picked.
	Day    bool
	ShowID bool
	Now    func() time.Time
	Out    io.Writer
}

const layoutUSDay = "January 2, 2006"

func (n *Log) Do(ctx context.Context) error {
	if n.Gateway == nil {
		return errors.New("can not get, no gateway")
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}

	entries, err := n.Gateway.ListEntries(ctx, calendar.Query(n.On))
	if err != nil {
		return fmt.Errorf("load calendar: %w", err)
	}
	m := calendar.Build(n.On, entries)

	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	pp.NewLine()
	if !n.Day {
		pp.Calendar(m, now())
		return nil
	}

	a := m.Pick(n.On.Day())
	switch a.Kind {
	case calendar.ActionEdit:
		for _, e := range m.Entries(n.On.Day()) {
			if e.ID == a.EntryID {
				pp.Title(a.Date.Format(layoutUSDay))
				pp.Detail(&e)
			}
		}
	case calendar.ActionList:
		day, err := n.Gateway.ListEntries(ctx, a.Query)
		if err != nil {
			return fmt.Errorf("load %s: %w", a.Date.Format(layoutUSDay), err)
		}
		pp.TitleWithCount(a.Date.Format(layoutUSDay), len(day))
		pp.Cards(entry.FavoritesFirst(day)...)
	default:
		pp.Title(a.Date.Format(layoutUSDay))
		pp.Empty("Write one with `diary new`.")
	}
	return nil
}
