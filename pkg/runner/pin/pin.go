// Package pin provides the runner logic for pinning entries as favorites.
package pin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/entrylist"
	"tableflip.dev/diary/pkg/printers"
)

// Pin toggles the favorite flag of one entry.
type Pin struct {
	ID      string
	ShowID  bool
	Gateway entrylist.Gateway
	Out     io.Writer
	Log     *slog.Logger
}

// Do loads the list, flips the entry and prints the list as it now stands.
func (n *Pin) Do(ctx context.Context) error {
	if n.Gateway == nil {
		return errors.New("can not pin, no gateway")
	}

	c := entrylist.New(n.Gateway, entrylist.WithContext(ctx), entrylist.WithLogger(n.Log))
	defer c.Close()

	c.Run(c.Init())
	if err := entrylist.FirstError(c.DrainNotices()); err != nil {
		return err
	}
	if _, ok := c.Entry(n.ID); !ok {
		return fmt.Errorf("entry %s: %w", n.ID, apperr.ErrNotFound)
	}

	c.Run(c.TogglePin(n.ID))
	if err := entrylist.FirstError(c.DrainNotices()); err != nil {
		return err
	}

	e, _ := c.Entry(n.ID)
	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	pp.NewLine()
	if e.Favorite {
		pp.Title("Pinned")
	} else {
		pp.Title("Unpinned")
	}
	pp.Card(&e)
	return nil
}
