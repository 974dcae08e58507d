// Package strike provides the runner logic for deleting entries.
package strike

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/entrylist"
	"tableflip.dev/diary/pkg/printers"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(label string) (bool, error)
}

// Strike deletes one entry after confirmation.
type Strike struct {
	ID      string
	Yes     bool
	Gateway entrylist.Gateway
	Confirm Confirmer
	Out     io.Writer
	Log     *slog.Logger
}

func (n *Strike) Do(ctx context.Context) error {
	if n.Gateway == nil {
		return errors.New("can not delete, no gateway")
	}

	c := entrylist.New(n.Gateway, entrylist.WithContext(ctx), entrylist.WithLogger(n.Log))
	defer c.Close()

	c.Run(c.Init())
	if err := entrylist.FirstError(c.DrainNotices()); err != nil {
		return err
	}
	if !c.RequestDelete(n.ID) {
		return fmt.Errorf("entry %s: %w", n.ID, apperr.ErrNotFound)
	}
	pending, _ := c.PendingDelete()

	pp := printers.PrettyPrint{Out: n.Out, ShowID: true}
	if !n.Yes {
		ok, err := n.confirm(&pp, pending)
		if err != nil {
			return err
		}
		if !ok {
			c.CancelDelete()
			return apperr.ErrCancelled
		}
	}

	c.Run(c.ConfirmDelete())
	notices := c.DrainNotices()
	if err := entrylist.FirstError(notices); err != nil {
		return err
	}
	for _, nt := range notices {
		pp.Notice(nt.Text)
	}
	return nil
}

func (n *Strike) confirm(pp *printers.PrettyPrint, e entry.Entry) (bool, error) {
	if n.Confirm == nil {
		return false, errors.New("refusing to delete without confirmation, pass --yes")
	}
	pp.NewLine()
	pp.Card(&e)
	return n.Confirm.Confirm(fmt.Sprintf("Delete %q", e.Title))
}
