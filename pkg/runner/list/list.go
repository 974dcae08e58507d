package list

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/entrylist"
	"tableflip.dev/diary/pkg/filter"
	"tableflip.dev/diary/pkg/printers"
)

// Format names accepted by List.
const (
	FormatCards = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

type List struct {
	Gateway entrylist.Gateway
	Filter  filter.State
	Format  string
	ShowID  bool
	Out     io.Writer
	Log     *slog.Logger
}

func (n *List) Do(ctx context.Context) error {
	if n.Gateway == nil {
		return errors.New("can not list, no gateway")
	}

	c := entrylist.New(n.Gateway,
		entrylist.WithContext(ctx),
		entrylist.WithFilter(n.Filter),
		entrylist.WithLogger(n.Log))
	defer c.Close()

	c.Run(c.Init())
	if err := entrylist.FirstError(c.DrainNotices()); err != nil {
		return err
	}
	return n.print(c.Entries())
}

func (n *List) print(all []entry.Entry) error {
	switch n.Format {
	case FormatJSON, FormatYAML:
		return printers.Encode(n.Out, all, n.Format == FormatYAML)
	}

	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	pp.NewLine()
	if len(all) == 0 {
		hint := ""
		if n.Filter.Active() {
			hint = "Try `diary list` without filters."
		}
		pp.Empty(hint)
		return nil
	}

	title := "Entries"
	if n.Filter.Active() {
		title = n.Filter.String()
	}
	pp.TitleWithCount(title, len(all))
	if n.Format == FormatTable {
		pp.Table(all...)
		return nil
	}
	pp.Cards(all...)
	return nil
}
