// Package key provides CLI helpers to display the mood legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/diary/pkg/glyph"
)

// Key prints the mood palette and the symbols used on entry cards.
type Key struct {
	Out io.Writer
}

func (k *Key) out() io.Writer {
	if k.Out == nil {
		return color.Output
	}
	return k.Out
}

// Do renders the mood and symbol keys.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(k.out(), "")
	k.Key(ctx, glyph.DefaultMoods(), true)
	_, _ = fmt.Fprintln(k.out(), "")
	k.Key(ctx, []glyph.Glyph{
		{Symbol: glyph.Pin, Meaning: "pinned favorite"},
		{Symbol: glyph.Tag, Meaning: "tag"},
		{Symbol: glyph.Image, Meaning: "attached images"},
		{Symbol: glyph.Clock, Meaning: "written on"},
	}, false)
	_, _ = fmt.Fprintln(k.out(), "")
	return nil
}

// Key renders a glyph table; moods also show the alias to type.
func (k *Key) Key(_ context.Context, glyfs []glyph.Glyph, moods bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if moods {
		tbl.AddRow(bold.Sprint("Moods"), bold.Sprint("Alias"), bold.Sprint("Meaning"))
	} else {
		tbl.AddRow(bold.Sprint("Symbols"), bold.Sprint("Meaning"))
	}
	for _, v := range glyfs {
		if moods {
			tbl.AddRow(v.Symbol, v.Key, v.Meaning)
		} else {
			tbl.AddRow(v.Symbol, v.Meaning)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
}
