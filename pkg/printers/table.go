package printers

import (
	"fmt"

	"github.com/gosuri/uitable"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/glyph"
)

// Table renders entries one per row.
func (pp *PrettyPrint) Table(entries ...entry.Entry) {
	t := uitable.New()
	t.MaxColWidth = uint(pp.width() / 3)
	t.Wrap = true

	header := []any{"", "MOOD", "DATE", "TITLE", "TAGS"}
	if pp.ShowID {
		header = append([]any{"ID"}, header...)
	}
	t.AddRow(header...)
	for i := range entries {
		e := &entries[i]
		pin := ""
		if e.Favorite {
			pin = glyph.Pin
		}
		row := []any{pin, e.Mood, e.DateLabel(), e.Title, e.TagPreview()}
		if pp.ShowID {
			row = append([]any{e.ID}, row...)
		}
		t.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), t)
}
