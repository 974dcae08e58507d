// Package printers renders entries, calendars and stats for the terminal.
package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/glyph"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 80

// ExcerptLength bounds the content shown on a card.
const ExcerptLength = 160

type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	Width  int
}

var spacing = strings.Repeat(" ", len("0123456789abcdef  "))

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return os.Stdout
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 20 {
		return DefaultWidth
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Empty renders the explicit empty state. hint is shown when filters are
// active and says how to clear them.
func (pp *PrettyPrint) Empty(hint string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintln(pp.out(), "  No entries found.")
	if hint != "" {
		_, _ = f.Fprintf(pp.out(), "  %s\n", hint)
	}
	_, _ = fmt.Fprintln(pp.out())
}

// Cards renders entries in order as cards.
func (pp *PrettyPrint) Cards(entries ...entry.Entry) {
	for i := range entries {
		pp.Card(&entries[i])
	}
}

// Card renders one entry: header line, excerpt, tags and images.
func (pp *PrettyPrint) Card(e *entry.Entry) {
	w := pp.out()
	title := color.New(color.Bold)
	faint := color.New(color.Faint)
	tags := color.New(color.FgCyan)
	id := color.New(color.FgHiYellow, color.Italic, color.Faint)

	pin := "  "
	if e.Favorite {
		pin = glyph.Pin
	}
	_, _ = fmt.Fprintf(w, "%s %s ", pin, e.Mood)
	_, _ = title.Fprint(w, e.Title)
	if d := e.DateLabel(); d != "" {
		_, _ = faint.Fprintf(w, "  %s", d)
	}
	_, _ = fmt.Fprintln(w)
	if pp.ShowID {
		_, _ = id.Fprintf(w, "     %s\n", e.ID)
	}

	body := pp.width() - 5
	if ex := e.Excerpt(ExcerptLength); ex != "" {
		_, _ = fmt.Fprintln(w, indent.String(wordwrap.String(ex, body), 5))
	}
	if tp := e.TagPreview(); tp != "" {
		_, _ = tags.Fprintf(w, "     %s\n", tp)
	}
	if shown, hidden := e.ImagePreview(); len(shown) > 0 {
		line := fmt.Sprintf("%s %d image", glyph.Image, len(e.Images))
		if len(e.Images) != 1 {
			line += "s"
		}
		if hidden > 0 {
			line += fmt.Sprintf(" (+%d more)", hidden)
		}
		_, _ = faint.Fprintf(w, "     %s\n", line)
	}
	_, _ = fmt.Fprintln(w)
}

// Detail renders a single entry in full.
func (pp *PrettyPrint) Detail(e *entry.Entry) {
	w := pp.out()
	faint := color.New(color.Faint)

	pp.Title(fmt.Sprintf("%s %s", e.Mood, e.Title))
	meta := []string{e.DateLabel()}
	if e.Favorite {
		meta = append(meta, glyph.Pin+" pinned")
	}
	if pp.ShowID {
		meta = append(meta, e.ID)
	}
	_, _ = faint.Fprintln(w, strings.Join(meta, "  "))
	_, _ = fmt.Fprintln(w)
	if txt := entry.PlainText(e.Content); txt != "" {
		_, _ = fmt.Fprintln(w, wordwrap.String(txt, pp.width()))
		_, _ = fmt.Fprintln(w)
	}
	if names := e.TagNames(); len(names) > 0 {
		_, _ = color.New(color.FgCyan).Fprintf(w, "#%s\n", strings.Join(names, " #"))
	}
	for _, img := range e.Images {
		_, _ = faint.Fprintf(w, "%s %s\n", glyph.Image, img)
	}
}

// Notice prints a one-line status message.
func (pp *PrettyPrint) Notice(text string) {
	_, _ = color.New(color.Faint).Fprintln(pp.out(), text)
}
