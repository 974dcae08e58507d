package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/diary/pkg/calendar"
)

// cellWidth fits three moods (two columns each) and a space.
const cellWidth = 7

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Calendar prints m as a week grid: day numbers, then the first moods of
// each day underneath.
func (pp *PrettyPrint) Calendar(m calendar.Month, now time.Time) {
	w := pp.out()
	total := cellWidth * 7

	tf := color.New(color.Bold)
	title := m.Title()
	mid := (total - len(title)) / 2
	_, _ = tf.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), title)

	head := color.New(color.Faint)
	for _, d := range weekdays {
		_, _ = head.Fprint(w, pad(d, cellWidth))
	}
	_, _ = fmt.Fprintln(w)

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	today := color.New(color.Bold, color.Underline)

	for _, week := range m.Weeks(now) {
		for _, c := range week {
			switch {
			case c.Day == 0:
				_, _ = fmt.Fprint(w, pad("", cellWidth))
			case c.Today:
				_, _ = today.Fprint(w, fmt.Sprintf("%2d", c.Day))
				_, _ = fmt.Fprint(w, pad("", cellWidth-2))
			case c.Count == 0:
				_, _ = l1.Fprint(w, pad(fmt.Sprintf("%2d", c.Day), cellWidth))
			default:
				_, _ = l2.Fprint(w, pad(fmt.Sprintf("%2d", c.Day), cellWidth))
			}
		}
		_, _ = fmt.Fprintln(w)
		for _, c := range week {
			var b strings.Builder
			for _, m := range c.Moods {
				b.WriteString(string(m))
			}
			_, _ = fmt.Fprint(w, pad(b.String(), cellWidth))
		}
		_, _ = fmt.Fprintln(w)
	}
	_, _ = fmt.Fprintln(w)
}

// pad right-pads s to width printable columns.
func pad(s string, width int) string {
	n := ansi.PrintableRuneWidth(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
