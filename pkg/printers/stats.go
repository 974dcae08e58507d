package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/diary/pkg/analytics"
)

const barWidth = 20

// Stats prints the mood summary.
func (pp *PrettyPrint) Stats(s analytics.Summary) {
	w := pp.out()
	pp.Title("Mood insights")
	faint := color.New(color.Faint)
	_, _ = faint.Fprintf(w, "Total entries: %d\n", s.Total)
	_, _ = faint.Fprintf(w, "Dominant mood: %s\n\n", s.Dominant)
	if len(s.Shares) == 0 {
		pp.Empty("Write an entry to start tracking your moods.")
		return
	}

	t := uitable.New()
	t.AddRow("MOOD", "", "COUNT", "SHARE", "")
	for _, sh := range s.Shares {
		n := int(sh.Percent*barWidth/100 + 0.5)
		t.AddRow(sh.Mood, sh.Alias, sh.Count, fmt.Sprintf("%.1f%%", sh.Percent), strings.Repeat("█", n))
	}
	_, _ = fmt.Fprintln(w, t)
}
