package entrylist

import (
	tea "github.com/charmbracelet/bubbletea/v2"
)

// Run executes cmd and every command its messages lead to, feeding each
// message back through Update, until nothing is left. It is how the
// sequential CLI commands drive a Controller without a Bubble Tea program.
func (c *Controller) Run(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		queue = append(queue, c.Update(msg))
	}
}
