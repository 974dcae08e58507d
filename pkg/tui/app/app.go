// Package app is the full-screen diary dashboard: a searchable, filterable
// list of entry cards driven by an entrylist.Controller.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/entrylist"
	"tableflip.dev/diary/pkg/filter"
	"tableflip.dev/diary/pkg/glyph"
	"tableflip.dev/diary/pkg/session"
	"tableflip.dev/diary/pkg/tui/theme"
)

// ErrSessionEnded is returned by Run when the session expired or another
// process logged out while the dashboard was open.
var ErrSessionEnded = fmt.Errorf("%w: session ended, run `diary login`", apperr.ErrUnauthorized)

// Model states
type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeConfirm
	modeHelp
)

const cardHeight = 4

// Model contains UI state
type Model struct {
	list  *entrylist.Controller
	theme theme.Theme
	log   *slog.Logger
	user  string

	mode   mode
	cursor int
	offset int

	search textinput.Model

	status    string
	statusErr bool

	sessions <-chan session.State
	err      error

	termWidth  int
	termHeight int
}

// Options configures a Model.
type Options struct {
	// User is shown in the header.
	User string
	// Sessions delivers session changes; a logged-out state quits.
	Sessions <-chan session.State
	Log      *slog.Logger
	Theme    *theme.Theme
}

// New creates a new UI model around list.
func New(list *entrylist.Controller, o Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Search entries"
	ti.CharLimit = 256
	ti.Prompt = glyph.Search + " "
	ti.SetValue(list.SearchText())

	th := theme.Default()
	if o.Theme != nil {
		th = *o.Theme
	}
	log := o.Log
	if log == nil {
		log = slog.Default()
	}

	return Model{
		list:     list,
		theme:    th,
		log:      log,
		user:     o.User,
		search:   ti,
		sessions: o.Sessions,
	}
}

type sessionMsg struct {
	state session.State
	ok    bool
}

func waitSession(ch <-chan session.State) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-ch
		return sessionMsg{state: st, ok: ok}
	}
}

// Init loads initial data
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.list.Init(), waitSession(m.sessions))
}

// Err is why the UI quit on its own, if it did.
func (m Model) Err() error { return m.err }

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
	case sessionMsg:
		if !msg.ok {
			break
		}
		if !msg.state.Valid() {
			m.log.Info("session ended elsewhere, quitting")
			m.err = ErrSessionEnded
			return m, tea.Quit
		}
		if msg.state.User.Email != "" {
			m.user = msg.state.User.Email
		}
		cmds = append(cmds, waitSession(m.sessions))
	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKey(msg))
	default:
		cmds = append(cmds, m.list.Update(msg))
	}

	if m.collectNotices() {
		return m, tea.Quit
	}
	m.clampCursor()
	return m, tea.Batch(cmds...)
}

// collectNotices moves controller notices into the status line. It reports
// whether the session was rejected.
func (m *Model) collectNotices() bool {
	for _, n := range m.list.DrainNotices() {
		if n.Err != nil && errors.Is(n.Err, apperr.ErrUnauthorized) {
			m.err = ErrSessionEnded
			return true
		}
		m.status = n.Text
		m.statusErr = n.Level == entrylist.LevelError
	}
	return false
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}

	switch m.mode {
	case modeHelp:
		if key == "q" || key == "esc" || key == "?" {
			m.mode = modeNormal
		}
		return nil
	case modeConfirm:
		switch key {
		case "y", "Y", "enter":
			m.mode = modeNormal
			m.status = "Deleting…"
			m.statusErr = false
			return m.list.ConfirmDelete()
		case "n", "N", "esc", "q":
			m.list.CancelDelete()
			m.mode = modeNormal
			m.status = "Delete cancelled"
			m.statusErr = false
		}
		return nil
	case modeSearch:
		switch key {
		case "enter":
			m.mode = modeNormal
			m.search.Blur()
			return m.list.SubmitSearch()
		case "esc":
			m.mode = modeNormal
			m.search.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return tea.Batch(cmd, m.list.SetSearch(m.search.Value()))
	}

	sel, hasSel := m.selected()
	switch key {
	case "q":
		return tea.Quit
	case "?":
		m.mode = modeHelp
	case "j", "down":
		m.cursor++
	case "k", "up":
		m.cursor--
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = m.list.Len() - 1
	case "/":
		m.mode = modeSearch
		m.search.CursorEnd()
		return m.search.Focus()
	case "m":
		return m.cycleMood()
	case "M":
		return m.list.ClearMood()
	case "T":
		return m.list.ClearTag()
	case "t":
		return m.list.ToggleThisMonth()
	case "s":
		return m.list.ToggleSort()
	case "c":
		m.search.SetValue("")
		return m.list.ClearFilters()
	case "r":
		return m.list.Refresh()
	case "p", " ", "space":
		if hasSel {
			return m.list.TogglePin(sel.ID)
		}
	case "f":
		if hasSel {
			return m.list.FilterByMood(sel.ID)
		}
	case "#":
		if hasSel && len(sel.Tags) > 0 {
			return m.list.FilterByTag(sel.ID, sel.Tags[0].Name)
		}
	case "d", "x":
		if hasSel && m.list.RequestDelete(sel.ID) {
			m.mode = modeConfirm
		}
	}
	return nil
}

// cycleMood walks the palette; past the last mood the filter is cleared.
func (m *Model) cycleMood() tea.Cmd {
	cur, ok := m.list.Filter().Mood()
	if !ok {
		return m.list.SetMood(entry.DefaultMood)
	}
	moods := entry.Moods()
	if cur == moods[len(moods)-1] {
		return m.list.ClearMood()
	}
	return m.list.SetMood(cur.Next())
}

func (m *Model) selected() (entry.Entry, bool) {
	es := m.list.Entries()
	if m.cursor < 0 || m.cursor >= len(es) {
		return entry.Entry{}, false
	}
	return es[m.cursor], true
}

func (m *Model) clampCursor() {
	n := m.list.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	visible := m.visibleCards()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m Model) width() int {
	if m.termWidth <= 0 {
		return 80
	}
	return m.termWidth
}

func (m Model) visibleCards() int {
	if m.termHeight <= 0 {
		return 5
	}
	n := (m.termHeight - 6) / cardHeight
	if n < 1 {
		n = 1
	}
	return n
}

// View renders the header, filter bar, cards and footer.
func (m Model) View() string {
	parts := []string{m.viewHeader(), m.viewFilters(), "", m.viewBody()}

	switch m.mode {
	case modeConfirm:
		if e, ok := m.list.PendingDelete(); ok {
			parts = append(parts, m.viewConfirm(e))
		}
	case modeHelp:
		parts = append(parts, m.viewHelp())
	}

	parts = append(parts, "", m.viewFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewHeader() string {
	h := m.theme.Header
	title := h.Title.Render("Mood Diary")
	if m.user == "" {
		return title
	}
	return title + "  " + h.User.Render(m.user)
}

func (m Model) viewFilters() string {
	h := m.theme.Header
	f := m.list.Filter()

	chip := func(label string, on bool) string {
		if on {
			return h.ActiveChip.Render(label)
		}
		return h.Chip.Render(label)
	}

	moodLabel := "mood: any"
	mood, hasMood := f.Mood()
	if hasMood {
		moodLabel = "mood: " + string(mood)
	}
	tagLabel := "tag: any"
	tag, hasTag := f.Tag()
	if hasTag {
		tagLabel = "tag: #" + tag
	}
	search := m.search.View()
	if m.list.SearchPending() {
		search += h.Chip.Render("…")
	}
	items := []string{
		search,
		chip(moodLabel, hasMood),
		chip(tagLabel, hasTag),
		chip(glyph.Clock+" this month", f.ThisMonth()),
		chip("sort: "+string(f.Sort()), f.Sort() == entry.Oldest),
	}
	if !f.Equal(filter.New()) {
		items = append(items, h.Clear.Render("[c] clear"))
	}
	return strings.Join(items, " ")
}

func (m Model) viewBody() string {
	c := m.theme.Card
	if m.list.Len() == 0 {
		if m.list.Loading() {
			return c.Empty.Render("  Loading…")
		}
		if !m.list.Empty() {
			return ""
		}
		lines := []string{c.Empty.Render("  No entries found.")}
		if m.list.Filter().Active() {
			lines = append(lines, c.Empty.Render("  Press c to clear the filters."))
		} else {
			lines = append(lines, c.Empty.Render("  Write your first entry with `diary new`."))
		}
		return strings.Join(lines, "\n")
	}

	es := m.list.Entries()
	end := m.offset + m.visibleCards()
	if end > len(es) {
		end = len(es)
	}
	cards := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		cards = append(cards, m.viewCard(&es[i], i == m.cursor))
	}
	return strings.Join(cards, "\n")
}

func (m Model) viewCard(e *entry.Entry, selected bool) string {
	c := m.theme.Card
	w := uint(m.width() - 4)

	marker := "  "
	title := c.Title
	if selected {
		marker = c.Marker.Render("→ ")
		title = c.SelectedTitle
	}
	pin := "  "
	if e.Favorite {
		pin = glyph.Pin
	}
	head := fmt.Sprintf("%s%s %s %s  %s", marker, pin, e.Mood, title.Render(e.Title), c.Date.Render(e.DateLabel()))

	excerpt := truncate.StringWithTail(e.Excerpt(200), w, "…")

	meta := []string{}
	if tags := e.TagPreview(); tags != "" {
		meta = append(meta, tags)
	}
	if shown, more := e.ImagePreview(); len(shown) > 0 {
		label := fmt.Sprintf("%s %d", glyph.Image, len(shown))
		if more > 0 {
			label += fmt.Sprintf(" +%d", more)
		}
		meta = append(meta, label)
	}

	return strings.Join([]string{
		head,
		"     " + c.Excerpt.Render(excerpt),
		"     " + c.Meta.Render(strings.Join(meta, "  ")),
	}, "\n") + "\n"
}

func (m Model) viewConfirm(e entry.Entry) string {
	md := m.theme.Modal
	body := md.Title.Render("Delete entry?") + "\n\n" +
		md.Body.Render(fmt.Sprintf("%s %s (%s)", e.Mood, e.Title, e.DateLabel())) + "\n\n" +
		md.Body.Render("y to delete, n to keep")
	return md.Frame.Render(body)
}

func (m Model) viewHelp() string {
	md := m.theme.Modal
	lines := []string{
		"j/k or ↑/↓  move",
		"/           search (enter applies now)",
		"m / M       cycle mood / any mood",
		"f           only the selected entry's mood",
		"#  / T      only its first tag / any tag",
		"t           this month only",
		"s           newest or oldest first",
		"c           clear filters",
		"p or space  pin or unpin",
		"d           delete (asks first)",
		"r           refresh",
		"q           quit",
	}
	return md.Frame.Render(md.Title.Render("Keys") + "\n\n" + md.Body.Render(strings.Join(lines, "\n")))
}

func (m Model) viewFooter() string {
	ft := m.theme.Footer
	status := ""
	if m.status != "" {
		if m.statusErr {
			status = ft.Error.Render(m.status) + "  "
		} else {
			status = ft.Status.Render(m.status) + "  "
		}
	}
	count := ft.Status.Render(fmt.Sprintf("%d entries", m.list.Len()))
	return status + count + "  " + ft.Help.Render("/ search · m mood · t month · s sort · p pin · d delete · ? help · q quit")
}

// Run starts the program and blocks until it exits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
