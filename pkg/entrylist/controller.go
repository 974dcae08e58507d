// Package entrylist keeps a rendered list of diary entries in step with the
// committed filter and with optimistic local edits.
//
// The Controller is driven from a single Bubble Tea Update loop. Every
// network call is returned as a tea.Cmd and its result comes back as a
// message, so the collection is only ever mutated from that loop.
package entrylist

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/debounce"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/filter"
	"tableflip.dev/diary/pkg/gateway"
)

// Gateway is the part of the API the list needs.
type Gateway interface {
	ListEntries(ctx context.Context, q gateway.ListQuery) ([]entry.Entry, error)
	UpdateEntry(ctx context.Context, id string, p gateway.EntryPatch) (entry.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// Controller owns the entry collection and the filter that produced it.
type Controller struct {
	gw     Gateway
	log    *slog.Logger
	now    func() time.Time
	parent context.Context

	search *debounce.Value
	filter filter.State

	entries []entry.Entry
	fetched bool
	loading bool

	seq    uint64
	cancel context.CancelFunc

	pendingDelete string
	notices       []Notice
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now; the this-month window is computed from it.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger used for failures and dropped responses.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithDebounce sets the search quiet period.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		c.search = debounce.New(d)
	}
}

// WithContext sets the parent of every request context.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.parent = ctx
		}
	}
}

// WithFilter starts the controller from an existing query instead of the
// default one.
func WithFilter(f filter.State) Option {
	return func(c *Controller) {
		c.filter = f
	}
}

// New returns a controller with the default filter. Nothing is fetched until
// Init's command runs.
func New(gw Gateway, opts ...Option) *Controller {
	c := &Controller{
		gw:     gw,
		log:    slog.Default(),
		now:    time.Now,
		parent: context.Background(),
		filter: filter.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.search == nil {
		c.search = debounce.New(debounce.DefaultInterval)
	}
	c.search.Reset(c.filter.Search())
	return c
}

type fetchedMsg struct {
	seq     uint64
	entries []entry.Entry
	err     error
}

type pinnedMsg struct {
	id       string
	favorite bool
	err      error
}

type deletedMsg struct {
	id  string
	err error
}

// Init issues the first fetch.
func (c *Controller) Init() tea.Cmd {
	return c.fetch()
}

// Update applies a message produced by one of the controller's commands.
// Messages it does not recognise are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case fetchedMsg:
		c.applyFetch(msg)
	case pinnedMsg:
		if msg.err != nil {
			c.fail("update favorite", msg.err)
			return c.fetch()
		}
		c.log.Debug("favorite saved", slog.String("id", msg.id), slog.Bool("favorite", msg.favorite))
	case deletedMsg:
		if msg.err != nil {
			c.fail("delete entry", msg.err)
			return nil
		}
		c.entries = entry.Without(c.entries, msg.id)
		c.notify(Notice{Level: LevelInfo, Text: "Entry deleted"})
	case debounce.SettledMsg:
		if v, ok := c.search.Settle(msg); ok {
			return c.change(func(f *filter.State) bool { return f.SetSearch(v) })
		}
	}
	return nil
}

// Refresh refetches with the current query.
func (c *Controller) Refresh() tea.Cmd {
	return c.fetch()
}

func (c *Controller) fetch() tea.Cmd {
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	ctx, cancel := context.WithCancel(c.parent)
	c.cancel = cancel
	c.loading = true

	q := c.filter.ToQueryParams(c.now())
	gw := c.gw
	c.log.Debug("fetching entries", slog.Uint64("seq", seq), slog.String("filter", c.filter.String()))
	return func() tea.Msg {
		entries, err := gw.ListEntries(ctx, q)
		return fetchedMsg{seq: seq, entries: entries, err: err}
	}
}

func (c *Controller) applyFetch(msg fetchedMsg) {
	if msg.seq != c.seq {
		c.log.Debug("dropping superseded fetch", slog.Uint64("seq", msg.seq), slog.Uint64("latest", c.seq))
		return
	}
	c.loading = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if msg.err != nil {
		c.fail("load entries", msg.err)
		return
	}
	c.entries = entry.FavoritesFirst(msg.entries)
	c.fetched = true
	if c.pendingDelete != "" && entry.IndexOf(c.entries, c.pendingDelete) < 0 {
		c.pendingDelete = ""
	}
}

// change runs mutate against the filter and fetches only if it changed.
func (c *Controller) change(mutate func(*filter.State) bool) tea.Cmd {
	if !mutate(&c.filter) {
		return nil
	}
	return c.fetch()
}

// SetSearch records typed search text. The returned tick settles it after
// the quiet period; the fetch follows from Update.
func (c *Controller) SetSearch(raw string) tea.Cmd {
	return c.search.Set(raw)
}

// SubmitSearch commits the typed search text without waiting.
func (c *Controller) SubmitSearch() tea.Cmd {
	v, ok := c.search.Flush()
	if !ok {
		return nil
	}
	return c.change(func(f *filter.State) bool { return f.SetSearch(v) })
}

// SearchText returns the search text as typed.
func (c *Controller) SearchText() string { return c.search.Raw() }

// SearchPending reports whether typed text is still waiting out the quiet
// period.
func (c *Controller) SearchPending() bool { return c.search.Pending() }

// SetMood narrows the list to one mood.
func (c *Controller) SetMood(m entry.Mood) tea.Cmd {
	return c.change(func(f *filter.State) bool { return f.SetMood(m) })
}

// ClearMood removes the mood constraint.
func (c *Controller) ClearMood() tea.Cmd {
	return c.change((*filter.State).ClearMood)
}

// SetTag narrows the list to one tag name.
func (c *Controller) SetTag(name string) tea.Cmd {
	return c.change(func(f *filter.State) bool { return f.SetTag(name) })
}

// ClearTag removes the tag constraint.
func (c *Controller) ClearTag() tea.Cmd {
	return c.change((*filter.State).ClearTag)
}

// SetThisMonth turns the current-month window on or off.
func (c *Controller) SetThisMonth(on bool) tea.Cmd {
	return c.change(func(f *filter.State) bool { return f.SetThisMonth(on) })
}

// ToggleThisMonth flips the current-month window.
func (c *Controller) ToggleThisMonth() tea.Cmd {
	return c.change((*filter.State).ToggleThisMonth)
}

// SetSort sets the server sort order.
func (c *Controller) SetSort(o entry.SortOrder) tea.Cmd {
	return c.change(func(f *filter.State) bool { return f.SetSort(o) })
}

// ToggleSort flips between newest and oldest first.
func (c *Controller) ToggleSort() tea.Cmd {
	return c.change((*filter.State).ToggleSort)
}

// ClearFilters resets every dimension at once, including typed but unsettled
// search text, and fetches at most once.
func (c *Controller) ClearFilters() tea.Cmd {
	c.search.Reset("")
	return c.change((*filter.State).Clear)
}

// FilterByMood applies the mood of entry id as a filter.
func (c *Controller) FilterByMood(id string) tea.Cmd {
	i := entry.IndexOf(c.entries, id)
	if i < 0 {
		return nil
	}
	return c.SetMood(c.entries[i].Mood)
}

// FilterByTag applies one of entry id's tags as a filter.
func (c *Controller) FilterByTag(id, tag string) tea.Cmd {
	i := entry.IndexOf(c.entries, id)
	if i < 0 || !c.entries[i].HasTag(tag) {
		return nil
	}
	return c.SetTag(tag)
}

// TogglePin flips the favorite flag of entry id locally, re-partitions the
// list and returns the request that saves it. A failed save refetches.
func (c *Controller) TogglePin(id string) tea.Cmd {
	i := entry.IndexOf(c.entries, id)
	if i < 0 {
		return nil
	}
	want := !c.entries[i].Favorite
	c.entries[i].Favorite = want
	c.entries = entry.FavoritesFirst(c.entries)

	ctx, gw := c.parent, c.gw
	return func() tea.Msg {
		_, err := gw.UpdateEntry(ctx, id, gateway.FavoritePatch(want))
		return pinnedMsg{id: id, favorite: want, err: err}
	}
}

// RequestDelete marks entry id as awaiting confirmation. Nothing is sent.
func (c *Controller) RequestDelete(id string) bool {
	if entry.IndexOf(c.entries, id) < 0 {
		return false
	}
	c.pendingDelete = id
	return true
}

// PendingDelete returns the entry awaiting confirmation, if any.
func (c *Controller) PendingDelete() (entry.Entry, bool) {
	if c.pendingDelete == "" {
		return entry.Entry{}, false
	}
	i := entry.IndexOf(c.entries, c.pendingDelete)
	if i < 0 {
		return entry.Entry{}, false
	}
	return c.entries[i].Clone(), true
}

// CancelDelete drops a pending confirmation.
func (c *Controller) CancelDelete() {
	c.pendingDelete = ""
}

// ConfirmDelete sends the delete for the pending entry. The entry stays in
// the list until the server confirms.
func (c *Controller) ConfirmDelete() tea.Cmd {
	id := c.pendingDelete
	if id == "" {
		return nil
	}
	c.pendingDelete = ""
	ctx, gw := c.parent, c.gw
	return func() tea.Msg {
		return deletedMsg{id: id, err: gw.DeleteEntry(ctx, id)}
	}
}

// Entries returns a copy of the rendered list.
func (c *Controller) Entries() []entry.Entry {
	out := make([]entry.Entry, len(c.entries))
	for i := range c.entries {
		out[i] = c.entries[i].Clone()
	}
	return out
}

// Entry returns one entry from the rendered list.
func (c *Controller) Entry(id string) (entry.Entry, bool) {
	i := entry.IndexOf(c.entries, id)
	if i < 0 {
		return entry.Entry{}, false
	}
	return c.entries[i].Clone(), true
}

// Len is the number of rendered entries.
func (c *Controller) Len() int { return len(c.entries) }

// Loading reports whether the latest fetch is still in flight.
func (c *Controller) Loading() bool { return c.loading }

// Empty reports whether a completed fetch produced nothing to show.
func (c *Controller) Empty() bool {
	return c.fetched && !c.loading && len(c.entries) == 0
}

// Filter returns the committed query.
func (c *Controller) Filter() filter.State { return c.filter }

// Close cancels any in-flight fetch.
func (c *Controller) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) fail(op string, err error) {
	if apperr.KindOf(err) == apperr.KindCancelled {
		c.log.Debug(op+" cancelled", slog.String("error", err.Error()))
		return
	}
	c.log.Warn(op+" failed", slog.String("error", err.Error()), slog.String("kind", string(apperr.KindOf(err))))
	c.notify(Notice{Level: LevelError, Text: failureText(op, err), Err: err})
}
