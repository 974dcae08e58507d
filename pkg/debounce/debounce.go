// Package debounce delays a rapidly changing text value until it has been
// quiet for an interval, using Bubble Tea ticks.
package debounce

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// DefaultInterval is the quiet period before a value settles.
const DefaultInterval = 500 * time.Millisecond

var lastID atomic.Int64

// SettledMsg is delivered when a tick started by Set fires. Only the tick
// carrying the latest sequence number settles the value.
type SettledMsg struct {
	ID  int64
	Seq uint64
}

// Value holds the raw value shown to the user and the settled value used to
// trigger work.
type Value struct {
	id       int64
	interval time.Duration
	raw      string
	settled  string
	seq      uint64
}

// New returns a debounced value. A non-positive interval settles on the next
// tick.
func New(interval time.Duration) *Value {
	if interval < 0 {
		interval = 0
	}
	return &Value{
		id:       lastID.Add(1),
		interval: interval,
	}
}

// Raw returns the value as typed.
func (v *Value) Raw() string { return v.raw }

// Settled returns the last value that survived a full quiet period.
func (v *Value) Settled() string { return v.settled }

// Pending reports whether the raw value has not settled yet.
func (v *Value) Pending() bool { return v.raw != v.settled }

// Set records a new raw value and returns the tick that may settle it.
// Unchanged input returns nil.
func (v *Value) Set(raw string) tea.Cmd {
	if raw == v.raw {
		return nil
	}
	v.raw = raw
	v.seq++
	id, seq := v.id, v.seq
	return tea.Tick(v.interval, func(time.Time) tea.Msg {
		return SettledMsg{ID: id, Seq: seq}
	})
}

// Settle consumes a tick. It returns the settled value and true only when
// msg is the most recent tick for this value and the settled value changed.
func (v *Value) Settle(msg SettledMsg) (string, bool) {
	if msg.ID != v.id || msg.Seq != v.seq {
		return v.settled, false
	}
	if v.settled == v.raw {
		return v.settled, false
	}
	v.settled = v.raw
	return v.settled, true
}

// Flush settles the raw value immediately, invalidating outstanding ticks.
func (v *Value) Flush() (string, bool) {
	v.seq++
	if v.settled == v.raw {
		return v.settled, false
	}
	v.settled = v.raw
	return v.settled, true
}

// Reset sets both raw and settled values without a tick, invalidating any
// outstanding ones.
func (v *Value) Reset(s string) {
	v.seq++
	v.raw = s
	v.settled = s
}
