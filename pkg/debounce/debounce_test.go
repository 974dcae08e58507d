package debounce

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

func settle(t *testing.T, cmd tea.Cmd) SettledMsg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a tick command")
	}
	msg, ok := cmd().(SettledMsg)
	if !ok {
		t.Fatalf("expected SettledMsg")
	}
	return msg
}

func TestRapidChangesSettleOnce(t *testing.T) {
	v := New(time.Millisecond)
	var ticks []tea.Cmd
	for _, s := range []string{"r", "ra", "rai", "rain"} {
		ticks = append(ticks, v.Set(s))
	}
	if v.Raw() != "rain" {
		t.Fatalf("raw value should update immediately, got %q", v.Raw())
	}
	if v.Settled() != "" || !v.Pending() {
		t.Fatalf("nothing should settle before the quiet period")
	}

	settledCount := 0
	var last string
	for _, cmd := range ticks {
		if got, ok := v.Settle(settle(t, cmd)); ok {
			settledCount++
			last = got
		}
	}
	if settledCount != 1 {
		t.Fatalf("expected exactly one settled value, got %d", settledCount)
	}
	if last != "rain" {
		t.Fatalf("expected final value, got %q", last)
	}
}

func TestSettleIgnoresOtherValues(t *testing.T) {
	a := New(time.Millisecond)
	b := New(time.Millisecond)
	msg := settle(t, a.Set("x"))
	b.Set("y")
	if _, ok := b.Settle(msg); ok {
		t.Fatalf("b must not settle on a's tick")
	}
	if _, ok := a.Settle(msg); !ok {
		t.Fatalf("a should settle on its own tick")
	}
}

func TestRevertingToSettledValueDoesNotFire(t *testing.T) {
	v := New(time.Millisecond)
	v.Settle(settle(t, v.Set("sun")))
	v.Set("sunn")
	cmd := v.Set("sun")
	if _, ok := v.Settle(settle(t, cmd)); ok {
		t.Fatalf("value returned to the settled text; nothing should fire")
	}
}

func TestSetSameValueIsNoop(t *testing.T) {
	v := New(DefaultInterval)
	if v.Set("") != nil {
		t.Fatalf("unchanged value should not start a tick")
	}
}

func TestFlushAndReset(t *testing.T) {
	v := New(time.Millisecond)
	cmd := v.Set("walk")
	if got, ok := v.Flush(); !ok || got != "walk" {
		t.Fatalf("flush should settle immediately, got %q %v", got, ok)
	}
	if _, ok := v.Settle(settle(t, cmd)); ok {
		t.Fatalf("tick outstanding before flush must be ignored")
	}
	cmd = v.Set("walking")
	v.Reset("")
	if _, ok := v.Settle(settle(t, cmd)); ok {
		t.Fatalf("tick outstanding before reset must be ignored")
	}
	if v.Raw() != "" || v.Settled() != "" {
		t.Fatalf("reset should clear both values")
	}
}
