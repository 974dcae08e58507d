package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op describes what happened to a key.
type Op int

const (
	// OpWritten means the key was created or rewritten.
	OpWritten Op = iota
	// OpRemoved means the key was deleted.
	OpRemoved
	// OpUnknown means the watcher lost track and callers should reload.
	OpUnknown
)

func (o Op) String() string {
	switch o {
	case OpWritten:
		return "written"
	case OpRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is emitted by Watch when a key changes on disk.
type Event struct {
	Op  Op
	Key string
}

// WatchDelay is how long Watch waits to coalesce a burst of writes.
const WatchDelay = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. The channel is closed
// when ctx is done or the watcher fails. Events are dropped, not queued, when
// the consumer falls behind.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() { _ = watcher.Close() })
	}

	dirs, err := collectDirs(s.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}
		send := func(ev Event) {
			select {
			case events <- ev:
			default:
			}
		}
		throttle := newEventThrottle(WatchDelay)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Op: OpUnknown}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						dir := filepath.Clean(evt.Name)
						if _, found := watched[dir]; !found && watcher.Add(dir) == nil {
							watched[dir] = struct{}{}
						}
						continue
					}
				}
				key := s.keyForPath(evt.Name)
				if key == "" {
					continue
				}
				op := OpWritten
				if evt.Op.Has(fsnotify.Remove) || evt.Op.Has(fsnotify.Rename) {
					op = OpRemoved
				} else if evt.Op == fsnotify.Chmod {
					continue
				}
				throttle.Enqueue(Event{Op: op, Key: key}, send)
			}
		}
	}()
	return events, nil
}

func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

func (s *Store) keyForPath(path string) string {
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil || rel == "." || filepath.IsAbs(rel) {
		return ""
	}
	return filepath.ToSlash(rel)
}

// eventThrottle keeps the last event per key and flushes them together once
// the delay has passed since the first one.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]Event
	order   []string
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{delay: delay, pending: make(map[string]Event)}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, seen := t.pending[ev.Key]; !seen {
		t.order = append(t.order, ev.Key)
	}
	t.pending[ev.Key] = ev
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() { t.flush(send) })
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending, order := t.pending, t.order
	t.pending = make(map[string]Event)
	t.order = nil
	t.timer = nil
	t.mu.Unlock()

	for _, key := range order {
		send(pending[key])
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
