package logctx

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestIntoFrom(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := Into(context.Background(), l)
	From(ctx).Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected log output, got %q", buf.String())
	}
	if From(context.Background()) != slog.Default() {
		t.Fatalf("expected default logger without value")
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	if err != nil || lvl != slog.LevelDebug {
		t.Fatalf("unexpected level %v (%v)", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.log")
	l, closeFn, err := New(slog.LevelInfo, path, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Info("written")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
