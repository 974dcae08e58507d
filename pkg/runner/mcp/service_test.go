package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/gateway"
	"tableflip.dev/diary/pkg/gateway/gatewaytest"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func at(month time.Month, day int) entry.Timestamp {
	return entry.Timestamp{Time: time.Date(2025, month, day, 9, 0, 0, 0, time.UTC)}
}

func newService(t *testing.T) (*Service, *gatewaytest.Server) {
	t.Helper()
	srv := gatewaytest.New(
		entry.Entry{ID: "e1", Title: "Morning run", Mood: entry.Happy, CreatedAt: at(time.February, 20), Tags: []entry.Tag{{ID: "t1", Name: "sport"}}},
		entry.Entry{ID: "e2", Title: "Rainy day", Content: "<p>stayed in</p>", Mood: entry.Sad, CreatedAt: at(time.March, 2)},
		entry.Entry{ID: "e3", Title: "Pizza night", Mood: entry.Happy, CreatedAt: at(time.March, 3), Favorite: true},
	)
	t.Cleanup(srv.Close)
	c, err := gateway.New(srv.APIURL(), gateway.WithTokenSource(staticToken(srv.AddUser("a@b.c", "secret1"))))
	if err != nil {
		t.Fatalf("gateway.New failed: %v", err)
	}
	svc := NewService(c)
	svc.Now = func() time.Time { return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC) }
	return svc, srv
}

func ids(dtos []EntryDTO) []string {
	out := make([]string, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.ID)
	}
	return out
}

func TestServiceListFavoritesFirst(t *testing.T) {
	svc, _ := newService(t)

	got, err := svc.ListEntries(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if want := []string{"e3", "e2", "e1"}; !equal(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
	if got[1].Text != "stayed in" {
		t.Fatalf("expected plain text, got %q", got[1].Text)
	}
}

func TestServiceListThisMonthByAlias(t *testing.T) {
	svc, srv := newService(t)

	got, err := svc.ListEntries(context.Background(), ListOptions{Mood: "happy", ThisMonth: true, Sort: "oldest"})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if want := []string{"e3"}; !equal(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
	reqs := srv.Requests()
	q := reqs[len(reqs)-1].Query
	if q["mood"] != string(entry.Happy) || q["sort"] != "oldest" || q["startDate"] != "2025-03-01T00:00:00.000Z" {
		t.Fatalf("unexpected query %v", q)
	}
}

func TestServiceListRejectsUnknownMood(t *testing.T) {
	svc, srv := newService(t)
	before := len(srv.Requests())

	if _, err := svc.ListEntries(context.Background(), ListOptions{Mood: "grumpy"}); err == nil {
		t.Fatalf("expected error for unknown mood")
	}
	if len(srv.Requests()) != before {
		t.Fatalf("expected no request to be sent")
	}
}

func TestServiceToggleFavorite(t *testing.T) {
	svc, _ := newService(t)

	dto, err := svc.ToggleFavorite(context.Background(), "e1")
	if err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if !dto.IsFavorite {
		t.Fatalf("expected e1 to be a favorite")
	}
	dto, err = svc.ToggleFavorite(context.Background(), "e1")
	if err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if dto.IsFavorite {
		t.Fatalf("expected e1 to be unpinned")
	}
}

func TestServiceDeleteNeedsConfirm(t *testing.T) {
	svc, srv := newService(t)

	if err := svc.DeleteEntry(context.Background(), "e2", false); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if len(srv.Entries()) != 3 {
		t.Fatalf("expected nothing deleted")
	}
	if err := svc.DeleteEntry(context.Background(), "e2", true); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if len(srv.Entries()) != 2 {
		t.Fatalf("expected e2 deleted")
	}
}

func TestServiceMoodStats(t *testing.T) {
	svc, _ := newService(t)

	s, err := svc.MoodStats(context.Background())
	if err != nil {
		t.Fatalf("MoodStats failed: %v", err)
	}
	if s.Total != 3 || s.Dominant != string(entry.Happy) {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
