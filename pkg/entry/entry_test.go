package entry

import (
	"encoding/json"
	"testing"
	"time"
)

func entries(keys ...string) []Entry {
	// keys are "<id>" or "<id>*" for favorites.
	out := make([]Entry, 0, len(keys))
	for _, s := range keys {
		fav := false
		if len(s) > 0 && s[len(s)-1] == '*' {
			fav = true
			s = s[:len(s)-1]
		}
		out = append(out, Entry{ID: s, Favorite: fav})
	}
	return out
}

func ids(list []Entry) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.ID)
	}
	return out
}

func TestFavoritesFirstIsStablePartition(t *testing.T) {
	in := entries("a", "b*", "c", "d*", "e", "f*")
	got := ids(FavoritesFirst(in))
	want := []string{"b", "d", "f", "a", "c", "e"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: want %s, got %s (full %v)", i, want[i], got[i], got)
		}
	}
	if ids(in)[0] != "a" {
		t.Fatalf("input should not be reordered in place")
	}
}

func TestFavoritesFirstNoFavoriteBeforeNonFavorite(t *testing.T) {
	cases := [][]string{
		{},
		{"a"},
		{"a*"},
		{"a", "b", "c"},
		{"a*", "b*"},
		{"a", "b*", "c", "d", "e*"},
	}
	for _, keys := range cases {
		out := FavoritesFirst(entries(keys...))
		seenPlain := false
		for _, e := range out {
			if !e.Favorite {
				seenPlain = true
				continue
			}
			if seenPlain {
				t.Fatalf("%v: favorite %s appears after a non-favorite", keys, e.ID)
			}
		}
	}
}

func TestWithoutRemovesOnlyTarget(t *testing.T) {
	got := ids(Without(entries("a", "b", "c"), "b"))
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("unexpected result %v", got)
	}
	if IndexOf(entries("a", "b"), "z") != -1 {
		t.Fatalf("expected -1 for missing id")
	}
}

func TestParseMood(t *testing.T) {
	for in, want := range map[string]Mood{
		"😀":      Happy,
		"happy":  Happy,
		"SAD":    Sad,
		" 🥳 ":    Party,
		"party":  Party,
		"sleepy": Sleepy,
	} {
		got, err := ParseMood(in)
		if err != nil {
			t.Fatalf("ParseMood(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMood(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseMood("grumpy"); err == nil {
		t.Fatalf("expected error for unknown mood")
	}
	if len(Moods()) != 8 {
		t.Fatalf("expected eight moods, got %d", len(Moods()))
	}
	if Party.Next() != Happy {
		t.Fatalf("expected palette to wrap around")
	}
}

func TestTagPreviewOverflow(t *testing.T) {
	e := Entry{Tags: []Tag{{ID: "1", Name: "work"}, {ID: "2", Name: "home"}, {ID: "3", Name: "gym"}, {ID: "4", Name: "food"}, {ID: "5", Name: "rest"}}}
	if got := e.TagPreview(); got != "#work #home #gym +2" {
		t.Fatalf("unexpected preview %q", got)
	}
	e.Images = []string{"a", "b", "c", "d"}
	shown, hidden := e.ImagePreview()
	if len(shown) != 3 || hidden != 1 {
		t.Fatalf("unexpected image preview %v +%d", shown, hidden)
	}
}

func TestEntryJSONRoundTripFields(t *testing.T) {
	raw := `{"id":"e1","title":"Walk","content":"<p>hi</p>","mood":"😀","tags":[{"id":"t1","name":"outside"}],"createdAt":"2025-03-04T10:15:00.000Z","isFavorite":true,"images":["http://x/1.png"]}`
	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !e.Favorite || e.Mood != Happy || e.Tags[0].Name != "outside" {
		t.Fatalf("unexpected entry %#v", e)
	}
	if !e.CreatedAt.Equal(time.Date(2025, time.March, 4, 10, 15, 0, 0, time.UTC)) {
		t.Fatalf("unexpected createdAt %v", e.CreatedAt)
	}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal back: %v", err)
	}
	if back["createdAt"] != "2025-03-04T10:15:00.000Z" {
		t.Fatalf("unexpected createdAt encoding %v", back["createdAt"])
	}
	if back["isFavorite"] != true {
		t.Fatalf("expected isFavorite key")
	}
}

func TestParseSortOrder(t *testing.T) {
	if s, _ := ParseSortOrder(""); s != Newest {
		t.Fatalf("expected default newest")
	}
	if s, _ := ParseSortOrder("Oldest"); s != Oldest {
		t.Fatalf("expected oldest")
	}
	if _, err := ParseSortOrder("random"); err == nil {
		t.Fatalf("expected error")
	}
	if Newest.Toggle() != Oldest || Oldest.Toggle() != Newest {
		t.Fatalf("toggle mismatch")
	}
}

func TestPlainText(t *testing.T) {
	tests := map[string]struct {
		in   string
		want string
	}{
		"plain":      {in: "  just text ", want: "just text"},
		"paragraphs": {in: "<p>first</p><p>second &amp; third</p>", want: "first\nsecond & third"},
		"breaks":     {in: "<p>a<br>b</p><p></p><p></p><p>c</p>", want: "a\nb\n\nc"},
		"script":     {in: "<p>ok</p><script>alert(1)</script>", want: "ok"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := PlainText(tc.in); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParagraphsEscapes(t *testing.T) {
	got := Paragraphs("fish & chips\n\n<b>bold</b>")
	want := "<p>fish &amp; chips</p><p>&lt;b&gt;bold&lt;/b&gt;</p>"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if PlainText(got) != "fish & chips\n<b>bold</b>" {
		t.Errorf("round trip lost text: %q", PlainText(got))
	}
}

func TestExcerpt(t *testing.T) {
	e := Entry{Content: "<p>hello</p><p>wonderful world</p>"}
	if got := e.Excerpt(9); got != "hello won…" {
		t.Errorf("unexpected excerpt %q", got)
	}
	if got := e.Excerpt(100); got != "hello wonderful world" {
		t.Errorf("unexpected excerpt %q", got)
	}
}
