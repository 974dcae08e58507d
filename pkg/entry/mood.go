package entry

import (
	"fmt"
	"strings"

	"tableflip.dev/diary/pkg/glyph"
)

// Mood is one of the fixed emoji moods an entry can carry.
type Mood string

const (
	Happy    Mood = "😀"
	Neutral  Mood = "😐"
	Sad      Mood = "😢"
	Angry    Mood = "😡"
	Sleepy   Mood = "😴"
	Excited  Mood = "🤩"
	Thinking Mood = "🤔"
	Party    Mood = "🥳"
)

// DefaultMood is preselected for new entries.
const DefaultMood = Happy

// Moods returns every mood in palette order.
func Moods() []Mood {
	moods := glyph.DefaultMoods()
	out := make([]Mood, 0, len(moods))
	for _, g := range moods {
		out = append(out, Mood(g.Symbol))
	}
	return out
}

// MoodAliases returns the typed aliases accepted by ParseMood.
func MoodAliases() []string {
	moods := glyph.DefaultMoods()
	out := make([]string, 0, len(moods))
	for _, g := range moods {
		out = append(out, g.Key)
	}
	return out
}

// ParseMood accepts either the emoji itself or its alias ("happy", "sad", ...).
func ParseMood(v string) (Mood, error) {
	v = strings.TrimSpace(v)
	for _, g := range glyph.DefaultMoods() {
		if v == g.Symbol || strings.EqualFold(v, g.Key) {
			return Mood(g.Symbol), nil
		}
	}
	return "", fmt.Errorf("unknown mood %q (want one of %s)", v, strings.Join(MoodAliases(), ", "))
}

// Valid reports whether m is part of the palette.
func (m Mood) Valid() bool {
	for _, g := range glyph.DefaultMoods() {
		if string(m) == g.Symbol {
			return true
		}
	}
	return false
}

// Alias returns the typed name for m, or the raw value when unknown.
func (m Mood) Alias() string {
	for _, g := range glyph.DefaultMoods() {
		if string(m) == g.Symbol {
			return g.Key
		}
	}
	return string(m)
}

// Next cycles through the palette; the empty mood advances to the first one.
func (m Mood) Next() Mood {
	moods := Moods()
	for i, candidate := range moods {
		if candidate == m {
			return moods[(i+1)%len(moods)]
		}
	}
	return moods[0]
}

func (m Mood) String() string {
	return string(m)
}
