// Package analytics summarises the mood distribution returned by the API.
package analytics

import (
	"context"
	"fmt"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/gateway"
)

// NoMood is shown as the dominant mood when there is nothing to count.
const NoMood = "N/A"

// Share is one mood's slice of the total.
type Share struct {
	Mood    entry.Mood `json:"mood" yaml:"mood"`
	Alias   string     `json:"alias" yaml:"alias"`
	Count   int        `json:"count" yaml:"count"`
	Percent float64    `json:"percent" yaml:"percent"`
}

// Summary is what the stats views render.
type Summary struct {
	Total    int     `json:"totalEntries" yaml:"totalEntries"`
	Dominant string  `json:"dominantMood" yaml:"dominantMood"`
	Shares   []Share `json:"moods" yaml:"moods"`
}

// Source fetches the raw distribution.
type Source interface {
	Analytics(ctx context.Context) (gateway.Analytics, error)
}

// Load fetches and summarises.
func Load(ctx context.Context, src Source) (Summary, error) {
	a, err := src.Analytics(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load analytics: %w", err)
	}
	return Summarize(a), nil
}

// Summarize computes shares in server order. The dominant mood is the
// highest count; ties go to the mood listed first.
func Summarize(a gateway.Analytics) Summary {
	s := Summary{Total: a.TotalEntries, Dominant: NoMood, Shares: []Share{}}
	counted := 0
	for _, st := range a.MoodDistribution {
		counted += st.Value
	}
	denom := a.TotalEntries
	if denom < counted {
		denom = counted
	}

	best := 0
	for _, st := range a.MoodDistribution {
		m := entry.Mood(st.Name)
		sh := Share{Mood: m, Alias: m.Alias(), Count: st.Value}
		if denom > 0 {
			sh.Percent = float64(st.Value) * 100 / float64(denom)
		}
		s.Shares = append(s.Shares, sh)
		if st.Value > best {
			best = st.Value
			s.Dominant = st.Name
		}
	}
	return s
}

// FromEntries builds the same distribution locally, in first-seen order.
func FromEntries(entries []entry.Entry) gateway.Analytics {
	idx := map[entry.Mood]int{}
	a := gateway.Analytics{TotalEntries: len(entries), MoodDistribution: []gateway.MoodStat{}}
	for _, e := range entries {
		i, ok := idx[e.Mood]
		if !ok {
			i = len(a.MoodDistribution)
			idx[e.Mood] = i
			a.MoodDistribution = append(a.MoodDistribution, gateway.MoodStat{Name: string(e.Mood)})
		}
		a.MoodDistribution[i].Value++
	}
	return a
}
