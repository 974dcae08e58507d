package options

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/glyph"
)

// PickMood shows a searchable list of moods with def preselected.
func (p *Prompter) PickMood(label string, def entry.Mood) (entry.Mood, error) {
	if !p.Interactive() {
		return def, ErrNotInteractive
	}
	moods := glyph.DefaultMoods()

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Symbol }} {{ .Key | cyan }}",
		Inactive: "   {{ .Symbol }} {{ .Key | faint }}",
		Selected: "➜  {{ .Symbol }} {{ .Meaning | cyan }}",
	}

	searcher := func(input string, index int) bool {
		g := moods[index]
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(g.Key, input) || strings.Contains(g.Meaning, input)
	}

	cursor := 0
	for i, g := range moods {
		if g.Symbol == string(def) {
			cursor = i
		}
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     moods,
		Templates: templates,
		Size:      len(moods),
		CursorPos: cursor,
		Searcher:  searcher,
		Stdin:     io.NopCloser(p.In),
		Stdout:    NopCloser(p.Out),
	}

	i, _, err := prompt.Run()
	if errors.Is(err, promptui.ErrInterrupt) {
		return def, apperr.ErrCancelled
	}
	if err != nil {
		return def, err
	}
	return entry.ParseMood(moods[i].Symbol)
}
