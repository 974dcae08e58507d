package options

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/editor"
	"tableflip.dev/diary/pkg/entry"
)

// EntryOptions are the editable fields of an entry. Only flags the user set
// are applied.
type EntryOptions struct {
	Title        string
	Content      string
	Mood         string
	Tags         string
	Favorite     bool
	RemoveImages []int
	Images       []string

	cmd *cobra.Command
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	o.cmd = cmd
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Entry title.")
	cmd.Flags().StringVarP(&o.Content, "content", "c", "",
		"Entry text; each line becomes a paragraph.")
	cmd.Flags().StringVar(&o.Mood, "mood", "",
		"Mood emoji or alias, e.g. 😀 or happy.")
	cmd.Flags().StringVar(&o.Tags, "tags", "",
		`Comma separated tags, example: --tags="work, ideas".`)
	cmd.Flags().BoolVar(&o.Favorite, "favorite", false,
		"Pin (true) or unpin (false) the entry.")
	cmd.Flags().IntSliceVar(&o.RemoveImages, "remove-image", nil,
		"Remove the image at this position (0-based); repeatable.")
	cmd.Flags().StringSliceVar(&o.Images, "image", nil,
		"Upload an image file and attach it; repeatable.")
}

func (o *EntryOptions) changed(name string) bool {
	return o.cmd != nil && o.cmd.Flags().Changed(name)
}

// Any reports whether a field flag was given.
func (o *EntryOptions) Any() bool {
	for _, n := range []string{"title", "content", "mood", "tags", "favorite", "remove-image", "image"} {
		if o.changed(n) {
			return true
		}
	}
	return false
}

// Apply copies the given flags onto f. Images are removed from the highest
// position down so positions refer to the list as loaded.
func (o *EntryOptions) Apply(f *editor.Form) error {
	if o.changed("title") {
		f.Title = o.Title
	}
	if o.changed("content") {
		f.SetPlainContent(o.Content)
	}
	if o.changed("mood") {
		m, err := entry.ParseMood(o.Mood)
		if err != nil {
			return apperr.Validation(err)
		}
		f.Mood = m
	}
	if o.changed("tags") {
		f.Tags = o.Tags
	}
	if o.changed("favorite") {
		f.Favorite = o.Favorite
	}
	if o.changed("remove-image") {
		idx := append([]int(nil), o.RemoveImages...)
		sort.Sort(sort.Reverse(sort.IntSlice(idx)))
		for _, i := range idx {
			if !f.RemoveImage(i) {
				return apperr.Validation(fmt.Errorf("no image at position %d", i))
			}
		}
	}
	return nil
}
