package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/filter"
)

// FilterOptions select which entries a listing shows.
type FilterOptions struct {
	Search    string
	Mood      string
	Tag       string
	ThisMonth bool
	Sort      string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only entries whose title or text contains this.")
	cmd.Flags().StringVar(&o.Mood, "mood", "",
		"Only entries with this mood (emoji or alias).")
	cmd.Flags().StringVar(&o.Tag, "tag", "",
		"Only entries with this tag.")
	cmd.Flags().BoolVar(&o.ThisMonth, "this-month", false,
		"Only entries from the current month.")
	cmd.Flags().StringVar(&o.Sort, "sort", string(entry.Newest),
		"Sort order: newest or oldest.")
	_ = cmd.RegisterFlagCompletionFunc("mood", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return entry.MoodAliases(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(entry.Newest), string(entry.Oldest)}, cobra.ShellCompDirectiveNoFileComp
	})
}

// State builds the filter the flags describe.
func (o *FilterOptions) State() (filter.State, error) {
	f := filter.New()
	f.SetSearch(strings.TrimSpace(o.Search))
	if o.Mood != "" {
		m, err := entry.ParseMood(o.Mood)
		if err != nil {
			return f, apperr.Validation(err)
		}
		f.SetMood(m)
	}
	f.SetTag(o.Tag)
	f.SetThisMonth(o.ThisMonth)
	s, err := entry.ParseSortOrder(o.Sort)
	if err != nil {
		return f, apperr.Validation(err)
	}
	f.SetSort(s)
	return f, nil
}
