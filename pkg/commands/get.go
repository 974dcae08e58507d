package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/glyph"
	"tableflip.dev/diary/pkg/runner/list"
)

func addGet(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}
	output := &options.OutputOptions{}

	long := strings.Builder{}
	long.WriteString("List entries, pinned favorites first.\n\n")
	long.WriteString("Moods and aliases:\n")
	for _, g := range glyph.DefaultMoods() {
		long.WriteString(fmt.Sprintf("%s: %s\n", g.Symbol, g.Key))
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"get", "ls"},
		Short:   "List entries, optionally filtered",
		Long:    long.String(),
		Example: `
diary list
diary list --mood happy --sort oldest
diary list --this-month --tag work -o table
diary list --search pizza --json
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return output.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fo.State()
			if err != nil {
				return output.HandleError(err)
			}
			d, err := loadDeps(cmd, global, false)
			if err != nil {
				return output.HandleError(err)
			}
			if err := d.requireLogin(); err != nil {
				return output.HandleError(d.done(err))
			}
			l := list.List{
				Gateway: d.api,
				Filter:  f,
				Format:  output.Resolved(),
				ShowID:  io.ShowID,
				Out:     cmd.OutOrStdout(),
				Log:     d.log,
			}
			err = l.Do(cmd.Context())
			return output.HandleError(d.done(err))
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
