package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/track"
)

func addTrack(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"insights", "track"},
		Short:   "Mood insights for all time and this month",
		Example: `
diary stats
diary stats -o yaml
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return output.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps(cmd, global, false)
			if err != nil {
				return output.HandleError(err)
			}
			if err := d.requireLogin(); err != nil {
				return output.HandleError(d.done(err))
			}
			t := track.Track{
				Gateway:    d.api,
				Structured: output.Structured(),
				YAML:       output.Resolved() == options.FormatYAML,
				Out:        cmd.OutOrStdout(),
			}
			return output.HandleError(d.done(t.Do(cmd.Context())))
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
