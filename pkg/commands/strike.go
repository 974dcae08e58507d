package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/strike"
)

func addStrike(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm", "strike"},
		Short:   "Delete an entry",
		Long: `Delete an entry for good. The entry is shown and you are asked to
confirm; pass --yes when not running in a terminal.`,
		Example: `
diary delete 65f1c2
diary delete 65f1c2 --yes
`,
		Args: func(cmd *cobra.Command, args []string) error {
			return io.TakeID(args)
		},
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps(cmd, global, false)
			if err != nil {
				return err
			}
			if err := d.requireLogin(); err != nil {
				return d.done(err)
			}
			s := strike.Strike{
				ID:      io.ID,
				Yes:     co.Yes,
				Gateway: d.api,
				Confirm: options.NewPrompter(cmd),
				Out:     cmd.OutOrStdout(),
				Log:     d.log,
			}
			return d.done(s.Do(cmd.Context()))
		},
	}

	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
