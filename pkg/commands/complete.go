package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/pin"
)

func addComplete(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "pin <id>",
		Aliases: []string{"favorite", "unpin"},
		Short:   "Pin or unpin an entry as a favorite",
		Example: `
diary pin 65f1c2
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
			p := pin.Pin{
				ID:      io.ID,
				ShowID:  io.ShowID,
				Gateway: d.api,
				Out:     cmd.OutOrStdout(),
				Log:     d.log,
			}
			return d.done(p.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
