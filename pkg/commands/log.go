package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/log"
)

func addLog(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal", "log"},
		Short:   "Show a month of moods",
		Long: `Show a month as a calendar with up to three moods per day.

With --day, show what that day holds: its only entry, a list when it has
several, or a hint to write one when it is empty.`,
		Example: `
diary calendar
diary calendar --month 2025-02
diary calendar --day 2025-03-14
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			on, err := do.GetMonth(now)
			if err != nil {
				return err
			}
			day, picked, err := do.GetDay(now)
			if err != nil {
				return err
			}
			if picked {
				on = day
			}

			d, err := loadDeps(cmd, global, false)
			if err != nil {
				return err
			}
			if err := d.requireLogin(); err != nil {
				return d.done(err)
			}
			l := log.Log{
				Gateway: d.api,
				On:      on,
				Day:     picked,
				ShowID:  io.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			return d.done(l.Do(cmd.Context()))
		},
	}

	options.AddMonthArgs(cmd, do)
	options.AddDayArgs(cmd, do)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
