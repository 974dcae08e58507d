package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Long: `Open the dashboard: search, filter, pin and delete entries.
Logs never go to the terminal here; set --log-file to keep them.`,
		Example: `
diary ui
diary ui --log-file /tmp/diary.log --log-level debug
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps(cmd, global, true)
			if err != nil {
				return err
			}
			if err := d.requireLogin(); err != nil {
				return d.done(err)
			}
			i := ui.UI{
				Gateway:  d.api,
				Session:  d.session,
				Debounce: d.cfg.Debounce,
				Log:      d.log,
			}
			return d.done(i.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
