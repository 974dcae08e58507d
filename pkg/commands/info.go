package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, true)
		},
	}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print config, state location and session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, false)
		},
	}

	topLevel.AddCommand(whoami, cmd)
}

func runInfo(cmd *cobra.Command, userOnly bool) error {
	d, err := loadDeps(cmd, global, false)
	if err != nil {
		return err
	}
	i := info.Info{
		Config:   d.cfg,
		Session:  d.session,
		UserOnly: userOnly,
		Out:      cmd.OutOrStdout(),
	}
	return d.done(i.Do(cmd.Context()))
}
