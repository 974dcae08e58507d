package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/commands/options"
)

var (
	global = &options.GlobalOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:           "diary",
		Short:         base.Wrap80("A mood diary on the command line."),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddGlobalArgs(cmd, global)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addLogin(topLevel)
	addRegister(topLevel)
	addLogout(topLevel)
	addInfo(topLevel)
	addGet(topLevel)
	addNew(topLevel)
	addEdit(topLevel)
	addUpload(topLevel)
	addComplete(topLevel)
	addStrike(topLevel)
	addLog(topLevel)
	addTrack(topLevel)
	addKey(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}
