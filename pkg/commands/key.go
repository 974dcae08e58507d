package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "moods",
		Aliases: []string{"key"},
		Short:   "Print the moods and the symbols used on entries",
		Example: `
diary moods
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{Out: cmd.OutOrStdout()}
			return k.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
