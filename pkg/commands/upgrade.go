package commands

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

const installPath = "tableflip.dev/diary/cmd/diary@latest"

func addUpgrade(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade the diary cli with go install.",
		Example: `
diary upgrade
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ex := exec.CommandContext(commandContext(cmd), "go", "install", installPath)
			ex.Stdout = cmd.OutOrStdout()
			ex.Stderr = cmd.ErrOrStderr()
			if err := ex.Run(); err != nil {
				return fmt.Errorf("go install %s: %w", installPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", ex.String())
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
