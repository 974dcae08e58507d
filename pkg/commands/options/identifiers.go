package options

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	ID     string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each entry.")
}

// TakeID reads the entry id from the first positional argument.
func (o *IDOptions) TakeID(args []string) error {
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		return errors.New("an entry id is required")
	}
	if len(args) > 1 {
		return errors.New("only one entry id can be given")
	}
	o.ID = strings.TrimSpace(args[0])
	return nil
}
