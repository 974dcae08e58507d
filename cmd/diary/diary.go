package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/commands"
)

func main() {
	err := commands.New().Execute()
	if err == nil {
		return
	}
	if errors.Is(err, apperr.ErrCancelled) {
		fmt.Fprintln(os.Stderr, "Cancelled.")
		os.Exit(1)
	}
	fmt.Fprintf(color.Error, "%s %s\n", color.RedString("error:"), apperr.Describe(err))
	os.Exit(1)
}
