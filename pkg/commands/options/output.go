package options

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/printers"
)

// Output formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// OutputOptions
type OutputOptions struct {
	JSON   bool
	Format string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
	cmd.Flags().StringVarP(&po.Format, "output", "o", FormatText,
		"Output format. One of 'text', 'table', 'json' or 'yaml'.")
}

// Resolved returns the effective format; --json wins over --output.
func (o *OutputOptions) Resolved() string {
	if o.JSON {
		return FormatJSON
	}
	switch f := strings.ToLower(strings.TrimSpace(o.Format)); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f
	default:
		return FormatText
	}
}

// Structured reports whether output is machine readable.
func (o *OutputOptions) Structured() bool {
	f := o.Resolved()
	return f == FormatJSON || f == FormatYAML
}

// Validate rejects unknown formats.
func (o *OutputOptions) Validate() error {
	switch strings.ToLower(strings.TrimSpace(o.Format)) {
	case "", FormatText, FormatTable, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q", o.Format)
}

// Write encodes v as JSON or YAML.
func (o *OutputOptions) Write(w io.Writer, v any) error {
	return printers.Encode(w, v, o.Resolved() == FormatYAML)
}

func (o *OutputOptions) HandleError(err error) error {
	if o.Structured() && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		if werr := o.Write(color.Output, out); werr != nil {
			return werr
		}
		return nil
	}
	return err
}
