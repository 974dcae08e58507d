package options

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Skip the confirmation prompt.")
}

// ErrNotInteractive is returned when a prompt is needed but stdin is not a
// terminal.
var ErrNotInteractive = errors.New("not a terminal; pass the answer with a flag")

// IsTerminal reports whether r is an interactive terminal.
func IsTerminal(r any) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Prompter asks the user questions on a terminal.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// NewPrompter prompts on cmd's streams.
func NewPrompter(cmd *cobra.Command) *Prompter {
	return &Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
}

// Interactive reports whether prompting is possible.
func (p *Prompter) Interactive() bool {
	return IsTerminal(p.In)
}

// Confirm asks a yes/no question; no is the default.
func (p *Prompter) Confirm(label string) (bool, error) {
	if !p.Interactive() {
		return false, ErrNotInteractive
	}
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     io.NopCloser(p.In),
		Stdout:    NopCloser(p.Out),
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Secret reads a masked value.
func (p *Prompter) Secret(label string) (string, error) {
	if !p.Interactive() {
		return "", ErrNotInteractive
	}
	prompt := promptui.Prompt{
		Label:  label,
		Mask:   '*',
		Stdin:  io.NopCloser(p.In),
		Stdout: NopCloser(p.Out),
	}
	return prompt.Run()
}

// Ask reads a plain value.
func (p *Prompter) Ask(label string) (string, error) {
	if !p.Interactive() {
		return "", ErrNotInteractive
	}
	prompt := promptui.Prompt{
		Label:  label,
		Stdin:  io.NopCloser(p.In),
		Stdout: NopCloser(p.Out),
	}
	v, err := prompt.Run()
	return strings.TrimSpace(v), err
}

// ReadLine reads one line from r, for --password-stdin.
func ReadLine(r io.Reader) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(string(b), "\n")
	return strings.TrimRight(line, "\r"), nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser returns a WriteCloser with a no-op Close method wrapping
// the provided Writer w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}
