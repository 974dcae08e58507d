package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/account"
)

type credentialOptions struct {
	Email         string
	PasswordStdin bool
}

func addCredentialArgs(cmd *cobra.Command, o *credentialOptions) {
	cmd.Flags().StringVarP(&o.Email, "email", "e", "",
		"Account email; asked for when omitted.")
	cmd.Flags().BoolVar(&o.PasswordStdin, "password-stdin", false,
		"Read the password from the first line of stdin.")
}

func addLogin(topLevel *cobra.Command) {
	co := &credentialOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Example: `
diary login
diary login --email me@example.com
echo "$PASSWORD" | diary login --email me@example.com --password-stdin
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, co, false)
		},
	}

	addCredentialArgs(cmd, co)
	topLevel.AddCommand(cmd)
}

func addRegister(topLevel *cobra.Command) {
	co := &credentialOptions{}

	cmd := &cobra.Command{
		Use:     "register",
		Aliases: []string{"signup"},
		Short:   "Create an account and sign in",
		Example: `
diary register --email me@example.com
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, co, true)
		},
	}

	addCredentialArgs(cmd, co)
	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps(cmd, global, false)
			if err != nil {
				return err
			}
			l := account.Logout{Service: d.auth(), Out: cmd.OutOrStdout()}
			return d.done(l.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func runLogin(cmd *cobra.Command, co *credentialOptions, register bool) error {
	l := account.Login{
		Register: register,
		Email:    co.Email,
		Out:      cmd.OutOrStdout(),
	}
	p := options.NewPrompter(cmd)
	if co.PasswordStdin {
		pw, err := options.ReadLine(cmd.InOrStdin())
		if err != nil {
			return err
		}
		l.Password, l.PasswordSet = pw, true
	} else if !p.Interactive() {
		return options.ErrNotInteractive
	}
	if p.Interactive() {
		l.Prompt = p
	}

	d, err := loadDeps(cmd, global, false)
	if err != nil {
		return err
	}
	l.Service = d.auth()
	return d.done(l.Do(cmd.Context()))
}
