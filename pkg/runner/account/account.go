// Package account provides the runners that sign users in and out.
package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/diary/pkg/auth"
)

// Prompter reads missing credentials from the user.
type Prompter interface {
	Ask(label string) (string, error)
	Secret(label string) (string, error)
}

// Login signs in, or creates an account first when Register is set.
type Login struct {
	Register bool
	Email    string
	Password string
	// PasswordSet means Password came from a flag or stdin and must not be
	// prompted for.
	PasswordSet bool

	Service *auth.Service
	Prompt  Prompter
	Out     io.Writer
}

func (n *Login) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not log in, no auth service")
	}
	if err := n.fill(); err != nil {
		return err
	}

	var err error
	verb := "Logged in as"
	if n.Register {
		confirm := n.Password
		if !n.PasswordSet {
			if confirm, err = n.Prompt.Secret("Confirm password"); err != nil {
				return err
			}
		}
		_, err = n.Service.Register(ctx, auth.RegisterForm{Email: n.Email, Password: n.Password, Confirm: confirm})
		verb = "Registered"
	} else {
		_, err = n.Service.Login(ctx, auth.LoginForm{Email: n.Email, Password: n.Password})
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out(n.Out), verb, n.Email)
	return nil
}

func (n *Login) fill() error {
	var err error
	if n.Email == "" && n.Prompt != nil {
		if n.Email, err = n.Prompt.Ask("Email"); err != nil {
			return err
		}
	}
	if !n.PasswordSet {
		if n.Prompt == nil {
			return errors.New("no password given, pass --password-stdin")
		}
		if n.Password, err = n.Prompt.Secret("Password"); err != nil {
			return err
		}
	}
	return nil
}

// Logout forgets the stored session.
type Logout struct {
	Service *auth.Service
	Out     io.Writer
}

func (n *Logout) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not log out, no auth service")
	}
	if err := n.Service.Logout(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out(n.Out), "Logged out.")
	return nil
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
