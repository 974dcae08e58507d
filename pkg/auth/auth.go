// Package auth validates the login and registration forms and turns a
// successful exchange into a persisted session.
package auth

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"tableflip.dev/diary/pkg/apperr"
	"tableflip.dev/diary/pkg/gateway"
	"tableflip.dev/diary/pkg/session"
)

// MinPassword is the shortest password the forms accept.
const MinPassword = 6

// LoginForm is filled in by the user.
type LoginForm struct {
	Email    string
	Password string
}

// Validate checks the form before anything is sent.
func (f *LoginForm) Validate() error {
	f.Email = strings.TrimSpace(f.Email)
	return apperr.Validation(validation.ValidateStruct(f,
		validation.Field(&f.Email, validation.Required.Error("email is required"), is.EmailFormat.Error("invalid email address")),
		validation.Field(&f.Password, validation.Required.Error("password is required")),
	))
}

// RegisterForm adds a confirmation to LoginForm.
type RegisterForm struct {
	Email    string
	Password string
	Confirm  string
}

// Validate checks the form before anything is sent.
func (f *RegisterForm) Validate() error {
	f.Email = strings.TrimSpace(f.Email)
	return apperr.Validation(validation.ValidateStruct(f,
		validation.Field(&f.Email, validation.Required.Error("email is required"), is.EmailFormat.Error("invalid email address")),
		validation.Field(&f.Password,
			validation.Required.Error("password is required"),
			validation.RuneLength(MinPassword, 0).Error(fmt.Sprintf("password must be at least %d characters", MinPassword))),
		validation.Field(&f.Confirm,
			validation.Required.Error("please confirm your password"),
			validation.By(matches(f.Password))),
	))
}

func matches(password string) validation.RuleFunc {
	return func(v any) error {
		if s, _ := v.(string); s != password {
			return validation.NewError("validation_confirm", "passwords do not match")
		}
		return nil
	}
}

// Authenticator is the part of the API used to obtain tokens.
type Authenticator interface {
	Login(ctx context.Context, creds gateway.Credentials) (gateway.AuthResult, error)
	Register(ctx context.Context, creds gateway.Credentials) (gateway.AuthResult, error)
}

// Service logs users in and out of a Session.
type Service struct {
	api  Authenticator
	sess *session.Session
}

// NewService returns a Service writing to sess.
func NewService(api Authenticator, sess *session.Session) *Service {
	return &Service{api: api, sess: sess}
}

// Login validates f, exchanges it for a token and persists the session.
func (s *Service) Login(ctx context.Context, f LoginForm) (gateway.User, error) {
	if err := f.Validate(); err != nil {
		return gateway.User{}, err
	}
	res, err := s.api.Login(ctx, gateway.Credentials{Email: f.Email, Password: f.Password})
	if err != nil {
		return gateway.User{}, fmt.Errorf("login: %w", err)
	}
	return res.User, s.sess.Begin(res)
}

// Register validates f, creates the account and persists its session.
func (s *Service) Register(ctx context.Context, f RegisterForm) (gateway.User, error) {
	if err := f.Validate(); err != nil {
		return gateway.User{}, err
	}
	res, err := s.api.Register(ctx, gateway.Credentials{Email: f.Email, Password: f.Password})
	if err != nil {
		return gateway.User{}, fmt.Errorf("register: %w", err)
	}
	return res.User, s.sess.Begin(res)
}

// Logout clears the session. It never talks to the API; tokens are
// stateless.
func (s *Service) Logout() error {
	return s.sess.End()
}
