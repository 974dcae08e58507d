// Package apperr defines the error taxonomy shared by the gateway, the
// controllers and the CLI.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNetwork means the API could not be reached or never answered.
	ErrNetwork = errors.New("network failure")
	// ErrServer means the API answered with a non-2xx status.
	ErrServer = errors.New("server error")
	// ErrValidation means input was rejected before any request was sent.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized means the API rejected the session token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means the requested entry does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCancelled means the user backed out of a confirmation.
	ErrCancelled = errors.New("cancelled")
)

// Kind classifies an error for notifications.
type Kind string

const (
	KindNone       Kind = ""
	KindNetwork    Kind = "network"
	KindServer     Kind = "server"
	KindValidation Kind = "validation"
	KindCancelled  Kind = "cancelled"
	KindUnknown    Kind = "unknown"
)

// ServerError carries the status and message of a failed API response.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("server error (status %d): %s", e.Status, msg)
}

// Is lets errors.Is match ErrServer, and the 401/404 specialisations.
func (e *ServerError) Is(target error) bool {
	switch target {
	case ErrServer:
		return true
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Network wraps a transport error as ErrNetwork, keeping the cause.
func Network(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
}

// Validation wraps err (often ozzo validation.Errors) as ErrValidation.
func Validation(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// KindOf returns the taxonomy bucket of err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrCancelled), errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	case errors.Is(err, ErrServer):
		return KindServer
	default:
		return KindUnknown
	}
}

// Describe renders a short, user-facing message for err.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var se *ServerError
	switch {
	case errors.As(err, &se):
		if msg := strings.TrimSpace(se.Message); msg != "" {
			return msg
		}
		if se.Status == http.StatusUnauthorized {
			return "session expired, please log in again"
		}
		return http.StatusText(se.Status)
	case errors.Is(err, ErrNetwork):
		return "could not reach the diary server"
	case errors.Is(err, ErrValidation):
		msg := strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
		return msg
	case errors.Is(err, ErrCancelled):
		return "cancelled"
	default:
		return err.Error()
	}
}
