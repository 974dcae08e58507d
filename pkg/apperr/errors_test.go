package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestServerErrorSpecialisations(t *testing.T) {
	err := fmt.Errorf("list entries: %w", &ServerError{Status: 401, Message: "jwt expired"})
	if !errors.Is(err, ErrServer) || !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected 401 to match ErrServer and ErrUnauthorized")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("401 should not match ErrNotFound")
	}
	if KindOf(err) != KindServer {
		t.Fatalf("unexpected kind %q", KindOf(err))
	}
	if Describe(err) != "jwt expired" {
		t.Fatalf("unexpected description %q", Describe(err))
	}
	if got := Describe(&ServerError{Status: 401}); got != "session expired, please log in again" {
		t.Fatalf("unexpected bare 401 description %q", got)
	}
	nf := &ServerError{Status: 404}
	if !errors.Is(nf, ErrNotFound) || Describe(nf) != "Not Found" {
		t.Fatalf("unexpected 404 handling: %q", Describe(nf))
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != KindNone {
		t.Fatalf("nil should have no kind")
	}
	if KindOf(Network("get", errors.New("dial tcp: refused"))) != KindNetwork {
		t.Fatalf("expected network kind")
	}
	if KindOf(Validation(errors.New("title: cannot be blank."))) != KindValidation {
		t.Fatalf("expected validation kind")
	}
	if KindOf(context.Canceled) != KindCancelled {
		t.Fatalf("expected cancelled kind")
	}
	if KindOf(errors.New("boom")) != KindUnknown {
		t.Fatalf("expected unknown kind")
	}
	if got := Describe(Validation(errors.New("title: cannot be blank."))); got != "title: cannot be blank." {
		t.Fatalf("unexpected validation text %q", got)
	}
}
