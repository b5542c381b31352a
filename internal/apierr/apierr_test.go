package apierr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindPredicatesMatchWrappedErrors(t *testing.T) {
	base := NotFound("user %s not found", "abc")
	wrapped := fmt.Errorf("handling request: %w", base)

	if !IsNotFound(wrapped) {
		t.Fatalf("expected wrapped error to stay not_found")
	}
	if IsValidation(wrapped) || IsPrecondition(wrapped) || IsMapping(wrapped) {
		t.Fatalf("predicates overlap for %v", wrapped)
	}
}

func TestPredicatesRejectPlainErrors(t *testing.T) {
	plain := errors.New("boom")
	if IsNotFound(plain) || IsValidation(plain) || IsPrecondition(plain) || IsMapping(plain) {
		t.Fatalf("plain error matched a kind")
	}
}

func TestMappingCarriesCause(t *testing.T) {
	cause := errors.New("invalid uuid")
	err := Mapping(cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable via errors.Is")
	}
	if !IsMapping(err) {
		t.Fatalf("expected mapping kind")
	}
}
