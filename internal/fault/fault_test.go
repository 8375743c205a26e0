package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessageComposition(t *testing.T) {
	t.Parallel()

	plain := New(Validation, "text is required")
	if got := plain.Error(); got != "text is required" {
		t.Fatalf("unexpected message: %q", got)
	}

	cause := errors.New("connection refused")
	wrapped := Wrap(Transport, cause, "send translation request")
	if got := wrapped.Error(); got != "send translation request: connection refused" {
		t.Fatalf("unexpected wrapped message: %q", got)
	}
	if !errors.Is(wrapped, cause) {
		t.Fatalf("expected wrapped error to match its cause")
	}
}

func TestKindOfUnwrapsNestedErrors(t *testing.T) {
	t.Parallel()

	inner := New(Remote, "translator endpoint status 401")
	outer := fmt.Errorf("translate: %w", inner)

	if got := KindOf(outer); got != Remote {
		t.Fatalf("KindOf = %q, want %q", got, Remote)
	}
	if !IsKind(outer, Remote) {
		t.Fatalf("expected IsKind to match through wrapping")
	}
	if IsKind(outer, Validation) {
		t.Fatalf("did not expect validation kind")
	}
}

func TestKindOfUnclassified(t *testing.T) {
	t.Parallel()

	if got := KindOf(errors.New("plain")); got != "" {
		t.Fatalf("expected zero kind for unclassified error, got %q", got)
	}
}
