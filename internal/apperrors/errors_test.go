package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessagePrecedence(t *testing.T) {
	t.Run("safe_message_wins", func(t *testing.T) {
		err := New(KindFetch, "download failed", errors.New("tcp reset"))
		if err.Error() != "download failed" {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	})

	t.Run("falls_back_to_default", func(t *testing.T) {
		err := New(KindCredentialMissing, "  ", nil)
		if err.Error() != defaultSafeMessage(KindCredentialMissing) {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	})

	t.Run("unwraps_cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := New(KindTransient, "", cause)
		if !errors.Is(err, cause) {
			t.Fatal("expected errors.Is to reach the cause")
		}
	})
}

func TestKindOf(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		kind, ok := KindOf(Timeout(nil))
		if !ok || kind != KindTimeout {
			t.Fatalf("got kind=%q ok=%v", kind, ok)
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("generate video: %w", MediaMissing(nil))
		kind, ok := KindOf(wrapped)
		if !ok || kind != KindMediaMissing {
			t.Fatalf("got kind=%q ok=%v", kind, ok)
		}
	})

	t.Run("plain_error", func(t *testing.T) {
		if _, ok := KindOf(errors.New("plain")); ok {
			t.Fatal("plain errors must not report a kind")
		}
	})
}

func TestIsCredentialProblem(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{CredentialMissing(nil), true},
		{CredentialInvalid(nil), true},
		{Parse(nil), false},
		{errors.New("plain"), false},
		{nil, false},
	}
	for _, c := range cases {
		if got := IsCredentialProblem(c.err); got != c.want {
			t.Errorf("IsCredentialProblem(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestPublicMessage(t *testing.T) {
	if got := PublicMessage(nil); got != "" {
		t.Fatalf("expected empty message for nil, got %q", got)
	}
	if got := PublicMessage(errors.New("raw")); got != "raw" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := PublicMessage(Validation(nil)); got != defaultSafeMessage(KindValidation) {
		t.Fatalf("unexpected message: %q", got)
	}
}
