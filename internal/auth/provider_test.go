package auth

import (
	"testing"

	"github.com/dokkaebi/sajucut/internal/apperrors"
)

func TestStoredKeyProvider(t *testing.T) {
	t.Run("session_key_wins", func(t *testing.T) {
		p := &StoredKeyProvider{
			SessionKey: "session-key",
			getKey:     func(bool) (string, string) { return "stored-key", "Keychain" },
		}
		key, err := p.Key()
		if err != nil {
			t.Fatal(err)
		}
		if key != "session-key" {
			t.Fatalf("unexpected key: %q", key)
		}
	})

	t.Run("falls_back_to_store", func(t *testing.T) {
		p := &StoredKeyProvider{getKey: func(bool) (string, string) { return "stored-key", "Keychain" }}
		key, err := p.Key()
		if err != nil {
			t.Fatal(err)
		}
		if key != "stored-key" {
			t.Fatalf("unexpected key: %q", key)
		}
		if !p.Ready() {
			t.Fatal("provider with a stored key must be ready")
		}
	})

	t.Run("missing_key", func(t *testing.T) {
		p := &StoredKeyProvider{getKey: func(bool) (string, string) { return "", "" }}
		_, err := p.Key()
		if !apperrors.Is(err, apperrors.KindCredentialMissing) {
			t.Fatalf("expected credential_missing, got %v", err)
		}
		if p.Ready() {
			t.Fatal("provider without a key must not be ready")
		}
	})

	t.Run("request_key_notifies", func(t *testing.T) {
		called := false
		p := &StoredKeyProvider{OnRequest: func() { called = true }}
		p.RequestKey()
		if !called {
			t.Fatal("OnRequest not invoked")
		}
	})
}

type fakeHost struct {
	hasKey   bool
	openCnt  int
	onOpened func()
}

func (f *fakeHost) HasSelectedKey() bool { return f.hasKey }
func (f *fakeHost) OpenKeySelector() {
	f.openCnt++
	if f.onOpened != nil {
		f.onOpened()
	}
}

func TestHostKeyProvider(t *testing.T) {
	t.Run("ready_tracks_host", func(t *testing.T) {
		host := &fakeHost{hasKey: false}
		p := NewHostKeyProvider(host, nil)
		if p.Ready() {
			t.Fatal("no key selected yet")
		}
		host.hasKey = true
		if !p.Ready() {
			t.Fatal("host reports a selected key")
		}
	})

	t.Run("optimistic_after_selector", func(t *testing.T) {
		// The host flow never reports back, so the provider assumes
		// success after the selector closes.
		host := &fakeHost{hasKey: false}
		p := NewHostKeyProvider(host, nil)
		p.RequestKey()
		if host.openCnt != 1 {
			t.Fatalf("selector opened %d times, want 1", host.openCnt)
		}
		if !p.Ready() {
			t.Fatal("provider should optimistically report ready")
		}
	})

	t.Run("missing_resolver", func(t *testing.T) {
		p := NewHostKeyProvider(&fakeHost{}, nil)
		if _, err := p.Key(); !apperrors.Is(err, apperrors.KindCredentialMissing) {
			t.Fatalf("expected credential_missing, got %v", err)
		}
	})
}
