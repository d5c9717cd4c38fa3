package auth

import "github.com/dokkaebi/sajucut/internal/apperrors"

// KeyProvider abstracts where the API credential comes from. The session
// controller checks Ready() before remote calls as a UX convenience only;
// the remote call still fails cleanly when no credential is usable.
type KeyProvider interface {
	// Key returns the credential, or a KindCredentialMissing error.
	Key() (string, error)
	// Ready reports whether a credential is believed to be available.
	Ready() bool
	// RequestKey asks the user to (re-)establish the credential, e.g. after
	// the upstream API rejected it.
	RequestKey()
}

// StoredKeyProvider reads the credential from the OS keychain, with an
// optional session-only override that is never persisted.
type StoredKeyProvider struct {
	// SessionKey is a one-off key entered for this run only.
	SessionKey string
	// AllowEnv permits the GEMINI_API_KEY fallback.
	AllowEnv bool
	// OnRequest is invoked when the user must re-enter the key.
	OnRequest func()

	getKey func(allowEnv bool) (string, string)
}

func NewStoredKeyProvider(allowEnv bool) *StoredKeyProvider {
	return &StoredKeyProvider{AllowEnv: allowEnv, getKey: GetKey}
}

func (p *StoredKeyProvider) Key() (string, error) {
	if p.SessionKey != "" {
		return p.SessionKey, nil
	}
	lookup := p.getKey
	if lookup == nil {
		lookup = GetKey
	}
	key, _ := lookup(p.AllowEnv)
	if key == "" {
		return "", apperrors.CredentialMissing(nil)
	}
	return key, nil
}

func (p *StoredKeyProvider) Ready() bool {
	_, err := p.Key()
	return err == nil
}

func (p *StoredKeyProvider) RequestKey() {
	if p.OnRequest != nil {
		p.OnRequest()
	}
}

// HostCapability is the key-selection surface a hosting environment provides:
// a query for whether a key has been picked, and an interactive selector.
// The selector reports nothing back on completion; that is the host's
// contract, not ours to fix.
type HostCapability interface {
	HasSelectedKey() bool
	OpenKeySelector()
}

// HostKeyProvider delegates credential management to the host. After
// OpenKeySelector returns, the key is optimistically assumed selected.
type HostKeyProvider struct {
	Host HostCapability
	// ResolveKey yields the actual credential once the host has one.
	ResolveKey func() (string, error)

	selected bool
}

func NewHostKeyProvider(host HostCapability, resolve func() (string, error)) *HostKeyProvider {
	return &HostKeyProvider{Host: host, ResolveKey: resolve}
}

func (p *HostKeyProvider) Key() (string, error) {
	if p.ResolveKey == nil {
		return "", apperrors.CredentialMissing(nil)
	}
	return p.ResolveKey()
}

func (p *HostKeyProvider) Ready() bool {
	if p.selected {
		return true
	}
	if p.Host == nil {
		return false
	}
	return p.Host.HasSelectedKey()
}

func (p *HostKeyProvider) RequestKey() {
	if p.Host == nil {
		return
	}
	p.Host.OpenKeySelector()
	// Optimistic: the host flow does not report success or failure.
	p.selected = true
}
