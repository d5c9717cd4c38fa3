package main

import (
	"strings"
	"testing"
)

type keyStubs struct {
	promptCalls int
	keyCalls    int
	envCalls    int
}

func withKeyStubs(t *testing.T, terminal bool, promptVal, keychainVal, envVal string) (*keyStubs, func()) {
	t.Helper()
	stubs := &keyStubs{}

	prevIsTerminal := isTerminal
	prevPrompt := promptForKey
	prevGetKey := getKey
	prevGetEnv := getEnvKey

	isTerminal = func(_ int) bool { return terminal }
	promptForKey = func(_ string) (string, error) {
		stubs.promptCalls++
		return promptVal, nil
	}
	getKey = func(_ bool) (string, string) {
		stubs.keyCalls++
		if keychainVal == "" {
			return "", ""
		}
		return keychainVal, "Keychain"
	}
	getEnvKey = func() (string, bool) {
		stubs.envCalls++
		if envVal == "" {
			return "", false
		}
		return envVal, true
	}

	restore := func() {
		isTerminal = prevIsTerminal
		promptForKey = prevPrompt
		getKey = prevGetKey
		getEnvKey = prevGetEnv
	}

	return stubs, restore
}

func TestResolveAPIKey_Keychain(t *testing.T) {
	stubs, restore := withKeyStubs(t, true, "", "keychain-key", "env-key")
	defer restore()

	key, source, err := resolveAPIKey(true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "keychain-key" || source != "Keychain" {
		t.Fatalf("expected keychain key/source, got key=%q source=%q", key, source)
	}
	if stubs.envCalls != 0 {
		t.Fatalf("expected no env calls, got envCalls=%d", stubs.envCalls)
	}
}

func TestResolveAPIKey_EnvFallbackWhenAllowed(t *testing.T) {
	_, restore := withKeyStubs(t, false, "", "", "env-key")
	defer restore()

	key, source, err := resolveAPIKey(true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "env-key" || source != "Environment Variable" {
		t.Fatalf("expected env key/source, got key=%q source=%q", key, source)
	}
}

func TestResolveAPIKey_EnvDisabledByDefault(t *testing.T) {
	stubs, restore := withKeyStubs(t, false, "", "", "env-key")
	defer restore()

	_, _, err := resolveAPIKey(false, false)
	if err == nil {
		t.Fatal("expected error when env is disabled and keychain empty")
	}
	if stubs.envCalls != 0 {
		t.Fatalf("env consulted despite being disabled: envCalls=%d", stubs.envCalls)
	}
}

func TestResolveAPIKey_EnvOnly(t *testing.T) {
	stubs, restore := withKeyStubs(t, true, "prompted", "keychain-key", "env-key")
	defer restore()

	key, source, err := resolveAPIKey(false, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "env-key" || source != "Environment Variable" {
		t.Fatalf("got key=%q source=%q", key, source)
	}
	if stubs.keyCalls != 0 {
		t.Fatalf("keychain consulted in env-only mode: keyCalls=%d", stubs.keyCalls)
	}
}

func TestResolveAPIKey_TerminalPrompt(t *testing.T) {
	stubs, restore := withKeyStubs(t, true, "  prompted-key  ", "", "")
	defer restore()

	key, source, err := resolveAPIKey(false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "prompted-key" || source != "Terminal Prompt" {
		t.Fatalf("got key=%q source=%q", key, source)
	}
	if stubs.promptCalls != 1 {
		t.Fatalf("promptCalls = %d, want 1", stubs.promptCalls)
	}
}

func TestResolveAPIKey_NonInteractiveWithoutKey(t *testing.T) {
	_, restore := withKeyStubs(t, false, "", "", "")
	defer restore()

	_, _, err := resolveAPIKey(true, false)
	if err == nil || !strings.Contains(err.Error(), "non-interactive") {
		t.Fatalf("expected non-interactive error, got %v", err)
	}
}

func TestImageMIMEFromPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"shot.png", "image/png"},
		{"shot.JPG", "image/jpeg"},
		{"dir/shot.jpeg", "image/jpeg"},
		{"shot.webp", "image/webp"},
	}
	for _, tc := range cases {
		got, err := imageMIMEFromPath(tc.path)
		if err != nil {
			t.Errorf("imageMIMEFromPath(%q) error: %v", tc.path, err)
			continue
		}
		if got != tc.want {
			t.Errorf("imageMIMEFromPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}

	for _, path := range []string{"clip.mp4", "noext", "script.txt"} {
		if _, err := imageMIMEFromPath(path); err == nil {
			t.Errorf("imageMIMEFromPath(%q) accepted a non-image", path)
		}
	}
}
