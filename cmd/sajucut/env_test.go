package main

import (
	"bytes"
	"strings"
	"testing"
)

func withEnvStatusStubs(t *testing.T, status bool, envKey string) func() {
	t.Helper()

	prevStatus := getStatus
	prevEnv := getEnvKey

	getStatus = func() bool { return status }
	getEnvKey = func() (string, bool) {
		if envKey == "" {
			return "", false
		}
		return envKey, true
	}

	return func() {
		getStatus = prevStatus
		getEnvKey = prevEnv
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestEnvStatus_Keychain(t *testing.T) {
	restore := withEnvStatusStubs(t, true, "sk-env-secret")
	defer restore()

	out, err := executeCommand(t, "env", "status")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if !strings.Contains(out, "Found (source=Keychain)") {
		t.Fatalf("expected keychain source, got: %s", out)
	}
	if strings.Contains(out, "sk-env-secret") {
		t.Fatalf("output leaked env key")
	}
}

func TestEnvStatus_Env(t *testing.T) {
	restore := withEnvStatusStubs(t, false, "sk-env-secret")
	defer restore()

	out, err := executeCommand(t, "env", "status")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if !strings.Contains(out, "Found (source=Environment Variable") {
		t.Fatalf("expected env source, got: %s", out)
	}
	if strings.Contains(out, "sk-env-secret") {
		t.Fatalf("output leaked env key")
	}
}

func TestEnvStatus_NotFound(t *testing.T) {
	restore := withEnvStatusStubs(t, false, "")
	defer restore()

	out, err := executeCommand(t, "env", "status")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	if !strings.Contains(out, "Not Found") {
		t.Fatalf("expected not found, got: %s", out)
	}
}

func TestEnvSetup_RejectsPositionalAPIKey(t *testing.T) {
	out, err := executeCommand(t, "env", "setup", "sk-should-not-be-allowed")
	if err == nil {
		t.Fatalf("expected setup to reject positional API key argument")
	}
	if !strings.Contains(out, "unknown command") && !strings.Contains(out, "accepts 0 arg(s)") {
		t.Fatalf("expected positional-argument rejection error, got: %s", out)
	}
}

func TestRoot_UnknownCommand(t *testing.T) {
	_, err := executeCommand(t, "nonsense")
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}
