package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dokkaebi/sajucut/internal/auth"
	"github.com/dokkaebi/sajucut/internal/logger"
)

var (
	isTerminal   = term.IsTerminal
	getKey       = auth.GetKey
	getEnvKey    = auth.GetEnvKey
	getStatus    = auth.GetStatus
	promptForKey = auth.PromptForAPIKey
)

// resolveAPIKey handles the logic for finding the API key.
func resolveAPIKey(allowEnv, envOnly bool) (string, string, error) {
	if envOnly {
		if key, ok := getEnvKey(); ok {
			return key, "Environment Variable", nil
		}
		return "", "", fmt.Errorf("env-only set but GEMINI_API_KEY is not set")
	}

	if key, source := getKey(false); key != "" {
		return key, source, nil
	}

	if allowEnv {
		if key, ok := getEnvKey(); ok {
			return key, "Environment Variable", nil
		}
	}

	if isTerminal(int(os.Stdin.Fd())) {
		key, err := promptForKey("Gemini API Key (press Enter to skip): ")
		if err != nil {
			return "", "", fmt.Errorf("error reading API key: %w", err)
		}
		if strings.TrimSpace(key) != "" {
			return strings.TrimSpace(key), "Terminal Prompt", nil
		}
	}

	if !isTerminal(int(os.Stdin.Fd())) {
		return "", "", fmt.Errorf("no API key available (non-interactive shell); set keychain or use --allow-env")
	}
	if allowEnv {
		return "", "", fmt.Errorf("API key is required; not found in keychain or environment")
	}
	return "", "", fmt.Errorf("API key is required; not found in keychain (environment disabled by default; use --allow-env)")
}

// staticKeyProvider serves a key the CLI already resolved. RequestKey is a
// no-op: CLI runs have no selector to open.
type staticKeyProvider struct {
	key string
}

func (p staticKeyProvider) Key() (string, error) { return p.key, nil }
func (p staticKeyProvider) Ready() bool          { return p.key != "" }
func (p staticKeyProvider) RequestKey()          {}

var supportedImageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

const supportedImageExtensionsLabel = ".png, .jpg, .jpeg, .webp"

func imageMIMEFromPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if mimeType, ok := supportedImageExtensions[ext]; ok {
		return mimeType, nil
	}
	if ext == "" {
		ext = "(none)"
	}
	return "", fmt.Errorf("unsupported image extension %q (supported: %s)", ext, supportedImageExtensionsLabel)
}

// confirmPaidTier warns that video generation needs a billing-enabled key
// and asks before spending quota. Non-interactive runs must pass --yes.
func confirmPaidTier(yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !isTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("video generation needs confirmation; re-run with --yes in non-interactive shells")
	}
	fmt.Fprint(os.Stderr, "Video generation requires a paid-tier API key and consumes quota. Continue? [y/N]: ")
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("error reading confirmation: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("Cancellation requested")
		cancel()
	}()
	stop := func() {
		signal.Stop(sigCh)
		cancel()
	}
	return ctx, stop
}
