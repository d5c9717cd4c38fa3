package auth

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"

	"github.com/dokkaebi/sajucut/internal/apperrors"
)

const (
	serviceName   = "sajucut"
	geminiAccount = "gemini-api-key"
	geminiEnvVar  = "GEMINI_API_KEY"
)

// GetKey retrieves the Gemini API key.
// If allowEnv is false, the environment variable is ignored.
func GetKey(allowEnv bool) (string, string) {
	key, err := keyring.Get(serviceName, geminiAccount)
	if err == nil && key != "" {
		return strings.TrimSpace(key), "Keychain"
	}

	if allowEnv {
		key = os.Getenv(geminiEnvVar)
		if key != "" {
			return strings.TrimSpace(key), "Environment Variable"
		}
	}

	return "", ""
}

// SaveKey validates and saves the key to the OS keychain. An empty or
// whitespace-only key is a validation failure shown to the user, not a
// keychain error.
func SaveKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return apperrors.New(apperrors.KindValidation, "API key must not be empty.", nil)
	}
	return keyring.Set(serviceName, geminiAccount, trimmed)
}

// DeleteKey removes the key from the OS keychain.
func DeleteKey() error {
	return keyring.Delete(serviceName, geminiAccount)
}

// GetStatus returns whether a key exists in the keychain.
func GetStatus() bool {
	key, err := keyring.Get(serviceName, geminiAccount)
	return err == nil && key != ""
}

// PromptForAPIKey securely prompts the user for their API key.
func PromptForAPIKey(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}

// GetEnvKey retrieves the key from the environment only.
func GetEnvKey() (string, bool) {
	key := strings.TrimSpace(os.Getenv(geminiEnvVar))
	if key == "" {
		return "", false
	}
	return key, true
}
