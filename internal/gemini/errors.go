package gemini

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"

	"github.com/dokkaebi/sajucut/internal/apperrors"
)

// credentialInvalidMarkers are substrings the upstream API uses when the key
// itself (or its project) is the problem. "Requested entity was not found."
// is how a key pointing at a deleted project surfaces.
var credentialInvalidMarkers = []string{
	"requested entity was not found",
	"api key not valid",
	"api_key_invalid",
}

func classifyError(err error) error {
	if err == nil {
		return nil
	}

	wrapped := fmt.Errorf("gemini generate content failed: %w", err)

	if isCredentialInvalid(err) {
		return apperrors.CredentialInvalid(wrapped)
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 400:
			return apperrors.New(apperrors.KindBadRequest, "Gemini request rejected (400).", wrapped)
		case 401, 403:
			return apperrors.New(apperrors.KindCredentialInvalid, fmt.Sprintf("Gemini rejected the API key (%d).", gerr.Code), wrapped)
		case 404:
			return apperrors.New(apperrors.KindBadRequest, "Gemini model not found or no access (404).", wrapped)
		case 429:
			return apperrors.New(apperrors.KindRateLimit, "Gemini rate limit exceeded (429). Please try again later.", wrapped)
		default:
			if gerr.Code >= 500 {
				return apperrors.New(apperrors.KindTransient, fmt.Sprintf("Gemini service temporary error (%d). Please retry.", gerr.Code), wrapped)
			}
			return apperrors.New(apperrors.KindBadRequest, fmt.Sprintf("Gemini API error (%d).", gerr.Code), wrapped)
		}
	}

	// Non-HTTP transport/runtime failures (DNS, socket, timeout).
	return apperrors.New(apperrors.KindTransient, "Gemini request failed due to a temporary network/runtime error.", wrapped)
}

func isCredentialInvalid(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range credentialInvalidMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
