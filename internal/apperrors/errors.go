package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	// KindCredentialMissing means no API key was available at call time.
	KindCredentialMissing Kind = "credential_missing"
	// KindCredentialInvalid means the upstream API rejected the key.
	KindCredentialInvalid Kind = "credential_invalid"
	// KindParse means the structured model response was empty or malformed.
	KindParse Kind = "parse"
	// KindMediaMissing means a completed video job had no retrievable URI.
	KindMediaMissing Kind = "media_missing"
	// KindFetch means downloading the generated media failed.
	KindFetch Kind = "fetch"
	// KindValidation means user input was rejected before any remote call.
	KindValidation Kind = "validation"
	// KindTimeout means the video job poll loop hit its attempt ceiling.
	KindTimeout    Kind = "timeout"
	KindRateLimit  Kind = "rate_limit"
	KindTransient  Kind = "transient"
	KindBadRequest Kind = "bad_request"
)

type Error struct {
	Kind Kind
	// SafeMessage is intended for user-facing output and logs.
	SafeMessage string
	// Cause keeps the original internal error for troubleshooting.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultSafeMessage(kind Kind) string {
	switch kind {
	case KindCredentialMissing:
		return "No API key is set. Save a Gemini API key first."
	case KindCredentialInvalid:
		return "The API key was rejected. Re-select or re-enter your key."
	case KindParse:
		return "The model returned an empty or malformed response."
	case KindMediaMissing:
		return "The video job finished without media. Check quota or safety filters."
	case KindFetch:
		return "Downloading the generated video failed."
	case KindValidation:
		return "Input validation failed."
	case KindTimeout:
		return "The video job did not finish in time. Please try again."
	case KindRateLimit:
		return "Rate limit exceeded. Please try again later."
	case KindTransient:
		return "Temporary upstream error. Please try again."
	case KindBadRequest:
		return "Request rejected by upstream API."
	default:
		return "Request failed."
	}
}

func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultSafeMessage(kind)
	}
	return &Error{
		Kind:        kind,
		SafeMessage: msg,
		Cause:       cause,
	}
}

func CredentialMissing(err error) error { return New(KindCredentialMissing, "", err) }
func CredentialInvalid(err error) error { return New(KindCredentialInvalid, "", err) }
func Parse(err error) error             { return New(KindParse, "", err) }
func MediaMissing(err error) error      { return New(KindMediaMissing, "", err) }
func Fetch(err error) error             { return New(KindFetch, "", err) }
func Validation(err error) error        { return New(KindValidation, "", err) }
func Timeout(err error) error           { return New(KindTimeout, "", err) }
func RateLimit(err error) error         { return New(KindRateLimit, "", err) }
func Transient(err error) error         { return New(KindTransient, "", err) }
func BadRequest(err error) error        { return New(KindBadRequest, "", err) }

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

// IsCredentialProblem reports whether the user should be prompted to
// re-establish the API key before retrying.
func IsCredentialProblem(err error) bool {
	k, ok := KindOf(err)
	return ok && (k == KindCredentialMissing || k == KindCredentialInvalid)
}
