package gemini

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/api/googleapi"

	"github.com/dokkaebi/sajucut/internal/apperrors"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want apperrors.Kind
	}{
		{"nil passthrough", nil, ""},
		{"bad request", &googleapi.Error{Code: 400}, apperrors.KindBadRequest},
		{"unauthorized", &googleapi.Error{Code: 401}, apperrors.KindCredentialInvalid},
		{"forbidden", &googleapi.Error{Code: 403}, apperrors.KindCredentialInvalid},
		{"model not found", &googleapi.Error{Code: 404}, apperrors.KindBadRequest},
		{"rate limited", &googleapi.Error{Code: 429}, apperrors.KindRateLimit},
		{"server error", &googleapi.Error{Code: 500}, apperrors.KindTransient},
		{"bad gateway", &googleapi.Error{Code: 502}, apperrors.KindTransient},
		{"network failure", errors.New("dial tcp: lookup failed"), apperrors.KindTransient},
		{
			"stale key project",
			&googleapi.Error{Code: 404, Message: "Requested entity was not found."},
			apperrors.KindCredentialInvalid,
		},
		{
			"invalid key marker",
			fmt.Errorf("googleapi: Error 400: API key not valid. Please pass a valid API key."),
			apperrors.KindCredentialInvalid,
		},
		{
			"wrapped googleapi error",
			fmt.Errorf("generate: %w", &googleapi.Error{Code: 429}),
			apperrors.KindRateLimit,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyError(tc.err)
			if tc.err == nil {
				if got != nil {
					t.Fatalf("classifyError(nil) = %v", got)
				}
				return
			}
			kind, ok := apperrors.KindOf(got)
			if !ok {
				t.Fatalf("classified error is not an app error: %v", got)
			}
			if kind != tc.want {
				t.Errorf("kind = %q, want %q", kind, tc.want)
			}
			if !errors.Is(got, tc.err) && !errorsContains(got, tc.err) {
				t.Errorf("classified error does not wrap the cause: %v", got)
			}
		})
	}
}

func errorsContains(err, target error) bool {
	for err != nil {
		if err == target || errors.Is(err, target) {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
