package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestRedactAttr(t *testing.T) {
	t.Run("redacts_key_names", func(t *testing.T) {
		for _, key := range []string{"api_key", "gemini_key", "prompt", "script", "credential_source"} {
			a := RedactAttr(nil, slog.String(key, "AIzaSyExample1234567890"))
			if a.Value.String() != "[REDACTED]" {
				t.Errorf("key %q not redacted: %v", key, a.Value)
			}
		}
	})

	t.Run("redacts_key_query_param", func(t *testing.T) {
		a := RedactAttr(nil, slog.String("url", "https://example.com/v1/video?alt=media&key=AIzaSecret"))
		if a.Value.String() != "[REDACTED]" {
			t.Fatalf("URL with key param not redacted: %v", a.Value)
		}
	})

	t.Run("keeps_plain_attrs", func(t *testing.T) {
		a := RedactAttr(nil, slog.String("step", "analysis"))
		if a.Value.String() != "analysis" {
			t.Fatalf("plain attr mangled: %v", a.Value)
		}
	})
}

func TestPrettyHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: LevelInfo, ReplaceAttr: RedactAttr}, false)
	l := slog.New(h)

	l.Info("analysis complete", "tokens", 27, "api_key", "AIzaSecret")
	out := buf.String()

	if !strings.Contains(out, "analysis complete") {
		t.Fatalf("message missing from output: %q", out)
	}
	if !strings.Contains(out, "tokens=27") {
		t.Fatalf("attr missing from output: %q", out)
	}
	if strings.Contains(out, "AIzaSecret") {
		t.Fatalf("secret leaked to output: %q", out)
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Fatalf("expected redaction marker: %q", out)
	}
}

func TestPrettyHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: LevelWarn}, false)
	l := slog.New(h)

	l.Info("quiet")
	l.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Fatalf("warn record missing: %q", out)
	}
}
