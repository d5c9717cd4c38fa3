package gemini

import (
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/dokkaebi/sajucut/internal/apperrors"
)

func TestExtractResponseText(t *testing.T) {
	t.Run("nil response", func(t *testing.T) {
		if _, err := extractResponseText(nil); err == nil {
			t.Fatal("expected error for nil response")
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{}
		if _, err := extractResponseText(resp); err == nil {
			t.Fatal("expected error for empty candidates")
		}
	})

	t.Run("candidate without parts", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{}},
			},
		}
		if _, err := extractResponseText(resp); err == nil {
			t.Fatal("expected error when no parts carry text")
		}
	})

	t.Run("concatenates text parts", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{
					genai.Text(`{"suggestedTitle":`),
					genai.Text(`"x"}`),
				}}},
			},
		}
		got, err := extractResponseText(resp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != `{"suggestedTitle":"x"}` {
			t.Fatalf("got %q", got)
		}
	})
}

func TestParseAnalysis(t *testing.T) {
	valid := `{
		"suggestedTitle": "2026 재물운",
		"hook": "h",
		"visualStyle": "v",
		"pacing": "p",
		"textOverlayStrategy": "t",
		"engagementFactor": "e",
		"suggestedFortuneScript": "[제목] 대박\n[본문] 92년생 주목"
	}`

	t.Run("valid payload", func(t *testing.T) {
		a, err := parseAnalysis(valid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.SuggestedTitle != "2026 재물운" {
			t.Errorf("title = %q", a.SuggestedTitle)
		}
		if !strings.Contains(a.FortuneScript, "92년생") {
			t.Errorf("script lost birth-year token: %q", a.FortuneScript)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := parseAnalysis("{not json")
		if !apperrors.Is(err, apperrors.KindParse) {
			t.Fatalf("expected parse kind, got %v", err)
		}
	})

	t.Run("empty fortune script", func(t *testing.T) {
		_, err := parseAnalysis(`{"suggestedTitle":"t","suggestedFortuneScript":"  "}`)
		if !apperrors.Is(err, apperrors.KindParse) {
			t.Fatalf("expected parse kind, got %v", err)
		}
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := parseAnalysis(`{"suggestedTitle":"","suggestedFortuneScript":"[제목] x"}`)
		if !apperrors.Is(err, apperrors.KindParse) {
			t.Fatalf("expected parse kind, got %v", err)
		}
	})
}

func TestResponseSchemaRequiredFields(t *testing.T) {
	schema := responseSchema()
	want := []string{
		"suggestedTitle", "hook", "visualStyle", "pacing",
		"textOverlayStrategy", "engagementFactor", "suggestedFortuneScript",
	}
	if len(schema.Required) != len(want) {
		t.Fatalf("required fields = %d, want %d", len(schema.Required), len(want))
	}
	for _, field := range want {
		prop, ok := schema.Properties[field]
		if !ok {
			t.Errorf("schema missing property %q", field)
			continue
		}
		if prop.Type != genai.TypeString {
			t.Errorf("property %q type = %v, want string", field, prop.Type)
		}
	}
}

// The prompt text is a contract with the downstream script tooling: it must
// keep instructing the model to emit birth-year tokens and section markers.
func TestAnalysisPromptContract(t *testing.T) {
	prompt := AnalysisPrompt()
	for _, marker := range []string{"년생", "[제목]", "[본문]", "[미션]", "[클로징]", "JSON"} {
		if !strings.Contains(prompt, marker) {
			t.Errorf("prompt missing %q", marker)
		}
	}
}
