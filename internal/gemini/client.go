package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
	"google.golang.org/api/option"

	"github.com/dokkaebi/sajucut/internal/apperrors"
	"github.com/dokkaebi/sajucut/internal/auth"
	"github.com/dokkaebi/sajucut/internal/httpclient"
	"github.com/dokkaebi/sajucut/internal/logger"
)

// Analyzer interface for mocking and dependency injection.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte, mimeType string) (*Analysis, error)
}

// Client analyzes shorts screenshots with the Gemini vision API.
// The credential is resolved through the injected provider on every call, so
// a key saved mid-session is picked up without restarting.
type Client struct {
	keys      auth.KeyProvider
	modelName string

	results *cache.Cache
	inFlight singleflight.Group
}

var _ Analyzer = (*Client)(nil)

// Analysis results are cached briefly so a retry after a downstream failure
// (e.g. video generation) does not re-bill the same screenshot.
const resultCacheTTL = 30 * time.Minute

func NewClient(keys auth.KeyProvider, modelName string) *Client {
	return &Client{
		keys:      keys,
		modelName: modelName,
		results:   cache.New(resultCacheTTL, 10*time.Minute),
	}
}

// responseSchema constrains the model output to the seven required string
// fields of Analysis.
func responseSchema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestedTitle":         str(),
			"hook":                   str(),
			"visualStyle":            str(),
			"pacing":                 str(),
			"textOverlayStrategy":    str(),
			"engagementFactor":       str(),
			"suggestedFortuneScript": str(),
		},
		Required: []string{
			"suggestedTitle", "hook", "visualStyle", "pacing",
			"textOverlayStrategy", "engagementFactor", "suggestedFortuneScript",
		},
	}
}

// Analyze sends the screenshot plus the fixed prompt and returns the parsed
// structured result. Identical concurrent calls are collapsed; identical
// repeat calls within the cache TTL are served locally.
func (c *Client) Analyze(ctx context.Context, image []byte, mimeType string) (*Analysis, error) {
	key, err := c.keys.Key()
	if err != nil {
		return nil, err
	}

	digest := imageDigest(image, c.modelName)
	if cached, ok := c.results.Get(digest); ok {
		logger.Debug("Analysis served from cache", "digest", digest[:12])
		return cached.(*Analysis), nil
	}

	v, err, _ := c.inFlight.Do(digest, func() (any, error) {
		result, err := c.analyzeRemote(ctx, key, image, mimeType)
		if err != nil {
			return nil, err
		}
		c.results.SetDefault(digest, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Analysis), nil
}

func (c *Client) analyzeRemote(ctx context.Context, apiKey string, image []byte, mimeType string) (*Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, httpclient.DefaultTimeout)
	defer cancel()

	// Note: option.WithHTTPClient interferes with the genai library's
	// internal header injection for API keys, causing 403 errors, so the
	// timeout is enforced via context instead.
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, classifyError(err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = responseSchema()

	if mimeType == "" {
		mimeType = "image/png"
	}
	format := strings.TrimPrefix(mimeType, "image/")

	resp, err := model.GenerateContent(ctx,
		genai.ImageData(format, image),
		genai.Text(analysisPrompt),
	)
	if err != nil {
		return nil, classifyError(err)
	}

	text, err := extractResponseText(resp)
	if err != nil {
		return nil, apperrors.Parse(err)
	}
	analysis, err := parseAnalysis(text)
	if err != nil {
		return nil, err
	}

	if resp.UsageMetadata != nil {
		logger.Info("Analysis complete",
			"model", c.modelName,
			"prompt_tokens", int(resp.UsageMetadata.PromptTokenCount),
			"output_tokens", int(resp.UsageMetadata.CandidatesTokenCount),
		)
	}
	return analysis, nil
}

// parseAnalysis decodes the JSON payload and verifies all required fields
// arrived. A schema-constrained model should never miss one, but an empty
// fortune script would break the whole downstream flow, so it is checked.
func parseAnalysis(text string) (*Analysis, error) {
	var analysis Analysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, apperrors.Parse(fmt.Errorf("failed to unmarshal analysis: %w", err))
	}
	if strings.TrimSpace(analysis.FortuneScript) == "" {
		return nil, apperrors.Parse(fmt.Errorf("analysis response has empty fortune script"))
	}
	if strings.TrimSpace(analysis.SuggestedTitle) == "" {
		return nil, apperrors.Parse(fmt.Errorf("analysis response has empty title"))
	}
	return &analysis, nil
}

func extractResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("no response received from Gemini")
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			continue
		}
		var combined string
		for _, part := range candidate.Content.Parts {
			text, ok := part.(genai.Text)
			if !ok {
				continue
			}
			combined += string(text)
		}
		if combined != "" {
			return combined, nil
		}
	}
	return "", fmt.Errorf("no text parts found in Gemini response")
}

func imageDigest(image []byte, model string) string {
	h := sha256.New()
	h.Write(image)
	h.Write([]byte(model))
	return hex.EncodeToString(h.Sum(nil))
}
