package veo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/dokkaebi/sajucut/internal/apperrors"
	"github.com/dokkaebi/sajucut/internal/auth"
	"github.com/dokkaebi/sajucut/internal/cleanup"
	"github.com/dokkaebi/sajucut/internal/httpclient"
	"github.com/dokkaebi/sajucut/internal/logger"
)

// Generator interface for mocking and dependency injection.
type Generator interface {
	Generate(ctx context.Context, fortuneScript string) (string, error)
}

// Options tune the video job. Zero values fall back to the defaults the
// product ships with.
type Options struct {
	AspectRatio string
	Resolution  string
	// PollInterval is the spacing between status checks.
	PollInterval time.Duration
	// MaxPollAttempts bounds the poll loop. At the default interval this
	// allows 15 minutes before the job is declared timed out.
	MaxPollAttempts int
	// OutputDir receives the downloaded clip. Empty means the OS temp dir.
	OutputDir string
}

const (
	DefaultAspectRatio     = "9:16"
	DefaultResolution      = "720p"
	DefaultPollInterval    = 10 * time.Second
	DefaultMaxPollAttempts = 90
)

func (o Options) withDefaults() Options {
	if o.AspectRatio == "" {
		o.AspectRatio = DefaultAspectRatio
	}
	if o.Resolution == "" {
		o.Resolution = DefaultResolution
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.MaxPollAttempts <= 0 {
		o.MaxPollAttempts = DefaultMaxPollAttempts
	}
	return o
}

// operations is the slice of the video API the poll loop needs. The real
// implementation is backed by the genai SDK; tests substitute a fake.
type operations interface {
	Start(ctx context.Context, model, prompt string, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	Poll(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
}

// Client turns a fortune script into a downloaded vertical video clip.
type Client struct {
	keys      auth.KeyProvider
	modelName string
	opts      Options

	// Overridable seams for tests.
	newOps func(ctx context.Context, apiKey string) (operations, error)
	fetch  func(ctx context.Context, uri, apiKey, dest string) error
}

var _ Generator = (*Client)(nil)

func NewClient(keys auth.KeyProvider, modelName string, opts Options) *Client {
	c := &Client{
		keys:      keys,
		modelName: modelName,
		opts:      opts.withDefaults(),
	}
	c.newOps = newGenaiOperations
	c.fetch = fetchMedia
	return c
}

// Generate starts a video job, polls it to completion, downloads the clip,
// and returns the local file path. The file is registered for cleanup on
// exit, so callers that want to keep it must copy it elsewhere.
func (c *Client) Generate(ctx context.Context, fortuneScript string) (string, error) {
	if strings.TrimSpace(fortuneScript) == "" {
		return "", apperrors.New(apperrors.KindValidation, "Cannot generate a video from an empty script.", nil)
	}

	apiKey, err := c.keys.Key()
	if err != nil {
		return "", err
	}

	ops, err := c.newOps(ctx, apiKey)
	if err != nil {
		return "", classifyVideoError(err)
	}

	prompt := buildVideoPrompt(fortuneScript)
	cfg := &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     c.opts.Resolution,
		AspectRatio:    c.opts.AspectRatio,
	}

	logger.Info("Video job starting", "model", c.modelName, "aspect_ratio", c.opts.AspectRatio, "resolution", c.opts.Resolution)
	op, err := ops.Start(ctx, c.modelName, prompt, cfg)
	if err != nil {
		return "", classifyVideoError(err)
	}

	op, err = c.pollUntilDone(ctx, ops, op)
	if err != nil {
		return "", err
	}

	uri, err := videoURI(op)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(c.outputDir(), "sajucut-"+uuid.NewString()+".mp4")
	if err := c.fetch(ctx, uri, apiKey, dest); err != nil {
		return "", apperrors.Fetch(fmt.Errorf("failed to fetch video file: %w", err))
	}
	cleanup.RegisterTempFile(dest)

	logger.Info("Video downloaded", "path", dest)
	return dest, nil
}

func (c *Client) pollUntilDone(ctx context.Context, ops operations, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	limiter := rate.NewLimiter(rate.Every(c.opts.PollInterval), 1)
	// Video jobs never finish instantly. Burning the initial token makes
	// the first status check wait a full interval like every later one.
	limiter.Allow()

	var err error
	for attempt := 1; !op.Done; attempt++ {
		if attempt > c.opts.MaxPollAttempts {
			return nil, apperrors.Timeout(fmt.Errorf("video job still pending after %d polls (%s apart)", c.opts.MaxPollAttempts, c.opts.PollInterval))
		}
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		op, err = ops.Poll(ctx, op)
		if err != nil {
			return nil, classifyVideoError(fmt.Errorf("poll %d: %w", attempt, err))
		}
		logger.Debug("Video job polled", "attempt", attempt, "done", op.Done)
	}
	return op, nil
}

// videoURI validates the finished operation and extracts the download link.
func videoURI(op *genai.GenerateVideosOperation) (string, error) {
	if len(op.Error) > 0 {
		detail, _ := json.Marshal(op.Error)
		return "", apperrors.Transient(fmt.Errorf("video job failed: %s", detail))
	}
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 ||
		op.Response.GeneratedVideos[0].Video == nil ||
		op.Response.GeneratedVideos[0].Video.URI == "" {
		return "", apperrors.MediaMissing(fmt.Errorf("video job %q finished without a media URI", op.Name))
	}
	return op.Response.GeneratedVideos[0].Video.URI, nil
}

func (c *Client) outputDir() string {
	if c.opts.OutputDir != "" {
		return c.opts.OutputDir
	}
	return os.TempDir()
}

// genaiOperations adapts the real SDK client to the operations seam.
type genaiOperations struct {
	client *genai.Client
}

func newGenaiOperations(ctx context.Context, apiKey string) (operations, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create video API client: %w", err)
	}
	return &genaiOperations{client: client}, nil
}

func (g *genaiOperations) Start(ctx context.Context, model, prompt string, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return g.client.Models.GenerateVideos(ctx, model, prompt, nil, cfg)
}

func (g *genaiOperations) Poll(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	return g.client.Operations.GetVideosOperation(ctx, op, nil)
}

// fetchMedia downloads the clip. The download link already carries query
// parameters; the API key must be appended as one more.
func fetchMedia(ctx context.Context, uri, apiKey, dest string) error {
	sep := "&"
	if !strings.Contains(uri, "?") {
		sep = "?"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri+sep+"key="+apiKey, nil)
	if err != nil {
		return err
	}
	size, err := httpclient.DownloadToFile(httpclient.GetDefaultClient(), req, dest)
	if err != nil {
		return err
	}
	logger.Debug("Media fetched", "bytes", size)
	return nil
}

func classifyVideoError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsCredentialProblem(err) {
		return err
	}

	wrapped := fmt.Errorf("video generation failed: %w", err)

	msg := strings.ToLower(err.Error())
	// A key bound to a deleted or unpaid project surfaces as a 404 with
	// this exact message rather than an auth error.
	if strings.Contains(msg, "requested entity was not found") {
		return apperrors.CredentialInvalid(wrapped)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 400:
			return apperrors.BadRequest(wrapped)
		case 401, 403:
			return apperrors.CredentialInvalid(wrapped)
		case 429:
			return apperrors.RateLimit(wrapped)
		default:
			if apiErr.Code >= 500 {
				return apperrors.Transient(wrapped)
			}
			return apperrors.BadRequest(wrapped)
		}
	}
	return apperrors.Transient(wrapped)
}
