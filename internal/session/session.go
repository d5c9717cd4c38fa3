// Package session holds the workflow state shared by the GUI and CLI: one
// screenshot in, one analyzed script, one generated clip out.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dokkaebi/sajucut/internal/apperrors"
	"github.com/dokkaebi/sajucut/internal/auth"
	"github.com/dokkaebi/sajucut/internal/gemini"
	"github.com/dokkaebi/sajucut/internal/logger"
	"github.com/dokkaebi/sajucut/internal/script"
	"github.com/dokkaebi/sajucut/internal/veo"
)

// Step is the visible stage of the workflow.
type Step int

const (
	// StepSetup shows the key gate and screenshot upload.
	StepSetup Step = iota
	// StepAnalysis shows the analysis and the editable script.
	StepAnalysis
	// StepViewer shows the generation progress and the finished clip.
	StepViewer
)

func (s Step) String() string {
	switch s {
	case StepSetup:
		return "setup"
	case StepAnalysis:
		return "analysis"
	case StepViewer:
		return "viewer"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Session is a snapshot of the workflow state.
type Session struct {
	CurrentStep Step

	Image     []byte
	ImageMIME string

	Analysis       *gemini.Analysis
	EditableScript string
	EditableTitle  string

	VideoPath string

	Busy          bool
	StatusMessage string
}

// Status and failure texts shown to the user.
const (
	statusAnalyzing      = "명리학적으로 대본을 분석하고 있습니다..."
	statusAnalysisFailed = "분석에 실패했습니다."
	statusVideoBusy      = "12지신이 쏟아지는 우주 영상을 빚어내고 있습니다..."
	statusVideoDone      = "영상 제작 완료!"
	statusVideoFailed    = "생성 실패. 유료 계정 키인지 확인하세요."
)

// pigGuidance is appended to the title for short narration.
const pigGuidance = "화면 하단의 복돼지를 두 번 누르시면 복이 찾아옵니다."

// Options tune behavior the user can change in settings.
type Options struct {
	// SortBirthYears orders the birth-year wall chronologically instead of
	// script appearance order.
	SortBirthYears bool
	// SpeakFullScript narrates the whole script; off narrates only the
	// title plus the fortune-pig guidance.
	SpeakFullScript bool
}

func DefaultOptions() Options {
	return Options{SortBirthYears: true}
}

// Controller serializes all workflow mutations. Long operations run on the
// calling goroutine; the UI wraps them in its own workers.
type Controller struct {
	analyzer  gemini.Analyzer
	generator veo.Generator
	keys      auth.KeyProvider

	// OnChange receives a snapshot after every state change. It runs on
	// whatever goroutine performed the mutation.
	OnChange func(Session)

	mu    sync.Mutex
	state Session
	opts  Options
}

func NewController(analyzer gemini.Analyzer, generator veo.Generator, keys auth.KeyProvider, opts Options) *Controller {
	return &Controller{
		analyzer:  analyzer,
		generator: generator,
		keys:      keys,
		state:     Session{CurrentStep: StepSetup},
		opts:      opts,
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) SetOptions(opts Options) {
	c.mu.Lock()
	c.opts = opts
	c.mu.Unlock()
	c.changed()
}

func (c *Controller) Option() Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts
}

// UploadImage stores the reference screenshot. Only images are accepted.
func (c *Controller) UploadImage(data []byte, mimeType string) error {
	if len(data) == 0 {
		return apperrors.New(apperrors.KindValidation, "업로드된 파일이 비어 있습니다.", nil)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return apperrors.New(apperrors.KindValidation, "이미지 파일만 업로드할 수 있습니다.", fmt.Errorf("mime type %q", mimeType))
	}

	c.mu.Lock()
	c.state.Image = data
	c.state.ImageMIME = mimeType
	c.mu.Unlock()
	c.changed()
	return nil
}

// SetScript updates the editable script as the user types.
func (c *Controller) SetScript(text string) {
	c.mu.Lock()
	c.state.EditableScript = text
	c.mu.Unlock()
	c.changed()
}

// SetTitle updates the editable title.
func (c *Controller) SetTitle(text string) {
	c.mu.Lock()
	c.state.EditableTitle = text
	c.mu.Unlock()
	c.changed()
}

// StartAnalysis runs the screenshot analysis. Without an image it is a
// silent no-op, matching the disabled state of the analyze button. While
// another operation is running it refuses rather than queueing.
func (c *Controller) StartAnalysis(ctx context.Context) error {
	c.mu.Lock()
	if len(c.state.Image) == 0 {
		c.mu.Unlock()
		return nil
	}
	if c.state.Busy {
		c.mu.Unlock()
		return apperrors.New(apperrors.KindValidation, "이미 작업이 진행 중입니다.", nil)
	}
	image, mimeType := c.state.Image, c.state.ImageMIME
	c.state.Busy = true
	c.state.StatusMessage = statusAnalyzing
	c.mu.Unlock()
	c.changed()

	analysis, err := c.analyzer.Analyze(ctx, image, mimeType)

	c.mu.Lock()
	c.state.Busy = false
	if err != nil {
		c.state.StatusMessage = statusAnalysisFailed
		c.mu.Unlock()
		c.changed()
		logger.Warn("Analysis failed", "error", err)
		if apperrors.IsCredentialProblem(err) {
			c.keys.RequestKey()
		}
		return err
	}
	c.state.Analysis = analysis
	c.state.EditableScript = analysis.FortuneScript
	c.state.EditableTitle = analysis.SuggestedTitle
	c.state.CurrentStep = StepAnalysis
	c.state.StatusMessage = ""
	c.mu.Unlock()
	c.changed()
	return nil
}

// StartVideoGeneration turns the edited script into a clip. An empty script
// is a silent no-op. The previous clip path is dropped up front, so the
// viewer never shows a stale video during generation.
func (c *Controller) StartVideoGeneration(ctx context.Context) error {
	c.mu.Lock()
	if strings.TrimSpace(c.state.EditableScript) == "" {
		c.mu.Unlock()
		return nil
	}
	if c.state.Busy {
		c.mu.Unlock()
		return apperrors.New(apperrors.KindValidation, "이미 작업이 진행 중입니다.", nil)
	}
	fortuneScript := c.state.EditableScript
	c.state.Busy = true
	c.state.CurrentStep = StepViewer
	c.state.VideoPath = ""
	c.state.StatusMessage = statusVideoBusy
	c.mu.Unlock()
	c.changed()

	path, err := c.generator.Generate(ctx, fortuneScript)

	c.mu.Lock()
	c.state.Busy = false
	if err != nil {
		c.state.StatusMessage = statusVideoFailed
		c.mu.Unlock()
		c.changed()
		logger.Warn("Video generation failed", "error", err)
		if apperrors.IsCredentialProblem(err) {
			c.keys.RequestKey()
		}
		return err
	}
	c.state.VideoPath = path
	c.state.StatusMessage = statusVideoDone
	c.mu.Unlock()
	c.changed()
	return nil
}

// ReturnTo switches the visible step without touching any entered data.
func (c *Controller) ReturnTo(step Step) {
	c.mu.Lock()
	c.state.CurrentStep = step
	c.mu.Unlock()
	c.changed()
}

// BirthYears extracts the birth-year tokens of the current script, ordered
// per the sort option.
func (c *Controller) BirthYears() []script.BirthYear {
	c.mu.Lock()
	text := c.state.EditableScript
	sorted := c.opts.SortBirthYears
	c.mu.Unlock()

	years := script.ExtractBirthYears(text)
	if sorted {
		script.SortChronological(years)
	}
	return years
}

// NarrationText returns what the narrator reads: the whole script, or just
// the title and the fortune-pig guidance.
func (c *Controller) NarrationText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.opts.SpeakFullScript {
		return c.state.EditableScript
	}
	title := strings.TrimSpace(c.state.EditableTitle)
	if title == "" {
		return pigGuidance
	}
	return fmt.Sprintf("%s. %s", title, pigGuidance)
}

func (c *Controller) changed() {
	if c.OnChange == nil {
		return
	}
	c.OnChange(c.Snapshot())
}
