package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/dokkaebi/sajucut/internal/auth"
	"github.com/dokkaebi/sajucut/internal/export"
	"github.com/dokkaebi/sajucut/internal/files"
	"github.com/dokkaebi/sajucut/internal/gemini"
	"github.com/dokkaebi/sajucut/internal/logger"
	"github.com/dokkaebi/sajucut/internal/veo"
)

// dynamicAnalyzer rebuilds the analysis client when the configured model
// changes, so a settings edit takes effect without restarting the app. The
// client's response cache is per model, which is the correct scope anyway.
type dynamicAnalyzer struct {
	keys  auth.KeyProvider
	model func() string

	// newClient is swapped in tests.
	newClient func(keys auth.KeyProvider, model string) gemini.Analyzer

	mu      sync.Mutex
	current string
	client  gemini.Analyzer
}

func newDynamicAnalyzer(keys auth.KeyProvider, model func() string) *dynamicAnalyzer {
	return &dynamicAnalyzer{
		keys:  keys,
		model: model,
		newClient: func(keys auth.KeyProvider, model string) gemini.Analyzer {
			return gemini.NewClient(keys, model)
		},
	}
}

func (d *dynamicAnalyzer) Analyze(ctx context.Context, image []byte, mimeType string) (*gemini.Analysis, error) {
	model := d.model()
	d.mu.Lock()
	if d.client == nil || d.current != model {
		d.client = d.newClient(d.keys, model)
		d.current = model
	}
	client := d.client
	d.mu.Unlock()
	return client.Analyze(ctx, image, mimeType)
}

// dynamicGenerator is the video-side counterpart of dynamicAnalyzer.
type dynamicGenerator struct {
	keys auth.KeyProvider
	opts func() (model string, opts veo.Options)

	newClient func(keys auth.KeyProvider, model string, opts veo.Options) veo.Generator

	mu      sync.Mutex
	current string
	bound   int
	client  veo.Generator
}

func newDynamicGenerator(keys auth.KeyProvider, opts func() (string, veo.Options)) *dynamicGenerator {
	return &dynamicGenerator{
		keys: keys,
		opts: opts,
		newClient: func(keys auth.KeyProvider, model string, opts veo.Options) veo.Generator {
			return veo.NewClient(keys, model, opts)
		},
	}
}

func (d *dynamicGenerator) Generate(ctx context.Context, fortuneScript string) (string, error) {
	model, opts := d.opts()
	d.mu.Lock()
	if d.client == nil || d.current != model || d.bound != opts.MaxPollAttempts {
		d.client = d.newClient(d.keys, model, opts)
		d.current = model
		d.bound = opts.MaxPollAttempts
	}
	client := d.client
	d.mu.Unlock()
	return client.Generate(ctx, fortuneScript)
}

func (a *sajuApp) startAnalysis() {
	ctx, cancel := context.WithCancel(context.Background())
	cancelID := a.setActiveCancel(cancel)
	a.safeGo("ops.analyze", func() {
		defer a.clearActiveCancel(cancelID)
		err := a.controller.StartAnalysis(ctx)
		if err == nil || errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("Analysis failed", "error", err)
	})
}

func (a *sajuApp) startVideoGeneration() {
	ctx, cancel := context.WithCancel(context.Background())
	cancelID := a.setActiveCancel(cancel)
	a.safeGo("ops.video", func() {
		defer a.clearActiveCancel(cancelID)
		err := a.controller.StartVideoGeneration(ctx)
		if err == nil || errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("Video generation failed", "error", err)
	})
}

// saveGeneratedVideo copies the finished clip out of the temp directory and
// drops a matching .srt next to it so the script can be captioned as-is.
func (a *sajuApp) saveGeneratedVideo() {
	snap := a.controller.Snapshot()
	if snap.VideoPath == "" {
		a.flashRed()
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		dest := writer.URI().Path()
		writer.Close()

		if err := files.CopyAtomic(snap.VideoPath, dest, 0o644); err != nil {
			logger.Error("Video save failed", "dest", dest, "error", err)
			dialog.ShowError(errors.New("영상 저장에 실패했습니다."), a.window)
			return
		}

		srtPath := strings.TrimSuffix(dest, filepath.Ext(dest)) + ".srt"
		if err := export.WriteSRT(srtPath, snap.EditableScript); err != nil {
			logger.Warn("Subtitle export skipped", "path", srtPath, "error", err)
		}

		dialog.ShowInformation("저장 완료", "배경 영상과 자막(.srt)을 저장했습니다.\nCapCut 등에서 자막을 입혀 업로드하세요.", a.window)
	}, a.window)

	fd.SetFileName("fortune-background.mp4")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".mp4"}))
	fd.Resize(fyne.NewSize(900, 700))
	fd.Show()
}

func saveKeyToKeychain(key string, saveFn func(key string) error) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, nil
	}
	if err := saveFn(key); err != nil {
		return false, err
	}
	return true, nil
}

func resetKeyInKeychain(deleteFn func() error) error {
	if err := deleteFn(); err != nil {
		return errors.New("failed to delete Gemini key: " + err.Error())
	}
	return nil
}
