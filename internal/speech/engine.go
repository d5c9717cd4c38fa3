package speech

import (
	"archive/tar"
	"compress/bzip2"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	sherpa "github.com/k2-fsa/sherpa-onnx-go/sherpa_onnx"
	"golang.org/x/sync/singleflight"

	"github.com/dokkaebi/sajucut/internal/files"
	"github.com/dokkaebi/sajucut/internal/httpclient"
	"github.com/dokkaebi/sajucut/internal/logger"
)

// Params shape the narration delivery.
type Params struct {
	// Rate is the speaking speed multiplier, 1.0 being the model default.
	Rate float64
	// Pitch shifts the voice. VITS models have no native pitch control, so
	// the engine resamples: raising pitch raises tempo too, and the
	// synthesis speed compensates to keep the effective rate.
	Pitch float64
}

func (p Params) withDefaults() Params {
	if p.Rate <= 0 {
		p.Rate = 1.0
	}
	if p.Pitch <= 0 {
		p.Pitch = 1.0
	}
	return p
}

// Engine synthesizes text to a playable WAV file.
type Engine interface {
	Voices() []Voice
	Synthesize(text string, voice Voice, params Params) (string, error)
}

type modelInfo struct {
	Voice       Voice
	SubDir      string
	DownloadURL string
	OnnxFile    string
	TokensFile  string
	DataDir     string
}

// modelRegistry lists the offline voices the app can fetch on demand.
// The Korean KSS voice carries a female marker so voice selection finds it.
var modelRegistry = []modelInfo{
	{
		Voice:       Voice{Name: "KSS 여성", Language: "ko-KR"},
		SubDir:      "vits-mimic3-ko_KO-kss_low",
		DownloadURL: "https://github.com/k2-fsa/sherpa-onnx/releases/download/tts-models/vits-mimic3-ko_KO-kss_low.tar.bz2",
		OnnxFile:    "ko_KO-kss_low.onnx",
		TokensFile:  "tokens.txt",
		DataDir:     "espeak-ng-data",
	},
	{
		Voice:       Voice{Name: "Amy", Language: "en-US"},
		SubDir:      "vits-piper-en_US-amy-low",
		DownloadURL: "https://github.com/k2-fsa/sherpa-onnx/releases/download/tts-models/vits-piper-en_US-amy-low.tar.bz2",
		OnnxFile:    "en_US-amy-low.onnx",
		TokensFile:  "tokens.txt",
		DataDir:     "espeak-ng-data",
	},
}

// SherpaEngine runs VITS models locally via sherpa-onnx. Models are fetched
// on first use and cached under baseDir.
type SherpaEngine struct {
	baseDir string

	mu       sync.Mutex
	loaded   map[string]*sherpa.OfflineTts
	fetching singleflight.Group
}

var _ Engine = (*SherpaEngine)(nil)

func NewSherpaEngine(baseDir string) *SherpaEngine {
	return &SherpaEngine{
		baseDir: baseDir,
		loaded:  make(map[string]*sherpa.OfflineTts),
	}
}

func (e *SherpaEngine) Voices() []Voice {
	voices := make([]Voice, 0, len(modelRegistry))
	for _, info := range modelRegistry {
		voices = append(voices, info.Voice)
	}
	return voices
}

// Synthesize renders text with the given voice and writes a WAV file next to
// the model cache. The same text renders to the same path, so repeated
// narration of an unchanged script reuses the file.
func (e *SherpaEngine) Synthesize(text string, voice Voice, params Params) (string, error) {
	info, ok := e.lookup(voice)
	if !ok {
		return "", fmt.Errorf("unknown voice %q (%s)", voice.Name, voice.Language)
	}
	params = params.withDefaults()

	tts, err := e.loadModel(info)
	if err != nil {
		return "", err
	}

	// Resampling by the pitch factor shifts pitch and tempo together, so
	// the synthesis speed divides it back out.
	speed := float32(params.Rate / params.Pitch)
	audio := tts.Generate(text, 0, speed)
	if audio == nil || len(audio.Samples) == 0 {
		return "", fmt.Errorf("synthesis produced no audio for voice %q", voice.Name)
	}
	sampleRate := int(float64(audio.SampleRate) * params.Pitch)

	wav := encodeWAV(audio.Samples, sampleRate)
	dest := filepath.Join(e.baseDir, fmt.Sprintf("narration-%s.wav", contentKey(text, voice, params)))
	if err := files.AtomicWrite(dest, wav, 0o600); err != nil {
		return "", fmt.Errorf("failed to write narration file: %w", err)
	}
	return dest, nil
}

func (e *SherpaEngine) lookup(voice Voice) (modelInfo, bool) {
	for _, info := range modelRegistry {
		if info.Voice == voice {
			return info, true
		}
	}
	return modelInfo{}, false
}

func (e *SherpaEngine) loadModel(info modelInfo) (*sherpa.OfflineTts, error) {
	e.mu.Lock()
	if tts, ok := e.loaded[info.SubDir]; ok {
		e.mu.Unlock()
		return tts, nil
	}
	e.mu.Unlock()

	v, err, _ := e.fetching.Do(info.SubDir, func() (any, error) {
		modelDir := filepath.Join(e.baseDir, info.SubDir)
		if _, err := os.Stat(modelDir); os.IsNotExist(err) {
			logger.Info("Downloading voice model", "voice", info.Voice.Name, "url", info.DownloadURL)
			if err := downloadAndExtract(info.DownloadURL, e.baseDir); err != nil {
				return nil, fmt.Errorf("failed to download voice model: %w", err)
			}
		}

		config := sherpa.OfflineTtsConfig{
			Model: sherpa.OfflineTtsModelConfig{
				Vits: sherpa.OfflineTtsVitsModelConfig{
					Model:   filepath.Join(modelDir, info.OnnxFile),
					Tokens:  filepath.Join(modelDir, info.TokensFile),
					DataDir: filepath.Join(modelDir, info.DataDir),
				},
				Provider:   "cpu",
				NumThreads: 1,
			},
		}
		tts := sherpa.NewOfflineTts(&config)
		if tts == nil {
			return nil, fmt.Errorf("failed to initialize voice %q", info.Voice.Name)
		}

		e.mu.Lock()
		e.loaded[info.SubDir] = tts
		e.mu.Unlock()
		return tts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sherpa.OfflineTts), nil
}

func downloadAndExtract(url, destDir string) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	resp, err := httpclient.GetDefaultClient().Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	tarReader := tar.NewReader(bzip2.NewReader(resp.Body))
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := safeJoin(destDir, header.Name)
		if err != nil {
			return err
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return err
			}
			_, err = io.Copy(f, tarReader)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return err
			}
		}
	}
}

// safeJoin rejects archive entries that would escape the destination dir.
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, name)
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator) {
		return "", fmt.Errorf("archive entry %q escapes destination", name)
	}
	return target, nil
}
