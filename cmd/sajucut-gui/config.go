package main

import (
	"fyne.io/fyne/v2"

	"github.com/dokkaebi/sajucut/internal/logger"
	"github.com/dokkaebi/sajucut/internal/metadata"
	"github.com/dokkaebi/sajucut/internal/veo"
)

type AppConfig struct {
	AnalysisModel string
	VideoModel    string

	SortBirthYears  bool
	SpeakFullScript bool

	// ConfettiIntensity is a percentage; 100 is the stock effect.
	ConfettiIntensity int
	PollBound         int
}

const (
	minConfettiIntensity = 25
	maxConfettiIntensity = 200
	maxPollBoundGUI      = 360
)

func normalizeAnalysisModel(id string) string {
	for _, known := range metadata.AnalysisModelIDs() {
		if id == known {
			return id
		}
	}
	return metadata.DefaultAnalysisModel
}

func normalizeVideoModel(id string) string {
	for _, known := range metadata.VideoModelIDs() {
		if id == known {
			return id
		}
	}
	return metadata.DefaultVideoModel
}

func clampConfettiIntensity(v int) int {
	if v < minConfettiIntensity {
		return minConfettiIntensity
	}
	if v > maxConfettiIntensity {
		return maxConfettiIntensity
	}
	return v
}

func clampPollBound(v int) int {
	if v < 1 {
		return veo.DefaultMaxPollAttempts
	}
	if v > maxPollBoundGUI {
		return maxPollBoundGUI
	}
	return v
}

func (a *sajuApp) loadConfig() {
	prefs := fyne.CurrentApp().Preferences()

	a.config.AnalysisModel = normalizeAnalysisModel(prefs.StringWithFallback("AnalysisModel", metadata.DefaultAnalysisModel))
	a.config.VideoModel = normalizeVideoModel(prefs.StringWithFallback("VideoModel", metadata.DefaultVideoModel))
	a.config.SortBirthYears = prefs.BoolWithFallback("SortBirthYears", true)
	a.config.SpeakFullScript = prefs.BoolWithFallback("SpeakFullScript", false)

	a.config.ConfettiIntensity = prefs.IntWithFallback("ConfettiIntensity", 100)
	if clamped := clampConfettiIntensity(a.config.ConfettiIntensity); clamped != a.config.ConfettiIntensity {
		logger.Warn("Confetti intensity clamped", "requested", a.config.ConfettiIntensity, "effective", clamped)
		a.config.ConfettiIntensity = clamped
		prefs.SetInt("ConfettiIntensity", clamped)
	}
	a.config.PollBound = prefs.IntWithFallback("PollBound", veo.DefaultMaxPollAttempts)
	if clamped := clampPollBound(a.config.PollBound); clamped != a.config.PollBound {
		logger.Warn("Poll bound clamped", "requested", a.config.PollBound, "effective", clamped)
		a.config.PollBound = clamped
		prefs.SetInt("PollBound", clamped)
	}
}

func (a *sajuApp) saveConfig() {
	prefs := fyne.CurrentApp().Preferences()
	prefs.SetString("AnalysisModel", a.config.AnalysisModel)
	prefs.SetString("VideoModel", a.config.VideoModel)
	prefs.SetBool("SortBirthYears", a.config.SortBirthYears)
	prefs.SetBool("SpeakFullScript", a.config.SpeakFullScript)
	prefs.SetInt("ConfettiIntensity", a.config.ConfettiIntensity)
	prefs.SetInt("PollBound", a.config.PollBound)
}
