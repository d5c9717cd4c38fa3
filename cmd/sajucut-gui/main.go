package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/dokkaebi/sajucut/internal/auth"
	"github.com/dokkaebi/sajucut/internal/cleanup"
	"github.com/dokkaebi/sajucut/internal/confetti"
	"github.com/dokkaebi/sajucut/internal/logger"
	"github.com/dokkaebi/sajucut/internal/metadata"
	"github.com/dokkaebi/sajucut/internal/session"
	"github.com/dokkaebi/sajucut/internal/speech"
	"github.com/dokkaebi/sajucut/internal/veo"
)

// largeTheme bumps the base text size for phone-length Korean copy.
type largeTheme struct{ fyne.Theme }

func (m largeTheme) Size(n fyne.ThemeSizeName) float32 {
	if n == theme.SizeNameText {
		return 16
	}
	if n == theme.SizeNameCaptionText {
		return 13
	}
	return theme.DefaultTheme().Size(n)
}

type AppState int

const (
	StateNoKey AppState = iota
	StateSetup
	StateAnalysis
	StateViewer
)

type sajuApp struct {
	window  fyne.Window
	state   AppState
	content *fyne.Container

	keys       *auth.StoredKeyProvider
	controller *session.Controller
	speaker    *speech.Speaker
	emitter    *confetti.Emitter
	confetti   *confettiLayer
	config     AppConfig

	// Views
	setupView    fyne.CanvasObject
	analysisView fyne.CanvasObject
	viewerView   fyne.CanvasObject
	apiKeyView   fyne.CanvasObject
	errorOverlay *canvas.Rectangle

	// Setup widgets
	previewImage *canvas.Image
	imageStatus  *widget.Label
	analyzeBtn   *widget.Button

	// Analysis widgets
	titleEntry     *widget.Entry
	titleHint      *widget.Label
	scriptEntry    *widget.Entry
	analysisStatus *widget.Label
	syncingEntries bool

	// Viewer widgets
	viewerStatus    *widget.Label
	spinnerBox      *fyne.Container
	birthWall       *fyne.Container
	blessingOverlay *widget.Label
	pig             *fortunePig
	ttsBtn          *widget.Button
	saveBtn         *widget.Button
	retryBtn        *widget.Button
	blessings       int
	lastCelebrated  string
	lastWallScript  string

	// Runtime data
	isAnimating        bool
	currentSettingsWin fyne.Window
	settingsKeyEntry   *widget.Entry
	settingsKeyStatus  *widget.Label

	stopMu        sync.Mutex
	stopRequested bool

	cancelMu        sync.Mutex
	activeCancel    context.CancelFunc
	activeCancelID  uint64
	panicNoticeOnce sync.Once
}

type minSizeBox struct {
	size fyne.Size
	pos  fyne.Position
}

func (m *minSizeBox) MinSize() fyne.Size      { return m.size }
func (m *minSizeBox) Size() fyne.Size         { return m.size }
func (m *minSizeBox) Position() fyne.Position { return m.pos }
func (m *minSizeBox) Resize(s fyne.Size)      { m.size = s }
func (m *minSizeBox) Move(p fyne.Position)    { m.pos = p }
func (m *minSizeBox) Show()                   {}
func (m *minSizeBox) Hide()                   {}
func (m *minSizeBox) Visible() bool           { return false }
func (m *minSizeBox) Refresh()                {}

type fixedWidthEntry struct {
	widget.Entry
	width float32
}

func newFixedWidthEntry(width float32) *fixedWidthEntry {
	e := &fixedWidthEntry{width: width}
	e.ExtendBaseWidget(e)
	return e
}

func (e *fixedWidthEntry) MinSize() fyne.Size {
	size := e.Entry.MinSize()
	size.Width = e.width
	return size
}

func newSajuApp(w fyne.Window) *sajuApp {
	a := &sajuApp{window: w}
	a.loadConfig()

	a.keys = auth.NewStoredKeyProvider(false)
	a.keys.OnRequest = func() {
		a.safeDo("app.request_key", func() {
			a.setState(StateNoKey)
		})
	}

	analyzer := newDynamicAnalyzer(a.keys, func() string { return a.config.AnalysisModel })
	generator := newDynamicGenerator(a.keys, func() (string, veo.Options) {
		return a.config.VideoModel, veo.Options{MaxPollAttempts: a.config.PollBound}
	})

	a.controller = session.NewController(analyzer, generator, a.keys, session.Options{
		SortBirthYears:  a.config.SortBirthYears,
		SpeakFullScript: a.config.SpeakFullScript,
	})
	a.controller.OnChange = a.onSessionChange

	home, _ := os.UserHomeDir()
	engine := speech.NewSherpaEngine(filepath.Join(home, ".sajucut", "tts"))
	a.speaker = speech.NewSpeaker(engine, speech.ExecPlayer{}, speech.Params{Rate: 0.9, Pitch: 0.85})
	a.speaker.OnStateChange = a.onNarrationStateChange
	a.speaker.OnError = func(err error) {
		a.safeDo("app.narration_error", func() {
			a.flashRed()
		})
	}

	a.confetti = newConfettiLayer()
	a.emitter = confetti.NewEmitter(a.confetti.Emit)
	a.emitter.Intensity = float64(a.config.ConfettiIntensity) / 100

	a.setupUI()
	a.syncMainKeyState()

	return a
}

func (a *sajuApp) setActiveCancel(cancel context.CancelFunc) uint64 {
	a.cancelMu.Lock()
	if a.activeCancel != nil {
		a.activeCancel()
	}
	a.activeCancel = cancel
	a.activeCancelID++
	id := a.activeCancelID
	a.cancelMu.Unlock()
	return id
}

func (a *sajuApp) clearActiveCancel(id uint64) {
	a.cancelMu.Lock()
	if a.activeCancelID == id {
		a.activeCancel = nil
	}
	a.cancelMu.Unlock()
}

func (a *sajuApp) cancelActive(reason string) {
	a.cancelMu.Lock()
	cancel := a.activeCancel
	a.activeCancel = nil
	a.cancelMu.Unlock()
	if cancel != nil {
		logger.Warn("Cancellation requested", "reason", reason)
		cancel()
	}
}

func (a *sajuApp) markNarrationStopped() {
	a.stopMu.Lock()
	a.stopRequested = true
	a.stopMu.Unlock()
}

func (a *sajuApp) consumeNarrationStop() bool {
	a.stopMu.Lock()
	was := a.stopRequested
	a.stopRequested = false
	a.stopMu.Unlock()
	return was
}

// onNarrationStateChange runs on the narration goroutine. A natural finish
// is rewarded with a money rain; a user-requested stop is not.
func (a *sajuApp) onNarrationStateChange(speaking bool) {
	a.safeDo("app.narration_state", func() {
		if speaking {
			a.ttsBtn.SetText("멈추기")
			a.ttsBtn.SetIcon(theme.MediaStopIcon())
		} else {
			a.ttsBtn.SetText("복 소리 듣기")
			a.ttsBtn.SetIcon(theme.MediaPlayIcon())
		}
	})
	if !speaking && !a.consumeNarrationStop() {
		a.emitter.MoneyRain()
	}
}

func (a *sajuApp) syncMainKeyState() {
	if a.keys.Ready() {
		a.applyStep(a.controller.Snapshot().CurrentStep)
	} else {
		a.setState(StateNoKey)
	}
}

func (a *sajuApp) applyStep(step session.Step) {
	switch step {
	case session.StepAnalysis:
		a.setState(StateAnalysis)
	case session.StepViewer:
		a.setState(StateViewer)
	default:
		a.setState(StateSetup)
	}
}

// onSessionChange receives controller snapshots on whatever goroutine
// performed the mutation and marshals the refresh onto the UI thread.
func (a *sajuApp) onSessionChange(snap session.Session) {
	a.safeDo("app.session_change", func() {
		if a.state != StateNoKey {
			a.applyStep(snap.CurrentStep)
		}

		a.syncingEntries = true
		if a.titleEntry.Text != snap.EditableTitle {
			a.titleEntry.SetText(snap.EditableTitle)
		}
		if a.scriptEntry.Text != snap.EditableScript {
			a.scriptEntry.SetText(snap.EditableScript)
		}
		a.syncingEntries = false
		a.updateTitleHint(snap.EditableTitle)

		a.analysisStatus.SetText(snap.StatusMessage)
		a.viewerStatus.SetText(snap.StatusMessage)

		if snap.Busy {
			a.spinnerBox.Show()
		} else {
			a.spinnerBox.Hide()
		}

		if len(snap.Image) > 0 && !snap.Busy {
			a.analyzeBtn.Enable()
		} else {
			a.analyzeBtn.Disable()
		}

		showRetry := snap.CurrentStep == session.StepViewer && !snap.Busy && snap.VideoPath == ""
		if showRetry {
			a.retryBtn.Show()
		} else {
			a.retryBtn.Hide()
		}
		if snap.VideoPath != "" && !snap.Busy {
			a.saveBtn.Enable()
		} else {
			a.saveBtn.Disable()
		}

		if snap.EditableScript != a.lastWallScript {
			a.lastWallScript = snap.EditableScript
			a.rebuildBirthWall()
		}

		if snap.VideoPath != "" && snap.VideoPath != a.lastCelebrated {
			a.lastCelebrated = snap.VideoPath
			a.safeGo("app.celebrate", func() {
				a.emitter.Burst(confetti.Celebration())
			})
		}

		a.content.Refresh()
	})
}

func (a *sajuApp) setupUI() {
	a.setupView = a.buildSetupView()
	a.analysisView = a.buildAnalysisView()
	a.viewerView = a.buildViewerView()
	a.apiKeyView = a.createApiKeyView()

	settingsBtn := newTappableIcon(theme.MoreVerticalIcon(), a.showSettingsWindow, fyne.NewSize(24, 24))
	settingsContainer := container.NewHBox(layout.NewSpacer(), container.NewPadded(settingsBtn))

	a.errorOverlay = canvas.NewRectangle(color.Transparent)
	a.errorOverlay.Hide()

	views := container.NewStack(
		a.setupView,
		a.analysisView,
		a.viewerView,
		a.apiKeyView,
	)

	a.content = container.NewStack(
		views,
		container.NewBorder(settingsContainer, nil, nil, nil),
		a.confetti.overlay,
		a.errorOverlay,
	)

	a.window.SetContent(a.content)
}

func (a *sajuApp) setState(s AppState) {
	a.safeDo("app.set_state", func() {
		a.state = s
		a.setupView.Hide()
		a.analysisView.Hide()
		a.viewerView.Hide()
		a.apiKeyView.Hide()

		switch s {
		case StateNoKey:
			a.apiKeyView.Show()
		case StateAnalysis:
			a.analysisView.Show()
		case StateViewer:
			a.viewerView.Show()
		default:
			a.setupView.Show()
		}

		a.content.Refresh()
	})
}

func (a *sajuApp) createApiKeyView() fyne.CanvasObject {
	input := widget.NewPasswordEntry()
	input.SetPlaceHolder("Gemini API KEY")

	title := canvas.NewText("API 키 설정", color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF})
	title.TextSize = 24
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	accent := theme.Color(theme.ColorNamePrimary)
	saveBtn := newHugeButton("저장", accent, func() {
		key := strings.TrimSpace(input.Text)
		if key == "" {
			a.flashRed()
			return
		}
		if err := auth.SaveKey(key); err != nil {
			a.flashRed()
			return
		}
		a.keys.SessionKey = key
		a.syncMainKeyState()
		a.refreshSettingsEntries()
		input.SetText("")
	})

	onceBtn := newHugeButton("이번만", color.NRGBA{R: 200, G: 200, B: 200, A: 255}, func() {
		key := strings.TrimSpace(input.Text)
		if key == "" {
			a.flashRed()
			return
		}
		a.keys.SessionKey = key
		a.syncMainKeyState()
		input.SetText("")
	})

	btns := container.NewGridWithColumns(2, saveBtn, onceBtn)

	card := container.NewVBox(
		container.NewCenter(title),
		input,
		container.NewPadded(btns),
	)

	return container.NewCenter(container.NewPadded(card))
}

func (a *sajuApp) flashRed() {
	if a.isAnimating {
		return
	}
	a.isAnimating = true

	a.safeDo("app.flash_red.start", func() {
		a.errorOverlay.Show()
		a.content.Refresh()
	})

	a.safeGo("app.flash_red.animate", func() {
		steps := 10
		duration := 150 * time.Millisecond
		sleep := duration / time.Duration(steps)

		for i := 1; i <= steps; i++ {
			alpha := uint8(120 * float32(i) / float32(steps))
			a.safeDo("app.flash_red.fade_in", func() {
				a.errorOverlay.FillColor = color.NRGBA{R: 255, G: 0, B: 0, A: alpha}
				canvas.Refresh(a.errorOverlay)
			})
			time.Sleep(sleep)
		}
		for i := steps; i >= 0; i-- {
			alpha := uint8(120 * float32(i) / float32(steps))
			a.safeDo("app.flash_red.fade_out", func() {
				a.errorOverlay.FillColor = color.NRGBA{R: 255, G: 0, B: 0, A: alpha}
				canvas.Refresh(a.errorOverlay)
			})
			time.Sleep(sleep)
		}

		a.safeDo("app.flash_red.end", func() {
			a.errorOverlay.FillColor = color.Transparent
			a.errorOverlay.Hide()
			a.isAnimating = false
			a.content.Refresh()
		})
	})
}

func (a *sajuApp) refreshSettingsEntries() {
	if a.currentSettingsWin == nil {
		return
	}
	key, _ := auth.GetKey(false)

	if a.settingsKeyEntry != nil {
		a.settingsKeyEntry.SetText("")
		a.settingsKeyEntry.SetPlaceHolder("새 키 입력")
	}
	if a.settingsKeyStatus != nil {
		if key != "" {
			a.settingsKeyStatus.SetText("키체인에 저장됨")
		} else {
			a.settingsKeyStatus.SetText("저장된 키 없음")
		}
	}
}

func (a *sajuApp) showSettingsWindow() {
	if a.currentSettingsWin != nil {
		a.currentSettingsWin.RequestFocus()
		return
	}

	w := fyne.CurrentApp().NewWindow("설정")
	a.currentSettingsWin = w
	w.SetOnClosed(func() {
		a.currentSettingsWin = nil
		a.settingsKeyEntry = nil
		a.settingsKeyStatus = nil
	})

	// --- 1. Keys Tab ---
	a.settingsKeyEntry = widget.NewPasswordEntry()
	a.settingsKeyStatus = widget.NewLabel("")
	a.refreshSettingsEntries()

	keysTab := container.NewPadded(container.NewVBox(
		widget.NewLabelWithStyle("Gemini API 키", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("키", container.NewVBox(a.settingsKeyEntry, a.settingsKeyStatus)),
		),
		widget.NewButton("키체인에 저장", func() {
			saved, err := saveKeyToKeychain(a.settingsKeyEntry.Text, auth.SaveKey)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if !saved {
				a.flashRed()
				return
			}
			a.keys.SessionKey = strings.TrimSpace(a.settingsKeyEntry.Text)
			a.syncMainKeyState()
			a.refreshSettingsEntries()
			dialog.ShowInformation("저장됨", "API 키를 키체인에 저장했습니다.", w)
		}),
		widget.NewSeparator(),
		widget.NewButtonWithIcon("키 삭제", theme.DeleteIcon(), func() {
			dialog.ShowConfirm("삭제", "키체인에 저장된 키를 삭제할까요?", func(ok bool) {
				if !ok {
					return
				}
				err := resetKeyInKeychain(auth.DeleteKey)
				a.refreshSettingsEntries()
				if err != nil {
					a.syncMainKeyState()
					dialog.ShowError(err, w)
					return
				}
				a.keys.SessionKey = ""
				a.syncMainKeyState()
				dialog.ShowInformation("삭제됨", "키체인의 키를 삭제했습니다.", w)
			}, w)
		}),
	))

	// --- 2. Options Tab ---
	sortCheck := widget.NewCheck("출생연도 오름차순 정렬", func(on bool) {
		a.config.SortBirthYears = on
		a.saveConfig()
		a.controller.SetOptions(session.Options{
			SortBirthYears:  a.config.SortBirthYears,
			SpeakFullScript: a.config.SpeakFullScript,
		})
		a.rebuildBirthWall()
	})
	sortCheck.SetChecked(a.config.SortBirthYears)

	speakFullCheck := widget.NewCheck("대본 전체 낭독", func(on bool) {
		a.config.SpeakFullScript = on
		a.saveConfig()
		a.controller.SetOptions(session.Options{
			SortBirthYears:  a.config.SortBirthYears,
			SpeakFullScript: a.config.SpeakFullScript,
		})
	})
	speakFullCheck.SetChecked(a.config.SpeakFullScript)

	intensitySlider := widget.NewSlider(minConfettiIntensity, maxConfettiIntensity)
	intensitySlider.Step = 5
	intensitySlider.SetValue(float64(a.config.ConfettiIntensity))
	intensityLabel := widget.NewLabel(fmt.Sprintf("%d%%", a.config.ConfettiIntensity))
	intensitySlider.OnChanged = func(v float64) {
		a.config.ConfettiIntensity = clampConfettiIntensity(int(v))
		a.saveConfig()
		a.emitter.Intensity = float64(a.config.ConfettiIntensity) / 100
		intensityLabel.SetText(fmt.Sprintf("%d%%", a.config.ConfettiIntensity))
	}

	analysisSelect := widget.NewSelect(metadata.AnalysisModelIDs(), func(id string) {
		a.config.AnalysisModel = normalizeAnalysisModel(id)
		a.saveConfig()
	})
	analysisSelect.SetSelected(a.config.AnalysisModel)

	videoSelect := widget.NewSelect(metadata.VideoModelIDs(), func(id string) {
		a.config.VideoModel = normalizeVideoModel(id)
		a.saveConfig()
	})
	videoSelect.SetSelected(a.config.VideoModel)

	pollEntry := newFixedWidthEntry(100)
	pollEntry.SetText(strconv.Itoa(a.config.PollBound))
	pollEntry.OnChanged = func(s string) {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return
		}
		a.config.PollBound = clampPollBound(v)
		a.saveConfig()
	}

	optionsTab := container.NewPadded(container.NewVBox(
		widget.NewLabelWithStyle("표시", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sortCheck,
		speakFullCheck,
		widget.NewForm(
			widget.NewFormItem("꽃가루 강도", container.NewBorder(nil, nil, nil, intensityLabel, intensitySlider)),
		),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("모델", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("분석 모델", analysisSelect),
			widget.NewFormItem("영상 모델", videoSelect),
			widget.NewFormItem("폴링 상한", pollEntry),
		),
	))

	// --- 3. About Tab ---
	aboutTab := buildAboutTab()

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("키", theme.StorageIcon(), keysTab),
		container.NewTabItemWithIcon("옵션", theme.SettingsIcon(), optionsTab),
		container.NewTabItemWithIcon("정보", theme.InfoIcon(), aboutTab),
	)

	minSize := tabs.MinSize()
	targetSize := fyne.NewSize(minSize.Width+80, minSize.Height+10)
	content := container.NewStack(&minSizeBox{size: targetSize}, tabs)

	w.SetContent(content)
	w.Resize(targetSize)
	w.CenterOnScreen()
	w.Show()
}

// tappableIcon is a custom widget that implements Tappable and Hoverable.
type tappableIcon struct {
	widget.BaseWidget
	icon      *canvas.Image
	isHovered bool
	minSize   fyne.Size
	action    func()
}

func newTappableIcon(res fyne.Resource, action func(), minSize fyne.Size) *tappableIcon {
	icon := canvas.NewImageFromResource(res)
	icon.FillMode = canvas.ImageFillContain

	t := &tappableIcon{icon: icon, action: action, minSize: minSize}
	t.ExtendBaseWidget(t)
	return t
}

func (t *tappableIcon) Tapped(_ *fyne.PointEvent) {
	if t.action != nil {
		t.action()
	}
}

func (t *tappableIcon) MouseIn(_ *desktop.MouseEvent) {
	t.setHover(true)
}

func (t *tappableIcon) MouseMoved(_ *desktop.MouseEvent) {
	t.setHover(true)
}

func (t *tappableIcon) MouseOut() {
	t.setHover(false)
}

func (t *tappableIcon) setHover(on bool) {
	safeDo("ui.tappable_icon.hover", func() {
		t.isHovered = on
		if on {
			t.icon.Translucency = 0.4
		} else {
			t.icon.Translucency = 0.0
		}
		t.icon.Refresh()
	})
}

func (t *tappableIcon) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

func (t *tappableIcon) MinSize() fyne.Size {
	if t.minSize.Width > 0 && t.minSize.Height > 0 {
		return t.minSize
	}
	return fyne.NewSize(40, 40)
}

func (t *tappableIcon) CreateRenderer() fyne.WidgetRenderer {
	return &tappableIconRenderer{
		t:    t,
		icon: t.icon,
	}
}

type tappableIconRenderer struct {
	t    *tappableIcon
	icon *canvas.Image
}

func (r *tappableIconRenderer) Layout(s fyne.Size) {
	r.icon.Resize(s)
	r.icon.Move(fyne.NewPos(0, 0))
}

func (r *tappableIconRenderer) MinSize() fyne.Size {
	return r.t.MinSize()
}

func (r *tappableIconRenderer) Refresh() {
	canvas.Refresh(r.icon)
}

func (r *tappableIconRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.icon}
}

func (r *tappableIconRenderer) Destroy() {}

// hugeButton is a custom button with large text for the key screen.
type hugeButton struct {
	widget.BaseWidget
	text   *canvas.Text
	bg     *canvas.Rectangle
	action func()
}

func newHugeButton(label string, bgColor color.Color, action func()) *hugeButton {
	t := canvas.NewText(label, color.Black)
	t.TextSize = 22
	t.TextStyle = fyne.TextStyle{Bold: true}
	t.Alignment = fyne.TextAlignCenter

	bg := canvas.NewRectangle(bgColor)
	bg.CornerRadius = 8

	b := &hugeButton{text: t, bg: bg, action: action}
	b.ExtendBaseWidget(b)
	return b
}

func (b *hugeButton) Tapped(_ *fyne.PointEvent) {
	if b.action != nil {
		b.action()
	}
}

func (b *hugeButton) CreateRenderer() fyne.WidgetRenderer {
	return &hugeButtonRenderer{b: b}
}

type hugeButtonRenderer struct {
	b *hugeButton
}

func (r *hugeButtonRenderer) Layout(s fyne.Size) {
	r.b.bg.Resize(s)
	r.b.text.Resize(s)
}
func (r *hugeButtonRenderer) MinSize() fyne.Size { return fyne.NewSize(85, 50) }
func (r *hugeButtonRenderer) Refresh()           { r.b.bg.Refresh(); r.b.text.Refresh() }
func (r *hugeButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.b.bg, r.b.text}
}
func (r *hugeButtonRenderer) Destroy() {}

func main() {
	logger.Init(logger.LevelInfo, nil)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unrecovered GUI panic", "scope", "main", "panic", fmt.Sprint(r))
			os.Exit(1)
		}
	}()
	defer cleanup.RunAll()

	myApp := app.NewWithID("com.dokkaebi.sajucut")
	myApp.Settings().SetTheme(largeTheme{Theme: theme.DefaultTheme()})
	myApp.SetIcon(appIcon())

	w := myApp.NewWindow("쇼츠 명리 마스터")
	w.SetIcon(appIcon())
	w.SetMaster()
	w.Resize(fyne.NewSize(420, 760))
	w.SetFixedSize(true)
	w.CenterOnScreen()

	sa := newSajuApp(w)
	w.SetCloseIntercept(func() {
		sa.cancelActive("window closed")
		sa.markNarrationStopped()
		sa.speaker.Stop()
		sa.keys.SessionKey = ""
		w.SetCloseIntercept(nil)
		w.Close()
	})

	w.SetOnDropped(func(pos fyne.Position, uris []fyne.URI) {
		if len(uris) > 0 {
			sa.handleScreenshot(uris[0].Path())
		}
	})

	w.ShowAndRun()
}
