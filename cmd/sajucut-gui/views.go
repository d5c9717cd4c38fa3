package main

import (
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/dokkaebi/sajucut/internal/confetti"
	"github.com/dokkaebi/sajucut/internal/logger"
	"github.com/dokkaebi/sajucut/internal/script"
	"github.com/dokkaebi/sajucut/internal/session"
)

// blessingOverlayDuration keeps the blessing message visible after a
// double tap on the pig.
const blessingOverlayDuration = 2500 * time.Millisecond

var supportedScreenshotMIME = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

func screenshotMIMEForPath(path string) (string, bool) {
	mime, ok := supportedScreenshotMIME[strings.ToLower(filepath.Ext(path))]
	return mime, ok
}

func (a *sajuApp) buildSetupView() fyne.CanvasObject {
	title := canvas.NewText("쇼츠 명리 마스터", color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF})
	title.TextSize = 26
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	subtitle := widget.NewLabelWithStyle("새해 사주 풀이 스크린샷을 올려주세요", fyne.TextAlignCenter, fyne.TextStyle{})

	a.previewImage = canvas.NewImageFromResource(nil)
	a.previewImage.FillMode = canvas.ImageFillContain
	a.previewImage.SetMinSize(fyne.NewSize(280, 240))
	a.previewImage.Hide()

	a.imageStatus = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	drop := newDropZone(a.showScreenshotPicker)

	a.analyzeBtn = widget.NewButtonWithIcon("사주 분석 시작", theme.SearchIcon(), func() {
		a.startAnalysis()
	})
	a.analyzeBtn.Importance = widget.HighImportance
	a.analyzeBtn.Disable()

	return container.NewPadded(container.NewVBox(
		container.NewCenter(title),
		subtitle,
		container.NewCenter(drop),
		a.previewImage,
		a.imageStatus,
		container.NewPadded(a.analyzeBtn),
	))
}

// handleScreenshot loads a picked or dropped file into the session.
func (a *sajuApp) handleScreenshot(path string) {
	snap := a.controller.Snapshot()
	if snap.Busy {
		return
	}

	mime, ok := screenshotMIMEForPath(path)
	if !ok {
		a.flashRed()
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Screenshot read failed", "path", path, "error", err)
		a.flashRed()
		return
	}
	if err := a.controller.UploadImage(data, mime); err != nil {
		a.flashRed()
		return
	}

	a.safeDo("ui.setup.preview", func() {
		a.previewImage.Resource = fyne.NewStaticResource(filepath.Base(path), data)
		a.previewImage.Show()
		a.previewImage.Refresh()
		a.imageStatus.SetText(filepath.Base(path))
	})
}

func (a *sajuApp) showScreenshotPicker() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.handleScreenshot(path)
	}, a.window)

	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".webp"}))
	fd.Resize(fyne.NewSize(900, 700))
	fd.Show()
}

func (a *sajuApp) buildAnalysisView() fyne.CanvasObject {
	heading := widget.NewLabelWithStyle("AI 분석 결과", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	a.titleEntry = widget.NewEntry()
	a.titleEntry.SetPlaceHolder("쇼츠 제목")
	a.titleHint = widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Italic: true})
	a.titleEntry.OnChanged = func(s string) {
		if a.syncingEntries {
			return
		}
		a.controller.SetTitle(s)
	}

	a.scriptEntry = widget.NewMultiLineEntry()
	a.scriptEntry.SetPlaceHolder("대본")
	a.scriptEntry.Wrapping = fyne.TextWrapWord
	a.scriptEntry.OnChanged = func(s string) {
		if a.syncingEntries {
			return
		}
		a.controller.SetScript(s)
	}

	generateBtn := widget.NewButtonWithIcon("배경 영상 생성", theme.MediaVideoIcon(), func() {
		a.startVideoGeneration()
	})
	generateBtn.Importance = widget.HighImportance

	backBtn := widget.NewButton("다시 업로드", func() {
		a.controller.ReturnTo(session.StepSetup)
	})

	a.analysisStatus = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	scriptScroll := container.NewVScroll(a.scriptEntry)
	scriptScroll.SetMinSize(fyne.NewSize(0, 320))

	return container.NewPadded(container.NewBorder(
		container.NewVBox(
			heading,
			widget.NewForm(widget.NewFormItem("제목", container.NewVBox(a.titleEntry, a.titleHint))),
			widget.NewLabelWithStyle("대본 (수정 가능)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		),
		container.NewVBox(
			a.analysisStatus,
			container.NewGridWithColumns(2, backBtn, generateBtn),
		),
		nil, nil,
		scriptScroll,
	))
}

func (a *sajuApp) updateTitleHint(title string) {
	width := script.TitleWidth(title)
	a.titleHint.SetText(fmt.Sprintf("%d/%d자", width, script.MaxTitleGraphemes))
	if script.TitleWithinBudget(title) {
		a.titleHint.Importance = widget.MediumImportance
	} else {
		a.titleHint.Importance = widget.DangerImportance
	}
	a.titleHint.Refresh()
}

func (a *sajuApp) buildViewerView() fyne.CanvasObject {
	a.viewerStatus = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	a.viewerStatus.Wrapping = fyne.TextWrapWord

	a.spinnerBox = container.NewCenter(newLargeSpinner())
	a.spinnerBox.Hide()

	a.birthWall = container.NewWithoutLayout()
	wallScroll := container.NewScroll(a.birthWall)
	wallScroll.SetMinSize(fyne.NewSize(0, 260))

	a.blessingOverlay = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	a.blessingOverlay.Hide()

	a.pig = newFortunePig(a.onPigDoubleTapped)

	a.ttsBtn = widget.NewButtonWithIcon("복 소리 듣기", theme.MediaPlayIcon(), a.onNarrationTapped)
	moneyBtn := widget.NewButtonWithIcon("돈벼락", theme.ContentAddIcon(), func() {
		a.safeGo("ui.viewer.money_rain", func() {
			a.emitter.MoneyRain()
		})
	})
	a.saveBtn = widget.NewButtonWithIcon("영상 저장", theme.DocumentSaveIcon(), a.saveGeneratedVideo)
	a.retryBtn = widget.NewButtonWithIcon("다시 시도", theme.ViewRefreshIcon(), func() {
		a.startVideoGeneration()
	})
	a.retryBtn.Hide()

	backBtn := widget.NewButton("대본으로", func() {
		a.speaker.Stop()
		a.controller.ReturnTo(session.StepAnalysis)
	})

	return container.NewPadded(container.NewBorder(
		container.NewVBox(a.viewerStatus, a.spinnerBox, a.blessingOverlay),
		container.NewVBox(
			container.NewCenter(a.pig),
			container.NewGridWithColumns(2, a.ttsBtn, moneyBtn),
			container.NewGridWithColumns(2, a.saveBtn, a.retryBtn),
			backBtn,
		),
		nil, nil,
		wallScroll,
	))
}

func (a *sajuApp) onNarrationTapped() {
	if a.speaker.Speaking() {
		a.markNarrationStopped()
	}
	text := a.controller.NarrationText()
	if strings.TrimSpace(text) == "" {
		a.flashRed()
		return
	}
	a.speaker.Toggle(text)
}

func (a *sajuApp) onPigDoubleTapped() {
	a.blessings++
	count := a.blessings
	a.blessingOverlay.SetText(fmt.Sprintf("복이 쌓였습니다! x%d", count))
	a.blessingOverlay.Show()

	a.safeGo("ui.viewer.blessing", func() {
		a.emitter.Burst(confetti.Blessing())
		time.Sleep(blessingOverlayDuration)
		a.safeDo("ui.viewer.blessing_hide", func() {
			if a.blessings == count {
				a.blessingOverlay.Hide()
			}
		})
	})
}

// rebuildBirthWall lays the extracted birth-year tokens out on a loose grid
// with per-item jitter, echoing a hand-placed paper-charm wall.
func (a *sajuApp) rebuildBirthWall() {
	years := a.controller.BirthYears()

	a.birthWall.RemoveAll()
	if len(years) == 0 {
		a.birthWall.Refresh()
		return
	}

	const (
		cols  = 4
		cellW = float32(92)
		cellH = float32(36)
	)
	gold := color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}
	for i, y := range years {
		t := canvas.NewText(y.Literal, gold)
		t.TextSize = 16
		t.TextStyle = fyne.TextStyle{Bold: true}

		col := i % cols
		row := i / cols
		jx := float32(rand.Intn(9) - 4)
		jy := float32(rand.Intn(9) - 4)
		t.Move(fyne.NewPos(12+float32(col)*cellW+jx, 8+float32(row)*cellH+jy))
		a.birthWall.Add(t)
	}
	rows := (len(years) + cols - 1) / cols
	a.birthWall.Resize(fyne.NewSize(cols*cellW+24, float32(rows)*cellH+16))
	a.birthWall.Refresh()
}

// fortunePig is the double-tappable blessing pig. Facing direction is
// picked once at mount.
type fortunePig struct {
	widget.BaseWidget
	text        *canvas.Text
	facingLeft  bool
	onDoubleTap func()
}

func newFortunePig(onDoubleTap func()) *fortunePig {
	t := canvas.NewText("🐷", color.NRGBA{R: 0xFF, G: 0xB6, B: 0xC1, A: 0xFF})
	t.TextSize = 56
	t.Alignment = fyne.TextAlignCenter

	p := &fortunePig{text: t, facingLeft: rand.Intn(2) == 0, onDoubleTap: onDoubleTap}
	p.ExtendBaseWidget(p)
	return p
}

func (p *fortunePig) Tapped(_ *fyne.PointEvent) {}

func (p *fortunePig) DoubleTapped(_ *fyne.PointEvent) {
	if p.onDoubleTap != nil {
		p.onDoubleTap()
	}
}

func (p *fortunePig) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

func (p *fortunePig) MinSize() fyne.Size {
	return fyne.NewSize(96, 72)
}

func (p *fortunePig) CreateRenderer() fyne.WidgetRenderer {
	return &fortunePigRenderer{p: p}
}

type fortunePigRenderer struct {
	p *fortunePig
}

func (r *fortunePigRenderer) Layout(s fyne.Size) {
	r.p.text.Resize(s)
	// Lean toward one side so the pig is not always dead center.
	offset := s.Width / 8
	if r.p.facingLeft {
		offset = -offset
	}
	r.p.text.Move(fyne.NewPos(offset, 0))
}

func (r *fortunePigRenderer) MinSize() fyne.Size { return r.p.MinSize() }
func (r *fortunePigRenderer) Refresh()           { canvas.Refresh(r.p.text) }
func (r *fortunePigRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.p.text}
}
func (r *fortunePigRenderer) Destroy() {}

// largeSpinner is a breathing ring shown while a remote call runs.
type largeSpinner struct {
	widget.BaseWidget
}

func newLargeSpinner() *largeSpinner {
	s := &largeSpinner{}
	s.ExtendBaseWidget(s)
	return s
}

func (s *largeSpinner) CreateRenderer() fyne.WidgetRenderer {
	c := canvas.NewCircle(color.Transparent)
	c.StrokeColor = theme.Color(theme.ColorNamePrimary)
	c.StrokeWidth = 8

	r := &largeSpinnerRenderer{circle: c, s: s}

	safeGo("ui.spinner.animate", func() {
		for {
			for i := 0; i <= 20; i++ {
				alpha := uint8(50 + 150*float32(i)/20)
				baseColor := theme.Color(theme.ColorNamePrimary)
				red, g, b, _ := baseColor.RGBA()
				safeDo("ui.spinner.frame_in", func() {
					c.StrokeColor = color.NRGBA{R: uint8(red >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
					r.Refresh()
				})
				time.Sleep(50 * time.Millisecond)
			}
			for i := 20; i >= 0; i-- {
				alpha := uint8(50 + 150*float32(i)/20)
				baseColor := theme.Color(theme.ColorNamePrimary)
				red, g, b, _ := baseColor.RGBA()
				safeDo("ui.spinner.frame_out", func() {
					c.StrokeColor = color.NRGBA{R: uint8(red >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
					r.Refresh()
				})
				time.Sleep(50 * time.Millisecond)
			}
		}
	})

	return r
}

type largeSpinnerRenderer struct {
	circle *canvas.Circle
	s      *largeSpinner
}

func (r *largeSpinnerRenderer) Layout(size fyne.Size) {
	r.circle.Resize(size)
}

func (r *largeSpinnerRenderer) MinSize() fyne.Size {
	return fyne.NewSize(120, 120)
}

func (r *largeSpinnerRenderer) Refresh() {
	if r.circle != nil {
		canvas.Refresh(r.circle)
	}
}

func (r *largeSpinnerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.circle}
}

func (r *largeSpinnerRenderer) Destroy() {}

// dropZone is the tappable plus target on the setup screen.
type dropZone struct {
	widget.BaseWidget
	isHovered bool
	onTapped  func()
}

func newDropZone(onTapped func()) *dropZone {
	d := &dropZone{onTapped: onTapped}
	d.ExtendBaseWidget(d)
	return d
}

func (d *dropZone) Tapped(_ *fyne.PointEvent) {
	if d.onTapped != nil {
		d.onTapped()
	}
}

func (d *dropZone) MouseIn(_ *desktop.MouseEvent) {
	d.setHover(true)
}

func (d *dropZone) MouseMoved(_ *desktop.MouseEvent) {
	d.setHover(true)
}

func (d *dropZone) MouseOut() {
	d.setHover(false)
}

func (d *dropZone) setHover(on bool) {
	safeDo("ui.drop_zone.hover", func() {
		d.isHovered = on
		d.Refresh()
	})
}

func (d *dropZone) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

func (d *dropZone) CreateRenderer() fyne.WidgetRenderer {
	thickness := float32(4)
	size := float32(64)
	accentColor := color.NRGBA{R: 200, G: 200, B: 200, A: 255}

	hBar := canvas.NewRectangle(accentColor)
	hBar.Resize(fyne.NewSize(size, thickness))

	vBar := canvas.NewRectangle(accentColor)
	vBar.Resize(fyne.NewSize(thickness, size))

	bg := canvas.NewRectangle(color.Transparent)

	return &dropZoneRenderer{
		hBar: hBar,
		vBar: vBar,
		bg:   bg,
		d:    d,
	}
}

type dropZoneRenderer struct {
	hBar *canvas.Rectangle
	vBar *canvas.Rectangle
	bg   *canvas.Rectangle
	d    *dropZone
}

func (r *dropZoneRenderer) Layout(s fyne.Size) {
	r.bg.Resize(s)
	centerX, centerY := s.Width/2, s.Height/2
	r.hBar.Move(fyne.NewPos(centerX-r.hBar.Size().Width/2, centerY-r.hBar.Size().Height/2))
	r.vBar.Move(fyne.NewPos(centerX-r.vBar.Size().Width/2, centerY-r.vBar.Size().Height/2))
}

func (r *dropZoneRenderer) MinSize() fyne.Size { return fyne.NewSize(90, 90) }
func (r *dropZoneRenderer) Refresh() {
	accentColor := color.Color(color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	if r.d.isHovered {
		accentColor = theme.Color(theme.ColorNamePrimary)
	}
	r.hBar.FillColor = accentColor
	r.vBar.FillColor = accentColor
	canvas.Refresh(r.hBar)
	canvas.Refresh(r.vBar)
}
func (r *dropZoneRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.hBar, r.vBar}
}
func (r *dropZoneRenderer) Destroy() {}
