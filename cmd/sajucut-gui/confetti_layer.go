package main

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"github.com/dokkaebi/sajucut/internal/confetti"
)

const (
	confettiFrame    = 50 * time.Millisecond
	confettiBaseSize = float32(8)
)

// confettiLayer renders scheduled particles on a transparent overlay
// stacked above the active view. Particle coordinates are normalized to
// the overlay size, Y growing downward.
type confettiLayer struct {
	overlay *fyne.Container

	mu      sync.Mutex
	flakes  []*flake
	running bool
}

type flake struct {
	particle confetti.Particle
	obj      fyne.CanvasObject
}

func newConfettiLayer() *confettiLayer {
	return &confettiLayer{overlay: container.NewWithoutLayout()}
}

// Emit receives a batch from the confetti scheduler. It may be called from
// any goroutine.
func (l *confettiLayer) Emit(batch []confetti.Particle) {
	if len(batch) == 0 {
		return
	}

	added := make([]*flake, 0, len(batch))
	for _, p := range batch {
		added = append(added, &flake{particle: p, obj: particleObject(p)})
	}

	l.mu.Lock()
	l.flakes = append(l.flakes, added...)
	start := !l.running
	if start {
		l.running = true
	}
	l.mu.Unlock()

	safeDo("ui.confetti.attach", func() {
		for _, f := range added {
			l.overlay.Add(f.obj)
		}
		l.layout()
	})

	if start {
		safeGo("ui.confetti.animate", l.animate)
	}
}

func (l *confettiLayer) animate() {
	ticker := time.NewTicker(confettiFrame)
	defer ticker.Stop()

	dt := confettiFrame.Seconds()
	for range ticker.C {
		l.mu.Lock()
		alive := l.flakes[:0]
		var expired []*flake
		for _, f := range l.flakes {
			f.particle.Step(dt)
			if f.particle.Life <= 0 || f.particle.Y > 1.2 {
				expired = append(expired, f)
				continue
			}
			alive = append(alive, f)
		}
		l.flakes = alive
		done := len(alive) == 0
		if done {
			l.running = false
		}
		l.mu.Unlock()

		safeDo("ui.confetti.frame", func() {
			for _, f := range expired {
				l.overlay.Remove(f.obj)
			}
			l.layout()
		})

		if done {
			return
		}
	}
}

// layout positions every live flake; it must run on the UI thread.
func (l *confettiLayer) layout() {
	size := l.overlay.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}

	l.mu.Lock()
	for _, f := range l.flakes {
		side := confettiBaseSize * float32(f.particle.Scalar)
		f.obj.Resize(fyne.NewSize(side, side))
		f.obj.Move(fyne.NewPos(
			float32(f.particle.X)*size.Width-side/2,
			float32(f.particle.Y)*size.Height-side/2,
		))
	}
	l.mu.Unlock()
	l.overlay.Refresh()
}

func particleObject(p confetti.Particle) fyne.CanvasObject {
	fill := parseHexColor(p.Color)
	if p.Shape == confetti.ShapeSquare {
		return canvas.NewRectangle(fill)
	}
	return canvas.NewCircle(fill)
}

// parseHexColor reads "#RRGGBB"; anything else falls back to gold.
func parseHexColor(s string) color.NRGBA {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}
	}
	var vals [3]uint8
	for i := 0; i < 3; i++ {
		hi, okHi := hexNibble(s[1+i*2])
		lo, okLo := hexNibble(s[2+i*2])
		if !okHi || !okLo {
			return color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}
		}
		vals[i] = hi<<4 | lo
	}
	return color.NRGBA{R: vals[0], G: vals[1], B: vals[2], A: 0xFF}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
