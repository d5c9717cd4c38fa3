// Package confetti schedules celebration particles. It owns the timing and
// physics parameters only; rendering is left to the caller through an emit
// callback, so the scheduler stays testable without a UI.
package confetti

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

type Shape string

const (
	ShapeCircle Shape = "circle"
	ShapeSquare Shape = "square"
)

// Origin is a relative screen position, both axes in [0, 1].
type Origin struct {
	X float64
	Y float64
}

// Options describe one particle burst.
type Options struct {
	ParticleCount int
	// Angle is the launch direction in degrees, 90 meaning straight up.
	Angle float64
	// Spread widens the launch cone around Angle, in degrees.
	Spread  float64
	Origin  Origin
	Colors  []string
	Shapes  []Shape
	Gravity float64
	Scalar  float64
}

var goldPalette = []string{"#FFD700", "#FFA500", "#FFFF00", "#DAA520"}

func (o Options) withDefaults() Options {
	if o.ParticleCount <= 0 {
		o.ParticleCount = 50
	}
	if o.Angle == 0 {
		o.Angle = 90
	}
	if o.Spread <= 0 {
		o.Spread = 45
	}
	if len(o.Colors) == 0 {
		o.Colors = goldPalette
	}
	if len(o.Shapes) == 0 {
		o.Shapes = []Shape{ShapeCircle, ShapeSquare}
	}
	if o.Gravity <= 0 {
		o.Gravity = 1.0
	}
	if o.Scalar <= 0 {
		o.Scalar = 1.0
	}
	return o
}

// Celebration is the full-screen burst fired when a video finishes.
func Celebration() Options {
	return Options{
		ParticleCount: 200,
		Spread:        100,
		Origin:        Origin{X: 0.5, Y: 0.6},
	}
}

// Blessing is the burst fired when the fortune pig is double-tapped.
func Blessing() Options {
	return Options{
		ParticleCount: 100,
		Spread:        70,
		Origin:        Origin{X: 0.5, Y: 0.85},
		Colors:        []string{"#FFD700", "#FFA500", "#FF69B4", "#FFFF00"},
	}
}

// Particle is one scheduled particle at launch time. The renderer advances
// it with Step.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Color  string
	Shape  Shape
	// Gravity pulls VY down each second of simulation.
	Gravity float64
	Scalar  float64
	// Life counts down in seconds; the renderer drops expired particles.
	Life float64
}

// Step advances the particle by dt seconds.
func (p *Particle) Step(dt float64) {
	p.X += p.VX * dt
	p.Y += p.VY * dt
	p.VY += p.Gravity * dt
	p.Life -= dt
}

const (
	// launchSpeed is the initial velocity in screen heights per second.
	launchSpeed = 1.6
	particleLife = 2.5

	rainDuration      = 3 * time.Second
	rainPulseInterval = 50 * time.Millisecond
	rainPulseCount    = 4
)

// Emitter turns burst options into particles and hands them to the emit
// callback. Intensity scales every particle count, letting a settings toggle
// tone the whole effect up or down.
type Emitter struct {
	emit      func([]Particle)
	Intensity float64

	// randFloat is swapped in tests for determinism.
	randFloat func() float64

	mu    sync.Mutex
	rains int
}

func NewEmitter(emit func([]Particle)) *Emitter {
	return &Emitter{
		emit:      emit,
		Intensity: 1.0,
		randFloat: rand.Float64,
	}
}

// Burst emits a single batch of particles.
func (e *Emitter) Burst(opts Options) {
	opts = opts.withDefaults()
	count := int(float64(opts.ParticleCount) * e.intensity())
	if count <= 0 {
		return
	}

	particles := make([]Particle, count)
	for i := range particles {
		particles[i] = e.spawn(opts)
	}
	e.emit(particles)
}

// MoneyRain showers gold from the top edge in small pulses for three
// seconds. It returns a stop function; letting it run out is equivalent.
// Concurrent rains overlap rather than cancel each other.
func (e *Emitter) MoneyRain() (stop func()) {
	done := make(chan struct{})
	var once sync.Once
	stop = func() { once.Do(func() { close(done) }) }

	e.mu.Lock()
	e.rains++
	e.mu.Unlock()

	go func() {
		defer func() {
			e.mu.Lock()
			e.rains--
			e.mu.Unlock()
		}()

		ticker := time.NewTicker(rainPulseInterval)
		defer ticker.Stop()
		deadline := time.After(rainDuration)

		for {
			select {
			case <-done:
				return
			case <-deadline:
				return
			case <-ticker.C:
				e.Burst(Options{
					ParticleCount: rainPulseCount,
					Angle:         e.inRange(55, 125),
					Spread:        e.inRange(50, 70),
					Origin:        Origin{X: e.inRange(0.1, 0.9), Y: 0},
					Colors:        goldPalette,
					Shapes:        []Shape{ShapeCircle},
					Gravity:       1.2,
					Scalar:        1.2,
				})
			}
		}
	}()
	return stop
}

// Raining reports whether any money rain is active.
func (e *Emitter) Raining() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rains > 0
}

func (e *Emitter) spawn(opts Options) Particle {
	angle := opts.Angle + (e.randFloat()-0.5)*opts.Spread
	rad := angle * math.Pi / 180
	speed := launchSpeed * (0.7 + 0.6*e.randFloat()) * opts.Scalar

	return Particle{
		X:  opts.Origin.X,
		Y:  opts.Origin.Y,
		VX: math.Cos(rad) * speed,
		// Screen Y grows downward, so launching "up" is negative.
		VY:      -math.Sin(rad) * speed,
		Color:   opts.Colors[int(e.randFloat()*float64(len(opts.Colors)))%len(opts.Colors)],
		Shape:   opts.Shapes[int(e.randFloat()*float64(len(opts.Shapes)))%len(opts.Shapes)],
		Gravity: opts.Gravity,
		Scalar:  opts.Scalar,
		Life:    particleLife,
	}
}

func (e *Emitter) intensity() float64 {
	if e.Intensity <= 0 {
		return 1.0
	}
	return e.Intensity
}

func (e *Emitter) inRange(min, max float64) float64 {
	return min + e.randFloat()*(max-min)
}
