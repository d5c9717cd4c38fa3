package confetti

import (
	"math"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu      sync.Mutex
	batches [][]Particle
}

func (r *recorder) emit(batch []Particle) {
	r.mu.Lock()
	r.batches = append(r.batches, batch)
	r.mu.Unlock()
}

func (r *recorder) batchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

func (r *recorder) totalParticles() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.batches {
		n += len(b)
	}
	return n
}

func TestBurst(t *testing.T) {
	t.Run("emits requested count", func(t *testing.T) {
		rec := &recorder{}
		e := NewEmitter(rec.emit)
		e.Burst(Celebration())

		if rec.batchCount() != 1 {
			t.Fatalf("batches = %d, want 1", rec.batchCount())
		}
		if got := len(rec.batches[0]); got != 200 {
			t.Errorf("particles = %d, want 200", got)
		}
	})

	t.Run("intensity scales count", func(t *testing.T) {
		rec := &recorder{}
		e := NewEmitter(rec.emit)
		e.Intensity = 0.5
		e.Burst(Options{ParticleCount: 100})

		if got := len(rec.batches[0]); got != 50 {
			t.Errorf("particles = %d, want 50", got)
		}
	})

	t.Run("particles stay inside the spread cone", func(t *testing.T) {
		rec := &recorder{}
		e := NewEmitter(rec.emit)
		e.Burst(Options{ParticleCount: 500, Angle: 90, Spread: 60})

		for _, p := range rec.batches[0] {
			angle := math.Atan2(-p.VY, p.VX) * 180 / math.Pi
			if angle < 60-1e-9 || angle > 120+1e-9 {
				t.Fatalf("particle angle %.2f outside [60, 120]", angle)
			}
		}
	})

	t.Run("blessing palette includes pink", func(t *testing.T) {
		opts := Blessing()
		found := false
		for _, c := range opts.Colors {
			if c == "#FF69B4" {
				found = true
			}
		}
		if !found {
			t.Error("blessing burst lost its pink")
		}
	})
}

func TestParticleStep(t *testing.T) {
	p := Particle{VX: 1, VY: -2, Gravity: 1.2, Life: 2.5}
	p.Step(0.5)

	if p.X != 0.5 || p.Y != -1 {
		t.Errorf("position = (%v, %v), want (0.5, -1)", p.X, p.Y)
	}
	if math.Abs(p.VY-(-1.4)) > 1e-9 {
		t.Errorf("VY = %v, want -1.4", p.VY)
	}
	if p.Life != 2.0 {
		t.Errorf("Life = %v, want 2.0", p.Life)
	}
}

func TestMoneyRain(t *testing.T) {
	t.Run("pulses then stops on its own", func(t *testing.T) {
		rec := &recorder{}
		e := NewEmitter(rec.emit)
		e.randFloat = func() float64 { return 0.5 }

		stop := e.MoneyRain()
		defer stop()

		deadline := time.Now().Add(2 * time.Second)
		for rec.batchCount() < 3 && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}
		if rec.batchCount() < 3 {
			t.Fatalf("batches = %d, want at least 3", rec.batchCount())
		}
		if !e.Raining() {
			t.Error("rain should still be active")
		}

		// Every pulse is a small batch launched from the top edge.
		rec.mu.Lock()
		first := rec.batches[0]
		rec.mu.Unlock()
		if len(first) != 4 {
			t.Errorf("pulse size = %d, want 4", len(first))
		}
		for _, p := range first {
			if p.Y != 0 {
				t.Errorf("pulse origin y = %v, want 0", p.Y)
			}
			if p.X < 0.1 || p.X > 0.9 {
				t.Errorf("pulse origin x = %v outside [0.1, 0.9]", p.X)
			}
		}
	})

	t.Run("stop halts pulses", func(t *testing.T) {
		rec := &recorder{}
		e := NewEmitter(rec.emit)

		stop := e.MoneyRain()
		deadline := time.Now().Add(2 * time.Second)
		for rec.batchCount() < 1 && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		stop()
		stop() // idempotent

		time.Sleep(50 * time.Millisecond)
		settled := rec.totalParticles()
		time.Sleep(150 * time.Millisecond)
		if rec.totalParticles() != settled {
			t.Error("particles kept arriving after stop")
		}
	})

	t.Run("overlapping rains both run", func(t *testing.T) {
		rec := &recorder{}
		e := NewEmitter(rec.emit)

		stop1 := e.MoneyRain()
		stop2 := e.MoneyRain()
		defer stop1()
		defer stop2()

		if !e.Raining() {
			t.Fatal("expected active rain")
		}
		stop1()
		time.Sleep(20 * time.Millisecond)
		if !e.Raining() {
			t.Error("second rain should survive the first one stopping")
		}
	})
}
