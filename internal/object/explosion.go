package object

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/voyager/internal/config"
)

// Explosion is the frame animation played where the ship was hit. It stays
// in the scene after the last frame; Freeze holds the current frame.
type Explosion struct {
	X, Y float64

	frames    int
	frameTime time.Duration
	elapsed   time.Duration
	frozen    bool
	burst     bool
	rng       *rand.Rand
}

// NewExplosion creates an explosion at (x, y).
func NewExplosion(x, y float64, cfg config.ExplosionTuning, rng *rand.Rand) *Explosion {
	return &Explosion{
		X:         x,
		Y:         y,
		frames:    cfg.Frames,
		frameTime: cfg.FrameTime,
		rng:       rng,
	}
}

func (e *Explosion) length() time.Duration {
	return time.Duration(e.frames) * e.frameTime
}

// Progress returns normalized playback position. ok is false when the
// animation has no length to measure against.
func (e *Explosion) Progress() (p float64, ok bool) {
	total := e.length()
	if total <= 0 {
		return 0, false
	}
	return math.Min(1, float64(e.elapsed)/float64(total)), true
}

// Frame returns the index of the frame on display.
func (e *Explosion) Frame() int {
	if e.frameTime <= 0 || e.frames <= 0 {
		return 0
	}
	f := int(e.elapsed / e.frameTime)
	if f >= e.frames {
		f = e.frames - 1
	}
	return f
}

// Freeze halts playback on the current frame.
func (e *Explosion) Freeze() {
	e.frozen = true
}

// Frozen reports whether playback was halted.
func (e *Explosion) Frozen() bool {
	return e.frozen
}

// Update advances playback. The first update also throws debris.
func (e *Explosion) Update(ctx UpdateContext) (bool, error) {
	if !e.burst {
		e.burst = true
		if ctx.Spawner != nil && e.rng != nil {
			SpawnDebris(e.X, e.Y, 24, 6, 700*time.Millisecond, e.rng, ctx.Spawner)
		}
	}
	if e.frozen {
		return false, nil
	}
	e.elapsed += ctx.Delta
	if total := e.length(); e.elapsed > total {
		e.elapsed = total
	}
	return false, nil
}

// Draw renders an expanding ring; the core fills in for the first frames.
func (e *Explosion) Draw(ctx DrawContext) error {
	if e.frames <= 0 {
		return nil
	}
	f := e.Frame()
	r := 0.3 + 0.25*float64(f)
	ctx.Canvas.Circle(e.X, e.Y, r, f < e.frames/2)
	if f > 1 {
		ctx.Canvas.Circle(e.X, e.Y, r*0.6, false)
	}
	return nil
}
