package object

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual speck.
type Particle struct {
	X, Y        float64
	VX, VY      float64
	Lifetime    time.Duration // Remaining
	MaxLifetime time.Duration
	Drag        float64 // Per-second velocity multiplier
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy float64, lifetime time.Duration) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X:           x,
		Y:           y,
		VX:          vx,
		VY:          vy,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Drag:        0.05,
	}
	return p
}

// Release returns the particle to the pool.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnDebris creates particles in a circular burst.
func SpawnDebris(x, y float64, count int, speed float64, lifetime time.Duration, rng *rand.Rand, spawner Spawner) {
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		spd := speed * (0.5 + rng.Float64())
		life := time.Duration(float64(lifetime) * (0.5 + rng.Float64()*0.5))
		spawner.Spawn(NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life))
	}
}

// SpawnExhaust emits one particle trailing down and back from a thrusting ship.
func SpawnExhaust(x, y float64, rng *rand.Rand, spawner Spawner) {
	angle := math.Pi*1.25 + (rng.Float64()-0.5)*0.6
	speed := 4 + rng.Float64()*2
	life := 100*time.Millisecond + time.Duration(rng.Int63n(int64(150*time.Millisecond)))
	p := NewParticle(x, y, math.Cos(angle)*speed, math.Sin(angle)*speed, life)
	p.Drag = 0.01
	spawner.Spawn(p)
}

// Update moves the particle and counts down its lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	p.Lifetime -= ctx.Delta
	if p.Lifetime <= 0 {
		return true, nil
	}
	dt := ctx.Delta.Seconds()
	f := math.Pow(p.Drag, dt)
	p.VX *= f
	p.VY *= f
	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false, nil
}

// Draw renders the particle until the last quarter of its life.
func (p *Particle) Draw(ctx DrawContext) error {
	if p.MaxLifetime > 0 && p.Lifetime*4 < p.MaxLifetime {
		return nil
	}
	ctx.Canvas.Plot(p.X, p.Y)
	return nil
}
