package object

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/voyager/internal/config"
	"github.com/tomz197/voyager/internal/draw"
	"github.com/tomz197/voyager/internal/physics"
)

// AsteroidTag identifies asteroid bodies in contact reports.
const AsteroidTag = "asteroid"

// AsteroidType is one entry of the fixed asteroid table.
type AsteroidType struct {
	Name   string
	Radius float64 // Base collision radius
	Speed  float64 // Leftward speed, units/s
}

// AsteroidTypes is the set the spawner picks from.
var AsteroidTypes = []AsteroidType{
	{Name: "small", Radius: 0.5, Speed: 6.0},
	{Name: "medium", Radius: 0.8, Speed: 4.5},
	{Name: "large", Radius: 1.2, Speed: 3.0},
}

// MaxAsteroidRadius is the largest radius any asteroid can reach at full scale.
func MaxAsteroidRadius(cfg config.ObstacleTuning) float64 {
	m := 0.0
	for _, t := range AsteroidTypes {
		m = math.Max(m, t.Radius)
	}
	return m * math.Max(1, cfg.ScaleMax)
}

// Asteroid drifts left at a fixed speed and optionally pulses in size.
type Asteroid struct {
	Type  AsteroidType
	Speed float64
	Scale float64

	body     *physics.Body
	cfg      config.ObstacleTuning
	pulsing  bool
	pulse    time.Duration
	frozen   bool
	angle    float64
	spin     float64
	vertices []float64 // Vertex distances at scale 1
}

// NewAsteroid creates an asteroid of the given type at (x, y).
func NewAsteroid(x, y float64, typ AsteroidType, cfg config.ObstacleTuning, rng *rand.Rand) *Asteroid {
	// Irregular polygon, 8-12 vertices, radius varied by up to 30%
	verts := make([]float64, 8+rng.Intn(5))
	for i := range verts {
		verts[i] = typ.Radius * (0.7 + rng.Float64()*0.6)
	}
	return &Asteroid{
		Type:     typ,
		Speed:    typ.Speed,
		Scale:    1,
		body:     physics.NewCircle(x, y, typ.Radius, AsteroidTag),
		cfg:      cfg,
		angle:    rng.Float64() * 2 * math.Pi,
		spin:     (rng.Float64() - 0.5) * 2,
		vertices: verts,
	}
}

// EnablePulse turns on the ping-pong size oscillation.
func (a *Asteroid) EnablePulse() {
	a.pulsing = true
}

// Pulsing reports whether size oscillation is enabled.
func (a *Asteroid) Pulsing() bool {
	return a.pulsing
}

// Body returns the asteroid's physics body.
func (a *Asteroid) Body() *physics.Body {
	return a.body
}

// Frozen reports whether the asteroid was stopped in place.
func (a *Asteroid) Frozen() bool {
	return a.frozen
}

// Update moves the asteroid left and removes it once off screen. Nothing
// changes unless the round is active.
func (a *Asteroid) Update(ctx UpdateContext) (bool, error) {
	if a.frozen || !isActive(ctx.Round) {
		return false, nil
	}
	dt := ctx.Delta.Seconds()

	a.body.X -= a.Speed * dt
	a.angle += a.spin * dt

	if a.pulsing && a.cfg.ScaleDuration > 0 {
		a.pulse += ctx.Delta
		t := physics.PingPong(a.pulse.Seconds()/a.cfg.ScaleDuration.Seconds(), 1)
		a.Scale = physics.Lerp(a.cfg.ScaleMin, a.cfg.ScaleMax, t)
		a.body.Radius = a.Type.Radius * a.Scale
	}

	return a.body.X < a.cfg.DestroyX, nil
}

// Freeze stops motion, pulsing and removal. The asteroid stays visible.
func (a *Asteroid) Freeze() {
	a.frozen = true
	a.body.Freeze()
}

// Draw renders the asteroid as an irregular polygon.
func (a *Asteroid) Draw(ctx DrawContext) error {
	n := len(a.vertices)
	pts := ctx.Canvas.BorrowPoints(n)
	for i, dist := range a.vertices {
		ang := a.angle + float64(i)*2*math.Pi/float64(n)
		d := dist * a.Scale
		pts[i] = draw.Point{X: a.body.X + math.Cos(ang)*d, Y: a.body.Y + math.Sin(ang)*d}
	}
	ctx.Canvas.Polygon(pts, false)
	return nil
}
