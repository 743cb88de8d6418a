package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/voyager/internal/config"
	"github.com/tomz197/voyager/internal/draw"
	"github.com/tomz197/voyager/internal/logging"
	"github.com/tomz197/voyager/internal/physics"
)

// ShipTag identifies the ship's body in contact reports.
const ShipTag = "ship"

// Ship is the player's vehicle. It only moves vertically: gravity pulls it
// down, thrust pushes it up, and drag damps both velocity components every
// fixed tick.
type Ship struct {
	Gravity     float64
	ThrustPower float64
	MaxThrust   float64
	Drag        float64

	body    *physics.Body
	cfg     config.VehicleTuning
	ascend  bool
	frozen  bool
	rng     *rand.Rand
	exhaust float64
}

// NewShip creates a ship at the configured start position.
func NewShip(cfg config.VehicleTuning, rng *rand.Rand) *Ship {
	s := &Ship{
		Gravity:     cfg.Gravity,
		ThrustPower: cfg.ThrustPower,
		MaxThrust:   cfg.MaxThrust,
		Drag:        cfg.Drag,
		cfg:         cfg,
		rng:         rng,
	}
	s.body = s.defaultBody()
	return s
}

func (s *Ship) defaultBody() *physics.Body {
	return physics.NewCircle(s.cfg.StartX, s.cfg.StartY, s.cfg.Radius, ShipTag)
}

// Body returns the ship's body, attaching a default one if it went missing.
func (s *Ship) Body() *physics.Body {
	if s.body == nil {
		logging.Warnf("ship has no physics body, attaching a default one")
		s.body = s.defaultBody()
		if s.frozen {
			s.body.Freeze()
		}
	}
	return s.body
}

// DetachBody drops the physics body. The next access self-heals.
func (s *Ship) DetachBody() {
	s.body = nil
}

// Frozen reports whether the ship has been stopped by a collision.
func (s *Ship) Frozen() bool {
	return s.frozen
}

// Ascending reports the thrust input sampled on the last update.
func (s *Ship) Ascending() bool {
	return s.ascend
}

// Update samples input for the next fixed ticks.
func (s *Ship) Update(ctx UpdateContext) (bool, error) {
	s.ascend = ctx.Input.Ascend && isActive(ctx.Round) && !s.frozen
	if s.ascend && ctx.Spawner != nil && s.rng != nil {
		s.exhaust += ctx.Delta.Seconds() * 30
		for ; s.exhaust >= 1; s.exhaust-- {
			b := s.Body()
			SpawnExhaust(b.X-s.cfg.Radius, b.Y-s.cfg.Radius*0.5, s.rng, ctx.Spawner)
		}
	}
	return false, nil
}

// FixedUpdate applies the velocity law and integrates position.
func (s *Ship) FixedUpdate(ctx FixedContext) {
	if s.frozen || !isActive(ctx.Round) {
		return
	}
	b := s.Body()
	dt := ctx.Delta.Seconds()

	b.VY -= s.Gravity * dt
	if s.ascend {
		b.VY += s.ThrustPower * dt
		b.VY = math.Min(b.VY, s.MaxThrust)
	}
	b.VX *= s.Drag
	b.VY *= s.Drag

	b.Integrate(dt)
}

// Freeze zeroes velocity and takes the ship out of the simulation. The ship
// stays in the scene.
func (s *Ship) Freeze() {
	s.frozen = true
	s.ascend = false
	s.Body().Freeze()
}

// Draw renders the ship as a triangle pointing right, nose tilted with vertical speed.
func (s *Ship) Draw(ctx DrawContext) error {
	b := s.Body()
	r := s.cfg.Radius * 1.6
	tilt := math.Atan2(b.VY, 12)

	pts := ctx.Canvas.BorrowPoints(3)
	pts[0] = draw.Point{X: b.X + math.Cos(tilt)*r, Y: b.Y + math.Sin(tilt)*r}
	pts[1] = draw.Point{X: b.X + math.Cos(tilt+2.5)*r*0.7, Y: b.Y + math.Sin(tilt+2.5)*r*0.7}
	pts[2] = draw.Point{X: b.X + math.Cos(tilt-2.5)*r*0.7, Y: b.Y + math.Sin(tilt-2.5)*r*0.7}
	ctx.Canvas.Polygon(pts, true)
	return nil
}
