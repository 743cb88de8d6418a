package object

import (
	"github.com/tomz197/voyager/internal/draw"
	"github.com/tomz197/voyager/internal/physics"
)

// Boundary tags.
const (
	TopBoundaryTag    = "boundary-top"
	BottomBoundaryTag = "boundary-bottom"
)

const boundaryThickness = 0.5

// Boundary is a static slab just outside the play field. Touching it ends the round.
type Boundary struct {
	edge float64
	body *physics.Body
}

// NewTopBoundary creates a slab whose lower edge is at y, spanning [-halfW, halfW].
func NewTopBoundary(y, halfW float64) *Boundary {
	return &Boundary{
		edge: y,
		body: physics.NewRect(0, y+boundaryThickness, halfW, boundaryThickness, TopBoundaryTag),
	}
}

// NewBottomBoundary creates a slab whose upper edge is at y.
func NewBottomBoundary(y, halfW float64) *Boundary {
	return &Boundary{
		edge: y,
		body: physics.NewRect(0, y-boundaryThickness, halfW, boundaryThickness, BottomBoundaryTag),
	}
}

// Body returns the boundary's physics body.
func (b *Boundary) Body() *physics.Body {
	return b.body
}

// Update is a no-op; boundaries never move.
func (b *Boundary) Update(UpdateContext) (bool, error) {
	return false, nil
}

// Draw renders the inner edge as a line.
func (b *Boundary) Draw(ctx DrawContext) error {
	ctx.Canvas.Line(draw.Point{X: -b.body.HalfW, Y: b.edge}, draw.Point{X: b.body.HalfW, Y: b.edge})
	return nil
}
