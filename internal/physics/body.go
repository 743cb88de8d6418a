package physics

// Shape selects the collision geometry of a body.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeRect
)

// Body is a simulated rigid body. Y grows upward.
type Body struct {
	X, Y   float64
	VX, VY float64
	Shape  Shape
	Radius float64 // ShapeCircle
	HalfW  float64 // ShapeRect
	HalfH  float64 // ShapeRect

	// Simulated bodies integrate and take part in overlap tests.
	// Clearing it freezes the body in place while leaving it in the scene.
	Simulated bool

	Tag string
}

// NewCircle creates a simulated circular body.
func NewCircle(x, y, radius float64, tag string) *Body {
	return &Body{X: x, Y: y, Shape: ShapeCircle, Radius: radius, Simulated: true, Tag: tag}
}

// NewRect creates a simulated rectangular body.
func NewRect(x, y, halfW, halfH float64, tag string) *Body {
	return &Body{X: x, Y: y, Shape: ShapeRect, HalfW: halfW, HalfH: halfH, Simulated: true, Tag: tag}
}

// Integrate advances position by velocity.
func (b *Body) Integrate(dt float64) {
	if !b.Simulated {
		return
	}
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// Freeze zeroes velocity and stops simulation.
func (b *Body) Freeze() {
	b.VX = 0
	b.VY = 0
	b.Simulated = false
}

// Overlaps reports whether two simulated bodies intersect.
func Overlaps(a, b *Body) bool {
	if !a.Simulated || !b.Simulated {
		return false
	}
	switch {
	case a.Shape == ShapeCircle && b.Shape == ShapeCircle:
		return CirclesOverlap(a.X, a.Y, a.Radius, b.X, b.Y, b.Radius)
	case a.Shape == ShapeCircle && b.Shape == ShapeRect:
		return CircleRectOverlap(a.X, a.Y, a.Radius, b.X, b.Y, b.HalfW, b.HalfH)
	case a.Shape == ShapeRect && b.Shape == ShapeCircle:
		return CircleRectOverlap(b.X, b.Y, b.Radius, a.X, a.Y, a.HalfW, a.HalfH)
	default:
		return abs(a.X-b.X) < a.HalfW+b.HalfW && abs(a.Y-b.Y) < a.HalfH+b.HalfH
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
