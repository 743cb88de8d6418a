// Package physics integrates bodies and reports overlaps between them.
// It knows nothing about rounds or game rules.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// CircleRectOverlap checks a circle against an axis-aligned rectangle given
// by its centre and half extents.
func CircleRectOverlap(cx, cy, r, rx, ry, halfW, halfH float64) bool {
	nx := clamp(cx, rx-halfW, rx+halfW)
	ny := clamp(cy, ry-halfH, ry+halfH)
	return DistanceSquared(cx, cy, nx, ny) < r*r
}

// PingPong folds t into [0, length], bouncing back and forth.
func PingPong(t, length float64) float64 {
	if length <= 0 {
		return 0
	}
	t = math.Mod(t, 2*length)
	if t < 0 {
		t += 2 * length
	}
	if t > length {
		return 2*length - t
	}
	return t
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*clamp(t, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
