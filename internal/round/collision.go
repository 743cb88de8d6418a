package round

import (
	"github.com/tomz197/voyager/internal/logging"
)

// Freezer is anything that can be stopped in place.
type Freezer interface {
	Freeze()
}

// Starter starts a follow-up sequence.
type Starter interface {
	Start()
}

// Resolver turns the first contact of the round into a collision. It fires
// at most once; later contacts are absorbed.
type Resolver struct {
	ctx       *Context
	vehicle   Freezer
	obstacles func(fn func(Freezer))
	next      Starter
	fired     bool
}

// NewResolver creates an armed resolver. obstacles enumerates the live
// obstacles at the time of the collision.
func NewResolver(ctx *Context, vehicle Freezer, obstacles func(fn func(Freezer)), next Starter) *Resolver {
	return &Resolver{
		ctx:       ctx,
		vehicle:   vehicle,
		obstacles: obstacles,
		next:      next,
	}
}

// Fired reports whether the collision already happened this round.
func (r *Resolver) Fired() bool {
	return r.fired
}

// Collide handles a contact between the vehicle and other. It returns true
// only for the call that fired.
func (r *Resolver) Collide(other string) bool {
	if r.fired || !r.ctx.Active() {
		return false
	}
	r.fired = true
	r.ctx.Advance(Colliding)
	logging.Infof("vehicle hit %s at score %d", other, r.ctx.Score.Current())

	if r.vehicle != nil {
		r.vehicle.Freeze()
	}
	if r.obstacles != nil {
		r.obstacles(func(o Freezer) { o.Freeze() })
	}
	if r.next != nil {
		r.next.Start()
	}
	return true
}
