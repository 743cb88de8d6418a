// Package object holds the entities that live in a round: the ship, the
// asteroids and their spawner, boundaries and visual effects.
package object

import (
	"time"

	"github.com/tomz197/voyager/internal/draw"
	"github.com/tomz197/voyager/internal/input"
	"github.com/tomz197/voyager/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
// Spawned objects join the scene after the current update pass.
type Spawner interface {
	Spawn(obj Object)
}

// RoundState is the read side of the round's lifecycle state.
type RoundState interface {
	Active() bool
}

// Input is an alias for the input package's Input type.
type Input = input.Input

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Input   Input
	Round   RoundState
	Spawner Spawner
}

// FixedContext is passed to fixed-rate updates.
type FixedContext struct {
	Delta time.Duration
	Round RoundState
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas
	Writer *draw.ChunkWriter // Text overlays
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update runs once per frame. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	Draw(ctx DrawContext) error
}

// FixedUpdater is implemented by objects that step on the fixed physics tick.
type FixedUpdater interface {
	FixedUpdate(ctx FixedContext)
}

// Collider is implemented by objects with a physics body.
type Collider interface {
	Body() *physics.Body
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

func isActive(r RoundState) bool {
	return r != nil && r.Active()
}
