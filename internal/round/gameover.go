package round

import (
	"github.com/tomz197/voyager/internal/logging"
)

// GameOver closes the round once the explosion has finished. Only the first
// Complete has an effect.
type GameOver struct {
	ctx   *Context
	done  bool
	final int
}

// NewGameOver creates the transition for ctx's current round.
func NewGameOver(ctx *Context) *GameOver {
	return &GameOver{ctx: ctx}
}

// Done reports whether the round was closed.
func (g *GameOver) Done() bool {
	return g.done
}

// Final returns the final score of a closed round.
func (g *GameOver) Final() int {
	return g.final
}

// Complete finalizes the score, moves the round to Over and tells the
// presenters. It returns true only for the call that did so.
func (g *GameOver) Complete() bool {
	if g.done {
		return false
	}
	g.done = true

	final, saved := g.ctx.Score.Finalize()
	g.final = final
	g.ctx.Advance(Over)
	if saved {
		logging.Infof("round over, new high score %d", final)
	} else {
		logging.Infof("round over, score %d (high %d)", final, g.ctx.Score.High())
	}
	g.ctx.notifyEnded(final)
	return true
}
