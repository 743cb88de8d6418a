// Package round holds the lifecycle of one play attempt: its state, its
// score, collision resolution, the explosion sequence and the game-over
// transition.
//
// Everything here runs on the owning session's frame loop goroutine.
package round

import (
	"time"

	"github.com/tomz197/voyager/internal/logging"
)

// State is the round's lifecycle state. Transitions only move forward
// until Reset.
type State int

const (
	Active State = iota
	Colliding
	Exploding
	Over
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Colliding:
		return "colliding"
	case Exploding:
		return "exploding"
	case Over:
		return "over"
	}
	return "unknown"
}

// Presenter is told when a round ends and when a new one begins.
type Presenter interface {
	RoundEnded(final int)
	RoundReset()
}

// MuteFlags reports whether effects audio is muted.
type MuteFlags interface {
	EffectsMuted() bool
}

// Context is the single per-session home of round state, score and mute
// flags. Components receive it explicitly.
type Context struct {
	Score *Score
	Mute  MuteFlags

	state      State
	presenters []Presenter
}

// NewContext creates an Active context.
func NewContext(score *Score, mute MuteFlags) *Context {
	return &Context{Score: score, Mute: mute}
}

// State returns the current round state.
func (c *Context) State() State {
	return c.state
}

// Active reports whether the round is still being played.
func (c *Context) Active() bool {
	return c.state == Active
}

// Advance moves to a later state. Moves to the same or an earlier state are
// ignored and reported as false.
func (c *Context) Advance(to State) bool {
	if to <= c.state {
		return false
	}
	logging.Debugf("round %s -> %s", c.state, to)
	c.state = to
	return true
}

// EffectsMuted reads the effects mute flag; no flags means unmuted.
func (c *Context) EffectsMuted() bool {
	return c.Mute != nil && c.Mute.EffectsMuted()
}

// Tick accrues score for dt of wall-clock time.
func (c *Context) Tick(dt time.Duration) {
	c.Score.Tick(dt, c.state)
}

// AddPresenter registers p for round notifications.
func (c *Context) AddPresenter(p Presenter) {
	c.presenters = append(c.presenters, p)
}

// RemovePresenter unregisters p.
func (c *Context) RemovePresenter(p Presenter) {
	for i, q := range c.presenters {
		if q == p {
			c.presenters = append(c.presenters[:i], c.presenters[i+1:]...)
			return
		}
	}
}

// Reset starts a new round: score and timer cleared, state Active.
func (c *Context) Reset() {
	c.state = Active
	c.Score.Reset()
	for _, p := range c.presenters {
		p.RoundReset()
	}
}

func (c *Context) notifyEnded(final int) {
	for _, p := range c.presenters {
		p.RoundEnded(final)
	}
}
