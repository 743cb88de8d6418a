package round

import (
	"time"

	"github.com/tomz197/voyager/internal/config"
	"github.com/tomz197/voyager/internal/logging"
)

// Phase is the explosion sequence's progress.
type Phase int

const (
	NotStarted Phase = iota
	SoundPlaying
	AnimationPlaying
	Frozen
	Complete
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not-started"
	case SoundPlaying:
		return "sound-playing"
	case AnimationPlaying:
		return "animation-playing"
	case Frozen:
		return "frozen"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// Effect is the visual explosion. ok is false when it cannot report progress.
type Effect interface {
	Progress() (p float64, ok bool)
	Freeze()
}

// SoundPlayer plays the explosion sound.
type SoundPlayer interface {
	PlayExplosion()
}

// ExplosionHooks connects the sequencer to the scene and audio.
type ExplosionHooks struct {
	Sound       SoundPlayer
	SpawnEffect func()        // Places the visual; it may only become findable on a later frame.
	FindEffect  func() Effect // Returns nil while the visual is not in the scene.
}

// Completion is a single-consumer notification delivered at most once.
type Completion struct {
	fn    func()
	fired bool
}

// Subscribe sets the consumer, replacing any previous one.
func (c *Completion) Subscribe(fn func()) {
	c.fn = fn
}

// Unsubscribe removes the consumer.
func (c *Completion) Unsubscribe() {
	c.fn = nil
}

// Fired reports whether the notification was delivered.
func (c *Completion) Fired() bool {
	return c.fired
}

func (c *Completion) fire() {
	if c.fired {
		return
	}
	c.fired = true
	if c.fn != nil {
		c.fn()
	}
}

// ExplosionSequencer plays the sound, waits for the visual to finish, holds
// it on its last frame, lets it settle, then signals completion.
type ExplosionSequencer struct {
	ctx   *Context
	cfg   config.ExplosionTuning
	hooks ExplosionHooks

	phase  Phase
	seq    *Sequence
	effect Effect
	froze  bool
	done   Completion
}

// NewExplosionSequencer creates a sequencer in NotStarted.
func NewExplosionSequencer(ctx *Context, cfg config.ExplosionTuning, hooks ExplosionHooks) *ExplosionSequencer {
	return &ExplosionSequencer{ctx: ctx, cfg: cfg, hooks: hooks}
}

// Phase returns the current phase.
func (e *ExplosionSequencer) Phase() Phase {
	return e.phase
}

// Froze reports whether a visual was found and held on its last frame.
func (e *ExplosionSequencer) Froze() bool {
	return e.froze
}

// Completion returns the completion notification.
func (e *ExplosionSequencer) Completion() *Completion {
	return &e.done
}

// Start begins the sequence. Only the first call has an effect.
func (e *ExplosionSequencer) Start() {
	if e.phase != NotStarted || e.seq != nil {
		return
	}
	e.ctx.Advance(Exploding)
	e.phase = SoundPlaying
	e.playSound()
	if e.hooks.SpawnEffect != nil {
		e.hooks.SpawnEffect()
	}

	e.seq = NewSequence(
		Do(func() { e.phase = AnimationPlaying }),
		e.searchStage(),
		e.animationStage(),
		Do(e.freeze),
		Wait(e.cfg.SettleDelay),
		Do(func() {
			e.phase = Complete
			e.done.fire()
		}),
	)
	e.seq.Poll(0)
}

// Poll advances the sequence by one frame.
func (e *ExplosionSequencer) Poll(dt time.Duration) {
	if e.seq == nil {
		return
	}
	e.seq.Poll(dt)
}

// Cancel stops an in-flight sequence. Completion will not fire afterwards.
func (e *ExplosionSequencer) Cancel() {
	if e.seq != nil && !e.seq.Finished() {
		e.seq.Cancel()
	}
	e.done.Unsubscribe()
}

func (e *ExplosionSequencer) playSound() {
	switch {
	case e.ctx.EffectsMuted():
		logging.Debugf("effects muted, explosion is silent")
	case e.hooks.Sound == nil:
		logging.Warnf("no sound player for explosion, continuing silently")
	default:
		e.hooks.Sound.PlayExplosion()
	}
}

// searchStage probes for the visual now and then every poll interval,
// giving up after the search timeout.
func (e *ExplosionSequencer) searchStage() Stage {
	var elapsed, sinceProbe time.Duration
	probed := false
	return StageFunc(func(dt time.Duration) Status {
		elapsed += dt
		sinceProbe += dt
		if !probed || sinceProbe >= e.cfg.PollInterval {
			probed = true
			sinceProbe = 0
			if e.hooks.FindEffect != nil {
				if fx := e.hooks.FindEffect(); fx != nil {
					e.effect = fx
					return Done
				}
			}
		}
		if elapsed >= e.cfg.SearchTimeout {
			logging.Warnf("explosion effect not found within %v, completing without it", e.cfg.SearchTimeout)
			return Done
		}
		return Pending
	})
}

// animationStage waits for the visual to report full progress, or for the
// fallback duration when it cannot. It is skipped when nothing was found.
func (e *ExplosionSequencer) animationStage() Stage {
	var elapsed time.Duration
	return StageFunc(func(dt time.Duration) Status {
		if e.effect == nil {
			return Done
		}
		if p, ok := e.effect.Progress(); ok {
			if p >= 1 {
				return Done
			}
			return Pending
		}
		elapsed += dt
		if elapsed >= e.cfg.FallbackDuration {
			return Done
		}
		return Pending
	})
}

func (e *ExplosionSequencer) freeze() {
	if e.effect != nil {
		e.effect.Freeze()
		e.froze = true
	}
	e.phase = Frozen
}
