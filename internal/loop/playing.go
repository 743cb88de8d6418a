package loop

import (
	"time"

	"github.com/tomz197/voyager/internal/config"
	"github.com/tomz197/voyager/internal/input"
	"github.com/tomz197/voyager/internal/logging"
	"github.com/tomz197/voyager/internal/object"
	"github.com/tomz197/voyager/internal/prefs"
	"github.com/tomz197/voyager/internal/round"
)

// Reset starts a fresh round: any in-flight explosion is cancelled, the
// scene is rebuilt with the persisted tuning overrides and the one-shot
// guards are re-armed.
func (g *Game) Reset() {
	if g.sequencer != nil {
		g.sequencer.Cancel()
	}
	for _, o := range g.objects {
		object.ReleaseObject(o)
	}
	clear(g.objects)
	g.objects = g.objects[:0]
	clear(g.toSpawn)
	g.toSpawn = g.toSpawn[:0]

	g.active = g.withOverrides()
	g.ship = object.NewShip(g.active.Vehicle, g.rng)
	spawner := object.NewAsteroidSpawner(g.active.Spawner, g.active.Obstacle, g.rng, g)
	g.objects = append(g.objects, g.top, g.bottom, spawner, g.ship)

	hooks := round.ExplosionHooks{
		Sound:       g.audio,
		SpawnEffect: g.spawnExplosion,
		FindEffect:  g.findExplosion,
	}
	g.sequencer = round.NewExplosionSequencer(g.Round, g.active.Explosion, hooks)
	g.gameOver = round.NewGameOver(g.Round)
	g.sequencer.Completion().Subscribe(func() { g.gameOver.Complete() })
	g.resolver = round.NewResolver(g.Round, g.ship, g.eachAsteroid, g.sequencer)

	g.rounds++
	logging.Infof("round %d start: gravity=%.2f thrust=%.2f", g.rounds, g.active.Vehicle.Gravity, g.active.Vehicle.ThrustPower)
	g.Round.Reset()
}

// Teardown cancels any in-flight explosion and stops audio. No completion
// fires afterwards.
func (g *Game) Teardown() {
	if g.sequencer != nil {
		g.sequencer.Cancel()
	}
	g.audio.Close()
}

// withOverrides applies the persisted slider values, clamped to their ranges.
func (g *Game) withOverrides() config.Tuning {
	t := g.tuning
	if g.store.Has(prefs.KeyThrustPower) {
		t.Vehicle.ThrustPower = config.ClampThrust(g.store.Float(prefs.KeyThrustPower, t.Vehicle.ThrustPower))
	}
	if g.store.Has(prefs.KeyGravity) {
		t.Vehicle.Gravity = config.ClampGravity(g.store.Float(prefs.KeyGravity, t.Vehicle.Gravity))
	}
	return t
}

// Update runs the variable-rate tick: mute toggles, screen transitions,
// score, object updates and the explosion sequence.
func (g *Game) Update(dt time.Duration, in input.Input) error {
	g.handleToggles(in)

	switch g.screen {
	case ScreenTitle:
		if in.Confirm {
			g.Reset()
		}
		return nil
	case ScreenGameOver:
		if in.Confirm {
			g.Reset()
			return nil
		}
	}

	g.Round.Tick(dt)
	if err := g.updateObjects(dt, in); err != nil {
		return err
	}
	if g.sequencer != nil {
		g.sequencer.Poll(dt)
	}
	return nil
}

func (g *Game) handleToggles(in input.Input) {
	flags := g.audio.Flags()
	if in.ToggleMusic {
		muted := flags.ToggleMusic()
		g.audio.SyncMute()
		logging.Debugf("music muted=%v", muted)
	}
	if in.ToggleEffects {
		muted := flags.ToggleEffects()
		logging.Debugf("effects muted=%v", muted)
	}
}

// updateObjects updates all objects and removes any that request removal.
func (g *Game) updateObjects(dt time.Duration, in input.Input) error {
	ctx := object.UpdateContext{
		Delta:   dt,
		Input:   in,
		Round:   g.Round,
		Spawner: g,
	}

	kept := g.objects[:0]
	for _, obj := range g.objects {
		remove, err := obj.Update(ctx)
		if err != nil {
			return err
		}
		if remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(g.objects[len(kept):])
	g.objects = kept

	g.flushSpawned()
	return nil
}

// FixedUpdate runs the fixed-rate physics tick and reports contacts.
func (g *Game) FixedUpdate(dt time.Duration) {
	if g.screen != ScreenPlaying {
		return
	}
	ctx := object.FixedContext{Delta: dt, Round: g.Round}
	for _, obj := range g.objects {
		if f, ok := obj.(object.FixedUpdater); ok {
			f.FixedUpdate(ctx)
		}
	}
	g.detectContacts()
}

func (g *Game) eachAsteroid(fn func(round.Freezer)) {
	for _, obj := range g.objects {
		if a, ok := obj.(*object.Asteroid); ok {
			fn(a)
		}
	}
	for _, obj := range g.toSpawn {
		if a, ok := obj.(*object.Asteroid); ok {
			fn(a)
		}
	}
}

func (g *Game) spawnExplosion() {
	if g.active.Explosion.Frames <= 0 {
		logging.Warnf("explosion has no frames, nothing to show")
		return
	}
	b := g.ship.Body()
	g.Spawn(object.NewExplosion(b.X, b.Y, g.active.Explosion, g.rng))
}

func (g *Game) findExplosion() round.Effect {
	for _, obj := range g.objects {
		if e, ok := obj.(*object.Explosion); ok {
			return e
		}
	}
	return nil
}
