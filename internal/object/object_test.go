package object

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/bmizerany/assert"
	"github.com/tomz197/voyager/internal/config"
)

type roundFlag bool

func (r roundFlag) Active() bool { return bool(r) }

const (
	active   = roundFlag(true)
	inactive = roundFlag(false)
)

type scene struct {
	objs []Object
}

func (s *scene) Spawn(obj Object) { s.objs = append(s.objs, obj) }

func (s *scene) asteroids() []*Asteroid {
	var out []*Asteroid
	for _, o := range s.objs {
		if a, ok := o.(*Asteroid); ok {
			out = append(out, a)
		}
	}
	return out
}

func near(t *testing.T, want, got float64) {
	t.Helper()
	if math.Abs(want-got) > 1e-9 {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestShipVelocityLaw(t *testing.T) {
	cfg := config.DefaultTuning().Vehicle
	dt := 20 * time.Millisecond
	step := dt.Seconds()

	for _, ascend := range []bool{false, true} {
		s := NewShip(cfg, nil)
		b := s.Body()
		b.VX = 0.5
		b.VY = 1.0
		x0, y0 := b.X, b.Y

		s.Update(UpdateContext{Delta: dt, Input: Input{Ascend: ascend}, Round: active})
		s.FixedUpdate(FixedContext{Delta: dt, Round: active})

		vy := 1.0 - cfg.Gravity*step
		if ascend {
			vy = math.Min(vy+cfg.ThrustPower*step, cfg.MaxThrust)
		}
		vy *= cfg.Drag
		near(t, vy, b.VY)
		near(t, 0.5*cfg.Drag, b.VX)
		near(t, y0+vy*step, b.Y)
		near(t, x0+0.5*cfg.Drag*step, b.X)
	}
}

func TestShipAscentIsClamped(t *testing.T) {
	cfg := config.DefaultTuning().Vehicle
	cfg.Drag = 1
	s := NewShip(cfg, nil)
	s.Body().VY = cfg.MaxThrust

	s.Update(UpdateContext{Input: Input{Ascend: true}, Round: active})
	s.FixedUpdate(FixedContext{Delta: time.Second, Round: active})
	assert.T(t, s.Body().VY <= cfg.MaxThrust, "ascent should not exceed the clamp")
}

func TestShipIdleWhenRoundInactive(t *testing.T) {
	s := NewShip(config.DefaultTuning().Vehicle, nil)
	b := s.Body()
	y0 := b.Y

	s.Update(UpdateContext{Input: Input{Ascend: true}, Round: inactive})
	assert.T(t, !s.Ascending(), "no thrust sampling outside an active round")
	s.FixedUpdate(FixedContext{Delta: time.Second, Round: inactive})
	assert.Equal(t, y0, b.Y)
	assert.Equal(t, 0.0, b.VY)
}

func TestShipFreeze(t *testing.T) {
	s := NewShip(config.DefaultTuning().Vehicle, nil)
	b := s.Body()
	b.VY = 3
	s.Freeze()

	assert.Equal(t, 0.0, b.VY)
	assert.T(t, !b.Simulated, "frozen ship leaves the simulation")
	y := b.Y
	s.FixedUpdate(FixedContext{Delta: time.Second, Round: active})
	assert.Equal(t, y, b.Y)
}

func TestShipSelfHealsMissingBody(t *testing.T) {
	cfg := config.DefaultTuning().Vehicle
	s := NewShip(cfg, nil)
	s.DetachBody()

	s.FixedUpdate(FixedContext{Delta: 20 * time.Millisecond, Round: active})
	b := s.Body()
	assert.T(t, b != nil, "body should be reattached")
	assert.T(t, b.VY < 0, "healed body should fall under gravity")
}

func TestAsteroidMovesLeft(t *testing.T) {
	cfg := config.DefaultTuning().Obstacle
	a := NewAsteroid(11, 1, AsteroidTypes[0], cfg, testRand())

	remove, err := a.Update(UpdateContext{Delta: 500 * time.Millisecond, Round: active})
	assert.Equal(t, nil, err)
	assert.T(t, !remove, "still on screen")
	near(t, 11-AsteroidTypes[0].Speed*0.5, a.Body().X)
	near(t, 1, a.Body().Y)
}

func TestAsteroidRemovedPastThreshold(t *testing.T) {
	cfg := config.DefaultTuning().Obstacle
	a := NewAsteroid(cfg.DestroyX+0.01, 0, AsteroidTypes[0], cfg, testRand())
	remove, _ := a.Update(UpdateContext{Delta: 100 * time.Millisecond, Round: active})
	assert.T(t, remove, "asteroid past threshold should be removed")
}

func TestAsteroidPulseIsProportional(t *testing.T) {
	cfg := config.DefaultTuning().Obstacle
	typ := AsteroidTypes[2]
	a := NewAsteroid(0, 0, typ, cfg, testRand())
	a.EnablePulse()

	// Many ticks must never compound the radius.
	for i := 0; i < 500; i++ {
		a.Update(UpdateContext{Delta: 37 * time.Millisecond, Round: active})
		r := a.Body().Radius
		assert.T(t, r >= typ.Radius*cfg.ScaleMin-1e-9 && r <= typ.Radius*cfg.ScaleMax+1e-9,
			"radius out of range:", r)
		near(t, typ.Radius*a.Scale, r)
	}
}

func TestAsteroidPulseFollowsPingPong(t *testing.T) {
	cfg := config.DefaultTuning().Obstacle
	a := NewAsteroid(0, 0, AsteroidTypes[1], cfg, testRand())
	a.EnablePulse()

	a.Update(UpdateContext{Delta: cfg.ScaleDuration, Round: active})
	near(t, cfg.ScaleMax, a.Scale)
	a.Update(UpdateContext{Delta: cfg.ScaleDuration / 2, Round: active})
	near(t, (cfg.ScaleMin+cfg.ScaleMax)/2, a.Scale)
	a.Update(UpdateContext{Delta: cfg.ScaleDuration / 2, Round: active})
	near(t, cfg.ScaleMin, a.Scale)
}

func TestAsteroidFreezesInPlace(t *testing.T) {
	cfg := config.DefaultTuning().Obstacle
	a := NewAsteroid(cfg.DestroyX+0.01, 2, AsteroidTypes[0], cfg, testRand())
	a.EnablePulse()
	a.Freeze()

	remove, _ := a.Update(UpdateContext{Delta: time.Second, Round: active})
	assert.T(t, !remove, "frozen asteroid must not be destroyed")
	near(t, cfg.DestroyX+0.01, a.Body().X)
	assert.T(t, !a.Body().Simulated, "frozen asteroid leaves the simulation")
}

func TestAsteroidIdleWhenRoundInactive(t *testing.T) {
	cfg := config.DefaultTuning().Obstacle
	a := NewAsteroid(cfg.DestroyX+0.01, 0, AsteroidTypes[0], cfg, testRand())
	remove, _ := a.Update(UpdateContext{Delta: time.Second, Round: inactive})
	assert.T(t, !remove, "no destruction outside an active round")
	near(t, cfg.DestroyX+0.01, a.Body().X)
}

func TestIntervalAfter(t *testing.T) {
	cfg := config.SpawnerTuning{
		Initial:  2 * time.Second,
		Floor:    500 * time.Millisecond,
		RampStep: 100 * time.Millisecond,
	}
	assert.Equal(t, 2*time.Second, IntervalAfter(cfg, 0))
	assert.Equal(t, time.Second, IntervalAfter(cfg, 10))
	assert.Equal(t, 500*time.Millisecond, IntervalAfter(cfg, 15))
	assert.Equal(t, 500*time.Millisecond, IntervalAfter(cfg, 1000))
}

func TestSpawnerRampScenario(t *testing.T) {
	cfg := config.DefaultTuning()
	cfg.Spawner.Initial = 2 * time.Second
	cfg.Spawner.Floor = 500 * time.Millisecond
	cfg.Spawner.RampStep = 100 * time.Millisecond
	cfg.Spawner.RampEvery = 10 * time.Second

	sc := &scene{}
	s := NewAsteroidSpawner(cfg.Spawner, cfg.Obstacle, testRand(), sc)
	for elapsed := time.Duration(0); elapsed < 100*time.Second; elapsed += 10 * time.Millisecond {
		s.Update(UpdateContext{Delta: 10 * time.Millisecond, Round: active, Spawner: sc})
	}
	assert.Equal(t, time.Second, s.Interval())

	for i := 0; i < 100; i++ {
		s.Update(UpdateContext{Delta: time.Second, Round: active, Spawner: sc})
		assert.T(t, s.Interval() >= cfg.Spawner.Floor, "interval below floor")
	}
	assert.Equal(t, cfg.Spawner.Floor, s.Interval())
}

func TestSpawnerEmitsWithinBand(t *testing.T) {
	cfg := config.DefaultTuning()
	sc := &scene{}
	s := NewAsteroidSpawner(cfg.Spawner, cfg.Obstacle, testRand(), sc)

	s.Update(UpdateContext{Delta: cfg.Spawner.Initial - time.Millisecond, Round: active})
	assert.Equal(t, 0, len(sc.objs))
	s.Update(UpdateContext{Delta: time.Millisecond, Round: active})
	assert.Equal(t, 1, len(sc.objs))

	for i := 0; i < 400; i++ {
		s.Update(UpdateContext{Delta: cfg.Spawner.Initial, Round: active})
	}
	types := map[string]int{}
	pulsing := 0
	for _, a := range sc.asteroids() {
		b := a.Body()
		assert.Equal(t, cfg.Spawner.SpawnX, b.X)
		assert.T(t, b.Y >= cfg.Spawner.BandMin && b.Y <= cfg.Spawner.BandMax, "y outside band:", b.Y)
		types[a.Type.Name]++
		if a.Pulsing() {
			pulsing++
		}
	}
	assert.Equal(t, len(AsteroidTypes), len(types))
	n := len(sc.asteroids())
	assert.T(t, pulsing > n/4 && pulsing < 3*n/4, "pulse share far from half:", pulsing, n)
}

func TestSpawnerIdleWhenRoundInactive(t *testing.T) {
	cfg := config.DefaultTuning()
	sc := &scene{}
	s := NewAsteroidSpawner(cfg.Spawner, cfg.Obstacle, testRand(), sc)
	s.Update(UpdateContext{Delta: time.Minute, Round: inactive})
	assert.Equal(t, 0, len(sc.objs))
	assert.Equal(t, cfg.Spawner.Initial, s.Interval())
}

func TestSpawnTypeRejectsInvalidIndex(t *testing.T) {
	cfg := config.DefaultTuning()
	sc := &scene{}
	s := NewAsteroidSpawner(cfg.Spawner, cfg.Obstacle, testRand(), sc)
	s.SpawnType(-1)
	s.SpawnType(len(AsteroidTypes))
	assert.Equal(t, 0, len(sc.objs))
	s.SpawnType(1)
	assert.Equal(t, 1, len(sc.objs))
}

func TestExplosionProgressAndFreeze(t *testing.T) {
	cfg := config.DefaultTuning().Explosion
	sc := &scene{}
	e := NewExplosion(1, 2, cfg, testRand())

	p, ok := e.Progress()
	assert.T(t, ok, "explosion with frames reports progress")
	assert.Equal(t, 0.0, p)

	e.Update(UpdateContext{Delta: cfg.FrameTime * time.Duration(cfg.Frames) / 2, Spawner: sc})
	assert.T(t, len(sc.objs) > 0, "first update throws debris")
	p, _ = e.Progress()
	near(t, 0.5, p)

	e.Update(UpdateContext{Delta: time.Hour})
	p, _ = e.Progress()
	assert.Equal(t, 1.0, p)
	assert.Equal(t, cfg.Frames-1, e.Frame())

	e.Freeze()
	e.Update(UpdateContext{Delta: time.Hour})
	assert.T(t, e.Frozen(), "frozen")
	assert.Equal(t, cfg.Frames-1, e.Frame())
}

func TestExplosionWithoutFramesHasNoProgress(t *testing.T) {
	cfg := config.DefaultTuning().Explosion
	cfg.Frames = 0
	e := NewExplosion(0, 0, cfg, nil)
	_, ok := e.Progress()
	assert.T(t, !ok, "no frames means no progress")
}

func TestParticleExpires(t *testing.T) {
	p := NewParticle(0, 0, 1, 0, 100*time.Millisecond)
	remove, _ := p.Update(UpdateContext{Delta: 50 * time.Millisecond})
	assert.T(t, !remove, "still alive")
	assert.T(t, p.X > 0, "moved")
	remove, _ = p.Update(UpdateContext{Delta: 50 * time.Millisecond})
	assert.T(t, remove, "expired")
}
