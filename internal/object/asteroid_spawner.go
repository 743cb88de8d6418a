package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/voyager/internal/config"
	"github.com/tomz197/voyager/internal/logging"
)

// AsteroidSpawner emits asteroids on a timer that shortens over the round.
type AsteroidSpawner struct {
	cfg      config.SpawnerTuning
	obstacle config.ObstacleTuning
	rng      *rand.Rand

	interval   time.Duration
	ramps      int
	sinceSpawn time.Duration
	sinceRamp  time.Duration
	scene      Spawner
}

// NewAsteroidSpawner creates a spawner at its initial interval that adds
// asteroids to scene.
func NewAsteroidSpawner(cfg config.SpawnerTuning, obstacle config.ObstacleTuning, rng *rand.Rand, scene Spawner) *AsteroidSpawner {
	return &AsteroidSpawner{
		scene:    scene,
		cfg:      cfg,
		obstacle: obstacle,
		rng:      rng,
		interval: cfg.Initial,
	}
}

// Interval returns the current time between spawns.
func (s *AsteroidSpawner) Interval() time.Duration {
	return s.interval
}

// IntervalAfter is the interval once k ramps have happened.
func IntervalAfter(cfg config.SpawnerTuning, k int) time.Duration {
	iv := cfg.Initial - time.Duration(k)*cfg.RampStep
	if iv < cfg.Floor {
		return cfg.Floor
	}
	return iv
}

// Update advances the ramp and spawn timers while the round is active.
func (s *AsteroidSpawner) Update(ctx UpdateContext) (bool, error) {
	if !isActive(ctx.Round) {
		return false, nil
	}
	s.sinceRamp += ctx.Delta
	for s.cfg.RampEvery > 0 && s.sinceRamp >= s.cfg.RampEvery {
		s.sinceRamp -= s.cfg.RampEvery
		s.ramps++
		s.interval = IntervalAfter(s.cfg, s.ramps)
	}

	s.sinceSpawn += ctx.Delta
	for s.interval > 0 && s.sinceSpawn >= s.interval {
		s.sinceSpawn -= s.interval
		s.SpawnType(s.rng.Intn(len(AsteroidTypes)))
	}
	return false, nil
}

// SpawnType spawns one asteroid of the given table index at the spawn line.
// Invalid indexes are logged and skipped.
func (s *AsteroidSpawner) SpawnType(i int) {
	if i < 0 || i >= len(AsteroidTypes) {
		logging.Warnf("invalid asteroid type index %d", i)
		return
	}
	if s.scene == nil {
		logging.Warnf("asteroid spawner has no scene to spawn into")
		return
	}
	y := s.cfg.BandMin + s.rng.Float64()*(s.cfg.BandMax-s.cfg.BandMin)
	a := NewAsteroid(s.cfg.SpawnX, y, AsteroidTypes[i], s.obstacle, s.rng)
	if s.rng.Intn(2) == 0 {
		a.EnablePulse()
	}
	s.scene.Spawn(a)
}

// Draw is a no-op; spawner is not visible.
func (s *AsteroidSpawner) Draw(_ DrawContext) error {
	return nil
}
