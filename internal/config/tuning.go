package config

import (
	"strings"
	"time"

	"github.com/go-ini/ini"
	"github.com/pkg/errors"
)

// Tuning holds every gameplay constant. Values are fixed for the lifetime of
// a process; a round reads them at start and never again.
type Tuning struct {
	Vehicle   VehicleTuning
	Spawner   SpawnerTuning
	Obstacle  ObstacleTuning
	Explosion ExplosionTuning
	Score     ScoreTuning
	Loop      LoopTuning
}

// VehicleTuning configures the player's ship.
type VehicleTuning struct {
	Gravity     float64 // Downward acceleration, units/s²
	ThrustPower float64 // Upward acceleration while ascending, units/s²
	MaxThrust   float64 // Upper clamp on vertical velocity
	Drag        float64 // Velocity multiplier applied every fixed tick (<1)
	Radius      float64 // Collision radius
	StartX      float64
	StartY      float64
}

// SpawnerTuning configures obstacle creation and the difficulty ramp.
type SpawnerTuning struct {
	Initial   time.Duration // First spawn interval
	Floor     time.Duration // Interval never drops below this
	RampStep  time.Duration // Interval decrement per ramp
	RampEvery time.Duration // Wall-clock time between ramps
	SpawnX    float64       // Horizontal spawn position (right of the view)
	BandMin   float64       // Vertical spawn band
	BandMax   float64
}

// ObstacleTuning configures obstacle motion.
type ObstacleTuning struct {
	DestroyX      float64 // Obstacles left of this are removed
	ScaleMin      float64
	ScaleMax      float64
	ScaleDuration time.Duration // Half period of the ping-pong
}

// ExplosionTuning configures the explosion sequence.
type ExplosionTuning struct {
	SettleDelay      time.Duration
	SearchTimeout    time.Duration
	PollInterval     time.Duration
	FallbackDuration time.Duration // Used when the effect reports no progress
	Frames           int           // Frames in the explosion animation; 0 disables the visual
	FrameTime        time.Duration
}

// ScoreTuning configures score accrual.
type ScoreTuning struct {
	PointEvery time.Duration
}

// LoopTuning configures the frame driver.
type LoopTuning struct {
	FPS       int
	FixedStep time.Duration
	TopY      float64 // Upper boundary
	BottomY   float64 // Lower boundary
}

// Settings slider ranges for persisted overrides.
const (
	MinThrustOverride  = 10.0
	MaxThrustOverride  = 15.0
	MinGravityOverride = 3.0
	MaxGravityOverride = 7.0
)

// DefaultTuning returns the compiled-in tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Vehicle: VehicleTuning{
			Gravity:     2.5,
			ThrustPower: 7,
			MaxThrust:   9,
			Drag:        0.96,
			Radius:      0.45,
			StartX:      -6,
			StartY:      0,
		},
		Spawner: SpawnerTuning{
			Initial:   2 * time.Second,
			Floor:     500 * time.Millisecond,
			RampStep:  100 * time.Millisecond,
			RampEvery: 10 * time.Second,
			SpawnX:    11,
			BandMin:   -4,
			BandMax:   4,
		},
		Obstacle: ObstacleTuning{
			DestroyX:      -15,
			ScaleMin:      0.8,
			ScaleMax:      1.2,
			ScaleDuration: 2 * time.Second,
		},
		Explosion: ExplosionTuning{
			SettleDelay:      100 * time.Millisecond,
			SearchTimeout:    2 * time.Second,
			PollInterval:     100 * time.Millisecond,
			FallbackDuration: time.Second,
			Frames:           8,
			FrameTime:        90 * time.Millisecond,
		},
		Score: ScoreTuning{
			PointEvery: time.Second,
		},
		Loop: LoopTuning{
			FPS:       60,
			FixedStep: 20 * time.Millisecond,
			TopY:      5,
			BottomY:   -5,
		},
	}
}

// Validate rejects tunings the game cannot run with.
func (t Tuning) Validate() error {
	switch {
	case t.Vehicle.Drag <= 0 || t.Vehicle.Drag > 1:
		return errors.Errorf("vehicle.drag must be in (0, 1], got %v", t.Vehicle.Drag)
	case t.Vehicle.Radius <= 0:
		return errors.Errorf("vehicle.radius must be positive, got %v", t.Vehicle.Radius)
	case t.Spawner.Floor <= 0:
		return errors.Errorf("spawner.floor must be positive, got %v", t.Spawner.Floor)
	case t.Spawner.Initial < t.Spawner.Floor:
		return errors.Errorf("spawner.initial %v is below spawner.floor %v", t.Spawner.Initial, t.Spawner.Floor)
	case t.Spawner.RampEvery <= 0:
		return errors.Errorf("spawner.ramp_every must be positive, got %v", t.Spawner.RampEvery)
	case t.Spawner.BandMax < t.Spawner.BandMin:
		return errors.Errorf("spawner band [%v, %v] is empty", t.Spawner.BandMin, t.Spawner.BandMax)
	case t.Obstacle.ScaleDuration <= 0:
		return errors.Errorf("obstacle.scale_duration must be positive, got %v", t.Obstacle.ScaleDuration)
	case t.Explosion.PollInterval <= 0:
		return errors.Errorf("explosion.poll_interval must be positive, got %v", t.Explosion.PollInterval)
	case t.Explosion.Frames < 0:
		return errors.Errorf("explosion.frames must not be negative, got %d", t.Explosion.Frames)
	case t.Score.PointEvery <= 0:
		return errors.Errorf("score.point_every must be positive, got %v", t.Score.PointEvery)
	case t.Loop.FPS <= 0:
		return errors.Errorf("loop.fps must be positive, got %d", t.Loop.FPS)
	case t.Loop.FixedStep <= 0:
		return errors.Errorf("loop.fixed_step must be positive, got %v", t.Loop.FixedStep)
	case t.Loop.TopY <= t.Loop.BottomY:
		return errors.Errorf("loop.top_y %v must be above loop.bottom_y %v", t.Loop.TopY, t.Loop.BottomY)
	}
	return nil
}

// LoadTuning reads an ini file over the defaults. An empty path returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return t, errors.Wrapf(err, "load tuning %s", path)
	}
	if err := applyTuning(f, &t); err != nil {
		return t, errors.Wrapf(err, "tuning %s", path)
	}
	return t, t.Validate()
}

func applyTuning(f *ini.File, t *Tuning) error {
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			if len(sec.Keys()) > 0 {
				return errors.New("keys outside a section")
			}
			continue
		}

		var err error
		switch strings.ToLower(sec.Name()) {
		case "vehicle":
			err = readVehicle(sec, &t.Vehicle)
		case "spawner":
			err = readSpawner(sec, &t.Spawner)
		case "obstacle":
			err = readObstacle(sec, &t.Obstacle)
		case "explosion":
			err = readExplosion(sec, &t.Explosion)
		case "score":
			err = readScore(sec, &t.Score)
		case "loop":
			err = readLoop(sec, &t.Loop)
		default:
			err = errors.Errorf("unknown section [%s]", sec.Name())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func unknownKey(sec *ini.Section, key *ini.Key) error {
	return errors.Errorf("section [%s] has unknown key: %s", sec.Name(), key.Name())
}

func readVehicle(sec *ini.Section, vt *VehicleTuning) error {
	for _, key := range sec.Keys() {
		switch strings.ToLower(key.Name()) {
		case "gravity":
			vt.Gravity = key.MustFloat64(vt.Gravity)
		case "thrust_power":
			vt.ThrustPower = key.MustFloat64(vt.ThrustPower)
		case "max_thrust":
			vt.MaxThrust = key.MustFloat64(vt.MaxThrust)
		case "drag":
			vt.Drag = key.MustFloat64(vt.Drag)
		case "radius":
			vt.Radius = key.MustFloat64(vt.Radius)
		case "start_x":
			vt.StartX = key.MustFloat64(vt.StartX)
		case "start_y":
			vt.StartY = key.MustFloat64(vt.StartY)
		default:
			return unknownKey(sec, key)
		}
	}
	return nil
}

func readSpawner(sec *ini.Section, st *SpawnerTuning) error {
	for _, key := range sec.Keys() {
		switch strings.ToLower(key.Name()) {
		case "initial":
			st.Initial = key.MustDuration(st.Initial)
		case "floor":
			st.Floor = key.MustDuration(st.Floor)
		case "ramp_step":
			st.RampStep = key.MustDuration(st.RampStep)
		case "ramp_every":
			st.RampEvery = key.MustDuration(st.RampEvery)
		case "spawn_x":
			st.SpawnX = key.MustFloat64(st.SpawnX)
		case "band_min":
			st.BandMin = key.MustFloat64(st.BandMin)
		case "band_max":
			st.BandMax = key.MustFloat64(st.BandMax)
		default:
			return unknownKey(sec, key)
		}
	}
	return nil
}

func readObstacle(sec *ini.Section, ot *ObstacleTuning) error {
	for _, key := range sec.Keys() {
		switch strings.ToLower(key.Name()) {
		case "destroy_x":
			ot.DestroyX = key.MustFloat64(ot.DestroyX)
		case "scale_min":
			ot.ScaleMin = key.MustFloat64(ot.ScaleMin)
		case "scale_max":
			ot.ScaleMax = key.MustFloat64(ot.ScaleMax)
		case "scale_duration":
			ot.ScaleDuration = key.MustDuration(ot.ScaleDuration)
		default:
			return unknownKey(sec, key)
		}
	}
	return nil
}

func readExplosion(sec *ini.Section, et *ExplosionTuning) error {
	for _, key := range sec.Keys() {
		switch strings.ToLower(key.Name()) {
		case "settle_delay":
			et.SettleDelay = key.MustDuration(et.SettleDelay)
		case "search_timeout":
			et.SearchTimeout = key.MustDuration(et.SearchTimeout)
		case "poll_interval":
			et.PollInterval = key.MustDuration(et.PollInterval)
		case "fallback_duration":
			et.FallbackDuration = key.MustDuration(et.FallbackDuration)
		case "frames":
			et.Frames = key.MustInt(et.Frames)
		case "frame_time":
			et.FrameTime = key.MustDuration(et.FrameTime)
		default:
			return unknownKey(sec, key)
		}
	}
	return nil
}

func readScore(sec *ini.Section, st *ScoreTuning) error {
	for _, key := range sec.Keys() {
		switch strings.ToLower(key.Name()) {
		case "point_every":
			st.PointEvery = key.MustDuration(st.PointEvery)
		default:
			return unknownKey(sec, key)
		}
	}
	return nil
}

func readLoop(sec *ini.Section, lt *LoopTuning) error {
	for _, key := range sec.Keys() {
		switch strings.ToLower(key.Name()) {
		case "fps":
			lt.FPS = key.MustInt(lt.FPS)
		case "fixed_step":
			lt.FixedStep = key.MustDuration(lt.FixedStep)
		case "top_y":
			lt.TopY = key.MustFloat64(lt.TopY)
		case "bottom_y":
			lt.BottomY = key.MustFloat64(lt.BottomY)
		default:
			return unknownKey(sec, key)
		}
	}
	return nil
}

// ClampThrust clamps a persisted thrust override to the settings range.
func ClampThrust(v float64) float64 {
	return clamp(v, MinThrustOverride, MaxThrustOverride)
}

// ClampGravity clamps a persisted gravity override to the settings range.
func ClampGravity(v float64) float64 {
	return clamp(v, MinGravityOverride, MaxGravityOverride)
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
