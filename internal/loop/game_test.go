package loop

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/bmizerany/assert"
	"github.com/tomz197/voyager/internal/config"
	"github.com/tomz197/voyager/internal/input"
	"github.com/tomz197/voyager/internal/object"
	"github.com/tomz197/voyager/internal/prefs"
	"github.com/tomz197/voyager/internal/round"
)

const tick = 20 * time.Millisecond

type presenterLog struct {
	ended  []int
	resets int
}

func (p *presenterLog) RoundEnded(final int) {
	p.ended = append(p.ended, final)
}

func (p *presenterLog) RoundReset() {
	p.resets++
}

func newTestGame(t config.Tuning, store *prefs.Prefs, log *presenterLog) *Game {
	opts := GameOptions{
		Tuning: t,
		Prefs:  store,
		Rand:   rand.New(rand.NewSource(7)),
	}
	if log != nil {
		opts.Presenters = []round.Presenter{log}
	}
	return NewGame(opts)
}

func frame(g *Game, in input.Input) {
	g.Update(tick, in)
	g.FixedUpdate(tick)
}

// playUntilCollision runs frames until the round leaves Active and returns
// how many frames that took.
func playUntilCollision(t *testing.T, g *Game) int {
	t.Helper()
	for i := 1; i <= 5000; i++ {
		frame(g, input.Input{})
		if !g.Round.Active() {
			return i
		}
	}
	t.Fatal("ship never collided")
	return 0
}

func TestTitleStartsRound(t *testing.T) {
	log := &presenterLog{}
	g := newTestGame(config.DefaultTuning(), nil, log)
	assert.Equal(t, ScreenTitle, g.Screen())

	frame(g, input.Input{})
	assert.Equal(t, ScreenTitle, g.Screen())
	assert.T(t, g.Ship() == nil, "no ship on the title screen")

	frame(g, input.Input{Confirm: true})
	assert.Equal(t, ScreenPlaying, g.Screen())
	assert.Equal(t, 1, log.resets)
	assert.T(t, g.Ship() != nil, "round has a ship")
	assert.Equal(t, round.Active, g.Round.State())
}

func TestScoreAccruesWhilePlaying(t *testing.T) {
	g := newTestGame(config.DefaultTuning(), nil, nil)
	g.Reset()
	for i := 0; i < 50; i++ {
		// Keep the ship off the floor.
		frame(g, input.Input{Ascend: i%3 == 0})
	}
	if g.Round.Active() {
		assert.Equal(t, 1, g.Round.Score.Current())
	}
}

func TestCollisionRunsToGameOver(t *testing.T) {
	store := prefs.New(prefs.NewMemoryEngine())
	log := &presenterLog{}
	g := newTestGame(config.DefaultTuning(), store, log)
	g.Reset()

	playUntilCollision(t, g)
	assert.T(t, g.Ship().Frozen(), "ship frozen on collision")
	for _, obj := range g.Objects() {
		if a, ok := obj.(*object.Asteroid); ok {
			assert.T(t, a.Frozen(), "asteroid frozen on collision")
		}
	}
	score := g.Round.Score.Current()

	for i := 0; i < 500 && g.Screen() == ScreenPlaying; i++ {
		frame(g, input.Input{})
	}
	assert.Equal(t, ScreenGameOver, g.Screen())
	assert.Equal(t, round.Over, g.Round.State())
	assert.Equal(t, []int{score}, log.ended)
	assert.T(t, g.Sequencer().Froze(), "explosion held on its last frame")
	assert.Equal(t, score, store.Int(prefs.KeyHighScore, 0))

	// The explosion stays in the scene on the game-over screen.
	found := false
	for _, obj := range g.Objects() {
		if e, ok := obj.(*object.Explosion); ok {
			found = e.Frozen()
		}
	}
	assert.T(t, found, "frozen explosion remains visible")

	for i := 0; i < 100; i++ {
		frame(g, input.Input{})
	}
	assert.Equal(t, 1, len(log.ended))
}

func TestMissingEffectTimesOut(t *testing.T) {
	cfg := config.DefaultTuning()
	cfg.Explosion.Frames = 0
	log := &presenterLog{}
	g := newTestGame(cfg, nil, log)
	g.Reset()

	playUntilCollision(t, g)
	frames := 0
	for g.Screen() == ScreenPlaying && frames < 1000 {
		frame(g, input.Input{})
		frames++
	}
	// Search timeout then settle delay, in 20ms frames.
	want := int((cfg.Explosion.SearchTimeout + cfg.Explosion.SettleDelay) / tick)
	assert.Equal(t, want, frames)
	assert.T(t, !g.Sequencer().Froze(), "nothing was frozen")
	assert.Equal(t, 1, len(log.ended))
}

func TestRetryDuringExplosionCancelsIt(t *testing.T) {
	log := &presenterLog{}
	g := newTestGame(config.DefaultTuning(), nil, log)
	g.Reset()
	playUntilCollision(t, g)
	old := g.Sequencer()

	g.Reset()
	assert.Equal(t, round.Active, g.Round.State())
	assert.Equal(t, 0, g.Round.Score.Current())
	for i := 0; i < 300; i++ {
		frame(g, input.Input{Ascend: i%3 == 0})
		if !g.Round.Active() {
			break
		}
	}
	assert.T(t, !old.Completion().Fired(), "cancelled explosion must not complete")
	assert.Equal(t, 2, log.resets)
}

func TestTeardownSilencesCompletion(t *testing.T) {
	log := &presenterLog{}
	g := newTestGame(config.DefaultTuning(), nil, log)
	g.Reset()
	playUntilCollision(t, g)
	g.Teardown()
	for i := 0; i < 500; i++ {
		g.Sequencer().Poll(tick)
	}
	assert.Equal(t, 0, len(log.ended))
}

func TestRetryFromGameOver(t *testing.T) {
	log := &presenterLog{}
	g := newTestGame(config.DefaultTuning(), nil, log)
	g.Reset()
	playUntilCollision(t, g)
	for i := 0; i < 500 && g.Screen() == ScreenPlaying; i++ {
		frame(g, input.Input{})
	}
	assert.Equal(t, ScreenGameOver, g.Screen())

	frame(g, input.Input{Confirm: true})
	assert.Equal(t, ScreenPlaying, g.Screen())
	assert.Equal(t, round.Active, g.Round.State())
	assert.T(t, !g.Ship().Frozen(), "fresh ship")
}

func TestTuningOverridesAreClamped(t *testing.T) {
	store := prefs.New(prefs.NewMemoryEngine())
	store.SetFloat(prefs.KeyThrustPower, 40)
	store.SetFloat(prefs.KeyGravity, 1)
	g := newTestGame(config.DefaultTuning(), store, nil)
	g.Reset()
	assert.Equal(t, config.MaxThrustOverride, g.ActiveTuning().Vehicle.ThrustPower)
	assert.Equal(t, config.MinGravityOverride, g.ActiveTuning().Vehicle.Gravity)
	assert.Equal(t, config.MaxThrustOverride, g.Ship().ThrustPower)

	// Changes mid-round wait for the next round.
	store.SetFloat(prefs.KeyGravity, 5)
	assert.Equal(t, config.MinGravityOverride, g.Ship().Gravity)
	g.Reset()
	assert.Equal(t, 5.0, g.Ship().Gravity)
}

func TestNoOverridesKeepsTuning(t *testing.T) {
	cfg := config.DefaultTuning()
	g := newTestGame(cfg, nil, nil)
	g.Reset()
	assert.Equal(t, cfg.Vehicle.ThrustPower, g.Ship().ThrustPower)
	assert.Equal(t, cfg.Vehicle.Gravity, g.Ship().Gravity)
}

func TestMuteToggles(t *testing.T) {
	store := prefs.New(prefs.NewMemoryEngine())
	g := newTestGame(config.DefaultTuning(), store, nil)
	frame(g, input.Input{ToggleMusic: true, ToggleEffects: true})
	assert.T(t, store.Bool(prefs.KeyMusicMuted, false), "music mute persisted")
	assert.T(t, store.Bool(prefs.KeyEffectsMuted, false), "effects mute persisted")
	assert.T(t, g.Round.EffectsMuted(), "round sees effects mute")
}

func TestRunEndsWithInput(t *testing.T) {
	var out bytes.Buffer
	opts := Options{
		Game:         GameOptions{Tuning: config.DefaultTuning()},
		TermSizeFunc: func() (int, int, error) { return 80, 24, nil },
	}
	err := Run(context.Background(), strings.NewReader(""), &out, opts)
	assert.Equal(t, nil, err)
	assert.T(t, strings.Contains(out.String(), "\033[?25h"), "cursor restored")
}

func TestRunRejectsBadTuning(t *testing.T) {
	opts := Options{TermSizeFunc: func() (int, int, error) { return 80, 24, nil }}
	err := Run(context.Background(), strings.NewReader(""), &bytes.Buffer{}, opts)
	assert.T(t, err != nil, "zero tuning must be rejected")
}
