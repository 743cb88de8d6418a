package loop

import (
	"math/rand"
	"time"

	"github.com/tomz197/voyager/internal/audio"
	"github.com/tomz197/voyager/internal/config"
	"github.com/tomz197/voyager/internal/object"
	"github.com/tomz197/voyager/internal/physics"
	"github.com/tomz197/voyager/internal/prefs"
	"github.com/tomz197/voyager/internal/round"
)

// Screen is what the session is showing.
type Screen int

const (
	ScreenTitle    Screen = iota // Title, waiting for the first round
	ScreenPlaying                // A round is in progress, including its explosion
	ScreenGameOver               // Final score and retry prompt
)

// GameOptions configures a Game.
type GameOptions struct {
	Tuning     config.Tuning
	Prefs      *prefs.Prefs  // Defaults to an in-memory store
	Audio      *audio.Engine // Defaults to a silent engine
	Rand       *rand.Rand    // Defaults to a time-seeded source
	Presenters []round.Presenter
}

// Game is one player's session: the scene, the round context and the
// per-round collision, explosion and game-over machinery.
type Game struct {
	tuning config.Tuning // As configured
	active config.Tuning // With persisted overrides, fixed for the round
	store  *prefs.Prefs
	audio  *audio.Engine
	rng    *rand.Rand

	Round  *round.Context
	screen Screen

	objects []object.Object
	toSpawn []object.Object
	space   *physics.Space
	top     *object.Boundary
	bottom  *object.Boundary

	ship      *object.Ship
	resolver  *round.Resolver
	sequencer *round.ExplosionSequencer
	gameOver  *round.GameOver
	rounds    int
}

// NewGame creates a session on the title screen.
func NewGame(opts GameOptions) *Game {
	store := opts.Prefs
	if store == nil {
		store = prefs.New(prefs.NewMemoryEngine())
	}
	engine := opts.Audio
	if engine == nil {
		engine = audio.NewEngine(audio.LoadFlags(store))
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	t := opts.Tuning
	g := &Game{
		tuning: t,
		active: t,
		store:  store,
		audio:  engine,
		rng:    rng,
		top:    object.NewTopBoundary(t.Loop.TopY, playfieldHalfWidth*2),
		bottom: object.NewBottomBoundary(t.Loop.BottomY, playfieldHalfWidth*2),
	}
	g.Round = round.NewContext(round.NewScore(store, t.Score.PointEvery), engine.Flags())
	g.Round.AddPresenter(sessionPresenter{g})
	for _, p := range opts.Presenters {
		g.Round.AddPresenter(p)
	}

	reach := t.Vehicle.Radius + object.MaxAsteroidRadius(t.Obstacle)
	g.space = physics.NewSpace(
		t.Obstacle.DestroyX-reach, t.Loop.BottomY-reach,
		t.Spawner.SpawnX+reach, t.Loop.TopY+reach,
		reach,
	)
	g.space.AddStatic(g.top.Body())
	g.space.AddStatic(g.bottom.Body())
	return g
}

// Screen returns the current screen.
func (g *Game) Screen() Screen {
	return g.screen
}

// Ship returns the current round's ship, nil before the first round.
func (g *Game) Ship() *object.Ship {
	return g.ship
}

// Sequencer returns the current round's explosion sequencer.
func (g *Game) Sequencer() *round.ExplosionSequencer {
	return g.sequencer
}

// Objects returns the live scene.
func (g *Game) Objects() []object.Object {
	return g.objects
}

// ActiveTuning returns the tuning in force for the current round.
func (g *Game) ActiveTuning() config.Tuning {
	return g.active
}

// Spawn queues an object to be added after the current update pass.
// Implements object.Spawner.
func (g *Game) Spawn(obj object.Object) {
	g.toSpawn = append(g.toSpawn, obj)
}

// flushSpawned adds all queued objects to the scene.
func (g *Game) flushSpawned() {
	g.objects = append(g.objects, g.toSpawn...)
	clear(g.toSpawn)
	g.toSpawn = g.toSpawn[:0]
}

// sessionPresenter switches screens and music with the round.
type sessionPresenter struct {
	g *Game
}

func (p sessionPresenter) RoundEnded(int) {
	p.g.screen = ScreenGameOver
	p.g.audio.FadeOutMusic()
}

func (p sessionPresenter) RoundReset() {
	p.g.screen = ScreenPlaying
	p.g.audio.StartMusic()
}
