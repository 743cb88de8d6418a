// Package loop drives a game session: it owns the scene and the round, and
// runs the Input, Update, FixedUpdate, Draw cycle against a terminal.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/tomz197/voyager/internal/draw"
	"github.com/tomz197/voyager/internal/input"
	"github.com/tomz197/voyager/internal/logging"
)

// Options configures a session.
type Options struct {
	Game         GameOptions
	TermSizeFunc draw.TermSizeFunc // Defaults to the process terminal
	IdleWarn     time.Duration     // 0 disables idle handling
	IdleTimeout  time.Duration
}

// Run plays a session until the player quits, the input ends, the session
// idles out or ctx is cancelled.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	if err := opts.Game.Tuning.Validate(); err != nil {
		return err
	}
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	tw, th, err := sizeFunc()
	if err != nil {
		return errors.Wrap(err, "terminal size")
	}

	game := NewGame(opts.Game)
	defer game.Teardown()

	fps := opts.Game.Tuning.Loop.FPS
	fixed := opts.Game.Tuning.Loop.FixedStep
	frameTime := time.Second / time.Duration(fps)

	stream := input.StartStream(r)
	canvas := draw.NewCanvas(tw, th, game.Viewport())
	cw := draw.NewChunkWriter(w)

	draw.HideCursor(w)
	defer func() {
		draw.ClearScreen(w)
		draw.ShowCursor(w)
	}()

	lastTime := time.Now()
	lastInput := lastTime
	var acc time.Duration
	var shutdownAt time.Time

	for {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		in := input.ReadInput(stream)
		if in.Quit {
			return nil
		}
		if len(in.Pressed) > 0 {
			lastInput = frameStart
		}

		ov := overlay{}
		if ctx.Err() != nil {
			if shutdownAt.IsZero() {
				shutdownAt = frameStart
			}
			if frameStart.Sub(shutdownAt) >= shutdownNotice {
				return nil
			}
			ov.shutdown = true
		}
		if opts.IdleTimeout > 0 {
			idle := frameStart.Sub(lastInput)
			if idle >= opts.IdleTimeout {
				logging.Infof("session idle for %v, disconnecting", idle.Round(time.Second))
				return nil
			}
			if opts.IdleWarn > 0 && idle >= opts.IdleWarn {
				ov.idleLeft = opts.IdleTimeout - idle
			}
		}

		// ===== UPDATE PHASE =====
		before := game.Screen()
		if err := game.Update(dt, in); err != nil {
			return err
		}
		if before != ScreenPlaying && game.Screen() == ScreenPlaying {
			stream.ResetKeyInput()
		}

		acc += dt
		steps := 0
		for acc >= fixed && steps < maxFixedSteps {
			game.FixedUpdate(fixed)
			acc -= fixed
			steps++
		}
		if steps == maxFixedSteps {
			acc = 0
		}

		// ===== DRAW PHASE =====
		if tw, th, err := sizeFunc(); err == nil {
			canvas.Resize(tw, th)
		}
		if err := game.Draw(cw, canvas, ov); err != nil {
			return err
		}
		if err := cw.Flush(); err != nil {
			return errors.Wrap(err, "write frame")
		}

		// ===== FRAME TIMING =====
		if elapsed := time.Since(frameStart); elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
}
