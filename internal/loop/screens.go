package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/voyager/internal/draw"
	"github.com/tomz197/voyager/internal/object"
)

// Viewport returns the world rectangle shown on screen.
func (g *Game) Viewport() draw.Viewport {
	return draw.Viewport{
		MinX: -playfieldHalfWidth,
		MinY: g.tuning.Loop.BottomY - viewMargin,
		MaxX: playfieldHalfWidth,
		MaxY: g.tuning.Loop.TopY + viewMargin,
	}
}

// overlay carries session-level notices drawn on top of the game.
type overlay struct {
	idleLeft time.Duration // >0 shows the idle warning
	shutdown bool
}

// Draw renders the scene and the current screen's text into cw.
func (g *Game) Draw(cw *draw.ChunkWriter, canvas *draw.Canvas, ov overlay) error {
	cw.Clear()
	canvas.Clear()

	if g.screen != ScreenTitle {
		ctx := object.DrawContext{Canvas: canvas, Writer: cw}
		for _, obj := range g.objects {
			if err := obj.Draw(ctx); err != nil {
				return err
			}
		}
	}
	if err := canvas.Render(cw); err != nil {
		return err
	}

	width := canvas.TerminalWidth()
	height := canvas.TerminalHeight()
	switch g.screen {
	case ScreenTitle:
		g.drawTitle(cw, width, height)
	case ScreenPlaying:
		g.drawHUD(cw, width)
	case ScreenGameOver:
		g.drawHUD(cw, width)
		g.drawGameOver(cw, width, height)
	}

	switch {
	case ov.shutdown:
		msg := "Server is shutting down. Thanks for playing!"
		cw.WriteCentered(width, height, draw.Yellow+msg+draw.Reset, len(msg))
	case ov.idleLeft > 0:
		msg := fmt.Sprintf("Idle - disconnecting in %ds", int(ov.idleLeft.Seconds()+0.5))
		cw.WriteCentered(width, height, draw.Yellow+msg+draw.Reset, len(msg))
	}
	return nil
}

func (g *Game) drawTitle(cw *draw.ChunkWriter, width, height int) {
	mid := height / 2
	title := "S P A C E   V O Y A G E R"
	cw.WriteCentered(width, mid-3, draw.Bold+draw.Cyan+title+draw.Reset, len(title))

	high := fmt.Sprintf("High score: %d", g.Round.Score.High())
	cw.WriteCentered(width, mid-1, high, len(high))

	prompt := "Press ENTER to launch"
	cw.WriteCentered(width, mid+1, prompt, len(prompt))

	controls := "Hold W, I, K, Up or SPACE to thrust - M music - E effects - Q quit"
	cw.WriteCentered(width, mid+3, draw.Dim+controls+draw.Reset, len(controls))
}

func (g *Game) drawHUD(cw *draw.ChunkWriter, width int) {
	score := fmt.Sprintf("Score: %d", g.Round.Score.Current())
	cw.WriteAt(2, 1, draw.Bold+score+draw.Reset)

	high := fmt.Sprintf("High: %d", g.Round.Score.High())
	cw.WriteAt(width/2-len(high)/2, 1, high)

	flags := g.audio.Flags()
	status := fmt.Sprintf("[M]usic %s  [E]ffects %s", onOff(!flags.MusicMuted()), onOff(!flags.EffectsMuted()))
	cw.WriteAt(width-len(status), 1, draw.Dim+status+draw.Reset)
}

func (g *Game) drawGameOver(cw *draw.ChunkWriter, width, height int) {
	mid := height / 2
	title := "G A M E   O V E R"
	cw.WriteCentered(width, mid-2, draw.Bold+draw.Red+title+draw.Reset, len(title))

	final := fmt.Sprintf("Score: %d   High score: %d", g.gameOver.Final(), g.Round.Score.High())
	cw.WriteCentered(width, mid, final, len(final))

	prompt := "Press ENTER or R to try again, Q to quit"
	cw.WriteCentered(width, mid+2, prompt, len(prompt))
}

func onOff(on bool) string {
	if on {
		return "on "
	}
	return "off"
}
