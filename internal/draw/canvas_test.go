package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bmizerany/assert"
)

var testView = Viewport{MinX: -10, MinY: -5, MaxX: 10, MaxY: 5}

func TestWorldToTerminalIsYUp(t *testing.T) {
	c := NewCanvas(40, 10, testView)

	col, row := c.WorldToTerminal(-10, 5)
	assert.Equal(t, 1, col)
	assert.Equal(t, 1, row)

	_, topRow := c.WorldToTerminal(0, 4)
	_, bottomRow := c.WorldToTerminal(0, -4)
	assert.T(t, topRow < bottomRow, "higher world y should be nearer the top row")
}

func TestRenderSkipsEmptyCells(t *testing.T) {
	c := NewCanvas(20, 5, testView)
	var buf bytes.Buffer
	assert.Equal(t, nil, c.Render(&buf))
	assert.Equal(t, 0, buf.Len())

	c.Plot(0, 0)
	buf.Reset()
	assert.Equal(t, nil, c.Render(&buf))
	assert.T(t, buf.Len() > 0, "plotted pixel should render")

	c.Clear()
	buf.Reset()
	assert.Equal(t, nil, c.Render(&buf))
	assert.Equal(t, 0, buf.Len())
}

func TestChunkWriterFlushesLargeFrames(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	big := strings.Repeat("x", maxChunkSize*3+7)
	cw.WriteAt(0, 0, big)
	assert.Equal(t, nil, cw.Flush())
	assert.Equal(t, "\033[1;1H"+big, out.String())

	out.Reset()
	assert.Equal(t, nil, cw.Flush())
	assert.Equal(t, 0, out.Len())
}
