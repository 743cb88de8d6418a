package input

import (
	"strings"
	"testing"
	"time"

	"github.com/bmizerany/assert"
)

func newTestStream() *Stream {
	return &Stream{ch: make(chan byte, 16)}
}

func TestAscendIsHeldBetweenRepeats(t *testing.T) {
	s := newTestStream()
	now := time.Unix(100, 0)

	in := s.parse([]byte{' '}, now)
	assert.T(t, in.Ascend, "space should ascend")

	in = s.parse(nil, now.Add(100*time.Millisecond))
	assert.T(t, in.Ascend, "ascend should hold across a short gap")

	in = s.parse(nil, now.Add(ascendHoldDuration))
	assert.T(t, !in.Ascend, "ascend should release after the hold window")
}

func TestArrowUpAscends(t *testing.T) {
	s := newTestStream()
	in := s.parse([]byte("\x1b[A"), time.Unix(1, 0))
	assert.T(t, in.Ascend, "up arrow should ascend")
	assert.T(t, !in.Quit, "escape prefix must not quit")
}

func TestTogglesAreEdgeTriggered(t *testing.T) {
	s := newTestStream()
	now := time.Unix(1, 0)
	in := s.parse([]byte("me\r"), now)
	assert.T(t, in.ToggleMusic, "m toggles music")
	assert.T(t, in.ToggleEffects, "e toggles effects")
	assert.T(t, in.Confirm, "enter confirms")

	in = s.parse(nil, now.Add(time.Millisecond))
	assert.T(t, !in.ToggleMusic && !in.ToggleEffects && !in.Confirm, "toggles must not repeat")
}

func TestResetKeyInput(t *testing.T) {
	s := newTestStream()
	now := time.Unix(1, 0)
	s.parse([]byte("w"), now)
	s.ResetKeyInput()
	in := s.parse(nil, now.Add(time.Millisecond))
	assert.T(t, !in.Ascend, "reset should drop held keys")
}

func TestStreamQuitsAtEOF(t *testing.T) {
	s := StartStream(strings.NewReader("w"))
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if in := ReadInput(s); in.Quit {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("stream never reported quit after EOF")
}
