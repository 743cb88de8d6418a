// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"io"
	"time"
)

// Terminals deliver key repeats, not key-up events, so a key counts as held
// for a short window after its last byte. Ascend uses a longer window to
// bridge the gap between auto-repeats.
const (
	keyHoldDuration    = 30 * time.Millisecond
	ascendHoldDuration = 150 * time.Millisecond
)

// Input represents the current frame's input state.
type Input struct {
	Quit   bool
	Ascend bool // held
	// Edge-triggered: true only on the frame the key arrived.
	Confirm       bool
	ToggleMusic   bool
	ToggleEffects bool
	Pressed       []byte
}

type keyState struct {
	quit   time.Time
	ascend time.Time
}

// Stream delivers input bytes via a channel and tracks key state across frames.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The stream reports Quit once r is exhausted.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	var buf []byte
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	return s.parse(buf, now)
}

func (s *Stream) parse(buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if buf[i+2] == 'A' {
				s.state.ascend = now
			}
			i += 2
			continue
		}

		switch b {
		case 'q', 'Q', '\x03':
			s.state.quit = now
		case 'w', 'W', 'i', 'I', 'k', 'K', ' ':
			s.state.ascend = now
		case '\n', '\r', 'r', 'R':
			in.Confirm = true
		case 'm', 'M':
			in.ToggleMusic = true
		case 'e', 'E':
			in.ToggleEffects = true
		}
	}

	in.Quit = s.closed || now.Sub(s.state.quit) < keyHoldDuration
	in.Ascend = now.Sub(s.state.ascend) < ascendHoldDuration
	return in
}

// ResetKeyInput forgets held keys, e.g. when a round restarts so a held
// thrust key does not carry into the new round.
func (s *Stream) ResetKeyInput() {
	s.state = keyState{}
}
