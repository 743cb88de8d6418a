// Package audio synthesizes the game's sound: the explosion effect and a
// background music loop, mixed through a beep speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/tomz197/voyager/internal/logging"
)

const (
	sampleRate      = beep.SampleRate(44100)
	musicVolume     = 0.5
	musicFadeOut    = 500 * time.Millisecond
	musicFadeIn     = 300 * time.Millisecond
	explosionLength = 900 * time.Millisecond
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// initSpeaker opens the process-wide output device once.
func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond))
		if speakerErr != nil {
			speakerErr = errors.Wrap(speakerErr, "init speaker")
		}
	})
	return speakerErr
}

// Engine owns a mixer with the effect voices and the music voice.
// An engine that never reached the speaker stays silent.
type Engine struct {
	flags *Flags

	mu     sync.Mutex
	mixer  *beep.Mixer
	music  *beep.Ctrl
	fade   *fader
	live   bool
	closed bool
	seed   int64
}

// NewEngine creates a silent engine reading mute state from flags.
func NewEngine(flags *Flags) *Engine {
	return &Engine{flags: flags, mixer: &beep.Mixer{}}
}

// Open attaches the engine to the speaker. On failure the engine keeps
// working silently and the error is returned for logging.
func (e *Engine) Open() error {
	if err := initSpeaker(); err != nil {
		return err
	}
	e.mu.Lock()
	e.live = true
	e.mu.Unlock()
	speaker.Play(e.mixer)
	return nil
}

// OpenOrSilent opens the speaker and logs a warning when it is unavailable.
func (e *Engine) OpenOrSilent() *Engine {
	if err := e.Open(); err != nil {
		logging.Warnf("audio unavailable, running silent: %v", err)
	}
	return e
}

// Flags returns the engine's mute flags.
func (e *Engine) Flags() *Flags {
	return e.flags
}

// Voices returns the number of streams in the mixer.
func (e *Engine) Voices() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	e.locked(func() { n = e.mixer.Len() })
	return n
}

// locked runs fn while the speaker is not reading the mixer.
// Callers hold e.mu.
func (e *Engine) locked(fn func()) {
	if e.live {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

// PlayExplosion mixes one explosion burst unless effects are muted.
func (e *Engine) PlayExplosion() {
	if e.flags != nil && e.flags.EffectsMuted() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.live || e.closed {
		return
	}
	e.seed++
	burst := beep.Take(sampleRate.N(explosionLength), newNoiseBurst(sampleRate, e.seed))
	e.locked(func() { e.mixer.Add(burst) })
}

// StartMusic starts the music voice, or fades it back in.
func (e *Engine) StartMusic() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.live || e.closed {
		return
	}
	muted := e.flags != nil && e.flags.MusicMuted()
	e.locked(func() {
		if e.music == nil {
			e.fade = newFader(&pad{sr: sampleRate}, sampleRate, 0)
			e.music = &beep.Ctrl{Streamer: e.fade}
			e.mixer.Add(e.music)
		}
		e.music.Paused = muted
		e.fade.fadeTo(musicVolume, musicFadeIn)
	})
}

// FadeOutMusic lowers the music to silence. The voice stays in the mixer
// so StartMusic can bring it back.
func (e *Engine) FadeOutMusic() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.music == nil {
		return
	}
	e.locked(func() { e.fade.fadeTo(0, musicFadeOut) })
}

// SyncMute applies the current music flag to the music voice.
func (e *Engine) SyncMute() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.music == nil {
		return
	}
	muted := e.flags != nil && e.flags.MusicMuted()
	e.locked(func() { e.music.Paused = muted })
}

// Close drops every voice. The shared speaker stays open.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.locked(func() {
		e.mixer.Clear()
		e.music = nil
		e.fade = nil
	})
}
