// Package prefs is the persisted key/value store behind high scores,
// tuning overrides and audio mute flags.
package prefs

import (
	"strconv"

	"github.com/tomz197/voyager/internal/logging"
)

// Keys used by the game.
const (
	KeyHighScore    = "HighScore"
	KeyThrustPower  = "ThrustPower"
	KeyGravity      = "Gravity"
	KeyMusicMuted   = "MusicMuted"
	KeyEffectsMuted = "EffectsMuted"
)

// Engine is a string key/value backend.
//
// Get returns ok=false with a nil error when the key does not exist.
type Engine interface {
	Get(key string) (val string, ok bool, err error)
	Put(key string, val string) error
	Close() error
}

// Prefs gives typed access to an Engine. Read failures fall back to the
// supplied default and write failures are returned; both are logged.
type Prefs struct {
	engine Engine
	prefix string
}

// New wraps an engine.
func New(engine Engine) *Prefs {
	return &Prefs{engine: engine}
}

// Namespace returns a view whose keys are prefixed with ns, sharing the engine.
func (p *Prefs) Namespace(ns string) *Prefs {
	return &Prefs{engine: p.engine, prefix: p.prefix + ns + "."}
}

// Has reports whether the key is set.
func (p *Prefs) Has(key string) bool {
	_, ok := p.get(key)
	return ok
}

// Int returns the integer stored under key, or def.
func (p *Prefs) Int(key string, def int) int {
	s, ok := p.get(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		logging.Warnf("prefs: %s%s=%q is not an integer", p.prefix, key, s)
		return def
	}
	return v
}

// SetInt stores an integer.
func (p *Prefs) SetInt(key string, v int) error {
	return p.put(key, strconv.Itoa(v))
}

// Float returns the float stored under key, or def.
func (p *Prefs) Float(key string, def float64) float64 {
	s, ok := p.get(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		logging.Warnf("prefs: %s%s=%q is not a number", p.prefix, key, s)
		return def
	}
	return v
}

// SetFloat stores a float.
func (p *Prefs) SetFloat(key string, v float64) error {
	return p.put(key, strconv.FormatFloat(v, 'g', -1, 64))
}

// Bool reads a 0/1 flag.
func (p *Prefs) Bool(key string, def bool) bool {
	d := 0
	if def {
		d = 1
	}
	return p.Int(key, d) == 1
}

// SetBool stores a flag as 0/1.
func (p *Prefs) SetBool(key string, v bool) error {
	if v {
		return p.SetInt(key, 1)
	}
	return p.SetInt(key, 0)
}

// Close closes the underlying engine.
func (p *Prefs) Close() error {
	return p.engine.Close()
}

func (p *Prefs) get(key string) (string, bool) {
	s, ok, err := p.engine.Get(p.prefix + key)
	if err != nil {
		logging.Warnf("prefs: read %s%s failed: %v", p.prefix, key, err)
		return "", false
	}
	return s, ok
}

func (p *Prefs) put(key, val string) error {
	if err := p.engine.Put(p.prefix+key, val); err != nil {
		logging.Warnf("prefs: write %s%s failed: %v", p.prefix, key, err)
		return err
	}
	return nil
}
