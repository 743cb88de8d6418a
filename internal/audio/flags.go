package audio

import (
	"sync"

	"github.com/tomz197/voyager/internal/prefs"
)

// Flags are the persisted music and effects mute switches.
type Flags struct {
	mu      sync.RWMutex
	store   *prefs.Prefs
	music   bool
	effects bool
}

// LoadFlags reads the mute flags from store.
func LoadFlags(store *prefs.Prefs) *Flags {
	return &Flags{
		store:   store,
		music:   store.Bool(prefs.KeyMusicMuted, false),
		effects: store.Bool(prefs.KeyEffectsMuted, false),
	}
}

// MusicMuted reports whether background music is muted.
func (f *Flags) MusicMuted() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.music
}

// EffectsMuted reports whether sound effects are muted.
func (f *Flags) EffectsMuted() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.effects
}

// ToggleMusic flips and persists the music flag, returning the new value.
func (f *Flags) ToggleMusic() bool {
	f.mu.Lock()
	f.music = !f.music
	v := f.music
	f.mu.Unlock()
	f.store.SetBool(prefs.KeyMusicMuted, v)
	return v
}

// ToggleEffects flips and persists the effects flag, returning the new value.
func (f *Flags) ToggleEffects() bool {
	f.mu.Lock()
	f.effects = !f.effects
	v := f.effects
	f.mu.Unlock()
	f.store.SetBool(prefs.KeyEffectsMuted, v)
	return v
}
