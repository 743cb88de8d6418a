package round

import (
	"time"

	"github.com/tomz197/voyager/internal/logging"
	"github.com/tomz197/voyager/internal/prefs"
)

// Score accrues one point per interval of active play and keeps the
// persisted high score in step with it.
type Score struct {
	store   *prefs.Prefs
	every   time.Duration
	current int
	high    int
	timer   time.Duration
}

// NewScore loads the high score from store.
func NewScore(store *prefs.Prefs, every time.Duration) *Score {
	if every <= 0 {
		logging.Warnf("score interval %v is not positive, using 1s", every)
		every = time.Second
	}
	return &Score{
		store: store,
		every: every,
		high:  store.Int(prefs.KeyHighScore, 0),
	}
}

// Current returns the score of the round in progress.
func (s *Score) Current() int {
	return s.current
}

// High returns the best score seen.
func (s *Score) High() int {
	return s.high
}

// Tick adds wall-clock time. Nothing changes unless state is Active.
func (s *Score) Tick(dt time.Duration, state State) {
	if state != Active || dt <= 0 {
		return
	}
	s.timer += dt
	gained := int(s.timer / s.every)
	if gained == 0 {
		return
	}
	s.timer -= time.Duration(gained) * s.every
	s.current += gained
	if s.current > s.high {
		s.high = s.current
		s.store.SetInt(prefs.KeyHighScore, s.high)
	}
}

// Finalize compares the current score with the persisted high score and
// persists it if exceeded. It reports the final score and whether the
// store was written.
func (s *Score) Finalize() (final int, saved bool) {
	if s.current > s.high {
		s.high = s.current
	}
	if s.current > s.store.Int(prefs.KeyHighScore, 0) {
		if err := s.store.SetInt(prefs.KeyHighScore, s.current); err == nil {
			saved = true
		}
	}
	return s.current, saved
}

// Reset clears the current score and timer. The high score is kept.
func (s *Score) Reset() {
	s.current = 0
	s.timer = 0
}
