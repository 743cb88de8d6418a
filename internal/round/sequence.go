package round

import "time"

// Status is the result of polling a stage.
type Status int

const (
	Pending Status = iota
	Done
)

// Stage is one step of a multi-frame sequence. Poll is called once per
// frame with the time since the previous call.
type Stage interface {
	Poll(dt time.Duration) Status
}

// StageFunc adapts a function to a Stage.
type StageFunc func(dt time.Duration) Status

// Poll calls f.
func (f StageFunc) Poll(dt time.Duration) Status {
	return f(dt)
}

// Do runs fn once and completes.
func Do(fn func()) Stage {
	return StageFunc(func(time.Duration) Status {
		fn()
		return Done
	})
}

// Wait completes once d has elapsed.
func Wait(d time.Duration) Stage {
	var elapsed time.Duration
	return StageFunc(func(dt time.Duration) Status {
		elapsed += dt
		if elapsed >= d {
			return Done
		}
		return Pending
	})
}

// Sequence runs stages in order. A stage that completes hands over to the
// next one within the same poll; the time of that poll is not counted
// twice, so later stages see a zero delta.
type Sequence struct {
	stages    []Stage
	idx       int
	cancelled bool
}

// NewSequence creates a sequence over stages.
func NewSequence(stages ...Stage) *Sequence {
	return &Sequence{stages: stages}
}

// Poll advances the sequence. A cancelled sequence runs nothing and reports Done.
func (s *Sequence) Poll(dt time.Duration) Status {
	for !s.cancelled && s.idx < len(s.stages) {
		if s.stages[s.idx].Poll(dt) == Pending {
			return Pending
		}
		s.idx++
		dt = 0
	}
	return Done
}

// Cancel stops the sequence; no further stage runs.
func (s *Sequence) Cancel() {
	s.cancelled = true
}

// Cancelled reports whether Cancel was called.
func (s *Sequence) Cancelled() bool {
	return s.cancelled
}

// Finished reports whether every stage ran to completion.
func (s *Sequence) Finished() bool {
	return !s.cancelled && s.idx >= len(s.stages)
}
