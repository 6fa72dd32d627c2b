package domain

import (
	"fmt"

	apperrors "sankalp/internal/platform/errors"
)

// RingSize is the number of beads on a mala.
const RingSize = 108

type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseFinishedPendingUpdate
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseFinishedPendingUpdate:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

type Status struct {
	IsLoaded       bool
	IsPlaying      bool
	PositionMillis int64
	DurationMillis int64
}

type EventKind int

const (
	EventStatusChanged EventKind = iota
	// EventJustFinished fires exactly once per completed playthrough.
	EventJustFinished
)

type Event struct {
	Kind   EventKind
	Status Status
}

// BeadIndex maps a playback position to the pointer bead in [0, RingSize-1].
func BeadIndex(positionMillis, durationMillis int64) int {
	if durationMillis <= 0 {
		return 0
	}
	f := float64(positionMillis) / float64(durationMillis)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	idx := int(f * RingSize)
	if idx > RingSize-1 {
		idx = RingSize - 1
	}
	return idx
}

// FilledBeads is how many beads to draw as done for completed/target.
func FilledBeads(completed, target int) int {
	if target < 1 {
		target = 1
	}
	f := float64(completed) / float64(target)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return int(f * RingSize)
}

// Machine tracks the playback-driven completion phases.
type Machine struct {
	phase Phase
}

func (m *Machine) Phase() Phase { return m.phase }

func (m *Machine) transition(from, to Phase) error {
	if m.phase != from {
		return fmt.Errorf("%w: %s -> %s from %s", apperrors.ErrInvalidTransition, from, to, m.phase)
	}
	m.phase = to
	return nil
}

func (m *Machine) Play() error  { return m.transition(PhaseIdle, PhasePlaying) }
func (m *Machine) Pause() error { return m.transition(PhasePlaying, PhaseIdle) }

// Finish moves to FinishedPendingUpdate. A finish that lands just after a
// pause still counts; a second finish before Resolve does not.
func (m *Machine) Finish() error {
	if m.phase == PhaseFinishedPendingUpdate {
		return fmt.Errorf("%w: already finished", apperrors.ErrInvalidTransition)
	}
	m.phase = PhaseFinishedPendingUpdate
	return nil
}

// Resolve leaves FinishedPendingUpdate once the completion is recorded.
func (m *Machine) Resolve(continuePlayback bool) error {
	if continuePlayback {
		return m.transition(PhaseFinishedPendingUpdate, PhasePlaying)
	}
	return m.transition(PhaseFinishedPendingUpdate, PhaseIdle)
}

// Reset forces Idle, used on teardown and on failures mid-update.
func (m *Machine) Reset() { m.phase = PhaseIdle }
