package domain_test

import (
	"errors"
	"testing"

	"sankalp/internal/modules/player/domain"
	apperrors "sankalp/internal/platform/errors"
)

func TestBeadIndexBoundaries(t *testing.T) {
	t.Parallel()
	cases := []struct {
		pos, dur int64
		want     int
	}{
		{0, 1000, 0},
		{999, 1000, 107},
		{1000, 1000, 107},
		{5000, 1000, 107},
		{-20, 1000, 0},
		{500, 1000, 54},
		{10, 0, 0},
		{10, -5, 0},
	}
	for _, c := range cases {
		if got := domain.BeadIndex(c.pos, c.dur); got != c.want {
			t.Fatalf("BeadIndex(%d, %d) = %d, want %d", c.pos, c.dur, got, c.want)
		}
	}
}

func TestBeadIndexIsMonotonic(t *testing.T) {
	t.Parallel()
	const dur = 581_000
	prev := 0
	for pos := int64(0); pos <= dur+1000; pos += 137 {
		idx := domain.BeadIndex(pos, dur)
		if idx < prev {
			t.Fatalf("index decreased at %d: %d < %d", pos, idx, prev)
		}
		if idx < 0 || idx > domain.RingSize-1 {
			t.Fatalf("index out of ring at %d: %d", pos, idx)
		}
		prev = idx
	}
}

func TestFilledBeads(t *testing.T) {
	t.Parallel()
	if got := domain.FilledBeads(0, 7); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := domain.FilledBeads(7, 7); got != 108 {
		t.Fatalf("expected full ring, got %d", got)
	}
	if got := domain.FilledBeads(20, 7); got != 108 {
		t.Fatalf("overshoot should clamp, got %d", got)
	}
	if got := domain.FilledBeads(54, 108); got != 54 {
		t.Fatalf("expected 54, got %d", got)
	}
	if got := domain.FilledBeads(1, 0); got != 108 {
		t.Fatalf("zero target treated as one, got %d", got)
	}
}

func TestMachineTransitions(t *testing.T) {
	t.Parallel()
	var m domain.Machine
	if m.Phase() != domain.PhaseIdle {
		t.Fatalf("zero machine should be idle")
	}
	if err := m.Resolve(true); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("resolve from idle must fail, got %v", err)
	}
	steps := []func() error{m.Play, m.Finish, func() error { return m.Resolve(true) }, m.Finish, func() error { return m.Resolve(false) }, m.Play, m.Pause}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if m.Phase() != domain.PhaseIdle {
		t.Fatalf("expected idle, got %s", m.Phase())
	}
	if err := m.Pause(); err == nil {
		t.Fatalf("pause from idle must fail")
	}
}

func TestMachineFinishIsSingleShot(t *testing.T) {
	t.Parallel()
	var m domain.Machine
	if err := m.Finish(); err != nil {
		t.Fatalf("late finish after pause should count: %v", err)
	}
	if err := m.Finish(); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("duplicate finish must fail, got %v", err)
	}
	m.Reset()
	if m.Phase() != domain.PhaseIdle {
		t.Fatalf("reset should return to idle")
	}
}
