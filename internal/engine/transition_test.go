package engine

import (
	"testing"
	"time"
)

func TestTransitionSequence(t *testing.T) {
	tr := NewTransition(100 * time.Millisecond)
	calls := 0

	if !tr.Start(func() { calls++ }) {
		t.Fatal("Start on idle transition returned false")
	}
	if tr.Start(func() { calls++ }) {
		t.Error("Start while running returned true")
	}

	steps := []struct {
		dt      time.Duration
		state   TransitionState
		opacity float64
		done    bool
	}{
		{50 * time.Millisecond, TransitionFadingOut, 0.5, false},
		{50 * time.Millisecond, TransitionRebuilding, 1, false},
		{0, TransitionFadingIn, 1, false},
		{25 * time.Millisecond, TransitionFadingIn, 0.75, false},
		{100 * time.Millisecond, TransitionIdle, 0, true},
	}
	for i, s := range steps {
		done := tr.Advance(s.dt)
		if done != s.done {
			t.Errorf("step %d: done = %v, want %v", i, done, s.done)
		}
		if tr.State() != s.state {
			t.Errorf("step %d: state = %s, want %s", i, tr.State(), s.state)
		}
		if got := tr.Opacity(); got != s.opacity {
			t.Errorf("step %d: opacity = %v, want %v", i, got, s.opacity)
		}
	}
	if calls != 1 {
		t.Errorf("rebuild called %d times, want 1", calls)
	}
}

func TestTransitionRebuildsAtFullOpacity(t *testing.T) {
	tr := NewTransition(10 * time.Millisecond)
	var seen float64
	tr.Start(func() { seen = tr.Opacity() })
	for tr.Active() {
		tr.Advance(5 * time.Millisecond)
	}
	if seen != 1 {
		t.Errorf("opacity during rebuild = %v, want 1", seen)
	}
}

func TestTransitionIdleAdvance(t *testing.T) {
	tr := NewTransition(time.Second)
	if tr.Advance(time.Hour) {
		t.Error("idle Advance reported completion")
	}
	if tr.Active() || tr.Opacity() != 0 {
		t.Error("idle transition not clear")
	}
}
