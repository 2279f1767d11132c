package engine

import "time"

// TransitionState is a step of the fade sequence around a level rebuild.
type TransitionState uint8

const (
	TransitionIdle TransitionState = iota
	TransitionFadingOut
	TransitionRebuilding
	TransitionFadingIn
)

// String returns the state name.
func (s TransitionState) String() string {
	switch s {
	case TransitionIdle:
		return "idle"
	case TransitionFadingOut:
		return "fading_out"
	case TransitionRebuilding:
		return "rebuilding"
	case TransitionFadingIn:
		return "fading_in"
	default:
		return "unknown"
	}
}

// Transition sequences a level rebuild behind a fade to black:
// Idle → FadingOut → Rebuilding → FadingIn → Idle.
// It is driven by Advance and cannot be cancelled once started.
type Transition struct {
	state    TransitionState
	duration time.Duration // length of each fade leg
	elapsed  time.Duration
	rebuild  func()
}

// NewTransition creates an idle transition whose fades last d each.
func NewTransition(d time.Duration) *Transition {
	if d < 0 {
		d = 0
	}
	return &Transition{duration: d}
}

// Start begins fading out. rebuild runs once the screen is fully dark.
// Returns false if a transition is already running.
func (t *Transition) Start(rebuild func()) bool {
	if t.state != TransitionIdle {
		return false
	}
	t.state = TransitionFadingOut
	t.elapsed = 0
	t.rebuild = rebuild
	return true
}

// Advance moves the sequence forward by dt.
// Returns true on the call that brings the transition back to Idle.
func (t *Transition) Advance(dt time.Duration) bool {
	switch t.state {
	case TransitionFadingOut:
		t.elapsed += dt
		if t.elapsed >= t.duration {
			t.state = TransitionRebuilding
		}
	case TransitionRebuilding:
		if t.rebuild != nil {
			t.rebuild()
			t.rebuild = nil
		}
		t.state = TransitionFadingIn
		t.elapsed = 0
	case TransitionFadingIn:
		t.elapsed += dt
		if t.elapsed >= t.duration {
			t.state = TransitionIdle
			t.elapsed = 0
			return true
		}
	}
	return false
}

// State returns the current step.
func (t *Transition) State() TransitionState {
	return t.state
}

// Active reports whether a transition is in progress.
func (t *Transition) Active() bool {
	return t.state != TransitionIdle
}

// Opacity returns the darkness of the fade overlay, 0.0 (clear) to 1.0 (black).
func (t *Transition) Opacity() float64 {
	switch t.state {
	case TransitionFadingOut:
		return t.progress()
	case TransitionRebuilding:
		return 1
	case TransitionFadingIn:
		return 1 - t.progress()
	default:
		return 0
	}
}

func (t *Transition) progress() float64 {
	if t.duration <= 0 {
		return 1
	}
	p := float64(t.elapsed) / float64(t.duration)
	if p > 1 {
		p = 1
	}
	return p
}
