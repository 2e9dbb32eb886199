// Package sound derives the audio cue from the driver controls. Playback is
// left to the viewer; this package only decides which sample should start.
package sound

import (
	"fmt"

	"github.com/pthm-cable/egodrive/control"
)

// Cue is the audio state implied by the controls.
type Cue uint8

const (
	Normal Cue = iota
	Throttle
	Brake
)

func (c Cue) String() string {
	switch c {
	case Normal:
		return "normal"
	case Throttle:
		return "throttle"
	case Brake:
		return "brake"
	}
	return fmt.Sprintf("Cue(%d)", uint8(c))
}

// Classifier maps controls and speed to a cue.
type Classifier struct {
	PedalThreshold float64 // pedal travel that counts as pressed
	BrakeMinSpeed  float64 // m/s, brake is silent below this
}

// DefaultClassifier returns half-travel pedals and a 5 m/s brake floor.
func DefaultClassifier() Classifier {
	return Classifier{PedalThreshold: 0.5, BrakeMinSpeed: 5.0}
}

// Classify returns Throttle when the throttle is pressed, else Brake when
// the brake is pressed at speed, else Normal. Throttle wins when both pedals
// are down.
func (c Classifier) Classify(in control.Input, v float64) Cue {
	switch {
	case in.Throttle > c.PedalThreshold:
		return Throttle
	case in.Brake > c.PedalThreshold && v > c.BrakeMinSpeed:
		return Brake
	}
	return Normal
}

// Tracker remembers the last cue so samples start only on entry.
type Tracker struct {
	current Cue
	entries [3]int
}

// Observe records the cue for this tick and reports whether it differs from
// the previous one. Entering Normal reports true as well so players can stop.
func (t *Tracker) Observe(c Cue) bool {
	if c == t.current {
		return false
	}
	t.current = c
	if int(c) < len(t.entries) {
		t.entries[c]++
	}
	return true
}

// Current returns the last observed cue.
func (t *Tracker) Current() Cue {
	return t.current
}

// Entries returns how many times the cue has been entered.
func (t *Tracker) Entries(c Cue) int {
	if int(c) >= len(t.entries) {
		return 0
	}
	return t.entries[c]
}

// Reset returns the tracker to Normal without counting an entry.
func (t *Tracker) Reset() {
	t.current = Normal
}
