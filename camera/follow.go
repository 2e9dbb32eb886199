package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/egodrive/angle"
	"github.com/pthm-cable/egodrive/dynamics"
)

// yawRange is where heading-aligned target yaws live.
var yawRange = angle.MustInterval(-math.Pi, math.Pi)

// Preset holds the spherical targets applied when a mode is entered.
type Preset struct {
	Pitch  float64
	Radius float64

	// Yaw is only applied when FixedYaw is set; heading-aligned modes keep
	// tracking the vehicle instead.
	Yaw      float64
	FixedYaw bool
}

// Presets maps each mode to its entry preset.
type Presets [numModes]Preset

// DefaultPresets returns the stock per-mode targets.
func DefaultPresets() Presets {
	return Presets{
		ThirdPerson:  {Yaw: math.Pi / 4, FixedYaw: true, Pitch: angle.Deg(-60), Radius: 50},
		FirstPerson:  {Pitch: angle.Deg(-80), Radius: 2},
		OverShoulder: {Pitch: -3 * math.Pi / 8, Radius: 20},
	}
}

// Follow selects the orbit camera targets from the view mode and the
// vehicle pose. It only writes targets; smoothing belongs to the Orbit.
type Follow struct {
	mode    Mode
	presets Presets

	// FocusOffset is added to the vehicle position in heading-aligned
	// modes, expressed in the vehicle frame (X forward, Y left, Z up).
	FocusOffset r3.Vec

	// FocusHeight lifts the focus point above the ground plane.
	FocusHeight float64
}

// NewFollow creates a controller in ThirdPerson mode.
func NewFollow(presets Presets, focusOffset r3.Vec, focusHeight float64) *Follow {
	return &Follow{
		mode:        ThirdPerson,
		presets:     presets,
		FocusOffset: focusOffset,
		FocusHeight: focusHeight,
	}
}

// Mode returns the current view mode.
func (f *Follow) Mode() Mode {
	return f.mode
}

// Toggle advances to the next mode and resets the orbit targets.
func (f *Follow) Toggle(o *Orbit) Mode {
	f.enter(f.mode.Next(), o)
	return f.mode
}

// SetMode switches to m. Requesting the current mode changes nothing.
func (f *Follow) SetMode(m Mode, o *Orbit) bool {
	if m == f.mode || m >= numModes {
		return false
	}
	f.enter(m, o)
	return true
}

func (f *Follow) enter(m Mode, o *Orbit) {
	f.mode = m
	p := f.presets[m]
	if p.FixedYaw {
		o.TargetYaw = p.Yaw
		// Heading-aligned modes may have left Yaw outside (-π, π].
		o.Yaw = Unwrap(o.Yaw, o.TargetYaw)
	}
	o.TargetPitch = p.Pitch
	o.TargetRadius = p.Radius
}

// Update aims the orbit at the vehicle for this tick.
func (f *Follow) Update(s dynamics.State, o *Orbit) {
	o.TargetFocus = f.Focus(s)

	if !f.mode.FollowsHeading() {
		return
	}
	o.TargetYaw = yawRange.Wrap(s.Yaw - math.Pi/2)
	o.Yaw = Unwrap(o.Yaw, o.TargetYaw)
}

// Focus returns the aim point for the vehicle pose in the current mode.
func (f *Follow) Focus(s dynamics.State) r3.Vec {
	focus := r3.Vec{X: s.X, Y: s.Y, Z: f.FocusHeight}
	if !f.mode.FollowsHeading() {
		return focus
	}
	rot := r3.NewRotation(s.Yaw, r3.Vec{Z: 1})
	return r3.Add(focus, rot.Rotate(f.FocusOffset))
}

// Unwrap returns the representative of current (modulo 2π) nearest to
// target when the two are more than π apart, so easing from it toward target
// never sweeps the long way around.
func Unwrap(current, target float64) float64 {
	d := target - current
	if math.Abs(d) <= math.Pi {
		return current
	}
	return current + angle.TwoPi*math.Round(d/angle.TwoPi)
}
