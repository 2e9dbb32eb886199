package dynamics

import (
	"math"

	"github.com/pthm-cable/egodrive/control"
)

// DefaultWheelbase is the front-to-rear axle distance in meters.
const DefaultWheelbase = 3.0

// Bicycle is the kinematic bicycle model. The rear axle is the reference
// point and the front axle carries the steered wheel.
type Bicycle struct {
	Wheelbase float64
	Curves    control.Curves

	// MaxStep splits long ticks into equal Euler sub-steps no longer than
	// this many seconds. Zero keeps a single step per tick.
	MaxStep float64
}

// NewBicycle returns a model with the default wheelbase and no sub-stepping.
func NewBicycle(curves control.Curves) Bicycle {
	return Bicycle{Wheelbase: DefaultWheelbase, Curves: curves}
}

// Derivative evaluates the state rates for the given controls.
func (m Bicycle) Derivative(s State, in control.Input) Derivative {
	return Derivative{
		DX:   s.V * math.Cos(s.Yaw),
		DY:   s.V * math.Sin(s.Yaw),
		DYaw: s.V * math.Tan(in.FrontWheelAngle) / m.Wheelbase,
		DV:   m.Curves.Longitudinal(in.Throttle, in.Brake, s.V),
		DS:   s.V,
	}
}

// Step advances s by dt seconds. A zero, negative or NaN dt leaves the state
// untouched.
func (m Bicycle) Step(s *State, in control.Input, dt float64) {
	if !(dt > 0) {
		return
	}
	n := m.substeps(dt)
	h := dt / float64(n)
	for i := 0; i < n; i++ {
		s.Apply(m.Derivative(*s, in), h)
	}
}

// substeps returns how many Euler steps a tick of dt is split into.
func (m Bicycle) substeps(dt float64) int {
	if m.MaxStep <= 0 || dt <= m.MaxStep {
		return 1
	}
	return int(math.Ceil(dt / m.MaxStep))
}
