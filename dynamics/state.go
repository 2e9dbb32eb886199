// Package dynamics advances the vehicle pose with a kinematic bicycle model
// and derives the per-wheel visual rotations from it.
package dynamics

import (
	"log/slog"

	"github.com/pthm-cable/egodrive/angle"
)

// State is the integrated vehicle pose.
type State struct {
	X, Y float64 // m, planar world frame
	Yaw  float64 // rad, held in (-π, π]
	V    float64 // m/s, forward speed
	S    float64 // m, odometer (signed path length)
}

// Derivative holds the instantaneous rates of a State.
type Derivative struct {
	DX, DY, DYaw, DV, DS float64
}

// Scale returns the derivative multiplied by dt.
func (d Derivative) Scale(dt float64) Derivative {
	return Derivative{
		DX:   d.DX * dt,
		DY:   d.DY * dt,
		DYaw: d.DYaw * dt,
		DV:   d.DV * dt,
		DS:   d.DS * dt,
	}
}

// Add returns s advanced by an already-scaled delta. Yaw is the only
// component that wraps.
func (s State) Add(d Derivative) State {
	return State{
		X:   s.X + d.DX,
		Y:   s.Y + d.DY,
		Yaw: angle.Normalize(s.Yaw + d.DYaw),
		V:   s.V + d.DV,
		S:   s.S + d.DS,
	}
}

// Apply performs an explicit Euler step: s += d*dt.
func (s *State) Apply(d Derivative, dt float64) {
	*s = s.Add(d.Scale(dt))
}

// LogValue implements slog.LogValuer for structured logging.
func (s State) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("x", s.X),
		slog.Float64("y", s.Y),
		slog.Float64("yaw", s.Yaw),
		slog.Float64("v", s.V),
		slog.Float64("s", s.S),
	)
}
