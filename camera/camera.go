// Package camera provides the orbit camera and the controller that keeps it
// aimed at the vehicle.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/egodrive/angle"
)

// Orbit is a camera parametrized by a focus point and spherical offsets
// (yaw, pitch, radius). Callers steer the Target* fields; Update eases the
// current values toward them.
//
// Yaw is measured so that yaw = heading - π/2 puts the eye behind a vehicle
// with that heading. Negative pitch raises the eye above the focus.
type Orbit struct {
	// Current (smoothed) parameters
	Focus  r3.Vec
	Yaw    float64
	Pitch  float64
	Radius float64

	// Targets the current parameters ease toward
	TargetFocus  r3.Vec
	TargetYaw    float64
	TargetPitch  float64
	TargetRadius float64

	// Limits
	MinPitch, MaxPitch   float64
	MinRadius, MaxRadius float64

	// Smoothness is the easing rate in 1/s. Zero snaps to targets.
	Smoothness float64

	// Rate is the manual orbit speed in rad/s at full axis deflection.
	Rate float64

	initYaw, initPitch, initRadius float64
}

// NewOrbit creates an orbit camera at the given spherical parameters with
// targets equal to the current values.
func NewOrbit(yaw, pitch, radius float64) *Orbit {
	o := &Orbit{
		MinPitch:   -math.Pi / 2,
		MaxPitch:   math.Pi / 2,
		MinRadius:  0.001,
		MaxRadius:  500,
		Smoothness: 10,
		Rate:       math.Pi,
		initYaw:    yaw,
		initPitch:  pitch,
		initRadius: radius,
	}
	o.Reset()
	return o
}

// Reset returns the camera to its initial parameters, focused on the origin.
func (o *Orbit) Reset() {
	o.Focus = r3.Vec{}
	o.TargetFocus = r3.Vec{}
	o.Yaw, o.TargetYaw = o.initYaw, o.initYaw
	o.Pitch, o.TargetPitch = o.initPitch, o.initPitch
	o.Radius, o.TargetRadius = o.initRadius, o.initRadius
}

// Update eases the current parameters toward the targets over dt seconds.
// The yaw moves along the straight difference TargetYaw - Yaw, so callers
// that need shortest-path rotation must unwrap Yaw first (see Unwrap).
func (o *Orbit) Update(dt float64) {
	o.TargetPitch = clamp(o.TargetPitch, o.MinPitch, o.MaxPitch)
	o.TargetRadius = clamp(o.TargetRadius, o.MinRadius, o.MaxRadius)

	k := 1.0
	if o.Smoothness > 0 {
		if !(dt > 0) {
			return
		}
		k = 1 - math.Exp(-o.Smoothness*dt)
	}

	o.Focus = r3.Add(o.Focus, r3.Scale(k, r3.Sub(o.TargetFocus, o.Focus)))
	o.Yaw += (o.TargetYaw - o.Yaw) * k
	o.Pitch += (o.TargetPitch - o.Pitch) * k
	o.Radius += (o.TargetRadius - o.Radius) * k
}

// Nudge orbits the camera manually: each axis in [-1, 1] turns the target
// by up to Rate rad/s. The yaw target stays in (-π, π]; the current yaw is
// unwrapped alongside it so easing follows the short way across ±π.
func (o *Orbit) Nudge(yawAxis, pitchAxis, dt float64) {
	if yawAxis != 0 {
		o.TargetYaw = angle.Normalize(o.TargetYaw + clamp(yawAxis, -1, 1)*dt*o.Rate)
		o.Yaw = Unwrap(o.Yaw, o.TargetYaw)
	}
	if pitchAxis != 0 {
		o.TargetPitch = clamp(o.TargetPitch+clamp(pitchAxis, -1, 1)*dt*o.Rate, o.MinPitch, o.MaxPitch)
	}
}

// ZoomBy multiplies the target radius by the given factor.
func (o *Orbit) ZoomBy(factor float64) {
	o.TargetRadius = clamp(o.TargetRadius*factor, o.MinRadius, o.MaxRadius)
}

// Eye returns the world-space (Z up) eye position for the current parameters.
func (o *Orbit) Eye() r3.Vec {
	cp := math.Cos(o.Pitch)
	offset := r3.Vec{
		X: cp * math.Sin(o.Yaw),
		Y: -cp * math.Cos(o.Yaw),
		Z: -math.Sin(o.Pitch),
	}
	return r3.Add(o.Focus, r3.Scale(o.Radius, offset))
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
