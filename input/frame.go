// Package input defines the per-tick driver command frame and scripted
// command sequences for headless runs.
package input

import "math"

// Frame is one tick of driver and viewer commands, already mapped from
// whatever device produced them.
type Frame struct {
	Throttle float64 // [0, 1]
	Brake    float64 // [0, 1]
	Steer    float64 // [-1, 1], positive turns left

	CameraToggle bool
	Respawn      bool

	// Manual orbit axes in [-1, 1]; honored in third person only.
	OrbitYaw   float64
	OrbitPitch float64
	Zoom       float64 // radius multiplier, 0 or 1 = unchanged

	DT float64 // seconds since the previous tick
}

// Sanitize clamps every axis to its range and replaces NaN with zero.
// A negative or NaN DT becomes zero, which the integrator treats as a no-op.
func (f *Frame) Sanitize() {
	f.Throttle = clampAxis(f.Throttle, 0, 1)
	f.Brake = clampAxis(f.Brake, 0, 1)
	f.Steer = clampAxis(f.Steer, -1, 1)
	f.OrbitYaw = clampAxis(f.OrbitYaw, -1, 1)
	f.OrbitPitch = clampAxis(f.OrbitPitch, -1, 1)
	if !(f.Zoom > 0) || math.IsInf(f.Zoom, 0) {
		f.Zoom = 0
	}
	if !(f.DT > 0) || math.IsInf(f.DT, 0) {
		f.DT = 0
	}
}

// Idle reports whether the frame carries no driver command at all.
func (f Frame) Idle() bool {
	return f.Throttle == 0 && f.Brake == 0 && f.Steer == 0 &&
		!f.CameraToggle && !f.Respawn
}

func clampAxis(x, min, max float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
