package dynamics

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/egodrive/angle"
)

// DefaultWheelRadius is the rolling radius in meters.
const DefaultWheelRadius = 0.35

// Body-local axes of the vehicle model: X lateral, Y up, Z forward.
var (
	rollAxis  = r3.Vec{X: 1}
	steerAxis = r3.Vec{Y: 1}
	mountAxis = r3.Vec{Z: 1}
)

// WheelMount describes where a wheel sits on the body and how it is oriented
// at rest.
type WheelMount struct {
	Name     string
	Offset   r3.Vec      // body-local hub position
	Init     r3.Rotation // rest orientation of the wheel model
	Steering bool        // front wheels also turn by the steering angle
}

// WheelPose is the body-local rotation of one wheel for the current tick.
type WheelPose struct {
	Mount    int // index into the mounts slice
	Rotation r3.Rotation
	Roll     float64 // rad
	Steer    float64 // rad, zero on non-steering wheels
}

// DefaultMounts returns the four wheels of the stock body.
func DefaultMounts() []WheelMount {
	left := r3.NewRotation(-math.Pi/2, mountAxis)
	right := r3.NewRotation(math.Pi/2, mountAxis)
	return []WheelMount{
		{Name: "front_left", Offset: r3.Vec{X: 0.5, Y: -0.25, Z: 1.3}, Init: left, Steering: true},
		{Name: "rear_left", Offset: r3.Vec{X: 0.5, Y: -0.25, Z: -1.3}, Init: left},
		{Name: "front_right", Offset: r3.Vec{X: -0.5, Y: -0.25, Z: 1.3}, Init: right, Steering: true},
		{Name: "rear_right", Offset: r3.Vec{X: -0.5, Y: -0.25, Z: -1.3}, Init: right},
	}
}

// RollAngle returns the wheel roll for odometer reading s, in [0, 2π).
func RollAngle(s, radius float64) float64 {
	r := math.Mod(s/radius, angle.TwoPi)
	if r < 0 {
		r += angle.TwoPi
	}
	return r
}

// WheelPoses computes every wheel's rotation: roll about the axle composed
// with the rest orientation, then the steering angle about the vertical axis
// for steering wheels only.
func WheelPoses(mounts []WheelMount, s, delta, radius float64) []WheelPose {
	poses := make([]WheelPose, len(mounts))
	FillWheelPoses(poses, mounts, s, delta, radius)
	return poses
}

// FillWheelPoses is WheelPoses writing into a caller-owned slice of the same
// length as mounts.
func FillWheelPoses(dst []WheelPose, mounts []WheelMount, s, delta, radius float64) {
	roll := RollAngle(s, radius)
	rollRot := quat.Number(r3.NewRotation(roll, rollAxis))
	steerRot := quat.Number(r3.NewRotation(delta, steerAxis))

	for i, m := range mounts {
		q := quat.Mul(rollRot, quat.Number(m.Init))
		steer := 0.0
		if m.Steering {
			q = quat.Mul(steerRot, q)
			steer = delta
		}
		dst[i] = WheelPose{
			Mount:    i,
			Rotation: r3.Rotation(q),
			Roll:     roll,
			Steer:    steer,
		}
	}
}
