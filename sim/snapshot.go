package sim

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/egodrive/angle"
	"github.com/pthm-cable/egodrive/camera"
	"github.com/pthm-cable/egodrive/control"
	"github.com/pthm-cable/egodrive/dynamics"
	"github.com/pthm-cable/egodrive/sound"
	"github.com/pthm-cable/egodrive/telemetry"
)

// CameraView is the orbit camera as seen after a tick.
type CameraView struct {
	Focus, Eye r3.Vec
	Yaw        float64
	Pitch      float64
	Radius     float64
	TargetYaw  float64
}

// Snapshot is a read-only copy of the session after a tick, handed to the
// renderer, HUD, audio and telemetry.
type Snapshot struct {
	Tick int64
	Time float64
	DT   float64

	State   dynamics.State
	Control control.Input
	DS      float64 // m travelled this tick
	YawRate float64 // rad/s

	Mode   camera.Mode
	Camera CameraView
	Wheels []dynamics.WheelPose

	Cue        sound.Cue
	CueEntered bool
	Toggled    bool
	Respawned  bool
}

// SpeedKmh returns the forward speed in km/h.
func (s Snapshot) SpeedKmh() float64 {
	return s.State.V * 3.6
}

// OdometerKm returns the odometer in km.
func (s Snapshot) OdometerKm() float64 {
	return s.State.S / 1000
}

// HeadingDeg returns the yaw in degrees, in (-180, 180].
func (s Snapshot) HeadingDeg() float64 {
	return angle.ToDeg(s.State.Yaw)
}

// Observation flattens the snapshot for the telemetry collector.
func (s Snapshot) Observation() telemetry.Observation {
	return telemetry.Observation{
		Tick:          s.Tick,
		Time:          s.Time,
		X:             s.State.X,
		Y:             s.State.Y,
		Yaw:           s.State.Yaw,
		V:             s.State.V,
		S:             s.State.S,
		DS:            s.DS,
		YawRate:       s.YawRate,
		Throttle:      s.Control.Throttle,
		Brake:         s.Control.Brake,
		FrontWheel:    s.Control.FrontWheelAngle,
		SteeringWheel: s.Control.SteeringWheelAngle,
		Mode:          s.Mode.String(),
		Cue:           s.Cue.String(),
		CameraToggled: s.Toggled,
		Respawned:     s.Respawned,
		CueEntered:    s.CueEntered,
	}
}
