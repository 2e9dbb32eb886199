// Package sim owns the single vehicle and runs the per-tick chain from
// driver commands to the camera and audio outputs.
package sim

import (
	"fmt"
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/egodrive/angle"
	"github.com/pthm-cable/egodrive/camera"
	"github.com/pthm-cable/egodrive/config"
	"github.com/pthm-cable/egodrive/control"
	"github.com/pthm-cable/egodrive/dynamics"
	"github.com/pthm-cable/egodrive/input"
	"github.com/pthm-cable/egodrive/sound"
	"github.com/pthm-cable/egodrive/telemetry"
)

// Vehicle is the single simulated car: its integrated state and the
// controller-layer inputs acting on it.
type Vehicle struct {
	State   dynamics.State
	Control control.Input
}

// Session holds every piece of per-run state. It is driven from one
// goroutine; Step is not safe for concurrent use.
type Session struct {
	Vehicle Vehicle
	spawn   dynamics.State

	Model       dynamics.Bicycle
	Steering    control.Steering
	Mounts      []dynamics.WheelMount
	WheelRadius float64
	poses       []dynamics.WheelPose

	Follow *camera.Follow
	Orbit  *camera.Orbit

	Classifier sound.Classifier
	Tracker    sound.Tracker

	// OnTick, when set, receives every snapshot inside the telemetry phase.
	OnTick func(Snapshot)

	perf *telemetry.PerfCollector

	tick int64
	time float64
}

// NewSession builds a session from the loaded configuration.
func NewSession(cfg *config.Config) (*Session, error) {
	mode, err := camera.ParseMode(cfg.Camera.Mode)
	if err != nil {
		return nil, fmt.Errorf("camera.mode: %w", err)
	}

	curves := control.Curves{
		MaxAccel:      cfg.Vehicle.MaxAccel,
		MaxSpeed:      cfg.Vehicle.MaxSpeed,
		BrakeMidpoint: cfg.Brake.Midpoint,
		BrakeGain:     cfg.Brake.Gain,
		StopThreshold: cfg.Brake.StopThreshold,
	}
	model := dynamics.NewBicycle(curves)
	model.Wheelbase = cfg.Vehicle.Wheelbase
	model.MaxStep = cfg.Dynamics.MaxStep

	presets := PresetsFromConfig(cfg.Camera)
	tp := presets[camera.ThirdPerson]
	orbit := camera.NewOrbit(tp.Yaw, tp.Pitch, tp.Radius)
	orbit.Smoothness = cfg.Camera.Smoothness
	orbit.MinRadius = cfg.Camera.MinRadius
	orbit.MaxRadius = cfg.Camera.MaxRadius
	orbit.Rate = cfg.Derived.OrbitRate

	off := cfg.Camera.FocusOffset
	follow := camera.NewFollow(presets, r3.Vec{X: off[0], Y: off[1], Z: off[2]}, cfg.Camera.FocusHeight)
	follow.SetMode(mode, orbit)

	mounts := dynamics.DefaultMounts()
	s := &Session{
		spawn: dynamics.State{
			X:   cfg.Vehicle.SpawnX,
			Y:   cfg.Vehicle.SpawnY,
			Yaw: cfg.Derived.SpawnYaw,
		},
		Model: model,
		Steering: control.Steering{
			OmegaMin: cfg.Steering.OmegaMin,
			Omega0:   cfg.Steering.Omega0,
			Lambda:   cfg.Steering.Lambda,
			RefSpeed: cfg.Steering.RefSpeed,
			Ratio:    cfg.Steering.Ratio,
			MaxAngle: cfg.Derived.MaxSteerAngle,
		},
		Mounts:      mounts,
		WheelRadius: cfg.Wheels.Radius,
		poses:       make([]dynamics.WheelPose, len(mounts)),
		Follow:      follow,
		Orbit:       orbit,
		Classifier: sound.Classifier{
			PedalThreshold: cfg.Sound.PedalThreshold,
			BrakeMinSpeed:  cfg.Sound.BrakeMinSpeed,
		},
		perf: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
	}
	s.Vehicle.State = s.spawn
	s.settleCamera()
	orbit.Pitch = orbit.TargetPitch
	orbit.Radius = orbit.TargetRadius
	dynamics.FillWheelPoses(s.poses, s.Mounts, 0, 0, s.WheelRadius)

	return s, nil
}

// PresetsFromConfig converts the degree-based camera presets.
func PresetsFromConfig(c config.CameraConfig) camera.Presets {
	conv := func(p config.PresetConfig) camera.Preset {
		out := camera.Preset{Pitch: angle.Deg(p.PitchDeg), Radius: p.Radius}
		if p.YawDeg != nil {
			out.Yaw = angle.Deg(*p.YawDeg)
			out.FixedYaw = true
		}
		return out
	}
	var presets camera.Presets
	presets[camera.ThirdPerson] = conv(c.ThirdPerson)
	presets[camera.FirstPerson] = conv(c.FirstPerson)
	presets[camera.OverShoulder] = conv(c.OverShoulder)
	return presets
}

// Step advances the session by one frame. The order is fixed: respawn and
// camera requests, pedals, steering, integration, wheel poses, camera
// follow and smoothing, then the audio cue.
func (s *Session) Step(f input.Frame) Snapshot {
	s.perf.StartTick()
	defer func() { s.perf.EndTick(f.DT) }()

	s.perf.StartPhase(telemetry.PhaseInput)
	f.Sanitize()
	dt := f.DT

	if f.Respawn {
		s.Respawn()
	}
	toggled := false
	if f.CameraToggle {
		mode := s.Follow.Toggle(s.Orbit)
		toggled = true
		slog.Info("camera_mode", "mode", mode.String(), "tick", s.tick)
	}
	if s.Follow.Mode() == camera.ThirdPerson {
		s.Orbit.Nudge(f.OrbitYaw, f.OrbitPitch, dt)
	}
	if f.Zoom > 0 {
		s.Orbit.ZoomBy(f.Zoom)
	}

	s.perf.StartPhase(telemetry.PhaseControl)
	v := s.Vehicle.State.V
	s.Vehicle.Control.SetPedals(f.Throttle, f.Brake)
	s.Vehicle.Control.Steer(s.Steering, v, f.Steer, dt)

	s.perf.StartPhase(telemetry.PhaseIntegrate)
	before := s.Vehicle.State
	s.Model.Step(&s.Vehicle.State, s.Vehicle.Control, dt)

	s.perf.StartPhase(telemetry.PhaseWheels)
	st := s.Vehicle.State
	dynamics.FillWheelPoses(s.poses, s.Mounts, st.S, s.Vehicle.Control.FrontWheelAngle, s.WheelRadius)

	s.perf.StartPhase(telemetry.PhaseCamera)
	s.Follow.Update(st, s.Orbit)
	s.Orbit.Update(dt)

	s.perf.StartPhase(telemetry.PhaseAudio)
	cue := s.Classifier.Classify(s.Vehicle.Control, st.V)
	entered := s.Tracker.Observe(cue)

	s.tick++
	s.time += dt

	snap := s.snapshot()
	snap.DT = dt
	snap.Cue = cue
	snap.CueEntered = entered
	snap.Toggled = toggled
	snap.Respawned = f.Respawn
	snap.DS = st.S - before.S
	if dt > 0 {
		snap.YawRate = s.Model.Derivative(st, s.Vehicle.Control).DYaw
	}

	if s.OnTick != nil {
		s.perf.StartPhase(telemetry.PhaseTelemetry)
		s.OnTick(snap)
	}
	return snap
}

// Respawn returns the vehicle to its spawn pose at rest with neutral
// controls. The camera mode is kept and the view jumps to the new focus.
func (s *Session) Respawn() {
	s.Vehicle = Vehicle{State: s.spawn}
	s.Tracker.Reset()
	s.settleCamera()
	slog.Info("respawn", "tick", s.tick, "state", s.Vehicle.State)
}

// SelectMode switches the camera straight to m. It reports whether the mode
// changed.
func (s *Session) SelectMode(m camera.Mode) bool {
	if m == s.Follow.Mode() {
		return false
	}
	s.Follow.SetMode(m, s.Orbit)
	slog.Info("camera_mode", "mode", m.String(), "tick", s.tick)
	return true
}

// settleCamera snaps the orbit focus onto the vehicle.
func (s *Session) settleCamera() {
	s.Follow.Update(s.Vehicle.State, s.Orbit)
	s.Orbit.Focus = s.Orbit.TargetFocus
	if s.Follow.Mode().FollowsHeading() {
		s.Orbit.Yaw = s.Orbit.TargetYaw
	}
}

// Snapshot returns the current view without advancing.
func (s *Session) Snapshot() Snapshot {
	snap := s.snapshot()
	snap.Cue = s.Tracker.Current()
	return snap
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Tick:    s.tick,
		Time:    s.time,
		State:   s.Vehicle.State,
		Control: s.Vehicle.Control,
		Mode:    s.Follow.Mode(),
		Wheels:  slices.Clone(s.poses),
		Camera: CameraView{
			Focus:     s.Orbit.Focus,
			Eye:       s.Orbit.Eye(),
			Yaw:       s.Orbit.Yaw,
			Pitch:     s.Orbit.Pitch,
			Radius:    s.Orbit.Radius,
			TargetYaw: s.Orbit.TargetYaw,
		},
	}
}

// Tick returns the number of frames stepped so far.
func (s *Session) Tick() int64 {
	return s.tick
}

// Time returns the accumulated sim time in seconds.
func (s *Session) Time() float64 {
	return s.time
}

// Perf returns the per-phase timing collector.
func (s *Session) Perf() *telemetry.PerfCollector {
	return s.perf
}

// Spawn returns the respawn pose.
func (s *Session) Spawn() dynamics.State {
	return s.spawn
}
