package sim

import (
	"math"
	"testing"

	"github.com/pthm-cable/egodrive/camera"
	"github.com/pthm-cable/egodrive/config"
	"github.com/pthm-cable/egodrive/input"
	"github.com/pthm-cable/egodrive/sound"
	"github.com/pthm-cable/egodrive/telemetry"
)

const dt = 1.0 / 60

func newSession(t *testing.T) *Session {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	s, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	return s
}

func drive(s *Session, f input.Frame, ticks int) Snapshot {
	var snap Snapshot
	for i := 0; i < ticks; i++ {
		snap = s.Step(f)
	}
	return snap
}

func TestNewSession(t *testing.T) {
	s := newSession(t)

	snap := s.Snapshot()
	if snap.Tick != 0 || snap.Time != 0 {
		t.Errorf("expected fresh clock, got tick %d time %v", snap.Tick, snap.Time)
	}
	if snap.Mode != camera.ThirdPerson {
		t.Errorf("expected third person, got %v", snap.Mode)
	}
	if snap.State != s.Spawn() {
		t.Errorf("expected spawn state, got %+v", snap.State)
	}
	if got := snap.Camera.Focus; got.X != 0 || got.Y != 0 || math.Abs(got.Z-0.64) > 1e-12 {
		t.Errorf("expected focus on the spawn point, got %v", got)
	}
	if math.Abs(snap.Camera.Pitch+math.Pi/3) > 1e-9 || snap.Camera.Radius != 50 {
		t.Errorf("expected third person preset, got pitch %v radius %v", snap.Camera.Pitch, snap.Camera.Radius)
	}
	if len(snap.Wheels) != 4 {
		t.Errorf("expected 4 wheel poses, got %d", len(snap.Wheels))
	}
}

func TestNewSession_BadMode(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Camera.Mode = "cockpit"
	if _, err := NewSession(cfg); err == nil {
		t.Error("expected error for unknown camera mode")
	}
}

func TestStep_ThrottleAccelerates(t *testing.T) {
	s := newSession(t)

	snap := drive(s, input.Frame{Throttle: 1, DT: dt}, 60)

	if snap.Tick != 60 {
		t.Errorf("expected tick 60, got %d", snap.Tick)
	}
	if math.Abs(snap.Time-1) > 1e-9 {
		t.Errorf("expected 1s of sim time, got %v", snap.Time)
	}
	if snap.State.V <= 0 || snap.State.X <= 0 {
		t.Errorf("expected forward motion, got %+v", snap.State)
	}
	if snap.State.Y != 0 || snap.State.Yaw != 0 {
		t.Errorf("expected straight line, got %+v", snap.State)
	}
	if snap.DS <= 0 {
		t.Errorf("expected positive distance this tick, got %v", snap.DS)
	}
}

func TestStep_SteerLeftTurnsLeft(t *testing.T) {
	s := newSession(t)

	snap := drive(s, input.Frame{Throttle: 1, Steer: 1, DT: dt}, 120)

	if snap.Control.FrontWheelAngle <= 0 {
		t.Errorf("expected positive wheel angle, got %v", snap.Control.FrontWheelAngle)
	}
	if snap.State.Yaw <= 0 || snap.State.Y <= 0 {
		t.Errorf("expected a left turn, got %+v", snap.State)
	}
	if snap.YawRate <= 0 {
		t.Errorf("expected positive yaw rate, got %v", snap.YawRate)
	}
	if math.Abs(snap.Control.SteeringWheelAngle-snap.Control.FrontWheelAngle*s.Steering.Ratio) > 1e-12 {
		t.Errorf("steering wheel angle must follow the ratio")
	}
}

func TestStep_ZeroDTLeavesState(t *testing.T) {
	s := newSession(t)
	drive(s, input.Frame{Throttle: 1, DT: dt}, 30)
	before := s.Vehicle.State

	snap := s.Step(input.Frame{Throttle: 1, Steer: 1, DT: 0})

	if snap.State != before {
		t.Errorf("expected no motion for zero dt, got %+v want %+v", snap.State, before)
	}
	if snap.Control.FrontWheelAngle != 0 {
		t.Errorf("expected no steering for zero dt, got %v", snap.Control.FrontWheelAngle)
	}
	if snap.DT != 0 || snap.YawRate != 0 {
		t.Errorf("expected zero dt and yaw rate, got %v %v", snap.DT, snap.YawRate)
	}
}

func TestStep_NegativeDTSanitized(t *testing.T) {
	s := newSession(t)

	snap := s.Step(input.Frame{Throttle: 1, DT: -1})

	if snap.State != s.Spawn() {
		t.Errorf("expected no motion for negative dt, got %+v", snap.State)
	}
}

func TestStep_CameraToggleCycle(t *testing.T) {
	s := newSession(t)

	want := []camera.Mode{camera.FirstPerson, camera.OverShoulder, camera.ThirdPerson}
	for i, m := range want {
		snap := s.Step(input.Frame{CameraToggle: true, DT: dt})
		if !snap.Toggled {
			t.Errorf("toggle %d: expected Toggled flag", i)
		}
		if snap.Mode != m {
			t.Errorf("toggle %d: expected %v, got %v", i, m, snap.Mode)
		}
	}

	snap := s.Step(input.Frame{DT: dt})
	if snap.Toggled {
		t.Error("expected no toggle without a request")
	}
}

func TestSelectMode(t *testing.T) {
	s := newSession(t)

	if s.SelectMode(camera.ThirdPerson) {
		t.Error("expected no change when selecting the current mode")
	}
	if !s.SelectMode(camera.OverShoulder) {
		t.Error("expected a mode change")
	}
	if s.Follow.Mode() != camera.OverShoulder {
		t.Errorf("expected over shoulder, got %v", s.Follow.Mode())
	}
}

func TestStep_FirstPersonTracksHeading(t *testing.T) {
	s := newSession(t)

	s.Step(input.Frame{CameraToggle: true, DT: dt})
	snap := drive(s, input.Frame{DT: dt}, 300)

	if math.Abs(snap.Camera.TargetYaw+math.Pi/2) > 1e-9 {
		t.Errorf("expected target yaw -pi/2 behind a vehicle facing +X, got %v", snap.Camera.TargetYaw)
	}
	if math.Abs(snap.Camera.Yaw+math.Pi/2) > 1e-6 {
		t.Errorf("expected yaw to settle on target, got %v", snap.Camera.Yaw)
	}
	if math.Abs(snap.Camera.Focus.X-3) > 1e-6 || math.Abs(snap.Camera.Focus.Z-0.64) > 1e-6 {
		t.Errorf("expected focus 3m ahead at 0.64m, got %v", snap.Camera.Focus)
	}
	if math.Abs(snap.Camera.Radius-2) > 1e-6 {
		t.Errorf("expected first person radius, got %v", snap.Camera.Radius)
	}
}

func TestStep_OrbitOnlyInThirdPerson(t *testing.T) {
	s := newSession(t)

	before := s.Orbit.TargetYaw
	s.Step(input.Frame{OrbitYaw: 1, DT: dt})
	if s.Orbit.TargetYaw == before {
		t.Error("expected manual orbit to move the target yaw in third person")
	}

	s.Step(input.Frame{CameraToggle: true, DT: dt})
	target := s.Orbit.TargetYaw
	s.Step(input.Frame{OrbitYaw: 1, DT: dt})
	if s.Orbit.TargetYaw != target {
		t.Errorf("expected manual orbit to be ignored in first person, got %v want %v", s.Orbit.TargetYaw, target)
	}
}

func TestStep_Zoom(t *testing.T) {
	s := newSession(t)

	s.Step(input.Frame{Zoom: 0.5, DT: dt})
	if s.Orbit.TargetRadius != 25 {
		t.Errorf("expected target radius 25, got %v", s.Orbit.TargetRadius)
	}
}

func TestRespawn(t *testing.T) {
	s := newSession(t)
	drive(s, input.Frame{Throttle: 1, Steer: 1, DT: dt}, 120)
	s.Step(input.Frame{CameraToggle: true, DT: dt})

	snap := s.Step(input.Frame{Respawn: true, DT: dt})

	if !snap.Respawned {
		t.Error("expected Respawned flag")
	}
	if snap.State != s.Spawn() {
		t.Errorf("expected spawn state, got %+v", snap.State)
	}
	if snap.Control.FrontWheelAngle != 0 || snap.Control.Throttle != 0 {
		t.Errorf("expected neutral controls, got %+v", snap.Control)
	}
	if snap.Mode != camera.FirstPerson {
		t.Errorf("expected camera mode to survive respawn, got %v", snap.Mode)
	}
	if snap.Camera.Focus.Y != 0 || math.Abs(snap.Camera.Focus.X-3) > 1e-12 {
		t.Errorf("expected focus snapped to the spawn point, got %v", snap.Camera.Focus)
	}
	if snap.Tick != 122 {
		t.Errorf("expected the clock to keep running, got tick %d", snap.Tick)
	}
}

func TestStep_CueEntry(t *testing.T) {
	s := newSession(t)

	snap := s.Step(input.Frame{Throttle: 1, DT: dt})
	if snap.Cue != sound.Throttle || !snap.CueEntered {
		t.Errorf("expected throttle cue entry, got %v entered=%v", snap.Cue, snap.CueEntered)
	}

	snap = s.Step(input.Frame{Throttle: 1, DT: dt})
	if snap.CueEntered {
		t.Error("expected no re-entry while holding throttle")
	}

	snap = s.Step(input.Frame{Brake: 1, DT: dt})
	if snap.Cue != sound.Normal || !snap.CueEntered {
		t.Errorf("expected normal cue below brake speed, got %v entered=%v", snap.Cue, snap.CueEntered)
	}
}

func TestStep_OnTick(t *testing.T) {
	s := newSession(t)

	var got []int64
	s.OnTick = func(snap Snapshot) {
		got = append(got, snap.Tick)
	}
	drive(s, input.Frame{DT: dt}, 3)

	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("expected ticks 1..3, got %v", got)
	}
}

func TestSnapshot_Observation(t *testing.T) {
	s := newSession(t)
	snap := drive(s, input.Frame{Throttle: 1, DT: dt}, 10)

	o := snap.Observation()

	if o.Tick != 10 || o.V != snap.State.V || o.Throttle != 1 {
		t.Errorf("unexpected observation %+v", o)
	}
	if o.Mode != "third_person" || o.Cue != "throttle" {
		t.Errorf("unexpected labels %q %q", o.Mode, o.Cue)
	}
}

func TestSaveRestore(t *testing.T) {
	s := newSession(t)
	drive(s, input.Frame{Throttle: 1, Steer: 0.5, DT: dt}, 90)
	s.Step(input.Frame{CameraToggle: true, DT: dt})
	want := s.Vehicle

	b := &telemetry.Bookmark{Type: telemetry.BookmarkTopSpeed, Tick: s.Tick()}
	path, err := WriteSave(s.Save(b), t.TempDir())
	if err != nil {
		t.Fatalf("writing save: %v", err)
	}

	save, err := ReadSave(path)
	if err != nil {
		t.Fatalf("reading save: %v", err)
	}
	if save.Bookmark == nil || save.Bookmark.Type != telemetry.BookmarkTopSpeed {
		t.Errorf("expected bookmark to round trip, got %+v", save.Bookmark)
	}

	restored := newSession(t)
	if err := restored.Restore(save); err != nil {
		t.Fatalf("restoring: %v", err)
	}
	if restored.Vehicle != want {
		t.Errorf("expected vehicle %+v, got %+v", want, restored.Vehicle)
	}
	if restored.Tick() != s.Tick() {
		t.Errorf("expected tick %d, got %d", s.Tick(), restored.Tick())
	}
	if restored.Follow.Mode() != camera.FirstPerson {
		t.Errorf("expected first person, got %v", restored.Follow.Mode())
	}
}

func TestRestore_RejectsVersion(t *testing.T) {
	s := newSession(t)
	save := s.Save(nil)
	save.Version = SaveVersion + 1

	if err := s.Restore(save); err == nil {
		t.Error("expected version error")
	}
}

func TestSnapshotUnits(t *testing.T) {
	snap := Snapshot{}
	snap.State.Yaw = -math.Pi / 2
	snap.State.V = 10
	snap.State.S = 2500

	if got := snap.HeadingDeg(); math.Abs(got+90) > 1e-12 {
		t.Errorf("HeadingDeg() = %v, want -90", got)
	}
	if got := snap.SpeedKmh(); math.Abs(got-36) > 1e-12 {
		t.Errorf("SpeedKmh() = %v, want 36", got)
	}
	if got := snap.OdometerKm(); got != 2.5 {
		t.Errorf("OdometerKm() = %v, want 2.5", got)
	}
}

func TestStep_RecordsPerf(t *testing.T) {
	s := newSession(t)
	for i := 0; i < 5; i++ {
		s.Step(input.Frame{Throttle: 1, DT: dt})
	}

	stats := s.Perf().Stats()
	if stats.Ticks != 5 {
		t.Fatalf("expected 5 timed ticks, got %d", stats.Ticks)
	}
	if stats.AvgTick > 0 && stats.RealTimeFactor <= 0 {
		t.Errorf("expected positive realtime factor, got %v", stats.RealTimeFactor)
	}
}
