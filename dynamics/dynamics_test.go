package dynamics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/egodrive/control"
)

const tol = 1e-9

func TestStraightLineTick(t *testing.T) {
	m := NewBicycle(control.DefaultCurves())
	s := State{V: 10}
	in := control.Input{}

	d := m.Derivative(s, in)
	if math.Abs(d.DX*0.1-1.0) > tol {
		t.Errorf("expected dx*dt = 1.0, got %v", d.DX*0.1)
	}
	if d.DYaw != 0 {
		t.Errorf("expected zero yaw rate, got %v", d.DYaw)
	}

	m.Step(&s, in, 0.1)
	if math.Abs(s.X-1.0) > tol || math.Abs(s.Y) > tol {
		t.Errorf("expected position (1, 0), got (%v, %v)", s.X, s.Y)
	}
	if s.Yaw != 0 {
		t.Errorf("expected yaw 0, got %v", s.Yaw)
	}
	if math.Abs(s.S-1.0) > tol {
		t.Errorf("expected odometer 1.0, got %v", s.S)
	}
	// Coasting at 10 m/s: no throttle, no brake, so speed holds
	if s.V != 10 {
		t.Errorf("expected speed unchanged, got %v", s.V)
	}
}

func TestZeroDtIsNoOp(t *testing.T) {
	m := NewBicycle(control.DefaultCurves())
	start := State{X: 3, Y: -2, Yaw: 1.2, V: 7, S: 40}
	in := control.Input{Throttle: 1, FrontWheelAngle: 0.3}

	for _, dt := range []float64{0, -0.1, math.NaN()} {
		s := start
		m.Step(&s, in, dt)
		if s != start {
			t.Errorf("dt=%v: expected unchanged state, got %+v", dt, s)
		}
	}
}

func TestYawStaysNormalized(t *testing.T) {
	m := NewBicycle(control.DefaultCurves())
	s := State{V: 15}
	in := control.Input{FrontWheelAngle: 0.5}

	for i := 0; i < 5000; i++ {
		m.Step(&s, in, 1.0/60)
		if s.Yaw <= -math.Pi || s.Yaw > math.Pi {
			t.Fatalf("tick %d: yaw %v outside (-pi, pi]", i, s.Yaw)
		}
	}
}

func TestTurningCircle(t *testing.T) {
	// Constant speed and steering traces a circle of radius L/tan(delta)
	m := NewBicycle(control.DefaultCurves())
	m.MaxStep = 0.001
	delta := 0.2
	s := State{V: 5}
	in := control.Input{FrontWheelAngle: delta}

	radius := m.Wheelbase / math.Tan(delta)
	period := 2 * math.Pi * radius / s.V
	ticks := 600
	for i := 0; i < ticks; i++ {
		m.Step(&s, in, period/float64(ticks))
	}

	// Back near the start after one revolution
	if math.Hypot(s.X, s.Y) > 0.05*radius {
		t.Errorf("expected to return near origin, got (%v, %v)", s.X, s.Y)
	}
	if math.Abs(s.S-2*math.Pi*radius) > 1e-6 {
		t.Errorf("expected odometer %v, got %v", 2*math.Pi*radius, s.S)
	}
}

func TestSubsteps(t *testing.T) {
	m := NewBicycle(control.DefaultCurves())
	if n := m.substeps(0.5); n != 1 {
		t.Errorf("expected single step without MaxStep, got %d", n)
	}

	m.MaxStep = 0.01
	testCases := []struct {
		dt   float64
		want int
	}{
		{0.005, 1},
		{0.01, 1},
		{0.05, 5},
		{0.051, 6},
	}
	for _, tc := range testCases {
		if n := m.substeps(tc.dt); n != tc.want {
			t.Errorf("substeps(%v) = %d, want %d", tc.dt, n, tc.want)
		}
	}
}

func TestBrakingStopsWithoutReversing(t *testing.T) {
	m := NewBicycle(control.DefaultCurves())
	s := State{V: 20}
	in := control.Input{Brake: 1}

	for i := 0; i < 60*20; i++ {
		m.Step(&s, in, 1.0/60)
	}
	if s.V < 0 {
		t.Errorf("expected braking to settle at standstill, got v=%v", s.V)
	}
	if s.V > 0.2 {
		t.Errorf("expected vehicle nearly stopped, got v=%v", s.V)
	}
}

func TestRollAngle(t *testing.T) {
	testCases := []struct {
		s, want float64
	}{
		{0, 0},
		{DefaultWheelRadius, 1},
		{DefaultWheelRadius * 2 * math.Pi, 0},
		{-DefaultWheelRadius, 2*math.Pi - 1},
	}

	for _, tc := range testCases {
		got := RollAngle(tc.s, DefaultWheelRadius)
		if math.Abs(got-tc.want) > 1e-9 && math.Abs(got-tc.want-2*math.Pi) > 1e-9 && math.Abs(got-tc.want+2*math.Pi) > 1e-9 {
			t.Errorf("RollAngle(%v) = %v, want %v", tc.s, got, tc.want)
		}
		if got < 0 || got > 2*math.Pi {
			t.Errorf("RollAngle(%v) = %v outside [0, 2pi]", tc.s, got)
		}
	}
}

func vecClose(a, b r3.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9 && math.Abs(a.Z-b.Z) < 1e-9
}

func TestWheelPosesSteerOnlyFront(t *testing.T) {
	mounts := DefaultMounts()
	poses := WheelPoses(mounts, 0, 0.3, DefaultWheelRadius)

	if len(poses) != 4 {
		t.Fatalf("expected 4 poses, got %d", len(poses))
	}

	for i, p := range poses {
		if p.Mount != i {
			t.Errorf("pose %d has mount index %d", i, p.Mount)
		}
		if mounts[i].Steering && p.Steer != 0.3 {
			t.Errorf("%s: expected steer 0.3, got %v", mounts[i].Name, p.Steer)
		}
		if !mounts[i].Steering {
			if p.Steer != 0 {
				t.Errorf("%s: expected no steer, got %v", mounts[i].Name, p.Steer)
			}
			// With zero roll, a rear wheel keeps its rest orientation
			probe := r3.Vec{X: 1, Y: 2, Z: 3}
			if !vecClose(p.Rotation.Rotate(probe), mounts[i].Init.Rotate(probe)) {
				t.Errorf("%s: expected rest orientation at zero roll", mounts[i].Name)
			}
		}
	}

	// The steered front-left axle swings by delta about the vertical axis
	axle := r3.Vec{Y: 1} // wheel-model axle before the mount rotation
	rest := mounts[0].Init.Rotate(axle)
	got := poses[0].Rotation.Rotate(axle)
	want := r3.NewRotation(0.3, r3.Vec{Y: 1}).Rotate(rest)
	if !vecClose(got, want) {
		t.Errorf("front-left axle = %+v, want %+v", got, want)
	}
}

func TestWheelPosesRollKeepsAxle(t *testing.T) {
	mounts := DefaultMounts()
	axle := r3.Vec{Y: 1}

	for _, s := range []float64{0.1, 1.7, 12.3} {
		poses := WheelPoses(mounts, s, 0, DefaultWheelRadius)
		for i, p := range poses {
			// Rolling spins about the axle, so the axle direction is unchanged
			rest := mounts[i].Init.Rotate(axle)
			if !vecClose(p.Rotation.Rotate(axle), rest) {
				t.Errorf("s=%v %s: axle moved while rolling", s, mounts[i].Name)
			}
			if math.Abs(p.Roll-RollAngle(s, DefaultWheelRadius)) > 1e-12 {
				t.Errorf("s=%v: unexpected roll %v", s, p.Roll)
			}
		}
	}
}
