package input

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitize(t *testing.T) {
	f := Frame{
		Throttle:   1.7,
		Brake:      -0.2,
		Steer:      math.NaN(),
		OrbitYaw:   -4,
		OrbitPitch: 0.25,
		Zoom:       math.Inf(1),
		DT:         -0.016,
	}
	f.Sanitize()

	want := Frame{Throttle: 1, Brake: 0, Steer: 0, OrbitYaw: -1, OrbitPitch: 0.25}
	if f != want {
		t.Errorf("Sanitize() = %+v, want %+v", f, want)
	}
}

func TestSanitizeDT(t *testing.T) {
	testCases := []struct {
		dt, want float64
	}{
		{1.0 / 60, 1.0 / 60},
		{0, 0},
		{-1, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}

	for _, tc := range testCases {
		f := Frame{DT: tc.dt}
		f.Sanitize()
		if f.DT != tc.want {
			t.Errorf("dt=%v: expected %v, got %v", tc.dt, tc.want, f.DT)
		}
	}
}

func TestIdle(t *testing.T) {
	if !(Frame{DT: 0.1, OrbitYaw: 1}).Idle() {
		t.Error("orbit-only frame should count as idle")
	}
	if (Frame{CameraToggle: true}).Idle() {
		t.Error("camera toggle is a command")
	}
}

func TestLoadScript(t *testing.T) {
	s, err := LoadScript(filepath.Join("testdata", "slalom.yaml"))
	if err != nil {
		t.Fatalf("loading script: %v", err)
	}
	if s.Name != "slalom" || len(s.Segments) != 5 {
		t.Fatalf("unexpected script %+v", s)
	}
	if math.Abs(s.Duration()-8) > 1e-12 {
		t.Errorf("expected 8 s total, got %v", s.Duration())
	}

	dt := 0.1
	frames := s.Frames(dt)
	// 30 + 15 + 15 + 1 (zero-length toggle) + 20
	if len(frames) != 81 {
		t.Fatalf("expected 81 frames, got %d", len(frames))
	}

	toggles := 0
	for i, f := range frames {
		if f.DT != dt {
			t.Errorf("frame %d: expected dt %v, got %v", i, dt, f.DT)
		}
		if f.CameraToggle {
			toggles++
		}
	}
	if toggles != 2 {
		t.Errorf("expected 2 camera toggles, got %d", toggles)
	}
	if !frames[45].CameraToggle || frames[46].CameraToggle || !frames[60].CameraToggle {
		t.Errorf("toggles should fire on the first tick of their segments")
	}
	if frames[30].Steer != 1 || frames[80].Brake != 1 {
		t.Errorf("unexpected segment commands: %+v / %+v", frames[30], frames[80])
	}
}

func TestParseScriptErrors(t *testing.T) {
	testCases := map[string]string{
		"empty":     "name: nothing\n",
		"negative":  "segments:\n  - duration: -1\n",
		"malformed": "segments: [",
	}
	for name, data := range testCases {
		if _, err := ParseScript([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadScriptMissing(t *testing.T) {
	if _, err := LoadScript(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFramesSanitized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wild.yaml")
	if err := os.WriteFile(path, []byte("segments:\n  - duration: 0.5\n    throttle: 3\n    steer: -2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScript(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range s.Frames(0.1) {
		if f.Throttle != 1 || f.Steer != -1 {
			t.Fatalf("expected clamped commands, got %+v", f)
		}
	}
	if s.Frames(0) != nil {
		t.Error("expected no frames for zero dt")
	}
}

func TestDefaultScript(t *testing.T) {
	s := DefaultScript()
	if err := s.Validate(); err != nil {
		t.Fatalf("default script invalid: %v", err)
	}
	toggles := 0
	for _, f := range s.Frames(1.0 / 60) {
		if f.CameraToggle {
			toggles++
		}
	}
	// Three toggles walk through every mode and back
	if toggles != 3 {
		t.Errorf("expected 3 camera toggles, got %d", toggles)
	}
}
