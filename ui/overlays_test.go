package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayDefaults(t *testing.T) {
	r := NewOverlayRegistry()

	got := r.EnabledOverlays()
	if len(got) != 2 || got[0] != OverlayGrid || got[1] != OverlayAxes {
		t.Errorf("expected grid and axes on at startup, got %v", got)
	}
	if len(r.All()) != int(numOverlays) {
		t.Errorf("expected %d overlays, got %d", numOverlays, len(r.All()))
	}
	if n := len(r.Group(false)) + len(r.Group(true)); n != int(numOverlays) {
		t.Errorf("groups cover %d overlays, want %d", n, numOverlays)
	}
}

func TestOverlayToggle(t *testing.T) {
	r := NewOverlayRegistry()

	if !r.Toggle(OverlayTrail) || !r.IsEnabled(OverlayTrail) {
		t.Error("expected trail on after toggle")
	}
	if r.Toggle(OverlayTrail) || r.IsEnabled(OverlayTrail) {
		t.Error("expected trail off after second toggle")
	}
	if r.Toggle(numOverlays) || r.IsEnabled(numOverlays) {
		t.Error("unknown overlay must stay off")
	}
}

func TestOverlayHandleKeys(t *testing.T) {
	r := NewOverlayRegistry()

	pressed := map[int32]bool{rl.KeyG: true, rl.KeyF3: true}
	toggled := r.HandleKeys(func(key int32) bool { return pressed[key] })

	if len(toggled) != 2 || toggled[0] != OverlayGrid || toggled[1] != OverlayPerf {
		t.Fatalf("expected grid and perf toggled, got %v", toggled)
	}
	if r.IsEnabled(OverlayGrid) || !r.IsEnabled(OverlayPerf) {
		t.Errorf("expected grid off and perf on, got grid=%v perf=%v", r.IsEnabled(OverlayGrid), r.IsEnabled(OverlayPerf))
	}

	if toggled := r.HandleKeys(func(int32) bool { return false }); len(toggled) != 0 {
		t.Errorf("expected nothing toggled, got %v", toggled)
	}
}

func TestAnchorOrigin(t *testing.T) {
	testCases := []struct {
		anchor PanelAnchor
		x, y   int32
	}{
		{AnchorTopLeft, 10, 10},
		{AnchorTopRight, 1280 - 280 - 10, 10},
		{AnchorBottomLeft, 10, 720 - 200 - 10},
		{AnchorBottomRight, 1280 - 280 - 10, 720 - 200 - 10},
	}

	for _, tc := range testCases {
		x, y := anchorOrigin(tc.anchor, 280, 200, 1280, 720, 10)
		if x != tc.x || y != tc.y {
			t.Errorf("anchor %d: got (%d, %d), want (%d, %d)", tc.anchor, x, y, tc.x, tc.y)
		}
	}
}

func TestFieldText(t *testing.T) {
	num := FieldDescriptor{Format: "%.1f m", Value: func(any) float32 { return 2.25 }}
	if got := num.text(nil); got != "2.2 m" && got != "2.3 m" {
		t.Errorf("unexpected formatted value %q", got)
	}

	txt := FieldDescriptor{Format: "%.1f", Value: func(any) float32 { return 1 }, Text: func(any) string { return "first" }}
	if got := txt.text(nil); got != "first" {
		t.Errorf("expected text readout to win, got %q", got)
	}

	if got := (FieldDescriptor{}).text(nil); got != "" {
		t.Errorf("expected empty readout, got %q", got)
	}
}
