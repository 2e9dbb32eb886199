package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Vehicle.Wheelbase != 3.0 {
		t.Errorf("expected wheelbase 3.0, got %v", cfg.Vehicle.Wheelbase)
	}
	if cfg.Brake.Midpoint != 0.4 || cfg.Brake.Gain != 7.0 || cfg.Brake.StopThreshold != 0.2 {
		t.Errorf("unexpected brake defaults: %+v", cfg.Brake)
	}
	if cfg.Steering.Ratio != 15 || cfg.Steering.Omega0 != 12 {
		t.Errorf("unexpected steering defaults: %+v", cfg.Steering)
	}
	if math.Abs(cfg.Derived.MaxSteerAngle-35*math.Pi/180) > 1e-12 {
		t.Errorf("expected 35 deg steering lock in radians, got %v", cfg.Derived.MaxSteerAngle)
	}
	if cfg.Camera.ThirdPerson.YawDeg == nil || *cfg.Camera.ThirdPerson.YawDeg != 45 {
		t.Errorf("expected fixed third person yaw of 45 deg")
	}
	if cfg.Camera.FirstPerson.YawDeg != nil {
		t.Errorf("first person preset must not fix yaw")
	}
	if cfg.Camera.FocusOffset != [3]float64{3, 0, 0} {
		t.Errorf("unexpected focus offset %v", cfg.Camera.FocusOffset)
	}
	if cfg.Derived.StatsWindowTicks != 300 {
		t.Errorf("expected 300 ticks per stats window, got %d", cfg.Derived.StatsWindowTicks)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := "vehicle:\n  wheelbase: 2.5\nsteering:\n  max_angle_deg: 30\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}
	if cfg.Vehicle.Wheelbase != 2.5 {
		t.Errorf("expected overridden wheelbase 2.5, got %v", cfg.Vehicle.Wheelbase)
	}
	// Untouched keys keep their defaults
	if cfg.Vehicle.MaxSpeed != 33.3 {
		t.Errorf("expected default max speed, got %v", cfg.Vehicle.MaxSpeed)
	}
	if math.Abs(cfg.Derived.MaxSteerAngle-30*math.Pi/180) > 1e-12 {
		t.Errorf("derived steering lock not recomputed: %v", cfg.Derived.MaxSteerAngle)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := "vehicle:\n  wheelbase: 0\nwheels:\n  radius: -1\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, key := range []string{"vehicle.wheelbase", "wheels.radius"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("expected error to mention %s, got %v", key, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Vehicle.Wheelbase = 2.8

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if reloaded.Vehicle.Wheelbase != 2.8 {
		t.Errorf("expected wheelbase 2.8 after reload, got %v", reloaded.Vehicle.Wheelbase)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic from Cfg before Init")
		}
	}()
	Cfg()
}
