// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/egodrive/angle"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Vehicle   VehicleConfig   `yaml:"vehicle"`
	Brake     BrakeConfig     `yaml:"brake"`
	Steering  SteeringConfig  `yaml:"steering"`
	Wheels    WheelsConfig    `yaml:"wheels"`
	Dynamics  DynamicsConfig  `yaml:"dynamics"`
	Camera    CameraConfig    `yaml:"camera"`
	Sound     SoundConfig     `yaml:"sound"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// VehicleConfig holds body geometry, longitudinal limits and the spawn pose.
type VehicleConfig struct {
	Wheelbase   float64 `yaml:"wheelbase"` // m
	MaxAccel    float64 `yaml:"max_accel"` // m/s^2
	MaxSpeed    float64 `yaml:"max_speed"` // m/s
	SpawnX      float64 `yaml:"spawn_x"`
	SpawnY      float64 `yaml:"spawn_y"`
	SpawnYawDeg float64 `yaml:"spawn_yaw_deg"`
}

// BrakeConfig holds the brake S-curve parameters.
type BrakeConfig struct {
	Midpoint      float64 `yaml:"midpoint"`
	Gain          float64 `yaml:"gain"`
	StopThreshold float64 `yaml:"stop_threshold"` // m/s
}

// SteeringConfig holds the speed-dependent steering rate parameters.
type SteeringConfig struct {
	OmegaMin    float64 `yaml:"omega_min"` // rad/s
	Omega0      float64 `yaml:"omega0"`    // rad/s
	Lambda      float64 `yaml:"lambda"`
	RefSpeed    float64 `yaml:"ref_speed"` // m/s
	Ratio       float64 `yaml:"ratio"`
	MaxAngleDeg float64 `yaml:"max_angle_deg"`
}

// WheelsConfig holds wheel visual parameters.
type WheelsConfig struct {
	Radius float64 `yaml:"radius"` // m
}

// DynamicsConfig holds integrator parameters.
type DynamicsConfig struct {
	DT      float64 `yaml:"dt"`       // fixed tick for headless runs
	MaxStep float64 `yaml:"max_step"` // 0 = one Euler step per tick
}

// PresetConfig holds the spherical targets for one camera mode.
// A nil YawDeg leaves the yaw to the heading follower.
type PresetConfig struct {
	YawDeg   *float64 `yaml:"yaw_deg,omitempty"`
	PitchDeg float64  `yaml:"pitch_deg"`
	Radius   float64  `yaml:"radius"`
}

// CameraConfig holds follow camera parameters.
type CameraConfig struct {
	Mode         string       `yaml:"mode"`
	Smoothness   float64      `yaml:"smoothness"`
	MinRadius    float64      `yaml:"min_radius"`
	MaxRadius    float64      `yaml:"max_radius"`
	FocusHeight  float64      `yaml:"focus_height"`
	FocusOffset  [3]float64   `yaml:"focus_offset,flow"` // vehicle frame: forward, left, up
	OrbitRateDeg float64      `yaml:"orbit_rate_deg"`
	ZoomStep     float64      `yaml:"zoom_step"`
	ThirdPerson  PresetConfig `yaml:"third_person"`
	FirstPerson  PresetConfig `yaml:"first_person"`
	OverShoulder PresetConfig `yaml:"over_shoulder"`
}

// SoundConfig holds audio cue parameters.
type SoundConfig struct {
	Enabled        bool    `yaml:"enabled"`
	ThrottlePath   string  `yaml:"throttle_path"`
	BrakePath      string  `yaml:"brake_path"`
	PedalThreshold float64 `yaml:"pedal_threshold"`
	BrakeMinSpeed  float64 `yaml:"brake_min_speed"` // m/s
	Volume         float64 `yaml:"volume"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds of sim time
	SampleEvery         int     `yaml:"sample_every"` // ticks between trajectory rows
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32             float32 // Dynamics.DT as float32
	ScreenW32        float32 // Screen.Width as float32
	ScreenH32        float32 // Screen.Height as float32
	SpawnYaw         float64 // rad
	MaxSteerAngle    float64 // rad
	OrbitRate        float64 // rad/s
	StatsWindowTicks int     // StatsWindow / DT, at least 1
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns the embedded default configuration with derived values set.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("vehicle.wheelbase", c.Vehicle.Wheelbase)
	positive("vehicle.max_speed", c.Vehicle.MaxSpeed)
	positive("brake.stop_threshold", c.Brake.StopThreshold)
	positive("steering.ratio", c.Steering.Ratio)
	positive("steering.max_angle_deg", c.Steering.MaxAngleDeg)
	positive("wheels.radius", c.Wheels.Radius)
	positive("dynamics.dt", c.Dynamics.DT)
	positive("camera.min_radius", c.Camera.MinRadius)
	positive("telemetry.stats_window", c.Telemetry.StatsWindow)

	if c.Vehicle.MaxAccel < 0 {
		errs = append(errs, fmt.Errorf("vehicle.max_accel must not be negative, got %v", c.Vehicle.MaxAccel))
	}
	if c.Steering.MaxAngleDeg >= 90 {
		errs = append(errs, fmt.Errorf("steering.max_angle_deg must be below 90, got %v", c.Steering.MaxAngleDeg))
	}
	if c.Dynamics.MaxStep < 0 {
		errs = append(errs, fmt.Errorf("dynamics.max_step must not be negative, got %v", c.Dynamics.MaxStep))
	}
	if c.Camera.MaxRadius <= c.Camera.MinRadius {
		errs = append(errs, fmt.Errorf("camera.max_radius (%v) must exceed min_radius (%v)", c.Camera.MaxRadius, c.Camera.MinRadius))
	}
	if c.Telemetry.SampleEvery < 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_every must be at least 1, got %d", c.Telemetry.SampleEvery))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Dynamics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.SpawnYaw = angle.Deg(c.Vehicle.SpawnYawDeg)
	c.Derived.MaxSteerAngle = angle.Deg(c.Steering.MaxAngleDeg)
	c.Derived.OrbitRate = angle.Deg(c.Camera.OrbitRateDeg)

	c.Derived.StatsWindowTicks = 1
	if c.Dynamics.DT > 0 {
		if n := int(math.Round(c.Telemetry.StatsWindow / c.Dynamics.DT)); n > 1 {
			c.Derived.StatsWindowTicks = n
		}
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
