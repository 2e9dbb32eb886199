package input

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Segment holds constant commands for a stretch of a scripted drive.
type Segment struct {
	Duration     float64 `yaml:"duration"` // seconds
	Throttle     float64 `yaml:"throttle"`
	Brake        float64 `yaml:"brake"`
	Steer        float64 `yaml:"steer"`
	OrbitYaw     float64 `yaml:"orbit_yaw"`
	OrbitPitch   float64 `yaml:"orbit_pitch"`
	ToggleCamera bool    `yaml:"toggle_camera"` // fires on the segment's first tick
	Respawn      bool    `yaml:"respawn"`       // fires on the segment's first tick
}

// Script is a scripted drive played back at a fixed tick.
type Script struct {
	Name     string    `yaml:"name"`
	Segments []Segment `yaml:"segments"`
}

// LoadScript reads a YAML script from disk.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a YAML script.
func ParseScript(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script %q: %w", s.Name, err)
	}
	return s, nil
}

// Validate rejects empty scripts and unusable durations.
func (s *Script) Validate() error {
	if len(s.Segments) == 0 {
		return errors.New("no segments")
	}
	for i, seg := range s.Segments {
		if seg.Duration < 0 || math.IsNaN(seg.Duration) || math.IsInf(seg.Duration, 0) {
			return fmt.Errorf("segment %d: bad duration %v", i, seg.Duration)
		}
	}
	return nil
}

// Duration returns the total scripted time in seconds.
func (s *Script) Duration() float64 {
	total := 0.0
	for _, seg := range s.Segments {
		total += seg.Duration
	}
	return total
}

// Frames expands the script into sanitized frames of length dt. Each segment
// lasts round(duration/dt) ticks; a zero-length segment still yields one
// tick when it carries a camera toggle or respawn.
func (s *Script) Frames(dt float64) []Frame {
	if !(dt > 0) {
		return nil
	}
	var frames []Frame
	for _, seg := range s.Segments {
		n := int(math.Round(seg.Duration / dt))
		if n == 0 && (seg.ToggleCamera || seg.Respawn) {
			n = 1
		}
		for i := 0; i < n; i++ {
			f := Frame{
				Throttle:   seg.Throttle,
				Brake:      seg.Brake,
				Steer:      seg.Steer,
				OrbitYaw:   seg.OrbitYaw,
				OrbitPitch: seg.OrbitPitch,
				DT:         dt,
			}
			if i == 0 {
				f.CameraToggle = seg.ToggleCamera
				f.Respawn = seg.Respawn
			}
			f.Sanitize()
			frames = append(frames, f)
		}
	}
	return frames
}

// DefaultScript is a short drive touching every camera mode: launch, a
// left-hand sweep, hard braking and a respawn.
func DefaultScript() *Script {
	return &Script{
		Name: "default",
		Segments: []Segment{
			{Duration: 4, Throttle: 1},
			{Duration: 3, Throttle: 0.6, Steer: 0.4, ToggleCamera: true},
			{Duration: 3, Throttle: 0.6, Steer: -0.6},
			{Duration: 2, Throttle: 1, ToggleCamera: true},
			{Duration: 4, Brake: 1},
			{Duration: 2, OrbitYaw: 0.5, ToggleCamera: true},
			{Duration: 1, Respawn: true},
		},
	}
}
