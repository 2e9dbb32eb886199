package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/egodrive/camera"
	"github.com/pthm-cable/egodrive/dynamics"
	"github.com/pthm-cable/egodrive/telemetry"
)

// SaveVersion is incremented when the format changes.
const SaveVersion = 1

// SaveState holds enough of a session to resume a drive.
type SaveState struct {
	Version int `json:"version"`

	Tick int64   `json:"tick"`
	Time float64 `json:"time"`

	Vehicle VehicleState `json:"vehicle"`
	Mode    string       `json:"camera_mode"`

	Bookmark *telemetry.Bookmark `json:"bookmark,omitempty"`
}

// VehicleState is the JSON form of the vehicle.
type VehicleState struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Yaw   float64 `json:"yaw"`
	Speed float64 `json:"speed"`
	Odo   float64 `json:"odometer"`

	Throttle   float64 `json:"throttle"`
	Brake      float64 `json:"brake"`
	FrontWheel float64 `json:"front_wheel"`
	Steering   float64 `json:"steering_wheel"`
}

// Save captures the session, optionally tagged with a bookmark.
func (s *Session) Save(b *telemetry.Bookmark) *SaveState {
	st, in := s.Vehicle.State, s.Vehicle.Control
	return &SaveState{
		Version: SaveVersion,
		Tick:    s.tick,
		Time:    s.time,
		Vehicle: VehicleState{
			X:          st.X,
			Y:          st.Y,
			Yaw:        st.Yaw,
			Speed:      st.V,
			Odo:        st.S,
			Throttle:   in.Throttle,
			Brake:      in.Brake,
			FrontWheel: in.FrontWheelAngle,
			Steering:   in.SteeringWheelAngle,
		},
		Mode:     s.Follow.Mode().String(),
		Bookmark: b,
	}
}

// Restore replaces the session state with a saved one and snaps the camera.
func (s *Session) Restore(save *SaveState) error {
	if save.Version != SaveVersion {
		return fmt.Errorf("unsupported save version %d", save.Version)
	}
	mode, err := camera.ParseMode(save.Mode)
	if err != nil {
		return err
	}

	v := save.Vehicle
	s.Vehicle.State = dynamics.State{X: v.X, Y: v.Y, Yaw: v.Yaw, V: v.Speed, S: v.Odo}
	s.Vehicle.Control.SetPedals(v.Throttle, v.Brake)
	s.Vehicle.Control.FrontWheelAngle = clampAbs(v.FrontWheel, s.Steering.MaxAngle)
	s.Vehicle.Control.SteeringWheelAngle = s.Vehicle.Control.FrontWheelAngle * s.Steering.Ratio
	s.tick = save.Tick
	s.time = save.Time

	s.Follow.SetMode(mode, s.Orbit)
	s.Tracker.Reset()
	s.settleCamera()
	dynamics.FillWheelPoses(s.poses, s.Mounts, s.Vehicle.State.S, s.Vehicle.Control.FrontWheelAngle, s.WheelRadius)
	return nil
}

func clampAbs(x, limit float64) float64 {
	if x > limit {
		return limit
	}
	if x < -limit {
		return -limit
	}
	return x
}

// WriteSave writes a save to dir and returns its path.
func WriteSave(save *SaveState, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}

	name := fmt.Sprintf("save_%d", save.Tick)
	if save.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(save.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("save_%d_%s", save.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(save, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal save: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write save: %w", err)
	}
	return path, nil
}

// ReadSave reads a save from disk.
func ReadSave(path string) (*SaveState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}

	var save SaveState
	if err := json.Unmarshal(data, &save); err != nil {
		return nil, fmt.Errorf("unmarshal save: %w", err)
	}
	return &save, nil
}
