package telemetry

import "github.com/pthm-cable/egodrive/angle"

// TrajectoryRow is one sampled tick of the vehicle path.
type TrajectoryRow struct {
	Tick          int64   `csv:"tick"`
	Time          float64 `csv:"time"`
	X             float64 `csv:"x"`
	Y             float64 `csv:"y"`
	YawDeg        float64 `csv:"yaw_deg"`
	Speed         float64 `csv:"speed"` // m/s
	Odometer      float64 `csv:"odometer"`
	Throttle      float64 `csv:"throttle"`
	Brake         float64 `csv:"brake"`
	FrontWheelDeg float64 `csv:"front_wheel_deg"`
	SteeringDeg   float64 `csv:"steering_wheel_deg"`
	Mode          string  `csv:"camera_mode"`
	Cue           string  `csv:"cue"`
}

// Row flattens an observation for CSV output.
func (o Observation) Row() TrajectoryRow {
	return TrajectoryRow{
		Tick:          o.Tick,
		Time:          o.Time,
		X:             o.X,
		Y:             o.Y,
		YawDeg:        angle.ToDeg(o.Yaw),
		Speed:         o.V,
		Odometer:      o.S,
		Throttle:      o.Throttle,
		Brake:         o.Brake,
		FrontWheelDeg: angle.ToDeg(o.FrontWheel),
		SteeringDeg:   angle.ToDeg(o.SteeringWheel),
		Mode:          o.Mode,
		Cue:           o.Cue,
	}
}

// Trajectory keeps every Nth observation. Respawns and camera toggles are
// always kept so the path shows discontinuities.
type Trajectory struct {
	every int64
	rows  []TrajectoryRow
}

// NewTrajectory creates a sampler keeping one row per every ticks.
func NewTrajectory(every int) *Trajectory {
	if every < 1 {
		every = 1
	}
	return &Trajectory{every: int64(every)}
}

// Sample records the observation if it falls on the sampling grid.
// Returns true when a row was kept.
func (t *Trajectory) Sample(o Observation) bool {
	if o.Tick%t.every != 0 && !o.Respawned && !o.CameraToggled {
		return false
	}
	t.rows = append(t.rows, o.Row())
	return true
}

// Drain returns the buffered rows and clears the buffer.
func (t *Trajectory) Drain() []TrajectoryRow {
	rows := t.rows
	t.rows = nil
	return rows
}

// Len returns the number of buffered rows.
func (t *Trajectory) Len() int {
	return len(t.rows)
}
