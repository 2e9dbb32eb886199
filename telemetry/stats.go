package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Ticks           int     `csv:"ticks"`

	// Motion
	MeanSpeed  float64 `csv:"mean_speed"` // m/s
	MaxSpeed   float64 `csv:"max_speed"`
	SpeedP50   float64 `csv:"speed_p50"`
	SpeedP90   float64 `csv:"speed_p90"`
	EndSpeed   float64 `csv:"end_speed"` // at window end
	Distance   float64 `csv:"distance"`     // m travelled in the window
	YawRateStd float64 `csv:"yaw_rate_std"` // rad/s

	// Pedal duty cycles (fraction of ticks past half travel)
	ThrottleDuty float64 `csv:"throttle_duty"`
	BrakeDuty    float64 `csv:"brake_duty"`

	// Events during window
	CameraToggles int    `csv:"camera_toggles"`
	Respawns      int    `csv:"respawns"`
	CueEntries    int    `csv:"cue_entries"`
	Mode          string `csv:"camera_mode"` // at window end
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats calculates mean, max and percentiles from speed samples.
func ComputeSpeedStats(values []float64) (mean, max, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	max = floats.Max(values)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, max, p50, p90
}

// StdDev returns the population standard deviation, 0 for fewer than two
// samples.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return math.Sqrt(stat.PopVariance(values, nil))
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("ticks", s.Ticks),
		slog.Float64("mean_speed", s.MeanSpeed),
		slog.Float64("max_speed", s.MaxSpeed),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("end_speed", s.EndSpeed),
		slog.Float64("distance", s.Distance),
		slog.Float64("yaw_rate_std", s.YawRateStd),
		slog.Float64("throttle_duty", s.ThrottleDuty),
		slog.Float64("brake_duty", s.BrakeDuty),
		slog.Int("camera_toggles", s.CameraToggles),
		slog.Int("respawns", s.Respawns),
		slog.Int("cue_entries", s.CueEntries),
		slog.String("camera_mode", s.Mode),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
