// Package telemetry provides drive statistics, bookmarks, performance timing
// and CSV/plot output.
package telemetry

// Observation is the per-tick record the collector consumes.
type Observation struct {
	Tick int64
	Time float64 // sim seconds at the end of the tick

	X, Y, Yaw float64
	V         float64 // m/s
	S         float64 // m, odometer
	DS        float64 // m travelled this tick
	YawRate   float64 // rad/s

	Throttle, Brake float64
	FrontWheel      float64 // rad
	SteeringWheel   float64 // rad

	Mode string
	Cue  string

	CameraToggled bool
	Respawned     bool
	CueEntered    bool
}

// Collector accumulates observations within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	// Current window tracking
	windowStartTick int64

	// Per-tick samples for the current window
	speeds   []float64
	yawRates []float64

	// Event counters for current window
	throttleTicks int
	brakeTicks    int
	distance      float64
	toggles       int
	respawns      int
	cueEntries    int
	lastMode      string
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(1)
	if dt > 0 {
		if n := int64(windowDurationSec/dt + 0.5); n > 1 {
			ticksPerWindow = n
		}
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		speeds:              make([]float64, 0, ticksPerWindow),
		yawRates:            make([]float64, 0, ticksPerWindow),
	}
}

// Record adds one tick to the current window. Pedals count toward the duty
// cycle when pressed past half travel.
func (c *Collector) Record(o Observation) {
	c.speeds = append(c.speeds, o.V)
	c.yawRates = append(c.yawRates, o.YawRate)
	c.distance += o.DS

	if o.Throttle > 0.5 {
		c.throttleTicks++
	}
	if o.Brake > 0.5 {
		c.brakeTicks++
	}
	if o.CameraToggled {
		c.toggles++
	}
	if o.Respawned {
		c.respawns++
	}
	if o.CueEntered {
		c.cueEntries++
	}
	c.lastMode = o.Mode
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64) WindowStats {
	n := len(c.speeds)
	var throttleDuty, brakeDuty, endSpeed float64
	if n > 0 {
		throttleDuty = float64(c.throttleTicks) / float64(n)
		brakeDuty = float64(c.brakeTicks) / float64(n)
		endSpeed = c.speeds[n-1]
	}

	meanSpeed, maxSpeed, p50, p90 := ComputeSpeedStats(c.speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		Ticks:           n,

		MeanSpeed:  meanSpeed,
		MaxSpeed:   maxSpeed,
		SpeedP50:   p50,
		SpeedP90:   p90,
		EndSpeed:   endSpeed,
		Distance:   c.distance,
		YawRateStd: StdDev(c.yawRates),

		ThrottleDuty: throttleDuty,
		BrakeDuty:    brakeDuty,

		CameraToggles: c.toggles,
		Respawns:      c.respawns,
		CueEntries:    c.cueEntries,
		Mode:          c.lastMode,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.speeds = c.speeds[:0]
	c.yawRates = c.yawRates[:0]
	c.throttleTicks = 0
	c.brakeTicks = 0
	c.distance = 0
	c.toggles = 0
	c.respawns = 0
	c.cueEntries = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
