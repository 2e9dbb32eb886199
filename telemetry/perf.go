package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one stage of a session tick.
type Phase uint8

// Tick phases, in the order the session runs them.
const (
	PhaseInput Phase = iota
	PhaseControl
	PhaseIntegrate
	PhaseWheels
	PhaseCamera
	PhaseAudio
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{
	PhaseInput:     "input",
	PhaseControl:   "control",
	PhaseIntegrate: "integrate",
	PhaseWheels:    "wheels",
	PhaseCamera:    "camera",
	PhaseAudio:     "audio",
	PhaseTelemetry: "telemetry",
}

// Phases lists every phase in tick order.
var Phases = []Phase{
	PhaseInput, PhaseControl, PhaseIntegrate, PhaseWheels,
	PhaseCamera, PhaseAudio, PhaseTelemetry,
}

func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// tickTiming is the cost of one tick and the sim time it advanced.
type tickTiming struct {
	wall   time.Duration
	sim    float64 // seconds
	phases [numPhases]time.Duration
}

func (t *tickTiming) add(o tickTiming, sign time.Duration) {
	t.wall += sign * o.wall
	t.sim += float64(sign) * o.sim
	for i := range t.phases {
		t.phases[i] += sign * o.phases[i]
	}
}

// PerfCollector times the phases of the last N ticks. Totals over the
// window are kept incrementally; Stats only scans for the extremes.
type PerfCollector struct {
	window []tickTiming
	next   int
	count  int
	total  tickTiming

	cur     tickTiming
	start   time.Time
	mark    time.Time
	phase   Phase
	inPhase bool

	lastFrame time.Time
	frame     time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		window: make([]tickTiming, windowSize),
		now:    time.Now,
	}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.start = p.now()
	p.mark = p.start
	p.cur = tickTiming{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing ph.
// A phase entered twice in one tick accumulates.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = ph
	p.inPhase = ph < numPhases
	p.mark = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.phases[p.phase] += now.Sub(p.mark)
	}
	p.inPhase = false
}

// EndTick records the tick. simDT is the simulated time it advanced.
func (p *PerfCollector) EndTick(simDT float64) {
	now := p.now()
	p.closePhase(now)
	p.cur.wall = now.Sub(p.start)
	p.cur.sim = simDT

	if p.count == len(p.window) {
		p.total.add(p.window[p.next], -1)
	} else {
		p.count++
	}
	p.window[p.next] = p.cur
	p.total.add(p.cur, 1)
	p.next = (p.next + 1) % len(p.window)
}

// RecordFrame marks a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the window.
type PerfStats struct {
	Ticks int

	AvgTick time.Duration
	MinTick time.Duration
	MaxTick time.Duration

	// Per-phase average cost and share of the average tick, indexed by Phase.
	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64

	TicksPerSecond float64

	// RealTimeFactor is simulated seconds per second spent ticking. Below 1
	// the loop cannot keep up with real time.
	RealTimeFactor float64

	Frame time.Duration
	FPS   float64
}

// Stats computes the window summary.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Ticks: p.count, Frame: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	n := time.Duration(p.count)
	s.AvgTick = p.total.wall / n
	s.MinTick, s.MaxTick = p.window[0].wall, p.window[0].wall
	for _, t := range p.window[1:p.count] {
		s.MinTick = min(s.MinTick, t.wall)
		s.MaxTick = max(s.MaxTick, t.wall)
	}

	for i, d := range p.total.phases {
		s.PhaseAvg[i] = d / n
		if p.total.wall > 0 {
			s.PhasePct[i] = float64(d) / float64(p.total.wall) * 100
		}
	}

	if p.total.wall > 0 {
		wall := p.total.wall.Seconds()
		s.TicksPerSecond = float64(p.count) / wall
		s.RealTimeFactor = p.total.sim / wall
	}
	return s
}

// LogStats logs the summary at Info.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("realtime_factor", s.RealTimeFactor),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, ph := range Phases {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd      int64   `csv:"window_end"`
	Ticks          int     `csv:"ticks"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	RealTimeFactor float64 `csv:"realtime_factor"`
	FPS            float64 `csv:"fps"`
	InputPct       float64 `csv:"input_pct"`
	ControlPct     float64 `csv:"control_pct"`
	IntegratePct   float64 `csv:"integrate_pct"`
	WheelsPct      float64 `csv:"wheels_pct"`
	CameraPct      float64 `csv:"camera_pct"`
	AudioPct       float64 `csv:"audio_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		Ticks:          s.Ticks,
		AvgTickUS:      s.AvgTick.Microseconds(),
		MinTickUS:      s.MinTick.Microseconds(),
		MaxTickUS:      s.MaxTick.Microseconds(),
		RealTimeFactor: s.RealTimeFactor,
		FPS:            s.FPS,
		InputPct:       s.PhasePct[PhaseInput],
		ControlPct:     s.PhasePct[PhaseControl],
		IntegratePct:   s.PhasePct[PhaseIntegrate],
		WheelsPct:      s.PhasePct[PhaseWheels],
		CameraPct:      s.PhasePct[PhaseCamera],
		AudioPct:       s.PhasePct[PhaseAudio],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
