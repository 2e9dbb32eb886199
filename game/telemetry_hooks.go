package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/egodrive/sim"
	"github.com/pthm-cable/egodrive/telemetry"
)

// onTick records the snapshot and flushes the stats window when due. It runs
// inside the session's telemetry phase.
func (g *Game) onTick(snap sim.Snapshot) {
	obs := snap.Observation()
	g.collector.Record(obs)
	g.trajectory.Sample(obs)

	if !g.headless && (snap.DS != 0 || snap.Respawned) {
		g.recordTrail(snap)
	}

	g.flushTelemetry(snap.Tick)
}

// recordTrail appends the rear axle position. A respawn breaks the trail.
func (g *Game) recordTrail(snap sim.Snapshot) {
	if snap.Respawned {
		g.trail = g.trail[:0]
	}
	g.trail = append(g.trail, r3.Vec{X: snap.State.X, Y: snap.State.Y})
	if len(g.trail) > maxTrail {
		g.trail = g.trail[len(g.trail)-maxTrail:]
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry(tick int64) {
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick)
	perfStats := g.session.Perf().Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	g.drainTrajectory()

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		g.handleBookmark(bm)
	}
}

// handleBookmark logs and records a bookmark and saves the session next to it.
func (g *Game) handleBookmark(bm telemetry.Bookmark) {
	if g.logStats {
		bm.LogBookmark()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}

	if g.saveDir != "" {
		g.saveSession(&bm)
	}
}

// drainTrajectory moves buffered rows to the CSV and the plot buffer.
func (g *Game) drainTrajectory() {
	rows := g.trajectory.Drain()
	if len(rows) == 0 {
		return
	}
	if g.plots {
		g.plotRows = append(g.plotRows, rows...)
	}
	if g.outputManager != nil {
		if err := g.outputManager.WriteTrajectory(rows); err != nil {
			slog.Error("failed to write trajectory", "error", err)
		}
	}
}

// saveSession writes the session state to the save directory.
func (g *Game) saveSession(bookmark *telemetry.Bookmark) {
	path, err := sim.WriteSave(g.session.Save(bookmark), g.saveDir)
	if err != nil {
		slog.Error("failed to save session", "error", err)
		return
	}

	slog.Info("session saved", "path", path, "tick", g.session.Tick())
}

// savePlots renders the trajectory plots into the output directory.
func (g *Game) savePlots() {
	dir := g.outputManager.Dir()
	if dir == "" {
		slog.Warn("plots need an output directory")
		return
	}
	if err := telemetry.SavePlots(dir, g.plotRows); err != nil {
		slog.Error("failed to save plots", "error", err)
		return
	}
	slog.Info("plots saved", "dir", dir, "rows", len(g.plotRows))
}
