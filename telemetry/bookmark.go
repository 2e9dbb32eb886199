package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkTopSpeed BookmarkType = "top_speed"
	BookmarkHardStop BookmarkType = "hard_stop"
	BookmarkSpin     BookmarkType = "spin"
	BookmarkCruise   BookmarkType = "cruise"
	BookmarkManual   BookmarkType = "manual"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int64        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in a drive.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	topSpeed           float64 // best max speed seen so far, m/s
	cruiseWindowsCount int     // consecutive windows at steady speed
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 4 {
		historySize = 4 // minimum for cruise detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	// Top speed: new record by at least 1 m/s above 10 m/s
	if b := bd.checkTopSpeed(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if bd.historyFull || bd.historyIdx > 0 {
		// Hard stop: previous window ended fast, this one ended stopped under brake
		if b := bd.checkHardStop(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Spin: yaw-rate spread > 2x rolling average
		if b := bd.checkSpin(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Cruise: steady speed over 4+ windows
		if b := bd.checkCruise(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns the stored windows oldest first.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	ordered := make([]WindowStats, 0, bd.historySize)
	ordered = append(ordered, bd.history[bd.historyIdx:]...)
	return append(ordered, bd.history[:bd.historyIdx]...)
}

// latest returns the most recent window before the current one.
func (bd *BookmarkDetector) latest() WindowStats {
	idx := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return bd.history[idx]
}

func (bd *BookmarkDetector) checkTopSpeed(stats WindowStats) *Bookmark {
	if stats.MaxSpeed < 10 || stats.MaxSpeed < bd.topSpeed+1 {
		return nil
	}
	old := bd.topSpeed
	bd.topSpeed = stats.MaxSpeed
	return &Bookmark{
		Type:        BookmarkTopSpeed,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Top speed %.1f km/h (previous %.1f km/h)", stats.MaxSpeed*3.6, old*3.6),
	}
}

func (bd *BookmarkDetector) checkHardStop(stats WindowStats) *Bookmark {
	prev := bd.latest()
	if prev.EndSpeed <= 10 || stats.EndSpeed >= 0.5 || stats.BrakeDuty == 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkHardStop,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Stopped from %.1f km/h with %.0f%% brake duty", prev.EndSpeed*3.6, stats.BrakeDuty*100),
	}
}

func (bd *BookmarkDetector) checkSpin(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.YawRateStd
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.YawRateStd > avg*2.0 && stats.YawRateStd > 0.3 {
		return &Bookmark{
			Type:        BookmarkSpin,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Yaw rate spread %.2f rad/s is %.1fx average (%.2f)", stats.YawRateStd, stats.YawRateStd/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkCruise(stats WindowStats) *Bookmark {
	if stats.MeanSpeed < 5 {
		bd.cruiseWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	// Relative spread of mean speed over the last three windows plus this one
	window := append(append([]WindowStats(nil), history[len(history)-3:]...), stats)
	var sum float64
	for _, h := range window {
		sum += h.MeanSpeed
	}
	mean := sum / float64(len(window))

	var variance float64
	for _, h := range window {
		d := h.MeanSpeed - mean
		variance += d * d
	}
	variance /= float64(len(window))

	if mean > 0 && variance/(mean*mean) < 0.0025 { // CV < 5%
		bd.cruiseWindowsCount++
	} else {
		bd.cruiseWindowsCount = 0
	}

	if bd.cruiseWindowsCount == 1 { // trigger once per cruise
		return &Bookmark{
			Type:        BookmarkCruise,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Cruising at %.1f km/h over 4 windows", mean*3.6),
		}
	}
	return nil
}
