package telemetry

import "testing"

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, bm := range bms {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_TopSpeed(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if bms := bd.Check(WindowStats{WindowEndTick: 300, MaxSpeed: 8}); hasBookmark(bms, BookmarkTopSpeed) {
		t.Error("top speed below 10 m/s should not trigger")
	}
	if bms := bd.Check(WindowStats{WindowEndTick: 600, MaxSpeed: 15}); !hasBookmark(bms, BookmarkTopSpeed) {
		t.Error("expected top_speed bookmark")
	}
	// Marginal improvement does not re-trigger
	if bms := bd.Check(WindowStats{WindowEndTick: 900, MaxSpeed: 15.5}); hasBookmark(bms, BookmarkTopSpeed) {
		t.Error("expected no bookmark for improvement under 1 m/s")
	}
	if bms := bd.Check(WindowStats{WindowEndTick: 1200, MaxSpeed: 20}); !hasBookmark(bms, BookmarkTopSpeed) {
		t.Error("expected second top_speed bookmark")
	}
}

func TestBookmarkDetector_HardStop(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{WindowEndTick: 300, EndSpeed: 20})

	bms := bd.Check(WindowStats{WindowEndTick: 600, EndSpeed: 0.1, BrakeDuty: 0.8})
	if !hasBookmark(bms, BookmarkHardStop) {
		t.Error("expected hard_stop bookmark")
	}

	// Rolling to a stop without braking is not a hard stop
	bd = NewBookmarkDetector(10)
	bd.Check(WindowStats{WindowEndTick: 300, EndSpeed: 20})
	if bms := bd.Check(WindowStats{WindowEndTick: 600, EndSpeed: 0.1}); hasBookmark(bms, BookmarkHardStop) {
		t.Error("expected no hard_stop without brake")
	}
}

func TestBookmarkDetector_Spin(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 300), YawRateStd: 0.1})
	}

	bms := bd.Check(WindowStats{WindowEndTick: 1800, YawRateStd: 0.6})
	if !hasBookmark(bms, BookmarkSpin) {
		t.Error("expected spin bookmark")
	}
}

func TestBookmarkDetector_CruiseOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)
	triggered := 0
	for i := 0; i < 8; i++ {
		bms := bd.Check(WindowStats{WindowEndTick: int64(i * 300), MeanSpeed: 20})
		if hasBookmark(bms, BookmarkCruise) {
			triggered++
		}
	}
	if triggered != 1 {
		t.Errorf("expected exactly one cruise bookmark, got %d", triggered)
	}

	// Slowing below 5 m/s ends the cruise; resuming triggers again
	bd.Check(WindowStats{MeanSpeed: 1})
	triggered = 0
	for i := 0; i < 4; i++ {
		if hasBookmark(bd.Check(WindowStats{MeanSpeed: 20}), BookmarkCruise) {
			triggered++
		}
	}
	if triggered != 1 {
		t.Errorf("expected cruise to re-trigger after slowing, got %d", triggered)
	}
}

func TestBookmarkDetector_HistoryOrder(t *testing.T) {
	bd := NewBookmarkDetector(4)
	for i := int64(1); i <= 6; i++ {
		bd.Check(WindowStats{WindowEndTick: i})
	}
	h := bd.getHistory()
	if len(h) != 4 {
		t.Fatalf("expected 4 windows, got %d", len(h))
	}
	for i, w := range h {
		if w.WindowEndTick != int64(i+3) {
			t.Errorf("history[%d] = tick %d, want %d", i, w.WindowEndTick, i+3)
		}
	}
}
