package sound

import (
	"testing"

	"github.com/pthm-cable/egodrive/control"
)

func TestClassify(t *testing.T) {
	c := DefaultClassifier()

	testCases := []struct {
		name            string
		throttle, brake float64
		v               float64
		want            Cue
	}{
		{"idle", 0, 0, 10, Normal},
		{"throttle", 0.8, 0, 0, Throttle},
		{"half throttle", 0.5, 0, 0, Normal},
		{"brake at speed", 0, 1, 12, Brake},
		{"brake slow", 0, 1, 5, Normal},
		{"light brake", 0, 0.4, 12, Normal},
		{"both pedals", 1, 1, 12, Throttle},
	}

	for _, tc := range testCases {
		in := control.Input{Throttle: tc.throttle, Brake: tc.brake}
		if got := c.Classify(in, tc.v); got != tc.want {
			t.Errorf("%s: Classify() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestTrackerEmitsOnEntryOnly(t *testing.T) {
	var tr Tracker
	seq := []Cue{Normal, Throttle, Throttle, Throttle, Brake, Brake, Normal, Throttle}
	want := []bool{false, true, false, false, true, false, true, true}

	for i, c := range seq {
		if got := tr.Observe(c); got != want[i] {
			t.Errorf("tick %d (%v): Observe() = %v, want %v", i, c, got, want[i])
		}
	}
	if tr.Current() != Throttle {
		t.Errorf("expected current Throttle, got %v", tr.Current())
	}
	if tr.Entries(Throttle) != 2 || tr.Entries(Brake) != 1 || tr.Entries(Normal) != 1 {
		t.Errorf("unexpected entry counts: throttle=%d brake=%d normal=%d",
			tr.Entries(Throttle), tr.Entries(Brake), tr.Entries(Normal))
	}

	tr.Reset()
	if tr.Current() != Normal || tr.Entries(Normal) != 1 {
		t.Errorf("reset should not count an entry")
	}
}

func TestCueString(t *testing.T) {
	if Brake.String() != "brake" || Cue(9).String() != "Cue(9)" {
		t.Errorf("unexpected names %q %q", Brake.String(), Cue(9).String())
	}
}
