package reframe

import (
	"testing"

	"github.com/keagan/clipforge/internal/highlight"
)

func TestSelectWindowShiftClampAtTail(t *testing.T) {
	// 120s source, highlight at t=100, 60s window: raw [70,130) shifts
	// back to [60,120).
	highlights := []highlight.Highlight{{Timestamp: 100}}

	win := SelectWindow(highlights, 120, 60)
	if win.Start != 60 || win.End != 120 {
		t.Errorf("expected [60,120), got [%f,%f)", win.Start, win.End)
	}
}

func TestSelectWindowShiftClampAtHead(t *testing.T) {
	highlights := []highlight.Highlight{{Timestamp: 10}}

	win := SelectWindow(highlights, 120, 60)
	if win.Start != 0 || win.End != 60 {
		t.Errorf("expected [0,60), got [%f,%f)", win.Start, win.End)
	}
}

func TestSelectWindowShortSource(t *testing.T) {
	// Source shorter than the requested window: shrink to the whole clip.
	win := SelectWindow(nil, 10, 60)
	if win.Start != 0 || win.End != 10 {
		t.Errorf("expected [0,10), got [%f,%f)", win.Start, win.End)
	}

	highlights := []highlight.Highlight{{Timestamp: 5}}
	win = SelectWindow(highlights, 10, 60)
	if win.Start != 0 || win.End != 10 {
		t.Errorf("highlight variant: expected [0,10), got [%f,%f)", win.Start, win.End)
	}
}

func TestSelectWindowMidpointFallback(t *testing.T) {
	win := SelectWindow(nil, 200, 60)
	if win.Start != 70 || win.End != 130 {
		t.Errorf("expected [70,130), got [%f,%f)", win.Start, win.End)
	}
}

func TestSelectWindowInvariants(t *testing.T) {
	durations := []float64{5, 30, 59.9, 120, 3600}
	timestamps := []float64{0, 0.5, 10, 100, 3599}

	for _, src := range durations {
		for _, ts := range timestamps {
			if ts >= src {
				continue
			}
			win := SelectWindow([]highlight.Highlight{{Timestamp: ts}}, src, 60)
			if !(0 <= win.Start && win.Start < win.End && win.End <= src) {
				t.Errorf("src=%f ts=%f: window [%f,%f) violates bounds", src, ts, win.Start, win.End)
			}
		}
	}
}

func TestSelectWindowDegenerateInputs(t *testing.T) {
	if win := SelectWindow(nil, 0, 60); win.Duration() != 0 {
		t.Errorf("zero-length source: expected empty window, got [%f,%f)", win.Start, win.End)
	}
	if win := SelectWindow(nil, 100, 0); win.Duration() != 0 {
		t.Errorf("zero duration: expected empty window, got [%f,%f)", win.Start, win.End)
	}
}
