package reframe

import "github.com/keagan/clipforge/internal/highlight"

// Window is the selected [Start, End) time range of the source, in seconds
type Window struct {
	Start float64
	End   float64
}

// Duration returns the window length in seconds
func (w Window) Duration() float64 {
	return w.End - w.Start
}

// SelectWindow centers an editDuration-wide window on the top-ranked
// highlight, or on the source midpoint when no highlights exist. Clamping
// shifts the window back inside [0, sourceDuration]; it only shrinks when
// the source itself is shorter than the requested duration.
func SelectWindow(highlights []highlight.Highlight, sourceDuration, editDuration float64) Window {
	if sourceDuration <= 0 || editDuration <= 0 {
		return Window{}
	}

	var start, end float64
	if len(highlights) > 0 {
		center := highlights[0].Timestamp
		start = center - editDuration/2
		end = start + editDuration
		if end > sourceDuration {
			start -= end - sourceDuration
			end = sourceDuration
		}
		if start < 0 {
			start = 0
			end = min(sourceDuration, start+editDuration)
		}
	} else {
		start = max(0, (sourceDuration-editDuration)/2)
		end = min(sourceDuration, start+editDuration)
	}

	return Window{Start: start, End: end}
}
