package effects

import "time"

const (
	PulseCycle   = 2 * time.Second
	PulseStagger = 300 * time.Millisecond
	PulseHold    = 200 * time.Millisecond
)

// LineState is how a neural line is drawn at a moment in time.
type LineState struct {
	Opacity float64
	ScaleX  float64
}

var (
	lit    = LineState{Opacity: 1, ScaleX: 1.2}
	dimmed = LineState{Opacity: 0.2, ScaleX: 0.5}
)

// NeuralLine returns the state of line index at elapsed time since the
// first pulse. Every cycle lights the lines one after another, each for
// PulseHold.
func NeuralLine(index int, elapsed time.Duration) LineState {
	if index < 0 {
		return dimmed
	}
	rel := elapsed - time.Duration(index)*PulseStagger
	if rel < 0 {
		return dimmed
	}
	if rel%PulseCycle < PulseHold {
		return lit
	}
	return dimmed
}
