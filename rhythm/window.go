package rhythm

// TimeWindow is the span of virtual time covered by one tick. It is a value and never changes.
type TimeWindow struct {
	Previous float64
	Current  float64
}

// NewTimeWindow returns the window (previous, current).
func NewTimeWindow(previous, current float64) TimeWindow {
	return TimeWindow{Previous: previous, Current: current}
}

// Contains reports whether t was crossed during the tick, bounds included. A backward window, as produced
// by a seek into the past, contains nothing.
func (w TimeWindow) Contains(t float64) bool {
	return w.Previous <= t && t <= w.Current
}

// Duration is the virtual time covered by the window. It is negative for a backward window.
func (w TimeWindow) Duration() float64 {
	return w.Current - w.Previous
}

// IsBackward reports whether time moved backwards during the tick.
func (w TimeWindow) IsBackward() bool {
	return w.Previous > w.Current
}
