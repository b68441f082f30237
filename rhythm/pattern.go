package rhythm

import "math"

// Pattern is a one-bar practice loop divided into eighth-note steps that can be switched on and off.
type Pattern struct {
	metronome *Metronome
	steps     []bool
}

// Step is one occurrence of an active pattern step.
type Step struct {
	Index int

	// Loop counts repetitions of the bar from the metronome's first beat.
	Loop int

	// Time is the virtual time of the occurrence.
	Time float64
}

// NewPattern creates an empty pattern with two steps per beat of the metronome's bar.
func NewPattern(m *Metronome) *Pattern {
	return &Pattern{
		metronome: m,
		steps:     make([]bool, m.GetBeatsPerBar()*2),
	}
}

// Len returns the number of steps in the bar.
func (p *Pattern) Len() int {
	return len(p.steps)
}

// Toggle flips a step. Out of range steps are ignored.
func (p *Pattern) Toggle(step int) {
	if step < 0 || step >= len(p.steps) {
		return
	}
	p.steps[step] = !p.steps[step]
}

// Set switches a step on or off. Out of range steps are ignored.
func (p *Pattern) Set(step int, on bool) {
	if step < 0 || step >= len(p.steps) {
		return
	}
	p.steps[step] = on
}

// IsSet reports whether a step is on.
func (p *Pattern) IsSet(step int) bool {
	return step >= 0 && step < len(p.steps) && p.steps[step]
}

// StepTime returns the offset of a step from the start of the bar, in seconds.
func (p *Pattern) StepTime(step int) float64 {
	return float64(step) * p.metronome.GetBeatInterval() / 2
}

// Due returns the active step occurrences crossed during the window, in time order. The bar repeats
// forever; a window longer than a bar only reports the last two repetitions.
func (p *Pattern) Due(w TimeWindow) []Step {
	if w.IsBackward() {
		return nil
	}

	start := p.metronome.GetTimeOfBeat(1)
	period := p.metronome.GetBarInterval()
	first := int(math.Floor((w.Previous - start) / period))
	last := int(math.Floor((w.Current - start) / period))
	if last-first > 1 {
		first = last - 1
	}

	var due []Step
	for loop := first; loop <= last; loop++ {
		barStart := start + float64(loop)*period
		for i, on := range p.steps {
			t := barStart + p.StepTime(i)
			if on && w.Contains(t) {
				due = append(due, Step{Index: i, Loop: loop, Time: t})
			}
		}
	}
	return due
}
