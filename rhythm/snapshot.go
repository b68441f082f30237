package rhythm

import "fmt"

// Snapshot holds details about the timeline established by a metronome at one instant.
type Snapshot struct {
	// Instant is the virtual time the snapshot was computed for.
	Instant float64

	Tempo       float64
	BeatsPerBar int

	// Beat, Bar and Phrase are 1-based marker numbers.
	Beat   int
	Bar    int
	Phrase int

	// BeatPhase and BarPhase run from 0 (on the marker) towards 1.
	BeatPhase float64
	BarPhase  float64

	barsPerPhrase int
}

// GetBeatWithinBar returns the beat number of the snapshot relative to the start of the bar.
func (s Snapshot) GetBeatWithinBar() int {
	return positiveMod(s.Beat-1, s.BeatsPerBar) + 1
}

// IsDownBeat checks whether the current beat at the time of the snapshot was the first beat in its bar.
func (s Snapshot) IsDownBeat() bool {
	return s.GetBeatWithinBar() == 1
}

// GetBarWithinPhrase returns the bar number of the snapshot relative to the start of the phrase.
func (s Snapshot) GetBarWithinPhrase() int {
	if s.barsPerPhrase == 0 {
		return 1
	}
	return positiveMod(s.Bar-1, s.barsPerPhrase) + 1
}

// GetMarker returns the time represented by the snapshot as "phrase.bar.beat".
func (s Snapshot) GetMarker() string {
	return fmt.Sprintf("%d.%d.%d", s.Phrase, s.GetBarWithinPhrase(), s.GetBeatWithinBar())
}

func positiveMod(a, n int) int {
	if n <= 0 {
		return 0
	}
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
