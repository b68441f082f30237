package rhythm

import (
	"math"
)

// Metronome lays a regular beat grid over virtual time. It drives the practice loop, where there is no
// choreography beat map to follow.
// Originally based on https://github.com/Deep-Symmetry/electro/blob/main/src/main/java/org/deepsymmetry/electro/Metronome.java#L449
type Metronome struct {
	startTime     float64 // virtual time of beat 1
	tempo         float64
	beatsPerBar   int
	barsPerPhrase int
}

// NewMetronome creates a new Metronome with default values
func NewMetronome() *Metronome {
	return &Metronome{
		tempo:         120.0,
		beatsPerBar:   4,
		barsPerPhrase: 8,
	}
}

func (m *Metronome) GetTempo() float64 {
	return m.tempo
}

func (m *Metronome) GetBeatsPerBar() int {
	return m.beatsPerBar
}

// SetBeatsPerBar changes the bar length. Values <= 0 are ignored.
func (m *Metronome) SetBeatsPerBar(n int) {
	if n > 0 {
		m.beatsPerBar = n
	}
}

// SetTempo sets a new tempo for the Metronome at virtual time `at`. The start time is adjusted so that the
// current beat and phase are unaffected by the tempo change. Tempos <= 0 are ignored.
func (m *Metronome) SetTempo(bpm float64, at float64) {
	if bpm <= 0 {
		return
	}

	interval := m.GetBeatInterval()
	beat := markerNumber(at, m.startTime, interval)
	phase := markerPhase(at, m.startTime, interval)
	newInterval := beatsToSeconds(1, bpm)
	m.startTime = at - newInterval*(phase+float64(beat)-1)
	m.tempo = bpm
}

// GetBeatInterval returns the number of seconds a beat lasts.
func (m *Metronome) GetBeatInterval() float64 {
	return beatsToSeconds(1, m.tempo)
}

// GetBarInterval returns the number of seconds a bar lasts.
func (m *Metronome) GetBarInterval() float64 {
	return beatsToSeconds(m.beatsPerBar, m.tempo)
}

// GetPhraseInterval returns the number of seconds a phrase lasts.
func (m *Metronome) GetPhraseInterval() float64 {
	return m.GetBarInterval() * float64(m.barsPerPhrase)
}

// GetTimeOfBeat returns the virtual time at which beat number `beat` (1-based) occurs.
func (m *Metronome) GetTimeOfBeat(beat int) float64 {
	return m.startTime + m.GetBeatInterval()*float64(beat-1)
}

// GetSnapshot probes the metronome's timeline at virtual time `at`.
func (m *Metronome) GetSnapshot(at float64) Snapshot {
	beatInterval := m.GetBeatInterval()
	barInterval := m.GetBarInterval()
	phraseInterval := m.GetPhraseInterval()

	return Snapshot{
		Instant:       at,
		Tempo:         m.tempo,
		BeatsPerBar:   m.beatsPerBar,
		Beat:          markerNumber(at, m.startTime, beatInterval),
		Bar:           markerNumber(at, m.startTime, barInterval),
		Phrase:        markerNumber(at, m.startTime, phraseInterval),
		BeatPhase:     markerPhase(at, m.startTime, beatInterval),
		BarPhase:      markerPhase(at, m.startTime, barInterval),
		barsPerPhrase: m.barsPerPhrase,
	}
}

// beatsToSeconds calculates seconds for given beats and tempo
func beatsToSeconds(beats int, tempo float64) float64 {
	return (60.0 / tempo) * float64(beats)
}

// markerNumber calculates the marker number
func markerNumber(instant, start, interval float64) int {
	return int(math.Floor((instant-start)/interval)) + 1
}

// markerPhase calculates the phase of a marker
func markerPhase(instant, start, interval float64) float64 {
	ratio := (instant - start) / interval
	return ratio - math.Floor(ratio)
}
