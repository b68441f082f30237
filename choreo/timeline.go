package choreo

import (
	"math"

	"github.com/robmorgan/choreo/beatmap"
)

// Timeline answers beat and section questions about playback time. It is read-only once built.
type Timeline struct {
	Title    string
	BeatMap  *beatmap.LinearMap
	Sections []Section
}

// NewTimeline builds the beat map and resolves the sections of a choreography.
func NewTimeline(c *Choreography) (*Timeline, error) {
	bm, err := c.BeatMap()
	if err != nil {
		return nil, err
	}
	sections, err := ResolveSections(c.Structure)
	if err != nil {
		return nil, err
	}
	return &Timeline{Title: c.Title, BeatMap: bm, Sections: sections}, nil
}

// BeatAt returns the (fractional) beat playing at time t.
func (tl *Timeline) BeatAt(t float64) float64 {
	return tl.BeatMap.Inverse(t)
}

// TimeOfBeat returns the playback time of a beat.
func (tl *Timeline) TimeOfBeat(beat float64) float64 {
	return tl.BeatMap.Forward(beat)
}

// SectionIndexAt returns the index of the section playing at time t, or -1.
func (tl *Timeline) SectionIndexAt(t float64) int {
	beat := tl.BeatAt(t)
	for i, s := range tl.Sections {
		if s.Contains(beat) {
			return i
		}
	}
	return -1
}

// SectionAt returns the section playing at time t.
func (tl *Timeline) SectionAt(t float64) (Section, bool) {
	i := tl.SectionIndexAt(t)
	if i < 0 {
		return Section{}, false
	}
	return tl.Sections[i], true
}

// NextSectionStart returns the time of the first section start after time t.
func (tl *Timeline) NextSectionStart(t float64) (float64, bool) {
	beat := tl.BeatAt(t)
	best := math.Inf(1)
	for _, s := range tl.Sections {
		if s.Start > beat+beatEpsilon && s.Start < best {
			best = s.Start
		}
	}
	if math.IsInf(best, 1) {
		return 0, false
	}
	return tl.TimeOfBeat(best), true
}

// PreviousSectionStart returns the time of the last section start before time t. Standing right on a
// section start jumps to the one before it.
func (tl *Timeline) PreviousSectionStart(t float64) (float64, bool) {
	beat := tl.BeatAt(t)
	best := math.Inf(-1)
	for _, s := range tl.Sections {
		if s.Start < beat-beatEpsilon && s.Start > best {
			best = s.Start
		}
	}
	if math.IsInf(best, -1) {
		return 0, false
	}
	return tl.TimeOfBeat(best), true
}

// beatEpsilon absorbs the float error of a beat -> seconds -> beat round trip.
const beatEpsilon = 1e-6
