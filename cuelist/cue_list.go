package cuelist

import (
	"fmt"
	"math"
	"sort"

	"github.com/robmorgan/choreo/choreo"
	"github.com/robmorgan/choreo/logger"
	"github.com/robmorgan/choreo/rhythm"
)

// Source produces the cues crossed by a tick's window.
type Source interface {
	Name() string
	Due(w rhythm.TimeWindow) []*Cue
}

// CueList stores beat-aligned cues ordered by time.
type CueList struct {
	name string
	Cues []*Cue
}

func NewCueList(cueListName string) *CueList {
	logger := logger.GetProjectLogger()
	logger.Debugf("Cue list created with name: %s", cueListName)

	return &CueList{
		name: cueListName,
		Cues: make([]*Cue, 0),
	}
}

func (cl *CueList) Name() string {
	return cl.name
}

// Add inserts a cue, keeping the list ordered by time. Cues at the same time keep insertion order.
func (cl *CueList) Add(c *Cue) {
	i := sort.Search(len(cl.Cues), func(i int) bool { return cl.Cues[i].Time > c.Time })
	cl.Cues = append(cl.Cues, nil)
	copy(cl.Cues[i+1:], cl.Cues[i:])
	cl.Cues[i] = c
}

// Due returns the cues contained in the window, in time order. A backward window contains nothing.
func (cl *CueList) Due(w rhythm.TimeWindow) []*Cue {
	if w.IsBackward() {
		return nil
	}
	i := sort.Search(len(cl.Cues), func(i int) bool { return cl.Cues[i].Time >= w.Previous })

	var due []*Cue
	for ; i < len(cl.Cues) && w.Contains(cl.Cues[i].Time); i++ {
		due = append(due, cl.Cues[i])
	}
	return due
}

// EveryNBeats builds a cue on every whole beat b of the beat map where b % n == offset.
func EveryNBeats(tl *choreo.Timeline, n, offset int) *CueList {
	cl := NewCueList(fmt.Sprintf("every %d beats", n))
	if n <= 0 {
		return cl
	}

	first := int(math.Ceil(tl.BeatMap.First().Domain))
	last := int(math.Floor(tl.BeatMap.Last().Domain))
	for b := first; b <= last; b++ {
		if positiveMod(b, n) != positiveMod(offset, n) {
			continue
		}
		cl.Add(&Cue{
			Name: fmt.Sprintf("beat %d", b),
			Kind: KindBeat,
			Beat: float64(b),
			Time: tl.TimeOfBeat(float64(b)),
		})
	}
	return cl
}

// SectionStarts builds a cue on the first beat of every section.
func SectionStarts(tl *choreo.Timeline) *CueList {
	cl := NewCueList("sections")
	for _, s := range tl.Sections {
		cl.Add(&Cue{
			Name: s.Name,
			Kind: KindSection,
			Beat: s.Start,
			Time: tl.TimeOfBeat(s.Start),
		})
	}
	return cl
}

func positiveMod(a, n int) int {
	return ((a % n) + n) % n
}
