package cuelist

import (
	"fmt"

	"github.com/robmorgan/choreo/rhythm"
)

// PatternSource turns the active steps of a practice loop into cues.
type PatternSource struct {
	name    string
	pattern *rhythm.Pattern
}

func NewPatternSource(name string, p *rhythm.Pattern) *PatternSource {
	return &PatternSource{name: name, pattern: p}
}

func (ps *PatternSource) Name() string {
	return ps.name
}

func (ps *PatternSource) Due(w rhythm.TimeWindow) []*Cue {
	steps := ps.pattern.Due(w)
	if len(steps) == 0 {
		return nil
	}

	cues := make([]*Cue, 0, len(steps))
	for _, s := range steps {
		cues = append(cues, &Cue{
			Name: fmt.Sprintf("step %d", s.Index+1),
			Kind: KindStep,
			Beat: float64(s.Index),
			Time: s.Time,
		})
	}
	return cues
}
