package cuelist

import "fmt"

// Kind says where a cue came from so handlers can pick the ones they care about.
type Kind int

const (
	// KindBeat is a periodic beat cue (the clap).
	KindBeat Kind = iota
	// KindSection marks the first beat of a section.
	KindSection
	// KindStep is a step of the practice loop.
	KindStep
)

func (k Kind) String() string {
	switch k {
	case KindBeat:
		return "beat"
	case KindSection:
		return "section"
	case KindStep:
		return "step"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Cue is a point on the virtual timeline that fires once when playback crosses it.
type Cue struct {
	ID int64

	// The name or label associated with the cue
	Name string

	Kind Kind

	// Beat is the beat number the cue is aligned to. For loop steps it is the step index.
	Beat float64

	// Time is the virtual time of the cue in seconds.
	Time float64
}

func (c *Cue) String() string {
	return fmt.Sprintf("%s cue %q at beat %g (%.3fs)", c.Kind, c.Name, c.Beat, c.Time)
}
