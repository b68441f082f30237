package fixture

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/choreo/choreo"
	"github.com/robmorgan/choreo/effect"
)

// Rig follows playback with a group of fixtures: the colour of the current section and a flash on
// every beat.
type Rig struct {
	timeline *choreo.Timeline
	group    *Group
	pulse    *effect.Pulse
	state    *DMXState
	universe int
}

func NewRig(tl *choreo.Timeline, group *Group, pulse *effect.Pulse, state *DMXState, universe int) *Rig {
	return &Rig{
		timeline: tl,
		group:    group,
		pulse:    pulse,
		state:    state,
		universe: universe,
	}
}

// Render sets every fixture for virtual time t and writes the changed ones to the DMX state.
// Outside of any section the fixtures are blacked out.
func (r *Rig) Render(t float64) error {
	color := colorful.Color{}
	level := 0.0
	if s, ok := r.timeline.SectionAt(t); ok {
		color = s.RGB
		beat := math.Floor(r.timeline.BeatAt(t))
		level = r.pulse.Level(t - r.timeline.TimeOfBeat(beat))
	}

	for _, name := range r.group.Names() {
		f := r.group.Fixtures[name]
		f.SetColor(color)
		f.SetIntensity(level)
		if !f.NeedsUpdate() {
			continue
		}
		if err := r.state.set(f.operations(r.universe)...); err != nil {
			return err
		}
		f.HasUpdated()
	}
	return nil
}
