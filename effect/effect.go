// Package effect shapes light levels over time with easing curves.
package effect

import (
	"fmt"
	"sort"

	"github.com/fogleman/ease"
	"github.com/robmorgan/choreo/utils"
)

var curves = map[string]ease.Function{
	"linear":      ease.Linear,
	"in-quad":     ease.InQuad,
	"out-quad":    ease.OutQuad,
	"in-cubic":    ease.InCubic,
	"out-cubic":   ease.OutCubic,
	"in-quart":    ease.InQuart,
	"out-quart":   ease.OutQuart,
	"in-out-sine": ease.InOutSine,
	"out-expo":    ease.OutExpo,
}

// Types returns the names of the supported easing curves.
func Types() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Effect struct {
	// The type of the effect
	Type string

	// Time is the length of the effect in seconds.
	Time float64

	curve ease.Function
}

// NewEffect creates a new Effect of type t for the specified time.
func NewEffect(t string, time float64) (*Effect, error) {
	curve, ok := curves[t]
	if !ok {
		return nil, fmt.Errorf("unknown effect type %q", t)
	}
	if time <= 0 {
		return nil, fmt.Errorf("effect time must be positive, got %g", time)
	}
	return &Effect{Type: t, Time: time, curve: curve}, nil
}

// Update returns the eased progress of value towards target, between 0 and 1.
func (e *Effect) Update(value float64, target float64) float64 {
	if target == 0 {
		return 1
	}
	return e.curve(utils.Clamp(value/target, 0, 1))
}

// Pulse is a beat flash: full level on the beat, decaying along the effect's curve down to the floor
// once the effect time has passed.
type Pulse struct {
	effect *Effect
	floor  float64
}

func NewPulse(e *Effect, floor float64) *Pulse {
	return &Pulse{effect: e, floor: utils.Clamp(floor, 0, 1)}
}

// Level returns the pulse level sinceBeat seconds after the last beat.
func (p *Pulse) Level(sinceBeat float64) float64 {
	if sinceBeat < 0 || sinceBeat >= p.effect.Time {
		return p.floor
	}
	return p.floor + (1-p.floor)*(1-p.effect.Update(sinceBeat, p.effect.Time))
}
