package rhythm

import (
	"time"

	"k8s.io/utils/clock"
)

// VirtualClock is a logical playback clock. Virtual time advances at Factor times the wall clock and
// only moves when Tick is called, so everything reading it during one tick sees the same values.
type VirtualClock struct {
	wall  clock.PassiveClock
	epoch time.Time

	factor float64
	offset float64 // virtual time at the last anchor
	origin float64 // wall seconds at the last anchor

	now  float64 // wall seconds of the current tick
	last float64 // wall seconds of the previous tick

	previous float64 // virtual time at the start of the current tick

	pending    float64
	hasPending bool
}

// NewVirtualClock creates a clock running at normal speed from virtual time zero.
func NewVirtualClock(wall clock.PassiveClock) *VirtualClock {
	return &VirtualClock{
		wall:   wall,
		epoch:  wall.Now(),
		factor: 1,
	}
}

// CurrentTime returns the virtual time of the current tick.
func (c *VirtualClock) CurrentTime() float64 {
	return c.factor*(c.now-c.origin) + c.offset
}

// PreviousTime returns the virtual time of the previous tick. Across an override splice it is the time
// the clock reported just before the splice.
func (c *VirtualClock) PreviousTime() float64 {
	return c.previous
}

// Factor returns the rate multiplier.
func (c *VirtualClock) Factor() float64 {
	return c.factor
}

// Elapsed returns the wall-clock seconds between the previous and current ticks.
func (c *VirtualClock) Elapsed() float64 {
	return c.now - c.last
}

// RequestTimeOverride schedules an absolute virtual time. It is applied by the next Tick, never
// immediately; a later request before that Tick replaces an earlier one.
func (c *VirtualClock) RequestTimeOverride(t float64) {
	c.pending = t
	c.hasPending = true
}

// PendingOverride returns the override waiting for the next Tick, if any.
func (c *VirtualClock) PendingOverride() (float64, bool) {
	return c.pending, c.hasPending
}

// SetRate changes the rate multiplier without a jump in virtual time.
func (c *VirtualClock) SetRate(f float64) {
	c.offset = c.CurrentTime()
	c.now = c.wallSeconds(c.wall.Now())
	c.origin = c.now
	c.factor = f
}

// Tick advances the clock to the injected wall clock's current time.
func (c *VirtualClock) Tick() {
	c.TickAt(c.wall.Now())
}

// TickAt advances the clock to the given wall-clock instant, applying a pending override if there is one.
func (c *VirtualClock) TickAt(wallNow time.Time) {
	ts := c.wallSeconds(wallNow)

	// the pre-splice time becomes the start of this tick's window either way
	c.previous = c.CurrentTime()
	c.last = c.now

	if c.hasPending {
		c.now = ts
		c.origin = ts
		c.offset = c.pending
		c.hasPending = false
		return
	}

	c.now = ts
}

// Window returns the (previous, current) pair of the current tick.
func (c *VirtualClock) Window() TimeWindow {
	return TimeWindow{Previous: c.PreviousTime(), Current: c.CurrentTime()}
}

func (c *VirtualClock) wallSeconds(t time.Time) float64 {
	return t.Sub(c.epoch).Seconds()
}
