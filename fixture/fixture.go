package fixture

import (
	"fmt"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Fixture is a lighting fixture patched at a DMX address.
type Fixture struct {
	// Internal ID
	Id int

	// The DMX starting address
	Address int

	// The fixture channels
	Channels map[int]*Channel

	// The number of channels the fixture uses
	Mode int

	needsUpdate bool
}

// NewFixture creates a fixture. A nil channel map gives a fixture with no channels.
func NewFixture(id, address, mode int, channels map[int]*Channel) *Fixture {
	if channels == nil {
		channels = make(map[int]*Channel)
	}
	return &Fixture{
		Id:       id,
		Address:  address,
		Mode:     mode,
		Channels: channels,
	}
}

// GetChannelCount returns the number of channels on the fixture.
func (f *Fixture) GetChannelCount() int {
	return len(f.Channels)
}

func (f *Fixture) channel(typ string) *Channel {
	for _, c := range f.Channels {
		if c.Type == typ {
			return c
		}
	}
	return nil
}

func (f *Fixture) set(typ string, value float64) {
	if c := f.channel(typ); c != nil {
		if c.SetValue(value) {
			f.needsUpdate = true
		}
	}
}

func (f *Fixture) get(typ string) (float64, error) {
	c := f.channel(typ)
	if c == nil {
		return 0, fmt.Errorf("fixture %d has no %s channel", f.Id, typ)
	}
	return c.Value, nil
}

func (f *Fixture) SetIntensity(value float64) {
	f.set(TypeIntensity, value)
}

func (f *Fixture) GetIntensity() (float64, error) {
	return f.get(TypeIntensity)
}

// SetColor sets whichever of the red, green and blue channels the fixture has.
func (f *Fixture) SetColor(c colorful.Color) {
	c = c.Clamped()
	f.set(TypeColorRed, c.R)
	f.set(TypeColorGreen, c.G)
	f.set(TypeColorBlue, c.B)
}

// GetColor returns the fixture colour. Missing colour channels read as 0.
func (f *Fixture) GetColor() (colorful.Color, error) {
	r, rErr := f.get(TypeColorRed)
	g, gErr := f.get(TypeColorGreen)
	b, bErr := f.get(TypeColorBlue)
	if rErr != nil && gErr != nil && bErr != nil {
		return colorful.Color{}, fmt.Errorf("fixture %d has no colour channels", f.Id)
	}
	return colorful.Color{R: r, G: g, B: b}, nil
}

// NeedsUpdate reports whether a channel changed since the last HasUpdated.
func (f *Fixture) NeedsUpdate() bool {
	return f.needsUpdate
}

func (f *Fixture) HasUpdated() {
	f.needsUpdate = false
}

func (f *Fixture) operations(universe int) []dmxOperation {
	addrs := make([]int, 0, len(f.Channels))
	for addr := range f.Channels {
		addrs = append(addrs, addr)
	}
	sort.Ints(addrs)

	ops := make([]dmxOperation, 0, len(addrs))
	for _, addr := range addrs {
		c := f.Channels[addr]
		ops = append(ops, dmxOperation{
			universe: universe,
			channel:  f.Address + c.Address - 1,
			value:    int(c.toDMX()),
		})
	}
	return ops
}
