package fixture

// Profile holds info for a fixture profile including the channel mappings.
type Profile struct {
	Name string

	// The fixture channels
	Channels map[int]string
}

// RGBPar is a four channel par: dimmer, red, green, blue.
var RGBPar = Profile{
	Name: "rgb-par",
	Channels: map[int]string{
		1: TypeIntensity,
		2: TypeColorRed,
		3: TypeColorGreen,
		4: TypeColorBlue,
	},
}

// NewFixtureFromProfile creates a fixture at a DMX address with the profile's channels.
func NewFixtureFromProfile(id, address int, p Profile) *Fixture {
	channels := make(map[int]*Channel, len(p.Channels))
	for addr, typ := range p.Channels {
		channels[addr] = &Channel{Type: typ, Address: addr, Resolution: 1}
	}
	return NewFixture(id, address, len(channels), channels)
}

// Profiles are the fixture profiles that can be patched by name.
var Profiles = map[string]Profile{
	RGBPar.Name: RGBPar,
}
