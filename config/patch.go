package config

// PatchedFixture stores config info for a dmx fixture
type PatchedFixture struct {
	Name    string `yaml:"name"`
	Address int    `yaml:"address"`
	Profile string `yaml:"profile"`
}

// PatchFixtures returns the default rig: a single RGB par at address 1.
func PatchFixtures() []PatchedFixture {
	return []PatchedFixture{
		{
			Name:    "front_par",
			Address: 1,
			Profile: "rgb-par",
		},
	}
}
