package fixture

import (
	"fmt"

	"github.com/robmorgan/choreo/config"
)

// NewGroupFromPatch creates a fixture for every patched fixture in the config.
func NewGroupFromPatch(patch []config.PatchedFixture) (*Group, error) {
	g := NewGroup()
	for i, p := range patch {
		profile, ok := Profiles[p.Profile]
		if !ok {
			return nil, fmt.Errorf("fixture %s: unknown profile %q", p.Name, p.Profile)
		}
		if g.HasFixture(p.Name) {
			return nil, fmt.Errorf("fixture %s is patched twice", p.Name)
		}
		g.AddFixture(p.Name, NewFixtureFromProfile(i+1, p.Address, profile))
	}
	return g, nil
}
