package fixture

import (
	"fmt"
	"sort"
)

type Group struct {
	Fixtures map[string]*Fixture
}

// Create a new Group object with reasonable defaults for real usage.
func NewGroup() *Group {
	return &Group{
		Fixtures: make(map[string]*Fixture),
	}
}

func (fg *Group) GetFixture(id string) (*Fixture, error) {
	if fixture, found := fg.Fixtures[id]; found {
		return fixture, nil
	} else {
		return nil, fmt.Errorf("the fixture group does not contain a fixture with the id: %s", id)
	}
}

func (fg *Group) AddFixture(id string, fixture *Fixture) {
	fg.Fixtures[id] = fixture
}

func (fg *Group) HasFixture(id string) bool {
	_, found := fg.Fixtures[id]
	return found
}

// HasFixtures returns true if there are fixtures in the group
func (fg *Group) HasFixtures() bool {
	return len(fg.Fixtures) > 0
}

// Count returns the number of fixtures in the group
func (fg *Group) Count() int {
	return len(fg.Fixtures)
}

// Names returns the fixture ids in sorted order.
func (fg *Group) Names() []string {
	names := make([]string, 0, len(fg.Fixtures))
	for name := range fg.Fixtures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new group holding the fixtures of fg and then of each other group. Later groups
// replace fixtures with the same id.
func (fg *Group) Merge(others ...*Group) *Group {
	merged := NewGroup()
	for _, g := range append([]*Group{fg}, others...) {
		for id, fixture := range g.Fixtures {
			merged.AddFixture(id, fixture)
		}
	}
	return merged
}
