package fixture

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/choreo/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patchedGroup(t *testing.T, names ...string) *Group {
	t.Helper()

	patch := make([]config.PatchedFixture, 0, len(names))
	for i, name := range names {
		patch = append(patch, config.PatchedFixture{Name: name, Address: 1 + i*4, Profile: RGBPar.Name})
	}
	g, err := NewGroupFromPatch(patch)
	require.NoError(t, err)
	return g
}

func TestSharedFixtureFollowsBothGroups(t *testing.T) {
	t.Parallel()

	stage := patchedGroup(t, "front_par", "back_par")
	back, err := stage.GetFixture("back_par")
	require.NoError(t, err)

	// the same par is reachable under a second name
	wash := NewGroup()
	wash.AddFixture("wash", back)

	w, err := wash.GetFixture("wash")
	require.NoError(t, err)
	w.SetColor(colorful.Color{R: 1, B: 1})
	w.SetIntensity(0.5)

	intensity, err := back.GetIntensity()
	require.NoError(t, err)
	assert.Equal(t, 0.5, intensity)
	color, err := back.GetColor()
	require.NoError(t, err)
	assert.Equal(t, colorful.Color{R: 1, B: 1}, color)
	assert.True(t, back.NeedsUpdate())

	front, err := stage.GetFixture("front_par")
	require.NoError(t, err)
	assert.False(t, front.NeedsUpdate())

	_, err = wash.GetFixture("back_par")
	assert.Error(t, err)
}

func TestMergePatchedGroups(t *testing.T) {
	t.Parallel()

	left := patchedGroup(t, "par_1", "par_2")
	right := patchedGroup(t, "par_2", "par_3")
	require.Equal(t, []string{"par_1", "par_2"}, left.Names())

	merged := left.Merge(right)
	assert.Equal(t, []string{"par_1", "par_2", "par_3"}, merged.Names())
	assert.Equal(t, 3, merged.Count())
	assert.Equal(t, 2, left.Count())

	// the later group wins a name clash
	par, err := merged.GetFixture("par_2")
	require.NoError(t, err)
	assert.Equal(t, 1, par.Address)
	assert.Equal(t, 1, par.Id)

	assert.Zero(t, NewGroup().Merge().Count())
	assert.False(t, NewGroup().HasFixtures())
	assert.True(t, merged.HasFixtures())
}
