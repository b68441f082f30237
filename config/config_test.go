package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "choreo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewChoreoConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 25*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, CueConfig{Every: 8, Offset: 7}, cfg.Cues)
	assert.Equal(t, ViewConfig{Before: 10, After: 30}, cfg.View)
	require.Len(t, cfg.PatchedFixtures, 1)
	assert.Equal(t, "rgb-par", cfg.PatchedFixtures[0].Profile)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
tickInterval: 10ms
cues:
  every: 4
osc:
  target: 127.0.0.1:9000
dmx:
  address: localhost:9010
fixtures:
  - name: left
    address: 5
    profile: rgb-par
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 4, cfg.Cues.Every)
	assert.Equal(t, 7, cfg.Cues.Offset)
	assert.Equal(t, "127.0.0.1:9000", cfg.OSC.Target)
	assert.Equal(t, "localhost:9010", cfg.DMX.Address)
	assert.Equal(t, 1, cfg.DMX.Universe)
	assert.Equal(t, []PatchedFixture{{Name: "left", Address: 5, Profile: "rgb-par"}}, cfg.PatchedFixtures)
	assert.Equal(t, 30.0, cfg.View.After)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		contents string
		errText  string
	}{
		{"bad yaml", "cues: [", "choreo.yaml"},
		{"bad tick", "tickInterval: -1s", "tickInterval"},
		{"bad view", "view: {after: 0}", "view window"},
		{"bad fixture", "fixtures: [{name: x, address: 600}]", "fixture x"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeConfig(t, testCase.contents))
			assert.ErrorContains(t, err, testCase.errText)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
