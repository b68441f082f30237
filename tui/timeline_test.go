package tui

import (
	"testing"

	"github.com/robmorgan/choreo/beatmap"
	"github.com/robmorgan/choreo/choreo"
	"github.com/robmorgan/choreo/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// one beat per second
func newGridTimeline(t *testing.T) *choreo.Timeline {
	t.Helper()

	bm, err := beatmap.FromPairs([][2]float64{{0, 0}, {64, 64}})
	require.NoError(t, err)
	return &choreo.Timeline{
		BeatMap: bm,
		Sections: []choreo.Section{
			{Start: 0, End: 8, Name: "a"},
			{Start: 8, End: 16, Name: "b"},
		},
	}
}

func TestTimelineCells(t *testing.T) {
	t.Parallel()

	tl := newGridTimeline(t)
	cells := timelineCells(tl, 10, config.ViewConfig{Before: 10, After: 30}, 40)
	require.Len(t, cells, 40)

	var ticks, playheads []int
	for i, c := range cells {
		if c.tick {
			ticks = append(ticks, i)
		}
		if c.playhead {
			playheads = append(playheads, i)
		}
	}
	assert.Equal(t, []int{0, 8, 16, 24, 32}, ticks)
	assert.Equal(t, []int{10}, playheads)

	assert.Equal(t, 0, cells[7].section)
	assert.Equal(t, 1, cells[8].section)
	assert.Equal(t, -1, cells[16].section)

	assert.Equal(t, []label{{pos: 0, text: "0"}, {pos: 32, text: "32"}}, beatLabels(tl, cells))
	assert.Equal(t, []label{{0, "0:00"}, {10, "0:10"}, {20, "0:20"}, {30, "0:30"}}, timeLabels(cells))

	assert.Empty(t, timelineCells(tl, 10, config.ViewConfig{Before: 10, After: 30}, 0))
}

func TestPlaceLabels(t *testing.T) {
	t.Parallel()

	line := placeLabels(12, []label{{0, "0:00"}, {3, "xx"}, {5, "0:10"}, {10, "long"}})
	assert.Equal(t, "0:00 0:10   ", line)
}
