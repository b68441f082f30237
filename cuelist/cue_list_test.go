package cuelist

import (
	"testing"

	"github.com/robmorgan/choreo/beatmap"
	"github.com/robmorgan/choreo/choreo"
	"github.com/robmorgan/choreo/rhythm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// two beats per second, beats 0 to 64
func newTestTimeline(t *testing.T) *choreo.Timeline {
	t.Helper()

	bm, err := beatmap.FromPairs([][2]float64{{0, 0}, {64, 32}})
	require.NoError(t, err)

	return &choreo.Timeline{
		Title:   "test",
		BeatMap: bm,
		Sections: []choreo.Section{
			{Start: 0, End: 8, Name: "intro"},
			{Start: 8, End: 16, Name: "verse"},
		},
	}
}

func beats(cues []*Cue) []float64 {
	var out []float64
	for _, c := range cues {
		out = append(out, c.Beat)
	}
	return out
}

func TestEveryNBeats(t *testing.T) {
	t.Parallel()

	cl := EveryNBeats(newTestTimeline(t), 8, 7)
	require.Len(t, cl.Cues, 8)

	assert.Equal(t, 7.0, cl.Cues[0].Beat)
	assert.Equal(t, 3.5, cl.Cues[0].Time)
	assert.Equal(t, "beat 7", cl.Cues[0].Name)
	assert.Equal(t, KindBeat, cl.Cues[0].Kind)
	assert.Equal(t, 63.0, cl.Cues[7].Beat)
	assert.Equal(t, 31.5, cl.Cues[7].Time)

	assert.Empty(t, EveryNBeats(newTestTimeline(t), 0, 0).Cues)
}

func TestSectionStarts(t *testing.T) {
	t.Parallel()

	cl := SectionStarts(newTestTimeline(t))
	require.Len(t, cl.Cues, 2)
	assert.Equal(t, "intro", cl.Cues[0].Name)
	assert.Equal(t, 0.0, cl.Cues[0].Time)
	assert.Equal(t, "verse", cl.Cues[1].Name)
	assert.Equal(t, 4.0, cl.Cues[1].Time)
	assert.Equal(t, KindSection, cl.Cues[1].Kind)
}

func TestCueListAddKeepsTimeOrder(t *testing.T) {
	t.Parallel()

	cl := NewCueList("manual")
	cl.Add(&Cue{Name: "b", Time: 2})
	cl.Add(&Cue{Name: "a", Time: 1})
	cl.Add(&Cue{Name: "c", Time: 2})

	var names []string
	for _, c := range cl.Cues {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
	assert.Equal(t, "manual", cl.Name())
}

func TestCueListDue(t *testing.T) {
	t.Parallel()

	cl := EveryNBeats(newTestTimeline(t), 8, 7)

	assert.Equal(t, []float64{7, 15}, beats(cl.Due(rhythm.NewTimeWindow(3, 7.5))))
	assert.Equal(t, []float64{7}, beats(cl.Due(rhythm.NewTimeWindow(3.5, 3.5))))
	assert.Empty(t, cl.Due(rhythm.NewTimeWindow(4, 7)))
	assert.Empty(t, cl.Due(rhythm.NewTimeWindow(7.5, 3)))
}
