package beatmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityMap(t *testing.T) {
	t.Parallel()

	m, err := FromPairs([][2]float64{{0, 0}, {1, 1}})
	require.NoError(t, err)

	assert.Equal(t, 0.5, m.Forward(0.5))
	assert.Equal(t, 0.5, m.Inverse(0.5))

	// no clamping outside the sampled range
	assert.Equal(t, 2.0, m.Forward(2))
	assert.Equal(t, -1.0, m.Forward(-1))
	assert.Equal(t, 3.0, m.Inverse(3))
}

func TestConstructionErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		pairs [][2]float64
	}{
		{"empty", nil},
		{"single point", [][2]float64{{0, 0}}},
		{"decreasing range", [][2]float64{{0, 0}, {1, -1}}},
		{"decreasing after sort", [][2]float64{{2, 1}, {0, 0}, {1, 5}}},
		{"duplicate domain", [][2]float64{{0, 0}, {1, 1}, {1, 1}}},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			m, err := FromPairs(testCase.pairs)
			require.Error(t, err)
			assert.Nil(t, m)

			var ce *ConstructionError
			assert.True(t, errors.As(err, &ce))
		})
	}
}

func TestUnsortedInputIsSorted(t *testing.T) {
	t.Parallel()

	m, err := FromPairs([][2]float64{{8, 4}, {0, 0}, {4, 2}})
	require.NoError(t, err)

	assert.Equal(t, Breakpoint{Domain: 0, Range: 0}, m.First())
	assert.Equal(t, Breakpoint{Domain: 8, Range: 4}, m.Last())
	assert.Equal(t, 3.0, m.Forward(6))
}

func TestBeatsToSeconds(t *testing.T) {
	t.Parallel()

	// 120bpm for 8 beats, then 60bpm
	m, err := FromPairs([][2]float64{{0, 1}, {8, 5}, {16, 13}})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, m.Forward(0), 1e-9)
	assert.InDelta(t, 3.0, m.Forward(4), 1e-9)
	assert.InDelta(t, 9.0, m.Forward(12), 1e-9)

	// extrapolates with the first and last segments
	assert.InDelta(t, 0.5, m.Forward(-1), 1e-9)
	assert.InDelta(t, 15.0, m.Forward(18), 1e-9)
	assert.InDelta(t, -2.0, m.Inverse(0), 1e-9)

	// the breakpoint itself uses the segment that starts there
	assert.InDelta(t, 5.0, m.Forward(8), 1e-9)
	assert.InDelta(t, 8.0, m.Inverse(5), 1e-9)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	m, err := FromPairs([][2]float64{{0, 0.37}, {4, 2.41}, {9, 4.9}, {17, 8.95}, {32, 16.2}})
	require.NoError(t, err)

	for x := 0.0; x <= 32; x += 0.25 {
		assert.InDelta(t, x, m.Inverse(m.Forward(x)), 1e-9)
	}
	for y := 0.37; y <= 16.2; y += 0.1 {
		assert.InDelta(t, y, m.Forward(m.Inverse(y)), 1e-9)
	}
}

func TestFlatSegment(t *testing.T) {
	t.Parallel()

	m, err := FromPairs([][2]float64{{0, 0}, {1, 1}, {2, 1}, {3, 2}})
	require.NoError(t, err)

	assert.Equal(t, 1.0, m.Forward(1.5))
	assert.Equal(t, 2.5, m.Inverse(1.5))
}

func TestFlatOuterSegmentInverse(t *testing.T) {
	t.Parallel()

	m, err := FromPairs([][2]float64{{0, 1}, {1, 1}, {2, 2}})
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.Inverse(0.5))
}

func TestBreakpointsIsACopy(t *testing.T) {
	t.Parallel()

	m, err := FromPairs([][2]float64{{0, 0}, {1, 1}})
	require.NoError(t, err)

	points := m.Breakpoints()
	points[0].Range = 100
	assert.Equal(t, 0.5, m.Forward(0.5))
}
