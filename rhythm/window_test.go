package rhythm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowContains(t *testing.T) {
	t.Parallel()

	w := NewTimeWindow(1, 2)
	assert.True(t, w.Contains(1.5))
	assert.False(t, w.Contains(0.5))
	assert.True(t, w.Contains(2))
	assert.True(t, w.Contains(1))
	assert.False(t, w.Contains(2.0001))
	assert.Equal(t, 1.0, w.Duration())
}

func TestBackwardWindowContainsNothing(t *testing.T) {
	t.Parallel()

	w := NewTimeWindow(5, 2)
	require.True(t, w.IsBackward())
	for _, ts := range []float64{1, 2, 3, 4, 5, 6} {
		assert.False(t, w.Contains(ts), "t=%v", ts)
	}
}
