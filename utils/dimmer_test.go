package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDimmerValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, byte(0), GetDimmerValue(-1))
	assert.Equal(t, byte(128), GetDimmerValue(0.5))
	assert.Equal(t, byte(255), GetDimmerValue(3))
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, Clamp(7, 0, 5))
	assert.Equal(t, 0.5, Clamp(0.5, 1.0, 0.0))
	assert.Equal(t, -1.0, Clamp(-3.0, -1.0, 1.0))
}
