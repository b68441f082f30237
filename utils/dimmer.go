package utils

import "math"

// GetDimmerValue converts a normalised level (0 to 1) into a DMX channel value.
func GetDimmerValue(level float64) byte {
	return byte(math.Round(Clamp(level, 0, 1) * 255))
}
