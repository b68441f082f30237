package utils

import (
	"fmt"
	"math"
)

// FormatClock renders seconds as m:ss, the way the timeline labels its ticks. Negative times get a sign.
func FormatClock(seconds float64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%s%d:%02d", sign, total/60, total%60)
}
