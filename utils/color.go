package utils

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]string{
	"white":  "#FFFFFF",
	"black":  "#000000",
	"red":    "#FF0000",
	"green":  "#00FF00",
	"blue":   "#0000FF",
	"yellow": "#FFFF00",
	"orange": "#FFA500",
	"purple": "#800080",
	"pink":   "#FFC0CB",
	"cyan":   "#00FFFF",
	"gold":   "#FFD700",
	"grey":   "#808080",
	"gray":   "#808080",
}

// DefaultColor is used for sections without a colour.
var DefaultColor = colorful.Color{R: 1, G: 1, B: 1}

// ParseColor parses a hex colour ("#FFD700") or one of a handful of CSS colour names.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	return colorful.Hex(s)
}
