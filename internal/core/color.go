package core

import "strings"

// Color represents a foreground color for a screen cell or a sprite tint.
// Values map onto ANSI colors in the platform layer.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
	ColorGold
	ColorBrown
)

var colorNames = map[string]Color{
	"default": ColorDefault,
	"red":     ColorRed,
	"green":   ColorGreen,
	"yellow":  ColorYellow,
	"blue":    ColorBlue,
	"magenta": ColorMagenta,
	"cyan":    ColorCyan,
	"white":   ColorWhite,
	"gray":    ColorGray,
	"grey":    ColorGray,
	"gold":    ColorGold,
	"brown":   ColorBrown,
}

// ParseColor converts a color name from a config file.
// Unknown names yield ColorDefault and false.
func ParseColor(name string) (Color, bool) {
	c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
