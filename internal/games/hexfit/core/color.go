package core

import "strings"

// Color identifies the color of a placed piece.
// ColorNone is the color of every empty cell.
type Color uint8

const (
	ColorNone Color = iota
	ColorOrange
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPurple
	ColorCount // Sentinel value for iteration
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorOrange:
		return "orange"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	default:
		return "unknown"
	}
}

// Hex returns the RGB hex string of the color.
func (c Color) Hex() string {
	switch c {
	case ColorOrange:
		return "#FF5733"
	case ColorGreen:
		return "#33FF57"
	case ColorBlue:
		return "#3357FF"
	case ColorYellow:
		return "#F1C40F"
	case ColorPurple:
		return "#9B59B6"
	default:
		return "#CFCFCF"
	}
}

// ParseColor converts a string to a Color.
// Returns ColorNone and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "orange", "red", "o":
		return ColorOrange, true
	case "green", "g":
		return ColorGreen, true
	case "blue", "b":
		return ColorBlue, true
	case "yellow", "y":
		return ColorYellow, true
	case "purple", "p":
		return ColorPurple, true
	default:
		return ColorNone, false
	}
}

// AllColors returns every piece color.
func AllColors() []Color {
	return []Color{ColorOrange, ColorGreen, ColorBlue, ColorYellow, ColorPurple}
}
