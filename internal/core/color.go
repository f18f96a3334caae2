package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to a terminal color.
type Color uint8

// Predefined colors. The tetromino palette follows the classic guideline
// colors (cyan I, yellow O, purple T, green S, red Z, blue J, orange L).
const (
	ColorDefault Color = iota
	ColorCyan
	ColorYellow
	ColorPurple
	ColorGreen
	ColorRed
	ColorBlue
	ColorOrange
	ColorWhite
	ColorGray
	ColorPink
)

// String returns the color name, mainly for test output.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorCyan:
		return "cyan"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorGreen:
		return "green"
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorOrange:
		return "orange"
	case ColorWhite:
		return "white"
	case ColorGray:
		return "gray"
	case ColorPink:
		return "pink"
	default:
		return "unknown"
	}
}
