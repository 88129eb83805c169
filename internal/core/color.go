package core

// Color is the foreground color of a screen cell.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorMagenta
	ColorOrange
	ColorCyan
	ColorWhite
	ColorGray
	ColorBrightWhite
)

// ANSI returns the 256-color palette code for the color.
// ColorDefault returns an empty string, meaning the terminal default.
func (c Color) ANSI() string {
	switch c {
	case ColorRed:
		return "9"
	case ColorGreen:
		return "10"
	case ColorBlue:
		return "12"
	case ColorYellow:
		return "11"
	case ColorMagenta:
		return "13"
	case ColorOrange:
		return "208"
	case ColorCyan:
		return "14"
	case ColorWhite:
		return "7"
	case ColorGray:
		return "245"
	case ColorBrightWhite:
		return "15"
	default:
		return ""
	}
}
