package core

// Color is a terminal color for a screen cell, mapped to ANSI 256-color
// codes by the platform.
type Color uint8

// Palette. ColorDefault leaves the terminal's own color in place.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
	ColorDarkGray
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorSand
	ColorForest
	ColorDeepBlue
	ColorShallow
)

// ANSI returns the 256-color code of c, or "" for ColorDefault.
func (c Color) ANSI() string {
	switch c {
	case ColorBlack:
		return "16"
	case ColorRed:
		return "1"
	case ColorGreen:
		return "2"
	case ColorYellow:
		return "3"
	case ColorBlue:
		return "4"
	case ColorMagenta:
		return "5"
	case ColorCyan:
		return "6"
	case ColorWhite:
		return "7"
	case ColorGray:
		return "245"
	case ColorDarkGray:
		return "238"
	case ColorBrightRed:
		return "9"
	case ColorBrightGreen:
		return "10"
	case ColorBrightYellow:
		return "11"
	case ColorBrightCyan:
		return "14"
	case ColorBrightWhite:
		return "15"
	case ColorOrange:
		return "208"
	case ColorSand:
		return "180"
	case ColorForest:
		return "28"
	case ColorDeepBlue:
		return "18"
	case ColorShallow:
		return "25"
	default:
		return ""
	}
}
