package core

import "image/color"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBlack
	ColorPurple
)

// ANSI returns the 256-color palette index for the color.
// ColorDefault returns -1 (terminal default).
func (c Color) ANSI() int {
	switch c {
	case ColorRed:
		return 1
	case ColorGreen:
		return 2
	case ColorYellow:
		return 3
	case ColorBlue:
		return 4
	case ColorMagenta:
		return 5
	case ColorCyan:
		return 6
	case ColorWhite:
		return 7
	case ColorBrightRed:
		return 9
	case ColorBrightGreen:
		return 10
	case ColorBrightYellow:
		return 11
	case ColorBrightBlue:
		return 12
	case ColorBrightMagenta:
		return 13
	case ColorBrightCyan:
		return 14
	case ColorBrightWhite:
		return 15
	case ColorOrange:
		return 208
	case ColorGray:
		return 245
	case ColorBlack:
		return 0
	case ColorPurple:
		return 91
	default:
		return -1
	}
}

// RGBA returns the true-color value used by pixel hosts.
func (c Color) RGBA() color.RGBA {
	switch c {
	case ColorBlack, ColorDefault:
		return color.RGBA{A: 0xff}
	case ColorRed, ColorBrightRed:
		return color.RGBA{R: 0xff, A: 0xff}
	case ColorGreen, ColorBrightGreen:
		return color.RGBA{G: 0xff, A: 0xff}
	case ColorYellow, ColorBrightYellow:
		return color.RGBA{R: 0xff, G: 0xff, A: 0xff}
	case ColorBlue, ColorBrightBlue:
		return color.RGBA{B: 0xff, A: 0xff}
	case ColorMagenta, ColorBrightMagenta:
		return color.RGBA{R: 0xff, B: 0xff, A: 0xff}
	case ColorCyan, ColorBrightCyan:
		return color.RGBA{G: 0xff, B: 0xff, A: 0xff}
	case ColorOrange:
		return color.RGBA{R: 0xff, G: 0xa5, A: 0xff}
	case ColorGray:
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	case ColorPurple:
		return color.RGBA{R: 0x80, B: 0x80, A: 0xff}
	default:
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
}
