package core

import "math/bits"

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
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
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// tilePalette is indexed by log2(value)-1: 2, 4, 8, ... 2048 and beyond
// reuse the last entry.
var tilePalette = []Color{
	ColorWhite,         // 2
	ColorBrightWhite,   // 4
	ColorYellow,        // 8
	ColorOrange,        // 16
	ColorRed,           // 32
	ColorBrightRed,     // 64
	ColorBrightYellow,  // 128
	ColorGreen,         // 256
	ColorBrightGreen,   // 512
	ColorCyan,          // 1024
	ColorBrightCyan,    // 2048
	ColorBrightMagenta, // 4096+
}

// TileColor returns the display color for a tile value. Empty slots (0) are
// gray.
func TileColor(value int) Color {
	if value <= 0 {
		return ColorGray
	}
	idx := bits.Len(uint(value)) - 2
	if idx < 0 {
		idx = 0
	}
	if idx >= len(tilePalette) {
		idx = len(tilePalette) - 1
	}
	return tilePalette[idx]
}
