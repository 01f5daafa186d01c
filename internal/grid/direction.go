package grid

import (
	"fmt"
	"strings"
)

// Direction is a sliding move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every valid direction.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection converts a name like "left" or "L" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("grid: unknown direction %q", s)
}

// rotations returns how many clockwise quarter turns map d onto "left".
func (d Direction) rotations() int {
	switch d {
	case DirLeft:
		return 0
	case DirDown:
		return 1
	case DirRight:
		return 2
	case DirUp:
		return 3
	}
	panic(fmt.Sprintf("grid: invalid direction %d", int(d)))
}
