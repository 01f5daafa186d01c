// Package grid implements the merge-tile transformation engine shared by the
// arcade's tile games. Boards are immutable values: every operation returns a
// new Board and leaves its input untouched, so callers can keep prior states
// for undo, replay, or change detection.
package grid

import (
	"fmt"
	"strings"
)

// DefaultSize is the board dimension of the flagship 2048 game.
const DefaultSize = 4

// TileID identifies a tile for its whole lifetime on a board.
// The zero value means "no tile".
type TileID uint64

// Tile is a single numbered piece occupying one board slot.
type Tile struct {
	ID         TileID
	Value      int
	MergedFrom [2]TileID // source ids when this tile is a merge result
	IsNew      bool      // created this turn (spawn or merge result)
}

// Empty reports whether the slot holding t is unoccupied.
func (t Tile) Empty() bool {
	return t.Value == 0
}

// Merged reports whether t was produced by merging two tiles.
func (t Tile) Merged() bool {
	return t.MergedFrom[0] != 0
}

// Pos is a (row, col) board coordinate. Row 0 is the top row.
type Pos struct {
	Row, Col int
}

// Board is a square grid of optional tiles stored in row-major order.
type Board struct {
	size  int
	cells []Tile
}

// NewBoard returns an all-empty size×size board.
// Panics if size is less than 1.
func NewBoard(size int) Board {
	if size < 1 {
		panic(fmt.Sprintf("grid: invalid board size %d", size))
	}
	return Board{
		size:  size,
		cells: make([]Tile, size*size),
	}
}

// FromValues builds a board from a square matrix of tile values, where 0
// marks an empty slot. Every occupied slot receives a fresh id from ids.
// Panics on a non-square matrix or a value that is not a power of two >= 2.
func FromValues(values [][]int, ids IDSource) Board {
	b := NewBoard(len(values))
	for r, row := range values {
		if len(row) != b.size {
			panic(fmt.Sprintf("grid: row %d has %d slots, want %d", r, len(row), b.size))
		}
		for c, v := range row {
			if v == 0 {
				continue
			}
			if !ValidValue(v) {
				panic(fmt.Sprintf("grid: invalid tile value %d at (%d,%d)", v, r, c))
			}
			b.cells[r*b.size+c] = Tile{ID: ids.NextID(), Value: v}
		}
	}
	return b
}

// ValidValue reports whether v is a legal tile value (a power of two >= 2).
func ValidValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// Size returns the board dimension.
func (b Board) Size() int {
	return b.size
}

// At returns the tile at (row, col). The tile is Empty when the slot is free.
func (b Board) At(row, col int) Tile {
	return b.cells[row*b.size+col]
}

// Values returns the tile values as a fresh matrix (0 for empty slots).
func (b Board) Values() [][]int {
	out := make([][]int, b.size)
	for r := range b.size {
		out[r] = make([]int, b.size)
		for c := range b.size {
			out[r][c] = b.cells[r*b.size+c].Value
		}
	}
	return out
}

// EmptyCells returns the coordinates of all free slots in row-major order.
func (b Board) EmptyCells() []Pos {
	var cells []Pos
	for i, t := range b.cells {
		if t.Empty() {
			cells = append(cells, Pos{Row: i / b.size, Col: i % b.size})
		}
	}
	return cells
}

// Count returns the number of occupied slots.
func (b Board) Count() int {
	n := 0
	for _, t := range b.cells {
		if !t.Empty() {
			n++
		}
	}
	return n
}

// Sum returns the total of all tile values.
func (b Board) Sum() int {
	total := 0
	for _, t := range b.cells {
		total += t.Value
	}
	return total
}

// MaxTile returns the highest tile value on the board, or 0 when empty.
func (b Board) MaxTile() int {
	maxVal := 0
	for _, t := range b.cells {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// SameValues reports whether two boards hold equal values slot by slot.
// Tile ids and flags are ignored.
func (b Board) SameValues(other Board) bool {
	if b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i].Value != other.cells[i].Value {
			return false
		}
	}
	return true
}

// Find returns the position of the tile with the given id.
func (b Board) Find(id TileID) (Pos, bool) {
	if id == 0 {
		return Pos{}, false
	}
	for i, t := range b.cells {
		if t.ID == id {
			return Pos{Row: i / b.size, Col: i % b.size}, true
		}
	}
	return Pos{}, false
}

// String renders the values as rows of right-aligned numbers, "." for empty.
func (b Board) String() string {
	var sb strings.Builder
	for r := range b.size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range b.size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			v := b.cells[r*b.size+c].Value
			if v == 0 {
				fmt.Fprintf(&sb, "%5s", ".")
			} else {
				fmt.Fprintf(&sb, "%5d", v)
			}
		}
	}
	return sb.String()
}

// with returns a copy of b with t placed at (row, col).
func (b Board) with(row, col int, t Tile) Board {
	cp := b.clone()
	cp.cells[row*b.size+col] = t
	return cp
}

func (b Board) clone() Board {
	cells := make([]Tile, len(b.cells))
	copy(cells, b.cells)
	return Board{size: b.size, cells: cells}
}

// mustBeWellFormed panics when b was not built by NewBoard or FromValues.
func (b Board) mustBeWellFormed() {
	if b.size < 1 || len(b.cells) != b.size*b.size {
		panic(fmt.Sprintf("grid: malformed board (size %d, %d cells)", b.size, len(b.cells)))
	}
}
