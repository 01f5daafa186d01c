package grid

import "fmt"

// Column-drop defaults.
const (
	DefaultColumns = 5
	DefaultRows    = 12
)

// ColumnBoard is the board of the column-drop game: W columns of H rows
// holding plain values (0 = empty). Tiles rest on the bottom row (H-1) and
// stack upwards.
type ColumnBoard struct {
	width  int
	height int
	cells  []int
}

// ChainStep is one merge of a drop's chain.
type ChainStep struct {
	Row   int // row of the merge result
	Value int // merged value
}

// DropResult is the outcome of ColumnBoard.Drop.
type DropResult struct {
	Board     ColumnBoard
	Placed    bool
	Pos       Pos // final resting slot of the dropped value
	Value     int // final value after all merges
	ScoreGain int
	Chain     []ChainStep
}

// NewColumnBoard returns an empty width×height column board.
// Panics if either dimension is less than 1.
func NewColumnBoard(width, height int) ColumnBoard {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("grid: invalid column board %dx%d", width, height))
	}
	return ColumnBoard{
		width:  width,
		height: height,
		cells:  make([]int, width*height),
	}
}

// ColumnBoardFromRows builds a column board from top-to-bottom rows.
// Panics on ragged rows or invalid values. Floating tiles are accepted as
// given; Drop only looks at the landing slot and the tiles beneath it.
func ColumnBoardFromRows(rows [][]int) ColumnBoard {
	if len(rows) == 0 {
		panic("grid: column board needs at least one row")
	}
	b := NewColumnBoard(len(rows[0]), len(rows))
	for r, row := range rows {
		if len(row) != b.width {
			panic(fmt.Sprintf("grid: row %d has %d columns, want %d", r, len(row), b.width))
		}
		for c, v := range row {
			if v != 0 && !ValidValue(v) {
				panic(fmt.Sprintf("grid: invalid tile value %d at (%d,%d)", v, r, c))
			}
			b.cells[r*b.width+c] = v
		}
	}
	return b
}

// WithBottomRow returns a copy of b with the bottom row set to values.
// Panics when len(values) differs from the board width.
func (b ColumnBoard) WithBottomRow(values []int) ColumnBoard {
	if len(values) != b.width {
		panic(fmt.Sprintf("grid: bottom row has %d values, want %d", len(values), b.width))
	}
	cp := b.clone()
	copy(cp.cells[(b.height-1)*b.width:], values)
	return cp
}

// Width returns the number of columns.
func (b ColumnBoard) Width() int { return b.width }

// Height returns the number of rows.
func (b ColumnBoard) Height() int { return b.height }

// At returns the value at (row, col), 0 when empty.
func (b ColumnBoard) At(row, col int) int {
	return b.cells[row*b.width+col]
}

// Rows returns the values as a fresh top-to-bottom matrix.
func (b ColumnBoard) Rows() [][]int {
	out := make([][]int, b.height)
	for r := range b.height {
		out[r] = make([]int, b.width)
		copy(out[r], b.cells[r*b.width:(r+1)*b.width])
	}
	return out
}

// MaxTile returns the highest value on the board.
func (b ColumnBoard) MaxTile() int {
	maxVal := 0
	for _, v := range b.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// LandingRow returns the lowest empty row of col, or false when the column
// is full.
func (b ColumnBoard) LandingRow(col int) (int, bool) {
	b.mustHaveColumn(col)
	for r := b.height - 1; r >= 0; r-- {
		if b.cells[r*b.width+col] == 0 {
			return r, true
		}
	}
	return 0, false
}

// CanDrop reports whether col has room for another value.
func (b ColumnBoard) CanDrop(col int) bool {
	_, ok := b.LandingRow(col)
	return ok
}

// Drop lets value fall into col. It lands in the lowest empty row, then
// merges into the tile it rests on for as long as the two values are equal.
// Unlike sliding moves, merges chain: each result may merge again with the
// next tile of the stack. Every merge adds its result value to ScoreGain.
//
// A full column leaves the board unchanged with Placed=false.
// Panics on an out-of-range column or an invalid value.
func (b ColumnBoard) Drop(col, value int) DropResult {
	b.mustHaveColumn(col)
	if !ValidValue(value) {
		panic(fmt.Sprintf("grid: invalid drop value %d", value))
	}

	row, ok := b.LandingRow(col)
	if !ok {
		return DropResult{Board: b}
	}

	next := b.clone()
	cur := value
	gain := 0
	var chain []ChainStep

	for row+1 < b.height && next.cells[(row+1)*b.width+col] == cur {
		cur *= 2
		gain += cur
		next.cells[row*b.width+col] = 0
		row++
		next.cells[row*b.width+col] = cur
		chain = append(chain, ChainStep{Row: row, Value: cur})
	}
	next.cells[row*b.width+col] = cur

	return DropResult{
		Board:     next,
		Placed:    true,
		Pos:       Pos{Row: row, Col: col},
		Value:     cur,
		ScoreGain: gain,
		Chain:     chain,
	}
}

// IsTerminal reports whether the top row has no empty column, which ends
// the game.
func (b ColumnBoard) IsTerminal() bool {
	for c := range b.width {
		if b.cells[c] == 0 {
			return false
		}
	}
	return true
}

func (b ColumnBoard) clone() ColumnBoard {
	cells := make([]int, len(b.cells))
	copy(cells, b.cells)
	return ColumnBoard{width: b.width, height: b.height, cells: cells}
}

func (b ColumnBoard) mustHaveColumn(col int) {
	if b.width < 1 || len(b.cells) != b.width*b.height {
		panic("grid: malformed column board")
	}
	if col < 0 || col >= b.width {
		panic(fmt.Sprintf("grid: column %d out of range [0,%d)", col, b.width))
	}
}
