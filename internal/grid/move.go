package grid

// MergeEvent records one merge produced by a move.
type MergeEvent struct {
	Result  TileID    // id of the new tile
	Sources [2]TileID // consumed tiles, in sweep order
	Pos     Pos       // final position of the result tile
	Value   int       // value of the result tile
}

// MoveResult is the outcome of ApplyMove.
type MoveResult struct {
	Board     Board
	Moved     bool // some slot changed value
	ScoreGain int  // sum of all merge result values
	Merges    []MergeEvent
}

// ApplyMove slides every tile of b towards dir and merges equal neighbours.
//
// Each direction is normalised to a left sweep by rotating the board
// clockwise (left 0, down 1, right 2, up 3 quarter turns), sweeping each row,
// then rotating back. A tile produced by a merge never merges again within the
// same move. Carried tiles keep their id and lose their IsNew flag; merge
// results get a fresh id from ids and IsNew set.
//
// Panics on an invalid direction or a malformed board.
func ApplyMove(b Board, dir Direction, ids IDSource) MoveResult {
	b.mustBeWellFormed()
	if !dir.Valid() {
		panic("grid: invalid direction " + dir.String())
	}

	turns := dir.rotations()
	working := rotate(b, turns)

	swept := NewBoard(b.size)
	gain := 0
	for r := range b.size {
		row := working.cells[r*b.size : (r+1)*b.size]
		out, g := sweepRow(row, ids)
		copy(swept.cells[r*b.size:], out)
		gain += g
	}

	result := rotate(swept, (4-turns)%4)

	return MoveResult{
		Board:     result,
		Moved:     !result.SameValues(b),
		ScoreGain: gain,
		Merges:    collectMerges(result),
	}
}

// sweepRow compacts a row to the left and merges equal neighbours once.
// Returns the new row (same length) and the score gained.
func sweepRow(row []Tile, ids IDSource) ([]Tile, int) {
	tiles := make([]Tile, 0, len(row))
	for _, t := range row {
		if !t.Empty() {
			tiles = append(tiles, t)
		}
	}

	out := make([]Tile, 0, len(row))
	gain := 0
	for i := 0; i < len(tiles); i++ {
		cur := tiles[i]
		if i+1 < len(tiles) && tiles[i+1].Value == cur.Value {
			next := tiles[i+1]
			merged := Tile{
				ID:         ids.NextID(),
				Value:      cur.Value * 2,
				MergedFrom: [2]TileID{cur.ID, next.ID},
				IsNew:      true,
			}
			gain += merged.Value
			out = append(out, merged)
			i++ // skip the consumed neighbour
			continue
		}
		cur.IsNew = false
		out = append(out, cur)
	}

	for len(out) < len(row) {
		out = append(out, Tile{})
	}
	return out, gain
}

// rotate turns b clockwise by the given number of quarter turns.
func rotate(b Board, turns int) Board {
	cur := b
	for range turns {
		next := NewBoard(cur.size)
		n := cur.size
		for r := range n {
			for c := range n {
				next.cells[c*n+(n-1-r)] = cur.cells[r*n+c]
			}
		}
		cur = next
	}
	if turns == 0 {
		return b.clone()
	}
	return cur
}

// collectMerges lists the merge results present on a freshly swept board
// in row-major order.
func collectMerges(b Board) []MergeEvent {
	var events []MergeEvent
	for i, t := range b.cells {
		if t.IsNew && t.Merged() {
			events = append(events, MergeEvent{
				Result:  t.ID,
				Sources: t.MergedFrom,
				Pos:     Pos{Row: i / b.size, Col: i % b.size},
				Value:   t.Value,
			})
		}
	}
	return events
}
