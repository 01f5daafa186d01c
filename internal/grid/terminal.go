package grid

// HasMovesRemaining reports whether any move can still change b: some slot is
// empty, or two horizontally or vertically adjacent tiles share a value.
// Call it after the spawn attempt that follows a move.
func HasMovesRemaining(b Board) bool {
	b.mustBeWellFormed()

	n := b.size
	for r := range n {
		for c := range n {
			t := b.cells[r*n+c]
			if t.Empty() {
				return true
			}
			if c+1 < n && b.cells[r*n+c+1].Value == t.Value {
				return true
			}
			if r+1 < n && b.cells[(r+1)*n+c].Value == t.Value {
				return true
			}
		}
	}
	return false
}
