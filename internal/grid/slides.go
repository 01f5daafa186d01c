package grid

// Slide describes where one tile of the previous board went during a move.
type Slide struct {
	ID     TileID
	From   Pos
	To     Pos
	Value  int  // value before the move
	Merged bool // consumed by a merge at To
}

// Slides traces every tile of before to its position in after, using tile
// ids and merge provenance. Renderers use it to animate a move.
func Slides(before, after Board) []Slide {
	dest := make(map[TileID]Pos, len(after.cells))
	merged := make(map[TileID]bool)
	for i, t := range after.cells {
		if t.Empty() {
			continue
		}
		p := Pos{Row: i / after.size, Col: i % after.size}
		dest[t.ID] = p
		if t.IsNew && t.Merged() {
			dest[t.MergedFrom[0]] = p
			dest[t.MergedFrom[1]] = p
			merged[t.MergedFrom[0]] = true
			merged[t.MergedFrom[1]] = true
		}
	}

	var slides []Slide
	for i, t := range before.cells {
		if t.Empty() {
			continue
		}
		to, ok := dest[t.ID]
		if !ok {
			continue
		}
		slides = append(slides, Slide{
			ID:     t.ID,
			From:   Pos{Row: i / before.size, Col: i % before.size},
			To:     to,
			Value:  t.Value,
			Merged: merged[t.ID],
		})
	}
	return slides
}
