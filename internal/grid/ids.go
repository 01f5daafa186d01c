package grid

import "sync/atomic"

// IDSource hands out tile ids. Ids only need to be unique for the lifetime
// of a board.
type IDSource interface {
	NextID() TileID
}

// Sequence is a counter-backed IDSource. The zero value is ready to use and
// starts at 1. Seeded games that share one Sequence replay with identical ids.
type Sequence struct {
	n atomic.Uint64
}

// NewSequence returns a fresh Sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// NextID returns the next id.
func (s *Sequence) NextID() TileID {
	return TileID(s.n.Add(1))
}
