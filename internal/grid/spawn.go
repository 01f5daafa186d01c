package grid

import "math/rand"

// DefaultSpawn4 is the probability that a spawned tile is a 4 instead of a 2.
const DefaultSpawn4 = 0.10

// SpawnEvent records a tile placed by a Spawner.
type SpawnEvent struct {
	ID    TileID
	Pos   Pos
	Value int
}

// SpawnResult is the outcome of Spawner.Spawn.
type SpawnResult struct {
	Board  Board
	Placed bool
	Event  SpawnEvent // zero when nothing was placed
}

// Spawner places random tiles. It is not safe for concurrent use; give each
// game its own Spawner.
type Spawner struct {
	rng    *rand.Rand
	ids    IDSource
	spawn4 float64
}

// NewSpawner creates a spawner drawing from rng and naming tiles from ids.
func NewSpawner(rng *rand.Rand, ids IDSource) *Spawner {
	return &Spawner{
		rng:    rng,
		ids:    ids,
		spawn4: DefaultSpawn4,
	}
}

// SetSpawn4 changes the probability of spawning a 4, clamped to [0, 1].
func (s *Spawner) SetSpawn4(p float64) {
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	s.spawn4 = p
}

// Spawn4 returns the current probability of spawning a 4.
func (s *Spawner) Spawn4() float64 {
	return s.spawn4
}

// Spawn places a 2 or a 4 in an empty slot chosen uniformly at random.
// When the board is full it reports Placed=false and returns b unchanged.
func (s *Spawner) Spawn(b Board) SpawnResult {
	b.mustBeWellFormed()

	empty := b.EmptyCells()
	if len(empty) == 0 {
		return SpawnResult{Board: b}
	}

	pos := empty[s.rng.Intn(len(empty))]

	value := 2
	if s.rng.Float64() < s.spawn4 {
		value = 4
	}

	t := Tile{ID: s.ids.NextID(), Value: value, IsNew: true}
	return SpawnResult{
		Board:  b.with(pos.Row, pos.Col, t),
		Placed: true,
		Event:  SpawnEvent{ID: t.ID, Pos: pos, Value: value},
	}
}
