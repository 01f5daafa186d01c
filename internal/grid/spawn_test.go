package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullBoard() Board {
	return FromValues([][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}, NewSequence())
}

func TestSpawnPlacesNewTile(t *testing.T) {
	ids := NewSequence()
	s := NewSpawner(rand.New(rand.NewSource(1)), ids)
	empty := NewBoard(4)

	res := s.Spawn(empty)

	require.True(t, res.Placed)
	assert.Equal(t, 1, res.Board.Count())
	assert.Zero(t, empty.Count(), "input board must not change")

	tile := res.Board.At(res.Event.Pos.Row, res.Event.Pos.Col)
	assert.True(t, tile.IsNew)
	assert.Equal(t, res.Event.ID, tile.ID)
	assert.Equal(t, res.Event.Value, tile.Value)
	assert.Contains(t, []int{2, 4}, tile.Value)
}

func TestSpawnOnFullBoard(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(1)), NewSequence())
	b := fullBoard()

	res := s.Spawn(b)

	assert.False(t, res.Placed)
	assert.True(t, res.Board.SameValues(b))
	assert.Equal(t, SpawnEvent{}, res.Event)
}

func TestSpawnOnlyUsesEmptySlots(t *testing.T) {
	b := FromValues([][]int{
		{2, 4, 2, 4},
		{4, 2, 0, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}, NewSequence())
	s := NewSpawner(rand.New(rand.NewSource(7)), NewSequence())

	for range 20 {
		res := s.Spawn(b)
		require.True(t, res.Placed)
		assert.Equal(t, Pos{Row: 1, Col: 2}, res.Event.Pos)
	}
}

func TestSpawnValueDistribution(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(42)), NewSequence())
	b := NewBoard(4)

	const runs = 10000
	fours := 0
	slots := make(map[Pos]int)
	for range runs {
		res := s.Spawn(b)
		if res.Event.Value == 4 {
			fours++
		}
		slots[res.Event.Pos]++
	}

	ratio := float64(fours) / runs
	assert.InDelta(t, DefaultSpawn4, ratio, 0.02)

	assert.Len(t, slots, 16, "every empty slot should be reachable")
	for pos, n := range slots {
		assert.InDelta(t, runs/16, n, 150, "slot %v", pos)
	}
}

func TestSpawnProbabilityOverride(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(3)), NewSequence())

	s.SetSpawn4(1)
	for range 50 {
		assert.Equal(t, 4, s.Spawn(NewBoard(4)).Event.Value)
	}

	s.SetSpawn4(-5)
	assert.Zero(t, s.Spawn4())
	for range 50 {
		assert.Equal(t, 2, s.Spawn(NewBoard(4)).Event.Value)
	}
}

func TestSpawnDeterministicWithSeed(t *testing.T) {
	run := func() []SpawnEvent {
		s := NewSpawner(rand.New(rand.NewSource(99)), NewSequence())
		b := NewBoard(4)
		var events []SpawnEvent
		for range 8 {
			res := s.Spawn(b)
			b = res.Board
			events = append(events, res.Event)
		}
		return events
	}

	assert.Equal(t, run(), run())
}
