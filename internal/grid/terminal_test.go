package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasMovesRemaining(t *testing.T) {
	tests := []struct {
		name     string
		board    [][]int
		expected bool
	}{
		{
			name: "empty slot",
			board: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 0, 4},
				{4, 2, 4, 2},
			},
			expected: true,
		},
		{
			name: "horizontal pair",
			board: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 8, 8},
			},
			expected: true,
		},
		{
			name: "vertical pair",
			board: [][]int{
				{2, 4, 2, 16},
				{4, 2, 4, 16},
				{2, 4, 2, 4},
				{4, 2, 4, 2},
			},
			expected: true,
		},
		{
			name: "checkerboard is terminal",
			board: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 4, 2},
			},
			expected: false,
		},
		{
			name: "diagonal equals do not count",
			board: [][]int{
				{2, 4, 8, 16},
				{4, 8, 16, 32},
				{8, 16, 32, 64},
				{16, 32, 64, 128},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromValues(tt.board, NewSequence())
			assert.Equal(t, tt.expected, HasMovesRemaining(b))
		})
	}
}

func TestHasMovesRemainingEmptyBoard(t *testing.T) {
	assert.True(t, HasMovesRemaining(NewBoard(4)))
	assert.True(t, HasMovesRemaining(NewBoard(1)))
}

// A full board has moves remaining exactly when some direction changes it.
func TestHasMovesRemainingMatchesMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(2048))
	values := []int{2, 4, 8, 16}

	for i := range 500 {
		rows := make([][]int, 4)
		for r := range rows {
			rows[r] = make([]int, 4)
			for c := range rows[r] {
				rows[r][c] = values[rng.Intn(len(values))]
			}
		}
		b := FromValues(rows, NewSequence())

		anyMoved := false
		for _, d := range Directions {
			if ApplyMove(b, d, NewSequence()).Moved {
				anyMoved = true
			}
		}

		assert.Equal(t, anyMoved, HasMovesRemaining(b), "board #%d:\n%s", i, b)
	}
}

func TestMaxTileAndSum(t *testing.T) {
	b := FromValues([][]int{
		{2, 0, 0, 0},
		{0, 64, 0, 0},
		{0, 0, 8, 0},
		{0, 0, 0, 0},
	}, NewSequence())

	assert.Equal(t, 64, b.MaxTile())
	assert.Equal(t, 74, b.Sum())
	assert.Equal(t, 3, b.Count())
	assert.Len(t, b.EmptyCells(), 13)
}

func TestFromValuesRejectsMalformedInput(t *testing.T) {
	assert.Panics(t, func() {
		FromValues([][]int{{2, 2}, {2}}, NewSequence())
	}, "ragged rows")
	assert.Panics(t, func() {
		FromValues([][]int{{3, 0}, {0, 0}}, NewSequence())
	}, "non power of two")
	assert.Panics(t, func() {
		NewBoard(0)
	})
}
