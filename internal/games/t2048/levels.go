// Package t2048 implements the classic 2048 sliding puzzle on top of the grid
// engine, with a ten-level campaign and an endless mode.
package t2048

import "fmt"

// Level is a campaign stage: reach Target to clear it.
type Level struct {
	ID     int
	Name   string
	Target int     // Tile value that clears the level
	Spawn4 float64 // Probability of spawning 4 instead of 2
}

// Goal returns a short description of the level target.
func (l Level) Goal() string {
	return fmt.Sprintf("Reach %d", l.Target)
}

// Levels lists the campaign. Score and board carry over between levels, so
// later targets build on earlier progress while 4s become more frequent.
var Levels = []Level{
	{ID: 1, Name: "Warm-up", Target: 128, Spawn4: 0.10},
	{ID: 2, Name: "Getting Started", Target: 256, Spawn4: 0.10},
	{ID: 3, Name: "Building Momentum", Target: 512, Spawn4: 0.10},
	{ID: 4, Name: "The Climb", Target: 1024, Spawn4: 0.10},
	{ID: 5, Name: "Classic 2048", Target: 2048, Spawn4: 0.10},
	{ID: 6, Name: "Beyond Limits", Target: 4096, Spawn4: 0.12},
	{ID: 7, Name: "Master Class", Target: 8192, Spawn4: 0.15},
	{ID: 8, Name: "Expert Challenge", Target: 8192, Spawn4: 0.18},
	{ID: 9, Name: "Grandmaster", Target: 8192, Spawn4: 0.20},
	{ID: 10, Name: "Ultimate Champion", Target: 8192, Spawn4: 0.25},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based), or nil when out
// of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}
