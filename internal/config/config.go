// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tile-arcade/internal/grid"
)

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Board      T2048Board       `yaml:"board"`
	Spawn      T2048Spawn       `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// T2048Board defines the board shape for 2048.
type T2048Board struct {
	Size       int `yaml:"size"`        // Board dimension (4 = classic)
	StartTiles int `yaml:"start_tiles"` // Tiles spawned on a fresh board
}

// T2048Spawn defines tile spawning for 2048.
type T2048Spawn struct {
	Spawn4 float64 `yaml:"spawn4"` // Probability of spawning a 4 instead of a 2
}

// Validate reports the first invalid field.
func (c T2048Config) Validate() error {
	if c.Board.Size < 2 || c.Board.Size > 8 {
		return fmt.Errorf("config: board.size %d out of range [2,8]", c.Board.Size)
	}
	if c.Board.StartTiles < 1 || c.Board.StartTiles > c.Board.Size*c.Board.Size {
		return fmt.Errorf("config: board.start_tiles %d out of range", c.Board.StartTiles)
	}
	if c.Spawn.Spawn4 < 0 || c.Spawn.Spawn4 > 1 {
		return fmt.Errorf("config: spawn.spawn4 %.2f out of range [0,1]", c.Spawn.Spawn4)
	}
	return nil
}

// NumberTilesConfig contains all configuration for the column-drop game.
type NumberTilesConfig struct {
	Board NumberTilesBoard `yaml:"board"`
	Drop  NumberTilesDrop  `yaml:"drop"`
}

// NumberTilesBoard defines the board shape for the column-drop game.
type NumberTilesBoard struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// NumberTilesDrop defines what gets dropped and what the board starts with.
type NumberTilesDrop struct {
	Values   []int `yaml:"values"`   // Weighted bag; duplicates raise a value's odds
	Starting []int `yaml:"starting"` // Bottom row of a fresh board, one per column
}

// Validate reports the first invalid field.
func (c NumberTilesConfig) Validate() error {
	if c.Board.Columns < 1 || c.Board.Rows < 2 {
		return fmt.Errorf("config: board %dx%d too small", c.Board.Columns, c.Board.Rows)
	}
	if len(c.Drop.Values) == 0 {
		return errors.New("config: drop.values must not be empty")
	}
	for _, v := range c.Drop.Values {
		if !grid.ValidValue(v) {
			return fmt.Errorf("config: drop value %d is not a power of two >= 2", v)
		}
	}
	if len(c.Drop.Starting) != 0 && len(c.Drop.Starting) != c.Board.Columns {
		return fmt.Errorf("config: drop.starting has %d values for %d columns", len(c.Drop.Starting), c.Board.Columns)
	}
	for _, v := range c.Drop.Starting {
		if v != 0 && !grid.ValidValue(v) {
			return fmt.Errorf("config: starting value %d is not a power of two >= 2", v)
		}
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	Spawn4Increase float64 `yaml:"spawn4_increase"` // Added to spawn4 at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
