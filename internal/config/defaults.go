package config

import (
	_ "embed"

	"github.com/vovakirdan/tile-arcade/internal/grid"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

//go:embed defaults/numbertiles.yaml
var defaultNumberTilesYAML []byte

// DefaultT2048Config returns the default 2048 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: T2048Board{
			Size:       grid.DefaultSize,
			StartTiles: 2,
		},
		Spawn: T2048Spawn{
			Spawn4: grid.DefaultSpawn4,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				Spawn4Increase: 0.15,
			},
		},
	}
}

// DefaultNumberTilesConfig returns the default column-drop configuration.
func DefaultNumberTilesConfig() NumberTilesConfig {
	return NumberTilesConfig{
		Board: NumberTilesBoard{
			Columns: grid.DefaultColumns,
			Rows:    grid.DefaultRows,
		},
		Drop: NumberTilesDrop{
			Values:   []int{2, 2, 2, 4, 4, 8},
			Starting: []int{2, 4, 8, 16, 32},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "2048", "2048_endless", "t2048":
		return defaultT2048YAML
	case "numbertiles":
		return defaultNumberTilesYAML
	default:
		return nil
	}
}
