package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadT2048 loads 2048 configuration.
// Search order: customPath -> ~/.arcade/configs/t2048.yaml -> ./configs/t2048.yaml -> embedded default
func LoadT2048(customPath string) (T2048Config, error) {
	return load("t2048.yaml", customPath, defaultT2048YAML, DefaultT2048Config)
}

// LoadNumberTiles loads column-drop configuration.
// Search order: customPath -> ~/.arcade/configs/numbertiles.yaml -> ./configs/numbertiles.yaml -> embedded default
func LoadNumberTiles(customPath string) (NumberTilesConfig, error) {
	return load("numbertiles.yaml", customPath, defaultNumberTilesYAML, DefaultNumberTilesConfig)
}

// validator is implemented by every game config.
type validator interface {
	Validate() error
}

// load reads the first usable config file on the search path. Files are
// decoded over the hardcoded defaults, so a partial file only overrides the
// keys it names. An explicit customPath that cannot be read or parsed is an
// error; the implicit locations are skipped when unusable.
func load[T validator](filename, customPath string, embedded []byte, defaults func() T) (T, error) {
	if customPath != "" {
		cfg := defaults()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{filepath.Join("configs", filename)}
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}

	for _, path := range candidates {
		if cfg, ok := tryLoad(path, defaults); ok {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := defaults()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil || cfg.Validate() != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func tryLoad[T validator](path string, defaults func() T) (T, bool) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Hard games also start from a higher base rate of 4s
	switch preset {
	case DifficultyEasy:
		cfg.Spawn.Spawn4 = 0.05
	case DifficultyHard:
		cfg.Spawn.Spawn4 = 0.20
	}
}
