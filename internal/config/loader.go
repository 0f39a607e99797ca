package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up on disk.
const FileName = "dungeon.yaml"

// Load loads the dungeon configuration.
// Search order: customPath -> ~/.dungeon/dungeon.yaml -> ./configs/dungeon.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", FileName)); err == nil {
		return cfg, cfg.Validate()
	}

	// Use embedded default YAML
	cfg := Default()
	return cfg, cfg.Validate()
}

// loadFile reads and parses one config file. Maps are resolved relative to it.
func loadFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if abs, err := filepath.Abs(path); err == nil {
		cfg.BaseDir = filepath.Dir(abs)
	} else {
		cfg.BaseDir = filepath.Dir(path)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dungeon", filename)
}

// Validate reports every structural problem of the configuration.
func (c Config) Validate() error {
	var errs []error

	if _, err := ParseDifficulty(string(c.Gameplay.Difficulty)); err != nil {
		errs = append(errs, err)
	}
	if len(c.World.Rooms) == 0 {
		errs = append(errs, errors.New("config: world has no rooms"))
	}

	seen := make(map[int]bool, len(c.World.Rooms))
	for _, r := range c.World.Rooms {
		if seen[r.ID] {
			errs = append(errs, fmt.Errorf("config: duplicate room id %d", r.ID))
		}
		seen[r.ID] = true

		if strings.TrimSpace(r.Map) == "" {
			errs = append(errs, fmt.Errorf("config: room %d has no map", r.ID))
		}
		for dir := range r.Connections {
			switch strings.ToLower(dir) {
			case "north", "south", "east", "west":
			default:
				errs = append(errs, fmt.Errorf("config: room %d: unknown direction %q", r.ID, dir))
			}
		}
	}

	if len(c.World.Rooms) > 0 && !seen[c.Gameplay.StartRoom] {
		errs = append(errs, fmt.Errorf("config: start room %d is not defined", c.Gameplay.StartRoom))
	}

	return errors.Join(errs...)
}
