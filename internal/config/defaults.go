package config

import (
	"embed"
	"io/fs"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/dungeon.yaml
var defaultDungeonYAML []byte

//go:embed defaults/maps/*.csv
var defaultMaps embed.FS

// DefaultGameplay returns the default gameplay constants.
func DefaultGameplay() Gameplay {
	return Gameplay{
		TickRate:        60,
		TileSize:        16,
		FadeSpeed:       3.0,
		EdgeMarginLow:   32,
		EdgeMarginHigh:  48,
		SpawnInsetLow:   80,
		SpawnInsetHigh:  100,
		StartRoom:       1,
		StartPos:        Point{X: 50, Y: 80},
		GameOverRespawn: Point{X: 40, Y: 20},
		VictoryRespawn:  Point{X: 100, Y: 100},
		PlayerSpeed:     100,
		PlayerHealth:    100,
		StatusSeconds:   2,
		Difficulty:      DifficultyNormal,
	}
}

// Default returns the embedded dungeon configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultDungeonYAML, &cfg); err != nil {
		return Config{Gameplay: DefaultGameplay()} // Fallback to hardcoded if embed fails
	}
	cfg.applyDefaults()
	return cfg
}

// DefaultMaps returns the embedded room maps rooted so that paths in the
// default world definition ("maps/Room_01.csv") resolve.
func DefaultMaps() fs.FS {
	sub, err := fs.Sub(defaultMaps, "defaults")
	if err != nil {
		return defaultMaps
	}
	return sub
}

// applyDefaults fills zero gameplay values from DefaultGameplay.
func (c *Config) applyDefaults() {
	d := DefaultGameplay()
	g := &c.Gameplay

	if g.TickRate <= 0 {
		g.TickRate = d.TickRate
	}
	if g.TileSize <= 0 {
		g.TileSize = d.TileSize
	}
	if g.FadeSpeed <= 0 {
		g.FadeSpeed = d.FadeSpeed
	}
	if g.EdgeMarginLow <= 0 {
		g.EdgeMarginLow = d.EdgeMarginLow
	}
	if g.EdgeMarginHigh <= 0 {
		g.EdgeMarginHigh = d.EdgeMarginHigh
	}
	if g.SpawnInsetLow <= 0 {
		g.SpawnInsetLow = d.SpawnInsetLow
	}
	if g.SpawnInsetHigh <= 0 {
		g.SpawnInsetHigh = d.SpawnInsetHigh
	}
	if g.StartRoom == 0 {
		g.StartRoom = d.StartRoom
	}
	if g.StartPos == (Point{}) {
		g.StartPos = d.StartPos
	}
	if g.GameOverRespawn == (Point{}) {
		g.GameOverRespawn = d.GameOverRespawn
	}
	if g.VictoryRespawn == (Point{}) {
		g.VictoryRespawn = d.VictoryRespawn
	}
	if g.PlayerSpeed <= 0 {
		g.PlayerSpeed = d.PlayerSpeed
	}
	if g.PlayerHealth <= 0 {
		g.PlayerHealth = d.PlayerHealth
	}
	if g.StatusSeconds <= 0 {
		g.StatusSeconds = d.StatusSeconds
	}
	if g.Difficulty == "" {
		g.Difficulty = d.Difficulty
	}
	if c.World.AmbientVolume <= 0 {
		c.World.AmbientVolume = 1.0
	}
}
