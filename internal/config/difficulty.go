package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Scaling holds the multipliers a preset applies to the world.
type Scaling struct {
	EnemySpeed   float64 // Multiplies every enemy's speed
	EnemyDamage  float64 // Multiplies every enemy's contact damage
	PlayerHealth float64 // Multiplies the player's starting health
}

// ParseDifficulty validates a preset name.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ScalingFor returns the multipliers for a difficulty preset.
// Unknown presets scale like normal.
func ScalingFor(preset DifficultyPreset) Scaling {
	switch preset {
	case DifficultyEasy:
		return Scaling{EnemySpeed: 0.75, EnemyDamage: 0.5, PlayerHealth: 1.5}
	case DifficultyHard:
		return Scaling{EnemySpeed: 1.3, EnemyDamage: 2.0, PlayerHealth: 0.75}
	default:
		return Scaling{EnemySpeed: 1, EnemyDamage: 1, PlayerHealth: 1}
	}
}

// Scaling returns the multipliers of the configured preset.
func (g Gameplay) Scaling() Scaling {
	return ScalingFor(g.Difficulty)
}

// StartHealth returns the player's starting health after difficulty scaling.
func (g Gameplay) StartHealth() int {
	return max(int(float64(g.PlayerHealth)*g.Scaling().PlayerHealth), 1)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Gameplay.Difficulty = preset
}
