// Package config provides YAML-based configuration loading for the dungeon:
// gameplay constants, difficulty presets and the world definition.
package config

// Config is the full dungeon configuration.
type Config struct {
	Gameplay Gameplay `yaml:"gameplay"`
	World    World    `yaml:"world"`

	// BaseDir is the directory room maps are resolved against.
	// Empty means the embedded defaults.
	BaseDir string `yaml:"-"`
}

// Point is a world position in a config file.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Gameplay defines the tuning constants of the game flow.
type Gameplay struct {
	TickRate        int              `yaml:"tick_rate"`
	TileSize        int              `yaml:"tile_size"`
	FadeSpeed       float64          `yaml:"fade_speed"`       // Opacity change per second
	EdgeMarginLow   int              `yaml:"edge_margin_low"`  // West/north trigger distance
	EdgeMarginHigh  int              `yaml:"edge_margin_high"` // East/south trigger distance
	SpawnInsetLow   float64          `yaml:"spawn_inset_low"`
	SpawnInsetHigh  float64          `yaml:"spawn_inset_high"`
	StartRoom       int              `yaml:"start_room"`
	StartPos        Point            `yaml:"start_pos"`
	GameOverRespawn Point            `yaml:"game_over_respawn"`
	VictoryRespawn  Point            `yaml:"victory_respawn"`
	PlayerSpeed     float64          `yaml:"player_speed"`
	PlayerHealth    int              `yaml:"player_health"`
	StatusSeconds   float64          `yaml:"status_seconds"` // How long save/load messages stay
	Difficulty      DifficultyPreset `yaml:"difficulty"`
}

// World defines the rooms and the audio catalog.
type World struct {
	AmbientTrack  string    `yaml:"ambient_track"`
	AmbientVolume float64   `yaml:"ambient_volume"`
	EffectsVolume *float64  `yaml:"effects_volume,omitempty"` // Unset keeps the audio default
	Tracks        []string  `yaml:"tracks"`
	Effects       []string  `yaml:"effects"`
	Rooms         []RoomDef `yaml:"rooms"`
}

// RoomDef describes one room of the dungeon.
type RoomDef struct {
	ID          int            `yaml:"id"`
	Map         string         `yaml:"map"`
	Ambient     string         `yaml:"ambient,omitempty"`
	Entry       *EntryDef      `yaml:"entry,omitempty"`
	Connections map[string]int `yaml:"connections"`
	Items       []ItemDef      `yaml:"items"`
	Enemies     []EnemyDef     `yaml:"enemies"`
	Decor       []DecorDef     `yaml:"decor"`
	Solid       []int          `yaml:"solid,omitempty"`         // Overrides the default solid tile set
	TilesPerRow int            `yaml:"tiles_per_row,omitempty"` // Tileset columns; 0 keeps the default
}

// EntryDef overrides the coordinate an arriving player keeps from the
// room they left.
type EntryDef struct {
	X *float64 `yaml:"x,omitempty"`
	Y *float64 `yaml:"y,omitempty"`
}

// ItemDef places a collectible.
type ItemDef struct {
	Kind  string  `yaml:"kind"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Value int     `yaml:"value,omitempty"` // 0 keeps the kind's default
}

// EnemyDef places an enemy of a registered archetype.
type EnemyDef struct {
	Archetype string  `yaml:"archetype"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Path      []Point `yaml:"path,omitempty"`
	Radius    float64 `yaml:"radius,omitempty"`
	Tint      string  `yaml:"tint,omitempty"` // Color name overriding the archetype tint
}

// DecorDef places a static obstacle.
type DecorDef struct {
	Texture string  `yaml:"texture"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	W       int     `yaml:"w,omitempty"`
	H       int     `yaml:"h,omitempty"`
}

// Room returns the definition with the given id.
func (w World) Room(id int) (RoomDef, bool) {
	for _, r := range w.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return RoomDef{}, false
}
