package world

import (
	"errors"
	"fmt"
	"io/fs"
	"math"

	"github.com/vovakirdan/tui-dungeon/internal/config"
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/entity"
	"github.com/vovakirdan/tui-dungeon/internal/registry"
	"github.com/vovakirdan/tui-dungeon/internal/tilemap"
)

// MapSource loads a room map by its configured path.
type MapSource interface {
	Load(path string) (tilemap.Data, error)
}

// FSMaps loads maps from a filesystem such as the embedded defaults.
type FSMaps struct {
	FS fs.FS
}

// Load implements MapSource.
func (m FSMaps) Load(path string) (tilemap.Data, error) {
	return tilemap.LoadFS(m.FS, path)
}

// DirMaps loads maps from disk relative to Dir, then from Fallback.
type DirMaps struct {
	Dir      string
	Fallback MapSource
}

// Load implements MapSource.
func (m DirMaps) Load(path string) (tilemap.Data, error) {
	d, err := tilemap.LoadFile(path, m.Dir)
	if err == nil || m.Fallback == nil || !errors.Is(err, fs.ErrNotExist) {
		return d, err
	}
	return m.Fallback.Load(path)
}

// MapsFor returns the map source matching where cfg was loaded from.
func MapsFor(cfg config.Config) MapSource {
	embedded := FSMaps{FS: config.DefaultMaps()}
	if cfg.BaseDir == "" {
		return embedded
	}
	return DirMaps{Dir: cfg.BaseDir, Fallback: embedded}
}

// Build creates the room graph described by cfg and sets the start room.
// Dangling exits fail the build; one-way exits are left to Validate.
func Build(cfg config.Config, maps MapSource) (*Graph, error) {
	g := NewGraph()
	ts := cfg.Gameplay.TileSize
	scale := cfg.Gameplay.Scaling()
	nextEnemy := 1

	for _, rd := range cfg.World.Rooms {
		data, err := maps.Load(rd.Map)
		if err != nil {
			return nil, fmt.Errorf("world: room %d: %w", rd.ID, err)
		}
		grid, err := data.Grid(ts, ts, rd.Solid)
		if err != nil {
			return nil, fmt.Errorf("world: room %d: %w", rd.ID, err)
		}

		grid.WithTilesPerRow(rd.TilesPerRow)

		room := NewRoom(rd.ID, grid)
		room.Ambient = rd.Ambient
		if room.Ambient == "" {
			room.Ambient = cfg.World.AmbientTrack
		}
		if rd.Entry != nil {
			room.EntryX, room.EntryY = rd.Entry.X, rd.Entry.Y
		}

		for name, target := range rd.Connections {
			dir, err := ParseDirection(name)
			if err != nil {
				return nil, fmt.Errorf("world: room %d: %w", rd.ID, err)
			}
			room.Connect(dir, target)
		}

		for _, id := range rd.Items {
			kind, err := entity.ParseItemKind(id.Kind)
			if err != nil {
				return nil, fmt.Errorf("world: room %d: %w", rd.ID, err)
			}
			it := entity.NewItem(kind, core.V(id.X, id.Y))
			if id.Value > 0 {
				it.Value = id.Value
			}
			room.AddItem(it)
		}

		for _, ed := range rd.Enemies {
			path := make([]core.Vec2, 0, len(ed.Path))
			for _, p := range ed.Path {
				path = append(path, core.V(p.X, p.Y))
			}
			e, err := registry.Create(ed.Archetype, registry.Spawn{
				ID:     nextEnemy,
				Pos:    core.V(ed.X, ed.Y),
				Path:   path,
				Radius: ed.Radius,
			})
			if err != nil {
				return nil, fmt.Errorf("world: room %d: %w", rd.ID, err)
			}
			nextEnemy++
			if ed.Tint != "" {
				tint, ok := core.ParseColor(ed.Tint)
				if !ok {
					return nil, fmt.Errorf("world: room %d: unknown tint %q", rd.ID, ed.Tint)
				}
				e.Tint = tint
			}
			e.Speed *= scale.EnemySpeed
			e.Damage = int(math.Round(float64(e.Damage) * scale.EnemyDamage))
			room.AddEnemy(e)
		}

		for _, dd := range rd.Decor {
			room.AddDecor(entity.NewDecor(dd.Texture, core.V(dd.X, dd.Y), dd.W, dd.H))
		}

		if !g.AddRoom(room) {
			return nil, fmt.Errorf("world: duplicate room id %d", rd.ID)
		}
	}

	var dangling []error
	for _, issue := range g.Validate() {
		if issue.Dangling {
			dangling = append(dangling, errors.New(issue.String()))
		}
	}
	if len(dangling) > 0 {
		return nil, fmt.Errorf("world: %w", errors.Join(dangling...))
	}

	g.ChangeRoom(cfg.Gameplay.StartRoom)
	if g.Current() == nil {
		return nil, fmt.Errorf("world: start room %d not found", cfg.Gameplay.StartRoom)
	}
	return g, nil
}
