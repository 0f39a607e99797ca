package world

import (
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/entity"
	"github.com/vovakirdan/tui-dungeon/internal/render"
	"github.com/vovakirdan/tui-dungeon/internal/tilemap"
)

// Room is one cell of the dungeon: a tile grid, its exits and the things
// inside it.
type Room struct {
	id          int
	tiles       *tilemap.Grid
	connections map[Direction]int
	items       []*entity.Item
	enemies     []*entity.Enemy
	decor       []*entity.Decor

	// Ambient is the music track for the room; empty keeps the current one.
	Ambient string
	// EntryX and EntryY replace the coordinate an arriving player carries
	// over from the room they left.
	EntryX *float64
	EntryY *float64
}

// UpdateResult reports what happened in a room during one tick.
type UpdateResult struct {
	Collected []*entity.Item // In collection order
	Damage    int            // Contact damage applied to the player
}

// Won reports whether the goal item was collected.
func (u UpdateResult) Won() bool {
	for _, it := range u.Collected {
		if it.IsGoal() {
			return true
		}
	}
	return false
}

// NewRoom creates an empty room around a tile grid.
func NewRoom(id int, tiles *tilemap.Grid) *Room {
	return &Room{
		id:          id,
		tiles:       tiles,
		connections: make(map[Direction]int),
	}
}

// ID returns the room identifier.
func (r *Room) ID() int { return r.id }

// Tiles returns the room's tile grid. It may be nil.
func (r *Room) Tiles() *tilemap.Grid { return r.tiles }

// Connect records or overwrites the neighbor in a direction.
func (r *Room) Connect(dir Direction, neighbor int) {
	r.connections[dir] = neighbor
}

// Neighbor returns the room connected in a direction.
func (r *Room) Neighbor(dir Direction) (int, bool) {
	id, ok := r.connections[dir]
	return id, ok
}

// Connections returns a copy of the room's exits.
func (r *Room) Connections() map[Direction]int {
	out := make(map[Direction]int, len(r.connections))
	for d, id := range r.connections {
		out[d] = id
	}
	return out
}

// AddItem appends a collectible.
func (r *Room) AddItem(it *entity.Item) { r.items = append(r.items, it) }

// AddEnemy appends an enemy.
func (r *Room) AddEnemy(e *entity.Enemy) { r.enemies = append(r.enemies, e) }

// AddDecor appends an obstacle.
func (r *Room) AddDecor(d *entity.Decor) { r.decor = append(r.decor, d) }

// Items returns the items still lying in the room.
func (r *Room) Items() []*entity.Item { return r.items }

// Enemies returns the room's enemies.
func (r *Room) Enemies() []*entity.Enemy { return r.enemies }

// Decor returns the room's obstacles.
func (r *Room) Decor() []*entity.Decor { return r.decor }

// WidthPixels returns the map width, 0 without a grid.
func (r *Room) WidthPixels() int {
	if r.tiles == nil {
		return 0
	}
	return r.tiles.WidthPixels()
}

// HeightPixels returns the map height, 0 without a grid.
func (r *Room) HeightPixels() int {
	if r.tiles == nil {
		return 0
	}
	return r.tiles.HeightPixels()
}

// Collider returns the grid for movement checks, nil without a grid.
func (r *Room) Collider() entity.Collider {
	if r.tiles == nil {
		return nil
	}
	return r.tiles
}

// IsCollidingWithDecor reports whether rect overlaps any obstacle.
func (r *Room) IsCollidingWithDecor(rect core.Rect) bool {
	for _, d := range r.decor {
		if rect.Intersects(d.Bounds()) {
			return true
		}
	}
	return false
}

// Update advances every enemy in order, applies contact damage and picks
// up the items the player touches.
func (r *Room) Update(dt float64, p *entity.Player) UpdateResult {
	var res UpdateResult

	grid := r.Collider()
	for _, e := range r.enemies {
		e.Update(dt, p, grid)
	}

	if p == nil {
		return res
	}

	pb := p.Bounds()
	for _, e := range r.enemies {
		if e.Bounds().Intersects(pb) && p.TakeDamage(e.Damage) {
			res.Damage += e.Damage
		}
	}

	kept := r.items[:0]
	for _, it := range r.items {
		if pb.Intersects(it.Bounds()) {
			it.Collect(p)
			res.Collected = append(res.Collected, it)
			continue
		}
		kept = append(kept, it)
	}
	clear(r.items[len(kept):])
	r.items = kept

	return res
}

// UpdateWith runs Update and calls onCollected once per collected item
// before returning.
func (r *Room) UpdateWith(dt float64, p *entity.Player, onCollected func(*entity.Item)) UpdateResult {
	res := r.Update(dt, p)
	if onCollected != nil {
		for _, it := range res.Collected {
			onCollected(it)
		}
	}
	return res
}

// Draw emits the tiles, decor, items and enemies of the room.
func (r *Room) Draw(rd render.Renderer) {
	if r.tiles != nil {
		r.tiles.Draw(rd)
	}
	for _, d := range r.decor {
		d.Draw(rd)
	}
	for _, it := range r.items {
		it.Draw(rd)
	}
	for _, e := range r.enemies {
		e.Draw(rd)
	}
}
