package world

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Graph owns every room and tracks the current one.
type Graph struct {
	rooms   map[int]*Room
	current *Room
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{rooms: make(map[int]*Room)}
}

// AddRoom inserts a room. A duplicate id is ignored and the original kept.
// It returns whether the room was added.
func (g *Graph) AddRoom(r *Room) bool {
	if r == nil {
		return false
	}
	if _, exists := g.rooms[r.ID()]; exists {
		return false
	}
	g.rooms[r.ID()] = r
	return true
}

// ChangeRoom makes id the current room. Unknown ids are ignored.
func (g *Graph) ChangeRoom(id int) {
	if r, ok := g.rooms[id]; ok {
		g.current = r
	}
}

// Room returns the room with the given id.
func (g *Graph) Room(id int) (*Room, bool) {
	r, ok := g.rooms[id]
	return r, ok
}

// Rooms returns every room id in ascending order.
func (g *Graph) Rooms() []int {
	ids := make([]int, 0, len(g.rooms))
	for id := range g.rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of rooms.
func (g *Graph) Len() int { return len(g.rooms) }

// Current returns the current room, nil until one is set.
func (g *Graph) Current() *Room { return g.current }

// CurrentID returns the current room id.
func (g *Graph) CurrentID() (int, bool) {
	if g.current == nil {
		return 0, false
	}
	return g.current.ID(), true
}

// CheckBoundaryTransition returns the neighbor behind the map edge the
// player has crossed. Only one edge is considered, in priority order
// East, West, South, North.
func (g *Graph) CheckBoundaryTransition(playerX, playerY, mapWidth, mapHeight int) (int, bool) {
	_, id, ok := g.BoundaryExit(playerX, playerY, mapWidth, mapHeight)
	return id, ok
}

// BoundaryExit is CheckBoundaryTransition that also reports the direction.
func (g *Graph) BoundaryExit(playerX, playerY, mapWidth, mapHeight int) (Direction, int, bool) {
	if g.current == nil {
		return 0, 0, false
	}

	var dir Direction
	switch {
	case playerX > mapWidth:
		dir = East
	case playerX < 0:
		dir = West
	case playerY > mapHeight:
		dir = South
	case playerY < 0:
		dir = North
	default:
		return 0, 0, false
	}
	id, ok := g.current.Neighbor(dir)
	return dir, id, ok
}

// Margins are the distances from the map edges at which an exit triggers.
type Margins struct {
	Low  int // West and north
	High int // East and south
}

// NearEdgeExit returns the first connected exit, in order East, West,
// North, South, whose edge the position is within margin of.
func (g *Graph) NearEdgeExit(pos core.Vec2, m Margins) (Direction, int, bool) {
	if g.current == nil {
		return 0, 0, false
	}
	w := float64(g.current.WidthPixels())
	h := float64(g.current.HeightPixels())

	near := []struct {
		dir Direction
		ok  bool
	}{
		{East, pos.X >= w-float64(m.High)},
		{West, pos.X <= float64(m.Low)},
		{North, pos.Y <= float64(m.Low)},
		{South, pos.Y >= h-float64(m.High)},
	}
	for _, n := range near {
		if !n.ok {
			continue
		}
		if id, ok := g.current.Neighbor(n.dir); ok {
			return n.dir, id, true
		}
	}
	return 0, 0, false
}

// Issue is a problem with one edge of the graph.
type Issue struct {
	Room     int
	Dir      Direction
	Target   int
	Dangling bool // Target room does not exist
}

// String describes the issue.
func (i Issue) String() string {
	if i.Dangling {
		return fmt.Sprintf("room %d: %s exit leads to missing room %d", i.Room, i.Dir, i.Target)
	}
	return fmt.Sprintf("room %d: %s exit to room %d has no %s exit back", i.Room, i.Dir, i.Target, i.Dir.Opposite())
}

// Validate reports every edge whose target is missing and every edge
// without a matching way back, ordered by room and direction.
func (g *Graph) Validate() []Issue {
	var issues []Issue
	for _, id := range g.Rooms() {
		r := g.rooms[id]
		for _, dir := range Directions {
			target, ok := r.Neighbor(dir)
			if !ok {
				continue
			}
			other, exists := g.rooms[target]
			if !exists {
				issues = append(issues, Issue{Room: id, Dir: dir, Target: target, Dangling: true})
				continue
			}
			if back, ok := other.Neighbor(dir.Opposite()); !ok || back != id {
				issues = append(issues, Issue{Room: id, Dir: dir, Target: target})
			}
		}
	}
	return issues
}
