// Package bestiary registers the dungeon's enemy archetypes.
// Import it for side effects to make them available to the world builder.
package bestiary

import (
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/entity"
	"github.com/vovakirdan/tui-dungeon/internal/registry"
)

// Archetype names.
const (
	Slime  = "slime"
	Ghost  = "ghost"
	Alien  = "alien"
	Statue = "statue"
)

const (
	alienRadius = 80
	slimeStride = 48
)

func init() {
	registry.Register(Slime, newSlime)
	registry.Register(Ghost, newGhost)
	registry.Register(Alien, newAlien)
	registry.Register(Statue, newStatue)
}

// newSlime patrols its path, or a short box around its spawn if none is set.
func newSlime(s registry.Spawn) *entity.Enemy {
	path := s.Path
	if len(path) == 0 {
		path = []core.Vec2{
			s.Pos,
			s.Pos.Add(core.V(slimeStride, 0)),
			s.Pos.Add(core.V(slimeStride, slimeStride)),
			s.Pos.Add(core.V(0, slimeStride)),
		}
	}
	e := entity.NewEnemy(s.ID, Slime, s.Pos, entity.FullTextureSet(Slime), entity.NewPatrol(path...))
	e.Speed = 40
	e.Damage = 10
	e.Tint = core.ColorGreen
	return e
}

// newGhost chases the player. Its sheet has no idle strips.
func newGhost(s registry.Spawn) *entity.Enemy {
	textures := entity.NewTextureSet(Ghost, "Down", "Up", "Side")
	e := entity.NewEnemy(s.ID, Ghost, s.Pos, textures, entity.Chase{Radius: s.Radius})
	e.Speed = 50
	e.Damage = 10
	return e
}

// newAlien guards its spawn point.
func newAlien(s registry.Spawn) *entity.Enemy {
	radius := s.Radius
	if radius <= 0 {
		radius = alienRadius
	}
	e := entity.NewEnemy(s.ID, Alien, s.Pos, entity.FullTextureSet(Alien), entity.NewGuard(s.Pos, radius, radius*2))
	e.Speed = 60
	e.Damage = 15
	return e
}

// newStatue never moves but still hurts on contact.
func newStatue(s registry.Spawn) *entity.Enemy {
	textures := entity.NewTextureSet(Statue, "Down_Idle")
	e := entity.NewEnemy(s.ID, Statue, s.Pos, textures, entity.Stationary{})
	e.Speed = 0
	e.Damage = 5
	return e
}
