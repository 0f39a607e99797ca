package entity

import (
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/render"
)

// Default enemy stats.
const (
	DefaultEnemySpeed  = 50
	DefaultEnemyDamage = 10
)

// Collider answers whether a rectangle overlaps something solid.
type Collider interface {
	IsColliding(r core.Rect) bool
}

// Enemy is a hostile actor whose motion is decided by a swappable Behavior.
type Enemy struct {
	ID        int
	Archetype string
	Pos       core.Vec2
	Speed     float64
	Damage    int
	Textures  TextureSet
	Tint      core.Color

	behavior Behavior
	anim     Animator
}

// NewEnemy creates an enemy with default stats. A nil behavior stands still.
func NewEnemy(id int, archetype string, pos core.Vec2, textures TextureSet, b Behavior) *Enemy {
	if b == nil {
		b = Stationary{}
	}
	return &Enemy{
		ID:        id,
		Archetype: archetype,
		Pos:       pos,
		Speed:     DefaultEnemySpeed,
		Damage:    DefaultEnemyDamage,
		Textures:  textures,
		behavior:  b,
	}
}

// Bounds is the 24x24 hit box inset by 4 inside the 32x32 sprite.
func (e *Enemy) Bounds() core.Rect {
	return core.NewRect(int(e.Pos.X)+4, int(e.Pos.Y)+4, 24, 24)
}

// Center returns the center of the sprite.
func (e *Enemy) Center() core.Vec2 {
	return e.Pos.Add(core.V(FrameSize/2, FrameSize/2))
}

// Behavior returns the current strategy.
func (e *Enemy) Behavior() Behavior { return e.behavior }

// ChangeBehavior replaces the strategy. It applies from the next Update.
func (e *Enemy) ChangeBehavior(b Behavior) {
	if b == nil {
		b = Stationary{}
	}
	e.behavior = b
}

// Facing returns the direction the enemy looks at.
func (e *Enemy) Facing() Facing { return e.anim.Facing() }

// Moving reports whether the enemy moved during the last update.
func (e *Enemy) Moving() bool { return e.anim.Moving() }

// Frame returns the current animation frame.
func (e *Enemy) Frame() int { return e.anim.Frame() }

// AnimationKey returns the resolved animation key and whether it is mirrored.
func (e *Enemy) AnimationKey() (string, bool) {
	key, flip, _ := e.anim.Resolve(e.Textures)
	return key, flip
}

// Update runs the behavior, rolls back into the previous position if the
// new bounds collide with the grid, then updates facing and animation.
// A nil grid skips collision.
func (e *Enemy) Update(dt float64, p *Player, grid Collider) {
	prev := e.Pos
	e.behavior.Update(e, p, dt)

	if grid != nil && grid.IsColliding(e.Bounds()) {
		e.Pos = prev
	}

	e.anim.Observe(e.Pos.Sub(prev))
	e.anim.Advance(dt)
}

// Draw emits the current animation frame. Nothing is drawn when the texture
// set has no usable key.
func (e *Enemy) Draw(r render.Renderer) {
	key, flip, ok := e.anim.Resolve(e.Textures)
	if !ok {
		return
	}
	r.Draw(render.Sprite{
		Texture: e.Textures.Base + "/" + key,
		Pos:     e.Pos,
		Src:     core.NewRect(e.anim.Frame()*FrameSize, 0, FrameSize, FrameSize),
		Tint:    e.Tint,
		FlipX:   flip,
	})
}
