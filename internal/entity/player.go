package entity

import (
	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/render"
)

// Default player stats.
const (
	DefaultPlayerSpeed  = 100
	DefaultPlayerHealth = 100
	PlayerSize          = 16
	InvulnerableSeconds = 1.0
)

// Player is the hero controlled by input.
type Player struct {
	Pos      core.Vec2
	Speed    float64
	Health   int
	Score    int
	Textures TextureSet

	invulnerable float64
	anim         Animator
}

// NewPlayer creates a player with full health at pos.
func NewPlayer(pos core.Vec2) *Player {
	return &Player{
		Pos:      pos,
		Speed:    DefaultPlayerSpeed,
		Health:   DefaultPlayerHealth,
		Textures: FullTextureSet("player"),
	}
}

// Bounds is the 16x16 collision box.
func (p *Player) Bounds() core.Rect {
	return core.NewRect(int(p.Pos.X), int(p.Pos.Y), PlayerSize, PlayerSize)
}

// Center returns the center of the collision box.
func (p *Player) Center() core.Vec2 {
	return p.Pos.Add(core.V(PlayerSize/2, PlayerSize/2))
}

// SetPosition teleports the player.
func (p *Player) SetPosition(pos core.Vec2) {
	p.Pos = pos
}

// IsAlive reports whether health is positive.
func (p *Player) IsAlive() bool {
	return p.Health > 0
}

// Invulnerable reports whether recent damage still shields the player.
func (p *Player) Invulnerable() bool {
	return p.invulnerable > 0
}

// TakeDamage subtracts n health unless the player is invulnerable.
// It returns whether damage was applied.
func (p *Player) TakeDamage(n int) bool {
	if n <= 0 || p.invulnerable > 0 || !p.IsAlive() {
		return false
	}
	p.Health = max(p.Health-n, 0)
	p.invulnerable = InvulnerableSeconds
	return true
}

// AddScore adds points.
func (p *Player) AddScore(n int) {
	p.Score += n
}

// Facing returns the direction the player looks at.
func (p *Player) Facing() Facing { return p.anim.Facing() }

// Moving reports whether the player moved during the last update.
func (p *Player) Moving() bool { return p.anim.Moving() }

// Update moves the player from held directions. Each axis is rolled back
// on its own when it would collide, so the player slides along walls.
func (p *Player) Update(dt float64, in core.InputFrame, grid Collider) {
	if p.invulnerable > 0 {
		p.invulnerable = max(p.invulnerable-dt, 0)
	}

	var dir core.Vec2
	if in.IsHeld(core.ActionUp) {
		dir.Y--
	}
	if in.IsHeld(core.ActionDown) {
		dir.Y++
	}
	if in.IsHeld(core.ActionLeft) {
		dir.X--
	}
	if in.IsHeld(core.ActionRight) {
		dir.X++
	}

	prev := p.Pos
	step := dir.Normalize().Scale(p.Speed * dt)

	p.Pos.X += step.X
	if grid != nil && grid.IsColliding(p.Bounds()) {
		p.Pos.X = prev.X
	}
	p.Pos.Y += step.Y
	if grid != nil && grid.IsColliding(p.Bounds()) {
		p.Pos.Y = prev.Y
	}

	p.anim.Observe(p.Pos.Sub(prev))
	p.anim.Advance(dt)
}

// Draw emits the current animation frame.
func (p *Player) Draw(r render.Renderer) {
	key, flip, ok := p.anim.Resolve(p.Textures)
	if !ok {
		return
	}
	tint := core.ColorDefault
	if p.Invulnerable() {
		tint = core.ColorRed
	}
	r.Draw(render.Sprite{
		Texture: p.Textures.Base + "/" + key,
		Pos:     p.Pos,
		Src:     core.NewRect(p.anim.Frame()*PlayerSize, 0, PlayerSize, PlayerSize),
		Tint:    tint,
		FlipX:   flip,
	})
}
