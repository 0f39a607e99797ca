// Package entity contains the actors and props that live inside a room:
// the player, enemies and their behaviors, collectible items and decor.
package entity

import (
	"math"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Facing is the direction an actor looks at.
type Facing int

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

// String returns the animation base name for the facing.
func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "Up"
	case FacingLeft:
		return "Left"
	case FacingRight:
		return "Right"
	default:
		return "Down"
	}
}

const (
	// FrameCount is the number of frames in every animation strip.
	FrameCount = 6
	// FrameTime is how long one animation frame is shown, in seconds.
	FrameTime = 0.15
	// FrameSize is the width and height of an enemy animation frame.
	FrameSize = 32

	movingEpsilon = 0.0001
)

// TextureSet is the set of animation keys available for one actor kind.
type TextureSet struct {
	Base string
	keys map[string]bool
}

// NewTextureSet creates a texture set with the given animation keys.
func NewTextureSet(base string, keys ...string) TextureSet {
	ts := TextureSet{Base: base, keys: make(map[string]bool, len(keys))}
	for _, k := range keys {
		ts.keys[k] = true
	}
	return ts
}

// FullTextureSet has walk and idle strips for every facing.
func FullTextureSet(base string) TextureSet {
	return NewTextureSet(base, "Down", "Up", "Side", "Down_Idle", "Up_Idle", "Side_Idle")
}

// Has reports whether an animation key is available.
func (ts TextureSet) Has(key string) bool {
	return ts.keys[key]
}

// Len returns the number of animation keys.
func (ts TextureSet) Len() int {
	return len(ts.keys)
}

// Animator derives facing, movement and the current frame from motion.
type Animator struct {
	facing Facing
	moving bool
	frame  int
	timer  float64
}

// Observe updates movement and facing from this frame's displacement.
// The horizontal axis wins only when strictly larger; ties face vertically.
func (a *Animator) Observe(delta core.Vec2) {
	a.moving = delta.LengthSquared() > movingEpsilon
	if !a.moving {
		return
	}
	if math.Abs(delta.X) > math.Abs(delta.Y) {
		if delta.X > 0 {
			a.facing = FacingRight
		} else {
			a.facing = FacingLeft
		}
		return
	}
	if delta.Y > 0 {
		a.facing = FacingDown
	} else {
		a.facing = FacingUp
	}
}

// Advance steps the frame timer.
func (a *Animator) Advance(dt float64) {
	a.timer += dt
	if a.timer >= FrameTime {
		a.timer = 0
		a.frame = (a.frame + 1) % FrameCount
	}
}

// Facing returns the current facing.
func (a *Animator) Facing() Facing { return a.facing }

// Moving reports whether the actor moved during the last observed frame.
func (a *Animator) Moving() bool { return a.moving }

// Frame returns the current animation frame index.
func (a *Animator) Frame() int { return a.frame }

// Resolve picks the animation key to draw. Side-facing strips serve both
// Left and Right, with Right mirrored. When the preferred key is missing it
// falls back to the facing's base key, then Down_Idle, then Down.
func (a *Animator) Resolve(ts TextureSet) (key string, flip bool, ok bool) {
	base := "Down"
	switch a.facing {
	case FacingUp:
		base = "Up"
	case FacingLeft:
		base = "Side"
	case FacingRight:
		base = "Side"
		flip = true
	}

	suffix := "_Idle"
	if a.moving {
		suffix = ""
	}

	for _, k := range []string{base + suffix, base, "Down_Idle", "Down"} {
		if ts.Has(k) {
			return k, flip, true
		}
	}
	return "", flip, false
}
