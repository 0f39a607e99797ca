package entity

import "github.com/vovakirdan/tui-dungeon/internal/core"

// Behavior decides where an enemy moves each frame. It may read the enemy
// and the player and must only change the enemy's position. Collision is
// enforced by the enemy afterwards.
type Behavior interface {
	Update(e *Enemy, p *Player, dt float64)
}

// BehaviorFunc adapts a plain function to the Behavior interface.
type BehaviorFunc func(e *Enemy, p *Player, dt float64)

// Update calls f.
func (f BehaviorFunc) Update(e *Enemy, p *Player, dt float64) {
	f(e, p, dt)
}

// Stationary never moves.
type Stationary struct{}

// Update does nothing.
func (Stationary) Update(*Enemy, *Player, float64) {}

// Patrol walks a closed loop of waypoints at the enemy's speed.
type Patrol struct {
	Waypoints []core.Vec2
	next      int
}

// NewPatrol creates a patrol over the given waypoints.
func NewPatrol(waypoints ...core.Vec2) *Patrol {
	return &Patrol{Waypoints: waypoints}
}

// Update moves toward the next waypoint and advances when it is reached.
func (b *Patrol) Update(e *Enemy, _ *Player, dt float64) {
	if len(b.Waypoints) == 0 {
		return
	}
	if b.next >= len(b.Waypoints) {
		b.next = 0
	}
	if moveToward(e, b.Waypoints[b.next], dt) {
		b.next = (b.next + 1) % len(b.Waypoints)
	}
}

// Next returns the index of the waypoint the patrol is heading to.
func (b *Patrol) Next() int { return b.next }

// Chase moves straight at the player. A zero Radius chases from any distance.
type Chase struct {
	Radius float64
}

// Update moves toward the player when within range.
func (b Chase) Update(e *Enemy, p *Player, dt float64) {
	if p == nil {
		return
	}
	if b.Radius > 0 && p.Center().Sub(e.Center()).Length() > b.Radius {
		return
	}
	moveToward(e, chaseTarget(e, p), dt)
}

// Guard holds its post until the player comes within Radius, chases until
// the player is farther than Leash, then walks back home.
type Guard struct {
	Home   core.Vec2
	Radius float64
	Leash  float64

	chasing bool
}

// NewGuard creates a guard posted at home.
// A leash smaller than the radius is widened to twice the radius.
func NewGuard(home core.Vec2, radius, leash float64) *Guard {
	if leash < radius {
		leash = radius * 2
	}
	return &Guard{Home: home, Radius: radius, Leash: leash}
}

// Update chases or returns home depending on the player's distance.
func (b *Guard) Update(e *Enemy, p *Player, dt float64) {
	if p == nil {
		b.chasing = false
		moveToward(e, b.Home, dt)
		return
	}

	dist := p.Center().Sub(e.Center()).Length()
	switch {
	case !b.chasing && dist <= b.Radius:
		b.chasing = true
	case b.chasing && dist > b.Leash:
		b.chasing = false
	}

	if b.chasing {
		moveToward(e, chaseTarget(e, p), dt)
		return
	}
	moveToward(e, b.Home, dt)
}

// Chasing reports whether the guard is currently pursuing the player.
func (b *Guard) Chasing() bool { return b.chasing }

// chaseTarget is the enemy position that puts its center on the player's.
func chaseTarget(e *Enemy, p *Player) core.Vec2 {
	return p.Center().Sub(e.Center().Sub(e.Pos))
}

// moveToward steps the enemy toward target by speed*dt and reports arrival.
func moveToward(e *Enemy, target core.Vec2, dt float64) bool {
	d := target.Sub(e.Pos)
	dist := d.Length()
	step := e.Speed * dt
	if dist <= step {
		e.Pos = target
		return true
	}
	if step <= 0 {
		return false
	}
	e.Pos = e.Pos.Add(d.Normalize().Scale(step))
	return false
}
