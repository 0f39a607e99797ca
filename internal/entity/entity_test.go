package entity

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/render"
)

// wallRight is solid for every rect reaching past x.
type wallRight int

func (w wallRight) IsColliding(r core.Rect) bool {
	return r.Right() > int(w)
}

// moveBy is a behavior that shifts the enemy by a fixed delta.
func moveBy(dx, dy float64) Behavior {
	return BehaviorFunc(func(e *Enemy, _ *Player, _ float64) {
		e.Pos = e.Pos.Add(core.V(dx, dy))
	})
}

func TestEnemyCollisionRollback(t *testing.T) {
	e := NewEnemy(1, "slime", core.V(50, 50), FullTextureSet("slime"), moveBy(20, 0))
	before := e.Pos

	// bounds right edge would be 50+20+4+24 = 98
	e.Update(1.0/60, nil, wallRight(90))

	if e.Pos != before {
		t.Errorf("Pos after blocked update = %v, expected %v", e.Pos, before)
	}
	if e.Moving() {
		t.Error("rolled back enemy should be idle")
	}
}

func TestEnemyNilGridSkipsCollision(t *testing.T) {
	e := NewEnemy(1, "slime", core.V(0, 0), FullTextureSet("slime"), moveBy(5, 0))
	e.Update(1.0/60, nil, nil)
	if e.Pos != core.V(5, 0) {
		t.Errorf("Pos = %v, expected (5, 0)", e.Pos)
	}
}

func TestEnemyFacing(t *testing.T) {
	tests := []struct {
		name     string
		dx, dy   float64
		expected Facing
		flip     bool
	}{
		{"right", 2, 1, FacingRight, true},
		{"left", -2, 1, FacingLeft, false},
		{"down", 0, 3, FacingDown, false},
		{"up", 1, -3, FacingUp, false},
		{"tie favors vertical", 2, 2, FacingDown, false},
		{"negative tie favors vertical", -2, -2, FacingUp, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEnemy(1, "slime", core.V(0, 0), FullTextureSet("slime"), moveBy(tc.dx, tc.dy))
			e.Update(0.01, nil, nil)

			if e.Facing() != tc.expected {
				t.Errorf("Facing() = %v, expected %v", e.Facing(), tc.expected)
			}
			_, flip := e.AnimationKey()
			if flip != tc.flip {
				t.Errorf("flip = %v, expected %v", flip, tc.flip)
			}
		})
	}
}

func TestEnemyIdleKeepsFacing(t *testing.T) {
	var step int
	b := BehaviorFunc(func(e *Enemy, _ *Player, _ float64) {
		if step == 0 {
			e.Pos.X -= 3
		}
		step++
	})
	e := NewEnemy(1, "slime", core.V(10, 10), FullTextureSet("slime"), b)
	e.Update(0.01, nil, nil)
	e.Update(0.01, nil, nil)

	if e.Facing() != FacingLeft {
		t.Errorf("Facing() = %v, expected Left after stopping", e.Facing())
	}
	if key, _ := e.AnimationKey(); key != "Side_Idle" {
		t.Errorf("AnimationKey() = %q, expected Side_Idle", key)
	}
}

func TestAnimationFrames(t *testing.T) {
	var a Animator
	for i := 0; i < FrameCount; i++ {
		if a.Frame() != i {
			t.Fatalf("Frame() = %d, expected %d", a.Frame(), i)
		}
		a.Advance(FrameTime)
	}
	if a.Frame() != 0 {
		t.Errorf("Frame() after %d advances = %d, expected wrap to 0", FrameCount, a.Frame())
	}

	a.Advance(FrameTime / 2)
	if a.Frame() != 0 {
		t.Error("half a frame time should not advance")
	}
}

func TestAnimatorResolveFallback(t *testing.T) {
	tests := []struct {
		name     string
		set      TextureSet
		delta    core.Vec2
		expected string
		ok       bool
	}{
		{"full set idle", FullTextureSet("x"), core.V(0, 0), "Down_Idle", true},
		{"full set walking up", FullTextureSet("x"), core.V(0, -1), "Up", true},
		{"no idle strips", NewTextureSet("ghost", "Down", "Up", "Side"), core.V(0, 0), "Down", true},
		{"no side strips", NewTextureSet("ghost", "Down", "Down_Idle"), core.V(1, 0), "Down_Idle", true},
		{"nothing usable", NewTextureSet("empty"), core.V(0, 0), "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var a Animator
			a.Observe(tc.delta)
			key, _, ok := a.Resolve(tc.set)
			if key != tc.expected || ok != tc.ok {
				t.Errorf("Resolve() = %q, %v; expected %q, %v", key, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestChangeBehaviorTakesEffectNextUpdate(t *testing.T) {
	e := NewEnemy(1, "slime", core.V(0, 0), FullTextureSet("slime"), Stationary{})
	e.Update(0.1, nil, nil)
	if e.Pos != core.V(0, 0) {
		t.Fatalf("stationary enemy moved to %v", e.Pos)
	}

	e.ChangeBehavior(moveBy(1, 0))
	e.Update(0.1, nil, nil)
	if e.Pos != core.V(1, 0) {
		t.Errorf("Pos after swap = %v, expected (1, 0)", e.Pos)
	}

	e.ChangeBehavior(nil)
	if _, ok := e.Behavior().(Stationary); !ok {
		t.Error("nil behavior should become Stationary")
	}
}

func TestPatrolLoopsWaypoints(t *testing.T) {
	p := NewPatrol(core.V(10, 0), core.V(10, 10))
	e := NewEnemy(1, "slime", core.V(0, 0), FullTextureSet("slime"), p)
	e.Speed = 80

	e.Update(0.0625, nil, nil) // 5 units
	if e.Pos != core.V(5, 0) {
		t.Fatalf("Pos = %v, expected (5, 0)", e.Pos)
	}
	e.Update(0.0625, nil, nil)
	if e.Pos != core.V(10, 0) || p.Next() != 1 {
		t.Fatalf("Pos = %v next = %d, expected first waypoint reached", e.Pos, p.Next())
	}
	e.Update(0.125, nil, nil)
	if e.Pos != core.V(10, 10) || p.Next() != 0 {
		t.Errorf("Pos = %v next = %d, expected loop back to 0", e.Pos, p.Next())
	}
}

func TestChaseMovesTowardPlayer(t *testing.T) {
	pl := NewPlayer(core.V(200, 8))
	e := NewEnemy(1, "ghost", core.V(0, 0), FullTextureSet("ghost"), Chase{})

	startDist := pl.Center().Sub(e.Center()).Length()
	e.Update(0.1, pl, nil)
	dist := pl.Center().Sub(e.Center()).Length()

	if math.Abs(startDist-dist-e.Speed*0.1) > 1e-9 {
		t.Errorf("distance shrank by %f, expected %f", startDist-dist, e.Speed*0.1)
	}
}

func TestChaseRadius(t *testing.T) {
	pl := NewPlayer(core.V(500, 500))
	e := NewEnemy(1, "ghost", core.V(0, 0), FullTextureSet("ghost"), Chase{Radius: 100})
	e.Update(0.1, pl, nil)
	if e.Pos != core.V(0, 0) {
		t.Errorf("out of range chase moved to %v", e.Pos)
	}
}

func TestGuardChasesAndReturns(t *testing.T) {
	home := core.V(0, 0)
	g := NewGuard(home, 50, 80)
	e := NewEnemy(1, "alien", home, FullTextureSet("alien"), g)
	e.Speed = 10

	pl := NewPlayer(core.V(30, 8)) // center (38, 16), enemy center (16, 16)
	e.Update(0.1, pl, nil)
	if !g.Chasing() {
		t.Fatal("guard should start chasing a close player")
	}
	if e.Pos.X <= 0 {
		t.Errorf("guard should move toward the player, Pos = %v", e.Pos)
	}

	pl.SetPosition(core.V(1000, 1000))
	e.Update(0.1, pl, nil)
	if g.Chasing() {
		t.Error("guard should give up beyond the leash")
	}
	for i := 0; i < 10; i++ {
		e.Update(0.1, pl, nil)
	}
	if e.Pos != home {
		t.Errorf("guard should be back home, Pos = %v", e.Pos)
	}
}

func TestNewGuardWidensLeash(t *testing.T) {
	g := NewGuard(core.V(0, 0), 40, 10)
	if g.Leash != 80 {
		t.Errorf("Leash = %f, expected 80", g.Leash)
	}
}

func TestPlayerMovementNormalized(t *testing.T) {
	p := NewPlayer(core.V(100, 100))
	in := core.NewInputFrame()
	in.Hold(core.ActionRight)
	in.Hold(core.ActionDown)

	p.Update(1, in, nil)

	moved := p.Pos.Sub(core.V(100, 100)).Length()
	if math.Abs(moved-DefaultPlayerSpeed) > 1e-9 {
		t.Errorf("diagonal move length = %f, expected %d", moved, DefaultPlayerSpeed)
	}
	if !p.Moving() {
		t.Error("player should be moving")
	}
}

func TestPlayerSlidesAlongWall(t *testing.T) {
	p := NewPlayer(core.V(70, 0))
	in := core.NewInputFrame()
	in.Hold(core.ActionRight)
	in.Hold(core.ActionDown)

	// right edge = 86 before moving; X is blocked, Y is free
	p.Update(0.1, in, wallRight(90))

	if p.Pos.X != 70 {
		t.Errorf("X = %f, expected rollback to 70", p.Pos.X)
	}
	if p.Pos.Y <= 0 {
		t.Errorf("Y = %f, expected downward slide", p.Pos.Y)
	}
}

func TestPlayerDamageAndInvulnerability(t *testing.T) {
	p := NewPlayer(core.V(0, 0))

	if !p.TakeDamage(10) {
		t.Fatal("first hit should apply")
	}
	if p.TakeDamage(10) {
		t.Error("hit during invulnerability should not apply")
	}
	if p.Health != DefaultPlayerHealth-10 {
		t.Errorf("Health = %d, expected %d", p.Health, DefaultPlayerHealth-10)
	}

	p.Update(InvulnerableSeconds, core.NewInputFrame(), nil)
	if p.Invulnerable() {
		t.Error("invulnerability should expire")
	}

	p.Health = 5
	p.TakeDamage(10)
	if p.IsAlive() || p.Health != 0 {
		t.Errorf("Health = %d alive = %v, expected dead at 0", p.Health, p.IsAlive())
	}
}

func TestItemCollect(t *testing.T) {
	p := NewPlayer(core.V(0, 0))
	coin := NewItem(ItemCoin, core.V(0, 0))
	chest := NewItem(ItemChest, core.V(0, 0))

	coin.Collect(p)
	if p.Score != CoinValue {
		t.Errorf("Score = %d, expected %d", p.Score, CoinValue)
	}
	if coin.IsGoal() || !chest.IsGoal() {
		t.Error("only the chest is the goal item")
	}
}

func TestParseItemKind(t *testing.T) {
	if k, err := ParseItemKind(" Chest "); err != nil || k != ItemChest {
		t.Errorf("ParseItemKind(Chest) = %v, %v", k, err)
	}
	if _, err := ParseItemKind("potion"); err == nil {
		t.Error("unknown kind should fail")
	}
}

func TestDrawCalls(t *testing.T) {
	var rec render.Recorder

	e := NewEnemy(1, "ghost", core.V(0, 0), NewTextureSet("ghost", "Down"), nil)
	e.Draw(&rec)
	NewPlayer(core.V(0, 0)).Draw(&rec)
	NewItem(ItemChest, core.V(0, 0)).Draw(&rec)
	NewDecor("crate", core.V(0, 0), 0, 0).Draw(&rec)
	NewEnemy(2, "void", core.V(0, 0), NewTextureSet("void"), nil).Draw(&rec)

	want := []string{"ghost/Down", "player/Down_Idle", "item/chest", "decor/crate"}
	if len(rec.Sprites) != len(want) {
		t.Fatalf("drew %d sprites, expected %d", len(rec.Sprites), len(want))
	}
	for i, w := range want {
		if rec.Sprites[i].Texture != w {
			t.Errorf("sprite %d = %q, expected %q", i, rec.Sprites[i].Texture, w)
		}
	}
}
