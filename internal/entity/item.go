package entity

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/render"
)

// ItemKind identifies what a collectible does.
type ItemKind int

const (
	ItemCoin ItemKind = iota
	// ItemChest is the goal item; collecting it wins the game.
	ItemChest
)

// Default item values.
const (
	CoinValue  = 10
	ChestValue = 50
	ItemSize   = 16
)

// String returns the lowercase kind name.
func (k ItemKind) String() string {
	switch k {
	case ItemChest:
		return "chest"
	default:
		return "coin"
	}
}

// ParseItemKind converts a config name to an item kind.
func ParseItemKind(s string) (ItemKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "coin":
		return ItemCoin, nil
	case "chest":
		return ItemChest, nil
	default:
		return 0, fmt.Errorf("entity: unknown item kind %q", s)
	}
}

// Item is a collectible lying in a room.
type Item struct {
	Kind  ItemKind
	Pos   core.Vec2
	Value int
}

// NewItem creates an item with the kind's default value.
func NewItem(kind ItemKind, pos core.Vec2) *Item {
	v := CoinValue
	if kind == ItemChest {
		v = ChestValue
	}
	return &Item{Kind: kind, Pos: pos, Value: v}
}

// Bounds is the 16x16 pickup box.
func (it *Item) Bounds() core.Rect {
	return core.NewRect(int(it.Pos.X), int(it.Pos.Y), ItemSize, ItemSize)
}

// IsGoal reports whether collecting the item ends the game in victory.
func (it *Item) IsGoal() bool {
	return it.Kind == ItemChest
}

// Collect credits the item's value to the player.
func (it *Item) Collect(p *Player) {
	p.AddScore(it.Value)
}

// Draw emits the item sprite.
func (it *Item) Draw(r render.Renderer) {
	r.Draw(render.Sprite{
		Texture: "item/" + it.Kind.String(),
		Pos:     it.Pos,
		Src:     core.NewRect(0, 0, ItemSize, ItemSize),
	})
}

// Decor is a static obstacle such as a crate or barrel.
type Decor struct {
	Pos     core.Vec2
	W, H    int
	Texture string
}

// NewDecor creates a decor object. Non-positive sizes default to one tile.
func NewDecor(texture string, pos core.Vec2, w, h int) *Decor {
	if w <= 0 {
		w = ItemSize
	}
	if h <= 0 {
		h = ItemSize
	}
	return &Decor{Pos: pos, W: w, H: h, Texture: texture}
}

// Bounds returns the obstacle rectangle.
func (d *Decor) Bounds() core.Rect {
	return core.NewRect(int(d.Pos.X), int(d.Pos.Y), d.W, d.H)
}

// Draw emits the decor sprite.
func (d *Decor) Draw(r render.Renderer) {
	r.Draw(render.Sprite{
		Texture: "decor/" + d.Texture,
		Pos:     d.Pos,
		Src:     core.NewRect(0, 0, d.W, d.H),
	})
}
