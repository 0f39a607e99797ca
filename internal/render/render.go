// Package render defines the draw contract used by the dungeon world and a
// terminal implementation that rasterizes sprites into a core.Screen.
package render

import (
	"strings"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Sprite is a single draw call: a named texture, the world position of its
// top-left corner, and the source rectangle inside the texture.
type Sprite struct {
	Texture string
	Pos     core.Vec2
	Src     core.Rect
	Tint    core.Color
	FlipX   bool
}

// Renderer receives draw calls from tiles, items, decor and actors.
type Renderer interface {
	Draw(s Sprite)
	// Overlay covers the whole frame with the given opacity in [0,1].
	Overlay(alpha float64)
}

// glyph is the terminal representation of a texture family.
type glyph struct {
	prefix string
	r      rune
	color  core.Color
}

// glyphs are matched by texture prefix, first match wins.
var glyphs = []glyph{
	{"tileset/wall", '#', core.ColorGray},
	{"tileset/floor", '.', core.ColorGray},
	{"player", '@', core.ColorYellow},
	{"slime", 's', core.ColorGreen},
	{"ghost", 'g', core.ColorWhite},
	{"alien", 'a', core.ColorMagenta},
	{"statue", 'S', core.ColorGray},
	{"item/coin", '$', core.ColorGold},
	{"item/chest", 'C', core.ColorBrown},
	{"decor", '%', core.ColorBrown},
}

// GlyphFor returns the rune and default color for a texture name.
func GlyphFor(texture string) (rune, core.Color) {
	for _, g := range glyphs {
		if strings.HasPrefix(texture, g.prefix) {
			return g.r, g.color
		}
	}
	return '?', core.ColorDefault
}

// ScreenRenderer draws sprites into a character screen, one cell per tile.
type ScreenRenderer struct {
	screen *core.Screen
	tileW  int
	tileH  int
	offX   int
	offY   int
}

// NewScreenRenderer creates a renderer for the given screen and world tile size.
func NewScreenRenderer(s *core.Screen, tileW, tileH int) *ScreenRenderer {
	return &ScreenRenderer{
		screen: s,
		tileW:  max(tileW, 1),
		tileH:  max(tileH, 1),
	}
}

// SetOffset moves the world origin to cell (x, y) on the screen.
func (r *ScreenRenderer) SetOffset(x, y int) {
	r.offX, r.offY = x, y
}

// Offset returns the current world origin on the screen.
func (r *ScreenRenderer) Offset() (int, int) {
	return r.offX, r.offY
}

// CellOf converts a world position to a screen cell.
func (r *ScreenRenderer) CellOf(p core.Vec2) (int, int) {
	return floorDiv(int(p.X), r.tileW) + r.offX, floorDiv(int(p.Y), r.tileH) + r.offY
}

// Draw places the sprite's glyph at the cell under the sprite's center.
func (r *ScreenRenderer) Draw(s Sprite) {
	ch, color := GlyphFor(s.Texture)
	if s.Tint != core.ColorDefault {
		color = s.Tint
	}
	center := s.Pos.Add(core.V(float64(s.Src.W)/2, float64(s.Src.H)/2))
	x, y := r.CellOf(center)
	r.screen.SetColored(x, y, ch, color)
}

// Overlay shades every cell with a block rune banded by alpha.
func (r *ScreenRenderer) Overlay(alpha float64) {
	shade := ShadeFor(alpha)
	if shade == 0 {
		return
	}
	for y := 0; y < r.screen.Height(); y++ {
		for x := 0; x < r.screen.Width(); x++ {
			r.screen.SetColored(x, y, shade, core.ColorGray)
		}
	}
}

// ShadeFor maps an opacity to a block rune; 0 means leave the frame untouched.
func ShadeFor(alpha float64) rune {
	alpha = core.ClampF(alpha, 0, 1)
	switch {
	case alpha < 0.05:
		return 0
	case alpha < 0.25:
		return '░'
	case alpha < 0.5:
		return '▒'
	case alpha < 0.85:
		return '▓'
	default:
		return '█'
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Recorder collects draw calls without rasterizing them.
type Recorder struct {
	Sprites  []Sprite
	Overlays []float64
}

// Draw records the sprite.
func (r *Recorder) Draw(s Sprite) {
	r.Sprites = append(r.Sprites, s)
}

// Overlay records the alpha.
func (r *Recorder) Overlay(alpha float64) {
	r.Overlays = append(r.Overlays, alpha)
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.Sprites = r.Sprites[:0]
	r.Overlays = r.Overlays[:0]
}

// Count returns how many sprites with the given texture prefix were drawn.
func (r *Recorder) Count(prefix string) int {
	n := 0
	for _, s := range r.Sprites {
		if strings.HasPrefix(s.Texture, prefix) {
			n++
		}
	}
	return n
}
