// Package tilemap holds the tile-indexed collision grid of a room.
package tilemap

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/render"
)

const (
	// Empty marks a cell with no tile. Doorways are empty cells.
	Empty = -1
	// OutOfBounds is returned by TileAt for points outside the grid.
	OutOfBounds = -2

	// DefaultTilesPerRow is the column count of the dungeon tileset.
	DefaultTilesPerRow = 19
)

// DefaultSolid lists the wall and obstacle indices of the dungeon tileset.
var DefaultSolid = []int{
	96, 97, 98, 99, 100,
	77, 58, 39,
	20, 21, 22, 23, 24,
	43, 62, 81,
	26, 45,
	172, 173, 174,
}

// ErrInvalidGrid is returned when grid dimensions do not match the cells.
var ErrInvalidGrid = errors.New("tilemap: invalid grid")

// Grid is an immutable row-major grid of tile indices.
type Grid struct {
	cells       []int
	rows        int
	cols        int
	tileW       int
	tileH       int
	tilesPerRow int
	solid       map[int]struct{}
}

// New builds a grid from row-major cells. Negative indices are stored as Empty.
// A nil solid set selects DefaultSolid.
func New(cells []int, rows, cols, tileW, tileH int, solid []int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, cols, rows)
	}
	if len(cells) != rows*cols {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrInvalidGrid, len(cells), cols, rows)
	}
	if tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("%w: tile size %dx%d", ErrInvalidGrid, tileW, tileH)
	}
	if solid == nil {
		solid = DefaultSolid
	}

	g := &Grid{
		cells:       make([]int, len(cells)),
		rows:        rows,
		cols:        cols,
		tileW:       tileW,
		tileH:       tileH,
		tilesPerRow: DefaultTilesPerRow,
		solid:       make(map[int]struct{}, len(solid)),
	}
	for i, c := range cells {
		if c < 0 {
			c = Empty
		}
		g.cells[i] = c
	}
	for _, s := range solid {
		g.solid[s] = struct{}{}
	}
	return g, nil
}

// WithTilesPerRow sets the tileset column count used for source rectangles.
func (g *Grid) WithTilesPerRow(n int) *Grid {
	if n > 0 {
		g.tilesPerRow = n
	}
	return g
}

// Rows returns the number of tile rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of tile columns.
func (g *Grid) Cols() int { return g.cols }

// TileWidth returns the width of one tile in world units.
func (g *Grid) TileWidth() int { return g.tileW }

// TileHeight returns the height of one tile in world units.
func (g *Grid) TileHeight() int { return g.tileH }

// WidthPixels returns the map width in world units.
func (g *Grid) WidthPixels() int { return g.cols * g.tileW }

// HeightPixels returns the map height in world units.
func (g *Grid) HeightPixels() int { return g.rows * g.tileH }

// At returns the index stored at a tile coordinate, or OutOfBounds.
func (g *Grid) At(col, row int) int {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return OutOfBounds
	}
	return g.cells[row*g.cols+col]
}

// TileAt returns the index of the tile under a world point, or OutOfBounds.
// Negative coordinates are never inside the grid.
func (g *Grid) TileAt(worldX, worldY int) int {
	if worldX < 0 || worldY < 0 {
		return OutOfBounds
	}
	return g.At(worldX/g.tileW, worldY/g.tileH)
}

// IsSolidIndex reports whether a tile index blocks movement.
func (g *Grid) IsSolidIndex(idx int) bool {
	_, ok := g.solid[idx]
	return ok
}

// IsSolid reports whether a world point blocks movement.
// Everything outside the grid is solid.
func (g *Grid) IsSolid(worldX, worldY int) bool {
	idx := g.TileAt(worldX, worldY)
	return idx == OutOfBounds || g.IsSolidIndex(idx)
}

// IsVacant reports whether a world point has no tile, inside or outside the grid.
func (g *Grid) IsVacant(worldX, worldY int) bool {
	idx := g.TileAt(worldX, worldY)
	return idx == Empty || idx == OutOfBounds
}

// IsColliding reports whether any corner of r lies on a solid point.
// The far corners are inset by one unit so touching edges do not collide.
func (g *Grid) IsColliding(r core.Rect) bool {
	return g.IsSolid(r.X, r.Y) ||
		g.IsSolid(r.Right()-1, r.Y) ||
		g.IsSolid(r.X, r.Bottom()-1) ||
		g.IsSolid(r.Right()-1, r.Bottom()-1)
}

// Cells returns a copy of the row-major cells.
func (g *Grid) Cells() []int {
	out := make([]int, len(g.cells))
	copy(out, g.cells)
	return out
}

// Draw emits one sprite per non-empty tile.
func (g *Grid) Draw(r render.Renderer) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			idx := g.cells[row*g.cols+col]
			if idx < 0 {
				continue
			}
			texture := "tileset/floor"
			if g.IsSolidIndex(idx) {
				texture = "tileset/wall"
			}
			r.Draw(render.Sprite{
				Texture: texture,
				Pos:     core.V(float64(col*g.tileW), float64(row*g.tileH)),
				Src: core.NewRect(
					(idx%g.tilesPerRow)*g.tileW,
					(idx/g.tilesPerRow)*g.tileH,
					g.tileW, g.tileH,
				),
			})
		}
	}
}
