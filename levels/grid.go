package levels

import (
	"errors"
	"fmt"
)

// Tile is the static classification of one grid cell.
type Tile uint8

const (
	Empty Tile = iota
	Floor
	Wall
)

func (t Tile) String() string {
	switch t {
	case Floor:
		return "floor"
	case Wall:
		return "wall"
	default:
		return "empty"
	}
}

var ErrBadGrid = errors.New("levels: malformed grid")

// Grid is a row-major tile map. It is not modified after a level loads.
type Grid struct {
	Width  int
	Height int
	Tiles  []Tile
}

// NewGrid returns a width x height grid of Empty tiles.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{Width: width, Height: height, Tiles: make([]Tile, width*height)}
}

func (g *Grid) InBounds(x, y int) bool {
	return g != nil && x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// At returns the tile at (x, y). Cells outside the grid read as Empty.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.Tiles[y*g.Width+x]
}

func (g *Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.Tiles[y*g.Width+x] = t
}

// Count returns how many cells hold t.
func (g *Grid) Count(t Tile) int {
	if g == nil {
		return 0
	}
	n := 0
	for _, v := range g.Tiles {
		if v == t {
			n++
		}
	}
	return n
}

// Marker is a spawn point found while parsing an ASCII grid.
type Marker struct {
	Glyph rune
	X     int
	Y     int
}

// ParseGrid builds a grid from ASCII rows: '#' is Wall, '.' is Floor and ' '
// is Empty. Any other glyph is a Floor cell with a marker on it.
func ParseGrid(rows ...string) (*Grid, []Marker, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: no rows", ErrBadGrid)
	}
	width := len([]rune(rows[0]))
	g := NewGrid(width, len(rows))
	var markers []Marker
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadGrid, y, len(runes), width)
		}
		for x, r := range runes {
			switch r {
			case '#':
				g.Set(x, y, Wall)
			case '.':
				g.Set(x, y, Floor)
			case ' ':
				g.Set(x, y, Empty)
			default:
				g.Set(x, y, Floor)
				markers = append(markers, Marker{Glyph: r, X: x, Y: y})
			}
		}
	}
	return g, markers, nil
}

// MustParseGrid is ParseGrid for fixtures known to be well formed.
func MustParseGrid(rows ...string) *Grid {
	g, _, err := ParseGrid(rows...)
	if err != nil {
		panic(err)
	}
	return g
}
