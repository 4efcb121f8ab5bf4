// Package nav turns a static tile grid into an adjacency graph and answers
// path and teleport-placement queries over it.
package nav

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/dungeonnav/levels"
)

var (
	ErrGridTooSmall  = errors.New("nav: grid has no interior")
	ErrUnresolvable  = errors.New("nav: position has no graph node")
	ErrNoPath        = errors.New("nav: no path")
	ErrRingExhausted = errors.New("nav: no valid teleport cell on ring")
)

// Cell addresses one grid cell.
type Cell struct {
	X int
	Y int
}

// Node is a graph cell together with its world-space centre.
type Node struct {
	Cell Cell
	X    float64
	Y    float64
}

// Entry is the adjacency record of one navigable cell. Node is always the
// cell's own node; Neighbors never contains it.
type Entry struct {
	Node      Node
	Neighbors []Node
}

// Graph is built once per level and shared read-only by every search.
type Graph struct {
	width    int
	height   int
	cellSize float64
	entries  map[Cell]*Entry
	keys     []Cell
}

type offset struct {
	dx, dy int
}

func (o offset) diagonal() bool {
	return o.dx != 0 && o.dy != 0
}

// orthogonal offsets in occlusion-mask bit order.
var orthogonal = [4]offset{
	{dx: 0, dy: -1},
	{dx: 1, dy: 0},
	{dx: 0, dy: 1},
	{dx: -1, dy: 0},
}

var neighborhood = [8]offset{
	{dx: 0, dy: -1},
	{dx: 1, dy: 0},
	{dx: 0, dy: 1},
	{dx: -1, dy: 0},
	{dx: 1, dy: -1},
	{dx: 1, dy: 1},
	{dx: -1, dy: 1},
	{dx: -1, dy: -1},
}

// occlusionMask has one bit per orthogonal neighbour that is a Wall.
type occlusionMask uint8

func (m occlusionMask) occluded(o offset) bool {
	for i, orth := range orthogonal {
		if orth == o {
			return m&(1<<i) != 0
		}
	}
	return false
}

// cutsCorner reports whether moving along diagonal d would slip between two
// walls that meet at the shared corner.
func (m occlusionMask) cutsCorner(d offset) bool {
	return m.occluded(offset{dx: d.dx}) && m.occluded(offset{dy: d.dy})
}

// BuildGraph builds the adjacency graph of grid. Only interior Floor cells
// become keys; each key links to its Floor neighbours (8-connected) except
// diagonals blocked on both corner sides by walls.
func BuildGraph(grid *levels.Grid, cellSize float64) (*Graph, error) {
	if grid == nil || grid.Width < 3 || grid.Height < 3 {
		return nil, ErrGridTooSmall
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("nav: invalid cell size %v", cellSize)
	}

	g := &Graph{
		width:    grid.Width,
		height:   grid.Height,
		cellSize: cellSize,
		entries:  make(map[Cell]*Entry),
	}

	for y := 1; y < grid.Height-1; y++ {
		for x := 1; x < grid.Width-1; x++ {
			if grid.At(x, y) != levels.Floor {
				continue
			}

			var mask occlusionMask
			for i, o := range orthogonal {
				if grid.At(x+o.dx, y+o.dy) == levels.Wall {
					mask |= 1 << i
				}
			}

			c := Cell{X: x, Y: y}
			entry := &Entry{Node: g.node(c)}
			for _, o := range neighborhood {
				if o.diagonal() && mask.cutsCorner(o) {
					continue
				}
				n := Cell{X: x + o.dx, Y: y + o.dy}
				if grid.At(n.X, n.Y) != levels.Floor {
					continue
				}
				entry.Neighbors = append(entry.Neighbors, g.node(n))
			}

			g.entries[c] = entry
			g.keys = append(g.keys, c)
		}
	}

	return g, nil
}

func (g *Graph) node(c Cell) Node {
	x, y := g.Center(c)
	return Node{Cell: c, X: x, Y: y}
}

// Len returns the number of navigable cells.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

func (g *Graph) Width() int {
	if g == nil {
		return 0
	}
	return g.width
}

func (g *Graph) Height() int {
	if g == nil {
		return 0
	}
	return g.height
}

func (g *Graph) CellSize() float64 {
	if g == nil {
		return 0
	}
	return g.cellSize
}

// Contains reports whether c is navigable.
func (g *Graph) Contains(c Cell) bool {
	if g == nil {
		return false
	}
	_, ok := g.entries[c]
	return ok
}

// Neighbors returns the adjacency list of c. The slice is shared and must not
// be modified.
func (g *Graph) Neighbors(c Cell) ([]Node, bool) {
	if g == nil {
		return nil, false
	}
	e, ok := g.entries[c]
	if !ok {
		return nil, false
	}
	return e.Neighbors, true
}

// Entry returns the adjacency record of c.
func (g *Graph) Entry(c Cell) (Entry, bool) {
	if g == nil {
		return Entry{}, false
	}
	e, ok := g.entries[c]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Cells returns the navigable cells in row-major order.
func (g *Graph) Cells() []Cell {
	if g == nil {
		return nil
	}
	return append([]Cell(nil), g.keys...)
}

// CellAt returns the cell containing a world position.
func (g *Graph) CellAt(x, y float64) Cell {
	return Cell{
		X: int(math.Floor(x / g.cellSize)),
		Y: int(math.Floor(y / g.cellSize)),
	}
}

// Center returns the world-space centre of c.
func (g *Graph) Center(c Cell) (float64, float64) {
	half := g.cellSize * 0.5
	return float64(c.X)*g.cellSize + half, float64(c.Y)*g.cellSize + half
}

// Resolve maps a world position to a graph cell: the containing cell when it
// is navigable, otherwise the nearest key by Distance. The fallback scans the
// whole graph.
func (g *Graph) Resolve(x, y float64) (Cell, error) {
	if g == nil {
		return Cell{}, ErrUnresolvable
	}
	c := g.CellAt(x, y)
	if _, ok := g.entries[c]; ok {
		return c, nil
	}
	return g.Nearest(c)
}

// Nearest returns the key closest to c by Distance; ties go to the first key
// in row-major order.
func (g *Graph) Nearest(c Cell) (Cell, error) {
	if g == nil || len(g.keys) == 0 {
		return Cell{}, ErrUnresolvable
	}
	best := g.keys[0]
	bestDist := Distance(c, best)
	for _, k := range g.keys[1:] {
		if d := Distance(c, k); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best, nil
}
