package nav

import (
	"math"

	"github.com/zyedidia/generic/mapset"
)

// ClearFunc reports whether a candidate cell has an unobstructed line to the
// teleport target.
type ClearFunc func(c Cell) bool

// TeleportRing picks a landing cell on the ring of Chebyshev radius around
// target. The four ring corners are tried first, then the remaining ring
// cells. A navigable ring cell that is already claimed is skipped outright;
// otherwise the candidate is stepped inward toward the target until a cell is
// navigable, unclaimed and clear. Only the first such cell is returned, and it
// is added to claimed so later agents in the same pass land elsewhere.
func (g *Graph) TeleportRing(target Cell, radius int, claimed mapset.Set[Cell], clear ClearFunc) (Cell, error) {
	if g == nil || g.Len() == 0 {
		return Cell{}, ErrRingExhausted
	}
	if radius < 1 {
		radius = 1
	}
	for _, candidate := range ringCells(target, radius) {
		if c, ok := g.inwardCandidate(target, candidate, radius, claimed, clear); ok {
			claimed.Put(c)
			return c, nil
		}
	}
	return Cell{}, ErrRingExhausted
}

func (g *Graph) inwardCandidate(target, from Cell, radius int, claimed mapset.Set[Cell], clear ClearFunc) (Cell, bool) {
	dx := float64(from.X - target.X)
	dy := float64(from.Y - target.Y)
	for step := radius; step >= 1; step-- {
		scale := float64(step) / float64(radius)
		c := Cell{
			X: target.X + int(math.Round(dx*scale)),
			Y: target.Y + int(math.Round(dy*scale)),
		}
		if c == target {
			break
		}
		// A claimed ring cell belongs to another agent; try the next ring
		// candidate rather than crowding the same spoke.
		if step == radius && g.Contains(c) && claimed.Has(c) {
			return Cell{}, false
		}
		if !g.Contains(c) || claimed.Has(c) {
			continue
		}
		if clear != nil && !clear(c) {
			continue
		}
		return c, true
	}
	return Cell{}, false
}

// ringCells lists the cells at Chebyshev distance r from center: the four
// corner extremes first, then the remaining perimeter clockwise from the top
// edge.
func ringCells(center Cell, r int) []Cell {
	out := []Cell{
		{X: center.X + r, Y: center.Y + r},
		{X: center.X + r, Y: center.Y - r},
		{X: center.X - r, Y: center.Y + r},
		{X: center.X - r, Y: center.Y - r},
	}
	for x := -r + 1; x <= r-1; x++ {
		out = append(out, Cell{X: center.X + x, Y: center.Y - r})
	}
	for y := -r + 1; y <= r-1; y++ {
		out = append(out, Cell{X: center.X + r, Y: center.Y + y})
	}
	for x := r - 1; x >= -r+1; x-- {
		out = append(out, Cell{X: center.X + x, Y: center.Y + r})
	}
	for y := r - 1; y >= -r+1; y-- {
		out = append(out, Cell{X: center.X - r, Y: center.Y + y})
	}
	return out
}
