package nav

import (
	"fmt"
	"math"

	"github.com/zyedidia/generic/mapset"
)

// DefaultPathCoefficient weights accumulated path cost against the remaining
// straight-line distance when picking the next frontier node.
const DefaultPathCoefficient uint = 1

// costSlot is one cell of the per-search cost field.
type costSlot struct {
	cost    uint
	pred    Cell
	hasPred bool
}

// costField is allocated per search and dropped when it returns.
type costField struct {
	width int
	slots []costSlot
}

func newCostField(width, height int) *costField {
	slots := make([]costSlot, width*height)
	for i := range slots {
		slots[i].cost = math.MaxUint
	}
	return &costField{width: width, slots: slots}
}

func (f *costField) at(c Cell) *costSlot {
	return &f.slots[c.Y*f.width+c.X]
}

// FindPath resolves both world positions to graph cells and searches between
// them. The returned waypoints exclude the start cell, so a search whose
// start and goal resolve to the same cell yields an empty, non-nil path.
//
// The frontier is ordered by coefficient*cost + Distance(node, goal). That
// estimate can overshoot, so the route is good but not always shortest.
func (g *Graph) FindPath(startX, startY, goalX, goalY float64, coefficient uint) ([]Cell, error) {
	start, err := g.Resolve(startX, startY)
	if err != nil {
		return nil, fmt.Errorf("nav: resolve start: %w", err)
	}
	goal, err := g.Resolve(goalX, goalY)
	if err != nil {
		return nil, fmt.Errorf("nav: resolve goal: %w", err)
	}
	path, _, err := g.search(start, goal, coefficient)
	return path, err
}

// FindCellPath searches between two graph cells.
func (g *Graph) FindCellPath(start, goal Cell, coefficient uint) ([]Cell, error) {
	if !g.Contains(start) || !g.Contains(goal) {
		return nil, ErrUnresolvable
	}
	path, _, err := g.search(start, goal, coefficient)
	return path, err
}

// search returns the path, the number of frontier pops it took, and
// ErrNoPath when the frontier runs dry.
func (g *Graph) search(start, goal Cell, coefficient uint) ([]Cell, int, error) {
	field := newCostField(g.width, g.height)
	field.at(start).cost = 0

	frontier := []Cell{start}
	reachable := mapset.New[Cell]()
	reachable.Put(start)
	explored := mapset.New[Cell]()

	iterations := 0
	for len(frontier) > 0 {
		iterations++

		bestIdx := 0
		bestScore := uint(math.MaxUint)
		for i, c := range frontier {
			score := coefficient*field.at(c).cost + Distance(c, goal)
			if score < bestScore {
				bestIdx, bestScore = i, score
			}
		}
		current := frontier[bestIdx]
		frontier = append(frontier[:bestIdx], frontier[bestIdx+1:]...)
		reachable.Remove(current)
		explored.Put(current)

		if current == goal {
			return field.walk(start, goal), iterations, nil
		}

		entry, ok := g.entries[current]
		if !ok {
			continue
		}
		currentCost := field.at(current).cost
		for _, n := range entry.Neighbors {
			if explored.Has(n.Cell) {
				continue
			}
			if !reachable.Has(n.Cell) {
				reachable.Put(n.Cell)
				frontier = append(frontier, n.Cell)
			}
			slot := field.at(n.Cell)
			if currentCost+1 < slot.cost {
				slot.cost = currentCost + 1
				slot.pred = current
				slot.hasPred = true
			}
		}
	}

	return nil, iterations, ErrNoPath
}

// walk follows predecessors from goal back to start, reverses, and drops the
// start cell the agent already occupies.
func (f *costField) walk(start, goal Cell) []Cell {
	path := []Cell{goal}
	for cur := goal; cur != start; {
		slot := f.at(cur)
		if !slot.hasPred {
			break
		}
		cur = slot.pred
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path[1:]
}
