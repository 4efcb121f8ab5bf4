package nav

import (
	"errors"
	"testing"
)

func center(c Cell) (float64, float64) {
	return float64(c.X)*testCellSize + testCellSize/2, float64(c.Y)*testCellSize + testCellSize/2
}

func TestFindPathStraightCorridor(t *testing.T) {
	g := mustGraph(t,
		"############",
		"#..........#",
		"############",
	)
	sx, sy := center(Cell{X: 1, Y: 1})
	gx, gy := center(Cell{X: 10, Y: 1})

	path, err := g.FindPath(sx, sy, gx, gy, DefaultPathCoefficient)
	if err != nil {
		t.Fatalf("find path: %v", err)
	}
	if len(path) != 9 {
		t.Fatalf("expected 9 waypoints, got %d: %v", len(path), path)
	}
	prev := 1
	for i, c := range path {
		if c.Y != 1 {
			t.Fatalf("waypoint %d left the corridor: %v", i, c)
		}
		if c.X != prev+1 {
			t.Fatalf("waypoint %d not monotonic: %v after x=%d", i, c, prev)
		}
		prev = c.X
	}
	if path[len(path)-1] != (Cell{X: 10, Y: 1}) {
		t.Fatalf("path must end at the goal, got %v", path[len(path)-1])
	}
}

func TestFindPathBlockedGoal(t *testing.T) {
	g := mustGraph(t,
		"#########",
		"#.....###",
		"#.....#.#",
		"#.....###",
		"#########",
	)
	sx, sy := center(Cell{X: 1, Y: 1})
	gx, gy := center(Cell{X: 7, Y: 2})

	path, err := g.FindPath(sx, sy, gx, gy, DefaultPathCoefficient)
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v (path %v)", err, path)
	}
	if len(path) != 0 {
		t.Fatalf("expected empty result, got %v", path)
	}
}

func TestFindPathSameCell(t *testing.T) {
	g := mustGraph(t,
		"#####",
		"#...#",
		"#####",
	)
	x, y := center(Cell{X: 2, Y: 1})
	path, err := g.FindPath(x, y, x+3, y-3, DefaultPathCoefficient)
	if err != nil {
		t.Fatalf("find path: %v", err)
	}
	if path == nil || len(path) != 0 {
		t.Fatalf("expected empty non-nil path, got %#v", path)
	}
}

func TestFindPathDiagonal(t *testing.T) {
	g := mustGraph(t,
		"######",
		"#....#",
		"#....#",
		"#....#",
		"#....#",
		"######",
	)
	path, err := g.FindCellPath(Cell{X: 1, Y: 1}, Cell{X: 4, Y: 4}, DefaultPathCoefficient)
	if err != nil {
		t.Fatalf("find path: %v", err)
	}
	want := []Cell{{X: 2, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 4}}
	if len(path) != len(want) {
		t.Fatalf("expected %v, got %v", want, path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, path)
		}
	}
}

func TestFindPathAroundWalls(t *testing.T) {
	g := mustGraph(t, dungeonRows...)

	tests := []struct {
		name  string
		start Cell
		goal  Cell
	}{
		{"same_room", Cell{X: 1, Y: 1}, Cell{X: 4, Y: 3}},
		{"across_map", Cell{X: 1, Y: 1}, Cell{X: 10, Y: 8}},
		{"into_pocket", Cell{X: 10, Y: 1}, Cell{X: 5, Y: 5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, coef := range []uint{0, 1, 4} {
				path, err := g.FindCellPath(tc.start, tc.goal, coef)
				if err != nil {
					t.Fatalf("coef %d: %v", coef, err)
				}
				prev := tc.start
				for _, c := range path {
					if !hasNeighbor(g, prev, c) {
						t.Fatalf("coef %d: %v -> %v is not an edge", coef, prev, c)
					}
					prev = c
				}
				if prev != tc.goal {
					t.Fatalf("coef %d: path ends at %v, want %v", coef, prev, tc.goal)
				}
			}
		})
	}
}

func TestSearchTerminatesWithinGraphSize(t *testing.T) {
	g := mustGraph(t, dungeonRows...)
	cells := g.Cells()
	for _, start := range cells {
		for _, goal := range []Cell{cells[0], cells[len(cells)/2], cells[len(cells)-1]} {
			_, iterations, err := g.search(start, goal, DefaultPathCoefficient)
			if err != nil && !errors.Is(err, ErrNoPath) {
				t.Fatalf("search %v -> %v: %v", start, goal, err)
			}
			if iterations > g.Len() {
				t.Fatalf("search %v -> %v took %d iterations for %d cells", start, goal, iterations, g.Len())
			}
		}
	}
}

func TestFindPathUnresolvable(t *testing.T) {
	g := mustGraph(t, "###", "###", "###")
	_, err := g.FindPath(48, 48, 48, 48, DefaultPathCoefficient)
	if !errors.Is(err, ErrUnresolvable) {
		t.Fatalf("expected ErrUnresolvable, got %v", err)
	}

	g = mustGraph(t, "#####", "#...#", "#####")
	if _, err := g.FindCellPath(Cell{X: 0, Y: 0}, Cell{X: 2, Y: 1}, 1); !errors.Is(err, ErrUnresolvable) {
		t.Fatalf("expected ErrUnresolvable for non-key start, got %v", err)
	}
}
