package system

import (
	"testing"

	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
	"github.com/milk9111/dungeonnav/levels"
)

func TestNavGraphSystemBuildsOnce(t *testing.T) {
	w, graph := newLevelWorld(t,
		"#####",
		"#...#",
		"#####",
	)
	if graph.Len() != 3 {
		t.Fatalf("expected 3 cells, got %d", graph.Len())
	}

	NewNavGraphSystem().Update(w)
	again, _ := levelGraph(w)
	if again != graph {
		t.Fatal("graph must be built once and shared")
	}
}

func TestNavGraphSystemSkipsBadGrid(t *testing.T) {
	w := ecs.NewWorld()
	lvl := ecs.CreateEntity(w)
	_ = ecs.Add(w, lvl, component.TileGridComponent.Kind(), &component.TileGrid{Grid: levels.NewGrid(2, 2)})

	NewNavGraphSystem().Update(w)
	if ecs.Has(w, lvl, component.NavGraphComponent.Kind()) {
		t.Fatal("a grid without interior must not get a graph")
	}
}
