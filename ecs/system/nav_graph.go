package system

import (
	"log"

	"github.com/milk9111/dungeonnav/common"
	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
	"github.com/milk9111/dungeonnav/nav"
)

// NavGraphSystem builds the navigation graph for any level entity that has a
// tile grid but no graph yet. It does nothing once the graph exists.
type NavGraphSystem struct{}

func NewNavGraphSystem() *NavGraphSystem {
	return &NavGraphSystem{}
}

func (s *NavGraphSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TileGridComponent.Kind(), func(e ecs.Entity, tg *component.TileGrid) {
		if ecs.Has(w, e, component.NavGraphComponent.Kind()) {
			return
		}

		cellSize := tg.CellSize
		if cellSize <= 0 {
			cellSize = common.TileSize
		}
		graph, err := nav.BuildGraph(tg.Grid, cellSize)
		if err != nil {
			log.Printf("navgraph: level %v: %v", e, err)
			return
		}
		if err := ecs.Add(w, e, component.NavGraphComponent.Kind(), &component.NavGraph{Graph: graph}); err != nil {
			log.Printf("navgraph: add graph: %v", err)
			return
		}
		log.Printf("navgraph: built %d cells for %dx%d grid", graph.Len(), graph.Width(), graph.Height())
	})
}
