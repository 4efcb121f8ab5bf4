package component

import (
	"github.com/milk9111/dungeonnav/levels"
	"github.com/milk9111/dungeonnav/nav"
)

// TileGrid is the static tile map of the loaded level. It lives on the level
// entity.
type TileGrid struct {
	Grid     *levels.Grid
	CellSize float64
}

var TileGridComponent = NewComponent[TileGrid]()

// NavGraph holds the adjacency graph built from the level's TileGrid. The
// graph is shared read-only by every agent.
type NavGraph struct {
	Graph *nav.Graph
}

var NavGraphComponent = NewComponent[NavGraph]()
