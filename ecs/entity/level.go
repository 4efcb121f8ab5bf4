package entity

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/milk9111/dungeonnav/common"
	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
	"github.com/milk9111/dungeonnav/levels"
)

// NewLevel parses lvl and loads it into the world: a level entity carrying
// the tile grid and bounds, plus a physics world with the merged wall
// shapes. It returns the level entity and the spawn list for SpawnEntities.
// NavGraphSystem builds the graph on its first update.
func NewLevel(w *ecs.World, lvl *levels.Level, cellSize float64) (ecs.Entity, []levels.Entity, error) {
	if w == nil {
		return 0, nil, fmt.Errorf("new level: %w", ErrNilWorld)
	}
	if cellSize <= 0 {
		cellSize = common.TileSize
	}

	grid, spawns, err := lvl.Parse()
	if err != nil {
		return 0, nil, fmt.Errorf("new level: %w", err)
	}

	w.SetPhysicsWorld(ecs.NewPhysicsWorld(grid, cellSize))

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TileGridComponent.Kind(), &component.TileGrid{Grid: grid, CellSize: cellSize}); err != nil {
		return 0, nil, fmt.Errorf("new level: %w", err)
	}
	if err := ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(grid.Width) * cellSize,
		Height: float64(grid.Height) * cellSize,
	}); err != nil {
		return 0, nil, fmt.Errorf("new level: %w", err)
	}
	log.Printf("entity: level %s %dx%d, %d floor cells, %d spawns", lvl.Name, grid.Width, grid.Height, grid.Count(levels.Floor), len(spawns))
	return e, spawns, nil
}

// SpawnEntities builds one entity per spawn request, placed at the centre of
// its cell. The spawn type names the prefab. Unknown prefabs are logged and
// skipped so one bad marker doesn't sink the level.
func SpawnEntities(w *ecs.World, spawns []levels.Entity, cellSize float64, rng *rand.Rand) ([]ecs.Entity, error) {
	if w == nil {
		return nil, fmt.Errorf("spawn entities: %w", ErrNilWorld)
	}
	if cellSize <= 0 {
		cellSize = common.TileSize
	}

	out := make([]ecs.Entity, 0, len(spawns))
	for _, s := range spawns {
		prefab := strings.ToLower(strings.TrimSpace(s.Type))
		if prefab == "" {
			continue
		}
		x := float64(s.X)*cellSize + cellSize/2
		y := float64(s.Y)*cellSize + cellSize/2
		e, err := BuildEntity(w, prefab, x, y, rng)
		if err != nil {
			log.Printf("entity: spawn %q at (%d,%d): %v", s.Type, s.X, s.Y, err)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// LoadLevel is NewLevel followed by SpawnEntities.
func LoadLevel(w *ecs.World, lvl *levels.Level, cellSize float64, rng *rand.Rand) (ecs.Entity, []ecs.Entity, error) {
	levelEntity, spawns, err := NewLevel(w, lvl, cellSize)
	if err != nil {
		return 0, nil, err
	}
	spawned, err := SpawnEntities(w, spawns, cellSize, rng)
	if err != nil {
		return 0, nil, err
	}
	return levelEntity, spawned, nil
}
