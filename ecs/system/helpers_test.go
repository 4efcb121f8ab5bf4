package system

import (
	"testing"

	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
	"github.com/milk9111/dungeonnav/levels"
	"github.com/milk9111/dungeonnav/nav"
)

const cell = 32.0

// newLevelWorld builds a world with physics and a nav graph for rows.
func newLevelWorld(t *testing.T, rows ...string) (*ecs.World, *nav.Graph) {
	t.Helper()
	grid := levels.MustParseGrid(rows...)
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(grid, cell))

	lvl := ecs.CreateEntity(w)
	if err := ecs.Add(w, lvl, component.TileGridComponent.Kind(), &component.TileGrid{Grid: grid, CellSize: cell}); err != nil {
		t.Fatal(err)
	}
	NewNavGraphSystem().Update(w)
	graph, ok := levelGraph(w)
	if !ok {
		t.Fatal("nav graph was not built")
	}
	return w, graph
}

// addActor creates a tagged entity with a registered circle body at (x, y).
func addActor[T any](t *testing.T, w *ecs.World, tag component.ComponentHandle[T], x, y float64, category uint) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, tag.Kind(), new(T)); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 8}); err != nil {
		t.Fatal(err)
	}
	if err := w.PhysicsWorld().AddCircle(e, x, y, 8, category); err != nil {
		t.Fatal(err)
	}
	return e
}

func centerOf(c nav.Cell) (float64, float64) {
	return float64(c.X)*cell + cell/2, float64(c.Y)*cell + cell/2
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, h.Kind())
	if !ok {
		t.Fatalf("entity %v has no %T", e, v)
	}
	return v
}

type systemFunc func(*ecs.World)

func (f systemFunc) Update(w *ecs.World) { f(w) }
