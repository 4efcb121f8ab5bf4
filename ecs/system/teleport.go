package system

import (
	"errors"
	"log"
	"math"

	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
	"github.com/milk9111/dungeonnav/nav"
	"github.com/zyedidia/generic/mapset"
)

// TeleportSystem plans and applies teleports. Landings queued on one tick are
// applied at the start of the next; planning runs on each agent's replan
// timer in place of path search.
type TeleportSystem struct{}

func NewTeleportSystem() *TeleportSystem {
	return &TeleportSystem{}
}

func (s *TeleportSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	graph, ok := levelGraph(w)
	if !ok {
		return
	}

	s.apply(w, graph)
	s.plan(w, graph)
}

func (s *TeleportSystem) apply(w *ecs.World, graph *nav.Graph) {
	pw := w.PhysicsWorld()
	ecs.ForEach(w, component.TeleportPlanComponent.Kind(), func(e ecs.Entity, plan *component.TeleportPlan) {
		cell, ok := plan.Pop()
		if !ok {
			return
		}
		fromX, fromY, _ := entityPosition(w, e)
		x, y := graph.Center(cell)
		if pw.HasBody(e) {
			pw.SetPosition(e, x, y)
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.X, t.Y = x, y
		}
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			v.Zero()
		}
		w.Events().Push(ecs.Event{Type: ecs.EventTeleported, Data: ecs.Teleported{Entity: e, FromX: fromX, FromY: fromY, X: x, Y: y}})
	})
}

func (s *TeleportSystem) plan(w *ecs.World, graph *nav.Graph) {
	// Landing cells claimed by earlier agents in this pass.
	claimed := mapset.New[nav.Cell]()
	dt := w.DeltaTime()

	ecs.ForEach3(w, component.TeleporterComponent.Kind(), component.TeleportPlanComponent.Kind(), component.ReplanTimerComponent.Kind(), func(e ecs.Entity, tp *component.Teleporter, plan *component.TeleportPlan, timer *component.ReplanTimer) {
		timer.Tick(dt)
		if !timer.JustFinished() || isCorpse(w, e) {
			return
		}

		x, y, ok := entityPosition(w, e)
		if !ok {
			return
		}
		target, ok := opposingTarget(w, e, x, y)
		if !ok {
			return
		}
		targetCell, err := graph.Resolve(target.x, target.y)
		if err != nil {
			log.Printf("teleport: entity %v: %v", e, err)
			return
		}

		isClear := func(c nav.Cell) bool {
			return wallFree(w, graph, c, target.x, target.y)
		}
		cell, err := graph.TeleportRing(targetCell, tp.Radius, claimed, isClear)
		if errors.Is(err, nav.ErrRingExhausted) {
			return
		}
		if err != nil {
			log.Printf("teleport: entity %v: %v", e, err)
			return
		}
		plan.Queue = append(plan.Queue[:0], cell)
	})
}

// wallFree reports whether no wall stands between the centre of c and the
// point (tx, ty).
func wallFree(w *ecs.World, graph *nav.Graph, c nav.Cell, tx, ty float64) bool {
	pw := w.PhysicsWorld()
	if pw == nil {
		return true
	}
	cx, cy := graph.Center(c)
	dist := math.Hypot(tx-cx, ty-cy)
	if dist == 0 {
		return true
	}
	_, hit := pw.RayCast(cx, cy, tx-cx, ty-cy, dist, ecs.RayFilter{Mask: ecs.CategoryWall})
	return !hit
}
