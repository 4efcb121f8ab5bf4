package system

import (
	"errors"
	"log"

	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
	"github.com/milk9111/dungeonnav/nav"
)

// PathfindingSystem replans path agents when their replan timer fires. A
// failed search keeps whatever plan the agent already had.
type PathfindingSystem struct {
	coefficient uint
}

func NewPathfindingSystem(coefficient uint) *PathfindingSystem {
	return &PathfindingSystem{coefficient: coefficient}
}

func (ps *PathfindingSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	graph, ok := levelGraph(w)
	if !ok {
		return
	}

	dt := w.DeltaTime()
	ecs.ForEach3(w, component.PathAgentComponent.Kind(), component.PathPlanComponent.Kind(), component.ReplanTimerComponent.Kind(), func(e ecs.Entity, agent *component.PathAgent, plan *component.PathPlan, timer *component.ReplanTimer) {
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

		coefficient := agent.Coefficient
		if coefficient == 0 {
			coefficient = ps.coefficient
		}

		path, err := graph.FindPath(x, y, target.x, target.y, coefficient)
		switch {
		case errors.Is(err, nav.ErrNoPath):
			return
		case err != nil:
			log.Printf("pathfinding: entity %v: %v", e, err)
			return
		}
		plan.Replace(path)
	})
}
