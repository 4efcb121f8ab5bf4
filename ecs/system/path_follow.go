package system

import (
	"github.com/milk9111/dungeonnav/common"
	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
)

// PathFollowSystem turns the head of each PathPlan into a velocity, popping
// waypoints as the agent reaches them.
type PathFollowSystem struct{}

func NewPathFollowSystem() *PathFollowSystem {
	return &PathFollowSystem{}
}

func (s *PathFollowSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	graph, ok := levelGraph(w)
	if !ok {
		return
	}
	cellSize := graph.CellSize()

	ecs.ForEach3(w, component.PathAgentComponent.Kind(), component.PathPlanComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, agent *component.PathAgent, plan *component.PathPlan, v *component.Velocity) {
		x, y, ok := entityPosition(w, e)
		if !ok || isCorpse(w, e) {
			v.Zero()
			return
		}

		plan.Advance(x, y, agent.ArrivalRadius, cellSize)
		next, ok := plan.Next()
		if !ok {
			v.Zero()
			return
		}

		cx, cy := graph.Center(next)
		dx, dy, length := common.Normalize(cx-x, cy-y)
		if length == 0 {
			v.Zero()
			return
		}
		v.X = dx * agent.Speed
		v.Y = dy * agent.Speed
	})
}
