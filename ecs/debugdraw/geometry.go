package debugdraw

import (
	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
	"github.com/milk9111/dungeonnav/nav"
)

// Segment is a world-space line.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// GraphEdges returns one segment per undirected graph edge.
func GraphEdges(g *nav.Graph) []Segment {
	if g == nil {
		return nil
	}
	var out []Segment
	for _, c := range g.Cells() {
		entry, ok := g.Entry(c)
		if !ok {
			continue
		}
		for _, n := range entry.Neighbors {
			// Each edge is stored on both ends; draw it once.
			if n.Cell.Y < c.Y || (n.Cell.Y == c.Y && n.Cell.X < c.X) {
				continue
			}
			out = append(out, Segment{X0: entry.Node.X, Y0: entry.Node.Y, X1: n.X, Y1: n.Y})
		}
	}
	return out
}

// PathSegments returns the remaining route of every path agent, starting
// at the agent itself.
func PathSegments(w *ecs.World, g *nav.Graph) []Segment {
	if w == nil || g == nil {
		return nil
	}
	var out []Segment
	ecs.ForEach2(w, component.PathPlanComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, plan *component.PathPlan, t *component.Transform) {
		x, y := t.X, t.Y
		for _, c := range plan.Waypoints {
			cx, cy := g.Center(c)
			out = append(out, Segment{X0: x, Y0: y, X1: cx, Y1: cy})
			x, y = cx, cy
		}
	})
	return out
}

// DangerRays returns one segment per sensed danger direction. The ray is
// drawn as far as the obstacle, i.e. 1/|weight|.
func DangerRays(w *ecs.World) []Segment {
	if w == nil {
		return nil
	}
	var out []Segment
	ecs.ForEach2(w, component.SteeringAgentComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, steer *component.SteeringAgent, t *component.Transform) {
		for i, weight := range steer.Weights {
			if weight >= 0 {
				continue
			}
			d := -1 / weight
			if d > steer.DangerThreshold {
				d = steer.DangerThreshold
			}
			dir := component.RingDirections[i]
			out = append(out, Segment{X0: t.X, Y0: t.Y, X1: t.X + dir[0]*d, Y1: t.Y + dir[1]*d})
		}
	})
	return out
}
