package system

import (
	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
)

const (
	// dangerSlack lengthens each ray a little so a wall sitting exactly on
	// the threshold still registers.
	dangerSlack = 0.5
	// minDangerDistance caps weights for agents pressed against a wall.
	minDangerDistance = 1e-3
	thresholdEpsilon  = 1e-6
)

// DangerFieldSystem refreshes the danger weights of every steering agent
// with one short wall-only ray per ring direction.
type DangerFieldSystem struct{}

func NewDangerFieldSystem() *DangerFieldSystem {
	return &DangerFieldSystem{}
}

func (s *DangerFieldSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach(w, component.SteeringAgentComponent.Kind(), func(e ecs.Entity, steer *component.SteeringAgent) {
		x, y, ok := entityPosition(w, e)
		if !ok {
			return
		}
		filter := ecs.RayFilter{Mask: ecs.CategoryWall, Ignore: e}
		for i, dir := range component.RingDirections {
			steer.Weights[i] = 0
			if steer.DangerThreshold <= 0 {
				continue
			}
			hit, ok := pw.RayCast(x, y, dir[0], dir[1], steer.DangerThreshold+dangerSlack, filter)
			if !ok || hit.Distance > steer.DangerThreshold+thresholdEpsilon {
				continue
			}
			d := hit.Distance
			if d < minDangerDistance {
				d = minDangerDistance
			}
			steer.Weights[i] = -1 / d
		}
	})
}
