package system

import (
	"math"
	"sort"

	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
	"github.com/milk9111/dungeonnav/nav"
)

// losExcluded are the categories line of sight sees through.
const losExcluded = ecs.CategoryCorpse | ecs.CategoryShield | ecs.CategoryBlank

// entityPosition prefers the physics body, which is where the entity really
// is mid-tick, and falls back to the Transform.
func entityPosition(w *ecs.World, e ecs.Entity) (float64, float64, bool) {
	if x, y, ok := w.PhysicsWorld().Position(e); ok {
		return x, y, true
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return t.X, t.Y, true
	}
	return 0, 0, false
}

func levelGraph(w *ecs.World) (*nav.Graph, bool) {
	levelEntity, ok := ecs.First(w, component.NavGraphComponent.Kind())
	if !ok {
		return nil, false
	}
	ng, ok := ecs.Get(w, levelEntity, component.NavGraphComponent.Kind())
	if !ok || ng.Graph == nil {
		return nil, false
	}
	return ng.Graph, true
}

type candidate struct {
	entity ecs.Entity
	x, y   float64
	dist   float64
}

// nearestTarget returns the closest live, non-corpse entity carrying kind.
// When the closest one is self, the next closest is used instead.
func nearestTarget[T any](w *ecs.World, kind component.ComponentKind[T], self ecs.Entity, x, y float64) (candidate, bool) {
	var found []candidate
	ecs.ForEach(w, kind, func(e ecs.Entity, _ *T) {
		if ecs.Has(w, e, component.CorpseComponent.Kind()) {
			return
		}
		tx, ty, ok := entityPosition(w, e)
		if !ok {
			return
		}
		found = append(found, candidate{entity: e, x: tx, y: ty, dist: math.Hypot(tx-x, ty-y)})
	})
	if len(found) == 0 {
		return candidate{}, false
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].dist < found[j].dist })
	if found[0].entity == self {
		if len(found) == 1 {
			return candidate{}, false
		}
		return found[1], true
	}
	return found[0], true
}

// opposingTarget finds the nearest entity on the other side of e: friendly
// entities for hostile agents and the other way round.
func opposingTarget(w *ecs.World, e ecs.Entity, x, y float64) (candidate, bool) {
	switch {
	case ecs.Has(w, e, component.HostileTagComponent.Kind()):
		return nearestTarget(w, component.FriendlyTagComponent.Kind(), e, x, y)
	case ecs.Has(w, e, component.FriendlyTagComponent.Kind()):
		return nearestTarget(w, component.HostileTagComponent.Kind(), e, x, y)
	}
	return candidate{}, false
}

// lineOfSight casts one ray from (x, y) to the target and reports whether the
// target is the first thing it hits.
func lineOfSight(w *ecs.World, self ecs.Entity, x, y float64, target candidate) bool {
	pw := w.PhysicsWorld()
	if pw == nil {
		return false
	}
	hit, ok := pw.RayCast(x, y, target.x-x, target.y-y, target.dist+1, ecs.RayFilter{
		Mask:   ecs.CategoryAll &^ losExcluded,
		Ignore: self,
	})
	return ok && !hit.Wall && hit.Entity == target.entity
}

func isCorpse(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.CorpseComponent.Kind())
}
