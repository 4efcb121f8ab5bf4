package system

import (
	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
)

// TTLSystem counts TTL components down by the world step and destroys
// entities whose time runs out.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.DeltaTime()
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= dt
		if ttl.Seconds > 0 {
			return
		}
		ecs.DestroyEntity(w, e)
	})
}
