package system

import (
	"log"

	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
)

// PhysicsSystem is the movement-application step: it registers bodies for
// new entities, keeps shape categories in sync with corpse/shield/blank
// markers, hands Velocity to the bodies, steps the space and copies body
// positions back into Transform.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, body *component.PhysicsBody) {
		category := bodyCategory(w, e)
		if !pw.HasBody(e) {
			if err := pw.AddCircle(e, t.X, t.Y, body.Radius, category); err != nil {
				log.Printf("physics: entity %v: %v", e, err)
			}
			return
		}
		if current, _ := pw.Categories(e); current != category {
			pw.SetCategories(e, category)
		}
	})

	ecs.ForEach(w, component.VelocityComponent.Kind(), func(e ecs.Entity, v *component.Velocity) {
		if isCorpse(w, e) {
			v.Zero()
		}
		pw.SetVelocity(e, v.X, v.Y)
	})

	pw.Step(w.DeltaTime())

	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, t *component.Transform) {
		if x, y, ok := pw.Position(e); ok {
			t.X, t.Y = x, y
		}
	})
}

func bodyCategory(w *ecs.World, e ecs.Entity) uint {
	switch {
	case ecs.Has(w, e, component.CorpseComponent.Kind()):
		return ecs.CategoryCorpse
	case ecs.Has(w, e, component.ShieldComponent.Kind()):
		return ecs.CategoryShield
	case ecs.Has(w, e, component.BlankComponent.Kind()):
		return ecs.CategoryBlank
	}
	if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok && layer.Category != 0 {
		return layer.Category
	}
	return ecs.CategoryAgent
}
