package ecs

import "github.com/milk9111/dungeonnav/ecs/component"

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity kills e and drops all of its components. It reports whether
// e was alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	if w.physicsWorld != nil {
		w.physicsWorld.RemoveEntity(e)
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.live()
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	w.store(uint32(kind.ID()), true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	return w.store(uint32(kind.ID()), false).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(uint32(kind.ID()), false).Has(e)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	value, ok := w.store(uint32(kind.ID()), false).Get(e).(*T)
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// First returns the first live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(uint32(kind.ID()), false)
	if s == nil {
		return 0, false
	}
	for _, e := range s.denseEntities {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	if w == nil || fn == nil {
		return
	}
	sa := w.store(uint32(ka.ID()), false)
	for _, e := range sa.Entities() {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range intersect(w, uint32(ka.ID()), uint32(kb.ID())) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range intersect(w, uint32(ka.ID()), uint32(kb.ID()), uint32(kc.ID())) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range intersect(w, uint32(ka.ID()), uint32(kb.ID()), uint32(kc.ID()), uint32(kd.ID())) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		d, okD := Get(w, e, kd)
		if !okA || !okB || !okC || !okD {
			continue
		}
		fn(e, a, b, c, d)
	}
}
