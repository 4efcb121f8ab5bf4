package ecs

import "github.com/milk9111/dungeonnav/common"

// World owns entities, component stores, the event queue, the system order
// and the attached physics world.
type World struct {
	entities entityStore
	stores   map[uint32]*SparseSet
	systems  []System
	events   EventQueue
	delta    float64
	tick     uint64

	physicsWorld *PhysicsWorld
}

// NewWorld creates an empty ECS world stepping at the fixed simulation rate.
func NewWorld() *World {
	return &World{
		stores: make(map[uint32]*SparseSet),
		delta:  common.FixedDelta,
	}
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once and then drops undrained events.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
	w.tick++
	w.events.flush()
}

// Tick returns how many times Update has completed.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// DeltaTime returns the seconds simulated by one Update.
func (w *World) DeltaTime() float64 {
	if w == nil {
		return common.FixedDelta
	}
	return w.delta
}

// SetDeltaTime overrides the fixed step. Non-positive values are ignored.
func (w *World) SetDeltaTime(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	w.delta = dt
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

func (w *World) store(id uint32, create bool) *SparseSet {
	if w.stores == nil {
		if !create {
			return nil
		}
		w.stores = make(map[uint32]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
