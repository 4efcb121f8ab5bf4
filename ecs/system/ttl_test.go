package system

import (
	"testing"

	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
)

func TestTTLSystem(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaTime(0.05)
	w.AddSystem(NewTTLSystem())

	short := ecs.CreateEntity(w)
	_ = ecs.Add(w, short, component.TTLComponent.Kind(), &component.TTL{Seconds: 0.1})
	long := ecs.CreateEntity(w)
	_ = ecs.Add(w, long, component.TTLComponent.Kind(), &component.TTL{Seconds: 1})

	w.Update()
	if !ecs.IsAlive(w, short) {
		t.Fatal("destroyed too early")
	}
	w.Update()
	if ecs.IsAlive(w, short) {
		t.Fatal("expected the entity to expire")
	}
	if !ecs.IsAlive(w, long) {
		t.Fatal("longer TTL should still be alive")
	}
}
