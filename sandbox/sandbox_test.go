package sandbox

import (
	"testing"

	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
)

func TestNewLoadsCrypt(t *testing.T) {
	sb, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(sb.Spawned) != 8 {
		t.Fatalf("expected 8 agents in the crypt, got %d", len(sb.Spawned))
	}
	if sb.World.DeltaTime() <= 0 {
		t.Fatalf("sandbox must run with a fixed delta")
	}

	for i := 0; i < 120; i++ {
		sb.Step()
	}
	sum := sb.Summary()
	if sum.Ticks != 120 || sum.Agents != 8 {
		t.Fatalf("unexpected summary %s", sum)
	}
	if sum.Idle+sum.Pursuing != 3 {
		t.Fatalf("expected the two casters and the summon to run pursuit, got %s", sum)
	}
	if !ecs.Has(sb.World, sb.LevelEntity, component.NavGraphComponent.Kind()) {
		t.Fatalf("nav graph should be built on the first tick")
	}
}

func TestNewUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "no_such_level"}); err == nil {
		t.Fatalf("expected an error for a missing level")
	}
}

func TestInputRunsFirst(t *testing.T) {
	var order []int
	sb, err := New(Options{Input: systemFunc(func(w *ecs.World) {
		order = append(order, int(w.Tick()))
	})})
	if err != nil {
		t.Fatal(err)
	}
	sb.Step()
	sb.Step()
	if len(order) != 2 || order[0] != 0 || order[1] != 1 {
		t.Fatalf("input system should run once per tick, got %v", order)
	}
}

func TestReload(t *testing.T) {
	sb, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}

	var casters []*component.SteeringAgent
	ecs.ForEach2(sb.World, component.ArchetypeComponent.Kind(), component.SteeringAgentComponent.Kind(), func(_ ecs.Entity, a *component.Archetype, s *component.SteeringAgent) {
		if a.Name == "caster" {
			s.Speed = 1
			casters = append(casters, s)
		}
	})
	if len(casters) != 2 {
		t.Fatalf("expected 2 casters, got %d", len(casters))
	}

	sb.Reload([]string{
		"prefabs/caster.yaml",
		"prefabs/scripts/wander_drift.tengo",
		"prefabs/navigation.yaml",
		"prefabs/ghost.yaml",
	})
	for _, s := range casters {
		if s.Speed != 55 {
			t.Fatalf("reload should restore caster speed, got %v", s.Speed)
		}
	}
}

type systemFunc func(*ecs.World)

func (f systemFunc) Update(w *ecs.World) { f(w) }
