package entity

import (
	"fmt"

	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
	"github.com/milk9111/dungeonnav/prefabs"
)

// Retune re-reads the named prefab and applies its tuning to every live
// entity of that archetype. Runtime state (plans, pursuit state, timer
// progress) is kept. It returns how many entities were updated.
func Retune(w *ecs.World, archetype string) (int, error) {
	if w == nil {
		return 0, fmt.Errorf("retune: %w", ErrNilWorld)
	}
	spec, err := prefabs.LoadEntityBuildSpec(archetype)
	if err != nil {
		return 0, fmt.Errorf("retune %q: %w", archetype, err)
	}

	name := spec.Name
	if name == "" {
		name = archetype
	}

	var (
		steering   *prefabs.SteeringComponentSpec
		pathAgent  *prefabs.PathAgentComponentSpec
		teleporter *prefabs.TeleporterComponentSpec
		script     *prefabs.WanderScriptComponentSpec
	)
	if raw, ok := spec.Components["steering"]; ok {
		s, err := prefabs.DecodeComponentSpec[prefabs.SteeringComponentSpec](raw)
		if err != nil {
			return 0, fmt.Errorf("retune %q: decode steering: %w", archetype, err)
		}
		steering = &s
	}
	if raw, ok := spec.Components["path_agent"]; ok {
		s, err := prefabs.DecodeComponentSpec[prefabs.PathAgentComponentSpec](raw)
		if err != nil {
			return 0, fmt.Errorf("retune %q: decode path_agent: %w", archetype, err)
		}
		pathAgent = &s
	}
	if raw, ok := spec.Components["teleporter"]; ok {
		s, err := prefabs.DecodeComponentSpec[prefabs.TeleporterComponentSpec](raw)
		if err != nil {
			return 0, fmt.Errorf("retune %q: decode teleporter: %w", archetype, err)
		}
		teleporter = &s
	}
	if raw, ok := spec.Components["wander_script"]; ok {
		s, err := prefabs.DecodeComponentSpec[prefabs.WanderScriptComponentSpec](raw)
		if err != nil {
			return 0, fmt.Errorf("retune %q: decode wander_script: %w", archetype, err)
		}
		script = &s
	}

	updated := 0
	ecs.ForEach(w, component.ArchetypeComponent.Kind(), func(e ecs.Entity, a *component.Archetype) {
		if a.Name != name {
			return
		}
		if steering != nil {
			if steer, ok := ecs.Get(w, e, component.SteeringAgentComponent.Kind()); ok {
				applySteeringSpec(steer, *steering)
			}
		}
		if pathAgent != nil {
			if agent, ok := ecs.Get(w, e, component.PathAgentComponent.Kind()); ok {
				agent.Speed = pathAgent.Speed
				agent.ArrivalRadius = pathAgent.ArrivalRadius
				agent.Coefficient = pathAgent.Coefficient
			}
		}
		if teleporter != nil && teleporter.Radius > 0 {
			if tp, ok := ecs.Get(w, e, component.TeleporterComponent.Kind()); ok {
				tp.Radius = teleporter.Radius
			}
		}
		if script != nil && script.Script != "" {
			if ws, ok := ecs.Get(w, e, component.WanderScriptComponent.Kind()); ok {
				ws.Name = script.Script
			}
		}
		updated++
	})
	return updated, nil
}
