package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrMixedMovement = errors.New("prefabs: archetype mixes movement modes")

// EntityBuildSpec is an archetype: a name plus raw component specs keyed by
// component name. Each entry is decoded by the entity builder registered for
// that name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	spec, err := LoadSpec[EntityBuildSpec](filename)
	if err != nil {
		return spec, err
	}
	// steering, path_agent and teleporter each own the agent's position.
	modes := 0
	for _, name := range []string{"steering", "path_agent", "teleporter"} {
		if _, ok := spec.Components[name]; ok {
			modes++
		}
	}
	if modes > 1 {
		return spec, fmt.Errorf("prefabs: %s: %w", filename, ErrMixedMovement)
	}
	return spec, nil
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerControlComponentSpec struct {
	Speed float64 `yaml:"speed"`
}

type PhysicsBodyComponentSpec struct {
	Radius float64 `yaml:"radius"`
}

type CollisionLayerComponentSpec struct {
	Category string `yaml:"category"`
}

type SteeringComponentSpec struct {
	Speed           float64 `yaml:"speed"`
	DangerThreshold float64 `yaml:"danger_threshold"`
	PursueRadius    float64 `yaml:"pursue_radius"`
	GiveUp          float64 `yaml:"give_up"`
	WanderPeriod    float64 `yaml:"wander_period"`
	WanderWalk      float64 `yaml:"wander_walk"`
	// WanderJitter widens each agent's wander period by up to this many
	// seconds so a crowd does not pick new directions in lockstep.
	WanderJitter float64 `yaml:"wander_jitter"`
}

type PathAgentComponentSpec struct {
	Speed         float64 `yaml:"speed"`
	ArrivalRadius float64 `yaml:"arrival_radius"`
	Coefficient   uint    `yaml:"coefficient"`
}

// ReplanComponentSpec bounds the randomised replan period, in seconds.
type ReplanComponentSpec struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type TeleporterComponentSpec struct {
	Radius int `yaml:"radius"`
}

type WanderScriptComponentSpec struct {
	Script string `yaml:"script"`
}
