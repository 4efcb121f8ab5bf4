package entity

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
	"github.com/milk9111/dungeonnav/prefabs"
)

var (
	ErrNilWorld        = errors.New("entity: world is nil")
	ErrNoComponents    = errors.New("entity: prefab defines no components")
	ErrUnknownCategory = errors.New("entity: unknown collision category")
	ErrBadReplan       = errors.New("entity: replan bounds must satisfy 0 < min <= max")
)

type buildContext struct {
	PrefabPath string
	Rand       *rand.Rand
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":      addPlayerTag,
	"player_control":  addPlayerControl,
	"hostile_tag":     addHostileTag,
	"friendly_tag":    addFriendlyTag,
	"physics_body":    addPhysicsBody,
	"collision_layer": addCollisionLayer,
	"path_agent":      addPathAgent,
	"replan":          addReplan,
	"steering":        addSteering,
	"pursuit":         addPursuit,
	"wander_script":   addWanderScript,
	"teleporter":      addTeleporter,
}

var componentBuildOrder = []string{
	"player_tag",
	"player_control",
	"hostile_tag",
	"friendly_tag",
	"physics_body",
	"collision_layer",
	"path_agent",
	"replan",
	"steering",
	"pursuit",
	"wander_script",
	"teleporter",
}

var categoryNames = map[string]uint{
	"wall":   ecs.CategoryWall,
	"agent":  ecs.CategoryAgent,
	"target": ecs.CategoryTarget,
	"corpse": ecs.CategoryCorpse,
	"shield": ecs.CategoryShield,
	"blank":  ecs.CategoryBlank,
}

// BuildEntity creates an entity at world position (x, y) from the named
// prefab. rng seeds the per-agent timer jitter; nil means unjittered timers.
func BuildEntity(w *ecs.World, prefabPath string, x, y float64, rng *rand.Rand) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: %w", ErrNilWorld)
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: %q: %w", prefabPath, ErrNoComponents)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Rand: rng}

	name := spec.Name
	if name == "" {
		name = strings.TrimSuffix(prefabPath, ".yaml")
	}
	if err := ecs.Add(w, e, component.ArchetypeComponent.Kind(), &component.Archetype{Name: name}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: %w", prefabPath, err)
	}
	if err := SetEntityTransform(w, e, x, y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: %w", prefabPath, err)
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

// SetEntityTransform places e at (x, y), moving its body too if it has one.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	if pw := w.PhysicsWorld(); pw != nil && pw.HasBody(e) {
		pw.SetPosition(e, x, y)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addPlayerControl(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerControlComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player_control spec: %w", err)
	}
	if err := ensureVelocity(w, e); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.PlayerControlComponent.Kind(), &component.PlayerControl{Speed: spec.Speed})
}

func addHostileTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.HostileTagComponent.Kind(), &component.HostileTag{})
}

func addFriendlyTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.FriendlyTagComponent.Kind(), &component.FriendlyTag{})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	if spec.Radius <= 0 {
		return fmt.Errorf("physics_body: %w", ecs.ErrInvalidBody)
	}
	if err := ensureVelocity(w, e); err != nil {
		return err
	}
	// PhysicsSystem registers the circle on its next pass.
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: spec.Radius})
}

func addCollisionLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CollisionLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision_layer spec: %w", err)
	}
	category, ok := categoryNames[strings.ToLower(strings.TrimSpace(spec.Category))]
	if !ok {
		return fmt.Errorf("collision_layer %q: %w", spec.Category, ErrUnknownCategory)
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: category})
}

func addPathAgent(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PathAgentComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode path_agent spec: %w", err)
	}
	if err := ensureVelocity(w, e); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PathPlanComponent.Kind(), &component.PathPlan{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.PathAgentComponent.Kind(), &component.PathAgent{
		Speed:         spec.Speed,
		ArrivalRadius: spec.ArrivalRadius,
		Coefficient:   spec.Coefficient,
	})
}

func addReplan(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ReplanComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode replan spec: %w", err)
	}
	if spec.Min <= 0 || spec.Max < spec.Min {
		return fmt.Errorf("replan [%v, %v]: %w", spec.Min, spec.Max, ErrBadReplan)
	}

	period := spec.Min
	var phase float64
	if ctx != nil && ctx.Rand != nil {
		period = spec.Min + ctx.Rand.Float64()*(spec.Max-spec.Min)
		phase = ctx.Rand.Float64() * period
	}
	timer := component.NewTimer(period, true)
	timer.Elapsed = phase
	return ecs.Add(w, e, component.ReplanTimerComponent.Kind(), &component.ReplanTimer{Timer: timer})
}

func addSteering(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SteeringComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode steering spec: %w", err)
	}
	if err := ensureVelocity(w, e); err != nil {
		return err
	}
	steer := &component.SteeringAgent{WanderIndex: -1}
	hasRand := ctx != nil && ctx.Rand != nil
	if hasRand && spec.WanderJitter > 0 {
		steer.WanderOffset = ctx.Rand.Float64() * spec.WanderJitter
	}
	applySteeringSpec(steer, spec)
	if hasRand {
		steer.Wander.Elapsed = ctx.Rand.Float64() * steer.Wander.Duration
	}
	return ecs.Add(w, e, component.SteeringAgentComponent.Kind(), steer)
}

// applySteeringSpec copies tuning into steer without touching its runtime
// state (weights, timers' elapsed time, wander offset, cached direction).
func applySteeringSpec(steer *component.SteeringAgent, spec prefabs.SteeringComponentSpec) {
	walk := spec.WanderWalk
	if walk <= 0 {
		walk = spec.WanderPeriod / 2
	}
	steer.Speed = spec.Speed
	steer.DangerThreshold = spec.DangerThreshold
	steer.PursueRadius = spec.PursueRadius
	steer.GiveUp.Duration = spec.GiveUp
	steer.Wander.Duration = spec.WanderPeriod + steer.WanderOffset
	steer.Wander.Repeating = true
	steer.WanderWalk.Duration = walk
}

func addPursuit(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PursuitComponent.Kind(), &component.Pursuit{State: component.PursuitIdle})
}

func addWanderScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.WanderScriptComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode wander_script spec: %w", err)
	}
	if strings.TrimSpace(spec.Script) == "" {
		return fmt.Errorf("wander_script: script name is empty")
	}
	return ecs.Add(w, e, component.WanderScriptComponent.Kind(), &component.WanderScript{Name: spec.Script})
}

func addTeleporter(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TeleporterComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode teleporter spec: %w", err)
	}
	if spec.Radius <= 0 {
		return fmt.Errorf("teleporter: radius must be positive, got %d", spec.Radius)
	}
	if err := ensureVelocity(w, e); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.TeleportPlanComponent.Kind(), &component.TeleportPlan{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.TeleporterComponent.Kind(), &component.Teleporter{Radius: spec.Radius})
}

func ensureVelocity(w *ecs.World, e ecs.Entity) error {
	if ecs.Has(w, e, component.VelocityComponent.Kind()) {
		return nil
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
}
