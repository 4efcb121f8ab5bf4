package system

import (
	"log"
	"math/rand"

	"github.com/milk9111/dungeonnav/common"
	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
)

// PursuitOptions tunes a PursuitSystem. Zero values fall back to defaults.
type PursuitOptions struct {
	Rand            *rand.Rand
	Scripts         *WanderScripts
	TelegraphTTL    float64
	TelegraphRadius float64
}

// PursuitSystem drives the idle/pursue state machine of every steering agent
// carrying the S tag against the nearest live entity carrying the T tag.
// One instance is registered per pairing, e.g. hostile vs friendly and
// friendly vs hostile.
type PursuitSystem[S, T any] struct {
	self   component.ComponentKind[S]
	target component.ComponentKind[T]
	rng    *rand.Rand
	opts   PursuitOptions
}

func NewPursuitSystem[S, T any](self component.ComponentHandle[S], target component.ComponentHandle[T], opts PursuitOptions) *PursuitSystem[S, T] {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if opts.TelegraphTTL <= 0 {
		opts.TelegraphTTL = 0.75
	}
	if opts.TelegraphRadius <= 0 {
		opts.TelegraphRadius = 12
	}
	return &PursuitSystem[S, T]{self: self.Kind(), target: target.Kind(), rng: rng, opts: opts}
}

func (ps *PursuitSystem[S, T]) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	dt := w.DeltaTime()
	ecs.ForEach3(w, ps.self, component.SteeringAgentComponent.Kind(), component.PursuitComponent.Kind(), func(e ecs.Entity, _ *S, steer *component.SteeringAgent, pursuit *component.Pursuit) {
		if isCorpse(w, e) {
			return
		}
		v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			return
		}
		x, y, ok := entityPosition(w, e)
		if !ok {
			return
		}

		target, found := nearestTarget(w, ps.target, e, x, y)
		switch pursuit.State {
		case component.PursuitIdle:
			ps.wander(w, e, steer, v, dt)
			if !found || target.dist > steer.PursueRadius || !lineOfSight(w, e, x, y, target) {
				return
			}
			if pursuit.Fire(component.EventAcquire) {
				steer.GiveUp.Reset()
				if dx, dy, length := common.Normalize(target.x-x, target.y-y); length > 0 {
					steer.CachedX, steer.CachedY = dx, dy
					steer.HasCached = true
				}
				ps.telegraph(w, e, target.entity, x, y)
			}

		case component.PursuitPursue:
			if found && lineOfSight(w, e, x, y, target) {
				dx, dy, length := common.Normalize(target.x-x, target.y-y)
				if length > 0 {
					steer.CachedX, steer.CachedY = dx, dy
					steer.HasCached = true
				}
				steer.GiveUp.Reset()
			}

			sx, sy := steer.DangerSum()
			v.X = (steer.CachedX + sx) * steer.Speed
			v.Y = (steer.CachedY + sy) * steer.Speed

			steer.GiveUp.Tick(dt)
			if !found || target.dist > steer.PursueRadius || steer.GiveUp.Finished() {
				pursuit.Fire(component.EventLose)
				v.Zero()
				steer.ClearCache()
			}
		}
	})
}

// wander starts a new leg on every wander period and stops the agent once
// the walk part of the leg has elapsed.
func (ps *PursuitSystem[S, T]) wander(w *ecs.World, e ecs.Entity, steer *component.SteeringAgent, v *component.Velocity, dt float64) {
	steer.Wander.Tick(dt)
	if !steer.Wander.JustFinished() {
		steer.WanderWalk.Tick(dt)
		if steer.WanderWalk.JustFinished() {
			v.Zero()
		}
		return
	}

	idx := ps.pickDirection(w, e, steer.WanderIndex)
	steer.WanderIndex = idx
	dir := component.RingDirections[idx]
	sx, sy := steer.DangerSum()
	v.X = (dir[0] + sx) * steer.Speed
	v.Y = (dir[1] + sy) * steer.Speed
	steer.WanderWalk.Reset()
}

func (ps *PursuitSystem[S, T]) pickDirection(w *ecs.World, e ecs.Entity, last int) int {
	roll := ps.rng.Intn(1 << 16)
	script, ok := ecs.Get(w, e, component.WanderScriptComponent.Kind())
	if !ok || script.Name == "" || ps.opts.Scripts == nil {
		return roll % component.RingSize
	}
	idx, err := ps.opts.Scripts.Pick(script.Name, last, roll)
	if err != nil {
		log.Printf("pursuit: entity %v wander script: %v", e, err)
		return roll % component.RingSize
	}
	return idx
}

// telegraph announces a freshly acquired target: one event for combat and
// UI, plus a short-lived marker entity at the agent's position.
func (ps *PursuitSystem[S, T]) telegraph(w *ecs.World, source, target ecs.Entity, x, y float64) {
	w.Events().Push(ecs.Event{
		Type: ecs.EventThreatTelegraph,
		Data: ecs.ThreatTelegraph{Source: source, Target: target, X: x, Y: y},
	})

	if _, err := spawnTelegraphMarker(w, x, y, ps.opts.TelegraphRadius, ps.opts.TelegraphTTL); err != nil {
		log.Printf("pursuit: telegraph marker: %v", err)
	}
}

// spawnTelegraphMarker creates a short-lived marker at (x, y). A marker that
// cannot be fully assembled is destroyed so no half-built entity is left for
// the TTL or draw passes.
func spawnTelegraphMarker(w *ecs.World, x, y, radius, ttl float64) (ecs.Entity, error) {
	if w == nil {
		return 0, component.ErrEntityNotAlive
	}
	marker := ecs.CreateEntity(w)
	err := ecs.Add(w, marker, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	if err == nil {
		err = ecs.Add(w, marker, component.TelegraphComponent.Kind(), &component.Telegraph{Radius: radius})
	}
	if err == nil {
		err = ecs.Add(w, marker, component.TTLComponent.Kind(), &component.TTL{Seconds: ttl})
	}
	if err != nil {
		ecs.DestroyEntity(w, marker)
		return 0, err
	}
	return marker, nil
}
