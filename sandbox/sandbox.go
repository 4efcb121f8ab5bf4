// Package sandbox wires a level, its agents and the navigation systems into
// one world. The windowed and headless front ends in cmd/navsandbox both
// drive it.
package sandbox

import (
	"fmt"
	"log"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/milk9111/dungeonnav/common"
	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
	"github.com/milk9111/dungeonnav/ecs/entity"
	"github.com/milk9111/dungeonnav/ecs/system"
	"github.com/milk9111/dungeonnav/levels"
	"github.com/milk9111/dungeonnav/prefabs"
)

const defaultLevel = "crypt"

type Options struct {
	// Level is an embedded level name; empty loads the default.
	Level string
	// Seed overrides navigation.yaml's seed when non-zero.
	Seed int64
	// Input runs before every other system, e.g. a keyboard reader.
	Input ecs.System
}

// Sandbox owns a running simulation.
type Sandbox struct {
	World       *ecs.World
	Spec        *prefabs.NavigationSpec
	Scripts     *system.WanderScripts
	LevelEntity ecs.Entity
	Spawned     []ecs.Entity

	tally *telegraphTally
}

func New(opts Options) (*Sandbox, error) {
	spec, err := prefabs.LoadNavigationSpec()
	if err != nil {
		return nil, fmt.Errorf("sandbox: %w", err)
	}
	seed := spec.Seed
	if opts.Seed != 0 {
		seed = opts.Seed
	}

	name := opts.Level
	if name == "" {
		name = defaultLevel
	}
	lvl, err := levels.LoadLevelFromFS(name)
	if err != nil {
		return nil, fmt.Errorf("sandbox: %w", err)
	}

	w := ecs.NewWorld()
	w.SetDeltaTime(common.FixedDelta)

	spawnRand := rand.New(rand.NewSource(seed))
	levelEntity, spawned, err := entity.LoadLevel(w, lvl, spec.CellSize, spawnRand)
	if err != nil {
		return nil, fmt.Errorf("sandbox: %w", err)
	}

	scripts := system.NewWanderScripts(prefabs.LoadScript)
	hostile := system.PursuitOptions{
		Rand:            rand.New(rand.NewSource(seed + 1)),
		Scripts:         scripts,
		TelegraphTTL:    spec.TelegraphTTL,
		TelegraphRadius: spec.TelegraphRadius,
	}
	friendly := hostile
	friendly.Rand = rand.New(rand.NewSource(seed + 2))

	tally := &telegraphTally{}
	if opts.Input != nil {
		w.AddSystem(opts.Input)
	}
	// Graph agents plan and pick their heading before steering agents sense
	// and react; both feed Velocity ahead of the physics step.
	w.AddSystem(ecs.NewScheduler(
		system.NewNavGraphSystem(),
		system.NewTeleportSystem(),
		system.NewPathfindingSystem(spec.PathCoefficient),
		system.NewPathFollowSystem(),
	))
	w.AddSystem(ecs.NewScheduler(
		system.NewDangerFieldSystem(),
		system.NewPursuitSystem(component.HostileTagComponent, component.FriendlyTagComponent, hostile),
		system.NewPursuitSystem(component.FriendlyTagComponent, component.HostileTagComponent, friendly),
	))
	w.AddSystem(system.NewPlayerControllerSystem())
	w.AddSystem(system.NewPhysicsSystem())
	w.AddSystem(system.NewTTLSystem())
	w.AddSystem(tally)

	log.Printf("sandbox: level %s loaded with %d agents (seed %d)", lvl.Name, len(spawned), seed)
	return &Sandbox{
		World:       w,
		Spec:        spec,
		Scripts:     scripts,
		LevelEntity: levelEntity,
		Spawned:     spawned,
		tally:       tally,
	}, nil
}

// Step advances the simulation by one fixed tick.
func (s *Sandbox) Step() {
	s.World.Update()
}

// Reload applies changed prefab files: scripts are recompiled on next use
// and archetype tuning is pushed to live agents.
func (s *Sandbox) Reload(paths []string) {
	for _, path := range paths {
		name := prefabs.SpecName(path)
		switch strings.ToLower(filepath.Ext(path)) {
		case ".tengo":
			s.Scripts.Invalidate(name)
			log.Printf("sandbox: script %s reloaded", name)
		case ".yaml", ".yml":
			if name == "navigation" {
				log.Printf("sandbox: navigation.yaml changed; restart to apply")
				continue
			}
			n, err := entity.Retune(s.World, name)
			if err != nil {
				log.Printf("sandbox: reload %s: %v", name, err)
				continue
			}
			log.Printf("sandbox: retuned %d %s", n, name)
		}
	}
}

// Summary is a snapshot of what the agents are doing.
type Summary struct {
	Ticks      uint64
	Agents     int
	Idle       int
	Pursuing   int
	Planned    int
	Teleports  int
	Telegraphs int
}

func (s Summary) String() string {
	return fmt.Sprintf("ticks=%d agents=%d idle=%d pursuing=%d planned=%d teleports=%d telegraphs=%d",
		s.Ticks, s.Agents, s.Idle, s.Pursuing, s.Planned, s.Teleports, s.Telegraphs)
}

func (s *Sandbox) Summary() Summary {
	w := s.World
	sum := Summary{Ticks: w.Tick(), Telegraphs: s.tally.count}
	ecs.ForEach(w, component.ArchetypeComponent.Kind(), func(_ ecs.Entity, _ *component.Archetype) {
		sum.Agents++
	})
	ecs.ForEach(w, component.PursuitComponent.Kind(), func(_ ecs.Entity, p *component.Pursuit) {
		if p.State == component.PursuitPursue {
			sum.Pursuing++
			return
		}
		sum.Idle++
	})
	ecs.ForEach(w, component.PathPlanComponent.Kind(), func(_ ecs.Entity, p *component.PathPlan) {
		if len(p.Waypoints) > 0 {
			sum.Planned++
		}
	})
	sum.Teleports = s.tally.teleports
	return sum
}

// telegraphTally runs last so it sees every event pushed this tick before
// the queue is flushed.
type telegraphTally struct {
	count     int
	teleports int
}

func (t *telegraphTally) Update(w *ecs.World) {
	t.count += len(w.Events().Peek(ecs.EventThreatTelegraph))
	t.teleports += len(w.Events().Peek(ecs.EventTeleported))
}
