package system

import (
	"math"
	"testing"

	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
)

var openRoom = []string{
	"#########",
	"#.......#",
	"#.......#",
	"#.......#",
	"#.......#",
	"#.......#",
	"#.......#",
	"#.......#",
	"#########",
}

func TestDangerFieldLocality(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		wantHit   bool
	}{
		{"wall_at_threshold", 40, true},
		{"wall_beyond_threshold", 39, false},
		{"wall_inside_threshold", 64, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := newLevelWorld(t, openRoom...)
			w.AddSystem(NewDangerFieldSystem())

			// The east wall face is at x=256, 40 units away.
			agent := addActor(t, w, component.HostileTagComponent, 216, 144, ecs.CategoryAgent)
			steer := &component.SteeringAgent{DangerThreshold: tc.threshold}
			for i := range steer.Weights {
				steer.Weights[i] = 99
			}
			_ = ecs.Add(w, agent, component.SteeringAgentComponent.Kind(), steer)

			w.Update()

			if tc.wantHit {
				want := -1.0 / 40
				if math.Abs(steer.Weights[0]-want) > 1e-3 {
					t.Fatalf("expected east weight %v, got %v", want, steer.Weights[0])
				}
			} else if steer.Weights[0] != 0 {
				t.Fatalf("wall beyond threshold must leave weight 0, got %v", steer.Weights[0])
			}
			for i := 1; i < component.RingSize; i++ {
				if tc.threshold < 64 && steer.Weights[i] != 0 {
					t.Fatalf("direction %d should be clear, got %v", i, steer.Weights[i])
				}
			}
			if steer.Weights[component.RingSize/2] != 0 {
				t.Fatalf("west is far from any wall, got %v", steer.Weights[component.RingSize/2])
			}
		})
	}
}

func TestDangerFieldIgnoresAgents(t *testing.T) {
	w, _ := newLevelWorld(t, openRoom...)
	w.AddSystem(NewDangerFieldSystem())

	agent := addActor(t, w, component.HostileTagComponent, 144, 144, ecs.CategoryAgent)
	steer := &component.SteeringAgent{DangerThreshold: 40}
	_ = ecs.Add(w, agent, component.SteeringAgentComponent.Kind(), steer)
	addActor(t, w, component.FriendlyTagComponent, 170, 144, ecs.CategoryTarget)

	w.Update()
	for i, weight := range steer.Weights {
		if weight != 0 {
			t.Fatalf("only walls count as danger, direction %d got %v", i, weight)
		}
	}
}
