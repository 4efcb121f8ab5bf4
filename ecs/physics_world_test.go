package ecs

import (
	"math"
	"testing"

	"github.com/milk9111/dungeonnav/levels"
)

func newTestPhysics(t *testing.T) (*World, *PhysicsWorld) {
	t.Helper()
	grid := levels.MustParseGrid(
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	)
	w := NewWorld()
	pw := NewPhysicsWorld(grid, 32)
	w.SetPhysicsWorld(pw)
	return w, pw
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 0.5
}

func TestPhysicsWorldRayHitsWall(t *testing.T) {
	_, pw := newTestPhysics(t)

	hit, ok := pw.RayCast(48, 80, 1, 0, 200, RayFilter{Mask: CategoryWall})
	if !ok {
		t.Fatal("expected wall hit")
	}
	if !hit.Wall || hit.Entity.Valid() {
		t.Fatalf("expected wall, got %+v", hit)
	}
	if !near(hit.Distance, 80) || !near(hit.X, 128) {
		t.Fatalf("expected hit 80 units away at x=128, got %+v", hit)
	}

	if _, ok := pw.RayCast(48, 80, 1, 0, 40, RayFilter{Mask: CategoryWall}); ok {
		t.Fatal("short ray should not reach the wall")
	}
	if _, ok := pw.RayCast(48, 80, 0, 0, 200, RayFilter{Mask: CategoryWall}); ok {
		t.Fatal("zero direction must not hit")
	}
}

func TestPhysicsWorldRayFilters(t *testing.T) {
	w, pw := newTestPhysics(t)
	caster := CreateEntity(w)
	target := CreateEntity(w)

	if err := pw.AddCircle(caster, 48, 80, 8, CategoryAgent); err != nil {
		t.Fatalf("add caster: %v", err)
	}
	if err := pw.AddCircle(target, 80, 80, 8, CategoryTarget); err != nil {
		t.Fatalf("add target: %v", err)
	}
	if err := pw.AddCircle(target, 80, 80, 8, CategoryTarget); err != ErrBodyExists {
		t.Fatalf("expected ErrBodyExists, got %v", err)
	}

	all := CategoryWall | CategoryAgent | CategoryTarget

	tests := []struct {
		name     string
		filter   RayFilter
		wantWall bool
		wantEnt  Entity
		wantDist float64
	}{
		{"self_ignored", RayFilter{Mask: all, Ignore: caster}, false, target, 24},
		{"target_masked_out", RayFilter{Mask: CategoryWall | CategoryAgent, Ignore: caster}, true, 0, 80},
		{"walls_only", RayFilter{Mask: CategoryWall, Ignore: caster}, true, 0, 80},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := pw.RayCast(48, 80, 1, 0, 200, tc.filter)
			if !ok {
				t.Fatal("expected a hit")
			}
			if hit.Wall != tc.wantWall || hit.Entity != tc.wantEnt {
				t.Fatalf("expected wall=%v entity=%v, got %+v", tc.wantWall, tc.wantEnt, hit)
			}
			if !near(hit.Distance, tc.wantDist) {
				t.Fatalf("expected distance %v, got %v", tc.wantDist, hit.Distance)
			}
		})
	}

	pw.SetCategories(target, CategoryCorpse)
	if cat, _ := pw.Categories(target); cat != CategoryCorpse {
		t.Fatalf("expected corpse category, got %b", cat)
	}
	hit, ok := pw.RayCast(48, 80, 1, 0, 200, RayFilter{Mask: all, Ignore: caster})
	if !ok || !hit.Wall {
		t.Fatalf("corpse should be transparent, got %+v", hit)
	}
}

func TestPhysicsWorldBodies(t *testing.T) {
	w, pw := newTestPhysics(t)
	e := CreateEntity(w)
	if err := pw.AddCircle(e, 48, 48, 0, CategoryAgent); err != ErrInvalidBody {
		t.Fatalf("expected ErrInvalidBody, got %v", err)
	}
	if err := pw.AddCircle(e, 48, 48, 6, CategoryAgent); err != nil {
		t.Fatal(err)
	}

	pw.SetVelocity(e, 30, 0)
	pw.Step(0.5)
	x, y, ok := pw.Position(e)
	if !ok || !near(x, 63) || !near(y, 48) {
		t.Fatalf("expected body near (63,48), got (%v,%v) ok=%v", x, y, ok)
	}

	pw.SetPosition(e, 80, 96)
	x, y, _ = pw.Position(e)
	vx, vy, _ := pw.Velocity(e)
	if x != 80 || y != 96 || vx != 0 || vy != 0 {
		t.Fatalf("teleport should move and stop the body, got pos (%v,%v) vel (%v,%v)", x, y, vx, vy)
	}

	pw.Step(1.0 / 60)
	hit, ok := pw.RayCast(20, 96, 1, 0, 200, RayFilter{Mask: CategoryAgent})
	if !ok || hit.Entity != e {
		t.Fatalf("ray should hit the body at its teleported position, got %+v ok=%v", hit, ok)
	}
	if hit.X < 73 || hit.X > 75 {
		t.Fatalf("expected hit on the near edge at x=74, got %v", hit.X)
	}

	if !DestroyEntity(w, e) {
		t.Fatal("destroy failed")
	}
	if pw.HasBody(e) {
		t.Fatal("destroying the entity should remove its body")
	}
	if _, ok := pw.RayCast(48, 96, 1, 0, 200, RayFilter{Mask: CategoryAgent}); ok {
		t.Fatal("removed body must not be hit")
	}
}
