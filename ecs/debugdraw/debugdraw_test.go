package debugdraw

import (
	"image/color"
	"math"
	"testing"

	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
	"github.com/milk9111/dungeonnav/levels"
	"github.com/milk9111/dungeonnav/nav"
	"github.com/milk9111/dungeonnav/prefabs"
	"golang.org/x/image/colornames"
)

func TestPaletteFromSpec(t *testing.T) {
	tests := []struct {
		name string
		spec prefabs.DebugColor
		want Palette
	}{
		{"empty_uses_defaults", prefabs.DebugColor{}, DefaultPalette},
		{
			name: "named_colours",
			spec: prefabs.DebugColor{Path: "Lime", Pursue: " magenta "},
			want: func() Palette {
				p := DefaultPalette
				p.Path = colornames.Lime
				p.Pursue = colornames.Magenta
				return p
			}(),
		},
		{"unknown_name_falls_back", prefabs.DebugColor{Danger: "not-a-colour"}, DefaultPalette},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PaletteFromSpec(tc.spec)
			pairs := [][2]color.Color{
				{got.Graph, tc.want.Graph}, {got.Path, tc.want.Path}, {got.Danger, tc.want.Danger},
				{got.Idle, tc.want.Idle}, {got.Pursue, tc.want.Pursue}, {got.Telegraph, tc.want.Telegraph},
			}
			for i, p := range pairs {
				if p[0] != p[1] {
					t.Fatalf("colour %d: expected %v, got %v", i, p[1], p[0])
				}
			}
		})
	}
}

func TestGraphEdges(t *testing.T) {
	g, err := nav.BuildGraph(levels.MustParseGrid(
		"#####",
		"#...#",
		"#####",
	), 32)
	if err != nil {
		t.Fatal(err)
	}
	edges := GraphEdges(g)
	if len(edges) != 2 {
		t.Fatalf("expected each edge once, got %d: %v", len(edges), edges)
	}
	for _, e := range edges {
		if e.Y0 != 48 || e.Y1 != 48 || math.Abs(e.X1-e.X0) != 32 {
			t.Fatalf("unexpected edge %+v", e)
		}
	}
	if GraphEdges(nil) != nil {
		t.Fatalf("nil graph has no edges")
	}
}

func TestPathSegments(t *testing.T) {
	g, err := nav.BuildGraph(levels.MustParseGrid(
		"#####",
		"#...#",
		"#####",
	), 32)
	if err != nil {
		t.Fatal(err)
	}
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 48, Y: 48})
	_ = ecs.Add(w, e, component.PathPlanComponent.Kind(), &component.PathPlan{Waypoints: []nav.Cell{{X: 2, Y: 1}, {X: 3, Y: 1}}})

	segs := PathSegments(w, g)
	want := []Segment{{48, 48, 80, 48}, {80, 48, 112, 48}}
	if len(segs) != len(want) {
		t.Fatalf("expected %d segments, got %v", len(want), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Fatalf("segment %d: expected %+v, got %+v", i, want[i], segs[i])
		}
	}
}

func TestDangerRays(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	steer := &component.SteeringAgent{DangerThreshold: 40}
	steer.Weights[0] = -1.0 / 20
	steer.Weights[4] = -1.0 / 1e-3
	_ = ecs.Add(w, e, component.SteeringAgentComponent.Kind(), steer)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 100, Y: 100})

	rays := DangerRays(w)
	if len(rays) != 2 {
		t.Fatalf("expected one ray per weighted direction, got %v", rays)
	}
	if math.Abs(rays[0].X1-120) > 1e-9 || math.Abs(rays[0].Y1-100) > 1e-9 {
		t.Fatalf("ray 0 should stop at the wall 20 units along +X, got %+v", rays[0])
	}
	if math.Hypot(rays[1].X1-100, rays[1].Y1-100) > 1e-3+1e-9 {
		t.Fatalf("ray 4 should be clamped to the hit distance, got %+v", rays[1])
	}
}
