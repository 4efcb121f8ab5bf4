package levels

import (
	"errors"
	"testing"
)

func TestParseGrid(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		wantErr bool
		floors  int
		walls   int
		markers int
	}{
		{"walled_room", []string{"####", "#..#", "####"}, false, 2, 10, 0},
		{"markers_are_floor", []string{"###", "#P#", "#E#", "###"}, false, 2, 10, 2},
		{"empty_cells", []string{"# #", "#.#"}, false, 1, 4, 0},
		{"ragged", []string{"###", "##"}, true, 0, 0, 0},
		{"no_rows", nil, true, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, markers, err := ParseGrid(tc.rows...)
			if tc.wantErr {
				if !errors.Is(err, ErrBadGrid) {
					t.Fatalf("expected ErrBadGrid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := g.Count(Floor); got != tc.floors {
				t.Fatalf("expected %d floor cells, got %d", tc.floors, got)
			}
			if got := g.Count(Wall); got != tc.walls {
				t.Fatalf("expected %d wall cells, got %d", tc.walls, got)
			}
			if len(markers) != tc.markers {
				t.Fatalf("expected %d markers, got %v", tc.markers, markers)
			}
		})
	}
}

func TestGridBounds(t *testing.T) {
	g := MustParseGrid("##", "#.")
	if g.At(-1, 0) != Empty || g.At(2, 0) != Empty {
		t.Fatalf("out of bounds cells read as empty")
	}
	g.Set(5, 5, Wall)
	if g.Count(Wall) != 3 {
		t.Fatalf("out of bounds Set must be a no-op")
	}
	if Wall.String() != "wall" || Floor.String() != "floor" || Empty.String() != "empty" {
		t.Fatalf("unexpected tile names")
	}
}

func TestLevelParse(t *testing.T) {
	lvl := &Level{
		Name:     "tiny",
		Rows:     []string{"#####", "#P.S#", "#####"},
		Entities: []Entity{{Type: "caster", X: 2, Y: 1}},
	}
	g, spawns, err := lvl.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if g.Width != 5 || g.Height != 3 {
		t.Fatalf("unexpected size %dx%d", g.Width, g.Height)
	}
	want := []string{"caster", "player", "summon"}
	if len(spawns) != len(want) {
		t.Fatalf("expected %v, got %v", want, spawns)
	}
	for i, typ := range want {
		if spawns[i].Type != typ {
			t.Fatalf("spawn %d: expected %s, got %s", i, typ, spawns[i].Type)
		}
	}

	var nilLevel *Level
	if _, _, err := nilLevel.Parse(); !errors.Is(err, ErrBadGrid) {
		t.Fatalf("nil level should fail with ErrBadGrid, got %v", err)
	}
}

func TestLoadLevelFromFS(t *testing.T) {
	for _, name := range []string{"crypt", "crypt.json", "levels/crypt"} {
		lvl, err := LoadLevelFromFS(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if lvl.Name != "crypt" || len(lvl.Rows) == 0 {
			t.Fatalf("%s: unexpected level %+v", name, lvl)
		}
	}
	if _, err := LoadLevelFromFS("missing"); err == nil {
		t.Fatalf("expected an error for a missing level")
	}
}
