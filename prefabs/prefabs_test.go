package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEntityBuildSpecs(t *testing.T) {
	tests := []struct {
		file      string
		want      []string
		forbidden string
	}{
		{"player.yaml", []string{"player_tag", "friendly_tag", "physics_body"}, "steering"},
		{"melee_enemy", []string{"hostile_tag", "path_agent", "replan"}, "steering"},
		{"caster.yaml", []string{"steering", "pursuit", "wander_script"}, "path_agent"},
		{"summon.yaml", []string{"friendly_tag", "steering", "pursuit"}, "path_agent"},
		{"prefabs/teleporter.yaml", []string{"teleporter", "replan"}, "steering"},
	}
	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(tc.file)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if spec.Name == "" {
				t.Fatal("archetype needs a name")
			}
			for _, name := range tc.want {
				if _, ok := spec.Components[name]; !ok {
					t.Fatalf("expected component %q", name)
				}
			}
			if _, ok := spec.Components[tc.forbidden]; ok {
				t.Fatalf("unexpected component %q", tc.forbidden)
			}
		})
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("caster.yaml")
	if err != nil {
		t.Fatal(err)
	}
	steering, err := DecodeComponentSpec[SteeringComponentSpec](spec.Components["steering"])
	if err != nil {
		t.Fatal(err)
	}
	if steering.Speed <= 0 || steering.DangerThreshold <= 0 || steering.PursueRadius <= 0 {
		t.Fatalf("steering spec not decoded: %+v", steering)
	}

	empty, err := DecodeComponentSpec[ReplanComponentSpec](nil)
	if err != nil || empty != (ReplanComponentSpec{}) {
		t.Fatalf("nil spec should decode to zero value, got %+v err=%v", empty, err)
	}
}

func TestMixedMovementRejected(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	tests := []struct {
		name       string
		components string
	}{
		{"steering_and_path_agent", "  steering: {speed: 1}\n  path_agent: {speed: 1}\n"},
		{"teleporter_and_path_agent", "  teleporter: {radius: 3}\n  path_agent: {speed: 1}\n"},
		{"teleporter_and_steering", "  teleporter: {radius: 3}\n  steering: {speed: 1}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := "name: " + tc.name + "\ncomponents:\n" + tc.components
			file := tc.name + ".yaml"
			if err := os.WriteFile(filepath.Join(dir, file), []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadEntityBuildSpec(file); !errors.Is(err, ErrMixedMovement) {
				t.Fatalf("expected ErrMixedMovement, got %v", err)
			}
		})
	}
}

func TestLoadNavigationSpec(t *testing.T) {
	spec, err := LoadNavigationSpec()
	if err != nil {
		t.Fatal(err)
	}
	if spec.CellSize != 32 || spec.PathCoefficient != 1 {
		t.Fatalf("unexpected navigation spec %+v", spec)
	}
	if spec.Debug.Graph == "" {
		t.Fatal("expected debug colours")
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"wander_drift", "scripts/wander_drift.tengo", "prefabs/scripts/wander_zigzag"} {
		if data, err := LoadScript(name); err != nil || len(data) == 0 {
			t.Fatalf("load %q: %v", name, err)
		}
	}
	if _, err := LoadScript("missing"); err == nil {
		t.Fatal("expected an error for a missing script")
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "caster.yaml")
	if err := os.WriteFile(path, []byte("name: caster\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if SpecName(name) != "caster" {
			t.Fatalf("expected caster change, got %q", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}
