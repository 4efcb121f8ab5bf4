package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// NavigationSpec tunes the level-wide navigation layer.
type NavigationSpec struct {
	CellSize        float64    `yaml:"cell_size"`
	PathCoefficient uint       `yaml:"path_coefficient"`
	TelegraphTTL    float64    `yaml:"telegraph_ttl"`
	TelegraphRadius float64    `yaml:"telegraph_radius"`
	Seed            int64      `yaml:"seed"`
	Debug           DebugColor `yaml:"debug"`
}

// DebugColor names overlay colours from golang.org/x/image/colornames.
type DebugColor struct {
	Graph     string `yaml:"graph"`
	Path      string `yaml:"path"`
	Danger    string `yaml:"danger"`
	Idle      string `yaml:"idle"`
	Pursue    string `yaml:"pursue"`
	Telegraph string `yaml:"telegraph"`
}

const (
	defaultCellSize        = 32.0
	defaultTelegraphTTL    = 0.75
	defaultTelegraphRadius = 12.0
)

func LoadNavigationSpec() (*NavigationSpec, error) {
	spec, err := LoadSpec[NavigationSpec]("navigation.yaml")
	if err != nil {
		return nil, err
	}
	if spec.CellSize <= 0 {
		spec.CellSize = defaultCellSize
	}
	if spec.PathCoefficient == 0 {
		spec.PathCoefficient = 1
	}
	if spec.TelegraphTTL <= 0 {
		spec.TelegraphTTL = defaultTelegraphTTL
	}
	if spec.TelegraphRadius <= 0 {
		spec.TelegraphRadius = defaultTelegraphRadius
	}
	return &spec, nil
}
