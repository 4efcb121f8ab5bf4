package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a dungeon floor as stored on disk.
type Level struct {
	Name     string   `json:"name"`
	Rows     []string `json:"rows"`
	Entities []Entity `json:"entities,omitempty"`
}

// Entity is a spawn request in cell coordinates.
type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// LoadLevelFromFS loads an embedded level by name; the .json suffix is
// optional.
func LoadLevelFromFS(name string) (*Level, error) {
	clean := strings.TrimPrefix(name, "levels/")
	if !strings.HasSuffix(clean, ".json") {
		clean += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, clean)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(clean, ".json")
	}
	return &lvl, nil
}

// Parse builds the tile grid and returns the level's spawn list: the explicit
// entities followed by any glyph markers in the rows.
func (l *Level) Parse() (*Grid, []Entity, error) {
	if l == nil {
		return nil, nil, fmt.Errorf("%w: nil level", ErrBadGrid)
	}
	g, markers, err := ParseGrid(l.Rows...)
	if err != nil {
		return nil, nil, fmt.Errorf("level %s: %w", l.Name, err)
	}
	spawns := append([]Entity(nil), l.Entities...)
	for _, m := range markers {
		if typ, ok := glyphTypes[m.Glyph]; ok {
			spawns = append(spawns, Entity{Type: typ, X: m.X, Y: m.Y})
		}
	}
	return g, spawns, nil
}

var glyphTypes = map[rune]string{
	'P': "player",
	'E': "melee_enemy",
	'C': "caster",
	'S': "summon",
	'T': "teleporter",
}
