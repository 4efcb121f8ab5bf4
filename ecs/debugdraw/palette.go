package debugdraw

import (
	"image/color"
	"strings"

	"github.com/milk9111/dungeonnav/prefabs"
	"golang.org/x/image/colornames"
)

// Palette is the set of overlay colours.
type Palette struct {
	Wall      color.Color
	Graph     color.Color
	Path      color.Color
	Danger    color.Color
	Idle      color.Color
	Pursue    color.Color
	Telegraph color.Color
}

// DefaultPalette is used for any colour navigation.yaml leaves unset or
// misspells.
var DefaultPalette = Palette{
	Wall:      colornames.Dimgray,
	Graph:     colornames.Darkslategray,
	Path:      colornames.Gold,
	Danger:    colornames.Orangered,
	Idle:      colornames.Steelblue,
	Pursue:    colornames.Crimson,
	Telegraph: colornames.Yellow,
}

// PaletteFromSpec resolves colour names through colornames.Map.
func PaletteFromSpec(spec prefabs.DebugColor) Palette {
	p := DefaultPalette
	p.Graph = lookup(spec.Graph, p.Graph)
	p.Path = lookup(spec.Path, p.Path)
	p.Danger = lookup(spec.Danger, p.Danger)
	p.Idle = lookup(spec.Idle, p.Idle)
	p.Pursue = lookup(spec.Pursue, p.Pursue)
	p.Telegraph = lookup(spec.Telegraph, p.Telegraph)
	return p
}

func lookup(name string, fallback color.Color) color.Color {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return fallback
	}
	if c, ok := colornames.Map[key]; ok {
		return c
	}
	return fallback
}
