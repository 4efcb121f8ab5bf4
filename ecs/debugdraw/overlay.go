package debugdraw

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
	"github.com/milk9111/dungeonnav/levels"
)

// Overlay draws the navigation state of a world on top of whatever the game
// renders. Layers can be toggled individually.
type Overlay struct {
	Palette Palette

	ShowGraph   bool
	ShowPaths   bool
	ShowDanger  bool
	ShowPhysics bool
	ShowHUD     bool

	CamX float64
	CamY float64
	Zoom float64
}

func NewOverlay(p Palette) *Overlay {
	return &Overlay{
		Palette:    p,
		ShowGraph:  true,
		ShowPaths:  true,
		ShowDanger: true,
		ShowHUD:    true,
		Zoom:       1,
	}
}

func (o *Overlay) Draw(w *ecs.World, screen *ebiten.Image) {
	if o == nil || w == nil || screen == nil {
		return
	}

	levelEntity, ok := ecs.First(w, component.TileGridComponent.Kind())
	if ok {
		if tg, ok := ecs.Get(w, levelEntity, component.TileGridComponent.Kind()); ok {
			o.drawWalls(screen, tg)
		}
		if ng, ok := ecs.Get(w, levelEntity, component.NavGraphComponent.Kind()); ok && ng.Graph != nil {
			if o.ShowGraph {
				o.drawSegments(screen, GraphEdges(ng.Graph), o.Palette.Graph, 1)
			}
			if o.ShowPaths {
				o.drawSegments(screen, PathSegments(w, ng.Graph), o.Palette.Path, 2)
			}
		}
	}

	if o.ShowDanger {
		o.drawSegments(screen, DangerRays(w), o.Palette.Danger, 1)
	}
	if o.ShowPhysics {
		if pw := w.PhysicsWorld(); pw != nil && pw.Space() != nil {
			cp.DrawSpace(pw.Space(), &spaceDrawer{o: o, screen: screen})
		}
	}

	o.drawAgents(w, screen)

	ecs.ForEach2(w, component.TelegraphComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, tel *component.Telegraph, t *component.Transform) {
		x, y := o.toScreen(t.X, t.Y)
		vector.StrokeCircle(screen, x, y, float32(tel.Radius*o.zoom()), 2, o.Palette.Telegraph, true)
	})

	if o.ShowHUD {
		o.drawHUD(w, screen)
	}
}

func (o *Overlay) drawWalls(screen *ebiten.Image, tg *component.TileGrid) {
	if tg.Grid == nil || tg.CellSize <= 0 {
		return
	}
	size := float32(tg.CellSize * o.zoom())
	for y := 0; y < tg.Grid.Height; y++ {
		for x := 0; x < tg.Grid.Width; x++ {
			if tg.Grid.At(x, y) != levels.Wall {
				continue
			}
			sx, sy := o.toScreen(float64(x)*tg.CellSize, float64(y)*tg.CellSize)
			vector.FillRect(screen, sx, sy, size, size, o.Palette.Wall, false)
		}
	}
}

func (o *Overlay) drawAgents(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		clr := o.Palette.Idle
		if p, ok := ecs.Get(w, e, component.PursuitComponent.Kind()); ok && p.State == component.PursuitPursue {
			clr = o.Palette.Pursue
		}
		if ecs.Has(w, e, component.FriendlyTagComponent.Kind()) {
			clr = colorWithAlpha(clr, 0x90)
		}
		x, y := o.toScreen(t.X, t.Y)
		vector.StrokeCircle(screen, x, y, float32(body.Radius*o.zoom()), 1.5, clr, true)
	})
}

func (o *Overlay) drawHUD(w *ecs.World, screen *ebiten.Image) {
	idle, pursuing := 0, 0
	ecs.ForEach(w, component.PursuitComponent.Kind(), func(_ ecs.Entity, p *component.Pursuit) {
		if p.State == component.PursuitPursue {
			pursuing++
			return
		}
		idle++
	})
	planned := 0
	ecs.ForEach(w, component.PathPlanComponent.Kind(), func(_ ecs.Entity, p *component.PathPlan) {
		if len(p.Waypoints) > 0 {
			planned++
		}
	})
	text := fmt.Sprintf("tick %d  idle %d  pursue %d  planned %d\n[G]raph [P]aths [D]anger [B]odies", w.Tick(), idle, pursuing, planned)
	ebitenutil.DebugPrintAt(screen, text, 8, 8)
}

func (o *Overlay) drawSegments(screen *ebiten.Image, segs []Segment, clr color.Color, width float32) {
	for _, s := range segs {
		x0, y0 := o.toScreen(s.X0, s.Y0)
		x1, y1 := o.toScreen(s.X1, s.Y1)
		vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
	}
}

func (o *Overlay) zoom() float64 {
	if o.Zoom <= 0 {
		return 1
	}
	return o.Zoom
}

func (o *Overlay) toScreen(x, y float64) (float32, float32) {
	z := o.zoom()
	return float32((x - o.CamX) * z), float32((y - o.CamY) * z)
}

func colorWithAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}
