package debugdraw

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

const debugCircleSegments = 24

// spaceDrawer implements cp.Drawer so cp.DrawSpace can outline every shape
// in the physics space: wall boxes and agent circles.
type spaceDrawer struct {
	o      *Overlay
	screen *ebiten.Image
}

func (d *spaceDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *spaceDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *spaceDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	d.drawCircle(a, radius, outline)
	d.drawCircle(b, radius, outline)
}

func (d *spaceDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *spaceDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *spaceDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *spaceDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *spaceDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape != nil && shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.4, G: 0.4, B: 0.4, A: 0.6}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *spaceDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *spaceDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *spaceDrawer) Data() interface{} {
	return nil
}

func (d *spaceDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x0, y0 := d.o.toScreen(a.X, a.Y)
	x1, y1 := d.o.toScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, x0, y0, x1, y1, 1, toNRGBA(c), false)
}

func (d *spaceDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *spaceDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := 2 * math.Pi * float64(i) / debugCircleSegments
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
