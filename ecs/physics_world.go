package ecs

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeonnav/levels"
)

// Shape categories. Ray filters mask these to decide what a ray may hit.
const (
	CategoryWall uint = 1 << iota
	CategoryAgent
	CategoryTarget
	CategoryCorpse
	CategoryShield
	CategoryBlank
)

// CategoryAll matches every shape.
const CategoryAll = ^uint(0)

var (
	ErrNoSpace     = errors.New("ecs: physics world has no space")
	ErrBodyExists  = errors.New("ecs: entity already has a body")
	ErrInvalidBody = errors.New("ecs: body radius must be positive")
)

type physicsBody struct {
	body   *cp.Body
	shape  *cp.Shape
	filter cp.ShapeFilter
}

// PhysicsWorld owns the Chipmunk space, the static wall shapes merged from the
// tile grid, and one circle body per registered entity.
type PhysicsWorld struct {
	grid     *levels.Grid
	tileSize float64
	space    *cp.Space

	bodies        map[Entity]*physicsBody
	shapeToEntity map[*cp.Shape]Entity
}

// RayFilter selects which shape categories a ray can hit. Ignore is an
// entity whose own shapes are skipped, typically the caster.
type RayFilter struct {
	Mask   uint
	Ignore Entity
}

// RayHit is the first shape struck by a ray. Wall is set when the shape
// belongs to the static level geometry, otherwise Entity names the owner.
type RayHit struct {
	Entity   Entity
	Wall     bool
	Distance float64
	X        float64
	Y        float64
}

// NewPhysicsWorld creates a top-down space with no gravity and a static box
// for every run of wall tiles.
func NewPhysicsWorld(grid *levels.Grid, tileSize float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	pw := &PhysicsWorld{
		grid:          grid,
		tileSize:      tileSize,
		space:         space,
		bodies:        make(map[Entity]*physicsBody),
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
	pw.buildStaticShapes()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddCircle registers a dynamic circle body for e centred at (x, y).
func (pw *PhysicsWorld) AddCircle(e Entity, x, y, radius float64, categories uint) error {
	if pw == nil || pw.space == nil {
		return ErrNoSpace
	}
	if radius <= 0 {
		return ErrInvalidBody
	}
	if _, ok := pw.bodies[e]; ok {
		return ErrBodyExists
	}

	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	filter := cp.NewShapeFilter(uint(e.Index()), categories, CategoryAll)
	shape.SetFilter(filter)
	shape.UserData = e

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.bodies[e] = &physicsBody{body: body, shape: shape, filter: filter}
	pw.shapeToEntity[shape] = e
	return nil
}

// HasBody reports whether e has a registered body.
func (pw *PhysicsWorld) HasBody(e Entity) bool {
	if pw == nil {
		return false
	}
	_, ok := pw.bodies[e]
	return ok
}

// RemoveEntity drops the body of e, if any.
func (pw *PhysicsWorld) RemoveEntity(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	pb, ok := pw.bodies[e]
	if !ok {
		return
	}
	delete(pw.shapeToEntity, pb.shape)
	delete(pw.bodies, e)
	pw.space.RemoveShape(pb.shape)
	pw.space.RemoveBody(pb.body)
}

// SetCategories changes the categories of e's shape, e.g. when it becomes a
// corpse.
func (pw *PhysicsWorld) SetCategories(e Entity, categories uint) {
	pb := pw.lookup(e)
	if pb == nil {
		return
	}
	pb.filter.Categories = categories
	pb.shape.SetFilter(pb.filter)
}

// Categories returns the categories of e's shape.
func (pw *PhysicsWorld) Categories(e Entity) (uint, bool) {
	pb := pw.lookup(e)
	if pb == nil {
		return 0, false
	}
	return pb.filter.Categories, true
}

// SetVelocity sets the linear velocity of e's body.
func (pw *PhysicsWorld) SetVelocity(e Entity, vx, vy float64) {
	pb := pw.lookup(e)
	if pb == nil {
		return
	}
	pb.body.SetVelocity(vx, vy)
}

// Velocity returns the linear velocity of e's body.
func (pw *PhysicsWorld) Velocity(e Entity) (float64, float64, bool) {
	pb := pw.lookup(e)
	if pb == nil {
		return 0, 0, false
	}
	v := pb.body.Velocity()
	return v.X, v.Y, true
}

// Position returns the centre of e's body.
func (pw *PhysicsWorld) Position(e Entity) (float64, float64, bool) {
	pb := pw.lookup(e)
	if pb == nil {
		return 0, 0, false
	}
	p := pb.body.Position()
	return p.X, p.Y, true
}

// SetPosition moves e's body instantly and stops it. Used for teleports.
// Spatial queries see the new position after the next Step.
func (pw *PhysicsWorld) SetPosition(e Entity, x, y float64) {
	pb := pw.lookup(e)
	if pb == nil {
		return
	}
	pb.body.SetPosition(cp.Vector{X: x, Y: y})
	pb.body.SetVelocity(0, 0)
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// RayCast casts a ray from the origin along (dirX, dirY) for at most maxDist
// world units and returns the first shape it hits. The direction does not
// need to be normalised; a zero direction never hits.
func (pw *PhysicsWorld) RayCast(originX, originY, dirX, dirY, maxDist float64, filter RayFilter) (RayHit, bool) {
	if pw == nil || pw.space == nil || maxDist <= 0 {
		return RayHit{}, false
	}
	length := math.Hypot(dirX, dirY)
	if length == 0 {
		return RayHit{}, false
	}

	start := cp.Vector{X: originX, Y: originY}
	end := cp.Vector{
		X: originX + dirX/length*maxDist,
		Y: originY + dirY/length*maxDist,
	}

	var group uint = cp.NO_GROUP
	if filter.Ignore.Valid() {
		group = uint(filter.Ignore.Index())
	}
	query := cp.NewShapeFilter(group, CategoryAll, filter.Mask)

	info := pw.space.SegmentQueryFirst(start, end, 0, query)
	if info.Shape == nil {
		return RayHit{}, false
	}

	hit := RayHit{
		Distance: info.Alpha * maxDist,
		X:        info.Point.X,
		Y:        info.Point.Y,
	}
	if e, ok := pw.shapeToEntity[info.Shape]; ok {
		hit.Entity = e
	} else {
		hit.Wall = true
	}
	return hit, true
}

func (pw *PhysicsWorld) lookup(e Entity) *physicsBody {
	if pw == nil {
		return nil
	}
	return pw.bodies[e]
}

func (pw *PhysicsWorld) buildStaticShapes() {
	if pw == nil || pw.space == nil || pw.grid == nil || pw.tileSize <= 0 {
		return
	}

	width := pw.grid.Width
	height := pw.grid.Height
	processed := make([]bool, width*height)
	wallFilter := cp.NewShapeFilter(cp.NO_GROUP, CategoryWall, CategoryAll)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if processed[idx] {
				continue
			}
			if pw.grid.At(x, y) != levels.Wall {
				processed[idx] = true
				continue
			}

			// Grow the box right, then down while every tile in the row is
			// an unclaimed wall.
			w := 1
			for x+w < width {
				idx2 := y*width + x + w
				if processed[idx2] || pw.grid.At(x+w, y) != levels.Wall {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					idx2 := (y+h)*width + xi
					if processed[idx2] || pw.grid.At(xi, y+h) != levels.Wall {
						break heightLoop
					}
				}
				h++
			}

			x0 := float64(x) * pw.tileSize
			y0 := float64(y) * pw.tileSize
			bb := cp.BB{L: x0, B: y0, R: x0 + float64(w)*pw.tileSize, T: y0 + float64(h)*pw.tileSize}
			shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
			shape.SetFriction(0)
			shape.SetFilter(wallFilter)
			pw.space.AddShape(shape)

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*width+xx] = true
				}
			}
		}
	}
}
