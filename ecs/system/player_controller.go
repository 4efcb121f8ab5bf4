package system

import (
	"math"

	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
)

// PlayerControllerSystem turns Input into Velocity for controllable
// entities. Diagonal input is normalised so it isn't faster.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerControlComponent.Kind(), component.InputComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, ctrl *component.PlayerControl, in *component.Input, v *component.Velocity) {
		if isCorpse(w, e) {
			v.Zero()
			return
		}
		x, y := in.MoveX, in.MoveY
		if l := math.Hypot(x, y); l > 1 {
			x /= l
			y /= l
		}
		v.X = x * ctrl.Speed
		v.Y = y * ctrl.Speed
	})
}
