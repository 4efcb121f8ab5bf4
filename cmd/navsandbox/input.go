package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
)

const stickDeadzone = 0.2

// InputSystem reads the arrow keys and the first gamepad into the Input
// component of every player-controlled entity.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	moveX, moveY := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		moveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		moveY += 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(x, y) > stickDeadzone {
			moveX, moveY = x, y
		}
	}

	ecs.ForEach2(w, component.PlayerControlComponent.Kind(), component.InputComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerControl, in *component.Input) {
		in.MoveX = moveX
		in.MoveY = moveY
	})
}
