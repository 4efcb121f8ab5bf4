package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/dungeonnav/ecs"
	"github.com/milk9111/dungeonnav/ecs/component"
	"github.com/milk9111/dungeonnav/ecs/debugdraw"
	"github.com/milk9111/dungeonnav/prefabs"
	"github.com/milk9111/dungeonnav/sandbox"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	sb      *sandbox.Sandbox
	watcher *prefabs.Watcher
	overlay *debugdraw.Overlay
	paused  bool
}

func NewGame(sb *sandbox.Sandbox, watcher *prefabs.Watcher) *Game {
	overlay := debugdraw.NewOverlay(debugdraw.PaletteFromSpec(sb.Spec.Debug))
	overlay.Zoom = 1.5
	return &Game{sb: sb, watcher: watcher, overlay: overlay}
}

func (g *Game) Update() error {
	if g.watcher != nil {
		if changed := g.watcher.Drain(); len(changed) > 0 {
			g.sb.Reload(changed)
		}
		select {
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("prefab watcher: %v", err)
			}
		default:
		}
	}

	g.handleToggles()
	if g.paused && !inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		return nil
	}
	g.sb.Step()
	g.followPlayer()
	return nil
}

func (g *Game) handleToggles() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.overlay.ShowGraph = !g.overlay.ShowGraph
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.overlay.ShowPaths = !g.overlay.ShowPaths
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.overlay.ShowDanger = !g.overlay.ShowDanger
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.overlay.ShowPhysics = !g.overlay.ShowPhysics
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	}
}

// followPlayer centres the overlay camera on the player.
func (g *Game) followPlayer() {
	w := g.sb.World
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	zoom := g.overlay.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	g.overlay.CamX = t.X - baseWidth/2/zoom
	g.overlay.CamY = t.Y - baseHeight/2/zoom
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	g.overlay.Draw(g.sb.World, screen)
	status := fmt.Sprintf("FPS: %.0f", ebiten.ActualFPS())
	if g.paused {
		status += "  PAUSED (. to step)"
	}
	ebitenutil.DebugPrintAt(screen, status, 8, baseHeight-20)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
