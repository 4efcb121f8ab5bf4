package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/dungeonnav/common"
	"github.com/milk9111/dungeonnav/prefabs"
	"github.com/milk9111/dungeonnav/sandbox"
)

func main() {
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	seed := flag.Int64("seed", 0, "override the navigation.yaml seed")
	headless := flag.Bool("headless", false, "run without a window and log a summary")
	ticks := flag.Int("ticks", 600, "ticks to simulate in headless mode")
	watch := flag.Bool("watch", true, "hot reload prefabs from the prefabs/ directory")
	flag.Parse()

	if *headless {
		sb, err := sandbox.New(sandbox.Options{Level: *levelName, Seed: *seed})
		if err != nil {
			log.Fatal(err)
		}
		runHeadless(sb, *ticks)
		return
	}

	sb, err := sandbox.New(sandbox.Options{Level: *levelName, Seed: *seed, Input: NewInputSystem()})
	if err != nil {
		log.Fatal(err)
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			log.Printf("prefab watcher disabled: %v", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("dungeonnav")
	ebiten.SetTPS(common.TPS)

	if err := ebiten.RunGame(NewGame(sb, watcher)); err != nil {
		log.Fatal(err)
	}
}

func runHeadless(sb *sandbox.Sandbox, ticks int) {
	for i := 0; i < ticks; i++ {
		sb.Step()
		if (i+1)%common.TPS == 0 {
			log.Printf("navsandbox: %s", sb.Summary())
		}
	}
	log.Printf("navsandbox: done %s", sb.Summary())
}
