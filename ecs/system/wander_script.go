package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/dungeonnav/ecs/component"
)

// ScriptLoader returns the source of a named script.
type ScriptLoader func(name string) ([]byte, error)

// WanderScripts compiles and caches tengo wander scripts. A script sees
// `ring` (number of directions), `last` (previous ring index or -1) and
// `roll` (a random non-negative int) and must set `index`.
type WanderScripts struct {
	load  ScriptLoader
	cache map[string]*tengo.Compiled
}

func NewWanderScripts(load ScriptLoader) *WanderScripts {
	return &WanderScripts{load: load, cache: map[string]*tengo.Compiled{}}
}

// Invalidate drops a cached script so the next pick recompiles it.
func (s *WanderScripts) Invalidate(name string) {
	if s == nil {
		return
	}
	delete(s.cache, name)
}

// Pick runs the named script and returns a ring index in [0, RingSize).
func (s *WanderScripts) Pick(name string, last, roll int) (int, error) {
	if s == nil || s.load == nil {
		return 0, fmt.Errorf("wander: no script loader")
	}
	compiled, err := s.compiled(name)
	if err != nil {
		return 0, err
	}
	if err := compiled.Set("last", last); err != nil {
		return 0, err
	}
	if err := compiled.Set("roll", roll); err != nil {
		return 0, err
	}
	if err := compiled.Run(); err != nil {
		return 0, fmt.Errorf("wander: run %s: %w", name, err)
	}
	index := compiled.Get("index").Int() % component.RingSize
	if index < 0 {
		index += component.RingSize
	}
	return index, nil
}

func (s *WanderScripts) compiled(name string) (*tengo.Compiled, error) {
	if c, ok := s.cache[name]; ok {
		return c, nil
	}

	src, err := s.load(name)
	if err != nil {
		return nil, fmt.Errorf("wander: load %s: %w", name, err)
	}
	script := tengo.NewScript(src)
	_ = script.Add("ring", component.RingSize)
	_ = script.Add("last", -1)
	_ = script.Add("roll", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("wander: compile %s: %w", name, err)
	}
	s.cache[name] = compiled
	return compiled, nil
}
