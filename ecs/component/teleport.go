package component

import "github.com/milk9111/dungeonnav/nav"

// Teleporter marks an agent that blinks next to its target instead of
// walking. Radius is the Chebyshev ring, in cells, it lands on.
type Teleporter struct {
	Radius int
}

var TeleporterComponent = NewComponent[Teleporter]()

// TeleportPlan holds landing cells waiting to be applied. Planning queues at
// most one cell; it is applied on the following tick.
type TeleportPlan struct {
	Queue []nav.Cell
}

func (p *TeleportPlan) Pop() (nav.Cell, bool) {
	if p == nil || len(p.Queue) == 0 {
		return nav.Cell{}, false
	}
	c := p.Queue[0]
	p.Queue = p.Queue[1:]
	return c, true
}

var TeleportPlanComponent = NewComponent[TeleportPlan]()
