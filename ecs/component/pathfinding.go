package component

import (
	"math"

	"github.com/milk9111/dungeonnav/nav"
)

// PathAgent marks an entity that walks graph paths toward the nearest
// opposing target.
type PathAgent struct {
	Speed         float64
	ArrivalRadius float64
	Coefficient   uint
}

var PathAgentComponent = NewComponent[PathAgent]()

// PathPlan is the current route, consumed from the front as waypoints are
// reached. Waypoints never include the cell the agent was in when it
// planned.
type PathPlan struct {
	Waypoints []nav.Cell
}

// Next returns the waypoint the agent is heading to.
func (p *PathPlan) Next() (nav.Cell, bool) {
	if p == nil || len(p.Waypoints) == 0 {
		return nav.Cell{}, false
	}
	return p.Waypoints[0], true
}

// Replace swaps in a freshly planned route.
func (p *PathPlan) Replace(cells []nav.Cell) {
	p.Waypoints = append(p.Waypoints[:0], cells...)
}

func (p *PathPlan) Clear() {
	p.Waypoints = p.Waypoints[:0]
}

// Advance pops the next waypoint if (x, y) is within radius of its centre.
// At most one waypoint is removed per call.
func (p *PathPlan) Advance(x, y, radius, cellSize float64) bool {
	next, ok := p.Next()
	if !ok {
		return false
	}
	cx := float64(next.X)*cellSize + cellSize/2
	cy := float64(next.Y)*cellSize + cellSize/2
	if math.Hypot(cx-x, cy-y) > radius {
		return false
	}
	p.Waypoints = p.Waypoints[1:]
	return true
}

var PathPlanComponent = NewComponent[PathPlan]()

// ReplanTimer paces path searches and teleport planning. Its period and
// starting phase are randomised at spawn so agents don't all plan on the
// same tick.
type ReplanTimer struct {
	Timer
}

var ReplanTimerComponent = NewComponent[ReplanTimer]()
