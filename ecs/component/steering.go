package component

import "math"

// RingSize is the number of fixed directions an agent senses and wanders
// along.
const RingSize = 16

// RingDirections are unit vectors spaced evenly around the circle, starting
// at +X.
var RingDirections = func() [RingSize][2]float64 {
	var dirs [RingSize][2]float64
	for i := range dirs {
		angle := 2 * math.Pi * float64(i) / RingSize
		dirs[i] = [2]float64{math.Cos(angle), math.Sin(angle)}
	}
	return dirs
}()

// SteeringAgent holds the local-avoidance state of an agent that moves by
// direct steering instead of following graph paths.
type SteeringAgent struct {
	// Weights is the danger field: 0 for a clear direction, negative when a
	// wall is close along it.
	Weights         [RingSize]float64
	DangerThreshold float64
	Speed           float64
	PursueRadius    float64

	GiveUp     Timer
	Wander     Timer
	WanderWalk Timer
	// WanderOffset is this agent's draw from the prefab's wander jitter,
	// added to the wander period.
	WanderOffset float64
	// WanderIndex is the ring index of the current wander leg, -1 before
	// the first one.
	WanderIndex int

	CachedX   float64
	CachedY   float64
	HasCached bool
}

// DangerSum returns Σ direction_i * weight_i.
func (s *SteeringAgent) DangerSum() (float64, float64) {
	var x, y float64
	for i, w := range s.Weights {
		x += RingDirections[i][0] * w
		y += RingDirections[i][1] * w
	}
	return x, y
}

func (s *SteeringAgent) ClearCache() {
	s.CachedX, s.CachedY = 0, 0
	s.HasCached = false
}

var SteeringAgentComponent = NewComponent[SteeringAgent]()

// WanderScript names a tengo script that picks the ring index when an idle
// agent starts a new wander leg.
type WanderScript struct {
	Name string
}

var WanderScriptComponent = NewComponent[WanderScript]()
