package component

// Velocity is the desired linear velocity in world units per second. Movement
// systems write it; PhysicsSystem hands it to the body.
type Velocity struct {
	X float64
	Y float64
}

func (v *Velocity) Zero() {
	v.X, v.Y = 0, 0
}

var VelocityComponent = NewComponent[Velocity]()
