package component

// PhysicsBody configures the circle body PhysicsSystem registers for an
// entity. The body itself lives in the physics world.
type PhysicsBody struct {
	Radius float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
