package component

// Transform is the world-space centre of an entity.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()
