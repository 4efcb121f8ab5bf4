package component

// CollisionLayer declares the shape category of an entity's body. Zero means
// the default agent category. Corpse, Shield and Blank markers override it.
type CollisionLayer struct {
	Category uint
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
