package component

// Telegraph is a short-lived marker left where an agent acquired a target.
type Telegraph struct {
	Radius float64
}

var TelegraphComponent = NewComponent[Telegraph]()
