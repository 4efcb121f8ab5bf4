package nav

import "math"

// Distance is min(manhattan, euclidean) between two cells truncated to an
// unsigned integer. It is not a metric; search and resolution both use it.
func Distance(a, b Cell) uint {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	manhattan := dx + dy
	euclidean := math.Hypot(dx, dy)
	return uint(math.Min(manhattan, euclidean))
}
