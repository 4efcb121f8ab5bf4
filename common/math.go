package common

import "math"

// Normalize returns the unit vector of (x, y) and its original length. A zero
// vector stays zero.
func Normalize(x, y float64) (float64, float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0, 0
	}
	return x / l, y / l, l
}

// Dist returns the euclidean distance between two points.
func Dist(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}
