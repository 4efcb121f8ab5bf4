package common

const (
	// TileSize is the world-unit edge length of one grid cell.
	TileSize = 32

	// TPS is the fixed simulation rate.
	TPS = 60

	// FixedDelta is the seconds simulated per tick.
	FixedDelta = 1.0 / TPS
)
