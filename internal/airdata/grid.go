package airdata

import "math/rand"

type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// BoundingBox is a lat/lon rectangle coordinates are drawn from.
type BoundingBox struct {
	LatMin, LatMax float64
	LonMin, LonMax float64
}

var (
	// Europe bounds the coordinate grid, step 0.45 deg is roughly 50 km.
	Europe = BoundingBox{LatMin: 35.0, LatMax: 70.0, LonMin: -25.0, LonMax: 40.0}

	// Anatolia is the sampling box used in random coordinate mode.
	Anatolia = BoundingBox{LatMin: 35.81, LatMax: 42.10, LonMin: 25.66, LonMax: 44.82}
)

// Random samples a coordinate uniformly within the box.
func (b BoundingBox) Random(rng *rand.Rand) Coordinate {
	return Coordinate{
		Latitude:  b.LatMin + rng.Float64()*(b.LatMax-b.LatMin),
		Longitude: b.LonMin + rng.Float64()*(b.LonMax-b.LonMin),
	}
}

// BuildGrid lays a regular lattice over the box in row-major order: latitude
// is the outer loop, longitude the inner one. Points are reached by repeated
// addition of step, so inclusion of the exact boundary row depends on float
// accumulation. Deterministic for a given box and step. A step <= 0 yields
// an empty grid.
func BuildGrid(box BoundingBox, step float64) []Coordinate {
	if step <= 0 {
		return nil
	}
	var grid []Coordinate
	for lat := box.LatMin; lat <= box.LatMax; lat += step {
		for lon := box.LonMin; lon <= box.LonMax; lon += step {
			grid = append(grid, Coordinate{Latitude: lat, Longitude: lon})
		}
	}
	return grid
}
