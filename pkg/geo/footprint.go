package geo

import (
	"math"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/units"
)

// Footprint is an area of interest projected to feet around its center.
// The ring is implicitly closed.
type Footprint []Point2D

// ProjectRing projects a lon/lat ring around origin. A closing position
// equal to the first is dropped.
func ProjectRing(ring []LonLat, origin LonLat) Footprint {
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		ring = ring[:n-1]
	}
	f := make(Footprint, len(ring))
	for i, pos := range ring {
		f[i] = Project(pos, origin)
	}
	return f
}

// shoelace is twice the signed area; positive when counterclockwise.
func (f Footprint) shoelace() float64 {
	if len(f) < 3 {
		return 0
	}
	var sum float64
	prev := f[len(f)-1]
	for _, p := range f {
		sum += prev.X*p.Y - p.X*prev.Y
		prev = p
	}
	return sum
}

// SquareFeet is the enclosed area. Fewer than three corners enclose nothing.
func (f Footprint) SquareFeet() float64 {
	return math.Abs(f.shoelace()) / 2
}

func (f Footprint) Acres() float64 {
	return f.SquareFeet() / units.SquareFeetPerAcre
}

// CounterClockwise reports the winding GeoJSON requires of exterior rings.
func (f Footprint) CounterClockwise() bool {
	return f.shoelace() > 0
}

// PerimeterFeet is the length of the closed boundary, which is also the
// fence line around a basin that fills the footprint.
func (f Footprint) PerimeterFeet() float64 {
	if len(f) < 2 {
		return 0
	}
	var total float64
	prev := f[len(f)-1]
	for _, p := range f {
		total += prev.Distance(p)
		prev = p
	}
	return total
}
