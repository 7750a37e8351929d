// Package geo converts a drawn area of interest into the planar quantities
// the basin inputs use: side lengths in feet and area in acres.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBounds is returned for a rectangle that is empty, inverted, or
// outside the WGS84 range.
var ErrInvalidBounds = errors.New("invalid bounds")

// Bounds is a latitude/longitude rectangle in degrees, as drawn on a map.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Validate checks that the rectangle has positive extent inside WGS84.
func (b Bounds) Validate() error {
	for _, v := range []float64{b.North, b.South, b.East, b.West} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate", ErrInvalidBounds)
		}
	}
	switch {
	case b.North > 90 || b.South < -90:
		return fmt.Errorf("%w: latitude out of range", ErrInvalidBounds)
	case b.East > 180 || b.West < -180:
		return fmt.Errorf("%w: longitude out of range", ErrInvalidBounds)
	case b.North <= b.South:
		return fmt.Errorf("%w: north %.6f must be greater than south %.6f", ErrInvalidBounds, b.North, b.South)
	case b.East <= b.West:
		return fmt.Errorf("%w: east %.6f must be greater than west %.6f", ErrInvalidBounds, b.East, b.West)
	}
	return nil
}

// Center returns the midpoint of the rectangle.
func (b Bounds) Center() LonLat {
	return LonLat{(b.East + b.West) / 2, (b.North + b.South) / 2}
}

// Ring returns the closed counterclockwise exterior ring, starting and
// ending at the south-west corner.
func (b Bounds) Ring() []LonLat {
	return []LonLat{
		{b.West, b.South},
		{b.East, b.South},
		{b.East, b.North},
		{b.West, b.North},
		{b.West, b.South},
	}
}

// WidthFeet is the east-west extent along the middle latitude.
func (b Bounds) WidthFeet() float64 {
	mid := b.Center().Lat()
	return HaversineFeet(LonLat{b.West, mid}, LonLat{b.East, mid})
}

// LengthFeet is the north-south extent along the middle longitude.
func (b Bounds) LengthFeet() float64 {
	mid := b.Center().Lon()
	return HaversineFeet(LonLat{mid, b.South}, LonLat{mid, b.North})
}

// Footprint projects the ring onto a plane centered on the rectangle.
func (b Bounds) Footprint() Footprint {
	return ProjectRing(b.Ring(), b.Center())
}

// Acres is the projected area of the rectangle.
func (b Bounds) Acres() float64 {
	return b.Footprint().Acres()
}
