package geo

import "math"

// EarthRadiusFeet is the mean earth radius used for distances on the sphere.
const EarthRadiusFeet = 20902231.0

// LonLat is a WGS84 position in degrees. It encodes as a GeoJSON position
// [lon, lat].
type LonLat [2]float64

// Lon returns the longitude in degrees.
func (p LonLat) Lon() float64 { return p[0] }

// Lat returns the latitude in degrees.
func (p LonLat) Lat() float64 { return p[1] }

// HaversineFeet returns the great-circle distance between a and b.
func HaversineFeet(a, b LonLat) float64 {
	lat1, lat2 := radians(a.Lat()), radians(b.Lat())
	dLat := lat2 - lat1
	dLon := radians(b.Lon() - a.Lon())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusFeet * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Point2D is a planar point in feet: X east, Y north.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a shorthand constructor for Point2D.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the planar distance from p to q in feet.
func (p Point2D) Distance(q Point2D) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Project maps pos onto a plane tangent at origin (equirectangular), in feet.
// Accurate for field-sized areas.
func Project(pos, origin LonLat) Point2D {
	return Pt(
		EarthRadiusFeet*radians(pos.Lon()-origin.Lon())*math.Cos(radians(origin.Lat())),
		EarthRadiusFeet*radians(pos.Lat()-origin.Lat()),
	)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
