package geo

import (
	"encoding/json"
	"slices"
)

// Geometry is a GeoJSON Polygon geometry.
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [][]LonLat `json:"coordinates"`
}

// Feature is a GeoJSON Feature.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// FeatureCollection is a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// FeatureCollection wraps the rectangle as a single named polygon feature.
// The exterior ring is wound counterclockwise even for inverted bounds.
func (b Bounds) FeatureCollection(name string) FeatureCollection {
	ring := b.Ring()
	if !ProjectRing(ring, b.Center()).CounterClockwise() {
		slices.Reverse(ring)
	}
	return FeatureCollection{
		Type: "FeatureCollection",
		Features: []Feature{{
			Type:       "Feature",
			Properties: map[string]any{"name": name},
			Geometry: Geometry{
				Type:        "Polygon",
				Coordinates: [][]LonLat{ring},
			},
		}},
	}
}

// String encodes the collection as compact GeoJSON text.
func (fc FeatureCollection) String() string {
	data, err := json.Marshal(fc)
	if err != nil {
		return ""
	}
	return string(data)
}
