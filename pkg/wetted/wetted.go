// Package wetted derives the infiltrating floor area of a basin, net of the
// levee footprint.
package wetted

import (
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/units"
)

// Result holds the wetted-area adjustments (feet) and the resulting area.
type Result struct {
	OutsideLength         float64 `json:"outside_length_wetted_area"`
	LessOutsideLevee      float64 `json:"less_outside_levee"`
	LessTopLevee          float64 `json:"less_top_levee"`
	LessInsideLevee       float64 `json:"less_inside_levee"`
	PlusWettedInsideLevee float64 `json:"plus_wetted_inside_levee"`
	NetInsideLength       float64 `json:"net_inside_length_wetted_area"`
	AreaSqYds             float64 `json:"wetted_area_sq_yds"`
	AreaAcres             float64 `json:"wetted_area_acres"`
	GrossPercent          float64 `json:"wetted_area_gross_percent"`
}

// Degenerate reports whether the levees consume more than the available
// side length. The area is still the square of the (negative) length.
func (r Result) Degenerate() bool {
	return r.NetInsideLength < 0
}

// Compute derives the wetted area from the pond geometry and the perimeter
// produced by the earthwork calculation. The footprint is treated as a
// square with a quarter of the perimeter per side.
func Compute(p basin.Parameters, perimeter float64) Result {
	h := p.LeveeHeight()

	r := Result{
		OutsideLength:         perimeter / 4,
		LessOutsideLevee:      h * p.OutsideSlopeRatio * 2,
		LessTopLevee:          p.LeveeWidth * 2,
		LessInsideLevee:       h * p.InsideSlopeRatio * 2,
		PlusWettedInsideLevee: p.WaterDepth * p.InsideSlopeRatio * 2,
	}
	r.NetInsideLength = r.OutsideLength - (r.LessOutsideLevee + r.LessTopLevee + r.LessInsideLevee) + r.PlusWettedInsideLevee
	r.AreaSqYds = SquareYards(r.NetInsideLength)
	r.AreaAcres = r.AreaSqYds / units.SquareYardsPerAcre
	r.GrossPercent = GrossPercent(r.AreaAcres, p.AcPond)
	return r
}

// SquareYards is the area of a square with the given side in feet.
func SquareYards(sideFeet float64) float64 {
	return sideFeet * sideFeet / units.SquareFeetPerSquareYard
}

// GrossPercent is the wetted area as a percentage of the pond area.
// A pond of zero acres yields 0.
func GrossPercent(wettedAcres, pondAcres float64) float64 {
	if pondAcres == 0 {
		return 0
	}
	return wettedAcres / pondAcres * 100
}
