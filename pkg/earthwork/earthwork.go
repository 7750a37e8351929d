// Package earthwork sizes the levee that bounds a recharge basin and prices
// the fill needed to build it.
package earthwork

import (
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/units"
)

// Result holds levee earthwork volumes in cubic yards and their cost.
type Result struct {
	Perimeter      float64 `json:"perimeter"`
	CenterOfLevee  float64 `json:"center_of_levee"`
	InsideOfLevee  float64 `json:"inside_of_levee"`
	OutsideOfLevee float64 `json:"outside_of_levee"`
	TotalVolume    float64 `json:"total_volume_of_earthwork"`
	TotalCost      float64 `json:"total_cost_of_earthwork"`
}

// Compute derives levee volumes and earthwork cost from the pond geometry.
// Inputs are not validated; degenerate geometry yields the corresponding
// arithmetic result.
func Compute(p basin.Parameters) Result {
	perimeter := Perimeter(p.WidthPond, p.LengthPond)
	center := CenterOfLevee(p, perimeter)
	inside := SlopeVolume(p, p.InsideSlopeRatio)
	outside := SlopeVolume(p, p.OutsideSlopeRatio)
	total := center + inside + outside

	return Result{
		Perimeter:      perimeter,
		CenterOfLevee:  center,
		InsideOfLevee:  inside,
		OutsideOfLevee: outside,
		TotalVolume:    total,
		TotalCost:      total * p.EarthworkCostPerCY,
	}
}

// Perimeter of the rectangular pond in feet.
func Perimeter(width, length float64) float64 {
	return width*2 + length*2
}

// CenterOfLevee is the volume of the flat-topped core of the levee running
// the full perimeter.
func CenterOfLevee(p basin.Parameters, perimeter float64) float64 {
	return perimeter * p.LeveeHeight() * p.LeveeWidth / units.CubicFeetPerCubicYard
}

// SlopeVolume is the volume of one levee face (inside or outside) at the
// given N:1 slope ratio. The doubling and halving follow the reference
// spreadsheet term by term so results match it bit for bit.
func SlopeVolume(p basin.Parameters, slopeRatio float64) float64 {
	return 2 * p.LeveeHeight() * slopeRatio * (p.WidthPond + p.LengthPond) * 2 / 2 / units.CubicFeetPerCubicYard
}
