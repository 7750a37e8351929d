package soil

import (
	"strings"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
)

// Classify maps a map-unit description onto the closest soil type by
// keyword. ok is false when no keyword matched and loam was assumed.
func Classify(description string) (t basin.SoilType, ok bool) {
	d := strings.ToLower(description)
	layered := strings.Contains(d, "stratified") || strings.Contains(d, "layer")

	switch {
	case strings.Contains(d, "clay") && !strings.Contains(d, "loam"):
		return basin.SoilClayRestrictive, true
	case strings.Contains(d, "silt") || strings.Contains(d, "clay loam"):
		if layered {
			return basin.SoilSiltClayLoamFineLayering, true
		}
		return basin.SoilSiltClayLoam, true
	case strings.Contains(d, "loam"):
		if layered {
			return basin.SoilLoamFineLayering, true
		}
		return basin.SoilLoam, true
	case strings.Contains(d, "sand"):
		if layered {
			return basin.SoilSandyFineLayering, true
		}
		return basin.SoilSand, true
	}
	return basin.SoilLoam, false
}

// infiltration holds reference long-term rates in ft/day.
var infiltration = map[basin.SoilType]float64{
	basin.SoilSand:                     2.0,
	basin.SoilSandyFineLayering:        1.0,
	basin.SoilLoam:                     0.6,
	basin.SoilLoamFineLayering:         0.4,
	basin.SoilSiltClayLoam:             0.25,
	basin.SoilSiltClayLoamFineLayering: 0.15,
	basin.SoilClayRestrictive:          0.05,
}

// InfiltrationRate returns the reference rate for t, or 0 for an unknown type.
func InfiltrationRate(t basin.SoilType) float64 {
	return infiltration[t]
}
