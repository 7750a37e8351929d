package basin

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSoil is returned by ParseSoilType for values outside the enum.
var ErrUnknownSoil = errors.New("unknown soil type")

// SoilType classifies the basin floor. It is informational; only the
// infiltration rate feeds the formulas.
type SoilType string

const (
	SoilSand                     SoilType = "sand"
	SoilSandyFineLayering        SoilType = "sandy_fine_layering"
	SoilLoam                     SoilType = "loam"
	SoilLoamFineLayering         SoilType = "loam_fine_layering"
	SoilSiltClayLoam             SoilType = "silt_clay_loam"
	SoilSiltClayLoamFineLayering SoilType = "silt_clay_loam_fine_layering"
	SoilClayRestrictive          SoilType = "clay_restrictive_layers"
)

var soilLabels = map[SoilType]string{
	SoilSand:                     "Sand",
	SoilSandyFineLayering:        "Sandy with some fine layering",
	SoilLoam:                     "Loam",
	SoilLoamFineLayering:         "Loam with some fine layering",
	SoilSiltClayLoam:             "Silt or Clay Loam",
	SoilSiltClayLoamFineLayering: "Silt or Clay Loam with some fine layering",
	SoilClayRestrictive:          "Clay soil with restrictive layers",
}

// SoilTypes lists the soil types in display order, coarsest first.
func SoilTypes() []SoilType {
	return []SoilType{
		SoilSand,
		SoilSandyFineLayering,
		SoilLoam,
		SoilLoamFineLayering,
		SoilSiltClayLoam,
		SoilSiltClayLoamFineLayering,
		SoilClayRestrictive,
	}
}

// Label returns the display text, or the raw value for unknown types.
func (s SoilType) Label() string {
	if l, ok := soilLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is one of the known soil types.
func (s SoilType) Valid() bool {
	_, ok := soilLabels[s]
	return ok
}

// ParseSoilType accepts a soil type value (case-insensitive).
func ParseSoilType(v string) (SoilType, error) {
	s := SoilType(strings.ToLower(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSoil, v)
	}
	return s, nil
}
