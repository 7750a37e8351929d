package soil

import (
	"fmt"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/geo"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/validation"
)

// Suggestion is the set of basin inputs derived from a drawn area and its
// dominant soil.
type Suggestion struct {
	AcPond           float64        `json:"ac_pond"`
	LengthPond       float64        `json:"length_pond"`
	WidthPond        float64        `json:"width_pond"`
	PipelineLength   float64        `json:"pipeline_length"`
	BoundaryLength   float64        `json:"boundary_length"`
	SoilType         basin.SoilType `json:"soil_type"`
	InfiltrationRate float64        `json:"infiltration_rate"`
	DominantSoil     MapUnit        `json:"dominant_soil"`
	Classified       bool           `json:"classified"`
}

// Suggest derives inputs from the area's bounds and its map units, which
// must be sorted largest first. The pipeline is assumed to run the length
// of the pond.
func Suggest(b geo.Bounds, units []MapUnit) Suggestion {
	s := Suggestion{
		AcPond:     b.Acres(),
		LengthPond: b.LengthFeet(),
		WidthPond:  b.WidthFeet(),
	}
	s.BoundaryLength = b.Footprint().PerimeterFeet()
	s.PipelineLength = s.LengthPond

	if len(units) > 0 {
		s.DominantSoil = units[0]
		s.SoilType, s.Classified = Classify(units[0].Description)
	} else {
		s.SoilType = basin.SoilLoam
	}
	s.InfiltrationRate = InfiltrationRate(s.SoilType)
	return s
}

// Apply writes the suggested values into in, clamped to each field's
// domain, leaving other fields alone.
func (s Suggestion) Apply(in *basin.Input) {
	set := func(id string, v float64) {
		if v, ok := basin.Sanitize(id, v); ok {
			_ = in.Set(id, v)
		}
	}
	set("ac_pond", s.AcPond)
	set("length_pond", s.LengthPond)
	set("width_pond", s.WidthPond)
	set("pipeline_length", s.PipelineLength)
	set("infiltration_rate", s.InfiltrationRate)
	soil := s.SoilType
	in.SoilType = &soil
}

// Check reports site-level findings about a suggestion.
func (s Suggestion) Check() *validation.Report {
	r := validation.NewReport()
	if s.DominantSoil.Symbol != "" {
		r.AddInfo(validation.Result{
			Level:   validation.LevelSite,
			Message: fmt.Sprintf("dominant map unit %s: %s (%.1f acres)", s.DominantSoil.Symbol, s.DominantSoil.Description, s.DominantSoil.Acres),
			Field:   "soil_type",
		})
	}
	if !s.Classified {
		r.AddWarning(validation.Result{
			Level:       validation.LevelSite,
			Message:     fmt.Sprintf("could not classify the dominant soil; assuming %s", s.SoilType.Label()),
			Field:       "soil_type",
			Suggestions: []string{"confirm the soil type with a site percolation test"},
		})
	}
	if s.SoilType == basin.SoilClayRestrictive {
		r.AddWarning(validation.Result{
			Level:       validation.LevelSite,
			Message:     "clay with restrictive layers recharges slowly",
			Field:       "infiltration_rate",
			ActualValue: s.InfiltrationRate,
			Suggestions: []string{"consider a site with coarser soil"},
		})
	}
	return r
}
