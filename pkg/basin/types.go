package basin

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnset is returned when a required field of an Input has no value.
var ErrUnset = errors.New("required field unset")

// Parameters is the validated input record for one basin evaluation.
// All geometric and cost fields are non-negative; percentages are in [0,100].
type Parameters struct {
	AcPond             float64  `yaml:"ac_pond" json:"ac_pond"`
	LengthPond         float64  `yaml:"length_pond" json:"length_pond"`
	WidthPond          float64  `yaml:"width_pond" json:"width_pond"`
	InsideSlopeRatio   float64  `yaml:"inside_slope_ratio" json:"inside_slope_ratio"`
	OutsideSlopeRatio  float64  `yaml:"outside_slope_ratio" json:"outside_slope_ratio"`
	LeveeWidth         float64  `yaml:"levee_width" json:"levee_width"`
	SlopeAcrossPond    float64  `yaml:"slope_across_pond" json:"slope_across_pond"`
	FreeboardDepth     float64  `yaml:"freeboard_depth" json:"freeboard_depth"`
	WaterDepth         float64  `yaml:"water_depth" json:"water_depth"`
	InfiltrationRate   float64  `yaml:"infiltration_rate" json:"infiltration_rate"`
	SoilType           SoilType `yaml:"soil_type" json:"soil_type"`
	WetYearFreq        float64  `yaml:"wet_year_freq" json:"wet_year_freq"`
	NumWetMonths       float64  `yaml:"num_wet_months" json:"num_wet_months"`
	LandCostPerAcre    float64  `yaml:"land_cost_per_acre" json:"land_cost_per_acre"`
	PipelineLength     float64  `yaml:"pipeline_length" json:"pipeline_length"`
	EarthworkCostPerCY float64  `yaml:"earthwork_cost_per_cy" json:"earthwork_cost_per_cy"`
	AnnualInterestRate float64  `yaml:"annual_interest_rate" json:"annual_interest_rate"`
	LoanLength         int      `yaml:"loan_length" json:"loan_length"`
	CostRechargeWater  float64  `yaml:"cost_recharge_water" json:"cost_recharge_water"`
	ValueStoredWater   float64  `yaml:"value_stored_water" json:"value_stored_water"`
	CostOM             float64  `yaml:"cost_om" json:"cost_om"`
}

// LeveeHeight is the freeboard plus the design water depth.
func (p Parameters) LeveeHeight() float64 {
	return p.FreeboardDepth + p.WaterDepth
}

// Input is a parameter record as supplied by a form, file, or request.
// A nil field is unset; it is never read as zero.
type Input struct {
	AcPond             *float64  `yaml:"ac_pond" json:"ac_pond"`
	LengthPond         *float64  `yaml:"length_pond" json:"length_pond"`
	WidthPond          *float64  `yaml:"width_pond" json:"width_pond"`
	InsideSlopeRatio   *float64  `yaml:"inside_slope_ratio" json:"inside_slope_ratio"`
	OutsideSlopeRatio  *float64  `yaml:"outside_slope_ratio" json:"outside_slope_ratio"`
	LeveeWidth         *float64  `yaml:"levee_width" json:"levee_width"`
	SlopeAcrossPond    *float64  `yaml:"slope_across_pond" json:"slope_across_pond"`
	FreeboardDepth     *float64  `yaml:"freeboard_depth" json:"freeboard_depth"`
	WaterDepth         *float64  `yaml:"water_depth" json:"water_depth"`
	InfiltrationRate   *float64  `yaml:"infiltration_rate" json:"infiltration_rate"`
	SoilType           *SoilType `yaml:"soil_type" json:"soil_type"`
	WetYearFreq        *float64  `yaml:"wet_year_freq" json:"wet_year_freq"`
	NumWetMonths       *float64  `yaml:"num_wet_months" json:"num_wet_months"`
	LandCostPerAcre    *float64  `yaml:"land_cost_per_acre" json:"land_cost_per_acre"`
	PipelineLength     *float64  `yaml:"pipeline_length" json:"pipeline_length"`
	EarthworkCostPerCY *float64  `yaml:"earthwork_cost_per_cy" json:"earthwork_cost_per_cy"`
	AnnualInterestRate *float64  `yaml:"annual_interest_rate" json:"annual_interest_rate"`
	LoanLength         *float64  `yaml:"loan_length" json:"loan_length"`
	CostRechargeWater  *float64  `yaml:"cost_recharge_water" json:"cost_recharge_water"`
	ValueStoredWater   *float64  `yaml:"value_stored_water" json:"value_stored_water"`
	CostOM             *float64  `yaml:"cost_om" json:"cost_om"`
}

// Slot returns the address of the numeric field with the given id, or nil
// if id does not name a numeric field.
func (in *Input) Slot(id string) **float64 {
	switch id {
	case "ac_pond":
		return &in.AcPond
	case "length_pond":
		return &in.LengthPond
	case "width_pond":
		return &in.WidthPond
	case "inside_slope_ratio":
		return &in.InsideSlopeRatio
	case "outside_slope_ratio":
		return &in.OutsideSlopeRatio
	case "levee_width":
		return &in.LeveeWidth
	case "slope_across_pond":
		return &in.SlopeAcrossPond
	case "freeboard_depth":
		return &in.FreeboardDepth
	case "water_depth":
		return &in.WaterDepth
	case "infiltration_rate":
		return &in.InfiltrationRate
	case "wet_year_freq":
		return &in.WetYearFreq
	case "num_wet_months":
		return &in.NumWetMonths
	case "land_cost_per_acre":
		return &in.LandCostPerAcre
	case "pipeline_length":
		return &in.PipelineLength
	case "earthwork_cost_per_cy":
		return &in.EarthworkCostPerCY
	case "annual_interest_rate":
		return &in.AnnualInterestRate
	case "loan_length":
		return &in.LoanLength
	case "cost_recharge_water":
		return &in.CostRechargeWater
	case "value_stored_water":
		return &in.ValueStoredWater
	case "cost_om":
		return &in.CostOM
	}
	return nil
}

// Value returns the numeric field with the given id and whether it is set.
func (in *Input) Value(id string) (float64, bool) {
	slot := in.Slot(id)
	if slot == nil || *slot == nil {
		return 0, false
	}
	return **slot, true
}

// Set assigns the numeric field with the given id.
func (in *Input) Set(id string, v float64) error {
	slot := in.Slot(id)
	if slot == nil {
		return fmt.Errorf("unknown numeric field %q", id)
	}
	*slot = &v
	return nil
}

// Missing lists the ids of required fields that are unset, in schema order.
func (in *Input) Missing() []string {
	var missing []string
	for _, f := range Fields {
		if !f.Required {
			continue
		}
		if _, ok := in.Value(f.ID); !ok {
			missing = append(missing, f.ID)
		}
	}
	return missing
}

// Parameters converts the input into an evaluation record. It fails with
// ErrUnset if any required field is unset. Range checks belong to the
// validation package.
func (in *Input) Parameters() (Parameters, error) {
	if missing := in.Missing(); len(missing) > 0 {
		return Parameters{}, fmt.Errorf("%w: %s", ErrUnset, strings.Join(missing, ", "))
	}

	v := func(id string) float64 {
		x, _ := in.Value(id)
		return x
	}

	p := Parameters{
		AcPond:             v("ac_pond"),
		LengthPond:         v("length_pond"),
		WidthPond:          v("width_pond"),
		InsideSlopeRatio:   v("inside_slope_ratio"),
		OutsideSlopeRatio:  v("outside_slope_ratio"),
		LeveeWidth:         v("levee_width"),
		SlopeAcrossPond:    v("slope_across_pond"),
		FreeboardDepth:     v("freeboard_depth"),
		WaterDepth:         v("water_depth"),
		InfiltrationRate:   v("infiltration_rate"),
		WetYearFreq:        v("wet_year_freq"),
		NumWetMonths:       v("num_wet_months"),
		LandCostPerAcre:    v("land_cost_per_acre"),
		PipelineLength:     v("pipeline_length"),
		EarthworkCostPerCY: v("earthwork_cost_per_cy"),
		AnnualInterestRate: v("annual_interest_rate"),
		LoanLength:         int(math.Round(v("loan_length"))),
		CostRechargeWater:  v("cost_recharge_water"),
		ValueStoredWater:   v("value_stored_water"),
		CostOM:             v("cost_om"),
	}
	if in.SoilType != nil {
		p.SoilType = *in.SoilType
	}
	return p, nil
}

// FromParameters builds a fully set Input from p.
func FromParameters(p Parameters) Input {
	f := func(x float64) *float64 { return &x }
	in := Input{
		AcPond:             f(p.AcPond),
		LengthPond:         f(p.LengthPond),
		WidthPond:          f(p.WidthPond),
		InsideSlopeRatio:   f(p.InsideSlopeRatio),
		OutsideSlopeRatio:  f(p.OutsideSlopeRatio),
		LeveeWidth:         f(p.LeveeWidth),
		SlopeAcrossPond:    f(p.SlopeAcrossPond),
		FreeboardDepth:     f(p.FreeboardDepth),
		WaterDepth:         f(p.WaterDepth),
		InfiltrationRate:   f(p.InfiltrationRate),
		WetYearFreq:        f(p.WetYearFreq),
		NumWetMonths:       f(p.NumWetMonths),
		LandCostPerAcre:    f(p.LandCostPerAcre),
		PipelineLength:     f(p.PipelineLength),
		EarthworkCostPerCY: f(p.EarthworkCostPerCY),
		AnnualInterestRate: f(p.AnnualInterestRate),
		LoanLength:         f(float64(p.LoanLength)),
		CostRechargeWater:  f(p.CostRechargeWater),
		ValueStoredWater:   f(p.ValueStoredWater),
		CostOM:             f(p.CostOM),
	}
	if p.SoilType != "" {
		soil := p.SoilType
		in.SoilType = &soil
	}
	return in
}
