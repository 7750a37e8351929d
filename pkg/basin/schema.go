package basin

import "math"

// Section groups fields the way the input form presents them.
type Section string

const (
	SectionBasin       Section = "Basin Size and Design"
	SectionWater       Section = "Water Availability"
	SectionDevelopment Section = "Development Costs"
	SectionWaterCosts  Section = "Water Costs"
)

// Field describes one numeric input: its domain and default.
type Field struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Unit     string   `json:"unit,omitempty"`
	Section  Section  `json:"section"`
	Min      float64  `json:"min"`
	Max      *float64 `json:"max,omitempty"`
	Step     float64  `json:"step,omitempty"`
	Integer  bool     `json:"integer,omitempty"`
	Required bool     `json:"required"`
	Default  float64  `json:"default"`
}

func upTo(v float64) *float64 { return &v }

// Fields is the numeric input schema in form order.
var Fields = []Field{
	{ID: "ac_pond", Label: "Acres of Pond Surface Area", Unit: "acres", Section: SectionBasin, Required: true, Default: 160},
	{ID: "length_pond", Label: "Length of Pond", Unit: "ft", Section: SectionBasin, Required: true, Default: 2640},
	{ID: "width_pond", Label: "Width of Pond", Unit: "ft", Section: SectionBasin, Required: true, Default: 2640},
	{ID: "inside_slope_ratio", Label: "Inside Slope Ratio", Unit: "N:1", Section: SectionBasin, Required: true, Default: 4},
	{ID: "outside_slope_ratio", Label: "Outside Slope Ratio", Unit: "N:1", Section: SectionBasin, Required: true, Default: 2},
	{ID: "levee_width", Label: "Levee Width", Unit: "ft", Section: SectionBasin, Required: true, Default: 8},
	{ID: "slope_across_pond", Label: "Slope Across Pond", Unit: "N:1ft", Section: SectionBasin, Step: 0.1, Default: 0.5},
	{ID: "freeboard_depth", Label: "Freeboard Depth", Unit: "ft", Section: SectionBasin, Required: true, Default: 1},
	{ID: "water_depth", Label: "Water Depth", Unit: "ft", Section: SectionBasin, Required: true, Default: 1},
	{ID: "infiltration_rate", Label: "Infiltration Rate", Unit: "ft/day", Section: SectionBasin, Required: true, Default: 0.6},
	{ID: "wet_year_freq", Label: "Wet Year Frequency", Unit: "%", Section: SectionWater, Max: upTo(100), Required: true, Default: 30},
	{ID: "num_wet_months", Label: "# of Wet Months Per Year", Section: SectionWater, Max: upTo(12), Required: true, Default: 4},
	{ID: "land_cost_per_acre", Label: "Land Cost Per Acre", Unit: "$/acre", Section: SectionDevelopment, Required: true, Default: 6000},
	{ID: "pipeline_length", Label: "Total ft of Pipeline", Unit: "ft", Section: SectionDevelopment, Required: true, Default: 2640},
	{ID: "earthwork_cost_per_cy", Label: "Cost per Cubic Yd of Earthwork", Unit: "$/cy", Section: SectionDevelopment, Required: true, Default: 12},
	{ID: "annual_interest_rate", Label: "Annual Interest Rate", Unit: "%", Section: SectionDevelopment, Max: upTo(100), Required: true, Default: 5},
	{ID: "loan_length", Label: "Length of Loan", Unit: "years", Section: SectionDevelopment, Max: upTo(100), Integer: true, Required: true, Default: 10},
	{ID: "cost_recharge_water", Label: "Cost of Recharge Water", Unit: "$/AF", Section: SectionWaterCosts, Required: true, Default: 35},
	{ID: "value_stored_water", Label: "Value of Stored Water", Unit: "$/AF", Section: SectionWaterCosts, Required: true, Default: 200},
	{ID: "cost_om", Label: "Cost of O&M", Unit: "$/AF", Section: SectionWaterCosts, Required: true, Default: 5},
}

// FieldByID returns the schema entry for id.
func FieldByID(id string) (Field, bool) {
	for _, f := range Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// Sanitize clamps v into the field's domain and snaps it to the field's
// step. Unknown ids and NaN are reported as not ok.
func Sanitize(id string, v float64) (float64, bool) {
	f, ok := FieldByID(id)
	if !ok || math.IsNaN(v) {
		return 0, false
	}

	v = math.Max(f.Min, v)
	if f.Max != nil {
		v = math.Min(*f.Max, v)
	}

	if f.Step > 0 {
		steps := math.Round((v - f.Min) / f.Step)
		v = f.Min + steps*f.Step
		// normalize -0 and residue like 0.30000000000000004
		v = math.Round(v*1e10) / 1e10
		if v == 0 {
			v = 0
		}
	}
	return v, true
}

// Defaults returns the reference scenario used as form placeholders.
func Defaults() Parameters {
	in := Input{}
	for _, f := range Fields {
		_ = in.Set(f.ID, f.Default)
	}
	soil := SoilLoam
	in.SoilType = &soil
	p, _ := in.Parameters()
	return p
}
