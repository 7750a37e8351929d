package validation

import (
	"fmt"
	"math"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/units"
)

// areaTolerance is how far length×width may drift from the declared pond
// acreage before an info note is raised.
const areaTolerance = 0.10

// ValidateInput performs schema validation on a parameter record. It checks
// that every required field is set and inside its domain, and flags inputs
// that are legal but will yield degenerate results.
func ValidateInput(in *basin.Input) *Report {
	r := NewReport()

	validateRequired(in, r)
	validateRanges(in, r)
	validateSoil(in, r)
	validateDegenerate(in, r)
	validateFootprint(in, r)

	return r
}

func validateRequired(in *basin.Input, r *Report) {
	for _, id := range in.Missing() {
		f, _ := basin.FieldByID(id)
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  fmt.Sprintf("%s is required", f.Label),
			Field:    id,
			Expected: "a number",
		})
	}
}

func validateRanges(in *basin.Input, r *Report) {
	for _, f := range basin.Fields {
		v, ok := in.Value(f.ID)
		if !ok {
			continue
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s must be a finite number", f.Label),
				Field:       f.ID,
				ActualValue: fmt.Sprint(v),
			})
			continue
		}

		if v < f.Min {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s must be at least %g", f.Label, f.Min),
				Field:       f.ID,
				ActualValue: v,
				Expected:    fmt.Sprintf(">= %g", f.Min),
			})
		}
		if f.Max != nil && v > *f.Max {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s must be at most %g", f.Label, *f.Max),
				Field:       f.ID,
				ActualValue: v,
				Expected:    fmt.Sprintf("<= %g", *f.Max),
			})
		}
		if f.Integer && v != math.Trunc(v) {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s must be a whole number", f.Label),
				Field:       f.ID,
				ActualValue: v,
				Expected:    "integer",
				Suggestions: []string{fmt.Sprintf("Use %g", math.Round(v))},
			})
		}
	}
}

func validateSoil(in *basin.Input, r *Report) {
	if in.SoilType == nil || *in.SoilType == "" {
		return
	}
	if !in.SoilType.Valid() {
		var names []string
		for _, s := range basin.SoilTypes() {
			names = append(names, string(s))
		}
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("unknown soil type %q", string(*in.SoilType)),
			Field:       "soil_type",
			ActualValue: string(*in.SoilType),
			Suggestions: names,
		})
	}
}

func validateDegenerate(in *basin.Input, r *Report) {
	zeroWarnings := []struct {
		id, message string
	}{
		{"ac_pond", "pond area is 0; per-acre costs and gross wetted percent will read 0"},
		{"loan_length", "loan length is 0; no annual capital payment or cash flows will be produced"},
		{"num_wet_months", "no wet months; net recharge and water costs will be 0"},
		{"wet_year_freq", "wet year frequency is 0; net recharge and water costs will be 0"},
		{"infiltration_rate", "infiltration rate is 0; net recharge and flow will be 0"},
	}
	for _, w := range zeroWarnings {
		if v, ok := in.Value(w.id); ok && v == 0 {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     w.message,
				Field:       w.id,
				ActualValue: v,
			})
		}
	}
}

func validateFootprint(in *basin.Input, r *Report) {
	acres, okA := in.Value("ac_pond")
	length, okL := in.Value("length_pond")
	width, okW := in.Value("width_pond")
	if !okA || !okL || !okW || acres <= 0 {
		return
	}
	for _, id := range []string{"ac_pond", "length_pond", "width_pond"} {
		if found := r.ForField(id); len(found) > 0 && found[0].Severity == SeverityError {
			return
		}
	}

	implied := length * width / units.SquareFeetPerAcre
	if math.Abs(implied-acres)/acres > areaTolerance {
		r.AddInfo(Result{
			Level:        LevelSchema,
			Message:      fmt.Sprintf("length × width covers %.1f acres but pond area is %g acres", implied, acres),
			Field:        "ac_pond",
			ActualValue:  acres,
			Expected:     fmt.Sprintf("about %.1f", implied),
			ConflictWith: "length_pond, width_pond",
		})
	}
}
