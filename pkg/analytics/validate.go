package analytics

import (
	"fmt"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/validation"
)

// validateAnalytical flags results that are arithmetically valid but
// physically or financially meaningless.
func validateAnalytical(e *Evaluation, report *validation.Report) {
	validateWettedLength(e, report)
	validateWettedArea(e, report)
	validateRecharge(e, report)
	validateReturn(e, report)
}

func validateWettedLength(e *Evaluation, report *validation.Report) {
	if !e.WettedArea.Degenerate() {
		return
	}
	report.AddWarning(validation.Result{
		Level:       validation.LevelAnalytical,
		Message:     fmt.Sprintf("levees consume the pond: net inside length is %.1f ft", e.WettedArea.NetInsideLength),
		Field:       "wetted_area.net_inside_length",
		ActualValue: e.WettedArea.NetInsideLength,
		Expected:    ">= 0",
		Suggestions: []string{
			"Increase pond length or width",
			"Reduce levee width or slope ratios",
		},
	})
}

func validateWettedArea(e *Evaluation, report *validation.Report) {
	p := e.Parameters
	if p.AcPond <= 0 || e.WettedArea.AreaAcres <= p.AcPond {
		return
	}
	report.AddWarning(validation.Result{
		Level:        validation.LevelAnalytical,
		Message:      fmt.Sprintf("wetted area %.1f acres exceeds the pond area of %g acres", e.WettedArea.AreaAcres, p.AcPond),
		Field:        "wetted_area.wetted_area_acres",
		ActualValue:  e.WettedArea.AreaAcres,
		Expected:     fmt.Sprintf("<= %g", p.AcPond),
		ConflictWith: "ac_pond",
		Suggestions:  []string{"Check that length and width describe the same pond as ac_pond"},
	})
}

func validateRecharge(e *Evaluation, report *validation.Report) {
	if e.Summary.NetRecharge > 0 {
		return
	}
	report.AddWarning(validation.Result{
		Level:       validation.LevelAnalytical,
		Message:     "net recharge is zero; per-AF capital cost is reported as 0",
		Field:       "net_recharge",
		ActualValue: e.Summary.NetRecharge,
		Expected:    "> 0",
	})
}

func validateReturn(e *Evaluation, report *validation.Report) {
	if !e.ROI.IRRComputable() {
		report.AddWarning(validation.Result{
			Level:   validation.LevelAnalytical,
			Message: "internal rate of return could not be computed for this cash flow",
			Field:   "roi.irr",
			Suggestions: []string{
				"A loan length of at least 2 years is required",
				"The annual net benefit must change sign against the initial cost",
			},
		})
	}

	report.AddInfo(validation.Result{
		Level:       validation.LevelAnalytical,
		Message:     fmt.Sprintf("benefit-cost ratio %.2f over %d years at %g%%", e.ROI.BenefitCostRatio, e.ROI.Years, e.ROI.DiscountRate),
		Field:       "roi.benefit_cost_ratio",
		ActualValue: fmt.Sprintf("%.4f", e.ROI.BenefitCostRatio),
	})
}
