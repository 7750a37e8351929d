package analytics

import (
	"fmt"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/cost"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/earthwork"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/roi"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/units"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/validation"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/wetted"
)

// Resolve evaluates a parameter set end to end.
// It computes earthwork, wetted area, itemized costs, the cash-flow schedule
// and the ROI summary, then checks the results for degenerate outcomes.
// Returns the evaluation and an analytical validation report.
func Resolve(p basin.Parameters) (*Evaluation, *validation.Report) {
	report := validation.NewReport()

	// 1. Geometry
	ew := earthwork.Compute(p)
	wa := wetted.Compute(p, ew.Perimeter)

	// 2. Costs and per-AF figures
	est := cost.Estimate(p, ew, wa)

	// 3. Cash flows
	flows := Flows(p, est.Summary)
	schedule := roi.CashFlows(p.LoanLength, flows.InitialCost, flows.AnnualCost, flows.AnnualBenefit)
	summary := roi.Summarize(p.LoanLength, p.AnnualInterestRate, flows.InitialCost, flows.AnnualCost, flows.AnnualBenefit)

	eval := &Evaluation{
		Parameters: p,
		AreaSqMi:   p.AcPond / units.AcresPerSquareMile,
		Earthwork:  ew,
		WettedArea: wa,
		Outputs:    est.Items,
		Summary:    est.Summary,
		Flows:      flows,
		CashFlows:  schedule,
		ROI:        summary,
	}

	// 4. Analytical validation
	validateAnalytical(eval, report)

	return eval, report
}

// Flows derives the signed year-0 and annual flows from a cost summary.
// Recharge water and O&M are costs; stored water value is the benefit.
func Flows(p basin.Parameters, s cost.Summary) AnnualFlows {
	f := AnnualFlows{
		InitialCost:   -s.TotalCostEstimate,
		AnnualCost:    -(p.CostRechargeWater + p.CostOM) * s.NetRecharge,
		AnnualBenefit: p.ValueStoredWater * s.NetRecharge,
	}
	f.AnnualNetBenefit = f.AnnualBenefit + f.AnnualCost
	return f
}

// Evaluate validates in and, when it is usable, resolves it. The returned
// report merges schema and analytical findings. The evaluation is nil when
// the input has errors.
func Evaluate(in *basin.Input) (*Evaluation, *validation.Report, error) {
	report := validation.ValidateInput(in)
	if !report.Valid {
		return nil, report, nil
	}

	p, err := in.Parameters()
	if err != nil {
		return nil, report, fmt.Errorf("converting input: %w", err)
	}

	eval, analytical := Resolve(p)
	report.Merge(analytical)
	return eval, report, nil
}
