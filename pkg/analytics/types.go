package analytics

import (
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/cost"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/earthwork"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/roi"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/wetted"
)

// AnnualFlows holds the signed flows that seed the cash-flow schedule.
// Costs are negative.
type AnnualFlows struct {
	InitialCost      float64 `json:"initial_cost"`
	AnnualCost       float64 `json:"annual_cost"`
	AnnualBenefit    float64 `json:"annual_benefit"`
	AnnualNetBenefit float64 `json:"annual_net_benefit"`
}

// Evaluation is the complete derived record for one parameter set.
type Evaluation struct {
	Parameters basin.Parameters  `json:"parameters"`
	AreaSqMi   float64           `json:"area_sq_mi"`
	Earthwork  earthwork.Result  `json:"earthwork"`
	WettedArea wetted.Result     `json:"wetted_area"`
	Outputs    []cost.LineItem   `json:"outputs"`
	Summary    cost.Summary      `json:"summary"`
	Flows      AnnualFlows       `json:"flows"`
	CashFlows  []roi.CashFlowRow `json:"cash_flows"`
	ROI        roi.Summary       `json:"roi"`
}
