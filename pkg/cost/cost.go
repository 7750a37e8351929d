package cost

import (
	"fmt"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/earthwork"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/finance"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/wetted"
)

// Row labels, in table order.
const (
	LabelLand             = "Land Purchase"
	LabelEarthwork        = "Earthwork"
	LabelPipelineInlets   = "Pipeline Inlets"
	LabelPipeline         = "Pipeline (30)"
	LabelFencing          = "Fencing"
	LabelSubtotal         = "Subtotal"
	LabelTotal            = "Total Cost Estimate"
	LabelCapitalPayment   = "Annual Capital Payment"
	LabelRechargeDepth    = "Average Annual Recharge Depth"
	LabelNetRecharge      = "Net Recharge (Applied Water - Evaporation Loss)"
	LabelCapitalCostPerAF = "Annual Capital Cost per Acre-Foot"
	LabelWaterPurchase    = "Water Purchase Cost of Recharge Water"
	LabelOM               = "O&M Cost for Recharge and Basin Maintenance"
	LabelTotalCostPerAF   = "Total Annual Cost per Acre-Foot of Recharged Water"
	LabelNetBenefitPerAF  = "Net Benefit per Acre-Foot"
	LabelRechargeFlow     = "Recharge Flow"
	LabelFillRate         = "Fill Rate (54\" pipe)"
)

// LabelEngineering is the engineering and contingency row label.
var LabelEngineering = fmt.Sprintf("Engineering and Contingency (%g%%)", EngineeringFraction*100)

// LineItem is one row of the itemized cost/benefit table. Every row has the
// same fields; nil marks a cell that does not apply to the row.
type LineItem struct {
	Label        string   `json:"label"`
	Quantity     *float64 `json:"quantity"`
	QuantityUnit string   `json:"quantity_unit"`
	UnitCost     *float64 `json:"unit_cost"`
	UnitCostUnit string   `json:"unit_cost_units"`
	Cost         *float64 `json:"cost"`
	CostPerAcre  *float64 `json:"cost_per_acre"`
}

// Summary carries the scalar results behind the table rows.
type Summary struct {
	LandCost               float64 `json:"land_cost"`
	EarthworkCost          float64 `json:"earthwork_cost"`
	PipelineInletCost      float64 `json:"pipeline_inlet_cost"`
	PipelineCost           float64 `json:"pipeline_cost"`
	FencingCost            float64 `json:"fencing_cost"`
	Subtotal               float64 `json:"subtotal"`
	EngineeringCost        float64 `json:"engineering_cost"`
	TotalCostEstimate      float64 `json:"total_cost_estimate"`
	AnnualCapitalPayment   float64 `json:"annual_capital_payment"`
	AvgAnnualRechargeDepth float64 `json:"avg_annual_recharge_depth"`
	NetRecharge            float64 `json:"net_recharge"`
	AnnualCapitalCostPerAF float64 `json:"annual_capital_cost_per_af"`
	TotalAnnualCostPerAF   float64 `json:"total_annual_cost_per_af"`
	NetBenefitPerAF        float64 `json:"net_benefit_per_af"`
	RechargeFlowCFS        float64 `json:"recharge_flow_cfs"`
	FillRateCFS            float64 `json:"fill_rate_cfs"`
}

// Report is the complete cost output.
type Report struct {
	Items   []LineItem `json:"items"`
	Summary Summary    `json:"summary"`
}

// Outputs returns the itemized table rows in their fixed order.
func Outputs(p basin.Parameters, ew earthwork.Result, wa wetted.Result) []LineItem {
	return Estimate(p, ew, wa).Items
}

// Estimate combines land, earthwork, pipeline, and fencing into a capital
// cost estimate and derives the annualized cost and benefit per acre-foot.
func Estimate(p basin.Parameters, ew earthwork.Result, wa wetted.Result) *Report {
	var s Summary

	s.LandCost = p.AcPond * p.LandCostPerAcre
	s.EarthworkCost = ew.TotalCost
	s.PipelineInletCost = PipelineInletCost
	s.PipelineCost = p.PipelineLength * PipelineCostPerFt
	s.FencingCost = FencingLengthFt * FencingCostPerFt
	s.Subtotal = s.LandCost + s.EarthworkCost + s.PipelineInletCost + s.PipelineCost + s.FencingCost
	s.EngineeringCost = s.Subtotal * EngineeringFraction
	s.TotalCostEstimate = s.Subtotal + s.EngineeringCost

	s.AnnualCapitalPayment = finance.AnnualCapitalPayment(p.AnnualInterestRate, p.LoanLength, s.TotalCostEstimate)
	s.AvgAnnualRechargeDepth = finance.AvgAnnualRechargeDepth(p.InfiltrationRate, wa.AreaAcres)
	s.NetRecharge = finance.NetRecharge(s.AvgAnnualRechargeDepth, p.NumWetMonths, p.WetYearFreq, finance.EvaporationLossPercent)
	s.AnnualCapitalCostPerAF = finance.AnnualCapitalCostPerAF(s.AnnualCapitalPayment, s.NetRecharge)
	s.TotalAnnualCostPerAF = finance.TotalAnnualCostPerAF(s.AnnualCapitalCostPerAF, p.CostRechargeWater, p.CostOM)
	s.NetBenefitPerAF = finance.NetBenefitPerAF(p.ValueStoredWater, s.TotalAnnualCostPerAF)
	s.RechargeFlowCFS = finance.RechargeFlowCFS(s.AvgAnnualRechargeDepth)
	s.FillRateCFS = finance.FillRate(s.RechargeFlowCFS)

	acres := p.AcPond
	items := []LineItem{
		{Label: LabelLand, Quantity: num(p.AcPond), QuantityUnit: "acres", UnitCost: num(p.LandCostPerAcre), UnitCostUnit: "acre", Cost: num(s.LandCost), CostPerAcre: num(p.LandCostPerAcre)},
		{Label: LabelEarthwork, Quantity: num(ew.TotalVolume), QuantityUnit: "cubic yards", UnitCost: num(p.EarthworkCostPerCY), UnitCostUnit: "cubic yard", Cost: num(s.EarthworkCost), CostPerAcre: perAcre(s.EarthworkCost, acres)},
		{Label: LabelPipelineInlets, Quantity: num(1), QuantityUnit: "each", UnitCost: num(PipelineInletCost), UnitCostUnit: "each", Cost: num(s.PipelineInletCost), CostPerAcre: perAcre(s.PipelineInletCost, acres)},
		{Label: LabelPipeline, Quantity: num(p.PipelineLength), QuantityUnit: "feet", UnitCost: num(PipelineCostPerFt), UnitCostUnit: "foot", Cost: num(s.PipelineCost), CostPerAcre: perAcre(s.PipelineCost, acres)},
		{Label: LabelFencing, Quantity: num(FencingLengthFt), QuantityUnit: "feet", UnitCost: num(FencingCostPerFt), UnitCostUnit: "foot", Cost: num(s.FencingCost), CostPerAcre: perAcre(s.FencingCost, acres)},
		{Label: LabelSubtotal, Cost: num(s.Subtotal), CostPerAcre: perAcre(s.Subtotal, acres)},
		{Label: LabelEngineering, Cost: num(s.EngineeringCost), CostPerAcre: perAcre(s.EngineeringCost, acres)},
		{Label: LabelTotal, Cost: num(s.TotalCostEstimate), CostPerAcre: perAcre(s.TotalCostEstimate, acres)},
		{Label: LabelCapitalPayment, UnitCost: num(s.AnnualCapitalPayment), UnitCostUnit: "year"},
		{Label: LabelRechargeDepth, Quantity: num(s.AvgAnnualRechargeDepth), QuantityUnit: "feet / day"},
		{Label: LabelNetRecharge, Quantity: num(s.NetRecharge), QuantityUnit: "acre-feet / year"},
		{Label: LabelCapitalCostPerAF, UnitCost: num(s.AnnualCapitalCostPerAF), UnitCostUnit: "acre-foot"},
		{Label: LabelWaterPurchase, UnitCost: num(p.CostRechargeWater), UnitCostUnit: "acre-foot"},
		{Label: LabelOM, UnitCost: num(p.CostOM), UnitCostUnit: "acre-foot"},
		{Label: LabelTotalCostPerAF, UnitCost: num(s.TotalAnnualCostPerAF), UnitCostUnit: "acre-foot"},
		{Label: LabelNetBenefitPerAF, UnitCost: num(s.NetBenefitPerAF), UnitCostUnit: "acre-foot"},
		{Label: LabelRechargeFlow, Quantity: num(s.RechargeFlowCFS), QuantityUnit: "cfs"},
		{Label: LabelFillRate, Quantity: num(s.FillRateCFS), QuantityUnit: "cfs"},
	}

	return &Report{Items: items, Summary: s}
}

func num(v float64) *float64 { return &v }

// perAcre spreads a cost over the pond area; a pond of zero acres yields 0.
func perAcre(cost, acres float64) *float64 {
	if acres == 0 {
		return num(0)
	}
	return num(cost / acres)
}
