package cost

import (
	"math"
	"testing"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/earthwork"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/wetted"
)

func estimate(p basin.Parameters) *Report {
	ew := earthwork.Compute(p)
	wa := wetted.Compute(p, ew.Perimeter)
	return Estimate(p, ew, wa)
}

func TestEstimateReferenceBasin(t *testing.T) {
	s := estimate(basin.Defaults()).Summary

	if s.LandCost != 960_000 {
		t.Errorf("land = $%.0f, want $960,000", s.LandCost)
	}
	if s.PipelineCost != 528_000 {
		t.Errorf("pipeline = $%.0f, want $528,000", s.PipelineCost)
	}
	if s.FencingCost != 0 {
		t.Errorf("fencing = $%.0f, want $0", s.FencingCost)
	}
	if math.Abs(s.Subtotal-1_639_413.33) > 0.01 {
		t.Errorf("subtotal = $%.2f, want ~$1,639,413.33", s.Subtotal)
	}
	if math.Abs(s.EngineeringCost-s.Subtotal*0.2) > 1e-6 {
		t.Errorf("engineering = $%.2f, want 20%% of subtotal", s.EngineeringCost)
	}
	if math.Abs(s.TotalCostEstimate-1_967_296) > 0.01 {
		t.Errorf("total = $%.2f, want ~$1,967,296", s.TotalCostEstimate)
	}
	if math.Abs(s.AnnualCapitalPayment-254_773.83) > 0.01 {
		t.Errorf("annual payment = $%.2f, want ~$254,773.83", s.AnnualCapitalPayment)
	}
	if math.Abs(s.NetRecharge-2360.908) > 0.001 {
		t.Errorf("net recharge = %.3f AF, want ~2360.908", s.NetRecharge)
	}
	if math.Abs(s.AnnualCapitalCostPerAF-107.913) > 0.001 {
		t.Errorf("capital per AF = $%.3f, want ~$107.913", s.AnnualCapitalCostPerAF)
	}
	if math.Abs(s.NetBenefitPerAF-52.087) > 0.001 {
		t.Errorf("net benefit per AF = $%.3f, want ~$52.087", s.NetBenefitPerAF)
	}
	if math.Abs(s.FillRateCFS-70.975) > 0.001 {
		t.Errorf("fill rate = %.3f cfs, want ~70.975", s.FillRateCFS)
	}
}

func TestOutputsRowOrder(t *testing.T) {
	items := Outputs(basin.Defaults(), earthwork.Result{}, wetted.Result{})
	want := []string{
		LabelLand, LabelEarthwork, LabelPipelineInlets, LabelPipeline, LabelFencing,
		LabelSubtotal, "Engineering and Contingency (20%)", LabelTotal,
		LabelCapitalPayment, LabelRechargeDepth, LabelNetRecharge,
		LabelCapitalCostPerAF, LabelWaterPurchase, LabelOM, LabelTotalCostPerAF,
		LabelNetBenefitPerAF, LabelRechargeFlow, LabelFillRate,
	}
	if len(items) != len(want) {
		t.Fatalf("rows = %d, want %d", len(items), len(want))
	}
	for i, label := range want {
		if items[i].Label != label {
			t.Errorf("row %d = %q, want %q", i, items[i].Label, label)
		}
	}
}

func TestNullCells(t *testing.T) {
	items := estimate(basin.Defaults()).Items

	sub := items[5]
	if sub.Quantity != nil || sub.UnitCost != nil || sub.Cost == nil || sub.CostPerAcre == nil {
		t.Errorf("subtotal row cells: %+v", sub)
	}
	pay := items[8]
	if pay.Cost != nil || pay.CostPerAcre != nil || pay.UnitCost == nil {
		t.Errorf("annual payment row cells: %+v", pay)
	}
	fencing := items[4]
	if fencing.Quantity == nil || *fencing.Quantity != 0 {
		t.Error("fencing quantity should be a present zero, not null")
	}
}

func TestZeroPondAreaAndLandCost(t *testing.T) {
	p := basin.Defaults()
	p.AcPond = 0
	p.LandCostPerAcre = 0
	r := estimate(p)

	for _, item := range r.Items {
		for _, v := range []*float64{item.Quantity, item.UnitCost, item.Cost, item.CostPerAcre} {
			if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
				t.Errorf("%s has non-finite value %v", item.Label, *v)
			}
		}
	}
	if *r.Items[1].CostPerAcre != 0 {
		t.Errorf("earthwork per acre with zero acres = %v, want 0", *r.Items[1].CostPerAcre)
	}
}

func TestZeroRechargeGuard(t *testing.T) {
	p := basin.Defaults()
	p.NumWetMonths = 0
	s := estimate(p).Summary
	if s.NetRecharge != 0 {
		t.Errorf("net recharge = %v, want 0", s.NetRecharge)
	}
	if s.AnnualCapitalCostPerAF != 0 {
		t.Errorf("capital per AF = %v, want 0 sentinel", s.AnnualCapitalCostPerAF)
	}
	if s.TotalAnnualCostPerAF != p.CostRechargeWater+p.CostOM {
		t.Errorf("total per AF = %v, want water + O&M", s.TotalAnnualCostPerAF)
	}
}

func TestZeroLoanLength(t *testing.T) {
	p := basin.Defaults()
	p.LoanLength = 0
	s := estimate(p).Summary
	if s.AnnualCapitalPayment != 0 {
		t.Errorf("payment with no loan term = %v, want 0", s.AnnualCapitalPayment)
	}
}
