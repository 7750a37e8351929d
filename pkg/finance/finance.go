// Package finance holds the annuity and per-acre-foot water economics used
// by the cost table and the return-on-investment schedule.
package finance

import (
	"math"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/units"
)

// Fixed recharge assumptions.
const (
	DaysPerMonth           = 30.0
	EvaporationLossPercent = 30.0 // share of applied water lost, not recharged
	FillRateMultiplier     = 1.5  // 54" inlet pipe sized at 1.5x the recharge flow
)

// PMT is the spreadsheet annuity payment for principal pv over nper periods
// at a periodic rate. At a zero rate it returns -pv/nper, the spreadsheet's
// sign convention; with no periods there is no payment.
func PMT(rate float64, nper int, pv float64) float64 {
	if nper <= 0 {
		return 0
	}
	n := float64(nper)
	if rate == 0 {
		return -(pv / n)
	}
	// 1 - (1+rate)^-n, without cancellation for tiny rates.
	denom := -math.Expm1(-n * math.Log1p(rate))
	if denom == 0 {
		return pv / n
	}
	return rate * pv / denom
}

// AnnualCapitalPayment amortizes the capital cost at an annual rate given in
// percent. The result is a positive yearly payment for a positive principal.
// At 0 % this differs from the spreadsheet, whose PMT row shows -pv/n.
func AnnualCapitalPayment(annualRatePct float64, years int, principal float64) float64 {
	pay := PMT(annualRatePct/100, years, principal)
	if annualRatePct == 0 {
		return -pay
	}
	return pay
}

// AvgAnnualRechargeDepth is the daily recharge volume over the wetted floor
// in acre-feet per day.
func AvgAnnualRechargeDepth(infiltrationRate, wettedAcres float64) float64 {
	return infiltrationRate * wettedAcres
}

// NetRecharge is the yearly recharged volume in acre-feet: daily recharge over
// the wet months, scaled by the wet-year frequency, less evaporation.
func NetRecharge(avgDepth, wetMonths, wetYearFreqPct, evapLossPct float64) float64 {
	return avgDepth * DaysPerMonth * wetMonths * (wetYearFreqPct / 100) * (1 - evapLossPct/100)
}

// AnnualCapitalCostPerAF spreads the capital payment over the recharged
// volume. Without recharge there is no per-AF cost and 0 is returned.
func AnnualCapitalCostPerAF(annualPayment, netRecharge float64) float64 {
	if netRecharge <= 0 {
		return 0
	}
	return annualPayment / netRecharge
}

func TotalAnnualCostPerAF(capitalPerAF, rechargeWaterCost, omCost float64) float64 {
	return capitalPerAF + rechargeWaterCost + omCost
}

func NetBenefitPerAF(storedWaterValue, totalCostPerAF float64) float64 {
	return storedWaterValue - totalCostPerAF
}

// RechargeFlowCFS converts daily recharge in acre-feet to cubic feet per second.
func RechargeFlowCFS(avgDepth float64) float64 {
	return avgDepth / units.AcreFeetPerDayPerCFS
}

// FillRate is the inlet flow needed to fill the basin through a 54" pipe.
func FillRate(rechargeFlowCFS float64) float64 {
	return rechargeFlowCFS * FillRateMultiplier
}
