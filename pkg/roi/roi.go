// Package roi builds the year-by-year cash-flow schedule of a basin
// investment and evaluates it with net present value and internal rate of
// return.
package roi

import (
	"encoding/json"
	"math"
)

// CashFlowRow is one year of the schedule. Costs are negative, benefits
// non-negative.
type CashFlowRow struct {
	Year       int     `json:"year"`
	Costs      float64 `json:"costs"`
	Benefits   float64 `json:"benefits"`
	NetBenefit float64 `json:"net_benefit"`
}

// MaxYears caps every generated schedule. Longer horizons are cut to
// MaxYears annual flows.
const MaxYears = 1000

func horizon(n int) int {
	return min(max(n, 0), MaxYears)
}

// CashFlows builds the schedule for years 0..loanLength. Year 0 carries the
// (negative) initial cost; later years carry constant annual flows.
func CashFlows(loanLength int, initialCost, annualCost, annualBenefit float64) []CashFlowRow {
	n := horizon(loanLength)
	rows := make([]CashFlowRow, 0, n+1)
	rows = append(rows, CashFlowRow{Year: 0, Costs: initialCost, Benefits: 0, NetBenefit: initialCost})
	for year := 1; year <= n; year++ {
		rows = append(rows, CashFlowRow{
			Year:       year,
			Costs:      annualCost,
			Benefits:   annualBenefit,
			NetBenefit: annualBenefit + annualCost,
		})
	}
	return rows
}

// NPV discounts flows[i] by (1+rate)^(i+1): the first flow is one period out.
func NPV(rate float64, flows []float64) float64 {
	npv := 0.0
	for i, cf := range flows {
		npv += cf / math.Pow(1+rate, float64(i+1))
	}
	return npv
}

// ProjectNPV is the undiscounted year-0 cost plus n discounted annual flows.
func ProjectNPV(rate, initialCost, annual float64, n int) float64 {
	return initialCost + NPV(rate, repeat(annual, n))
}

// BenefitCostRatio is the discounted benefits over the negated cost NPV.
// A zero NPV gives +Inf.
func BenefitCostRatio(totalBenefits, npv float64) float64 {
	if npv == 0 {
		return math.Inf(1)
	}
	return totalBenefits / -npv
}

// Summary holds the discounted results of a schedule. Rates are percents.
// Non-finite values encode as JSON null.
type Summary struct {
	DiscountRate     float64 `json:"discount_rate"`
	Years            int     `json:"years"`
	NPV              float64 `json:"npv"`
	TotalBenefits    float64 `json:"total_benefits"`
	TotalNetBenefits float64 `json:"total_net_benefits"`
	BenefitCostRatio float64 `json:"benefit_cost_ratio"`
	IRR              float64 `json:"irr"`
}

// IRRComputable reports whether the solver converged.
func (s Summary) IRRComputable() bool {
	return !math.IsNaN(s.IRR)
}

func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DiscountRate     float64  `json:"discount_rate"`
		Years            int      `json:"years"`
		NPV              *float64 `json:"npv"`
		TotalBenefits    *float64 `json:"total_benefits"`
		TotalNetBenefits *float64 `json:"total_net_benefits"`
		BenefitCostRatio *float64 `json:"benefit_cost_ratio"`
		IRR              *float64 `json:"irr"`
	}{
		DiscountRate:     s.DiscountRate,
		Years:            s.Years,
		NPV:              finite(s.NPV),
		TotalBenefits:    finite(s.TotalBenefits),
		TotalNetBenefits: finite(s.TotalNetBenefits),
		BenefitCostRatio: finite(s.BenefitCostRatio),
		IRR:              finite(s.IRR),
	})
}

// Summarize evaluates a flat-annuity schedule at the given discount rate
// (percent). initialCost and annualCost are negative for outlays.
func Summarize(loanLength int, discountRatePct, initialCost, annualCost, annualBenefit float64) Summary {
	rate := discountRatePct / 100
	npv := ProjectNPV(rate, initialCost, annualCost, loanLength)
	benefits := ProjectNPV(rate, 0, annualBenefit, loanLength)
	annualNet := annualBenefit + annualCost

	return Summary{
		DiscountRate:     discountRatePct,
		Years:            loanLength,
		NPV:              npv,
		TotalBenefits:    benefits,
		TotalNetBenefits: ProjectNPV(rate, initialCost, annualNet, loanLength),
		BenefitCostRatio: BenefitCostRatio(benefits, npv),
		IRR:              ProjectIRR(loanLength, initialCost, annualNet, DefaultGuess) * 100,
	}
}

func repeat(v float64, n int) []float64 {
	n = horizon(n)
	if n == 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
