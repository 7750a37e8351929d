package roi

import "math"

// Newton-Raphson settings for the IRR solver.
const (
	DefaultMaxIterations = 1000
	DefaultTolerance     = 1e-6
	DefaultGuess         = 0.05
)

// Solver finds the internal rate of return by Newton-Raphson iteration.
type Solver struct {
	MaxIterations int
	Tolerance     float64
}

// DefaultSolver uses 1000 iterations and a 1e-6 step tolerance.
var DefaultSolver = Solver{MaxIterations: DefaultMaxIterations, Tolerance: DefaultTolerance}

// IRR solves Σ flows[j]/(1+r)^j = 0 for r starting from guess. flows[0] is
// undiscounted. It returns NaN when the iteration does not converge, the
// derivative vanishes, or there are fewer than two flows.
func (s Solver) IRR(flows []float64, guess float64) float64 {
	if len(flows) < 2 {
		return math.NaN()
	}

	rate := guess
	for i := 0; i < s.MaxIterations; i++ {
		var npv, dNPV float64
		for j, cf := range flows {
			npv += cf / math.Pow(1+rate, float64(j))
			if j > 0 {
				dNPV -= float64(j) * cf / math.Pow(1+rate, float64(j+1))
			}
		}
		if dNPV == 0 {
			return math.NaN()
		}

		next := rate - npv/dNPV
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return math.NaN()
		}
		if math.Abs(next-rate) < s.Tolerance {
			return next
		}
		rate = next
	}
	return math.NaN()
}

// IRR solves with the default solver.
func IRR(flows []float64, guess float64) float64 {
	return DefaultSolver.IRR(flows, guess)
}

// ProjectIRR solves the series [initialCost, net, net, ...] of length
// loanLength: the year-0 flow followed by loanLength-1 annual net benefits.
// initialCost is the signed year-0 flow, negative for an outlay.
func ProjectIRR(loanLength int, initialCost, annualNetBenefit, guess float64) float64 {
	if loanLength < 2 {
		return math.NaN()
	}
	flows := append([]float64{initialCost}, repeat(annualNetBenefit, loanLength-1)...)
	return IRR(flows, guess)
}
