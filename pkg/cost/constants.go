package cost

// Unit costs for basin construction. These are fixed engine values, not
// user inputs.
const (
	PipelineInletCost   = 20000.0 // $ flat, one inlet structure
	PipelineCostPerFt   = 200.0   // $/ft of 30" pipeline
	FencingCostPerFt    = 6.0     // $/ft
	FencingLengthFt     = 0.0     // fencing is not yet an input
	EngineeringFraction = 0.2     // engineering and contingency share of subtotal
)
