// Package units holds the fixed physical conversion factors shared by the
// earthwork, wetted-area, and financial calculations. They are engine
// constants, not configuration.
package units

const (
	CubicFeetPerCubicYard   = 27.0   // ft³ per yd³
	SquareFeetPerSquareYard = 9.0    // ft² per yd²
	SquareYardsPerAcre      = 4840.0 // yd² per acre
	AcresPerSquareMile      = 640.0
	SquareFeetPerAcre       = SquareFeetPerSquareYard * SquareYardsPerAcre

	// AcreFeetPerDayPerCFS converts a daily volume in acre-feet to a steady
	// flow in cubic feet per second (1 cfs for a day ≈ 1.98 AF).
	AcreFeetPerDayPerCFS = 1.98
)
