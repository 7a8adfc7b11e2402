package nscp

import "math"

// NSCP 2015 Material Constants

const (
	// Modulus of elasticity for steel (Section 420.2.2)
	Es = 200000.0 // MPa

	// Unit weights (Section 204, minimum design dead loads)
	ConcreteUnitWeight = 23.6 // kN/m³, normal-weight concrete
	SteelUnitWeight    = 77.0 // kN/m³

	// Densities for mass matrices
	ConcreteDensity = 2400.0 // kg/m³
	SteelDensity    = 7850.0 // kg/m³
)

// ConcreteModulus returns Ec = 4700√f'c for normal-weight concrete
// NSCP 2015 Section 419.2.2.1
func ConcreteModulus(fc float64) float64 {
	if fc <= 0 {
		return 0
	}
	return 4700 * math.Sqrt(fc)
}
