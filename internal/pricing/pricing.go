// Package pricing computes the client-side price of a customized garment.
package pricing

// Fabric surcharges in whole currency units. Unknown or unset fabrics add
// nothing.
var fabricSurcharge = map[string]float64{
	"Silk":           50,
	"Satin":          50,
	"Premium Cotton": 20,
}

// Surcharge returns the fabric surcharge for the given selection.
func Surcharge(fabric string) float64 {
	return fabricSurcharge[fabric]
}

// Final returns base price plus fabric surcharge. It must be recomputed
// whenever the fabric selection changes, both for display and before the
// line item is submitted to the cart.
func Final(basePrice float64, fabric string) float64 {
	return basePrice + Surcharge(fabric)
}
