package credit

import "github.com/shopspring/decimal"

// limitUnit is the granularity of approved limits (one lakh).
const limitUnit = 100000

// limitMultiplier is how many months of income a customer may borrow.
const limitMultiplier = 36

// ApprovedLimit returns 36 x monthly income rounded to the nearest 100,000.
// Halves round to even, the way the ledger this service replaced did.
func ApprovedLimit(monthlyIncome float64) float64 {
	unit := decimal.NewFromInt(limitUnit)
	units := decimal.NewFromFloat(monthlyIncome).
		Mul(decimal.NewFromInt(limitMultiplier)).
		Div(unit).
		RoundBank(0)
	v, _ := units.Mul(unit).Float64()
	return v
}

// Round2 rounds a money or score value to two decimal places.
func Round2(v float64) float64 {
	r, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return r
}
