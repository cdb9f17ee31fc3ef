package credit

import "math"

// MonthlyInstallment is the equated monthly installment for an amortizing
// loan: P*r*(1+r)^n / ((1+r)^n - 1) with r = annualRate/12/100. A zero rate
// falls back to straight-line P/n. Result is rounded to 2 decimals.
func MonthlyInstallment(principal, annualRate float64, tenure int) float64 {
	if tenure <= 0 {
		return 0
	}
	n := float64(tenure)
	r := annualRate / 12 / 100
	if r == 0 {
		return Round2(principal / n)
	}
	f := math.Pow(1+r, n)
	return Round2(principal * r * f / (f - 1))
}
