package service

import "math"

// roundTo2Decimals rounds to cents.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// MonthlyPayment returns the fixed principal-and-interest payment for a
// loan. A non-positive rate amortizes straight-line; a non-positive loan
// costs nothing.
func MonthlyPayment(loanAmount, annualRatePct, termYears float64) float64 {
	if loanAmount <= 0 {
		return 0
	}

	n := math.Max(1, math.Round(termYears*12))
	r := (annualRatePct / 100) / 12

	if r <= 0 {
		return loanAmount / n
	}

	pow := math.Pow(1+r, n)
	if math.IsInf(pow, 1) {
		// limit of the annuity as n grows: interest only
		return loanAmount * r
	}
	return loanAmount * (r * pow) / (pow - 1)
}
