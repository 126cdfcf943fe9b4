package service

import (
	"math"

	"mortgage-risk/domain"
)

// Baseline derives the steady-state housing cost and monthly margin.
func Baseline(s domain.InputState) domain.BaselineBudget {
	payment := MonthlyPayment(s.LoanAmount, s.AnnualRatePct, s.TermYears)
	housing := payment + s.EscrowMonthly()

	return domain.BaselineBudget{
		InputState:          s,
		MonthlyPayment:      payment,
		TotalHousingMonthly: housing,
		MarginMonthly:       s.NetIncomeMonthly - housing - s.OtherExpensesMonthly,
	}
}

// marginAt is the budget formula shared by the stress engine and the
// breakpoint solver.
func marginAt(b domain.BaselineBudget, annualRatePct, income, expenses float64) float64 {
	return income - housingAt(b, annualRatePct) - expenses
}

func housingAt(b domain.BaselineBudget, annualRatePct float64) float64 {
	return MonthlyPayment(b.LoanAmount, annualRatePct, b.TermYears) + b.EscrowMonthly()
}

func stressedIncome(netIncome, dropPct float64) float64 {
	return math.Max(0, netIncome*(1-dropPct/100))
}

func stressedExpenses(other, spike float64) float64 {
	return math.Max(0, other+spike)
}
