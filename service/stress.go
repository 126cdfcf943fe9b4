package service

import (
	"math"

	"mortgage-risk/domain"
)

// Stress applies a shock vector to the baseline. Scoring and advice read
// their inputs from the result rather than recomputing them.
func Stress(b domain.BaselineBudget, v domain.ShockVector) domain.StressResult {
	rate := b.AnnualRatePct + v.RateHikePct
	payment := MonthlyPayment(b.LoanAmount, rate, b.TermYears)
	housing := payment + b.EscrowMonthly()
	income := stressedIncome(b.NetIncomeMonthly, v.IncomeDropPct)
	expenses := stressedExpenses(b.OtherExpensesMonthly, v.ExpenseSpikeMonthly)
	margin := income - housing - expenses
	savings := math.Max(0, b.Savings-math.Max(0, v.EmergencyCost))

	runway := runwayFor(savings, margin)

	return domain.StressResult{
		StressedRatePct:       rate,
		StressedPayment:       payment,
		StressedIncome:        income,
		StressedHousing:       housing,
		StressedExpenses:      expenses,
		StressedMargin:        margin,
		SavingsAfterEmergency: savings,
		Runway:                runway,
		CappedRunway:          runway.Cap(max(domain.MinMonthsUnemployed, v.MonthsUnemployed)),
		HousingToIncomeRatio:  housing / math.Max(1, income),
	}
}

func runwayFor(savings, margin float64) domain.Runway {
	if margin >= 0 {
		return domain.StableRunway()
	}
	burn := math.Max(1, math.Abs(margin))
	return domain.RunwayOf(int(math.Floor(savings / burn)))
}
