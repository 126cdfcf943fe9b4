package report

import (
	"fmt"
	"strings"

	"mortgage-risk/domain"
)

const footer = "Generated by mortgage-risk"

// Summary renders an analysis as the plain-text report meant for copying
// into notes, email or a message.
func Summary(a domain.Analysis) string {
	var lines []string
	add := func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	b, st, in := a.Baseline, a.Stress, a.Input

	add("Mortgage Risk Summary")
	add("")
	add("Overall score: %d (%s)", a.Score.Score, a.Score.Label)
	add("%s", a.Score.Explanation)
	add("")

	add("Baseline:")
	add("• Loan: %s", Money(b.LoanAmount))
	add("• Rate: %s", Percent(b.AnnualRatePct, 2))
	add("• Term: %s years", Years(b.TermYears))
	add("• P&I payment: %s", Money(b.MonthlyPayment))
	add("• Monthly housing: %s", Money(b.TotalHousingMonthly))
	add("• Monthly margin: %s", Money(b.MarginMonthly))
	add("")

	add("Stress scenario (%s):", in.Mode)
	add("• Rate hike: +%s", Percent(in.RateHikePct, 2))
	add("• Income drop: %s", Percent(in.IncomeDropPct, 0))
	add("• Emergency cost: %s", Money(in.EmergencyCost))
	add("• Expense spike: %s/mo", Money(in.ExpenseSpikeMonthly))
	add("• Stress housing: %s", Money(st.StressedHousing))
	add("• Stress margin: %s", Money(st.StressedMargin))
	add("• Housing pressure: %s", Ratio(st.HousingToIncomeRatio))
	add("• Savings after emergency: %s", Money(st.SavingsAfterEmergency))
	add("• Runway: %s", st.Runway)
	add("• Runway over %d months unemployed: %s", in.MonthsUnemployed, st.CappedRunway)
	add("")

	add("Breakpoints:")
	add("• Rate increase that breaks budget: %s", RateBreakpoint(a.Breakpoints.RateHikePct))
	add("• Income loss that breaks budget: %s", IncomeBreakpoint(a.Breakpoints.IncomeLossFraction))

	if len(a.Actions) > 0 {
		add("")
		add("Top actions:")
		for i, action := range a.Actions {
			add("%d. %s: %s", i+1, action.Title, action.Body)
		}
	}

	add("")
	add(footer)

	return strings.Join(lines, "\n")
}

func RateBreakpoint(b domain.Breakpoint) string {
	if v, ok := b.At(); ok {
		return "+" + Percent(v, 2)
	}
	return sentinel(b)
}

func IncomeBreakpoint(b domain.Breakpoint) string {
	if v, ok := b.At(); ok {
		return Ratio(v)
	}
	return sentinel(b)
}

func sentinel(b domain.Breakpoint) string {
	if b.Kind == domain.BreakpointAlreadyNegative {
		return "Already negative"
	}
	return "Not reached in scan range"
}
