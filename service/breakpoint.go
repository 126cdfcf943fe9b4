package service

import (
	"math"

	"mortgage-risk/domain"
)

var (
	rateHikeSteps   = int(math.Round(MaxRateHikeScanPct / RateHikeStepPct))
	incomeLossSteps = int(math.Round(MaxIncomeLossScanPct / IncomeLossStepPct))
)

// FindBreakpoints searches, one shock dimension at a time, for the smallest
// magnitude that turns the stressed margin negative. Both margin functions
// are non-increasing in the scanned magnitude, so the first negative probe
// is the crossing, accurate to one step.
func FindBreakpoints(b domain.BaselineBudget, v domain.ShockVector) domain.Breakpoints {
	return domain.Breakpoints{
		RateHikePct:        rateHikeBreakpoint(b, v),
		IncomeLossFraction: incomeLossBreakpoint(b, v),
	}
}

// rateHikeBreakpoint holds the income drop and expense spike fixed.
func rateHikeBreakpoint(b domain.BaselineBudget, v domain.ShockVector) domain.Breakpoint {
	income := stressedIncome(b.NetIncomeMonthly, v.IncomeDropPct)
	expenses := stressedExpenses(b.OtherExpensesMonthly, v.ExpenseSpikeMonthly)

	bp := firstNegative(func(hike float64) float64 {
		return marginAt(b, b.AnnualRatePct+hike, income, expenses)
	}, RateHikeStepPct, rateHikeSteps)

	if hike, ok := bp.At(); ok {
		return domain.BreakpointAt(roundTo2Decimals(hike))
	}
	return bp
}

// incomeLossBreakpoint holds the rate hike and expense spike fixed and
// reports the loss as a fraction of net income.
func incomeLossBreakpoint(b domain.BaselineBudget, v domain.ShockVector) domain.Breakpoint {
	rate := b.AnnualRatePct + v.RateHikePct
	expenses := stressedExpenses(b.OtherExpensesMonthly, v.ExpenseSpikeMonthly)

	bp := firstNegative(func(lossPct float64) float64 {
		return marginAt(b, rate, stressedIncome(b.NetIncomeMonthly, lossPct), expenses)
	}, IncomeLossStepPct, incomeLossSteps)

	if lossPct, ok := bp.At(); ok {
		return domain.BreakpointAt(roundTo2Decimals(lossPct / 100))
	}
	return bp
}

// firstNegative probes margin at i*step for i in [0, steps]. The magnitude
// is derived from the index so probes never accumulate float error.
func firstNegative(margin func(float64) float64, step float64, steps int) domain.Breakpoint {
	if margin(0) < 0 {
		return domain.AlreadyNegative()
	}
	for i := 1; i <= steps; i++ {
		x := float64(i) * step
		if margin(x) < 0 {
			return domain.BreakpointAt(x)
		}
	}
	return domain.BeyondRange()
}
