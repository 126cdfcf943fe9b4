package service

import (
	"fmt"

	"mortgage-risk/domain"
	"mortgage-risk/report"
)

// SuggestActions runs the fixed rule cascade: runway, payment pressure,
// savings buffer. Each rule contributes exactly one action.
func SuggestActions(b domain.BaselineBudget, st domain.StressResult) []domain.Action {
	return []domain.Action{
		runwayAction(st),
		pressureAction(st),
		bufferAction(b),
	}
}

func runwayAction(st domain.StressResult) domain.Action {
	months, ok := st.Runway.MonthsLeft()

	switch {
	case ok && months < UrgentRunwayMonths:
		return domain.Action{
			Title: "Increase runway fast",
			Body: fmt.Sprintf(
				"You're burning about %s/mo under stress. Push runway above %d months with savings + expense cuts.",
				report.Money(st.MonthlyBurn()), TargetRunwayMonths,
			),
		}
	case ok && months < TargetRunwayMonths:
		return domain.Action{
			Title: "Target 6-month resilience",
			Body:  "Aim for ~6 months runway. Small monthly reductions extend survival quickly.",
		}
	default:
		return domain.Action{
			Title: "Maintain the buffer",
			Body:  "You're relatively stable under this scenario. Protect savings and avoid lifestyle creep.",
		}
	}
}

func pressureAction(st domain.StressResult) domain.Action {
	if st.HousingToIncomeRatio > HighStressHTI {
		return domain.Action{
			Title: "Lower payment pressure",
			Body:  "Housing consumes a big share of stressed income. Consider principal strategy, refi plan, or downsizing options.",
		}
	}
	return domain.Action{
		Title: "Protect income",
		Body:  "Income continuity is your best lever: keep a job-search plan and preserve cash flexibility.",
	}
}

func bufferAction(b domain.BaselineBudget) domain.Action {
	if b.Savings < EmergencyFundMonths*b.TotalHousingMonthly {
		return domain.Action{
			Title: "Build a homeowner emergency fund",
			Body:  "Consider 3-6 months of total spending plus a repair buffer for deductible/HVAC surprises.",
		}
	}
	return domain.Action{
		Title: "Split savings",
		Body:  "Separate runway savings from a repair buffer to avoid draining core emergency funds.",
	}
}
