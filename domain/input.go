package domain

import "math"

type Mode string

const (
	ModeBalanced     Mode = "balanced"
	ModeConservative Mode = "conservative"
)

const (
	DefaultTermYears    = 30.0
	MaxTermYears        = 50.0 // 600 monthly payments
	MaxAnnualRatePct    = 100.0
	MaxMoney            = 1e12 // cap for every money field
	MaxIncomeDropPct    = 100.0
	MaxRateHikePct      = 20.0
	MinMonthsUnemployed = 1
	MaxMonthsUnemployed = 12
)

// ParseMode maps free text onto a Mode. Anything other than
// "conservative" is treated as balanced.
func ParseMode(raw string) Mode {
	if Mode(raw) == ModeConservative {
		return ModeConservative
	}
	return ModeBalanced
}

// InputState is the flat household record the pipeline runs on.
type InputState struct {
	LoanAmount    float64 `json:"loanAmount"`
	AnnualRatePct float64 `json:"annualRatePct"`
	TermYears     float64 `json:"termYears"`

	TaxesMonthly     float64 `json:"taxesMonthly"`
	InsuranceMonthly float64 `json:"insuranceMonthly"`
	HOAMonthly       float64 `json:"hoaMonthly"`

	NetIncomeMonthly     float64 `json:"netIncomeMonthly"`
	OtherExpensesMonthly float64 `json:"otherExpensesMonthly"`
	Savings              float64 `json:"savings"`

	IncomeDropPct       float64 `json:"incomeDropPct"`
	RateHikePct         float64 `json:"rateHikePct"`
	EmergencyCost       float64 `json:"emergencyCost"`
	MonthsUnemployed    int     `json:"monthsUnemployed"`
	ExpenseSpikeMonthly float64 `json:"expenseSpikeMonthly"`

	Mode Mode `json:"mode"`
}

// ShockVector holds the stress dimensions applied on top of a baseline.
type ShockVector struct {
	RateHikePct         float64 `json:"rateHikePct"`
	IncomeDropPct       float64 `json:"incomeDropPct"`
	EmergencyCost       float64 `json:"emergencyCost"`
	ExpenseSpikeMonthly float64 `json:"expenseSpikeMonthly"`
	MonthsUnemployed    int     `json:"monthsUnemployed"`
}

// DefaultInputState returns the sample household used by the CLI.
func DefaultInputState() InputState {
	return InputState{
		LoanAmount:           350000,
		AnnualRatePct:        6.75,
		TermYears:            DefaultTermYears,
		TaxesMonthly:         450,
		InsuranceMonthly:     180,
		HOAMonthly:           0,
		NetIncomeMonthly:     6500,
		OtherExpensesMonthly: 2600,
		Savings:              15000,
		IncomeDropPct:        0,
		RateHikePct:          0,
		EmergencyCost:        0,
		MonthsUnemployed:     MinMonthsUnemployed,
		ExpenseSpikeMonthly:  0,
		Mode:                 ModeBalanced,
	}
}

// Normalize returns a copy that satisfies the pipeline's input domain:
// finite money in [0, MaxMoney], percent fields inside their ranges, a term
// in (0, MaxTermYears] and a known mode.
func (s InputState) Normalize() InputState {
	out := s

	out.LoanAmount = nonNegative(s.LoanAmount)
	out.AnnualRatePct = math.Min(MaxAnnualRatePct, nonNegative(s.AnnualRatePct))

	out.TermYears = finiteOrZero(s.TermYears)
	if out.TermYears <= 0 {
		out.TermYears = DefaultTermYears
	}
	out.TermYears = math.Min(MaxTermYears, out.TermYears)

	out.TaxesMonthly = nonNegative(s.TaxesMonthly)
	out.InsuranceMonthly = nonNegative(s.InsuranceMonthly)
	out.HOAMonthly = nonNegative(s.HOAMonthly)

	out.NetIncomeMonthly = nonNegative(s.NetIncomeMonthly)
	out.OtherExpensesMonthly = nonNegative(s.OtherExpensesMonthly)
	out.Savings = nonNegative(s.Savings)

	out.IncomeDropPct = clamp(finiteOrZero(s.IncomeDropPct), 0, MaxIncomeDropPct)
	out.RateHikePct = clamp(finiteOrZero(s.RateHikePct), 0, MaxRateHikePct)
	out.EmergencyCost = nonNegative(s.EmergencyCost)
	out.ExpenseSpikeMonthly = nonNegative(s.ExpenseSpikeMonthly)

	switch {
	case s.MonthsUnemployed < MinMonthsUnemployed:
		out.MonthsUnemployed = MinMonthsUnemployed
	case s.MonthsUnemployed > MaxMonthsUnemployed:
		out.MonthsUnemployed = MaxMonthsUnemployed
	}

	out.Mode = ParseMode(string(s.Mode))

	return out
}

// Shocks extracts the stress dimensions of the input.
func (s InputState) Shocks() ShockVector {
	return ShockVector{
		RateHikePct:         s.RateHikePct,
		IncomeDropPct:       s.IncomeDropPct,
		EmergencyCost:       s.EmergencyCost,
		ExpenseSpikeMonthly: s.ExpenseSpikeMonthly,
		MonthsUnemployed:    s.MonthsUnemployed,
	}
}

// EscrowMonthly is taxes + insurance + HOA.
func (s InputState) EscrowMonthly() float64 {
	return s.TaxesMonthly + s.InsuranceMonthly + s.HOAMonthly
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// nonNegative maps a money field into [0, MaxMoney].
func nonNegative(v float64) float64 {
	return clamp(finiteOrZero(v), 0, MaxMoney)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
