package domain

import "fmt"

type BaselineBudget struct {
	InputState
	MonthlyPayment      float64 `json:"monthlyPayment"`
	TotalHousingMonthly float64 `json:"totalHousingMonthly"`
	MarginMonthly       float64 `json:"marginMonthly"`
}

type RunwayKind string

const (
	RunwayStable RunwayKind = "stable"
	RunwayMonths RunwayKind = "months"
)

// Runway is either stable (the stressed budget does not burn cash) or a
// whole number of months the savings buffer lasts.
type Runway struct {
	Kind   RunwayKind `json:"kind"`
	Months int        `json:"months"`
}

func StableRunway() Runway {
	return Runway{Kind: RunwayStable}
}

func RunwayOf(months int) Runway {
	if months < 0 {
		months = 0
	}
	return Runway{Kind: RunwayMonths, Months: months}
}

func (r Runway) IsStable() bool {
	return r.Kind == RunwayStable
}

// MonthsLeft reports the months of runway; ok is false when stable.
func (r Runway) MonthsLeft() (months int, ok bool) {
	if r.IsStable() {
		return 0, false
	}
	return r.Months, true
}

// Cap limits a finite runway to limit months. Stable stays stable.
func (r Runway) Cap(limit int) Runway {
	if r.IsStable() || r.Months <= limit {
		return r
	}
	return RunwayOf(limit)
}

func (r Runway) String() string {
	if r.IsStable() {
		return "Stable"
	}
	if r.Months == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", r.Months)
}

type StressResult struct {
	StressedRatePct       float64 `json:"stressedRatePct"`
	StressedPayment       float64 `json:"stressedPayment"`
	StressedIncome        float64 `json:"stressedIncome"`
	StressedHousing       float64 `json:"stressedHousing"`
	StressedExpenses      float64 `json:"stressedExpenses"`
	StressedMargin        float64 `json:"stressedMargin"`
	SavingsAfterEmergency float64 `json:"savingsAfterEmergency"`
	Runway                Runway  `json:"runway"`
	// CappedRunway is Runway limited to the assumed months of unemployment.
	CappedRunway         Runway  `json:"cappedRunway"`
	HousingToIncomeRatio float64 `json:"housingToIncomeRatio"`
}

// MonthlyBurn is the cash drained per month under stress, 0 when stable.
func (st StressResult) MonthlyBurn() float64 {
	if st.StressedMargin >= 0 {
		return 0
	}
	return -st.StressedMargin
}

type BreakpointKind string

const (
	BreakpointFound           BreakpointKind = "found"
	BreakpointAlreadyNegative BreakpointKind = "already-negative"
	BreakpointBeyondRange     BreakpointKind = "beyond-range"
)

type Breakpoint struct {
	Kind  BreakpointKind `json:"kind"`
	Value float64        `json:"value"`
}

func BreakpointAt(v float64) Breakpoint {
	return Breakpoint{Kind: BreakpointFound, Value: v}
}

func AlreadyNegative() Breakpoint {
	return Breakpoint{Kind: BreakpointAlreadyNegative}
}

func BeyondRange() Breakpoint {
	return Breakpoint{Kind: BreakpointBeyondRange}
}

// At returns the shock magnitude; ok is false for the sentinel kinds.
func (b Breakpoint) At() (v float64, ok bool) {
	return b.Value, b.Kind == BreakpointFound
}

// Breakpoints holds the rate hike in percentage points and the income loss
// as a fraction of net income.
type Breakpoints struct {
	RateHikePct        Breakpoint `json:"rateHikePct"`
	IncomeLossFraction Breakpoint `json:"incomeLossFraction"`
}
