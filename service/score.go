package service

import (
	"math"

	"mortgage-risk/domain"
)

// ScoreWeights blends the four sub-scores. Each set sums to 1.
type ScoreWeights struct {
	Runway     float64
	Margin     float64
	Pressure   float64
	Breakpoint float64
}

var (
	// conservative favors the cash buffer
	conservativeWeights = ScoreWeights{Runway: 0.40, Margin: 0.30, Pressure: 0.15, Breakpoint: 0.15}
	// balanced favors structural affordability
	balancedWeights = ScoreWeights{Runway: 0.25, Margin: 0.20, Pressure: 0.30, Breakpoint: 0.25}
)

func WeightsFor(mode domain.Mode) ScoreWeights {
	switch mode {
	case domain.ModeConservative:
		return conservativeWeights
	default:
		return balancedWeights
	}
}

var explanations = map[domain.Label]string{
	domain.LabelStrong:     "Strong buffer under stress with good runway and low sensitivity.",
	domain.LabelGood:       "Generally safe, but verify your most likely stress scenario.",
	domain.LabelBorderline: "A small shock can flip your margin negative. Increase runway or reduce burn.",
	domain.LabelHighRisk:   "High sensitivity to shocks. Reduce housing pressure or build a larger buffer.",
}

const highBaselineNote = "Baseline housing-to-income is high, so you're starting near the edge."

// Score combines the stress outcome and breakpoints into a 0-100 resilience
// score and label.
func Score(
	b domain.BaselineBudget,
	st domain.StressResult,
	bp domain.Breakpoints,
	mode domain.Mode,
) domain.ScoreResult {

	runway := runwayScore(st.Runway)
	margin := marginScore(st.StressedMargin, b.NetIncomeMonthly)
	pressure := pressureScore(st.HousingToIncomeRatio)
	breakpoint := breakpointScore(bp)

	w := WeightsFor(mode)
	total := runway*w.Runway +
		margin*w.Margin +
		pressure*w.Pressure +
		breakpoint*w.Breakpoint

	score := int(clamp(math.Round(total), 0, 100))
	label := LabelFor(score)

	explanation := explanations[label]
	if baselineHTI(b) > HighBaselineHTI {
		explanation += " " + highBaselineNote
	}

	return domain.ScoreResult{
		Score:       score,
		Label:       label,
		Explanation: explanation,
		Components: domain.ScoreComponents{
			Runway:     roundTo2Decimals(runway),
			Margin:     roundTo2Decimals(margin),
			Pressure:   roundTo2Decimals(pressure),
			Breakpoint: roundTo2Decimals(breakpoint),
		},
	}
}

// LabelFor maps a score onto its band: <40, 40-59, 60-79, >=80.
func LabelFor(score int) domain.Label {
	switch {
	case score >= StrongMinScore:
		return domain.LabelStrong
	case score >= GoodMinScore:
		return domain.LabelGood
	case score >= BorderlineMinScore:
		return domain.LabelBorderline
	default:
		return domain.LabelHighRisk
	}
}

func runwayScore(r domain.Runway) float64 {
	months, ok := r.MonthsLeft()
	if !ok {
		return 100
	}
	return clamp(float64(months)/RunwaySaturationMonths*100, 0, 100)
}

func marginScore(stressedMargin, netIncome float64) float64 {
	ratio := stressedMargin / math.Max(1, netIncome)
	return clamp((ratio+MarginRatioOffset)/MarginRatioSpan*100, 0, 100)
}

func pressureScore(hti float64) float64 {
	return clamp(100-(hti-PressureFloorRatio)/PressureSpan*100, 0, 100)
}

func breakpointScore(bp domain.Breakpoints) float64 {
	rate := breakpointPart(bp.RateHikePct, RateHikeTolerancePct)
	income := breakpointPart(bp.IncomeLossFraction, IncomeLossTolerance)
	return (rate + income) / 2
}

func breakpointPart(b domain.Breakpoint, tolerance float64) float64 {
	switch b.Kind {
	case domain.BreakpointAlreadyNegative:
		return 0
	case domain.BreakpointBeyondRange:
		return 100
	default:
		return clamp(b.Value/tolerance*100, 0, 100)
	}
}

func baselineHTI(b domain.BaselineBudget) float64 {
	return b.TotalHousingMonthly / math.Max(1, b.NetIncomeMonthly)
}

// clamp maps NaN to lo so a score can never leave [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}
