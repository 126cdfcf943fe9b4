package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownPreset = errors.New("unknown preset")

// ShockPatch overrides a subset of the shock fields. Nil fields are left
// untouched.
type ShockPatch struct {
	IncomeDropPct       *float64 `json:"incomeDropPct,omitempty"`
	RateHikePct         *float64 `json:"rateHikePct,omitempty"`
	EmergencyCost       *float64 `json:"emergencyCost,omitempty"`
	MonthsUnemployed    *int     `json:"monthsUnemployed,omitempty"`
	ExpenseSpikeMonthly *float64 `json:"expenseSpikeMonthly,omitempty"`
}

type Preset struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Patch ShockPatch `json:"patch"`
}

var presets = []Preset{
	{
		ID:    "laid_off_4mo",
		Title: "Laid off (4 months)",
		Patch: ShockPatch{
			MonthsUnemployed:    intPtr(4),
			IncomeDropPct:       floatPtr(60),
			EmergencyCost:       floatPtr(1500),
			RateHikePct:         floatPtr(0),
			ExpenseSpikeMonthly: floatPtr(0),
		},
	},
	{
		ID:    "partner_income_gone",
		Title: "Partner income gone",
		Patch: ShockPatch{
			MonthsUnemployed:    intPtr(6),
			IncomeDropPct:       floatPtr(50),
			EmergencyCost:       floatPtr(0),
			RateHikePct:         floatPtr(0),
			ExpenseSpikeMonthly: floatPtr(0),
		},
	},
	{
		ID:    "escrow_shock",
		Title: "Escrow shock (+$300/mo)",
		Patch: ShockPatch{ExpenseSpikeMonthly: floatPtr(300)},
	},
	{
		ID:    "hvac_9000",
		Title: "HVAC ($9,000)",
		Patch: ShockPatch{EmergencyCost: floatPtr(9000)},
	},
	{
		ID:    "rate_hike_2",
		Title: "Rates +2%",
		Patch: ShockPatch{RateHikePct: floatPtr(2)},
	},
}

// Presets returns the built-in shock scenarios in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

func FindPreset(id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// ApplyPreset patches the shock fields named by the preset.
func ApplyPreset(s InputState, id string) (InputState, error) {
	p, ok := FindPreset(id)
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
	}
	return p.Patch.Apply(s), nil
}

func (p ShockPatch) Apply(s InputState) InputState {
	if p.IncomeDropPct != nil {
		s.IncomeDropPct = *p.IncomeDropPct
	}
	if p.RateHikePct != nil {
		s.RateHikePct = *p.RateHikePct
	}
	if p.EmergencyCost != nil {
		s.EmergencyCost = *p.EmergencyCost
	}
	if p.MonthsUnemployed != nil {
		s.MonthsUnemployed = *p.MonthsUnemployed
	}
	if p.ExpenseSpikeMonthly != nil {
		s.ExpenseSpikeMonthly = *p.ExpenseSpikeMonthly
	}
	return s
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
