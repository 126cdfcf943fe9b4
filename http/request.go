package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"mortgage-risk/domain"
)

// AnalyzeRequest is the body of the analyze and summary endpoints. Omitted
// fields fall back to the sample household; a preset is applied before the
// explicit shock fields, so explicit values win.
type AnalyzeRequest struct {
	LoanAmount    *float64 `json:"loanAmount" validate:"omitempty,gte=0,lte=1000000000"`
	AnnualRatePct *float64 `json:"annualRatePct" validate:"omitempty,gte=0,lte=100"`
	TermYears     *float64 `json:"termYears" validate:"omitempty,gt=0,lte=50"`

	TaxesMonthly     *float64 `json:"taxesMonthly" validate:"omitempty,gte=0,lte=1000000000"`
	InsuranceMonthly *float64 `json:"insuranceMonthly" validate:"omitempty,gte=0,lte=1000000000"`
	HOAMonthly       *float64 `json:"hoaMonthly" validate:"omitempty,gte=0,lte=1000000000"`

	NetIncomeMonthly     *float64 `json:"netIncomeMonthly" validate:"omitempty,gte=0,lte=1000000000"`
	OtherExpensesMonthly *float64 `json:"otherExpensesMonthly" validate:"omitempty,gte=0,lte=1000000000"`
	Savings              *float64 `json:"savings" validate:"omitempty,gte=0,lte=1000000000"`

	IncomeDropPct       *float64 `json:"incomeDropPct" validate:"omitempty,gte=0,lte=100"`
	RateHikePct         *float64 `json:"rateHikePct" validate:"omitempty,gte=0,lte=20"`
	EmergencyCost       *float64 `json:"emergencyCost" validate:"omitempty,gte=0,lte=1000000000"`
	MonthsUnemployed    *int     `json:"monthsUnemployed" validate:"omitempty,gte=1,lte=12"`
	ExpenseSpikeMonthly *float64 `json:"expenseSpikeMonthly" validate:"omitempty,gte=0,lte=1000000000"`

	Mode   string `json:"mode" validate:"omitempty,oneof=balanced conservative"`
	Preset string `json:"preset"`
}

// FieldError names one rejected request field and the rule it broke.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate returns the offending fields, or nil when the request is valid.
func (r *AnalyzeRequest) Validate() []FieldError {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Rule: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}

// ToInputState builds the pipeline input. defaultMode is used when the
// request names none.
func (r *AnalyzeRequest) ToInputState(defaultMode domain.Mode) (domain.InputState, error) {
	s := domain.DefaultInputState()
	s.Mode = defaultMode

	if r.Preset != "" {
		var err error
		if s, err = domain.ApplyPreset(s, r.Preset); err != nil {
			return domain.InputState{}, err
		}
	}

	setFloat(&s.LoanAmount, r.LoanAmount)
	setFloat(&s.AnnualRatePct, r.AnnualRatePct)
	setFloat(&s.TermYears, r.TermYears)
	setFloat(&s.TaxesMonthly, r.TaxesMonthly)
	setFloat(&s.InsuranceMonthly, r.InsuranceMonthly)
	setFloat(&s.HOAMonthly, r.HOAMonthly)
	setFloat(&s.NetIncomeMonthly, r.NetIncomeMonthly)
	setFloat(&s.OtherExpensesMonthly, r.OtherExpensesMonthly)
	setFloat(&s.Savings, r.Savings)
	setFloat(&s.IncomeDropPct, r.IncomeDropPct)
	setFloat(&s.RateHikePct, r.RateHikePct)
	setFloat(&s.EmergencyCost, r.EmergencyCost)
	setFloat(&s.ExpenseSpikeMonthly, r.ExpenseSpikeMonthly)
	if r.MonthsUnemployed != nil {
		s.MonthsUnemployed = *r.MonthsUnemployed
	}
	if r.Mode != "" {
		s.Mode = domain.ParseMode(r.Mode)
	}

	return s, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
