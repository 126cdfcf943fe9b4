package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mortgage-risk/domain"
	"mortgage-risk/report"
	"mortgage-risk/service"
)

type analyzeOptions struct {
	input     domain.InputState
	mode      string
	preset    string
	inputFile string
	asJSON    bool
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{input: domain.DefaultInputState()}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the stress analysis and print the summary",
		Long: `Runs the full pipeline on one household. Values are resolved in order:
the sample household, then --input, then --preset, then any flag given
explicitly on the command line.`,
		Example: `  mortgage-risk analyze --income-drop 60
  mortgage-risk analyze --preset laid_off_4mo --mode conservative --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	in := &opts.input
	f := cmd.Flags()
	f.Float64Var(&in.LoanAmount, "loan", in.LoanAmount, "Loan amount")
	f.Float64Var(&in.AnnualRatePct, "rate", in.AnnualRatePct, "Annual interest rate in percent")
	f.Float64Var(&in.TermYears, "term", in.TermYears, "Loan term in years")
	f.Float64Var(&in.TaxesMonthly, "taxes", in.TaxesMonthly, "Property taxes per month")
	f.Float64Var(&in.InsuranceMonthly, "insurance", in.InsuranceMonthly, "Homeowner insurance per month")
	f.Float64Var(&in.HOAMonthly, "hoa", in.HOAMonthly, "HOA dues per month")
	f.Float64Var(&in.NetIncomeMonthly, "income", in.NetIncomeMonthly, "Net household income per month")
	f.Float64Var(&in.OtherExpensesMonthly, "expenses", in.OtherExpensesMonthly, "Other essential expenses per month")
	f.Float64Var(&in.Savings, "savings", in.Savings, "Liquid savings")
	f.Float64Var(&in.IncomeDropPct, "income-drop", in.IncomeDropPct, "Income drop in percent (0-100)")
	f.Float64Var(&in.RateHikePct, "rate-hike", in.RateHikePct, "Rate hike in percentage points (0-20)")
	f.Float64Var(&in.EmergencyCost, "emergency", in.EmergencyCost, "One-off emergency cost paid from savings")
	f.IntVar(&in.MonthsUnemployed, "months", in.MonthsUnemployed, "Assumed months of unemployment (1-12)")
	f.Float64Var(&in.ExpenseSpikeMonthly, "expense-spike", in.ExpenseSpikeMonthly, "Extra expenses per month")
	f.StringVar(&opts.mode, "mode", string(domain.ModeBalanced), "Scoring mode: balanced or conservative")
	f.StringVar(&opts.preset, "preset", "", "Apply a shock preset by id (list them with the presets command)")
	f.StringVar(&opts.inputFile, "input", "", "Read the household from a JSON file")
	f.BoolVar(&opts.asJSON, "json", false, "Print the full analysis as JSON")

	return cmd
}

// shockFlags can be overridden by a preset unless given explicitly.
var shockFlags = []string{"income-drop", "rate-hike", "emergency", "months", "expense-spike"}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	input, err := resolveInput(cmd, opts)
	if err != nil {
		return err
	}

	a := service.Analyze(input)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}

	_, err = fmt.Fprintln(out, report.Summary(a))
	return err
}

func resolveInput(cmd *cobra.Command, opts *analyzeOptions) (domain.InputState, error) {
	flags := cmd.Flags()
	s := opts.input

	if opts.inputFile != "" {
		fromFile, err := readInputFile(opts.inputFile)
		if err != nil {
			return domain.InputState{}, err
		}
		s = overlayChanged(cmd, fromFile, opts.input, nil)
	}

	if opts.preset != "" {
		patched, err := domain.ApplyPreset(s, opts.preset)
		if err != nil {
			return domain.InputState{}, err
		}
		s = overlayChanged(cmd, patched, opts.input, shockFlags)
	}

	if flags.Changed("mode") {
		switch domain.Mode(opts.mode) {
		case domain.ModeBalanced, domain.ModeConservative:
			s.Mode = domain.Mode(opts.mode)
		default:
			return domain.InputState{}, fmt.Errorf("unknown mode %q (want balanced or conservative)", opts.mode)
		}
	}

	return s, nil
}

func readInputFile(path string) (domain.InputState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.InputState{}, fmt.Errorf("read input: %w", err)
	}

	s := domain.DefaultInputState()
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.InputState{}, fmt.Errorf("parse input %s: %w", path, err)
	}
	return s, nil
}

// overlayChanged copies explicitly set flag values from flagged onto base.
// A nil names list means every input flag.
func overlayChanged(cmd *cobra.Command, base, flagged domain.InputState, names []string) domain.InputState {
	fields := map[string]func(){
		"loan":          func() { base.LoanAmount = flagged.LoanAmount },
		"rate":          func() { base.AnnualRatePct = flagged.AnnualRatePct },
		"term":          func() { base.TermYears = flagged.TermYears },
		"taxes":         func() { base.TaxesMonthly = flagged.TaxesMonthly },
		"insurance":     func() { base.InsuranceMonthly = flagged.InsuranceMonthly },
		"hoa":           func() { base.HOAMonthly = flagged.HOAMonthly },
		"income":        func() { base.NetIncomeMonthly = flagged.NetIncomeMonthly },
		"expenses":      func() { base.OtherExpensesMonthly = flagged.OtherExpensesMonthly },
		"savings":       func() { base.Savings = flagged.Savings },
		"income-drop":   func() { base.IncomeDropPct = flagged.IncomeDropPct },
		"rate-hike":     func() { base.RateHikePct = flagged.RateHikePct },
		"emergency":     func() { base.EmergencyCost = flagged.EmergencyCost },
		"months":        func() { base.MonthsUnemployed = flagged.MonthsUnemployed },
		"expense-spike": func() { base.ExpenseSpikeMonthly = flagged.ExpenseSpikeMonthly },
	}

	if names == nil {
		for name := range fields {
			names = append(names, name)
		}
	}
	for _, name := range names {
		if set, ok := fields[name]; ok && cmd.Flags().Changed(name) {
			set()
		}
	}
	return base
}
