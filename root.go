package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mortgage-risk",
		Short: "Household mortgage stress testing",
		Long: `mortgage-risk computes a household's baseline monthly budget, applies
income, rate, expense and emergency shocks, finds the breakpoints where the
budget turns negative and scores overall resilience from 0 to 100.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newPresetsCmd())
	return root
}
