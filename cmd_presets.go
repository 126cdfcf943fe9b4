package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mortgage-risk/domain"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in shock presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, p := range domain.Presets() {
				fmt.Fprintf(out, "%-20s %s\n", p.ID, p.Title)
			}
			return nil
		},
	}
}
