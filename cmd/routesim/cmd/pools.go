package cmd

import (
	"github.com/spf13/cobra"
)

// NewPoolsCmd prints the pools, liquidity and fee totals of the fixture.
func NewPoolsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pools",
		Short: "Show the pools and liquidity loaded from the fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sim, err := a.simulator()
			if err != nil {
				return err
			}
			report, err := newStateReport(sim)
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), report)
		},
	}
}
