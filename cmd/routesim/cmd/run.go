package cmd

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/x/poolmanager/keeper"
	poolmanagertypes "github.com/paw-chain/pawswap/x/poolmanager/types"
)

// NewRunCmd executes the fixture's scripted swaps in order against one
// simulator and reports each outcome plus the final state. A failed swap is
// reported and leaves state untouched; later swaps still run.
func NewRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute the swaps listed in the fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fixture, err := LoadFixture(a.cfg.Fixture)
			if err != nil {
				return err
			}
			sim, err := NewSimulator(fixture, a.logger)
			if err != nil {
				return err
			}

			var report runReport
			for i, swap := range fixture.Swaps {
				routes := make([]poolmanagertypes.SwapAmountInRoute, len(swap.PoolIds))
				for j, id := range swap.PoolIds {
					routes[j] = poolmanagertypes.SwapAmountInRoute{PoolId: id, TokenOutDenom: swap.Denoms[j]}
				}
				result, err := a.runSwap(cmd, sim, swap, routes)
				if err != nil {
					a.logger.Info("swap failed", "index", i, "sender", swap.Sender, "err", err)
				}
				report.Swaps = append(report.Swaps, newRouteReport(sim, swap.Sender, result, err))
			}

			if report.Final, err = newStateReport(sim); err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), report)
		},
	}
}

func (a *app) runSwap(cmd *cobra.Command, sim *Simulator, swap FixtureSwap, routes []poolmanagertypes.SwapAmountInRoute) (keeper.RouteResult, error) {
	tokenIn, err := sdk.ParseCoinNormalized(swap.TokenIn)
	if err != nil {
		return keeper.RouteResult{}, err
	}
	minOut := math.OneInt()
	if swap.MinOut != "" {
		if minOut, err = parseAmount(FlagMinOut, swap.MinOut); err != nil {
			return keeper.RouteResult{}, err
		}
	}
	sender, err := sim.Account(swap.Sender)
	if err != nil {
		return keeper.RouteResult{}, err
	}

	var result keeper.RouteResult
	err = a.withSpan(cmd.Context(), sim, "run_swap", poolmanagertypes.PoolIds(routes), func() error {
		result, err = sim.Keeper.RouteExactAmountInWithResult(sim.Ctx, sender, routes, tokenIn, minOut)
		return err
	})
	return result, err
}
