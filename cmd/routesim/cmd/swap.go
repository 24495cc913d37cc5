package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/x/poolmanager/keeper"
	poolmanagertypes "github.com/paw-chain/pawswap/x/poolmanager/types"
)

func parseAmount(flag, raw string) (math.Int, error) {
	amount, ok := math.NewIntFromString(raw)
	if !ok {
		return math.Int{}, fmt.Errorf("invalid %s %q", flag, raw)
	}
	return amount, nil
}

// NewSwapInCmd executes an exact-in route from a fixture account.
func NewSwapInCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "swap-in [token-in]",
		Short:   "Execute an exact amount in route and show the settled hops",
		Example: "routesim swap-in 1000uatom --sender alice --min-out 990 --pool-ids 1,2 --denoms upaw,uosmo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenIn, err := sdk.ParseCoinNormalized(args[0])
			if err != nil {
				return err
			}
			poolIds, denoms, err := routeFlags(cmd)
			if err != nil {
				return err
			}
			routes, err := ParseInRoute(poolIds, denoms)
			if err != nil {
				return err
			}
			senderName, _ := cmd.Flags().GetString(FlagSender)
			rawMin, _ := cmd.Flags().GetString(FlagMinOut)
			minOut, err := parseAmount(FlagMinOut, rawMin)
			if err != nil {
				return err
			}

			sim, err := a.simulator()
			if err != nil {
				return err
			}
			sender, err := sim.Account(senderName)
			if err != nil {
				return err
			}

			var result keeper.RouteResult
			err = a.withSpan(cmd.Context(), sim, "swap_in", poolmanagertypes.PoolIds(routes), func() error {
				result, err = sim.Keeper.RouteExactAmountInWithResult(sim.Ctx, sender, routes, tokenIn, minOut)
				return err
			})
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), newRouteReport(sim, senderName, result, nil))
		},
	}
	addRouteFlags(cmd.Flags(), "comma separated denoms each hop swaps into")
	cmd.Flags().String(FlagSender, "", "fixture account that sends the swap")
	cmd.Flags().String(FlagMinOut, "1", "minimum amount of the final denom to receive")
	_ = cmd.MarkFlagRequired(FlagSender)
	return cmd
}

// NewSwapOutCmd executes an exact-out route from a fixture account.
func NewSwapOutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "swap-out [token-out]",
		Short:   "Execute an exact amount out route and show the settled hops",
		Example: "routesim swap-out 1000uosmo --sender alice --max-in 1100 --pool-ids 1,2 --denoms uatom,upaw",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenOut, err := sdk.ParseCoinNormalized(args[0])
			if err != nil {
				return err
			}
			poolIds, denoms, err := routeFlags(cmd)
			if err != nil {
				return err
			}
			routes, err := ParseOutRoute(poolIds, denoms)
			if err != nil {
				return err
			}
			senderName, _ := cmd.Flags().GetString(FlagSender)
			rawMax, _ := cmd.Flags().GetString(FlagMaxIn)
			maxIn, err := parseAmount(FlagMaxIn, rawMax)
			if err != nil {
				return err
			}

			sim, err := a.simulator()
			if err != nil {
				return err
			}
			sender, err := sim.Account(senderName)
			if err != nil {
				return err
			}

			var result keeper.RouteResult
			err = a.withSpan(cmd.Context(), sim, "swap_out", outRoutePoolIds(routes), func() error {
				result, err = sim.Keeper.RouteExactAmountOutWithResult(sim.Ctx, sender, routes, maxIn, tokenOut)
				return err
			})
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), newRouteReport(sim, senderName, result, nil))
		},
	}
	addRouteFlags(cmd.Flags(), "comma separated denoms each hop consumes")
	cmd.Flags().String(FlagSender, "", "fixture account that sends the swap")
	cmd.Flags().String(FlagMaxIn, "", "maximum amount of the first denom to spend, taker fees included")
	_ = cmd.MarkFlagRequired(FlagSender)
	_ = cmd.MarkFlagRequired(FlagMaxIn)
	return cmd
}
