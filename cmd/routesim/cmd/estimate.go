package cmd

import (
	"context"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/attribute"

	"github.com/paw-chain/pawswap/pkg/telemetry"
	poolmanagertypes "github.com/paw-chain/pawswap/x/poolmanager/types"
)

const (
	FlagPoolIds = "pool-ids"
	FlagDenoms  = "denoms"
	FlagSender  = "sender"
	FlagMinOut  = "min-out"
	FlagMaxIn   = "max-in"
)

func addRouteFlags(flags *pflag.FlagSet, denomUsage string) {
	flags.StringSlice(FlagPoolIds, nil, "comma separated pool ids, one per hop")
	flags.StringSlice(FlagDenoms, nil, denomUsage)
}

func routeFlags(cmd *cobra.Command) (poolIds, denoms []string, err error) {
	if poolIds, err = cmd.Flags().GetStringSlice(FlagPoolIds); err != nil {
		return nil, nil, err
	}
	if denoms, err = cmd.Flags().GetStringSlice(FlagDenoms); err != nil {
		return nil, nil, err
	}
	return poolIds, denoms, nil
}

func outRoutePoolIds(routes []poolmanagertypes.SwapAmountOutRoute) []uint64 {
	ids := make([]uint64, len(routes))
	for i, route := range routes {
		ids[i] = route.PoolId
	}
	return ids
}

// withSpan runs fn inside a route span and threads the span context into
// the simulator's sdk.Context. The route is also counted in the route metrics.
func (a *app) withSpan(ctx context.Context, sim *Simulator, operation string, poolIds []uint64, fn func() error) error {
	spanCtx, span := a.telemetry.StartRouteSpan(ctx, operation, poolIds)
	defer span.End()
	telemetry.AddSpanAttributes(span, attribute.String("routesim.run_id", a.cfg.Tracing.RunID))

	sim.Ctx = sim.Ctx.WithContext(spanCtx)
	start := time.Now()
	err := fn()
	telemetry.RecordError(span, err)
	a.telemetry.RouteMetrics().RecordRoute(spanCtx, operation, len(poolIds), time.Since(start), err)
	return err
}

// NewEstimateInCmd estimates the output of an exact-in route.
func NewEstimateInCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "estimate-in [token-in]",
		Short:   "Estimate the output of an exact amount in route",
		Example: "routesim estimate-in 1000uatom --pool-ids 1,2 --denoms upaw,uosmo",
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
			sim, err := a.simulator()
			if err != nil {
				return err
			}

			var report estimateReport
			err = a.withSpan(cmd.Context(), sim, "estimate_in", poolmanagertypes.PoolIds(routes), func() error {
				out, err := sim.Keeper.EstimateSwapExactAmountIn(sim.Ctx, routes, tokenIn)
				if err != nil {
					return err
				}
				report = estimateReport{
					TokenIn:  tokenIn.String(),
					TokenOut: sdk.NewCoin(poolmanagertypes.FinalDenom(routes), out).String(),
				}
				return nil
			})
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), report)
		},
	}
	addRouteFlags(cmd.Flags(), "comma separated denoms each hop swaps into")
	return cmd
}

// NewEstimateOutCmd estimates the input of an exact-out route.
func NewEstimateOutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "estimate-out [token-out]",
		Short:   "Estimate the input of an exact amount out route",
		Example: "routesim estimate-out 1000uosmo --pool-ids 1,2 --denoms uatom,upaw",
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
			sim, err := a.simulator()
			if err != nil {
				return err
			}

			var report estimateReport
			err = a.withSpan(cmd.Context(), sim, "estimate_out", outRoutePoolIds(routes), func() error {
				in, err := sim.Keeper.EstimateSwapExactAmountOut(sim.Ctx, routes, tokenOut)
				if err != nil {
					return err
				}
				report = estimateReport{
					TokenIn:  sdk.NewCoin(routes[0].TokenInDenom, in).String(),
					TokenOut: tokenOut.String(),
				}
				return nil
			})
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), report)
		},
	}
	addRouteFlags(cmd.Flags(), "comma separated denoms each hop consumes")
	return cmd
}
