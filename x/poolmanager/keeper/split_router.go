package keeper

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// SplitRouteExactAmountIn runs several exact-in routes that share their input
// and output denoms and returns the summed output. The caller's minimum
// applies to the sum.
func (k Keeper) SplitRouteExactAmountIn(
	ctx sdk.Context,
	sender sdk.AccAddress,
	routes []types.SwapAmountInSplitRoute,
	tokenInDenom string,
	tokenOutMinAmount math.Int,
) (math.Int, error) {
	total, err := executeAtomic(k, ctx, "split_route_exact_amount_in", func(cacheCtx sdk.Context) (math.Int, error) {
		params, err := k.GetParams(cacheCtx)
		if err != nil {
			return math.Int{}, err
		}
		if tokenOutMinAmount.IsNil() || !tokenOutMinAmount.IsPositive() {
			return math.Int{}, types.ErrInvalidAmount.Wrap("token out min amount must be positive")
		}
		if err := types.ValidateSplitRoutesIn(routes, tokenInDenom, params.MaxHops); err != nil {
			return math.Int{}, err
		}

		acc := &takerFeeAccumulator{}
		total := math.ZeroInt()
		for i, route := range routes {
			tokenIn := sdk.NewCoin(tokenInDenom, route.TokenInAmount)
			result, err := k.routeExactAmountIn(cacheCtx, sender, route.Pools, tokenIn, math.OneInt(), acc)
			if err != nil {
				return math.Int{}, errorsmod.Wrapf(err, "split route %d", i+1)
			}
			k.emitRouteEvent(cacheCtx, sender, result)
			total = total.Add(result.TokenOut.Amount)
		}

		if total.LT(tokenOutMinAmount) {
			return math.Int{}, types.ErrBelowMinimumOutput.Wrapf("expected at least %s, got %s", tokenOutMinAmount, total)
		}
		if err := k.distributeTakerFees(cacheCtx, acc); err != nil {
			return math.Int{}, err
		}
		return total, nil
	})
	k.metrics.recordRoute("split_exact_in", routeStatus(err), len(routes))
	return total, err
}

// SplitRouteExactAmountOut runs several exact-out routes that share their
// input and output denoms and returns the summed input. The caller's maximum
// applies to the sum.
func (k Keeper) SplitRouteExactAmountOut(
	ctx sdk.Context,
	sender sdk.AccAddress,
	routes []types.SwapAmountOutSplitRoute,
	tokenOutDenom string,
	tokenInMaxAmount math.Int,
) (math.Int, error) {
	total, err := executeAtomic(k, ctx, "split_route_exact_amount_out", func(cacheCtx sdk.Context) (math.Int, error) {
		params, err := k.GetParams(cacheCtx)
		if err != nil {
			return math.Int{}, err
		}
		if tokenInMaxAmount.IsNil() || !tokenInMaxAmount.IsPositive() {
			return math.Int{}, types.ErrInvalidAmount.Wrap("token in max amount must be positive")
		}
		if err := types.ValidateSplitRoutesOut(routes, tokenOutDenom, params.MaxHops); err != nil {
			return math.Int{}, err
		}

		acc := &takerFeeAccumulator{}
		total := math.ZeroInt()
		for i, route := range routes {
			tokenOut := sdk.NewCoin(tokenOutDenom, route.TokenOutAmount)
			result, err := k.routeExactAmountOut(cacheCtx, sender, route.Pools, tokenInMaxAmount, tokenOut, acc)
			if err != nil {
				return math.Int{}, errorsmod.Wrapf(err, "split route %d", i+1)
			}
			k.emitRouteEvent(cacheCtx, sender, result)
			total = total.Add(result.TokenIn.Amount)
		}

		if total.GT(tokenInMaxAmount) {
			return math.Int{}, types.ErrAboveMaximumInput.Wrapf("expected at most %s, got %s", tokenInMaxAmount, total)
		}
		if err := k.distributeTakerFees(cacheCtx, acc); err != nil {
			return math.Int{}, err
		}
		return total, nil
	})
	k.metrics.recordRoute("split_exact_out", routeStatus(err), len(routes))
	return total, err
}
