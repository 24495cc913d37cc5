package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// EstimateSwapExactAmountIn returns the output RouteExactAmountIn would
// produce for a sender paying the pair taker fees. Nothing is written.
func (k Keeper) EstimateSwapExactAmountIn(ctx sdk.Context, routes []types.SwapAmountInRoute, tokenIn sdk.Coin) (math.Int, error) {
	return simulate(k, ctx, "estimate_swap_exact_amount_in", func(cacheCtx sdk.Context) (math.Int, error) {
		params, err := k.GetParams(cacheCtx)
		if err != nil {
			return math.Int{}, err
		}
		if !tokenIn.IsValid() || !tokenIn.IsPositive() {
			return math.Int{}, types.ErrInvalidAmount.Wrapf("token in %s must be positive", tokenIn)
		}
		if err := types.ValidateSwapAmountInRoutes(routes, tokenIn.Denom, params.MaxHops); err != nil {
			return math.Int{}, err
		}

		pools := make(map[uint64]types.CFMMPool)
		current := tokenIn
		for i, hop := range routes {
			pool, err := k.estimatePool(cacheCtx, pools, hop.PoolId)
			if err != nil {
				return math.Int{}, hopError(err, i, hop.PoolId)
			}
			takerFee, err := k.GetTradingPairTakerFee(cacheCtx, current.Denom, hop.TokenOutDenom)
			if err != nil {
				return math.Int{}, hopError(err, i, hop.PoolId)
			}
			afterFee, _ := CalcTakerFeeExactIn(current, takerFee)
			swap, err := SwapOutGivenIn(cacheCtx, pool, afterFee, hop.TokenOutDenom, math.OneInt(), pool.GetSpreadFactor(cacheCtx))
			if err != nil {
				return math.Int{}, hopError(err, i, hop.PoolId)
			}
			current = swap.TokenOut
		}
		return current.Amount, nil
	})
}

// EstimateSwapExactAmountOut returns the input RouteExactAmountOut would
// spend, taker fees included. Nothing is written.
func (k Keeper) EstimateSwapExactAmountOut(ctx sdk.Context, routes []types.SwapAmountOutRoute, tokenOut sdk.Coin) (math.Int, error) {
	return simulate(k, ctx, "estimate_swap_exact_amount_out", func(cacheCtx sdk.Context) (math.Int, error) {
		params, err := k.GetParams(cacheCtx)
		if err != nil {
			return math.Int{}, err
		}
		if !tokenOut.IsValid() || !tokenOut.IsPositive() {
			return math.Int{}, types.ErrInvalidAmount.Wrapf("token out %s must be positive", tokenOut)
		}
		if err := types.ValidateSwapAmountOutRoutes(routes, tokenOut.Denom, params.MaxHops); err != nil {
			return math.Int{}, err
		}

		_, tokenIn, err := k.planExactAmountOut(cacheCtx, routes, tokenOut, func(denomIn, denomOut string) (math.LegacyDec, error) {
			return k.GetTradingPairTakerFee(cacheCtx, denomIn, denomOut)
		})
		if err != nil {
			return math.Int{}, err
		}
		return tokenIn.Amount, nil
	})
}

// EstimateSinglePoolSwapExactAmountIn estimates a one-hop exact-in swap.
func (k Keeper) EstimateSinglePoolSwapExactAmountIn(ctx sdk.Context, poolId uint64, tokenIn sdk.Coin, tokenOutDenom string) (math.Int, error) {
	return k.EstimateSwapExactAmountIn(ctx, []types.SwapAmountInRoute{{PoolId: poolId, TokenOutDenom: tokenOutDenom}}, tokenIn)
}

// EstimateSinglePoolSwapExactAmountOut estimates a one-hop exact-out swap.
func (k Keeper) EstimateSinglePoolSwapExactAmountOut(ctx sdk.Context, poolId uint64, tokenInDenom string, tokenOut sdk.Coin) (math.Int, error) {
	return k.EstimateSwapExactAmountOut(ctx, []types.SwapAmountOutRoute{{PoolId: poolId, TokenInDenom: tokenInDenom}}, tokenOut)
}

// estimatePool returns a private copy of a pool, reusing the copy when a
// route visits the same pool again.
func (k Keeper) estimatePool(ctx sdk.Context, pools map[uint64]types.CFMMPool, poolId uint64) (types.CFMMPool, error) {
	if pool, ok := pools[poolId]; ok {
		return pool, nil
	}
	pool, _, err := k.resolveCFMM(ctx, poolId)
	if err != nil {
		return nil, err
	}
	pool = pool.Copy()
	pools[poolId] = pool
	return pool, nil
}

// GetTotalLiquidity sums the reserves of every routed pool.
func (k Keeper) GetTotalLiquidity(ctx sdk.Context) (sdk.Coins, error) {
	pools, err := k.AllPools(ctx)
	if err != nil {
		return nil, err
	}
	total := sdk.NewCoins()
	for _, pool := range pools {
		total = total.Add(pool.GetReserves()...)
	}
	return total, nil
}
