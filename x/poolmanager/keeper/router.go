package keeper

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// HopResult describes one settled hop of a route.
type HopResult struct {
	PoolId uint64
	SwapResult
	// TakerFee is charged in the hop's input denom on top of TokenIn.
	TakerFee sdk.Coin
}

// RouteResult describes a settled route. TokenIn includes the taker fee of
// the first hop.
type RouteResult struct {
	TokenIn   sdk.Coin
	TokenOut  sdk.Coin
	Hops      []HopResult
	TakerFees sdk.Coins
}

// RouteExactAmountIn swaps tokenIn through routes and returns the amount of
// the final denom received. Either every hop settles or none does.
func (k Keeper) RouteExactAmountIn(
	ctx sdk.Context,
	sender sdk.AccAddress,
	routes []types.SwapAmountInRoute,
	tokenIn sdk.Coin,
	tokenOutMinAmount math.Int,
) (math.Int, error) {
	result, err := k.RouteExactAmountInWithResult(ctx, sender, routes, tokenIn, tokenOutMinAmount)
	if err != nil {
		return math.Int{}, err
	}
	return result.TokenOut.Amount, nil
}

// RouteExactAmountInWithResult is RouteExactAmountIn returning per-hop details.
func (k Keeper) RouteExactAmountInWithResult(
	ctx sdk.Context,
	sender sdk.AccAddress,
	routes []types.SwapAmountInRoute,
	tokenIn sdk.Coin,
	tokenOutMinAmount math.Int,
) (RouteResult, error) {
	result, err := executeAtomic(k, ctx, "route_exact_amount_in", func(cacheCtx sdk.Context) (RouteResult, error) {
		acc := &takerFeeAccumulator{}
		result, err := k.routeExactAmountIn(cacheCtx, sender, routes, tokenIn, tokenOutMinAmount, acc)
		if err != nil {
			return RouteResult{}, err
		}
		if err := k.distributeTakerFees(cacheCtx, acc); err != nil {
			return RouteResult{}, err
		}
		k.emitRouteEvent(cacheCtx, sender, result)
		return result, nil
	})
	k.metrics.recordRoute("exact_in", routeStatus(err), len(routes))
	return result, err
}

// RouteExactAmountOut swaps through routes to receive exactly tokenOut and
// returns the amount of the first denom spent, taker fees included.
func (k Keeper) RouteExactAmountOut(
	ctx sdk.Context,
	sender sdk.AccAddress,
	routes []types.SwapAmountOutRoute,
	tokenInMaxAmount math.Int,
	tokenOut sdk.Coin,
) (math.Int, error) {
	result, err := k.RouteExactAmountOutWithResult(ctx, sender, routes, tokenInMaxAmount, tokenOut)
	if err != nil {
		return math.Int{}, err
	}
	return result.TokenIn.Amount, nil
}

// RouteExactAmountOutWithResult is RouteExactAmountOut returning per-hop details.
func (k Keeper) RouteExactAmountOutWithResult(
	ctx sdk.Context,
	sender sdk.AccAddress,
	routes []types.SwapAmountOutRoute,
	tokenInMaxAmount math.Int,
	tokenOut sdk.Coin,
) (RouteResult, error) {
	result, err := executeAtomic(k, ctx, "route_exact_amount_out", func(cacheCtx sdk.Context) (RouteResult, error) {
		acc := &takerFeeAccumulator{}
		result, err := k.routeExactAmountOut(cacheCtx, sender, routes, tokenInMaxAmount, tokenOut, acc)
		if err != nil {
			return RouteResult{}, err
		}
		if err := k.distributeTakerFees(cacheCtx, acc); err != nil {
			return RouteResult{}, err
		}
		k.emitRouteEvent(cacheCtx, sender, result)
		return result, nil
	})
	k.metrics.recordRoute("exact_out", routeStatus(err), len(routes))
	return result, err
}

// routeExactAmountIn executes the hops in order on ctx. Intermediate hops only
// need a positive output; the last hop carries the caller's minimum.
func (k Keeper) routeExactAmountIn(
	ctx sdk.Context,
	sender sdk.AccAddress,
	routes []types.SwapAmountInRoute,
	tokenIn sdk.Coin,
	tokenOutMinAmount math.Int,
	acc *takerFeeAccumulator,
) (RouteResult, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return RouteResult{}, err
	}
	if !tokenIn.IsValid() || !tokenIn.IsPositive() {
		return RouteResult{}, types.ErrInvalidAmount.Wrapf("token in %s must be positive", tokenIn)
	}
	if tokenOutMinAmount.IsNil() || !tokenOutMinAmount.IsPositive() {
		return RouteResult{}, types.ErrInvalidAmount.Wrap("token out min amount must be positive")
	}
	if err := types.ValidateSwapAmountInRoutes(routes, tokenIn.Denom, params.MaxHops); err != nil {
		return RouteResult{}, err
	}

	result := RouteResult{TokenIn: tokenIn, Hops: make([]HopResult, 0, len(routes))}
	current := tokenIn
	for i, hop := range routes {
		hopMinAmount := math.OneInt()
		if i == len(routes)-1 {
			hopMinAmount = tokenOutMinAmount
		}

		pool, module, err := k.resolveCFMM(ctx, hop.PoolId)
		if err != nil {
			return RouteResult{}, hopError(err, i, hop.PoolId)
		}

		takerFee, err := k.takerFeeForSender(ctx, params, sender, current.Denom, hop.TokenOutDenom)
		if err != nil {
			return RouteResult{}, hopError(err, i, hop.PoolId)
		}
		afterFee, fee := CalcTakerFeeExactIn(current, takerFee)
		isPrimary := k.classifier.IsPrimaryAssetPair(ctx, current.Denom, hop.TokenOutDenom)
		if err := k.chargeTakerFee(ctx, sender, hop.PoolId, fee, isPrimary, acc); err != nil {
			return RouteResult{}, hopError(err, i, hop.PoolId)
		}

		swap, err := k.swapExactAmountIn(ctx, sender, pool, module, afterFee, hop.TokenOutDenom, hopMinAmount, pool.GetSpreadFactor(ctx))
		if err != nil {
			return RouteResult{}, hopError(err, i, hop.PoolId)
		}

		result.Hops = append(result.Hops, HopResult{PoolId: hop.PoolId, SwapResult: swap, TakerFee: fee})
		current = swap.TokenOut
	}

	result.TokenOut = current
	result.TakerFees = acc.Total()
	return result, nil
}

// plannedHop is one priced hop of an exact-out route.
type plannedHop struct {
	poolId       uint64
	spreadFactor math.LegacyDec
	tokenIn      sdk.Coin
	tokenOut     sdk.Coin
	takerFee     sdk.Coin
	isPrimary    bool
}

// routeExactAmountOut prices the route backwards from tokenOut, then settles
// it forwards. The plan prices every hop against the pool state it will meet
// during settlement, so each forward hop spends exactly its planned input.
func (k Keeper) routeExactAmountOut(
	ctx sdk.Context,
	sender sdk.AccAddress,
	routes []types.SwapAmountOutRoute,
	tokenInMaxAmount math.Int,
	tokenOut sdk.Coin,
	acc *takerFeeAccumulator,
) (RouteResult, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return RouteResult{}, err
	}
	if !tokenOut.IsValid() || !tokenOut.IsPositive() {
		return RouteResult{}, types.ErrInvalidAmount.Wrapf("token out %s must be positive", tokenOut)
	}
	if tokenInMaxAmount.IsNil() || !tokenInMaxAmount.IsPositive() {
		return RouteResult{}, types.ErrInvalidAmount.Wrap("token in max amount must be positive")
	}
	if err := types.ValidateSwapAmountOutRoutes(routes, tokenOut.Denom, params.MaxHops); err != nil {
		return RouteResult{}, err
	}

	plan, tokenIn, err := k.planExactAmountOut(ctx, routes, tokenOut, func(denomIn, denomOut string) (math.LegacyDec, error) {
		return k.takerFeeForSender(ctx, params, sender, denomIn, denomOut)
	})
	if err != nil {
		return RouteResult{}, err
	}
	if tokenIn.Amount.GT(tokenInMaxAmount) {
		return RouteResult{}, types.ErrAboveMaximumInput.Wrapf("expected at most %s, got %s", tokenInMaxAmount, tokenIn.Amount)
	}

	result := RouteResult{TokenIn: tokenIn, TokenOut: tokenOut, Hops: make([]HopResult, 0, len(plan))}
	for i, p := range plan {
		pool, module, err := k.resolveCFMM(ctx, p.poolId)
		if err != nil {
			return RouteResult{}, hopError(err, i, p.poolId)
		}
		if err := k.chargeTakerFee(ctx, sender, p.poolId, p.takerFee, p.isPrimary, acc); err != nil {
			return RouteResult{}, hopError(err, i, p.poolId)
		}
		swap, err := k.swapExactAmountOut(ctx, sender, pool, module, p.tokenIn.Denom, p.tokenIn.Amount, p.tokenOut, p.spreadFactor)
		if err != nil {
			return RouteResult{}, hopError(err, i, p.poolId)
		}
		result.Hops = append(result.Hops, HopResult{PoolId: p.poolId, SwapResult: swap, TakerFee: p.takerFee})
	}

	result.TakerFees = acc.Total()
	return result, nil
}

// maxExactOutPricingRounds bounds the re-pricing of routes that visit a pool
// more than once.
const maxExactOutPricingRounds = 16

// planExactAmountOut prices an exact-out route without touching the store.
// When a route visits a pool twice, the later visit trades against the state
// the earlier one leaves behind. Such routes are replayed forwards and
// re-priced until the plan stops changing. It returns the plan and the input
// of the first hop, taker fee included.
func (k Keeper) planExactAmountOut(
	ctx sdk.Context,
	routes []types.SwapAmountOutRoute,
	tokenOut sdk.Coin,
	takerFeeFor func(denomIn, denomOut string) (math.LegacyDec, error),
) ([]plannedHop, sdk.Coin, error) {
	pools := make(map[uint64]types.CFMMPool, len(routes))
	states := make([]types.CFMMPool, len(routes))
	revisits := false
	for i, hop := range routes {
		if pool, ok := pools[hop.PoolId]; ok {
			states[i] = pool
			revisits = true
			continue
		}
		pool, _, err := k.resolveCFMM(ctx, hop.PoolId)
		if err != nil {
			return nil, sdk.Coin{}, hopError(err, i, hop.PoolId)
		}
		pools[hop.PoolId] = pool
		states[i] = pool
	}

	plan, tokenIn, err := k.priceExactAmountOut(ctx, routes, tokenOut, states, takerFeeFor)
	if err != nil || !revisits {
		return plan, tokenIn, err
	}

	for round := 0; round < maxExactOutPricingRounds; round++ {
		if states, err = replayExactAmountOut(ctx, pools, plan); err != nil {
			return nil, sdk.Coin{}, err
		}
		next, nextIn, err := k.priceExactAmountOut(ctx, routes, tokenOut, states, takerFeeFor)
		if err != nil {
			return nil, sdk.Coin{}, err
		}
		if samePlan(plan, next) {
			return next, nextIn, nil
		}
		plan, tokenIn = next, nextIn
	}
	return nil, sdk.Coin{}, types.ErrInvalidRoute.Wrapf(
		"exact out route through a repeated pool did not settle after %d pricing rounds", maxExactOutPricingRounds,
	)
}

// priceExactAmountOut walks the route backwards, pricing hop i on a copy of
// states[i].
func (k Keeper) priceExactAmountOut(
	ctx sdk.Context,
	routes []types.SwapAmountOutRoute,
	tokenOut sdk.Coin,
	states []types.CFMMPool,
	takerFeeFor func(denomIn, denomOut string) (math.LegacyDec, error),
) ([]plannedHop, sdk.Coin, error) {
	plan := make([]plannedHop, len(routes))
	out := tokenOut
	for i := len(routes) - 1; i >= 0; i-- {
		hop := routes[i]
		pool := states[i]
		spreadFactor := pool.GetSpreadFactor(ctx)
		estimate, err := SwapInGivenOut(ctx, pool.Copy(), hop.TokenInDenom, math.Int{}, out, spreadFactor)
		if err != nil {
			return nil, sdk.Coin{}, hopError(err, i, hop.PoolId)
		}

		takerFee, err := takerFeeFor(hop.TokenInDenom, out.Denom)
		if err != nil {
			return nil, sdk.Coin{}, hopError(err, i, hop.PoolId)
		}
		withFee, fee, err := CalcTakerFeeExactOut(estimate.TokenIn, takerFee)
		if err != nil {
			return nil, sdk.Coin{}, hopError(err, i, hop.PoolId)
		}

		plan[i] = plannedHop{
			poolId:       hop.PoolId,
			spreadFactor: spreadFactor,
			tokenIn:      estimate.TokenIn,
			tokenOut:     out,
			takerFee:     fee,
			isPrimary:    k.classifier.IsPrimaryAssetPair(ctx, hop.TokenInDenom, out.Denom),
		}
		out = withFee
	}
	return plan, out, nil
}

// replayExactAmountOut applies plan in execution order to private copies of
// pools and returns the state each hop trades against.
func replayExactAmountOut(ctx sdk.Context, pools map[uint64]types.CFMMPool, plan []plannedHop) ([]types.CFMMPool, error) {
	working := make(map[uint64]types.CFMMPool, len(pools))
	for poolId, pool := range pools {
		working[poolId] = pool.Copy()
	}

	states := make([]types.CFMMPool, len(plan))
	for i, p := range plan {
		pool := working[p.poolId]
		states[i] = pool.Copy()
		if _, err := SwapInGivenOut(ctx, pool, p.tokenIn.Denom, math.Int{}, p.tokenOut, p.spreadFactor); err != nil {
			return nil, hopError(err, i, p.poolId)
		}
	}
	return states, nil
}

func samePlan(a, b []plannedHop) bool {
	for i := range a {
		if !sameCoin(a[i].tokenIn, b[i].tokenIn) || !sameCoin(a[i].tokenOut, b[i].tokenOut) {
			return false
		}
	}
	return true
}

func sameCoin(a, b sdk.Coin) bool {
	return a.Denom == b.Denom && a.Amount.Equal(b.Amount)
}

func hopError(err error, index int, poolId uint64) error {
	return errorsmod.Wrapf(err, "hop %d (pool %d)", index+1, poolId)
}

func routeStatus(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

func (k Keeper) emitRouteEvent(ctx sdk.Context, sender sdk.AccAddress, result RouteResult) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRouteSwap,
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyTokensIn, result.TokenIn.String()),
			sdk.NewAttribute(types.AttributeKeyTokensOut, result.TokenOut.String()),
			sdk.NewAttribute(types.AttributeKeyTakerFee, result.TakerFees.String()),
			sdk.NewAttribute(types.AttributeKeyHops, fmt.Sprintf("%d", len(result.Hops))),
		),
	)
}
