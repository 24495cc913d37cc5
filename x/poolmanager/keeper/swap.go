package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// SwapResult is the outcome of a single-pool swap.
type SwapResult struct {
	TokenIn      sdk.Coin
	TokenOut     sdk.Coin
	SpreadFactor math.LegacyDec
	// SpreadFee is the part of the raw output retained by the pool, in
	// units of the output denom.
	SpreadFee math.LegacyDec
}

// SwapOutGivenIn prices an exact-in swap against pool and applies it to the
// in-memory pool. The caller-supplied spread factor is the one charged; it
// must be at least half of the pool's spread factor.
func SwapOutGivenIn(
	ctx context.Context,
	pool types.CFMMPool,
	tokenIn sdk.Coin,
	tokenOutDenom string,
	tokenOutMinAmount math.Int,
	spreadFactor math.LegacyDec,
) (SwapResult, error) {
	if !tokenIn.IsValid() || !tokenIn.IsPositive() {
		return SwapResult{}, types.ErrInvalidAmount.Wrapf("token in %s must be positive", tokenIn)
	}
	if err := validateSwapDenoms(pool, tokenIn.Denom, tokenOutDenom); err != nil {
		return SwapResult{}, err
	}
	if err := validateSpreadFactor(ctx, pool, spreadFactor); err != nil {
		return SwapResult{}, err
	}

	rawOut, err := pool.CalcOutAmtGivenIn(tokenIn, tokenOutDenom)
	if err != nil {
		return SwapResult{}, err
	}
	if !rawOut.IsPositive() {
		return SwapResult{}, types.ErrNonPositiveOutput.Wrapf("raw token out %s%s", rawOut, tokenOutDenom)
	}

	outDec := rawOut.Mul(math.LegacyOneDec().Sub(spreadFactor))
	outAmount := outDec.TruncateInt()
	if !outAmount.IsPositive() {
		return SwapResult{}, types.ErrNonPositiveOutput.Wrapf("token out %s%s", outAmount, tokenOutDenom)
	}
	if !tokenOutMinAmount.IsNil() && outAmount.LT(tokenOutMinAmount) {
		return SwapResult{}, types.ErrBelowMinimumOutput.Wrapf("expected at least %s, got %s", tokenOutMinAmount, outAmount)
	}

	tokenOut := sdk.NewCoin(tokenOutDenom, outAmount)
	if err := pool.ApplySwap(tokenIn, tokenOut); err != nil {
		return SwapResult{}, err
	}

	return SwapResult{
		TokenIn:      tokenIn,
		TokenOut:     tokenOut,
		SpreadFactor: spreadFactor,
		SpreadFee:    rawOut.Sub(outDec),
	}, nil
}

// SwapInGivenOut prices an exact-out swap against pool and applies it to the
// in-memory pool. The pool must release tokenOut/(1-spreadFactor) so that
// tokenOut is left after the spread fee.
func SwapInGivenOut(
	ctx context.Context,
	pool types.CFMMPool,
	tokenInDenom string,
	tokenInMaxAmount math.Int,
	tokenOut sdk.Coin,
	spreadFactor math.LegacyDec,
) (SwapResult, error) {
	if !tokenOut.IsValid() || !tokenOut.IsPositive() {
		return SwapResult{}, types.ErrInvalidAmount.Wrapf("token out %s must be positive", tokenOut)
	}
	if err := validateSwapDenoms(pool, tokenInDenom, tokenOut.Denom); err != nil {
		return SwapResult{}, err
	}
	if err := validateSpreadFactor(ctx, pool, spreadFactor); err != nil {
		return SwapResult{}, err
	}

	outDec := tokenOut.Amount.ToLegacyDec()
	rawOut := outDec.Quo(math.LegacyOneDec().Sub(spreadFactor))
	rawOutCoin := sdk.NewCoin(tokenOut.Denom, rawOut.Ceil().TruncateInt())

	inDec, err := pool.CalcInAmtGivenOut(rawOutCoin, tokenInDenom)
	if err != nil {
		return SwapResult{}, err
	}
	inAmount := inDec.Ceil().TruncateInt()
	if !inAmount.IsPositive() {
		return SwapResult{}, types.ErrNonPositiveOutput.Wrapf("token in %s%s", inAmount, tokenInDenom)
	}
	if !tokenInMaxAmount.IsNil() && inAmount.GT(tokenInMaxAmount) {
		return SwapResult{}, types.ErrAboveMaximumInput.Wrapf("expected at most %s, got %s", tokenInMaxAmount, inAmount)
	}

	tokenIn := sdk.NewCoin(tokenInDenom, inAmount)
	if err := pool.ApplySwap(tokenIn, tokenOut); err != nil {
		return SwapResult{}, err
	}

	return SwapResult{
		TokenIn:      tokenIn,
		TokenOut:     tokenOut,
		SpreadFactor: spreadFactor,
		SpreadFee:    rawOut.Sub(outDec),
	}, nil
}

func validateSwapDenoms(pool types.PoolI, denomIn, denomOut string) error {
	if denomIn == denomOut {
		return types.ErrSameDenomSwap.Wrapf("denom %s", denomIn)
	}
	if !types.ContainsDenom(pool, denomIn) {
		return types.ErrDenomNotInPool.Wrapf("pool %d has no %s", pool.GetId(), denomIn)
	}
	if !types.ContainsDenom(pool, denomOut) {
		return types.ErrDenomNotInPool.Wrapf("pool %d has no %s", pool.GetId(), denomOut)
	}
	return nil
}

func validateSpreadFactor(ctx context.Context, pool types.PoolI, spreadFactor math.LegacyDec) error {
	if spreadFactor.IsNil() || spreadFactor.IsNegative() || spreadFactor.GTE(math.LegacyOneDec()) {
		return types.ErrInvalidSpreadFactor.Wrapf("spread factor %s must be in [0,1)", spreadFactor)
	}
	poolSpreadFactor := pool.GetSpreadFactor(ctx)
	minimum := poolSpreadFactor.QuoInt64(2)
	if spreadFactor.LT(minimum) {
		return types.ErrSpreadFactorTooLow.Wrapf(
			"provided %s, pool spread factor %s requires at least %s",
			spreadFactor, poolSpreadFactor, minimum,
		)
	}
	return nil
}

// SwapExactAmountIn swaps tokenIn for at least tokenOutMinAmount on a single
// pool with the given spread factor. No taker fee is charged.
func (k Keeper) SwapExactAmountIn(
	ctx sdk.Context,
	sender sdk.AccAddress,
	poolId uint64,
	tokenIn sdk.Coin,
	tokenOutDenom string,
	tokenOutMinAmount math.Int,
	spreadFactor math.LegacyDec,
) (math.Int, error) {
	return executeAtomic(k, ctx, "swap_exact_amount_in", func(cacheCtx sdk.Context) (math.Int, error) {
		pool, module, err := k.resolveCFMM(cacheCtx, poolId)
		if err != nil {
			return math.Int{}, err
		}
		result, err := k.swapExactAmountIn(cacheCtx, sender, pool, module, tokenIn, tokenOutDenom, tokenOutMinAmount, spreadFactor)
		if err != nil {
			return math.Int{}, err
		}
		return result.TokenOut.Amount, nil
	})
}

// SwapExactAmountOut swaps at most tokenInMaxAmount for exactly tokenOut on a
// single pool with the given spread factor. No taker fee is charged.
func (k Keeper) SwapExactAmountOut(
	ctx sdk.Context,
	sender sdk.AccAddress,
	poolId uint64,
	tokenInDenom string,
	tokenInMaxAmount math.Int,
	tokenOut sdk.Coin,
	spreadFactor math.LegacyDec,
) (math.Int, error) {
	return executeAtomic(k, ctx, "swap_exact_amount_out", func(cacheCtx sdk.Context) (math.Int, error) {
		pool, module, err := k.resolveCFMM(cacheCtx, poolId)
		if err != nil {
			return math.Int{}, err
		}
		result, err := k.swapExactAmountOut(cacheCtx, sender, pool, module, tokenInDenom, tokenInMaxAmount, tokenOut, spreadFactor)
		if err != nil {
			return math.Int{}, err
		}
		return result.TokenIn.Amount, nil
	})
}

func (k Keeper) swapExactAmountIn(
	ctx sdk.Context,
	sender sdk.AccAddress,
	pool types.CFMMPool,
	module types.PoolModuleI,
	tokenIn sdk.Coin,
	tokenOutDenom string,
	tokenOutMinAmount math.Int,
	spreadFactor math.LegacyDec,
) (SwapResult, error) {
	result, err := SwapOutGivenIn(ctx, pool, tokenIn, tokenOutDenom, tokenOutMinAmount, spreadFactor)
	if err != nil {
		return SwapResult{}, err
	}
	if err := k.settleSwap(ctx, sender, pool, module, result); err != nil {
		return SwapResult{}, err
	}
	return result, nil
}

func (k Keeper) swapExactAmountOut(
	ctx sdk.Context,
	sender sdk.AccAddress,
	pool types.CFMMPool,
	module types.PoolModuleI,
	tokenInDenom string,
	tokenInMaxAmount math.Int,
	tokenOut sdk.Coin,
	spreadFactor math.LegacyDec,
) (SwapResult, error) {
	result, err := SwapInGivenOut(ctx, pool, tokenInDenom, tokenInMaxAmount, tokenOut, spreadFactor)
	if err != nil {
		return SwapResult{}, err
	}
	if err := k.settleSwap(ctx, sender, pool, module, result); err != nil {
		return SwapResult{}, err
	}
	return result, nil
}
