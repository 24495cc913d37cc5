package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// settleSwap commits a priced swap: the pool is persisted, coins move between
// sender and pool custody, the swap is announced, liquidity counters follow
// the flow and hooks are notified.
func (k Keeper) settleSwap(ctx sdk.Context, sender sdk.AccAddress, pool types.CFMMPool, module types.PoolModuleI, result SwapResult) error {
	if err := module.SetPool(ctx, pool); err != nil {
		return err
	}

	poolAddr := pool.GetAddress()
	if err := k.sendCoins(ctx, sender, poolAddr, sdk.NewCoins(result.TokenIn)); err != nil {
		return err
	}
	if err := k.sendCoins(ctx, poolAddr, sender, sdk.NewCoins(result.TokenOut)); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTokenSwapped,
			sdk.NewAttribute(types.AttributeKeyPoolId, fmt.Sprintf("%d", pool.GetId())),
			sdk.NewAttribute(types.AttributeKeyPoolType, pool.GetType().String()),
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyTokensIn, result.TokenIn.String()),
			sdk.NewAttribute(types.AttributeKeyTokensOut, result.TokenOut.String()),
			sdk.NewAttribute(types.AttributeKeySpreadFactor, result.SpreadFactor.String()),
			sdk.NewAttribute(types.AttributeKeySpreadFee, result.SpreadFee.String()),
		),
	)

	if err := k.increaseDenomLiquidity(ctx, result.TokenIn.Denom, result.TokenIn.Amount); err != nil {
		return err
	}
	if err := k.decreaseDenomLiquidity(ctx, result.TokenOut.Denom, result.TokenOut.Amount); err != nil {
		return err
	}

	k.metrics.recordSwap(
		pool.GetType().String(),
		result.TokenIn.Denom,
		result.TokenOut.Denom,
		toFloat(result.TokenIn.Amount),
		toFloat(result.SpreadFee.TruncateInt()),
	)

	k.callAfterSwapHooks(ctx, sender, pool.GetId(), result)
	return nil
}

// callAfterSwapHooks runs the hooks in their own cache context. Whatever the
// hooks do, including panicking, the swap is kept.
func (k Keeper) callAfterSwapHooks(ctx sdk.Context, sender sdk.AccAddress, poolId uint64, result SwapResult) {
	if k.hooks == nil {
		return
	}
	k.runHook(ctx, "after_swap", func(hookCtx sdk.Context) error {
		return k.hooks.AfterSwap(hookCtx, sender, poolId, result.TokenIn, result.TokenOut)
	})
}

func (k Keeper) runHook(ctx sdk.Context, name string, fn func(hookCtx sdk.Context) error) {
	hookCtx, write := ctx.CacheContext()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("hook panicked: %v", r)
			}
		}()
		return fn(hookCtx)
	}()
	if err != nil {
		k.Logger(ctx).Error("pool manager hook failed", "hook", name, "error", err)
		k.metrics.recordHookFailure(name)
		return
	}
	write()
}

func (k Keeper) sendCoins(ctx sdk.Context, from, to sdk.AccAddress, coins sdk.Coins) error {
	if coins.IsZero() {
		return nil
	}
	if err := k.bankKeeper.SendCoins(ctx, from, to, coins); err != nil {
		return fmt.Errorf("%w: send %s from %s to %s: %w", types.ErrTransferFailed, coins, from, to, err)
	}
	return nil
}
