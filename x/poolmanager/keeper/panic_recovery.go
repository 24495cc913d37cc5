package keeper

import (
	"fmt"
	"runtime/debug"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// recoverPanic converts a recovered panic value into ErrInternalPanic. It logs
// the stack and emits a panic_recovered event on ctx, which must be the
// caller's context and not the discarded cache context.
func (k Keeper) recoverPanic(ctx sdk.Context, handler string, r any) error {
	k.Logger(ctx).Error("PANIC RECOVERED",
		"handler", handler,
		"panic", fmt.Sprintf("%v", r),
		"stack_trace", string(debug.Stack()),
	)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePanicRecovered,
			sdk.NewAttribute(types.AttributeKeyHandler, handler),
			sdk.NewAttribute(types.AttributeKeyError, fmt.Sprintf("%v", r)),
			sdk.NewAttribute(types.AttributeKeySeverity, types.AttributeValueSeverityAlert),
		),
	)
	k.metrics.recordPanic(handler)

	return types.ErrInternalPanic.Wrapf("%s: %v", handler, r)
}

// executeAtomic runs fn against a cache context. State and events are
// committed to ctx only when fn returns without error or panic.
func executeAtomic[T any](k Keeper, ctx sdk.Context, handler string, fn func(cacheCtx sdk.Context) (T, error)) (result T, err error) {
	cacheCtx, write := ctx.CacheContext()

	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			err = k.recoverPanic(ctx, handler, r)
		}
	}()

	result, err = fn(cacheCtx)
	if err != nil {
		var zero T
		return zero, err
	}

	write()
	return result, nil
}

// simulate runs fn against a cache context that is always discarded, under
// the node's estimate gas limit.
func simulate[T any](k Keeper, ctx sdk.Context, handler string, fn func(cacheCtx sdk.Context) (T, error)) (result T, err error) {
	cacheCtx, _ := ctx.CacheContext()
	cacheCtx = cacheCtx.WithGasMeter(storetypes.NewGasMeter(k.nodeConfig.EstimateGasLimit))

	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			err = types.ErrInternalPanic.Wrapf("%s: %v", handler, r)
		}
	}()

	return fn(cacheCtx)
}
