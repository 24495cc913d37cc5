package types

import (
	"context"
	"errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PoolManagerHooks receives notifications after pool manager state changes.
// Hook errors never revert the operation that triggered them.
type PoolManagerHooks interface {
	// AfterSwap is called after every settled hop.
	AfterSwap(ctx context.Context, sender sdk.AccAddress, poolId uint64, tokenIn, tokenOut sdk.Coin) error

	// AfterPoolCreated is called once a pool is routed and funded.
	AfterPoolCreated(ctx context.Context, creator sdk.AccAddress, poolId uint64, poolType PoolType) error
}

// MultiPoolManagerHooks fans a notification out to several hooks. Every hook
// is called even when an earlier one fails; the errors are joined.
type MultiPoolManagerHooks []PoolManagerHooks

// NewMultiPoolManagerHooks creates a new MultiPoolManagerHooks from a list of hooks.
func NewMultiPoolManagerHooks(hooks ...PoolManagerHooks) MultiPoolManagerHooks {
	return hooks
}

// AfterSwap calls AfterSwap on all registered hooks.
func (h MultiPoolManagerHooks) AfterSwap(ctx context.Context, sender sdk.AccAddress, poolId uint64, tokenIn, tokenOut sdk.Coin) error {
	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterSwap(ctx, sender, poolId, tokenIn, tokenOut); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AfterPoolCreated calls AfterPoolCreated on all registered hooks.
func (h MultiPoolManagerHooks) AfterPoolCreated(ctx context.Context, creator sdk.AccAddress, poolId uint64, poolType PoolType) error {
	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterPoolCreated(ctx, creator, poolId, poolType); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
