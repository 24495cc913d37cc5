package keeper_test

import (
	"context"
	"errors"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/pkg/ledger"
	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

var hookMarker = keepertest.TestAddr("hook_marker")

// markingHooks mints one unit to hookMarker on every call, then fails or
// panics when told to.
type markingHooks struct {
	ledger     *ledger.Ledger
	err        error
	panicValue any

	swaps        int
	poolsCreated []uint64
}

var _ types.PoolManagerHooks = &markingHooks{}

func (h *markingHooks) mark(ctx context.Context) error {
	if err := h.ledger.Fund(ctx, hookMarker, sdk.NewCoins(sdk.NewInt64Coin(denomA, 1))); err != nil {
		return err
	}
	if h.panicValue != nil {
		panic(h.panicValue)
	}
	return h.err
}

func (h *markingHooks) AfterSwap(ctx context.Context, _ sdk.AccAddress, _ uint64, _, _ sdk.Coin) error {
	h.swaps++
	return h.mark(ctx)
}

func (h *markingHooks) AfterPoolCreated(ctx context.Context, _ sdk.AccAddress, poolId uint64, _ types.PoolType) error {
	h.poolsCreated = append(h.poolsCreated, poolId)
	return h.mark(ctx)
}

func TestHooks(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		panicValue any
		expMarks   int64
	}{
		{name: "hook succeeds", expMarks: 4},
		{name: "hook fails", err: errors.New("indexer offline")},
		{name: "hook panics", panicValue: "nil map write"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := keepertest.PoolManagerKeeper(t)
			hooks := &markingHooks{ledger: f.Ledger, err: tc.err, panicValue: tc.panicValue}
			f.Keeper.SetHooks(types.NewMultiPoolManagerHooks(hooks))

			poolAB := f.CreateBalancerPool(t, "0.003", coins(1_000_000, 1_000_000, denomA, denomB))
			poolBC := f.CreateBalancerPool(t, "0.003", coins(1_000_000, 1_000_000, denomB, denomC))
			f.Fund(t, trader, sdk.NewCoins(sdk.NewInt64Coin(denomA, 10_000)))

			// the route settles whatever the hooks do
			out, err := f.Keeper.RouteExactAmountIn(f.Ctx, trader, []types.SwapAmountInRoute{
				{PoolId: poolAB, TokenOutDenom: denomB},
				{PoolId: poolBC, TokenOutDenom: denomC},
			}, sdk.NewInt64Coin(denomA, 10_000), math.OneInt())
			require.NoError(t, err)
			require.Equal(t, out, f.Ledger.GetBalance(f.Ctx, trader, denomC).Amount)

			require.Equal(t, []uint64{poolAB, poolBC}, hooks.poolsCreated)
			require.Equal(t, 2, hooks.swaps)

			// only a successful hook keeps what it wrote
			marks := f.Ledger.GetBalance(f.Ctx, hookMarker, denomA).Amount
			if tc.expMarks == 0 {
				require.True(t, marks.IsZero())
				return
			}
			require.Equal(t, math.NewInt(tc.expMarks), marks)
		})
	}
}

func TestSetHooks_Twice(t *testing.T) {
	f := keepertest.PoolManagerKeeper(t)
	f.Keeper.SetHooks(types.NewMultiPoolManagerHooks())
	require.Panics(t, func() {
		f.Keeper.SetHooks(types.NewMultiPoolManagerHooks())
	})
}
