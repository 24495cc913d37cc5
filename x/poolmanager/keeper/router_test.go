package keeper_test

import (
	"context"
	"errors"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/poolmanager/keeper"
	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// panickingModule owns cosmwasm pools and panics on every pool lookup.
type panickingModule struct{}

var _ types.PoolModuleI = panickingModule{}

func (panickingModule) PoolTypes() []types.PoolType { return []types.PoolType{types.CosmWasm} }
func (panickingModule) GetPool(context.Context, uint64) (types.PoolI, error) {
	panic("contract state corrupted")
}
func (panickingModule) GetPools(context.Context) ([]types.PoolI, error) { return nil, nil }
func (panickingModule) SetPool(context.Context, types.PoolI) error      { return nil }
func (panickingModule) InitializePool(context.Context, types.PoolI, sdk.AccAddress) error {
	return nil
}
func (panickingModule) AsCFMM(types.PoolI) (types.CFMMPool, error) {
	return nil, errors.New("unsupported")
}

func (f *routeFixture) abcRoute() []types.SwapAmountInRoute {
	return []types.SwapAmountInRoute{
		{PoolId: f.poolAB, TokenOutDenom: denomB},
		{PoolId: f.poolBC, TokenOutDenom: denomC},
	}
}

func TestRouteExactAmountIn_TwoHops(t *testing.T) {
	f := setupRoutes(t)
	ctx := f.Ctx.WithEventManager(sdk.NewEventManager())
	tokenIn := sdk.NewInt64Coin(denomA, 10_000)

	estimate, err := f.Keeper.EstimateSwapExactAmountIn(ctx, f.abcRoute(), tokenIn)
	require.NoError(t, err)

	result, err := f.Keeper.RouteExactAmountInWithResult(ctx, trader, f.abcRoute(), tokenIn, estimate)
	require.NoError(t, err)
	require.Equal(t, estimate, result.TokenOut.Amount)
	require.Equal(t, denomC, result.TokenOut.Denom)
	require.Len(t, result.Hops, 2)

	// the intermediate denom passes through the trader untouched
	require.Equal(t, result.Hops[0].TokenOut.Amount, result.Hops[1].TokenIn.Amount.Add(result.Hops[1].TakerFee.Amount))
	require.True(t, sdk.NewCoins(result.Hops[0].TakerFee, result.Hops[1].TakerFee).Equal(result.TakerFees))

	balances := f.balance(trader)
	require.Equal(t, math.NewInt(990_000), balances.AmountOf(denomA))
	require.Equal(t, math.NewInt(1_000_000), balances.AmountOf(denomB))
	require.Equal(t, math.NewInt(1_000_000).Add(estimate), balances.AmountOf(denomC))

	event := requireEvent(t, ctx, types.EventTypeRouteSwap)
	require.Equal(t, "2", attrValue(event, types.AttributeKeyHops))
	require.Equal(t, tokenIn.String(), attrValue(event, types.AttributeKeyTokensIn))
	require.True(t, hasEvent(ctx, types.EventTypeTakerFeeDistributed))
}

func TestRouteExactAmountIn_FailedHopRollsBackEarlierHops(t *testing.T) {
	f := setupRoutes(t)
	tokenIn := sdk.NewInt64Coin(denomA, 10_000)

	estimate, err := f.Keeper.EstimateSwapExactAmountIn(f.Ctx, f.abcRoute(), tokenIn)
	require.NoError(t, err)

	reservesAB, reservesBC := f.reserves(t, f.poolAB), f.reserves(t, f.poolBC)
	traderBefore := f.balance(trader)
	ctx := f.Ctx.WithEventManager(sdk.NewEventManager())

	// hop 1 succeeds, hop 2 cannot meet the minimum
	_, err = f.Keeper.RouteExactAmountIn(ctx, trader, f.abcRoute(), tokenIn, estimate.AddRaw(1))
	require.ErrorIs(t, err, types.ErrBelowMinimumOutput)
	require.Contains(t, err.Error(), "hop 2")

	require.Equal(t, reservesAB, f.reserves(t, f.poolAB))
	require.Equal(t, reservesBC, f.reserves(t, f.poolBC))
	require.Equal(t, traderBefore, f.balance(trader))
	require.True(t, f.balance(types.TakerFeeCollectorAddress()).IsZero())

	collected, err := f.Keeper.GetTakerFeeCollected(f.Ctx, true, denomA)
	require.NoError(t, err)
	require.True(t, collected.IsZero())

	liquidityB, err := f.Keeper.GetDenomLiquidity(f.Ctx, denomB)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(2_000_000), liquidityB)

	require.False(t, hasEvent(ctx, types.EventTypeTokenSwapped))
	require.False(t, hasEvent(ctx, types.EventTypeRouteSwap))
}

func TestRouteExactAmountIn_RecoversPanic(t *testing.T) {
	f := setupRoutes(t)
	f.Keeper.SetPoolModules(f.CFMMKeeper, panickingModule{})
	require.NoError(t, f.Keeper.RegisterRoute(f.Ctx, 99, types.CosmWasm))

	reservesAB := f.reserves(t, f.poolAB)
	traderBefore := f.balance(trader)
	ctx := f.Ctx.WithEventManager(sdk.NewEventManager())

	out, err := f.Keeper.RouteExactAmountIn(ctx, trader, []types.SwapAmountInRoute{
		{PoolId: f.poolAB, TokenOutDenom: denomB},
		{PoolId: 99, TokenOutDenom: denomC},
	}, sdk.NewInt64Coin(denomA, 10_000), math.OneInt())
	require.ErrorIs(t, err, types.ErrInternalPanic)
	require.Contains(t, err.Error(), "contract state corrupted")
	require.True(t, out.IsNil())

	require.Equal(t, reservesAB, f.reserves(t, f.poolAB))
	require.Equal(t, traderBefore, f.balance(trader))

	event := requireEvent(t, ctx, types.EventTypePanicRecovered)
	require.Equal(t, "route_exact_amount_in", attrValue(event, types.AttributeKeyHandler))
	require.False(t, hasEvent(ctx, types.EventTypeTokenSwapped))
}

func TestRouteExactAmountIn_Rejections(t *testing.T) {
	testCases := []struct {
		name    string
		routes  func(f *routeFixture) []types.SwapAmountInRoute
		tokenIn sdk.Coin
		minOut  math.Int
		expErr  error
	}{
		{
			name:    "empty route",
			routes:  func(*routeFixture) []types.SwapAmountInRoute { return nil },
			tokenIn: sdk.NewInt64Coin(denomA, 1_000),
			minOut:  math.OneInt(),
			expErr:  types.ErrInvalidRoute,
		},
		{
			name: "too many hops",
			routes: func(f *routeFixture) []types.SwapAmountInRoute {
				return []types.SwapAmountInRoute{
					{PoolId: f.poolAB, TokenOutDenom: denomB},
					{PoolId: f.poolAB, TokenOutDenom: denomA},
					{PoolId: f.poolAB, TokenOutDenom: denomB},
					{PoolId: f.poolAB, TokenOutDenom: denomA},
					{PoolId: f.poolAB, TokenOutDenom: denomB},
					{PoolId: f.poolAB, TokenOutDenom: denomA},
				}
			},
			tokenIn: sdk.NewInt64Coin(denomA, 1_000),
			minOut:  math.OneInt(),
			expErr:  types.ErrInvalidRoute,
		},
		{
			name: "unknown pool",
			routes: func(*routeFixture) []types.SwapAmountInRoute {
				return []types.SwapAmountInRoute{{PoolId: 42, TokenOutDenom: denomB}}
			},
			tokenIn: sdk.NewInt64Coin(denomA, 1_000),
			minOut:  math.OneInt(),
			expErr:  types.ErrPoolNotFound,
		},
		{
			name: "denom not in pool",
			routes: func(f *routeFixture) []types.SwapAmountInRoute {
				return []types.SwapAmountInRoute{{PoolId: f.poolBC, TokenOutDenom: denomC}}
			},
			tokenIn: sdk.NewInt64Coin(denomA, 1_000),
			minOut:  math.OneInt(),
			expErr:  types.ErrDenomNotInPool,
		},
		{
			name:    "zero minimum",
			routes:  (*routeFixture).abcRoute,
			tokenIn: sdk.NewInt64Coin(denomA, 1_000),
			minOut:  math.ZeroInt(),
			expErr:  types.ErrInvalidAmount,
		},
		{
			name:    "more than the trader holds",
			routes:  (*routeFixture).abcRoute,
			tokenIn: sdk.NewInt64Coin(denomA, 2_000_000),
			minOut:  math.OneInt(),
			expErr:  types.ErrTransferFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := setupRoutes(t)
			traderBefore := f.balance(trader)

			_, err := f.Keeper.RouteExactAmountIn(f.Ctx, trader, tc.routes(f), tc.tokenIn, tc.minOut)
			require.ErrorIs(t, err, tc.expErr)
			require.Equal(t, traderBefore, f.balance(trader))
		})
	}
}

func TestRouteExactAmountIn_UnroutablePoolType(t *testing.T) {
	f := setupRoutes(t)
	require.NoError(t, f.Keeper.RegisterRoute(f.Ctx, 99, types.CosmWasm))

	_, err := f.Keeper.RouteExactAmountIn(f.Ctx, trader, []types.SwapAmountInRoute{
		{PoolId: 99, TokenOutDenom: denomB},
	}, sdk.NewInt64Coin(denomA, 1_000), math.OneInt())
	require.ErrorIs(t, err, types.ErrUnroutablePoolType)
	require.Contains(t, err.Error(), "hop 1 (pool 99)")
}

func TestRouteExactAmountOut_TwoHops(t *testing.T) {
	f := setupRoutes(t)
	routes := []types.SwapAmountOutRoute{
		{PoolId: f.poolAB, TokenInDenom: denomA},
		{PoolId: f.poolBC, TokenInDenom: denomB},
	}
	tokenOut := sdk.NewInt64Coin(denomC, 1_000)

	estimate, err := f.Keeper.EstimateSwapExactAmountOut(f.Ctx, routes, tokenOut)
	require.NoError(t, err)

	_, err = f.Keeper.RouteExactAmountOut(f.Ctx, trader, routes, estimate.SubRaw(1), tokenOut)
	require.ErrorIs(t, err, types.ErrAboveMaximumInput)

	result, err := f.Keeper.RouteExactAmountOutWithResult(f.Ctx, trader, routes, estimate, tokenOut)
	require.NoError(t, err)
	require.Equal(t, estimate, result.TokenIn.Amount)
	require.Equal(t, tokenOut, result.TokenOut)
	require.Len(t, result.Hops, 2)

	balances := f.balance(trader)
	require.Equal(t, math.NewInt(1_000_000).Sub(estimate), balances.AmountOf(denomA))
	require.Equal(t, math.NewInt(1_000_000), balances.AmountOf(denomB))
	require.Equal(t, math.NewInt(1_001_000), balances.AmountOf(denomC))
	require.True(t, f.balance(types.TakerFeeCollectorAddress()).IsZero())
}

func TestExecuteAtomic(t *testing.T) {
	f := setupRoutes(t)
	minted := sdk.NewCoins(sdk.NewInt64Coin(denomA, 5))
	recipient := sdk.AccAddress("recipient___________")

	testCases := []struct {
		name      string
		fn        func(cacheCtx sdk.Context) (int, error)
		expErr    error
		expResult int
		committed bool
	}{
		{
			name: "success commits",
			fn: func(cacheCtx sdk.Context) (int, error) {
				return 7, f.Ledger.Fund(cacheCtx, recipient, minted)
			},
			expResult: 7,
			committed: true,
		},
		{
			name: "error discards",
			fn: func(cacheCtx sdk.Context) (int, error) {
				if err := f.Ledger.Fund(cacheCtx, recipient, minted); err != nil {
					return 0, err
				}
				return 7, types.ErrInvalidRoute
			},
			expErr: types.ErrInvalidRoute,
		},
		{
			name: "panic discards",
			fn: func(cacheCtx sdk.Context) (int, error) {
				if err := f.Ledger.Fund(cacheCtx, recipient, minted); err != nil {
					return 0, err
				}
				panic("boom")
			},
			expErr: types.ErrInternalPanic,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := f.Ctx.CacheContext()
			result, err := keeper.ExecuteAtomicForTest(*f.Keeper, ctx, "test", tc.fn)
			if tc.expErr != nil {
				require.ErrorIs(t, err, tc.expErr)
				require.Zero(t, result)
			} else {
				require.NoError(t, err)
				require.Equal(t, tc.expResult, result)
			}
			require.Equal(t, tc.committed, !f.Ledger.GetAllBalances(ctx, recipient).IsZero())
		})
	}
}

func TestRouteExactAmountOut_RevisitsPool(t *testing.T) {
	f := setupRoutes(t)
	// B -> C -> A -> B -> C trades through pool BC twice
	routes := []types.SwapAmountOutRoute{
		{PoolId: f.poolBC, TokenInDenom: denomB},
		{PoolId: f.poolAC, TokenInDenom: denomC},
		{PoolId: f.poolAB, TokenInDenom: denomA},
		{PoolId: f.poolBC, TokenInDenom: denomB},
	}
	tokenOut := sdk.NewInt64Coin(denomC, 50_000)

	estimate, err := f.Keeper.EstimateSwapExactAmountOut(f.Ctx, routes, tokenOut)
	require.NoError(t, err)

	_, err = f.Keeper.RouteExactAmountOut(f.Ctx, trader, routes, estimate.SubRaw(1), tokenOut)
	require.ErrorIs(t, err, types.ErrAboveMaximumInput)

	result, err := f.Keeper.RouteExactAmountOutWithResult(f.Ctx, trader, routes, math.NewInt(1_000_000), tokenOut)
	require.NoError(t, err)
	require.Equal(t, estimate, result.TokenIn.Amount)
	require.Len(t, result.Hops, 4)

	// every intermediate output pays exactly for the next hop
	for i := 0; i < len(result.Hops)-1; i++ {
		next := result.Hops[i+1]
		require.Equal(t, result.Hops[i].TokenOut, next.TokenIn.Add(next.TakerFee), "hop %d", i+1)
	}

	balances := f.balance(trader)
	require.Equal(t, math.NewInt(1_000_000), balances.AmountOf(denomA))
	require.Equal(t, math.NewInt(1_000_000).Sub(estimate), balances.AmountOf(denomB))
	require.Equal(t, math.NewInt(1_050_000), balances.AmountOf(denomC))

	msg, broken := keeper.AllInvariants(*f.Keeper)(f.Ctx)
	require.False(t, broken, msg)
}
