package keeper_test

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	cfmmtypes "github.com/paw-chain/pawswap/x/cfmm/types"
	"github.com/paw-chain/pawswap/x/poolmanager/keeper"
	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

func newBalancer(spreadFactor string) *cfmmtypes.BalancerPool {
	return cfmmtypes.NewBalancerPool(1, math.LegacyMustNewDecFromStr(spreadFactor), coins(1_000_000, 1_000_000, denomA, denomB))
}

func TestSwapOutGivenIn_SpreadFactorFloor(t *testing.T) {
	testCases := []struct {
		name         string
		spreadFactor string
		expErr       error
	}{
		{"pool spread factor", "0.003", nil},
		{"exactly half", "0.0015", nil},
		{"above pool spread factor", "0.01", nil},
		{"below half", "0.001", types.ErrSpreadFactorTooLow},
		{"zero", "0", types.ErrSpreadFactorTooLow},
		{"one", "1", types.ErrInvalidSpreadFactor},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pool := newBalancer("0.003")
			_, err := keeper.SwapOutGivenIn(context.Background(), pool, sdk.NewInt64Coin(denomA, 1_000), denomB, math.OneInt(), math.LegacyMustNewDecFromStr(tc.spreadFactor))
			if tc.expErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.expErr)
		})
	}
}

func TestSwapOutGivenIn_ErrorReportsBothFactors(t *testing.T) {
	pool := newBalancer("0.003")
	_, err := keeper.SwapOutGivenIn(context.Background(), pool, sdk.NewInt64Coin(denomA, 1_000), denomB, math.OneInt(), math.LegacyMustNewDecFromStr("0.001"))
	require.ErrorIs(t, err, types.ErrSpreadFactorTooLow)
	require.Contains(t, err.Error(), "0.001000000000000000")
	require.Contains(t, err.Error(), "0.003000000000000000")
	require.Contains(t, err.Error(), "0.001500000000000000")
}

func TestSwapOutGivenIn_Amounts(t *testing.T) {
	pool := newBalancer("0.003")
	spreadFactor := math.LegacyMustNewDecFromStr("0.003")

	raw, err := pool.Copy().CalcOutAmtGivenIn(sdk.NewInt64Coin(denomA, 1_000), denomB)
	require.NoError(t, err)

	result, err := keeper.SwapOutGivenIn(context.Background(), pool, sdk.NewInt64Coin(denomA, 1_000), denomB, math.OneInt(), spreadFactor)
	require.NoError(t, err)

	// raw = 999.000999..., out = Trunc(raw * 0.997) = 996
	require.Equal(t, sdk.NewInt64Coin(denomB, 996), result.TokenOut)
	require.Equal(t, sdk.NewInt64Coin(denomA, 1_000), result.TokenIn)
	require.Equal(t, raw.Sub(raw.Mul(math.LegacyOneDec().Sub(spreadFactor))), result.SpreadFee)

	// the in-memory pool moved
	require.Equal(t, math.NewInt(1_001_000), pool.GetReserves().AmountOf(denomA))
	require.Equal(t, math.NewInt(999_004), pool.GetReserves().AmountOf(denomB))
}

func TestSwapOutGivenIn_Rejections(t *testing.T) {
	sf := math.LegacyMustNewDecFromStr("0.003")

	testCases := []struct {
		name    string
		tokenIn sdk.Coin
		outDen  string
		minOut  math.Int
		expErr  error
	}{
		{"same denom", sdk.NewInt64Coin(denomA, 1_000), denomA, math.OneInt(), types.ErrSameDenomSwap},
		{"denom not in pool", sdk.NewInt64Coin(denomC, 1_000), denomB, math.OneInt(), types.ErrDenomNotInPool},
		{"zero amount", sdk.NewInt64Coin(denomA, 0), denomB, math.OneInt(), types.ErrInvalidAmount},
		{"dust rounds to zero", sdk.NewInt64Coin(denomA, 1), denomB, math.Int{}, types.ErrNonPositiveOutput},
		{"below minimum", sdk.NewInt64Coin(denomA, 1_000), denomB, math.NewInt(997), types.ErrBelowMinimumOutput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pool := newBalancer("0.003")
			_, err := keeper.SwapOutGivenIn(context.Background(), pool, tc.tokenIn, tc.outDen, tc.minOut, sf)
			require.ErrorIs(t, err, tc.expErr)
			// a rejected swap never touches the pool
			require.Equal(t, math.NewInt(1_000_000), pool.GetReserves().AmountOf(denomA))
		})
	}
}

func TestSwapInGivenOut_Amounts(t *testing.T) {
	pool := newBalancer("0.003")
	sf := math.LegacyMustNewDecFromStr("0.003")

	// raw out = Ceil(996 / 0.997) = 999, in = Ceil(1_000_000 * 999 / 999_001) = 1_000
	result, err := keeper.SwapInGivenOut(context.Background(), pool, denomA, math.NewInt(1_000), sdk.NewInt64Coin(denomB, 996), sf)
	require.NoError(t, err)
	require.Equal(t, sdk.NewInt64Coin(denomA, 1_000), result.TokenIn)
	require.Equal(t, sdk.NewInt64Coin(denomB, 996), result.TokenOut)

	_, err = keeper.SwapInGivenOut(context.Background(), newBalancer("0.003"), denomA, math.NewInt(999), sdk.NewInt64Coin(denomB, 996), sf)
	require.ErrorIs(t, err, types.ErrAboveMaximumInput)

	_, err = keeper.SwapInGivenOut(context.Background(), newBalancer("0.003"), denomA, math.Int{}, sdk.NewInt64Coin(denomB, 996), math.LegacyMustNewDecFromStr("0.001"))
	require.ErrorIs(t, err, types.ErrSpreadFactorTooLow)
}

func TestSwapExactAmountIn_SettlesSingleHop(t *testing.T) {
	f := keepertest.PoolManagerKeeper(t)
	poolId := f.CreateBalancerPool(t, "0.003", coins(1_000_000, 1_000_000, denomA, denomB))
	f.Fund(t, trader, sdk.NewCoins(sdk.NewInt64Coin(denomA, 10_000)))
	ctx := f.Ctx.WithEventManager(sdk.NewEventManager())

	// half the pool's spread factor is accepted
	out, err := f.Keeper.SwapExactAmountIn(ctx, trader, poolId, sdk.NewInt64Coin(denomA, 1_000), denomB, math.OneInt(), math.LegacyMustNewDecFromStr("0.0015"))
	require.NoError(t, err)
	require.True(t, out.IsPositive())

	require.Equal(t, math.NewInt(9_000), f.Ledger.GetBalance(ctx, trader, denomA).Amount)
	require.Equal(t, out, f.Ledger.GetBalance(ctx, trader, denomB).Amount)

	pool, err := f.Keeper.GetPool(ctx, poolId)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_001_000), pool.GetReserves().AmountOf(denomA))
	require.Equal(t, math.NewInt(1_000_000).Sub(out), pool.GetReserves().AmountOf(denomB))
	require.True(t, f.Ledger.GetAllBalances(ctx, pool.GetAddress()).Equal(pool.GetReserves()))

	liquidityA, err := f.Keeper.GetDenomLiquidity(ctx, denomA)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_001_000), liquidityA)

	event := requireEvent(t, ctx, types.EventTypeTokenSwapped)
	require.Equal(t, "1000uatom", attrValue(event, types.AttributeKeyTokensIn))

	// below half is rejected and nothing changes
	_, err = f.Keeper.SwapExactAmountIn(ctx, trader, poolId, sdk.NewInt64Coin(denomA, 1_000), denomB, math.OneInt(), math.LegacyMustNewDecFromStr("0.001"))
	require.ErrorIs(t, err, types.ErrSpreadFactorTooLow)
	require.Equal(t, math.NewInt(9_000), f.Ledger.GetBalance(ctx, trader, denomA).Amount)
}

func TestSwapExactAmountOut_SettlesSingleHop(t *testing.T) {
	f := keepertest.PoolManagerKeeper(t)
	poolId := f.CreateBalancerPool(t, "0.003", coins(1_000_000, 1_000_000, denomA, denomB))
	f.Fund(t, trader, sdk.NewCoins(sdk.NewInt64Coin(denomA, 10_000)))

	in, err := f.Keeper.SwapExactAmountOut(f.Ctx, trader, poolId, denomA, math.NewInt(1_000), sdk.NewInt64Coin(denomB, 996), math.LegacyMustNewDecFromStr("0.003"))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000), in)
	require.Equal(t, math.NewInt(996), f.Ledger.GetBalance(f.Ctx, trader, denomB).Amount)
	require.Equal(t, math.NewInt(9_000), f.Ledger.GetBalance(f.Ctx, trader, denomA).Amount)
}

func TestSwapExactAmountIn_InsufficientFundsRollsBack(t *testing.T) {
	f := keepertest.PoolManagerKeeper(t)
	poolId := f.CreateBalancerPool(t, "0.003", coins(1_000_000, 1_000_000, denomA, denomB))

	_, err := f.Keeper.SwapExactAmountIn(f.Ctx, trader, poolId, sdk.NewInt64Coin(denomA, 1_000), denomB, math.OneInt(), math.LegacyMustNewDecFromStr("0.003"))
	require.ErrorIs(t, err, types.ErrTransferFailed)
	require.Contains(t, err.Error(), "insufficient funds")

	pool, err := f.Keeper.GetPool(f.Ctx, poolId)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), pool.GetReserves().AmountOf(denomA))
}

func TestSwapOutGivenIn_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		poolPermille := rapid.Int64Range(0, 100).Draw(t, "poolSpreadFactor")
		callerPermille := rapid.Int64Range(0, 200).Draw(t, "callerSpreadFactor")
		amountIn := rapid.Int64Range(1_000, 100_000).Draw(t, "amountIn")

		poolSF := math.LegacyNewDecWithPrec(poolPermille, 3)
		callerSF := math.LegacyNewDecWithPrec(callerPermille, 3)
		pool := cfmmtypes.NewBalancerPool(1, poolSF, coins(10_000_000, 10_000_000, denomA, denomB))
		tokenIn := sdk.NewInt64Coin(denomA, amountIn)

		raw, err := pool.CalcOutAmtGivenIn(tokenIn, denomB)
		if err != nil {
			t.Fatalf("calc: %v", err)
		}

		first, err := keeper.SwapOutGivenIn(context.Background(), pool.Copy(), tokenIn, denomB, math.Int{}, callerSF)
		accepted := callerSF.GTE(poolSF.QuoInt64(2))
		if !accepted {
			if err == nil {
				t.Fatalf("spread factor %s accepted for pool %s", callerSF, poolSF)
			}
			return
		}
		if err != nil {
			t.Fatalf("swap rejected: %v", err)
		}

		expected := raw.Mul(math.LegacyOneDec().Sub(callerSF)).TruncateInt()
		if !first.TokenOut.Amount.Equal(expected) {
			t.Fatalf("out %s, expected %s", first.TokenOut.Amount, expected)
		}

		second, err := keeper.SwapOutGivenIn(context.Background(), pool.Copy(), tokenIn, denomB, math.Int{}, callerSF)
		if err != nil || !second.TokenOut.Equal(first.TokenOut) || !second.SpreadFee.Equal(first.SpreadFee) {
			t.Fatalf("swap is not deterministic: %v vs %v (%v)", first, second, err)
		}
	})
}
