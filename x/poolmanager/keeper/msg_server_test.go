package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/poolmanager/keeper"
	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

func TestMsgServer_Swaps(t *testing.T) {
	f := setupRoutes(t)
	ms := keeper.NewMsgServerImpl(*f.Keeper)

	inResp, err := ms.SwapExactAmountIn(f.Ctx, &types.MsgSwapExactAmountIn{
		Sender:            trader.String(),
		Routes:            f.abcRoute(),
		TokenIn:           sdk.NewInt64Coin(denomA, 1_000),
		TokenOutMinAmount: math.OneInt(),
	})
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000).Add(inResp.TokenOutAmount), f.balance(trader).AmountOf(denomC))

	outResp, err := ms.SwapExactAmountOut(f.Ctx, &types.MsgSwapExactAmountOut{
		Sender:           trader.String(),
		Routes:           []types.SwapAmountOutRoute{{PoolId: f.poolAC, TokenInDenom: denomA}},
		TokenInMaxAmount: math.NewInt(2_000),
		TokenOut:         sdk.NewInt64Coin(denomC, 1_000),
	})
	require.NoError(t, err)
	require.Equal(t, math.NewInt(999_000).Sub(outResp.TokenInAmount), f.balance(trader).AmountOf(denomA))

	splitResp, err := ms.SplitRouteSwapExactAmountIn(f.Ctx, &types.MsgSplitRouteSwapExactAmountIn{
		Sender:            trader.String(),
		Routes:            f.splitIn(1_000, 1_000),
		TokenInDenom:      denomA,
		TokenOutMinAmount: math.OneInt(),
	})
	require.NoError(t, err)
	require.True(t, splitResp.TokenOutAmount.IsPositive())

	splitOutResp, err := ms.SplitRouteSwapExactAmountOut(f.Ctx, &types.MsgSplitRouteSwapExactAmountOut{
		Sender: trader.String(),
		Routes: []types.SwapAmountOutSplitRoute{
			{Pools: []types.SwapAmountOutRoute{{PoolId: f.poolAC, TokenInDenom: denomA}}, TokenOutAmount: math.NewInt(100)},
			{Pools: []types.SwapAmountOutRoute{{PoolId: f.poolAB, TokenInDenom: denomA}, {PoolId: f.poolBC, TokenInDenom: denomB}}, TokenOutAmount: math.NewInt(100)},
		},
		TokenOutDenom:    denomC,
		TokenInMaxAmount: math.NewInt(1_000),
	})
	require.NoError(t, err)
	require.True(t, splitOutResp.TokenInAmount.GT(math.NewInt(200)))
}

func TestMsgServer_SwapRejections(t *testing.T) {
	f := setupRoutes(t)
	ms := keeper.NewMsgServerImpl(*f.Keeper)

	_, err := ms.SwapExactAmountIn(f.Ctx, &types.MsgSwapExactAmountIn{
		Sender:            "not-an-address",
		Routes:            f.abcRoute(),
		TokenIn:           sdk.NewInt64Coin(denomA, 1_000),
		TokenOutMinAmount: math.OneInt(),
	})
	require.ErrorIs(t, err, types.ErrInvalidAddress)

	_, err = ms.SwapExactAmountIn(f.Ctx, &types.MsgSwapExactAmountIn{
		Sender:            trader.String(),
		Routes:            f.abcRoute(),
		TokenIn:           sdk.NewInt64Coin(denomA, 1_000),
		TokenOutMinAmount: math.NewInt(1_000_000),
	})
	require.ErrorIs(t, err, types.ErrBelowMinimumOutput)
	require.Contains(t, err.Error(), "SwapExactAmountIn")
}

func TestMsgServer_Admin(t *testing.T) {
	f := setupRoutes(t)
	ms := keeper.NewMsgServerImpl(*f.Keeper)
	fee := []types.DenomPairTakerFee{{DenomA: denomA, DenomB: denomC, TakerFee: math.LegacyMustNewDecFromStr("0.005")}}

	_, err := ms.SetDenomPairTakerFee(f.Ctx, &types.MsgSetDenomPairTakerFee{Sender: trader.String(), DenomPairTakerFees: fee})
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = ms.SetDenomPairTakerFee(f.Ctx, &types.MsgSetDenomPairTakerFee{Sender: f.Admin.String(), DenomPairTakerFees: fee})
	require.NoError(t, err)
	rate, err := f.Keeper.GetTradingPairTakerFee(f.Ctx, denomC, denomA)
	require.NoError(t, err)
	require.Equal(t, "0.005000000000000000", rate.String())

	params := types.DefaultParams()
	params.TakerFeeParams.DefaultTakerFee = math.LegacyMustNewDecFromStr("0.002")

	_, err = ms.UpdateParams(f.Ctx, &types.MsgUpdateParams{Authority: trader.String(), Params: params})
	require.ErrorIs(t, err, govtypes.ErrInvalidSigner)

	_, err = ms.UpdateParams(f.Ctx, &types.MsgUpdateParams{Authority: f.Authority.String(), Params: params})
	require.NoError(t, err)
	rate, err = f.Keeper.GetTradingPairTakerFee(f.Ctx, denomA, denomB)
	require.NoError(t, err)
	require.Equal(t, "0.002000000000000000", rate.String())
}
