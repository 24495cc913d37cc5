package types_test

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/cfmm/types"
	poolmanagertypes "github.com/paw-chain/pawswap/x/poolmanager/types"
)

var creatorAddr = sdk.AccAddress([]byte("pool_creator________"))

func TestMsgCreateBalancerPool_ValidateBasic(t *testing.T) {
	testCases := []struct {
		name   string
		msg    types.MsgCreateBalancerPool
		expErr error
	}{
		{
			name: "valid",
			msg: types.MsgCreateBalancerPool{
				Sender:       creatorAddr.String(),
				SpreadFactor: math.LegacyMustNewDecFromStr("0.003"),
				Liquidity:    balancedCoins(1_000),
			},
		},
		{
			name: "invalid sender",
			msg: types.MsgCreateBalancerPool{
				Sender:       "invalid",
				SpreadFactor: math.LegacyZeroDec(),
				Liquidity:    balancedCoins(1_000),
			},
			expErr: types.ErrInvalidCreator,
		},
		{
			name: "spread factor out of range",
			msg: types.MsgCreateBalancerPool{
				Sender:       creatorAddr.String(),
				SpreadFactor: math.LegacyOneDec(),
				Liquidity:    balancedCoins(1_000),
			},
			expErr: poolmanagertypes.ErrInvalidSpreadFactor,
		},
		{
			name: "three assets",
			msg: types.MsgCreateBalancerPool{
				Sender:       creatorAddr.String(),
				SpreadFactor: math.LegacyZeroDec(),
				Liquidity:    balancedCoins(1_000).Add(sdk.NewInt64Coin("uosmo", 1)),
			},
			expErr: types.ErrInvalidPool,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.expErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.expErr)
		})
	}
}

func TestMsgCreateStableswapPool_ScalingFactors(t *testing.T) {
	msg := types.MsgCreateStableswapPool{
		Sender:         creatorAddr.String(),
		SpreadFactor:   math.LegacyZeroDec(),
		Liquidity:      balancedCoins(1_000),
		ScalingFactors: []uint64{1},
	}
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrInvalidScalingFactor)

	msg.ScalingFactors = []uint64{1, 100}
	require.NoError(t, msg.ValidateBasic())

	pool, err := msg.CreatePool(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, uint64(7), pool.GetId())
	require.Equal(t, poolmanagertypes.Stableswap, pool.GetType())
	require.NoError(t, pool.Validate())
}

func TestMsgCreateConcentratedPool_ValidateBasic(t *testing.T) {
	valid := types.MsgCreateConcentratedPool{
		Sender:       creatorAddr.String(),
		SpreadFactor: math.LegacyMustNewDecFromStr("0.001"),
		Token0:       sdk.NewInt64Coin("uatom", 1_000),
		Token1:       sdk.NewInt64Coin("upaw", 1_000),
		CurrentPrice: math.LegacyOneDec(),
		LowerPrice:   math.LegacyMustNewDecFromStr("0.5"),
		UpperPrice:   math.LegacyNewDec(2),
	}
	require.NoError(t, valid.ValidateBasic())
	require.Equal(t, valid.Sender, valid.PoolCreator().String())

	sameDenom := valid
	sameDenom.Token1 = sdk.NewInt64Coin("uatom", 1_000)
	require.ErrorIs(t, sameDenom.ValidateBasic(), types.ErrInvalidPool)

	inverted := valid
	inverted.LowerPrice = math.LegacyNewDec(3)
	require.ErrorIs(t, inverted.ValidateBasic(), types.ErrPriceOutOfRange)
}
