package types

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	params := DefaultParams()
	require.NoError(t, params.Validate())

	require.Equal(t, "0.001000000000000000", params.TakerFeeParams.DefaultTakerFee.String())
	require.True(t, params.TakerFeeParams.PrimaryDistribution.StakingRewards.Equal(dec("1")))
	require.True(t, params.TakerFeeParams.NonPrimaryDistribution.StakingRewards.Equal(dec("0.67")))
	require.True(t, params.TakerFeeParams.NonPrimaryDistribution.CommunityPool.Equal(dec("0.33")))
	require.Equal(t, sdk.NewCoins(sdk.NewInt64Coin(DefaultQuoteDenom, 1_000_000)), params.PoolCreationFee)
	require.Equal(t, DefaultMaxHops, params.MaxHops)
	require.Empty(t, params.FeeDistributionContract)
}

func TestParams_Validate(t *testing.T) {
	addr := authtypes.NewModuleAddress("someone").String()

	tests := []struct {
		name    string
		modify  func(*Params)
		wantErr bool
	}{
		{"default", func(*Params) {}, false},
		{"contract set", func(p *Params) { p.FeeDistributionContract = addr }, false},
		{"bad contract", func(p *Params) { p.FeeDistributionContract = "wasm1xyz" }, true},
		{"taker fee above one", func(p *Params) { p.TakerFeeParams.DefaultTakerFee = dec("1.01") }, true},
		{"negative taker fee", func(p *Params) { p.TakerFeeParams.DefaultTakerFee = dec("-0.01") }, true},
		{"primary split off", func(p *Params) {
			p.TakerFeeParams.PrimaryDistribution = NewTakerFeeDistribution(dec("0.9"), dec("0.2"))
		}, true},
		{"non-primary split off", func(p *Params) {
			p.TakerFeeParams.NonPrimaryDistribution = NewTakerFeeDistribution(dec("0.6"), dec("0.3"))
		}, true},
		{"admin", func(p *Params) { p.TakerFeeParams.AdminAddresses = []string{addr} }, false},
		{"duplicate admin", func(p *Params) { p.TakerFeeParams.AdminAddresses = []string{addr, addr} }, true},
		{"bad whitelist entry", func(p *Params) { p.TakerFeeParams.ReducedFeeWhitelist = []string{"nope"} }, true},
		{"no quote denoms", func(p *Params) { p.TakerFeeParams.AuthorizedQuoteDenoms = nil }, true},
		{"bad quote denom", func(p *Params) { p.TakerFeeParams.AuthorizedQuoteDenoms = []string{"1x"} }, true},
		{"zero oracle gas", func(p *Params) { p.OracleQueryGasLimit = 0 }, true},
		{"zero max hops", func(p *Params) { p.MaxHops = 0 }, true},
		{"invalid creation fee", func(p *Params) {
			p.PoolCreationFee = sdk.Coins{sdk.Coin{Denom: "upaw", Amount: math.NewInt(-1)}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParams()
			tt.modify(&params)
			err := params.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidParams)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTakerFeeParams_Lists(t *testing.T) {
	params := DefaultParams().TakerFeeParams
	params.AdminAddresses = []string{"admin"}
	params.ReducedFeeWhitelist = []string{"router"}

	require.True(t, params.IsAdmin("admin"))
	require.False(t, params.IsAdmin("router"))
	require.True(t, params.IsReducedFee("router"))
	require.True(t, params.IsAuthorizedQuoteDenom(DefaultQuoteDenom))
	require.False(t, params.IsAuthorizedQuoteDenom("uatom"))
}

func TestBaseDenomClassifier(t *testing.T) {
	ctx := context.Background()
	classifier := BaseDenomClassifier{BaseDenom: "upaw"}

	require.True(t, classifier.IsPrimaryAssetPair(ctx, "upaw", "uatom"))
	require.True(t, classifier.IsPrimaryAssetPair(ctx, "uatom", "upaw"))
	require.False(t, classifier.IsPrimaryAssetPair(ctx, "uatom", "uosmo"))
	require.False(t, BaseDenomClassifier{}.IsPrimaryAssetPair(ctx, "", "uatom"))
}
