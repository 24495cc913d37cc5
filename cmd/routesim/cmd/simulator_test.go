package cmd

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	poolmanagertypes "github.com/paw-chain/pawswap/x/poolmanager/types"
)

func newTestSimulator(t *testing.T, raw string, mutate func(*Fixture)) (*Simulator, error) {
	t.Helper()
	fixture, err := ParseFixture([]byte(raw))
	require.NoError(t, err)
	if mutate != nil {
		mutate(fixture)
	}
	return NewSimulator(fixture, log.NewNopLogger())
}

func TestNewSimulator(t *testing.T) {
	sim, err := newTestSimulator(t, testFixture, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"alice", "bob"}, sim.AccountNames())
	alice, err := sim.Account("alice")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), sim.Ledger.GetBalance(sim.Ctx, alice, "uatom").Amount)

	_, err = sim.Account("carol")
	require.ErrorContains(t, err, "unknown account")

	pools, err := sim.Keeper.AllPools(sim.Ctx)
	require.NoError(t, err)
	require.Len(t, pools, 2)
	require.Equal(t, poolmanagertypes.Balancer, pools[1].GetType())

	// both creation fees went to the community pool
	require.Equal(t, math.NewInt(2_000_000), sim.Ledger.GetCommunityPool(sim.Ctx).AmountOf("upaw"))
}

func TestSimulator_EstimateMatchesSwap(t *testing.T) {
	sim, err := newTestSimulator(t, testFixture, nil)
	require.NoError(t, err)
	alice, err := sim.Account("alice")
	require.NoError(t, err)

	routes, err := ParseInRoute([]string{"1", "2"}, []string{"upaw", "uosmo"})
	require.NoError(t, err)
	tokenIn := sdk.NewInt64Coin("uatom", 1000)

	estimate, err := sim.Keeper.EstimateSwapExactAmountIn(sim.Ctx, routes, tokenIn)
	require.NoError(t, err)

	result, err := sim.Keeper.RouteExactAmountInWithResult(sim.Ctx, alice, routes, tokenIn, math.OneInt())
	require.NoError(t, err)
	require.Equal(t, estimate.String(), result.TokenOut.Amount.String())
	require.Equal(t, result.TokenOut.Amount, sim.Ledger.GetBalance(sim.Ctx, alice, "uosmo").Amount)
	require.Len(t, result.Hops, 2)
	require.False(t, result.TakerFees.IsZero())
}

func TestSimulator_FeeSettings(t *testing.T) {
	tokenIn := sdk.NewInt64Coin("uatom", 1000)
	routes, err := ParseInRoute([]string{"1"}, []string{"upaw"})
	require.NoError(t, err)

	t.Run("reduced fee whitelist", func(t *testing.T) {
		sim, err := newTestSimulator(t, testFixture, func(f *Fixture) {
			f.Params.ReducedFeeWhitelist = []string{"alice"}
		})
		require.NoError(t, err)
		alice, err := sim.Account("alice")
		require.NoError(t, err)

		result, err := sim.Keeper.RouteExactAmountInWithResult(sim.Ctx, alice, routes, tokenIn, math.OneInt())
		require.NoError(t, err)
		require.True(t, result.TakerFees.IsZero())
	})

	t.Run("pair taker fee override", func(t *testing.T) {
		sim, err := newTestSimulator(t, testFixture, func(f *Fixture) {
			f.PairTakerFees = []FixturePairFee{{DenomA: "upaw", DenomB: "uatom", TakerFee: "0.01"}}
		})
		require.NoError(t, err)

		fee, err := sim.Keeper.GetTradingPairTakerFee(sim.Ctx, "uatom", "upaw")
		require.NoError(t, err)
		require.Equal(t, "0.010000000000000000", fee.String())
	})

	t.Run("oracle distribution", func(t *testing.T) {
		sim, err := newTestSimulator(t, testFixture, func(f *Fixture) {
			f.Oracle = FixtureOracle{
				Enabled:    true,
				NonPrimary: &FixtureDistribution{StakingRewards: "0.5", CommunityPool: "0.5"},
			}
		})
		require.NoError(t, err)

		dist := sim.Keeper.ResolveTakerFeeDistribution(sim.Ctx, false)
		require.True(t, dist.CommunityPool.Equal(math.LegacyNewDecWithPrec(5, 1)))
	})

	t.Run("invalid oracle distribution", func(t *testing.T) {
		_, err := newTestSimulator(t, testFixture, func(f *Fixture) {
			f.Oracle = FixtureOracle{
				Enabled: true,
				Primary: &FixtureDistribution{StakingRewards: "0.9", CommunityPool: "0.2"},
			}
		})
		require.ErrorIs(t, err, poolmanagertypes.ErrDistributionInvariantViolated)
	})

	t.Run("unknown whitelist account", func(t *testing.T) {
		_, err := newTestSimulator(t, testFixture, func(f *Fixture) {
			f.Params.ReducedFeeWhitelist = []string{"carol"}
		})
		require.ErrorContains(t, err, "reduced fee whitelist")
	})
}

func TestSimulator_PoolTypes(t *testing.T) {
	sim, err := newTestSimulator(t, testFixture, func(f *Fixture) {
		f.Pools = append(f.Pools,
			FixturePool{
				Type:           "stableswap",
				SpreadFactor:   "0.001",
				Liquidity:      "1000000uusdc,1000000upaw",
				ScalingFactors: []uint64{1, 1},
			},
			FixturePool{
				Type:         "concentrated",
				SpreadFactor: "0.003",
				Token0:       "1000000uatom",
				Token1:       "1000000upaw",
				CurrentPrice: "1",
				LowerPrice:   "0.25",
				UpperPrice:   "4",
			},
		)
	})
	require.NoError(t, err)

	for _, poolId := range []uint64{3, 4} {
		poolType, err := sim.Keeper.GetPoolType(sim.Ctx, poolId)
		require.NoError(t, err)
		require.NotEqual(t, poolmanagertypes.Balancer, poolType)
	}

	_, err = newTestSimulator(t, testFixture, func(f *Fixture) {
		f.Pools = append(f.Pools, FixturePool{Type: "cosmwasm", SpreadFactor: "0.01"})
	})
	require.ErrorContains(t, err, "cannot be created from a fixture")
}

func TestParseRoutes(t *testing.T) {
	in, err := ParseInRoute([]string{"3", "7"}, []string{"upaw", "uosmo"})
	require.NoError(t, err)
	require.Equal(t, []poolmanagertypes.SwapAmountInRoute{{PoolId: 3, TokenOutDenom: "upaw"}, {PoolId: 7, TokenOutDenom: "uosmo"}}, in)

	out, err := ParseOutRoute([]string{"3"}, []string{"uatom"})
	require.NoError(t, err)
	require.Equal(t, uint64(3), outRoutePoolIds(out)[0])

	_, err = ParseInRoute([]string{"1"}, nil)
	require.ErrorContains(t, err, "1 pool ids for 0 denoms")

	_, err = ParseOutRoute([]string{"one"}, []string{"uatom"})
	require.ErrorContains(t, err, "pool id")
}
