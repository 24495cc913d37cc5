package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/pkg/feeoracle"
	"github.com/paw-chain/pawswap/pkg/ledger"
	cfmmkeeper "github.com/paw-chain/pawswap/x/cfmm/keeper"
	cfmmtypes "github.com/paw-chain/pawswap/x/cfmm/types"
	"github.com/paw-chain/pawswap/x/poolmanager/keeper"
	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// PoolManagerFixture bundles a pool manager keeper with its dependencies on
// a shared in-memory multistore.
type PoolManagerFixture struct {
	Ctx        sdk.Context
	Keeper     *keeper.Keeper
	CFMMKeeper cfmmkeeper.Keeper
	Ledger     *ledger.Ledger
	Oracle     *feeoracle.Contract

	Authority sdk.AccAddress
	Admin     sdk.AccAddress
	Creator   sdk.AccAddress
}

// TestAddr returns a deterministic 20-byte address for name.
func TestAddr(name string) sdk.AccAddress {
	bz := make([]byte, 20)
	copy(bz, name)
	return sdk.AccAddress(bz)
}

// OracleAddress is where the fixture deploys the fee distribution contract.
var OracleAddress = TestAddr("fee_distribution")

// PoolManagerKeeper creates a pool manager keeper wired to the cfmm pool
// module, a store-backed ledger and an in-process fee distribution
// contract. The contract is deployed but not configured in params; see
// EnableOracle.
func PoolManagerKeeper(t testing.TB) *PoolManagerFixture {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	cfmmStoreKey := storetypes.NewKVStoreKey(cfmmtypes.StoreKey)
	ledgerStoreKey := storetypes.NewKVStoreKey(ledger.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(cfmmStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(ledgerStoreKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	authority := authtypes.NewModuleAddress(govtypes.ModuleName)
	admin := TestAddr("taker_fee_admin")
	params := types.DefaultParams()

	bank := ledger.New(ledgerStoreKey)
	oracle := feeoracle.New(
		OracleAddress,
		admin,
		params.TakerFeeParams.PrimaryDistribution,
		params.TakerFeeParams.NonPrimaryDistribution,
	)
	cfmmKeeper := cfmmkeeper.NewKeeper(cfmmStoreKey)

	k := keeper.NewKeeper(
		storeKey,
		authority.String(),
		bank,
		bank,
		oracle,
		types.BaseDenomClassifier{BaseDenom: types.DefaultQuoteDenom},
		types.DefaultNodeConfig(),
	)
	k.SetPoolModules(cfmmKeeper)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())

	genesis := types.DefaultGenesis()
	genesis.Params.TakerFeeParams.AdminAddresses = []string{admin.String()}
	require.NoError(t, k.InitGenesis(ctx, *genesis))

	return &PoolManagerFixture{
		Ctx:        ctx,
		Keeper:     k,
		CFMMKeeper: cfmmKeeper,
		Ledger:     bank,
		Oracle:     oracle,
		Authority:  authority,
		Admin:      admin,
		Creator:    TestAddr("pool_creator"),
	}
}

// UpdateParams applies fn to the current params and stores the result.
func (f *PoolManagerFixture) UpdateParams(t testing.TB, fn func(*types.Params)) {
	params, err := f.Keeper.GetParams(f.Ctx)
	require.NoError(t, err)
	fn(&params)
	require.NoError(t, f.Keeper.SetParams(f.Ctx, params))
}

// EnableOracle points the fee distribution contract param at the fixture's
// contract.
func (f *PoolManagerFixture) EnableOracle(t testing.TB) {
	f.UpdateParams(t, func(p *types.Params) {
		p.FeeDistributionContract = f.Oracle.Address().String()
	})
}

// Fund mints coins into addr.
func (f *PoolManagerFixture) Fund(t testing.TB, addr sdk.AccAddress, coins sdk.Coins) {
	require.NoError(t, f.Ledger.Fund(f.Ctx, addr, coins))
}

func (f *PoolManagerFixture) createPool(t testing.TB, msg types.CreatePoolMsg) uint64 {
	params, err := f.Keeper.GetParams(f.Ctx)
	require.NoError(t, err)
	f.Fund(t, f.Creator, msg.InitialLiquidity().Add(params.PoolCreationFee...))

	poolId, err := f.Keeper.CreatePool(f.Ctx, msg)
	require.NoError(t, err)
	return poolId
}

// CreateBalancerPool creates a constant product pool funded by the fixture's creator.
func (f *PoolManagerFixture) CreateBalancerPool(t testing.TB, spreadFactor string, liquidity sdk.Coins) uint64 {
	return f.createPool(t, cfmmtypes.MsgCreateBalancerPool{
		Sender:       f.Creator.String(),
		SpreadFactor: math.LegacyMustNewDecFromStr(spreadFactor),
		Liquidity:    liquidity,
	})
}

// CreateStableswapPool creates a stableswap pool funded by the fixture's creator.
func (f *PoolManagerFixture) CreateStableswapPool(t testing.TB, spreadFactor string, liquidity sdk.Coins, scalingFactors []uint64) uint64 {
	return f.createPool(t, cfmmtypes.MsgCreateStableswapPool{
		Sender:         f.Creator.String(),
		SpreadFactor:   math.LegacyMustNewDecFromStr(spreadFactor),
		Liquidity:      liquidity,
		ScalingFactors: scalingFactors,
	})
}

// CreateConcentratedPool creates a single-position concentrated pool funded
// by the fixture's creator.
func (f *PoolManagerFixture) CreateConcentratedPool(t testing.TB, spreadFactor string, token0, token1 sdk.Coin, current, lower, upper string) uint64 {
	return f.createPool(t, cfmmtypes.MsgCreateConcentratedPool{
		Sender:       f.Creator.String(),
		SpreadFactor: math.LegacyMustNewDecFromStr(spreadFactor),
		Token0:       token0,
		Token1:       token1,
		CurrentPrice: math.LegacyMustNewDecFromStr(current),
		LowerPrice:   math.LegacyMustNewDecFromStr(lower),
		UpperPrice:   math.LegacyMustNewDecFromStr(upper),
	})
}
