package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"

	"github.com/paw-chain/pawswap/pkg/feeoracle"
	"github.com/paw-chain/pawswap/pkg/ledger"
	cfmmkeeper "github.com/paw-chain/pawswap/x/cfmm/keeper"
	cfmmtypes "github.com/paw-chain/pawswap/x/cfmm/types"
	"github.com/paw-chain/pawswap/x/poolmanager/keeper"
	poolmanagertypes "github.com/paw-chain/pawswap/x/poolmanager/types"
)

const chainID = "routesim"

// AccountAddress derives the address of a named fixture account.
func AccountAddress(name string) sdk.AccAddress {
	return sdk.AccAddress(address.Hash(chainID, []byte(name)))
}

// Simulator is an in-memory pool manager loaded from a fixture.
type Simulator struct {
	Ctx    sdk.Context
	Keeper *keeper.Keeper
	CFMM   cfmmkeeper.Keeper
	Ledger *ledger.Ledger
	Oracle *feeoracle.Contract

	accounts map[string]sdk.AccAddress
}

// NewSimulator mounts fresh stores and applies fixture to them.
func NewSimulator(fixture *Fixture, logger log.Logger) (*Simulator, error) {
	storeKey := storetypes.NewKVStoreKey(poolmanagertypes.StoreKey)
	cfmmStoreKey := storetypes.NewKVStoreKey(cfmmtypes.StoreKey)
	ledgerStoreKey := storetypes.NewKVStoreKey(ledger.StoreKey)

	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	cms.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	cms.MountStoreWithDB(cfmmStoreKey, storetypes.StoreTypeIAVL, db)
	cms.MountStoreWithDB(ledgerStoreKey, storetypes.StoreTypeIAVL, db)
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load stores: %w", err)
	}

	admin := AccountAddress("taker_fee_admin")
	params, err := fixtureParams(fixture)
	if err != nil {
		return nil, err
	}
	params.TakerFeeParams.AdminAddresses = []string{admin.String()}

	bank := ledger.New(ledgerStoreKey)
	oracle := feeoracle.New(
		AccountAddress("fee_distribution"),
		admin,
		params.TakerFeeParams.PrimaryDistribution,
		params.TakerFeeParams.NonPrimaryDistribution,
	)
	cfmmKeeper := cfmmkeeper.NewKeeper(cfmmStoreKey)

	k := keeper.NewKeeper(
		storeKey,
		authtypes.NewModuleAddress(govtypes.ModuleName).String(),
		bank,
		bank,
		oracle,
		poolmanagertypes.BaseDenomClassifier{BaseDenom: poolmanagertypes.DefaultQuoteDenom},
		poolmanagertypes.DefaultNodeConfig(),
	)
	k.SetPoolModules(cfmmKeeper)

	sim := &Simulator{
		Ctx:      sdk.NewContext(cms, cmtproto.Header{ChainID: chainID, Height: 1}, false, logger),
		Keeper:   k,
		CFMM:     cfmmKeeper,
		Ledger:   bank,
		Oracle:   oracle,
		accounts: make(map[string]sdk.AccAddress, len(fixture.Accounts)),
	}

	if err := sim.configureOracle(fixture.Oracle, admin, &params); err != nil {
		return nil, err
	}
	genesis := poolmanagertypes.DefaultGenesis()
	genesis.Params = params
	if err := k.InitGenesis(sim.Ctx, *genesis); err != nil {
		return nil, fmt.Errorf("init genesis: %w", err)
	}

	for _, acc := range fixture.Accounts {
		addr := AccountAddress(acc.Name)
		sim.accounts[acc.Name] = addr
		balances, err := sdk.ParseCoinsNormalized(acc.Balances)
		if err != nil {
			return nil, fmt.Errorf("account %q balances: %w", acc.Name, err)
		}
		if err := bank.Fund(sim.Ctx, addr, balances); err != nil {
			return nil, fmt.Errorf("fund %q: %w", acc.Name, err)
		}
	}

	// Whitelist entries name fixture accounts, so params are patched once
	// the accounts exist.
	if len(fixture.Params.ReducedFeeWhitelist) > 0 {
		for _, name := range fixture.Params.ReducedFeeWhitelist {
			addr, err := sim.Account(name)
			if err != nil {
				return nil, fmt.Errorf("reduced fee whitelist: %w", err)
			}
			params.TakerFeeParams.ReducedFeeWhitelist = append(params.TakerFeeParams.ReducedFeeWhitelist, addr.String())
		}
		if err := k.SetParams(sim.Ctx, params); err != nil {
			return nil, err
		}
	}

	creator := AccountAddress("pool_creator")
	for i, pool := range fixture.Pools {
		if err := sim.createPool(creator, params.PoolCreationFee, pool); err != nil {
			return nil, fmt.Errorf("pool %d: %w", i+1, err)
		}
	}

	if len(fixture.PairTakerFees) > 0 {
		fees := make([]poolmanagertypes.DenomPairTakerFee, 0, len(fixture.PairTakerFees))
		for _, fee := range fixture.PairTakerFees {
			fees = append(fees, poolmanagertypes.DenomPairTakerFee{
				DenomA:   fee.DenomA,
				DenomB:   fee.DenomB,
				TakerFee: math.LegacyMustNewDecFromStr(fee.TakerFee),
			})
		}
		if err := k.SetDenomPairTakerFees(sim.Ctx, admin.String(), fees); err != nil {
			return nil, fmt.Errorf("pair taker fees: %w", err)
		}
	}

	return sim, nil
}

func fixtureParams(fixture *Fixture) (poolmanagertypes.Params, error) {
	params := poolmanagertypes.DefaultParams()
	p := fixture.Params

	if p.DefaultTakerFee != "" {
		fee, err := math.LegacyNewDecFromStr(p.DefaultTakerFee)
		if err != nil {
			return params, fmt.Errorf("default taker fee: %w", err)
		}
		params.TakerFeeParams.DefaultTakerFee = fee
	}
	if len(p.AuthorizedQuoteDenoms) > 0 {
		params.TakerFeeParams.AuthorizedQuoteDenoms = p.AuthorizedQuoteDenoms
	}
	if p.PoolCreationFee != "" {
		fee, err := sdk.ParseCoinsNormalized(p.PoolCreationFee)
		if err != nil {
			return params, fmt.Errorf("pool creation fee: %w", err)
		}
		params.PoolCreationFee = fee
	}
	if p.MaxHops > 0 {
		params.MaxHops = p.MaxHops
	}
	if p.OracleQueryGasLimit > 0 {
		params.OracleQueryGasLimit = p.OracleQueryGasLimit
	}
	return params, nil
}

func (s *Simulator) configureOracle(cfg FixtureOracle, admin sdk.AccAddress, params *poolmanagertypes.Params) error {
	if !cfg.Enabled {
		return nil
	}
	params.FeeDistributionContract = s.Oracle.Address().String()

	for _, entry := range []struct {
		isPrimary bool
		dist      *FixtureDistribution
	}{{true, cfg.Primary}, {false, cfg.NonPrimary}} {
		if entry.dist == nil {
			continue
		}
		dist, err := entry.dist.parse()
		if err != nil {
			return fmt.Errorf("oracle distribution: %w", err)
		}
		if err := s.Oracle.SetDistribution(admin, entry.isPrimary, dist); err != nil {
			return err
		}
	}
	if cfg.QueryGas > 0 {
		s.Oracle.SetQueryGas(cfg.QueryGas)
	}
	return nil
}

func (s *Simulator) createPool(creator sdk.AccAddress, creationFee sdk.Coins, pool FixturePool) error {
	msg, err := createPoolMsg(creator, pool)
	if err != nil {
		return err
	}
	if err := s.Ledger.Fund(s.Ctx, creator, msg.InitialLiquidity().Add(creationFee...)); err != nil {
		return err
	}
	_, err = s.Keeper.CreatePool(s.Ctx, msg)
	return err
}

func createPoolMsg(creator sdk.AccAddress, pool FixturePool) (poolmanagertypes.CreatePoolMsg, error) {
	poolType, err := poolmanagertypes.ParsePoolType(pool.Type)
	if err != nil {
		return nil, err
	}
	spreadFactor, err := math.LegacyNewDecFromStr(pool.SpreadFactor)
	if err != nil {
		return nil, fmt.Errorf("spread factor: %w", err)
	}

	switch poolType {
	case poolmanagertypes.Balancer, poolmanagertypes.Stableswap:
		liquidity, err := sdk.ParseCoinsNormalized(pool.Liquidity)
		if err != nil {
			return nil, fmt.Errorf("liquidity: %w", err)
		}
		if poolType == poolmanagertypes.Balancer {
			return cfmmtypes.MsgCreateBalancerPool{
				Sender:       creator.String(),
				SpreadFactor: spreadFactor,
				Liquidity:    liquidity,
			}, nil
		}
		return cfmmtypes.MsgCreateStableswapPool{
			Sender:         creator.String(),
			SpreadFactor:   spreadFactor,
			Liquidity:      liquidity,
			ScalingFactors: pool.ScalingFactors,
		}, nil

	case poolmanagertypes.Concentrated:
		token0, err := sdk.ParseCoinNormalized(pool.Token0)
		if err != nil {
			return nil, fmt.Errorf("token0: %w", err)
		}
		token1, err := sdk.ParseCoinNormalized(pool.Token1)
		if err != nil {
			return nil, fmt.Errorf("token1: %w", err)
		}
		prices := make([]math.LegacyDec, 3)
		for i, raw := range []string{pool.CurrentPrice, pool.LowerPrice, pool.UpperPrice} {
			if prices[i], err = math.LegacyNewDecFromStr(raw); err != nil {
				return nil, fmt.Errorf("price %q: %w", raw, err)
			}
		}
		return cfmmtypes.MsgCreateConcentratedPool{
			Sender:       creator.String(),
			SpreadFactor: spreadFactor,
			Token0:       token0,
			Token1:       token1,
			CurrentPrice: prices[0],
			LowerPrice:   prices[1],
			UpperPrice:   prices[2],
		}, nil
	}
	return nil, fmt.Errorf("pool type %s cannot be created from a fixture", poolType)
}

// Account resolves a fixture account name.
func (s *Simulator) Account(name string) (sdk.AccAddress, error) {
	addr, ok := s.accounts[name]
	if !ok {
		return nil, fmt.Errorf("unknown account %q", name)
	}
	return addr, nil
}

// AccountNames returns the fixture account names in sorted order.
func (s *Simulator) AccountNames() []string {
	names := make([]string, 0, len(s.accounts))
	for name := range s.accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseInRoute pairs pool ids with the denom each hop produces.
func ParseInRoute(poolIds, denoms []string) ([]poolmanagertypes.SwapAmountInRoute, error) {
	ids, err := parsePoolIds(poolIds, denoms)
	if err != nil {
		return nil, err
	}
	routes := make([]poolmanagertypes.SwapAmountInRoute, len(ids))
	for i, id := range ids {
		routes[i] = poolmanagertypes.SwapAmountInRoute{PoolId: id, TokenOutDenom: denoms[i]}
	}
	return routes, nil
}

// ParseOutRoute pairs pool ids with the denom each hop consumes.
func ParseOutRoute(poolIds, denoms []string) ([]poolmanagertypes.SwapAmountOutRoute, error) {
	ids, err := parsePoolIds(poolIds, denoms)
	if err != nil {
		return nil, err
	}
	routes := make([]poolmanagertypes.SwapAmountOutRoute, len(ids))
	for i, id := range ids {
		routes[i] = poolmanagertypes.SwapAmountOutRoute{PoolId: id, TokenInDenom: denoms[i]}
	}
	return routes, nil
}

func parsePoolIds(poolIds, denoms []string) ([]uint64, error) {
	if len(poolIds) != len(denoms) {
		return nil, fmt.Errorf("%d pool ids for %d denoms", len(poolIds), len(denoms))
	}
	ids := make([]uint64, len(poolIds))
	for i, raw := range poolIds {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("pool id %q: %w", raw, err)
		}
		ids[i] = id
	}
	return ids, nil
}
