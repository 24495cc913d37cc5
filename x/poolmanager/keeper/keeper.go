package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// Keeper of the pool manager store
type Keeper struct {
	storeKey  storetypes.StoreKey
	authority string

	bankKeeper      types.BankKeeper
	distrKeeper     types.DistributionKeeper
	contractQuerier types.ContractQuerier
	classifier      types.PairClassifier
	hooks           types.PoolManagerHooks

	moduleCache *poolModuleCache

	feeCollector sdk.AccAddress
	nodeConfig   types.NodeConfig
	metrics      *PoolManagerMetrics
}

// NewKeeper creates a new pool manager Keeper instance. The contract querier
// may be nil, in which case taker fees are always split with the governance
// defaults.
func NewKeeper(
	key storetypes.StoreKey,
	authority string,
	bankKeeper types.BankKeeper,
	distrKeeper types.DistributionKeeper,
	contractQuerier types.ContractQuerier,
	classifier types.PairClassifier,
	nodeConfig types.NodeConfig,
) *Keeper {
	if _, err := sdk.AccAddressFromBech32(authority); err != nil {
		panic(fmt.Sprintf("invalid pool manager authority address: %s", err))
	}
	if classifier == nil {
		classifier = types.BaseDenomClassifier{BaseDenom: types.DefaultQuoteDenom}
	}

	var metrics *PoolManagerMetrics
	if nodeConfig.MetricsEnabled {
		metrics = NewPoolManagerMetrics()
	}

	return &Keeper{
		storeKey:        key,
		authority:       authority,
		bankKeeper:      bankKeeper,
		distrKeeper:     distrKeeper,
		contractQuerier: contractQuerier,
		classifier:      classifier,
		moduleCache:     newPoolModuleCache(),
		feeCollector:    authtypes.NewModuleAddress(authtypes.FeeCollectorName),
		nodeConfig:      nodeConfig,
		metrics:         metrics,
	}
}

// SetHooks sets the post-swap hooks. It may only be called once.
func (k *Keeper) SetHooks(hooks types.PoolManagerHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set pool manager hooks twice")
	}
	k.hooks = hooks
	return k
}

// GetAuthority returns the governance account allowed to update params.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// FeeCollectorAddress is where the staking rewards share of taker fees is sent.
func (k Keeper) FeeCollectorAddress() sdk.AccAddress {
	return k.feeCollector
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// getStore returns the KVStore for the pool manager module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}
