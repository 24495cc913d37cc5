package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/cfmm/types"
	poolmanagertypes "github.com/paw-chain/pawswap/x/poolmanager/types"
)

var _ poolmanagertypes.PoolModuleI = Keeper{}

// Keeper stores the balancer, stableswap and concentrated pools.
type Keeper struct {
	storeKey storetypes.StoreKey
}

// NewKeeper creates a new cfmm Keeper instance
func NewKeeper(key storetypes.StoreKey) Keeper {
	return Keeper{storeKey: key}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(k.storeKey)
}

// PoolTypes lists the pool types owned by this module.
func (k Keeper) PoolTypes() []poolmanagertypes.PoolType {
	return []poolmanagertypes.PoolType{
		poolmanagertypes.Balancer,
		poolmanagertypes.Stableswap,
		poolmanagertypes.Concentrated,
	}
}

// GetPool returns a fresh copy of the stored pool.
func (k Keeper) GetPool(ctx context.Context, poolId uint64) (poolmanagertypes.PoolI, error) {
	bz := k.getStore(ctx).Get(types.GetPoolKey(poolId))
	if bz == nil {
		return nil, poolmanagertypes.ErrPoolNotFound.Wrapf("pool %d", poolId)
	}
	return types.UnmarshalPool(bz)
}

// GetPools returns every pool in id order.
func (k Keeper) GetPools(ctx context.Context) ([]poolmanagertypes.PoolI, error) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKeyPrefix)
	defer iterator.Close()

	var pools []poolmanagertypes.PoolI
	for ; iterator.Valid(); iterator.Next() {
		pool, err := types.UnmarshalPool(iterator.Value())
		if err != nil {
			return nil, err
		}
		pools = append(pools, pool)
	}
	return pools, nil
}

// SetPool overwrites a stored pool.
func (k Keeper) SetPool(ctx context.Context, pool poolmanagertypes.PoolI) error {
	if err := pool.Validate(); err != nil {
		return err
	}
	bz, err := types.MarshalPool(pool)
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(types.GetPoolKey(pool.GetId()), bz)
	return nil
}

// InitializePool stores a newly created pool. The id must be unused.
func (k Keeper) InitializePool(ctx context.Context, pool poolmanagertypes.PoolI, creator sdk.AccAddress) error {
	if creator.Empty() {
		return types.ErrInvalidCreator.Wrap("creator cannot be empty")
	}
	if k.getStore(ctx).Has(types.GetPoolKey(pool.GetId())) {
		return types.ErrPoolAlreadyExists.Wrapf("pool %d", pool.GetId())
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	k.Logger(sdkCtx).Info("pool initialized",
		"pool_id", pool.GetId(),
		"pool_type", pool.GetType().String(),
		"creator", creator.String(),
	)
	return nil
}

// AsCFMM returns the pricing view of a pool owned by this module.
func (k Keeper) AsCFMM(pool poolmanagertypes.PoolI) (poolmanagertypes.CFMMPool, error) {
	cfmmPool, ok := pool.(poolmanagertypes.CFMMPool)
	if !ok {
		return nil, types.ErrPoolTypeNotSupported.Wrapf("pool %d of type %T", pool.GetId(), pool)
	}
	return cfmmPool, nil
}
