package keeper

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// poolModuleCache binds pool types to the module that executes them. The
// registered modules live next to the bindings, so every copy of a Keeper
// rebuilds from the same list and correctness never depends on cache state.
type poolModuleCache struct {
	mu       sync.RWMutex
	modules  []types.PoolModuleI
	bindings map[types.PoolType]types.PoolModuleI
}

func newPoolModuleCache() *poolModuleCache {
	return &poolModuleCache{}
}

func (c *poolModuleCache) get(poolType types.PoolType) (types.PoolModuleI, bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.bindings == nil {
		return nil, false, false
	}
	module, ok := c.bindings[poolType]
	return module, ok, true
}

func (c *poolModuleCache) build() map[types.PoolType]types.PoolModuleI {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bindings != nil {
		return c.bindings
	}
	bindings := make(map[types.PoolType]types.PoolModuleI)
	for _, module := range c.modules {
		for _, poolType := range module.PoolTypes() {
			bindings[poolType] = module
		}
	}
	c.bindings = bindings
	return bindings
}

// setModules replaces the registered modules and drops the bindings.
func (c *poolModuleCache) setModules(modules []types.PoolModuleI) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modules = modules
	c.bindings = nil
}

// SetPoolModules registers the pool-type modules. A pool type may be bound to
// only one module. Calling it again replaces the set and invalidates the cache.
func (k *Keeper) SetPoolModules(modules ...types.PoolModuleI) {
	claimed := make(map[types.PoolType]int)
	for i, module := range modules {
		for _, poolType := range module.PoolTypes() {
			if prev, dup := claimed[poolType]; dup {
				panic(fmt.Sprintf("pool type %s bound by modules %d and %d", poolType, prev, i))
			}
			claimed[poolType] = i
		}
	}
	k.moduleCache.setModules(modules)
}

// RegisterRoute records the pool type of a new pool. Routes are immutable.
func (k Keeper) RegisterRoute(ctx context.Context, poolId uint64, poolType types.PoolType) error {
	if err := poolType.Validate(); err != nil {
		return err
	}
	store := k.getStore(ctx)
	key := types.GetPoolRouteKey(poolId)
	if store.Has(key) {
		return types.ErrRouteAlreadyExists.Wrapf("pool %d", poolId)
	}
	return setJSON(store, key, poolType)
}

// GetPoolType returns the pool type a pool id is routed to. The store is
// always read so that gas does not depend on cache state.
func (k Keeper) GetPoolType(ctx context.Context, poolId uint64) (types.PoolType, error) {
	var poolType types.PoolType
	found, err := getJSON(k.getStore(ctx), types.GetPoolRouteKey(poolId), &poolType)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, types.ErrPoolNotFound.Wrapf("pool %d", poolId)
	}
	return poolType, nil
}

// GetPoolModuleByType returns the module bound to a pool type.
func (k Keeper) GetPoolModuleByType(poolType types.PoolType) (types.PoolModuleI, error) {
	module, ok, built := k.moduleCache.get(poolType)
	if !built {
		module, ok = k.moduleCache.build()[poolType]
	}
	if !ok {
		return nil, types.ErrUnroutablePoolType.Wrapf("pool type %s", poolType)
	}
	return module, nil
}

// GetPoolModule returns the module that executes swaps for a pool.
func (k Keeper) GetPoolModule(ctx context.Context, poolId uint64) (types.PoolModuleI, error) {
	poolType, err := k.GetPoolType(ctx, poolId)
	if err != nil {
		return nil, err
	}
	module, err := k.GetPoolModuleByType(poolType)
	if err != nil {
		return nil, fmt.Errorf("pool %d: %w", poolId, err)
	}
	return module, nil
}

// Resolve returns a pool together with the module that owns it.
func (k Keeper) Resolve(ctx context.Context, poolId uint64) (types.PoolI, types.PoolModuleI, error) {
	module, err := k.GetPoolModule(ctx, poolId)
	if err != nil {
		return nil, nil, err
	}
	pool, err := module.GetPool(ctx, poolId)
	if err != nil {
		return nil, nil, err
	}
	return pool, module, nil
}

// resolveCFMM resolves a pool and converts it into its CFMM view.
func (k Keeper) resolveCFMM(ctx context.Context, poolId uint64) (types.CFMMPool, types.PoolModuleI, error) {
	pool, module, err := k.Resolve(ctx, poolId)
	if err != nil {
		return nil, nil, err
	}
	cfmm, err := module.AsCFMM(pool)
	if err != nil {
		return nil, nil, err
	}
	return cfmm, module, nil
}

// GetPool returns the pool stored under poolId.
func (k Keeper) GetPool(ctx context.Context, poolId uint64) (types.PoolI, error) {
	pool, _, err := k.Resolve(ctx, poolId)
	return pool, err
}

// GetPoolRoutes returns every registered route ordered by pool id.
func (k Keeper) GetPoolRoutes(ctx context.Context) ([]types.ModuleRoute, error) {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PoolRouteKeyPrefix)
	defer iterator.Close()

	var routes []types.ModuleRoute
	for ; iterator.Valid(); iterator.Next() {
		poolId := sdk.BigEndianToUint64(iterator.Key()[len(types.PoolRouteKeyPrefix):])
		var poolType types.PoolType
		if err := json.Unmarshal(iterator.Value(), &poolType); err != nil {
			return nil, fmt.Errorf("pool route %d: %w", poolId, err)
		}
		routes = append(routes, types.ModuleRoute{PoolId: poolId, PoolType: poolType})
	}
	return routes, nil
}

// AllPools returns every routed pool ordered by pool id.
func (k Keeper) AllPools(ctx context.Context) ([]types.PoolI, error) {
	routes, err := k.GetPoolRoutes(ctx)
	if err != nil {
		return nil, err
	}
	pools := make([]types.PoolI, 0, len(routes))
	for _, route := range routes {
		pool, _, err := k.Resolve(ctx, route.PoolId)
		if err != nil {
			return nil, err
		}
		pools = append(pools, pool)
	}
	return pools, nil
}
