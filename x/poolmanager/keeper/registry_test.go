package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	cfmmkeeper "github.com/paw-chain/pawswap/x/cfmm/keeper"
	"github.com/paw-chain/pawswap/x/poolmanager/keeper"
	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

func TestRegistry_RoutesAndModules(t *testing.T) {
	f := setupRoutes(t)

	routes, err := f.Keeper.GetPoolRoutes(f.Ctx)
	require.NoError(t, err)
	require.Equal(t, []types.ModuleRoute{
		{PoolId: f.poolAB, PoolType: types.Balancer},
		{PoolId: f.poolBC, PoolType: types.Balancer},
		{PoolId: f.poolAC, PoolType: types.Balancer},
	}, routes)

	poolType, err := f.Keeper.GetPoolType(f.Ctx, f.poolBC)
	require.NoError(t, err)
	require.Equal(t, types.Balancer, poolType)

	module, err := f.Keeper.GetPoolModule(f.Ctx, f.poolBC)
	require.NoError(t, err)
	require.IsType(t, cfmmkeeper.Keeper{}, module)

	pool, module, err := f.Keeper.Resolve(f.Ctx, f.poolAC)
	require.NoError(t, err)
	require.Equal(t, f.poolAC, pool.GetId())
	require.Contains(t, module.PoolTypes(), types.Balancer)

	_, err = f.Keeper.GetPoolType(f.Ctx, 42)
	require.ErrorIs(t, err, types.ErrPoolNotFound)

	pools, err := f.Keeper.AllPools(f.Ctx)
	require.NoError(t, err)
	require.Len(t, pools, 3)

	total, err := f.Keeper.GetTotalLiquidity(f.Ctx)
	require.NoError(t, err)
	for _, denom := range []string{denomA, denomB, denomC} {
		require.Equal(t, math.NewInt(2_000_000), total.AmountOf(denom))
	}
}

func TestRegisterRoute(t *testing.T) {
	f := setupRoutes(t)

	err := f.Keeper.RegisterRoute(f.Ctx, f.poolAB, types.Stableswap)
	require.ErrorIs(t, err, types.ErrRouteAlreadyExists)

	err = f.Keeper.RegisterRoute(f.Ctx, 50, types.PoolType(9))
	require.ErrorIs(t, err, types.ErrInvalidPool)

	require.NoError(t, f.Keeper.RegisterRoute(f.Ctx, 50, types.CosmWasm))
	poolType, err := f.Keeper.GetPoolType(f.Ctx, 50)
	require.NoError(t, err)
	require.Equal(t, types.CosmWasm, poolType)

	// routed, but no module executes cosmwasm pools
	_, err = f.Keeper.GetPoolModule(f.Ctx, 50)
	require.ErrorIs(t, err, types.ErrUnroutablePoolType)
}

func TestSetPoolModules(t *testing.T) {
	f := setupRoutes(t)

	require.Panics(t, func() {
		f.Keeper.SetPoolModules(f.CFMMKeeper, f.CFMMKeeper)
	})

	f.Keeper.SetPoolModules(f.CFMMKeeper, panickingModule{})
	require.False(t, keeper.PoolModuleCacheBuiltForTest(f.Keeper))

	module, err := f.Keeper.GetPoolModuleByType(types.CosmWasm)
	require.NoError(t, err)
	require.IsType(t, panickingModule{}, module)
	require.True(t, keeper.PoolModuleCacheBuiltForTest(f.Keeper))

	// rebinding drops the cached cosmwasm module
	f.Keeper.SetPoolModules(f.CFMMKeeper)
	require.False(t, keeper.PoolModuleCacheBuiltForTest(f.Keeper))
	_, err = f.Keeper.GetPoolModuleByType(types.CosmWasm)
	require.ErrorIs(t, err, types.ErrUnroutablePoolType)

	for _, poolType := range []types.PoolType{types.Balancer, types.Stableswap, types.Concentrated} {
		_, err := f.Keeper.GetPoolModuleByType(poolType)
		require.NoError(t, err, poolType.String())
	}
}

func TestSetPoolModules_SharedWithKeeperCopies(t *testing.T) {
	f := setupRoutes(t)
	stale := *f.Keeper

	f.Keeper.SetPoolModules(f.CFMMKeeper, panickingModule{})

	// a copy taken before rebinding rebuilds the bindings from the new set
	_, err := stale.GetPoolModuleByType(types.Balancer)
	require.NoError(t, err)
	module, err := f.Keeper.GetPoolModuleByType(types.CosmWasm)
	require.NoError(t, err)
	require.IsType(t, panickingModule{}, module)

	module, err = stale.GetPoolModuleByType(types.CosmWasm)
	require.NoError(t, err)
	require.IsType(t, panickingModule{}, module)

	// unbinding through the original is seen by the copy
	f.Keeper.SetPoolModules(f.CFMMKeeper)
	_, err = stale.GetPoolModuleByType(types.CosmWasm)
	require.ErrorIs(t, err, types.ErrUnroutablePoolType)
}
