package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// RegisterInvariants registers all pool manager invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "route-pool-consistency", RoutePoolConsistencyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pool-solvency", PoolSolvencyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "taker-fee-collector-drained", TakerFeeCollectorDrainedInvariant(k))
}

// AllInvariants runs all invariants of the pool manager module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := RoutePoolConsistencyInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = PoolSolvencyInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return TakerFeeCollectorDrainedInvariant(k)(ctx)
	}
}

// RoutePoolConsistencyInvariant checks that every route resolves to a pool of
// the routed type.
func RoutePoolConsistencyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		routes, err := k.GetPoolRoutes(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "route-pool-consistency", err.Error()), true
		}
		for _, route := range routes {
			pool, _, err := k.Resolve(ctx, route.PoolId)
			if err != nil {
				count++
				msg += fmt.Sprintf("\tpool %d: %s\n", route.PoolId, err)
				continue
			}
			if pool.GetType() != route.PoolType {
				count++
				msg += fmt.Sprintf("\tpool %d: routed as %s but stored as %s\n", route.PoolId, route.PoolType, pool.GetType())
			}
		}

		return sdk.FormatInvariant(
			types.ModuleName, "route-pool-consistency",
			fmt.Sprintf("found %d inconsistent routes\n%s", count, msg),
		), count != 0
	}
}

// PoolSolvencyInvariant checks that every pool account holds at least its
// recorded reserves.
func PoolSolvencyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.AllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-solvency", err.Error()), true
		}
		for _, pool := range pools {
			balances := k.bankKeeper.GetAllBalances(ctx, pool.GetAddress())
			if !balances.IsAllGTE(pool.GetReserves()) {
				count++
				msg += fmt.Sprintf("\tpool %d: balance %s below reserves %s\n", pool.GetId(), balances, pool.GetReserves())
			}
		}

		return sdk.FormatInvariant(
			types.ModuleName, "pool-solvency",
			fmt.Sprintf("found %d insolvent pools\n%s", count, msg),
		), count != 0
	}
}

// TakerFeeCollectorDrainedInvariant checks that no taker fee is left behind
// in the collector once routes complete.
func TakerFeeCollectorDrainedInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		balance := k.bankKeeper.GetAllBalances(ctx, types.TakerFeeCollectorAddress())
		broken := !balance.IsZero()
		return sdk.FormatInvariant(
			types.ModuleName, "taker-fee-collector-drained",
			fmt.Sprintf("taker fee collector holds %s\n", balance),
		), broken
	}
}
