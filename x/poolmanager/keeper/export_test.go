package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// ResolveTakerFeeDistributionWithSourceForTest exposes the source label
// ("oracle" or "default") of a resolved distribution.
func ResolveTakerFeeDistributionWithSourceForTest(k Keeper, ctx sdk.Context, isPrimary bool) (types.TakerFeeDistribution, string) {
	return k.resolveTakerFeeDistribution(ctx, isPrimary)
}

// DistributeTakerFeesForTest distributes fees already held by the taker fee
// collector under one category.
func DistributeTakerFeesForTest(k Keeper, ctx sdk.Context, isPrimary bool, fees sdk.Coins) error {
	acc := &takerFeeAccumulator{}
	for _, fee := range fees {
		acc.add(isPrimary, fee)
	}
	return k.distributeTakerFees(ctx, acc)
}

// ExecuteAtomicForTest runs fn under the same overlay and panic recovery as
// the public swap entry points.
func ExecuteAtomicForTest(k Keeper, ctx sdk.Context, handler string, fn func(cacheCtx sdk.Context) (int, error)) (int, error) {
	return executeAtomic(k, ctx, handler, fn)
}

// PoolModuleCacheBuiltForTest reports whether the module binding cache is
// populated.
func PoolModuleCacheBuiltForTest(k *Keeper) bool {
	_, _, built := k.moduleCache.get(types.Balancer)
	return built
}
