package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// CreatePool creates, routes and funds a pool. The creator pays the pool
// creation fee to the community pool and deposits the initial liquidity.
func (k Keeper) CreatePool(ctx sdk.Context, msg types.CreatePoolMsg) (uint64, error) {
	return executeAtomic(k, ctx, "create_pool", func(cacheCtx sdk.Context) (uint64, error) {
		if err := msg.ValidateBasic(); err != nil {
			return 0, err
		}
		params, err := k.GetParams(cacheCtx)
		if err != nil {
			return 0, err
		}

		poolType := msg.GetPoolType()
		module, err := k.GetPoolModuleByType(poolType)
		if err != nil {
			return 0, err
		}

		liquidity := msg.InitialLiquidity()
		if poolType == types.Concentrated && !hasAuthorizedQuoteDenom(params.TakerFeeParams, liquidity) {
			return 0, types.ErrUnauthorizedQuoteDenom.Wrapf(
				"denoms %s, authorized %v", liquidity, params.TakerFeeParams.AuthorizedQuoteDenoms,
			)
		}

		creator := msg.PoolCreator()
		if !params.PoolCreationFee.IsZero() {
			if err := k.distrKeeper.FundCommunityPool(cacheCtx, params.PoolCreationFee, creator); err != nil {
				return 0, fmt.Errorf("%w: pool creation fee %s: %w", types.ErrTransferFailed, params.PoolCreationFee, err)
			}
		}

		poolId := k.GetNextPoolId(cacheCtx)
		k.SetNextPoolId(cacheCtx, poolId+1)

		pool, err := msg.CreatePool(cacheCtx, poolId)
		if err != nil {
			return 0, err
		}
		if err := pool.Validate(); err != nil {
			return 0, err
		}
		if err := module.InitializePool(cacheCtx, pool, creator); err != nil {
			return 0, err
		}
		if err := k.RegisterRoute(cacheCtx, poolId, poolType); err != nil {
			return 0, err
		}
		if err := k.sendCoins(cacheCtx, creator, pool.GetAddress(), liquidity); err != nil {
			return 0, err
		}
		for _, coin := range liquidity {
			if err := k.increaseDenomLiquidity(cacheCtx, coin.Denom, coin.Amount); err != nil {
				return 0, err
			}
		}

		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypePoolCreated,
				sdk.NewAttribute(types.AttributeKeyPoolId, fmt.Sprintf("%d", poolId)),
				sdk.NewAttribute(types.AttributeKeyPoolType, poolType.String()),
				sdk.NewAttribute(types.AttributeKeySender, creator.String()),
				sdk.NewAttribute(types.AttributeKeyTokensIn, liquidity.String()),
			),
		)
		k.metrics.recordPoolCreated(poolType.String())

		if k.hooks != nil {
			k.runHook(cacheCtx, "after_pool_created", func(hookCtx sdk.Context) error {
				return k.hooks.AfterPoolCreated(hookCtx, creator, poolId, poolType)
			})
		}

		k.Logger(cacheCtx).Info("pool created", "pool_id", poolId, "type", poolType.String(), "creator", creator.String())
		return poolId, nil
	})
}

func hasAuthorizedQuoteDenom(params types.TakerFeeParams, liquidity sdk.Coins) bool {
	for _, coin := range liquidity {
		if params.IsAuthorizedQuoteDenom(coin.Denom) {
			return true
		}
	}
	return false
}
