package keeper

import (
	"fmt"

	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-metrics"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// ResolveTakerFeeDistribution returns the split for a distribution category.
// When a fee distribution contract is configured both of its distributions
// are queried; if either query fails or returns shares that do not sum to
// one, the governance default for the category is used instead. It never
// fails.
func (k Keeper) ResolveTakerFeeDistribution(ctx sdk.Context, isPrimary bool) types.TakerFeeDistribution {
	dist, _ := k.resolveTakerFeeDistribution(ctx, isPrimary)
	return dist
}

func (k Keeper) resolveTakerFeeDistribution(ctx sdk.Context, isPrimary bool) (types.TakerFeeDistribution, string) {
	params, err := k.GetParams(ctx)
	if err != nil {
		k.Logger(ctx).Error("failed to read params, using default taker fee distribution", "error", err)
		params = types.DefaultParams()
	}
	defaults := params.TakerFeeParams.NonPrimaryDistribution
	if isPrimary {
		defaults = params.TakerFeeParams.PrimaryDistribution
	}

	if params.FeeDistributionContract == "" || k.contractQuerier == nil {
		k.metrics.recordOracle(types.AttributeValueDefault)
		return defaults, types.AttributeValueDefault
	}

	primary, nonPrimary, err := k.queryFeeDistributions(ctx, params)
	if err != nil {
		k.Logger(ctx).Error("fee distribution oracle failed, using governance default",
			"contract", params.FeeDistributionContract,
			"category", categoryLabel(isPrimary),
			"error", err,
		)
		k.metrics.recordOracle("fallback")
		telemetry.IncrCounterWithLabels(
			[]string{types.ModuleName, "fee_oracle", "fallback"},
			1,
			[]metrics.Label{telemetry.NewLabel("category", categoryLabel(isPrimary))},
		)
		return defaults, types.AttributeValueDefault
	}

	k.metrics.recordOracle(types.AttributeValueOracle)
	if isPrimary {
		return primary, types.AttributeValueOracle
	}
	return nonPrimary, types.AttributeValueOracle
}

// queryFeeDistributions fetches both distributions. Either failing fails both.
func (k Keeper) queryFeeDistributions(ctx sdk.Context, params types.Params) (primary, nonPrimary types.TakerFeeDistribution, err error) {
	contract, err := sdk.AccAddressFromBech32(params.FeeDistributionContract)
	if err != nil {
		return primary, nonPrimary, types.ErrOracleUnavailable.Wrapf("contract address: %s", err)
	}
	if primary, err = k.queryFeeDistribution(ctx, contract, true, params.OracleQueryGasLimit); err != nil {
		return primary, nonPrimary, fmt.Errorf("primary distribution: %w", err)
	}
	if nonPrimary, err = k.queryFeeDistribution(ctx, contract, false, params.OracleQueryGasLimit); err != nil {
		return primary, nonPrimary, fmt.Errorf("non-primary distribution: %w", err)
	}
	return primary, nonPrimary, nil
}

// queryFeeDistribution runs one smart query on a discarded cache context with
// its own gas meter. The gas it used is charged to ctx afterwards.
func (k Keeper) queryFeeDistribution(ctx sdk.Context, contract sdk.AccAddress, isPrimary bool, gasLimit uint64) (types.TakerFeeDistribution, error) {
	queryCtx, _ := ctx.CacheContext()
	queryCtx = queryCtx.WithGasMeter(storetypes.NewGasMeter(gasLimit))

	bz, err := func() (bz []byte, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = types.ErrOracleUnavailable.Wrapf("query aborted: %v", r)
			}
		}()
		bz, err = k.contractQuerier.QuerySmart(queryCtx, contract, types.NewFeeDistributionQuery(isPrimary).Bytes())
		if err != nil {
			return nil, types.ErrOracleUnavailable.Wrap(err.Error())
		}
		return bz, nil
	}()

	ctx.GasMeter().ConsumeGas(queryCtx.GasMeter().GasConsumedToLimit(), "fee distribution oracle query")
	if err != nil {
		return types.TakerFeeDistribution{}, err
	}
	return types.ParseFeeDistributionResponse(bz)
}

// distributeTakerFees pays out the taker fees collected along a route. The
// staking share is truncated and goes to the fee collector; the remainder
// funds the community pool.
func (k Keeper) distributeTakerFees(ctx sdk.Context, acc *takerFeeAccumulator) error {
	collector := types.TakerFeeCollectorAddress()
	store := k.getStore(ctx)

	for _, isPrimary := range []bool{true, false} {
		fees := acc.get(isPrimary)
		if fees.IsZero() {
			continue
		}
		dist, source := k.resolveTakerFeeDistribution(ctx, isPrimary)

		staking, community := sdk.NewCoins(), sdk.NewCoins()
		for _, fee := range fees {
			toStaking, toCommunity := dist.SplitInt(fee.Amount)
			staking = staking.Add(sdk.NewCoin(fee.Denom, toStaking))
			community = community.Add(sdk.NewCoin(fee.Denom, toCommunity))
		}

		if err := k.sendCoins(ctx, collector, k.feeCollector, staking); err != nil {
			return err
		}
		if !community.IsZero() {
			if err := k.distrKeeper.FundCommunityPool(ctx, community, collector); err != nil {
				return fmt.Errorf("%w: fund community pool with %s: %w", types.ErrTransferFailed, community, err)
			}
		}

		for _, coin := range staking {
			if err := addInt(store, types.GetTakerFeeStakingKey(coin.Denom), coin.Amount); err != nil {
				return err
			}
			k.metrics.recordDistribution(coin.Denom, "staking_rewards", toFloat(coin.Amount))
		}
		for _, coin := range community {
			if err := addInt(store, types.GetTakerFeeCommunityKey(coin.Denom), coin.Amount); err != nil {
				return err
			}
			k.metrics.recordDistribution(coin.Denom, "community_pool", toFloat(coin.Amount))
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeTakerFeeDistributed,
				sdk.NewAttribute(types.AttributeKeyStakingRewards, staking.String()),
				sdk.NewAttribute(types.AttributeKeyCommunityPool, community.String()),
				sdk.NewAttribute(types.AttributeKeyDistribution, source),
			),
		)
	}
	return nil
}
