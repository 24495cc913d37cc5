package keeper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// takerFeeAccumulator collects the taker fees charged along a route, keyed by
// distribution category, until they are distributed at the end of the route.
type takerFeeAccumulator struct {
	primary    sdk.Coins
	nonPrimary sdk.Coins
}

func (a *takerFeeAccumulator) add(isPrimary bool, fee sdk.Coin) {
	if !fee.IsPositive() {
		return
	}
	if isPrimary {
		a.primary = a.primary.Add(fee)
	} else {
		a.nonPrimary = a.nonPrimary.Add(fee)
	}
}

func (a *takerFeeAccumulator) get(isPrimary bool) sdk.Coins {
	if isPrimary {
		return a.primary
	}
	return a.nonPrimary
}

// Total returns every fee collected so far.
func (a *takerFeeAccumulator) Total() sdk.Coins {
	return a.primary.Add(a.nonPrimary...)
}

// GetTradingPairTakerFee returns the taker fee for a pair: the admin override
// when one exists, the default taker fee otherwise.
func (k Keeper) GetTradingPairTakerFee(ctx context.Context, denomA, denomB string) (math.LegacyDec, error) {
	var fee math.LegacyDec
	found, err := getJSON(k.getStore(ctx), types.GetDenomPairTakerFeeKey(denomA, denomB), &fee)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if found {
		return fee, nil
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return params.TakerFeeParams.DefaultTakerFee, nil
}

// SetDenomPairTakerFees applies pair overrides on behalf of a taker fee admin.
// Setting a pair back to the default fee removes its override.
func (k Keeper) SetDenomPairTakerFees(ctx context.Context, sender string, fees []types.DenomPairTakerFee) error {
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if !params.TakerFeeParams.IsAdmin(sender) {
		return types.ErrUnauthorized.Wrapf("%s is not a taker fee admin", sender)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	for _, fee := range fees {
		if fee.TakerFee.IsNil() || fee.TakerFee.IsNegative() || fee.TakerFee.GT(math.LegacyOneDec()) {
			return types.ErrInvalidTakerFee.Wrapf("taker fee %s for %s/%s must be in [0,1]", fee.TakerFee, fee.DenomA, fee.DenomB)
		}
		if fee.TakerFee.Equal(params.TakerFeeParams.DefaultTakerFee) {
			k.getStore(ctx).Delete(types.GetDenomPairTakerFeeKey(fee.DenomA, fee.DenomB))
		} else if err := k.SetDenomPairTakerFee(ctx, fee.DenomA, fee.DenomB, fee.TakerFee); err != nil {
			return err
		}

		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeDenomPairTakerFeeSet,
				sdk.NewAttribute(types.AttributeKeySender, sender),
				sdk.NewAttribute(types.AttributeKeyDenomA, fee.DenomA),
				sdk.NewAttribute(types.AttributeKeyDenomB, fee.DenomB),
				sdk.NewAttribute(types.AttributeKeyTakerFee, fee.TakerFee.String()),
			),
		)
	}
	return nil
}

// SetDenomPairTakerFee stores a pair override without authorization checks.
func (k Keeper) SetDenomPairTakerFee(ctx context.Context, denomA, denomB string, fee math.LegacyDec) error {
	if denomA == denomB {
		return types.ErrInvalidTakerFee.Wrapf("pair %s/%s uses the same denom", denomA, denomB)
	}
	return setJSON(k.getStore(ctx), types.GetDenomPairTakerFeeKey(denomA, denomB), fee)
}

// GetAllDenomPairTakerFees returns every pair override, ordered by pair key.
func (k Keeper) GetAllDenomPairTakerFees(ctx context.Context) ([]types.DenomPairTakerFee, error) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.DenomPairTakerFeeKeyPrefix)
	defer iterator.Close()

	var fees []types.DenomPairTakerFee
	for ; iterator.Valid(); iterator.Next() {
		pair := string(iterator.Key()[len(types.DenomPairTakerFeeKeyPrefix):])
		denomA, denomB, ok := strings.Cut(pair, "|")
		if !ok {
			return nil, fmt.Errorf("malformed taker fee pair key %q", pair)
		}
		var fee math.LegacyDec
		if err := json.Unmarshal(iterator.Value(), &fee); err != nil {
			return nil, fmt.Errorf("taker fee %s: %w", pair, err)
		}
		fees = append(fees, types.DenomPairTakerFee{DenomA: denomA, DenomB: denomB, TakerFee: fee})
	}
	return fees, nil
}

// CalcTakerFeeExactIn removes the taker fee from an exact input. The fee is
// rounded up so that the amount swapped never exceeds in*(1-takerFee).
func CalcTakerFeeExactIn(tokenIn sdk.Coin, takerFee math.LegacyDec) (tokenInAfterFee, fee sdk.Coin) {
	afterFee := tokenIn.Amount.ToLegacyDec().MulTruncate(math.LegacyOneDec().Sub(takerFee)).TruncateInt()
	return sdk.NewCoin(tokenIn.Denom, afterFee), sdk.NewCoin(tokenIn.Denom, tokenIn.Amount.Sub(afterFee))
}

// CalcTakerFeeExactOut grosses up the input a swap needs so that, after the
// taker fee, tokenIn is left for the pool.
func CalcTakerFeeExactOut(tokenIn sdk.Coin, takerFee math.LegacyDec) (tokenInWithFee, fee sdk.Coin, err error) {
	if takerFee.GTE(math.LegacyOneDec()) {
		return sdk.Coin{}, sdk.Coin{}, types.ErrInvalidTakerFee.Wrapf("taker fee %s leaves nothing to swap", takerFee)
	}
	withFee := tokenIn.Amount.ToLegacyDec().Quo(math.LegacyOneDec().Sub(takerFee)).Ceil().TruncateInt()
	return sdk.NewCoin(tokenIn.Denom, withFee), sdk.NewCoin(tokenIn.Denom, withFee.Sub(tokenIn.Amount)), nil
}

// takerFeeForSender returns the pair taker fee unless sender is whitelisted.
func (k Keeper) takerFeeForSender(ctx context.Context, params types.Params, sender sdk.AccAddress, denomIn, denomOut string) (math.LegacyDec, error) {
	if params.TakerFeeParams.IsReducedFee(sender.String()) {
		return math.LegacyZeroDec(), nil
	}
	return k.GetTradingPairTakerFee(ctx, denomIn, denomOut)
}

// chargeTakerFee moves a hop's taker fee into the collector account and
// tracks it under its distribution category.
func (k Keeper) chargeTakerFee(
	ctx sdk.Context,
	sender sdk.AccAddress,
	poolId uint64,
	fee sdk.Coin,
	isPrimary bool,
	acc *takerFeeAccumulator,
) error {
	if !fee.IsPositive() {
		return nil
	}
	if err := k.sendCoins(ctx, sender, types.TakerFeeCollectorAddress(), sdk.NewCoins(fee)); err != nil {
		return err
	}
	if err := addInt(k.getStore(ctx), types.GetTakerFeeCollectedKey(isPrimary, fee.Denom), fee.Amount); err != nil {
		return err
	}
	acc.add(isPrimary, fee)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTakerFeeCharged,
			sdk.NewAttribute(types.AttributeKeyPoolId, fmt.Sprintf("%d", poolId)),
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyTakerFee, fee.String()),
		),
	)
	k.metrics.recordTakerFee(fee.Denom, categoryLabel(isPrimary), toFloat(fee.Amount))
	return nil
}

func categoryLabel(isPrimary bool) string {
	if isPrimary {
		return "primary"
	}
	return "non_primary"
}
