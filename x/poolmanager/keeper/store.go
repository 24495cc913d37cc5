package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

func getJSON[T any](store storetypes.KVStore, key []byte, out *T) (bool, error) {
	bz := store.Get(key)
	if bz == nil {
		return false, nil
	}
	if err := json.Unmarshal(bz, out); err != nil {
		return true, fmt.Errorf("unmarshal %x: %w", key, err)
	}
	return true, nil
}

func setJSON(store storetypes.KVStore, key []byte, value any) error {
	bz, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %x: %w", key, err)
	}
	store.Set(key, bz)
	return nil
}

func getInt(store storetypes.KVStore, key []byte) (math.Int, error) {
	bz := store.Get(key)
	if bz == nil {
		return math.ZeroInt(), nil
	}
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		return math.Int{}, fmt.Errorf("unmarshal amount %x: %w", key, err)
	}
	return amount, nil
}

func setInt(store storetypes.KVStore, key []byte, amount math.Int) error {
	if amount.IsZero() {
		store.Delete(key)
		return nil
	}
	bz, err := amount.Marshal()
	if err != nil {
		return fmt.Errorf("marshal amount %x: %w", key, err)
	}
	store.Set(key, bz)
	return nil
}

func addInt(store storetypes.KVStore, key []byte, delta math.Int) error {
	current, err := getInt(store, key)
	if err != nil {
		return err
	}
	return setInt(store, key, current.Add(delta))
}

// GetNextPoolId returns the id the next created pool will receive.
func (k Keeper) GetNextPoolId(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.NextPoolIdKey)
	if bz == nil {
		return 1
	}
	return sdk.BigEndianToUint64(bz)
}

// SetNextPoolId stores the next pool id.
func (k Keeper) SetNextPoolId(ctx context.Context, poolId uint64) {
	k.getStore(ctx).Set(types.NextPoolIdKey, sdk.Uint64ToBigEndian(poolId))
}

// GetDenomLiquidity returns the net liquidity that has flowed into pools for a denom.
func (k Keeper) GetDenomLiquidity(ctx context.Context, denom string) (math.Int, error) {
	return getInt(k.getStore(ctx), types.GetDenomLiquidityKey(denom))
}

func (k Keeper) increaseDenomLiquidity(ctx context.Context, denom string, amount math.Int) error {
	return addInt(k.getStore(ctx), types.GetDenomLiquidityKey(denom), amount)
}

func (k Keeper) decreaseDenomLiquidity(ctx context.Context, denom string, amount math.Int) error {
	store := k.getStore(ctx)
	key := types.GetDenomLiquidityKey(denom)
	current, err := getInt(store, key)
	if err != nil {
		return err
	}
	if current.LT(amount) {
		return types.ErrInvalidAmount.Wrapf("liquidity for %s would go negative: have %s, removing %s", denom, current, amount)
	}
	return setInt(store, key, current.Sub(amount))
}

// GetTakerFeeCollected returns the taker fees collected for a category and denom.
func (k Keeper) GetTakerFeeCollected(ctx context.Context, isPrimary bool, denom string) (math.Int, error) {
	return getInt(k.getStore(ctx), types.GetTakerFeeCollectedKey(isPrimary, denom))
}

// GetTakerFeeToStakingRewards returns the taker fees sent to staking rewards for a denom.
func (k Keeper) GetTakerFeeToStakingRewards(ctx context.Context, denom string) (math.Int, error) {
	return getInt(k.getStore(ctx), types.GetTakerFeeStakingKey(denom))
}

// GetTakerFeeToCommunityPool returns the taker fees sent to the community pool for a denom.
func (k Keeper) GetTakerFeeToCommunityPool(ctx context.Context, denom string) (math.Int, error) {
	return getInt(k.getStore(ctx), types.GetTakerFeeCommunityKey(denom))
}
