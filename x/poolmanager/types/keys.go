package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "poolmanager"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// TakerFeeCollectorName is the account that holds taker fees between
	// collection and distribution within a route.
	TakerFeeCollectorName = "taker_fee_collector"
)

// Store key prefixes
var (
	ParamsKey                  = []byte{0x01}
	NextPoolIdKey              = []byte{0x02}
	PoolRouteKeyPrefix         = []byte{0x03}
	DenomPairTakerFeeKeyPrefix = []byte{0x04}
	DenomLiquidityKeyPrefix    = []byte{0x05}
	TakerFeeCollectedKeyPrefix = []byte{0x06}
	TakerFeeStakingKeyPrefix   = []byte{0x07}
	TakerFeeCommunityKeyPrefix = []byte{0x08}
)

// GetPoolRouteKey returns the store key for the pool type route of a pool.
func GetPoolRouteKey(poolId uint64) []byte {
	return append(append([]byte{}, PoolRouteKeyPrefix...), sdk.Uint64ToBigEndian(poolId)...)
}

// GetDenomPairTakerFeeKey returns the store key for a pair taker fee override.
// Denoms are ordered so both directions share one entry.
func GetDenomPairTakerFeeKey(denomA, denomB string) []byte {
	if denomA > denomB {
		denomA, denomB = denomB, denomA
	}
	key := append([]byte{}, DenomPairTakerFeeKeyPrefix...)
	key = append(key, []byte(denomA)...)
	key = append(key, '|')
	return append(key, []byte(denomB)...)
}

// GetDenomLiquidityKey returns the store key for the liquidity-flow counter of a denom.
func GetDenomLiquidityKey(denom string) []byte {
	return append(append([]byte{}, DenomLiquidityKeyPrefix...), []byte(denom)...)
}

// GetTakerFeeCollectedKey returns the tracker key for taker fees collected
// for one distribution category.
func GetTakerFeeCollectedKey(isPrimary bool, denom string) []byte {
	category := byte(0)
	if isPrimary {
		category = 1
	}
	key := append([]byte{}, TakerFeeCollectedKeyPrefix...)
	key = append(key, category)
	return append(key, []byte(denom)...)
}

// GetTakerFeeStakingKey returns the tracker key for taker fees sent to staking rewards.
func GetTakerFeeStakingKey(denom string) []byte {
	return append(append([]byte{}, TakerFeeStakingKeyPrefix...), []byte(denom)...)
}

// GetTakerFeeCommunityKey returns the tracker key for taker fees sent to the community pool.
func GetTakerFeeCommunityKey(denom string) []byte {
	return append(append([]byte{}, TakerFeeCommunityKeyPrefix...), []byte(denom)...)
}

// NewPoolAddress derives the custody account of a pool.
func NewPoolAddress(poolId uint64) sdk.AccAddress {
	return sdk.AccAddress(address.Module(ModuleName, []byte("pool"), sdk.Uint64ToBigEndian(poolId)))
}

// TakerFeeCollectorAddress is the custody account for taker fees awaiting distribution.
func TakerFeeCollectorAddress() sdk.AccAddress {
	return sdk.AccAddress(address.Module(ModuleName, []byte(TakerFeeCollectorName)))
}
