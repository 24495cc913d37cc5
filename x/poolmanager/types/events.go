package types

// Event types and attribute keys for the pool manager module
const (
	EventTypeTokenSwapped         = "token_swapped"
	EventTypePoolCreated          = "pool_created"
	EventTypeRouteSwap            = "route_swap"
	EventTypeTakerFeeCharged      = "taker_fee_charged"
	EventTypeTakerFeeDistributed  = "taker_fee_distributed"
	EventTypeDenomPairTakerFeeSet = "denom_pair_taker_fee_set"
	EventTypeParamsUpdated        = "params_updated"
	EventTypePanicRecovered       = "panic_recovered"

	AttributeKeyPoolId          = "pool_id"
	AttributeKeyPoolType        = "pool_type"
	AttributeKeySender          = "sender"
	AttributeKeyTokensIn        = "tokens_in"
	AttributeKeyTokensOut       = "tokens_out"
	AttributeKeySpreadFactor    = "spread_factor"
	AttributeKeySpreadFee       = "spread_fee"
	AttributeKeyTakerFee        = "taker_fee"
	AttributeKeyHops            = "hops"
	AttributeKeyStakingRewards  = "staking_rewards"
	AttributeKeyCommunityPool   = "community_pool"
	AttributeKeyDistribution    = "distribution_source"
	AttributeKeyDenomA          = "denom_a"
	AttributeKeyDenomB          = "denom_b"
	AttributeKeyAuthority       = "authority"
	AttributeKeyHandler         = "handler"
	AttributeKeyError           = "error"
	AttributeKeySeverity        = "severity"
	AttributeValueOracle        = "oracle"
	AttributeValueDefault       = "default"
	AttributeValueSeverityAlert = "critical"
)
