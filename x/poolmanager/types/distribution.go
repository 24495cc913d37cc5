package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// TakerFeeDistribution splits collected taker fees between staking rewards
// and the community pool. The two shares sum to exactly one.
type TakerFeeDistribution struct {
	StakingRewards math.LegacyDec `json:"staking_rewards"`
	CommunityPool  math.LegacyDec `json:"community_pool"`
}

// NewTakerFeeDistribution returns a distribution with the given shares.
func NewTakerFeeDistribution(stakingRewards, communityPool math.LegacyDec) TakerFeeDistribution {
	return TakerFeeDistribution{StakingRewards: stakingRewards, CommunityPool: communityPool}
}

// Validate enforces that each share is in [0,1] and that they sum to one.
func (d TakerFeeDistribution) Validate() error {
	if d.StakingRewards.IsNil() || d.CommunityPool.IsNil() {
		return ErrDistributionInvariantViolated.Wrap("shares must be set")
	}
	one := math.LegacyOneDec()
	if d.StakingRewards.IsNegative() || d.StakingRewards.GT(one) {
		return ErrDistributionInvariantViolated.Wrapf("staking rewards share %s not in [0,1]", d.StakingRewards)
	}
	if d.CommunityPool.IsNegative() || d.CommunityPool.GT(one) {
		return ErrDistributionInvariantViolated.Wrapf("community pool share %s not in [0,1]", d.CommunityPool)
	}
	if sum := d.StakingRewards.Add(d.CommunityPool); !sum.Equal(one) {
		return ErrDistributionInvariantViolated.Wrapf("staking %s + community %s = %s", d.StakingRewards, d.CommunityPool, sum)
	}
	return nil
}

// Split divides amount into its staking and community parts. The community
// part is the remainder, so the parts always add back up to amount.
func (d TakerFeeDistribution) Split(amount math.LegacyDec) (staking, community math.LegacyDec) {
	staking = amount.Mul(d.StakingRewards)
	return staking, amount.Sub(staking)
}

// SplitInt is Split for integer coin amounts. The staking part is truncated
// toward zero and the community pool takes the remainder, so fractional units
// never leave the collector unaccounted: 100 splits 67/33, 199 splits 133/66
// and a single unit goes wholly to the community pool.
func (d TakerFeeDistribution) SplitInt(amount math.Int) (staking, community math.Int) {
	staking = d.StakingRewards.MulInt(amount).TruncateInt()
	return staking, amount.Sub(staking)
}

// String implements fmt.Stringer.
func (d TakerFeeDistribution) String() string {
	return fmt.Sprintf("%s/%s", d.StakingRewards, d.CommunityPool)
}
