package types

import (
	"encoding/json"
)

// FeeDistributionQueryMsg is the smart query sent to the fee distribution
// contract. Exactly one field is set.
type FeeDistributionQueryMsg struct {
	PrimaryDistribution    *struct{} `json:"primary_distribution,omitempty"`
	NonPrimaryDistribution *struct{} `json:"non_primary_distribution,omitempty"`
}

// NewFeeDistributionQuery builds the query for one distribution category.
func NewFeeDistributionQuery(isPrimary bool) FeeDistributionQueryMsg {
	if isPrimary {
		return FeeDistributionQueryMsg{PrimaryDistribution: &struct{}{}}
	}
	return FeeDistributionQueryMsg{NonPrimaryDistribution: &struct{}{}}
}

// Bytes returns the JSON encoding of the query.
func (q FeeDistributionQueryMsg) Bytes() []byte {
	bz, err := json.Marshal(q)
	if err != nil {
		panic(err)
	}
	return bz
}

// FeeDistributionResponse is the contract's answer to either query.
type FeeDistributionResponse struct {
	Distribution TakerFeeDistribution `json:"distribution"`
}

// ParseFeeDistributionResponse decodes and validates a contract response.
func ParseFeeDistributionResponse(bz []byte) (TakerFeeDistribution, error) {
	var resp FeeDistributionResponse
	if err := json.Unmarshal(bz, &resp); err != nil {
		return TakerFeeDistribution{}, ErrOracleUnavailable.Wrapf("decode response: %s", err)
	}
	if err := resp.Distribution.Validate(); err != nil {
		return TakerFeeDistribution{}, err
	}
	return resp.Distribution, nil
}
