package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// ModuleRoute records which pool type a pool id resolves to.
type ModuleRoute struct {
	PoolId   uint64   `json:"pool_id"`
	PoolType PoolType `json:"pool_type"`
}

// DenomPairTakerFee is a per-pair override of the default taker fee.
type DenomPairTakerFee struct {
	DenomA   string         `json:"denom_a"`
	DenomB   string         `json:"denom_b"`
	TakerFee math.LegacyDec `json:"taker_fee"`
}

// GenesisState defines the pool manager module's genesis state.
type GenesisState struct {
	Params             Params              `json:"params"`
	NextPoolId         uint64              `json:"next_pool_id"`
	PoolRoutes         []ModuleRoute       `json:"pool_routes"`
	DenomPairTakerFees []DenomPairTakerFee `json:"denom_pair_taker_fees"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:             DefaultParams(),
		NextPoolId:         1,
		PoolRoutes:         []ModuleRoute{},
		DenomPairTakerFees: []DenomPairTakerFee{},
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if gs.NextPoolId == 0 {
		return fmt.Errorf("next pool id must be positive")
	}

	seen := make(map[uint64]struct{}, len(gs.PoolRoutes))
	for _, route := range gs.PoolRoutes {
		if route.PoolId == 0 || route.PoolId >= gs.NextPoolId {
			return fmt.Errorf("pool route id %d out of range [1,%d)", route.PoolId, gs.NextPoolId)
		}
		if _, dup := seen[route.PoolId]; dup {
			return fmt.Errorf("duplicate pool route for pool %d", route.PoolId)
		}
		if err := route.PoolType.Validate(); err != nil {
			return err
		}
		seen[route.PoolId] = struct{}{}
	}

	for _, fee := range gs.DenomPairTakerFees {
		if fee.DenomA == "" || fee.DenomB == "" || fee.DenomA == fee.DenomB {
			return fmt.Errorf("invalid taker fee pair %q/%q", fee.DenomA, fee.DenomB)
		}
		if fee.TakerFee.IsNil() || fee.TakerFee.IsNegative() || fee.TakerFee.GT(math.LegacyOneDec()) {
			return fmt.Errorf("taker fee for %s/%s must be in [0,1]", fee.DenomA, fee.DenomB)
		}
	}
	return nil
}
