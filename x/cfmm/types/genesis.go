package types

import (
	"fmt"
)

// GenesisState holds every pool owned by the module.
type GenesisState struct {
	Pools []PoolRecord `json:"pools"`
}

// DefaultGenesis returns an empty pool set.
func DefaultGenesis() *GenesisState {
	return &GenesisState{Pools: []PoolRecord{}}
}

// Validate checks every pool and rejects duplicate ids.
func (gs GenesisState) Validate() error {
	seen := make(map[uint64]bool, len(gs.Pools))
	for i, record := range gs.Pools {
		pool, err := record.Pool()
		if err != nil {
			return fmt.Errorf("pool %d: %w", i, err)
		}
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("pool %d: %w", pool.GetId(), err)
		}
		if seen[pool.GetId()] {
			return fmt.Errorf("duplicate pool id %d", pool.GetId())
		}
		seen[pool.GetId()] = true
	}
	return nil
}
