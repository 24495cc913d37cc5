package types

import (
	"encoding/json"

	poolmanagertypes "github.com/paw-chain/pawswap/x/poolmanager/types"
)

// PoolRecord is the stored form of a pool. Exactly one of the pool fields is
// set and it matches Type.
type PoolRecord struct {
	Type         poolmanagertypes.PoolType `json:"type"`
	Balancer     *BalancerPool             `json:"balancer,omitempty"`
	Stableswap   *StableswapPool           `json:"stableswap,omitempty"`
	Concentrated *ConcentratedPool         `json:"concentrated,omitempty"`
}

// NewPoolRecord wraps a pool owned by this module.
func NewPoolRecord(pool poolmanagertypes.PoolI) (PoolRecord, error) {
	switch p := pool.(type) {
	case *BalancerPool:
		return PoolRecord{Type: poolmanagertypes.Balancer, Balancer: p}, nil
	case *StableswapPool:
		return PoolRecord{Type: poolmanagertypes.Stableswap, Stableswap: p}, nil
	case *ConcentratedPool:
		return PoolRecord{Type: poolmanagertypes.Concentrated, Concentrated: p}, nil
	default:
		return PoolRecord{}, ErrPoolTypeNotSupported.Wrapf("%T", pool)
	}
}

// Pool unwraps the record.
func (r PoolRecord) Pool() (poolmanagertypes.CFMMPool, error) {
	switch {
	case r.Type == poolmanagertypes.Balancer && r.Balancer != nil:
		return r.Balancer, nil
	case r.Type == poolmanagertypes.Stableswap && r.Stableswap != nil:
		return r.Stableswap, nil
	case r.Type == poolmanagertypes.Concentrated && r.Concentrated != nil:
		return r.Concentrated, nil
	default:
		return nil, ErrInvalidPool.Wrapf("record of type %s has no matching pool", r.Type)
	}
}

// MarshalPool encodes a pool for the store.
func MarshalPool(pool poolmanagertypes.PoolI) ([]byte, error) {
	record, err := NewPoolRecord(pool)
	if err != nil {
		return nil, err
	}
	return json.Marshal(record)
}

// UnmarshalPool decodes a stored pool.
func UnmarshalPool(bz []byte) (poolmanagertypes.CFMMPool, error) {
	var record PoolRecord
	if err := json.Unmarshal(bz, &record); err != nil {
		return nil, ErrInvalidPool.Wrapf("decode pool: %s", err)
	}
	return record.Pool()
}
