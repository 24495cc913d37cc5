package keeper

import (
	"context"
	"fmt"

	"github.com/paw-chain/pawswap/x/cfmm/types"
)

// InitGenesis stores every genesis pool.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	for _, record := range genState.Pools {
		pool, err := record.Pool()
		if err != nil {
			return err
		}
		if err := k.SetPool(ctx, pool); err != nil {
			return fmt.Errorf("failed to set pool %d: %w", pool.GetId(), err)
		}
	}
	return nil
}

// ExportGenesis returns every stored pool.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	pools, err := k.GetPools(ctx)
	if err != nil {
		return nil, err
	}
	genState := types.DefaultGenesis()
	for _, pool := range pools {
		record, err := types.NewPoolRecord(pool)
		if err != nil {
			return nil, err
		}
		genState.Pools = append(genState.Pools, record)
	}
	return genState, nil
}
