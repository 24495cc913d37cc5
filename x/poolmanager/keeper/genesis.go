package keeper

import (
	"context"
	"fmt"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

// InitGenesis initializes the pool manager module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	k.SetNextPoolId(ctx, genState.NextPoolId)

	for _, route := range genState.PoolRoutes {
		if err := k.RegisterRoute(ctx, route.PoolId, route.PoolType); err != nil {
			return fmt.Errorf("failed to register route for pool %d: %w", route.PoolId, err)
		}
	}

	for _, fee := range genState.DenomPairTakerFees {
		if err := k.SetDenomPairTakerFee(ctx, fee.DenomA, fee.DenomB, fee.TakerFee); err != nil {
			return fmt.Errorf("failed to set taker fee for %s/%s: %w", fee.DenomA, fee.DenomB, err)
		}
	}
	return nil
}

// ExportGenesis returns the pool manager module's exported genesis.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	routes, err := k.GetPoolRoutes(ctx)
	if err != nil {
		return nil, err
	}
	fees, err := k.GetAllDenomPairTakerFees(ctx)
	if err != nil {
		return nil, err
	}
	if routes == nil {
		routes = []types.ModuleRoute{}
	}
	if fees == nil {
		fees = []types.DenomPairTakerFee{}
	}

	return &types.GenesisState{
		Params:             params,
		NextPoolId:         k.GetNextPoolId(ctx),
		PoolRoutes:         routes,
		DenomPairTakerFees: fees,
	}, nil
}
