package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/poolmanager/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the pool manager MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// SwapExactAmountIn routes an exact input through the given pools
func (ms msgServer) SwapExactAmountIn(goCtx context.Context, msg *types.MsgSwapExactAmountIn) (*types.MsgSwapExactAmountInResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SwapExactAmountIn: validate: %w", err)
	}
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("SwapExactAmountIn: invalid sender address: %w", err)
	}

	tokenOutAmount, err := ms.RouteExactAmountIn(sdk.UnwrapSDKContext(goCtx), sender, msg.Routes, msg.TokenIn, msg.TokenOutMinAmount)
	if err != nil {
		return nil, fmt.Errorf("SwapExactAmountIn: %w", err)
	}
	return &types.MsgSwapExactAmountInResponse{TokenOutAmount: tokenOutAmount}, nil
}

// SwapExactAmountOut routes for an exact output through the given pools
func (ms msgServer) SwapExactAmountOut(goCtx context.Context, msg *types.MsgSwapExactAmountOut) (*types.MsgSwapExactAmountOutResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SwapExactAmountOut: validate: %w", err)
	}
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("SwapExactAmountOut: invalid sender address: %w", err)
	}

	tokenInAmount, err := ms.RouteExactAmountOut(sdk.UnwrapSDKContext(goCtx), sender, msg.Routes, msg.TokenInMaxAmount, msg.TokenOut)
	if err != nil {
		return nil, fmt.Errorf("SwapExactAmountOut: %w", err)
	}
	return &types.MsgSwapExactAmountOutResponse{TokenInAmount: tokenInAmount}, nil
}

// SplitRouteSwapExactAmountIn spreads an exact input over several routes
func (ms msgServer) SplitRouteSwapExactAmountIn(goCtx context.Context, msg *types.MsgSplitRouteSwapExactAmountIn) (*types.MsgSplitRouteSwapExactAmountInResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SplitRouteSwapExactAmountIn: validate: %w", err)
	}
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("SplitRouteSwapExactAmountIn: invalid sender address: %w", err)
	}

	tokenOutAmount, err := ms.SplitRouteExactAmountIn(sdk.UnwrapSDKContext(goCtx), sender, msg.Routes, msg.TokenInDenom, msg.TokenOutMinAmount)
	if err != nil {
		return nil, fmt.Errorf("SplitRouteSwapExactAmountIn: %w", err)
	}
	return &types.MsgSplitRouteSwapExactAmountInResponse{TokenOutAmount: tokenOutAmount}, nil
}

// SplitRouteSwapExactAmountOut spreads an exact output over several routes
func (ms msgServer) SplitRouteSwapExactAmountOut(goCtx context.Context, msg *types.MsgSplitRouteSwapExactAmountOut) (*types.MsgSplitRouteSwapExactAmountOutResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SplitRouteSwapExactAmountOut: validate: %w", err)
	}
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("SplitRouteSwapExactAmountOut: invalid sender address: %w", err)
	}

	tokenInAmount, err := ms.SplitRouteExactAmountOut(sdk.UnwrapSDKContext(goCtx), sender, msg.Routes, msg.TokenOutDenom, msg.TokenInMaxAmount)
	if err != nil {
		return nil, fmt.Errorf("SplitRouteSwapExactAmountOut: %w", err)
	}
	return &types.MsgSplitRouteSwapExactAmountOutResponse{TokenInAmount: tokenInAmount}, nil
}

// SetDenomPairTakerFee applies taker fee overrides from an admin
func (ms msgServer) SetDenomPairTakerFee(goCtx context.Context, msg *types.MsgSetDenomPairTakerFee) (*types.MsgSetDenomPairTakerFeeResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SetDenomPairTakerFee: validate: %w", err)
	}
	if err := ms.SetDenomPairTakerFees(goCtx, msg.Sender, msg.DenomPairTakerFees); err != nil {
		return nil, fmt.Errorf("SetDenomPairTakerFee: %w", err)
	}
	return &types.MsgSetDenomPairTakerFeeResponse{}, nil
}

// UpdateParams applies a governance params change
func (ms msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := ms.Keeper.UpdateParams(goCtx, msg.Authority, msg.Params); err != nil {
		return nil, err
	}
	return &types.MsgUpdateParamsResponse{}, nil
}
