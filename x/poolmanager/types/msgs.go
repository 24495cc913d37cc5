package types

import (
	"context"
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgSwapExactAmountIn swaps an exact input along a multi-hop route.
type MsgSwapExactAmountIn struct {
	Sender            string              `json:"sender"`
	Routes            []SwapAmountInRoute `json:"routes"`
	TokenIn           sdk.Coin            `json:"token_in"`
	TokenOutMinAmount math.Int            `json:"token_out_min_amount"`
}

type MsgSwapExactAmountInResponse struct {
	TokenOutAmount math.Int `json:"token_out_amount"`
}

// MsgSwapExactAmountOut swaps for an exact output along a multi-hop route.
type MsgSwapExactAmountOut struct {
	Sender           string               `json:"sender"`
	Routes           []SwapAmountOutRoute `json:"routes"`
	TokenInMaxAmount math.Int             `json:"token_in_max_amount"`
	TokenOut         sdk.Coin             `json:"token_out"`
}

type MsgSwapExactAmountOutResponse struct {
	TokenInAmount math.Int `json:"token_in_amount"`
}

// MsgSplitRouteSwapExactAmountIn splits an exact input across several routes.
type MsgSplitRouteSwapExactAmountIn struct {
	Sender            string                   `json:"sender"`
	Routes            []SwapAmountInSplitRoute `json:"routes"`
	TokenInDenom      string                   `json:"token_in_denom"`
	TokenOutMinAmount math.Int                 `json:"token_out_min_amount"`
}

type MsgSplitRouteSwapExactAmountInResponse struct {
	TokenOutAmount math.Int `json:"token_out_amount"`
}

// MsgSplitRouteSwapExactAmountOut splits an exact output across several routes.
type MsgSplitRouteSwapExactAmountOut struct {
	Sender           string                    `json:"sender"`
	Routes           []SwapAmountOutSplitRoute `json:"routes"`
	TokenOutDenom    string                    `json:"token_out_denom"`
	TokenInMaxAmount math.Int                  `json:"token_in_max_amount"`
}

type MsgSplitRouteSwapExactAmountOutResponse struct {
	TokenInAmount math.Int `json:"token_in_amount"`
}

// MsgSetDenomPairTakerFee lets a taker fee admin override pair fees.
type MsgSetDenomPairTakerFee struct {
	Sender             string              `json:"sender"`
	DenomPairTakerFees []DenomPairTakerFee `json:"denom_pair_taker_fees"`
}

type MsgSetDenomPairTakerFeeResponse struct{}

// MsgUpdateParams is the governance-gated params update.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

type MsgUpdateParamsResponse struct{}

// ValidateBasic performs stateless checks
func (msg MsgSwapExactAmountIn) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if !msg.TokenIn.IsValid() || !msg.TokenIn.IsPositive() {
		return sdkerrors.Wrapf(ErrInvalidAmount, "token in %s must be positive", msg.TokenIn)
	}
	if msg.TokenOutMinAmount.IsNil() || !msg.TokenOutMinAmount.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "token out min amount must be positive")
	}
	return ValidateSwapAmountInRoutes(msg.Routes, msg.TokenIn.Denom, 0)
}

// GetSigners returns the sender
func (msg MsgSwapExactAmountIn) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{sdk.MustAccAddressFromBech32(msg.Sender)}
}

// ValidateBasic performs stateless checks
func (msg MsgSwapExactAmountOut) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if !msg.TokenOut.IsValid() || !msg.TokenOut.IsPositive() {
		return sdkerrors.Wrapf(ErrInvalidAmount, "token out %s must be positive", msg.TokenOut)
	}
	if msg.TokenInMaxAmount.IsNil() || !msg.TokenInMaxAmount.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "token in max amount must be positive")
	}
	return ValidateSwapAmountOutRoutes(msg.Routes, msg.TokenOut.Denom, 0)
}

// GetSigners returns the sender
func (msg MsgSwapExactAmountOut) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{sdk.MustAccAddressFromBech32(msg.Sender)}
}

// ValidateBasic performs stateless checks
func (msg MsgSplitRouteSwapExactAmountIn) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if err := sdk.ValidateDenom(msg.TokenInDenom); err != nil {
		return sdkerrors.Wrap(ErrInvalidRoute, err.Error())
	}
	if msg.TokenOutMinAmount.IsNil() || !msg.TokenOutMinAmount.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "token out min amount must be positive")
	}
	return ValidateSplitRoutesIn(msg.Routes, msg.TokenInDenom, 0)
}

// GetSigners returns the sender
func (msg MsgSplitRouteSwapExactAmountIn) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{sdk.MustAccAddressFromBech32(msg.Sender)}
}

// ValidateBasic performs stateless checks
func (msg MsgSplitRouteSwapExactAmountOut) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if err := sdk.ValidateDenom(msg.TokenOutDenom); err != nil {
		return sdkerrors.Wrap(ErrInvalidRoute, err.Error())
	}
	if msg.TokenInMaxAmount.IsNil() || !msg.TokenInMaxAmount.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidAmount, "token in max amount must be positive")
	}
	return ValidateSplitRoutesOut(msg.Routes, msg.TokenOutDenom, 0)
}

// GetSigners returns the sender
func (msg MsgSplitRouteSwapExactAmountOut) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{sdk.MustAccAddressFromBech32(msg.Sender)}
}

// ValidateBasic performs stateless checks
func (msg MsgSetDenomPairTakerFee) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid sender address: %s", err)
	}
	if len(msg.DenomPairTakerFees) == 0 {
		return sdkerrors.Wrap(ErrInvalidTakerFee, "no taker fees given")
	}
	for _, fee := range msg.DenomPairTakerFees {
		if err := sdk.ValidateDenom(fee.DenomA); err != nil {
			return sdkerrors.Wrap(ErrInvalidTakerFee, err.Error())
		}
		if err := sdk.ValidateDenom(fee.DenomB); err != nil {
			return sdkerrors.Wrap(ErrInvalidTakerFee, err.Error())
		}
		if fee.DenomA == fee.DenomB {
			return sdkerrors.Wrapf(ErrInvalidTakerFee, "pair %s/%s uses the same denom", fee.DenomA, fee.DenomB)
		}
		if fee.TakerFee.IsNil() || fee.TakerFee.IsNegative() || fee.TakerFee.GT(math.LegacyOneDec()) {
			return sdkerrors.Wrapf(ErrInvalidTakerFee, "taker fee %s must be in [0,1]", fee.TakerFee)
		}
	}
	return nil
}

// GetSigners returns the sender
func (msg MsgSetDenomPairTakerFee) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{sdk.MustAccAddressFromBech32(msg.Sender)}
}

// ValidateBasic performs stateless checks
func (msg MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	return msg.Params.Validate()
}

// GetSigners returns the authority
func (msg MsgUpdateParams) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{sdk.MustAccAddressFromBech32(msg.Authority)}
}

// ValidateSplitRoutesIn checks every leg of a split exact-in swap. Legs must
// end in the same denom and may not repeat a pool sequence.
func ValidateSplitRoutesIn(routes []SwapAmountInSplitRoute, tokenInDenom string, maxHops uint32) error {
	if len(routes) == 0 {
		return ErrInvalidRoute.Wrap("no split routes given")
	}
	seen := make(map[string]struct{}, len(routes))
	finalDenom := ""
	for i, route := range routes {
		if route.TokenInAmount.IsNil() || !route.TokenInAmount.IsPositive() {
			return ErrInvalidAmount.Wrapf("split route %d: token in amount must be positive", i+1)
		}
		if err := ValidateSwapAmountInRoutes(route.Pools, tokenInDenom, maxHops); err != nil {
			return sdkerrors.Wrapf(err, "split route %d", i+1)
		}
		last := FinalDenom(route.Pools)
		if finalDenom == "" {
			finalDenom = last
		} else if last != finalDenom {
			return ErrInvalidRoute.Wrapf("split route %d ends in %s, expected %s", i+1, last, finalDenom)
		}
		key := routeKey(PoolIds(route.Pools))
		if _, dup := seen[key]; dup {
			return ErrInvalidRoute.Wrapf("split route %d duplicates pools %s", i+1, key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// ValidateSplitRoutesOut checks every leg of a split exact-out swap.
func ValidateSplitRoutesOut(routes []SwapAmountOutSplitRoute, tokenOutDenom string, maxHops uint32) error {
	if len(routes) == 0 {
		return ErrInvalidRoute.Wrap("no split routes given")
	}
	seen := make(map[string]struct{}, len(routes))
	firstDenom := ""
	for i, route := range routes {
		if route.TokenOutAmount.IsNil() || !route.TokenOutAmount.IsPositive() {
			return ErrInvalidAmount.Wrapf("split route %d: token out amount must be positive", i+1)
		}
		if err := ValidateSwapAmountOutRoutes(route.Pools, tokenOutDenom, maxHops); err != nil {
			return sdkerrors.Wrapf(err, "split route %d", i+1)
		}
		first := route.Pools[0].TokenInDenom
		if firstDenom == "" {
			firstDenom = first
		} else if first != firstDenom {
			return ErrInvalidRoute.Wrapf("split route %d starts with %s, expected %s", i+1, first, firstDenom)
		}
		ids := make([]uint64, len(route.Pools))
		for j, hop := range route.Pools {
			ids[j] = hop.PoolId
		}
		key := routeKey(ids)
		if _, dup := seen[key]; dup {
			return ErrInvalidRoute.Wrapf("split route %d duplicates pools %s", i+1, key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func routeKey(ids []uint64) string {
	return fmt.Sprint(ids)
}

// MsgServer is the pool manager Msg service.
type MsgServer interface {
	SwapExactAmountIn(context.Context, *MsgSwapExactAmountIn) (*MsgSwapExactAmountInResponse, error)
	SwapExactAmountOut(context.Context, *MsgSwapExactAmountOut) (*MsgSwapExactAmountOutResponse, error)
	SplitRouteSwapExactAmountIn(context.Context, *MsgSplitRouteSwapExactAmountIn) (*MsgSplitRouteSwapExactAmountInResponse, error)
	SplitRouteSwapExactAmountOut(context.Context, *MsgSplitRouteSwapExactAmountOut) (*MsgSplitRouteSwapExactAmountOutResponse, error)
	SetDenomPairTakerFee(context.Context, *MsgSetDenomPairTakerFee) (*MsgSetDenomPairTakerFeeResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}
