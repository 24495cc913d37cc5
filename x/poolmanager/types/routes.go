package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// SwapAmountInRoute is one hop of an exact-in route.
type SwapAmountInRoute struct {
	PoolId        uint64 `json:"pool_id" yaml:"pool_id"`
	TokenOutDenom string `json:"token_out_denom" yaml:"token_out_denom"`
}

// SwapAmountOutRoute is one hop of an exact-out route.
type SwapAmountOutRoute struct {
	PoolId       uint64 `json:"pool_id" yaml:"pool_id"`
	TokenInDenom string `json:"token_in_denom" yaml:"token_in_denom"`
}

// SwapAmountInSplitRoute is one leg of a split exact-in swap.
type SwapAmountInSplitRoute struct {
	Pools         []SwapAmountInRoute `json:"pools" yaml:"pools"`
	TokenInAmount math.Int            `json:"token_in_amount" yaml:"token_in_amount"`
}

// SwapAmountOutSplitRoute is one leg of a split exact-out swap.
type SwapAmountOutSplitRoute struct {
	Pools          []SwapAmountOutRoute `json:"pools" yaml:"pools"`
	TokenOutAmount math.Int             `json:"token_out_amount" yaml:"token_out_amount"`
}

// ValidateSwapAmountInRoutes checks the shape of an exact-in route: it must be
// non-empty, no longer than maxHops, and every hop must change denom.
func ValidateSwapAmountInRoutes(routes []SwapAmountInRoute, tokenInDenom string, maxHops uint32) error {
	if len(routes) == 0 {
		return ErrInvalidRoute.Wrap("route is empty")
	}
	if maxHops > 0 && len(routes) > int(maxHops) {
		return ErrInvalidRoute.Wrapf("route has %d hops, max %d", len(routes), maxHops)
	}
	denomIn := tokenInDenom
	for i, hop := range routes {
		if hop.PoolId == 0 {
			return ErrInvalidRoute.Wrapf("hop %d: pool id cannot be zero", i+1)
		}
		if err := sdk.ValidateDenom(hop.TokenOutDenom); err != nil {
			return ErrInvalidRoute.Wrapf("hop %d: %s", i+1, err)
		}
		if hop.TokenOutDenom == denomIn {
			return ErrSameDenomSwap.Wrapf("hop %d: token out denom %s equals token in denom", i+1, denomIn)
		}
		denomIn = hop.TokenOutDenom
	}
	return nil
}

// ValidateSwapAmountOutRoutes checks the shape of an exact-out route.
func ValidateSwapAmountOutRoutes(routes []SwapAmountOutRoute, tokenOutDenom string, maxHops uint32) error {
	if len(routes) == 0 {
		return ErrInvalidRoute.Wrap("route is empty")
	}
	if maxHops > 0 && len(routes) > int(maxHops) {
		return ErrInvalidRoute.Wrapf("route has %d hops, max %d", len(routes), maxHops)
	}
	for i, hop := range routes {
		if hop.PoolId == 0 {
			return ErrInvalidRoute.Wrapf("hop %d: pool id cannot be zero", i+1)
		}
		if err := sdk.ValidateDenom(hop.TokenInDenom); err != nil {
			return ErrInvalidRoute.Wrapf("hop %d: %s", i+1, err)
		}
		hopOut := tokenOutDenom
		if i+1 < len(routes) {
			hopOut = routes[i+1].TokenInDenom
		}
		if hop.TokenInDenom == hopOut {
			return ErrSameDenomSwap.Wrapf("hop %d: token in denom %s equals token out denom", i+1, hopOut)
		}
	}
	return nil
}

// FinalDenom returns the denom produced by the last hop.
func FinalDenom(routes []SwapAmountInRoute) string {
	if len(routes) == 0 {
		return ""
	}
	return routes[len(routes)-1].TokenOutDenom
}

// PoolIds returns the pool ids of an exact-in route in hop order.
func PoolIds(routes []SwapAmountInRoute) []uint64 {
	ids := make([]uint64, len(routes))
	for i, hop := range routes {
		ids[i] = hop.PoolId
	}
	return ids
}
