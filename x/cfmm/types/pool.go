package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	poolmanagertypes "github.com/paw-chain/pawswap/x/poolmanager/types"
)

// twoAssetReserves returns the reserves of denomIn and denomOut, failing when
// either side is empty.
func twoAssetReserves(reserves sdk.Coins, denomIn, denomOut string) (math.Int, math.Int, error) {
	reserveIn := reserves.AmountOf(denomIn)
	reserveOut := reserves.AmountOf(denomOut)
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, math.Int{}, ErrInsufficientLiquidity.Wrapf("reserves %s", reserves)
	}
	return reserveIn, reserveOut, nil
}

// applyReserves adds tokenIn to and removes tokenOut from reserves. A pool may
// never be emptied of either asset.
func applyReserves(reserves sdk.Coins, tokenIn, tokenOut sdk.Coin) (sdk.Coins, error) {
	if reserves.AmountOf(tokenOut.Denom).LTE(tokenOut.Amount) {
		return nil, ErrInsufficientLiquidity.Wrapf("cannot remove %s from reserves %s", tokenOut, reserves)
	}
	return reserves.Add(tokenIn).Sub(tokenOut), nil
}

func validateBase(id uint64, address sdk.AccAddress, spreadFactor math.LegacyDec, reserves sdk.Coins) error {
	if id == 0 {
		return ErrInvalidPool.Wrap("pool id cannot be zero")
	}
	if !address.Equals(poolmanagertypes.NewPoolAddress(id)) {
		return ErrInvalidPool.Wrapf("pool %d has address %s", id, address)
	}
	if spreadFactor.IsNil() || spreadFactor.IsNegative() || spreadFactor.GTE(math.LegacyOneDec()) {
		return ErrInvalidPool.Wrapf("spread factor %s must be in [0,1)", spreadFactor)
	}
	if !reserves.IsValid() || len(reserves) != 2 {
		return ErrInvalidPool.Wrapf("pool needs two positive reserves, got %s", reserves)
	}
	return nil
}

func copyCoins(coins sdk.Coins) sdk.Coins {
	out := make(sdk.Coins, len(coins))
	copy(out, coins)
	return out
}
