package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	poolmanagertypes "github.com/paw-chain/pawswap/x/poolmanager/types"
)

var _ poolmanagertypes.CFMMPool = &ConcentratedPool{}

// ConcentratedPool holds a single liquidity position between
// LowerSqrtPrice and UpperSqrtPrice. Prices are quoted as Token1 per Token0.
type ConcentratedPool struct {
	Id               uint64         `json:"id"`
	Address          sdk.AccAddress `json:"address"`
	SpreadFactor     math.LegacyDec `json:"spread_factor"`
	Token0           string         `json:"token0"`
	Token1           string         `json:"token1"`
	Reserves         sdk.Coins      `json:"reserves"`
	Liquidity        math.LegacyDec `json:"liquidity"`
	CurrentSqrtPrice math.LegacyDec `json:"current_sqrt_price"`
	LowerSqrtPrice   math.LegacyDec `json:"lower_sqrt_price"`
	UpperSqrtPrice   math.LegacyDec `json:"upper_sqrt_price"`
}

// NewConcentratedPool creates a pool from deposited amounts and a price
// range. Liquidity is the largest value both deposits can back.
func NewConcentratedPool(
	poolId uint64,
	spreadFactor math.LegacyDec,
	token0, token1 sdk.Coin,
	currentPrice, lowerPrice, upperPrice math.LegacyDec,
) (*ConcentratedPool, error) {
	if !lowerPrice.IsPositive() || !lowerPrice.LT(currentPrice) || !currentPrice.LT(upperPrice) {
		return nil, ErrPriceOutOfRange.Wrapf("need 0 < lower (%s) < current (%s) < upper (%s)", lowerPrice, currentPrice, upperPrice)
	}
	sqrtP, err := currentPrice.ApproxSqrt()
	if err != nil {
		return nil, err
	}
	sqrtLower, err := lowerPrice.ApproxSqrt()
	if err != nil {
		return nil, err
	}
	sqrtUpper, err := upperPrice.ApproxSqrt()
	if err != nil {
		return nil, err
	}

	// L0 = amount0 * sqrtP * sqrtUpper / (sqrtUpper - sqrtP)
	liq0 := token0.Amount.ToLegacyDec().Mul(sqrtP).Mul(sqrtUpper).Quo(sqrtUpper.Sub(sqrtP))
	// L1 = amount1 / (sqrtP - sqrtLower)
	liq1 := token1.Amount.ToLegacyDec().Quo(sqrtP.Sub(sqrtLower))

	return &ConcentratedPool{
		Id:               poolId,
		Address:          poolmanagertypes.NewPoolAddress(poolId),
		SpreadFactor:     spreadFactor,
		Token0:           token0.Denom,
		Token1:           token1.Denom,
		Reserves:         sdk.NewCoins(token0, token1),
		Liquidity:        math.LegacyMinDec(liq0, liq1),
		CurrentSqrtPrice: sqrtP,
		LowerSqrtPrice:   sqrtLower,
		UpperSqrtPrice:   sqrtUpper,
	}, nil
}

func (p *ConcentratedPool) GetId() uint64                                  { return p.Id }
func (p *ConcentratedPool) GetType() poolmanagertypes.PoolType             { return poolmanagertypes.Concentrated }
func (p *ConcentratedPool) GetAddress() sdk.AccAddress                     { return p.Address }
func (p *ConcentratedPool) GetSpreadFactor(context.Context) math.LegacyDec { return p.SpreadFactor }
func (p *ConcentratedPool) GetReserves() sdk.Coins                         { return p.Reserves }
func (p *ConcentratedPool) GetPoolDenoms() []string                        { return []string{p.Token0, p.Token1} }

// Validate checks the pool's static invariants.
func (p *ConcentratedPool) Validate() error {
	if err := validateBase(p.Id, p.Address, p.SpreadFactor, p.Reserves); err != nil {
		return err
	}
	if p.Token0 == p.Token1 || !p.Reserves.AmountOf(p.Token0).IsPositive() || !p.Reserves.AmountOf(p.Token1).IsPositive() {
		return ErrInvalidPool.Wrapf("reserves %s do not match tokens %s/%s", p.Reserves, p.Token0, p.Token1)
	}
	if p.Liquidity.IsNil() || !p.Liquidity.IsPositive() {
		return ErrInvalidPool.Wrap("liquidity must be positive")
	}
	if p.LowerSqrtPrice.IsNil() || p.UpperSqrtPrice.IsNil() || p.CurrentSqrtPrice.IsNil() ||
		!p.LowerSqrtPrice.IsPositive() ||
		p.CurrentSqrtPrice.LT(p.LowerSqrtPrice) || p.CurrentSqrtPrice.GT(p.UpperSqrtPrice) {
		return ErrPriceOutOfRange.Wrapf("sqrt price %s outside [%s, %s]", p.CurrentSqrtPrice, p.LowerSqrtPrice, p.UpperSqrtPrice)
	}
	return nil
}

func (p *ConcentratedPool) checkPair(denomIn, denomOut string) error {
	if (denomIn == p.Token0 && denomOut == p.Token1) || (denomIn == p.Token1 && denomOut == p.Token0) {
		return nil
	}
	return poolmanagertypes.ErrDenomNotInPool.Wrapf("pool %d trades %s/%s, got %s -> %s", p.Id, p.Token0, p.Token1, denomIn, denomOut)
}

// sqrtPriceAfterIn returns the sqrt price after tokenIn enters the pool.
func (p *ConcentratedPool) sqrtPriceAfterIn(tokenIn sdk.Coin) (math.LegacyDec, error) {
	amountIn := tokenIn.Amount.ToLegacyDec()
	var next math.LegacyDec
	if tokenIn.Denom == p.Token0 {
		// sqrtP' = L * sqrtP / (L + in * sqrtP)
		next = p.Liquidity.Mul(p.CurrentSqrtPrice).Quo(p.Liquidity.Add(amountIn.Mul(p.CurrentSqrtPrice)))
	} else {
		// sqrtP' = sqrtP + in / L
		next = p.CurrentSqrtPrice.Add(amountIn.Quo(p.Liquidity))
	}
	if next.LT(p.LowerSqrtPrice) || next.GT(p.UpperSqrtPrice) {
		return math.LegacyDec{}, ErrInsufficientLiquidity.Wrapf("swap of %s moves sqrt price to %s, outside [%s, %s]",
			tokenIn, next, p.LowerSqrtPrice, p.UpperSqrtPrice)
	}
	return next, nil
}

// CalcOutAmtGivenIn walks the price within the position's range.
func (p *ConcentratedPool) CalcOutAmtGivenIn(tokenIn sdk.Coin, tokenOutDenom string) (math.LegacyDec, error) {
	if err := p.checkPair(tokenIn.Denom, tokenOutDenom); err != nil {
		return math.LegacyDec{}, err
	}
	next, err := p.sqrtPriceAfterIn(tokenIn)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if tokenIn.Denom == p.Token0 {
		// out1 = L * (sqrtP - sqrtP')
		return p.Liquidity.Mul(p.CurrentSqrtPrice.Sub(next)), nil
	}
	// out0 = L * (sqrtP' - sqrtP) / (sqrtP * sqrtP')
	return p.Liquidity.Mul(next.Sub(p.CurrentSqrtPrice)).Quo(p.CurrentSqrtPrice.Mul(next)), nil
}

// CalcInAmtGivenOut inverts CalcOutAmtGivenIn.
func (p *ConcentratedPool) CalcInAmtGivenOut(tokenOut sdk.Coin, tokenInDenom string) (math.LegacyDec, error) {
	if err := p.checkPair(tokenInDenom, tokenOut.Denom); err != nil {
		return math.LegacyDec{}, err
	}
	amountOut := tokenOut.Amount.ToLegacyDec()
	if tokenOut.Denom == p.Token1 {
		// token0 in: sqrtP' = sqrtP - out / L
		next := p.CurrentSqrtPrice.Sub(amountOut.Quo(p.Liquidity))
		if next.LT(p.LowerSqrtPrice) || !next.IsPositive() {
			return math.LegacyDec{}, ErrInsufficientLiquidity.Wrapf("token out %s moves sqrt price below %s", tokenOut, p.LowerSqrtPrice)
		}
		// in0 = L * (sqrtP - sqrtP') / (sqrtP * sqrtP')
		return p.Liquidity.Mul(p.CurrentSqrtPrice.Sub(next)).Quo(p.CurrentSqrtPrice.Mul(next)), nil
	}

	// token1 in: sqrtP' = L * sqrtP / (L - out * sqrtP)
	denom := p.Liquidity.Sub(amountOut.Mul(p.CurrentSqrtPrice))
	if !denom.IsPositive() {
		return math.LegacyDec{}, ErrInsufficientLiquidity.Wrapf("token out %s exceeds available liquidity", tokenOut)
	}
	next := p.Liquidity.Mul(p.CurrentSqrtPrice).Quo(denom)
	if next.GT(p.UpperSqrtPrice) {
		return math.LegacyDec{}, ErrInsufficientLiquidity.Wrapf("token out %s moves sqrt price above %s", tokenOut, p.UpperSqrtPrice)
	}
	// in1 = L * (sqrtP' - sqrtP)
	return p.Liquidity.Mul(next.Sub(p.CurrentSqrtPrice)), nil
}

// ApplySwap moves the reserves and the current price. The new price is
// derived from the amount actually deposited.
func (p *ConcentratedPool) ApplySwap(tokenIn, tokenOut sdk.Coin) error {
	if err := p.checkPair(tokenIn.Denom, tokenOut.Denom); err != nil {
		return err
	}
	next, err := p.sqrtPriceAfterIn(tokenIn)
	if err != nil {
		return err
	}
	reserves, err := applyReserves(p.Reserves, tokenIn, tokenOut)
	if err != nil {
		return err
	}
	p.Reserves = reserves
	p.CurrentSqrtPrice = next
	return nil
}

// Copy returns an independent copy of the pool.
func (p *ConcentratedPool) Copy() poolmanagertypes.CFMMPool {
	cp := *p
	cp.Reserves = copyCoins(p.Reserves)
	return &cp
}

// SpotPrice returns the current price of Token0 in Token1.
func (p *ConcentratedPool) SpotPrice() math.LegacyDec {
	return p.CurrentSqrtPrice.Mul(p.CurrentSqrtPrice)
}
