package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	poolmanagertypes "github.com/paw-chain/pawswap/x/poolmanager/types"
)

var _ poolmanagertypes.CFMMPool = &StableswapPool{}

const (
	// solverIterations bounds the bisection in solveCFMM. Each iteration
	// halves the search interval.
	solverIterations = 256
)

// solverTolerance is the width at which bisection stops.
var solverTolerance = math.LegacyNewDecWithPrec(1, 12)

// StableswapPool is a two-asset pool following the curve x*y*(x^2+y^2) = k
// over scaled reserves. ScalingFactors are aligned with the sorted Reserves.
type StableswapPool struct {
	Id             uint64         `json:"id"`
	Address        sdk.AccAddress `json:"address"`
	SpreadFactor   math.LegacyDec `json:"spread_factor"`
	Reserves       sdk.Coins      `json:"reserves"`
	ScalingFactors []uint64       `json:"scaling_factors"`
}

// NewStableswapPool creates a stableswap pool. A nil scalingFactors means
// every asset is scaled by 1.
func NewStableswapPool(poolId uint64, spreadFactor math.LegacyDec, reserves sdk.Coins, scalingFactors []uint64) *StableswapPool {
	if scalingFactors == nil {
		scalingFactors = make([]uint64, len(reserves))
		for i := range scalingFactors {
			scalingFactors[i] = 1
		}
	}
	return &StableswapPool{
		Id:             poolId,
		Address:        poolmanagertypes.NewPoolAddress(poolId),
		SpreadFactor:   spreadFactor,
		Reserves:       reserves,
		ScalingFactors: scalingFactors,
	}
}

func (p *StableswapPool) GetId() uint64                                  { return p.Id }
func (p *StableswapPool) GetType() poolmanagertypes.PoolType             { return poolmanagertypes.Stableswap }
func (p *StableswapPool) GetAddress() sdk.AccAddress                     { return p.Address }
func (p *StableswapPool) GetSpreadFactor(context.Context) math.LegacyDec { return p.SpreadFactor }
func (p *StableswapPool) GetReserves() sdk.Coins                         { return p.Reserves }
func (p *StableswapPool) GetPoolDenoms() []string                        { return p.Reserves.Denoms() }

// Validate checks the pool's static invariants.
func (p *StableswapPool) Validate() error {
	if err := validateBase(p.Id, p.Address, p.SpreadFactor, p.Reserves); err != nil {
		return err
	}
	if len(p.ScalingFactors) != len(p.Reserves) {
		return ErrInvalidScalingFactor.Wrapf("got %d scaling factors for %d assets", len(p.ScalingFactors), len(p.Reserves))
	}
	for _, sf := range p.ScalingFactors {
		if sf == 0 {
			return ErrInvalidScalingFactor.Wrap("scaling factor cannot be zero")
		}
	}
	return nil
}

func (p *StableswapPool) scalingFactor(denom string) math.LegacyDec {
	for i, coin := range p.Reserves {
		if coin.Denom == denom {
			return math.LegacyNewDecFromInt(math.NewIntFromUint64(p.ScalingFactors[i]))
		}
	}
	return math.LegacyOneDec()
}

func (p *StableswapPool) scaledReserves(denomIn, denomOut string) (math.LegacyDec, math.LegacyDec, error) {
	reserveIn, reserveOut, err := twoAssetReserves(p.Reserves, denomIn, denomOut)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	return reserveIn.ToLegacyDec().Quo(p.scalingFactor(denomIn)),
		reserveOut.ToLegacyDec().Quo(p.scalingFactor(denomOut)), nil
}

// CalcOutAmtGivenIn solves the curve for the output reserve after adding
// tokenIn. The result is rounded in the pool's favor.
func (p *StableswapPool) CalcOutAmtGivenIn(tokenIn sdk.Coin, tokenOutDenom string) (math.LegacyDec, error) {
	x, y, err := p.scaledReserves(tokenIn.Denom, tokenOutDenom)
	if err != nil {
		return math.LegacyDec{}, err
	}
	k := cfmmConstant(x, y)
	xNew := x.Add(tokenIn.Amount.ToLegacyDec().Quo(p.scalingFactor(tokenIn.Denom)))
	yNew := solveCFMM(xNew, k, y)

	out := y.Sub(yNew)
	if !out.IsPositive() {
		return math.LegacyZeroDec(), nil
	}
	return out.Mul(p.scalingFactor(tokenOutDenom)), nil
}

// CalcInAmtGivenOut solves the curve for the input reserve after removing
// tokenOut. The result is rounded in the pool's favor.
func (p *StableswapPool) CalcInAmtGivenOut(tokenOut sdk.Coin, tokenInDenom string) (math.LegacyDec, error) {
	x, y, err := p.scaledReserves(tokenInDenom, tokenOut.Denom)
	if err != nil {
		return math.LegacyDec{}, err
	}
	outScaled := tokenOut.Amount.ToLegacyDec().Quo(p.scalingFactor(tokenOut.Denom))
	if outScaled.GTE(y) {
		return math.LegacyDec{}, ErrInsufficientLiquidity.Wrapf("token out %s exceeds reserve", tokenOut)
	}
	k := cfmmConstant(x, y)
	xNew := solveCFMM(y.Sub(outScaled), k, x)
	return xNew.Sub(x).Mul(p.scalingFactor(tokenInDenom)), nil
}

// ApplySwap moves the reserves.
func (p *StableswapPool) ApplySwap(tokenIn, tokenOut sdk.Coin) error {
	reserves, err := applyReserves(p.Reserves, tokenIn, tokenOut)
	if err != nil {
		return err
	}
	p.Reserves = reserves
	return nil
}

// Copy returns an independent copy of the pool.
func (p *StableswapPool) Copy() poolmanagertypes.CFMMPool {
	cp := *p
	cp.Reserves = copyCoins(p.Reserves)
	cp.ScalingFactors = append([]uint64(nil), p.ScalingFactors...)
	return &cp
}

// cfmmConstant evaluates x*y*(x^2+y^2).
func cfmmConstant(x, y math.LegacyDec) math.LegacyDec {
	return x.Mul(y).Mul(x.Mul(x).Add(y.Mul(y)))
}

// solveCFMM returns the smallest b, within solverTolerance, for which
// cfmmConstant(a, b) >= k. hint seeds the upper bound. The curve is
// increasing in b for positive a, so bisection converges.
func solveCFMM(a, k, hint math.LegacyDec) math.LegacyDec {
	lo := math.LegacyZeroDec()
	hi := hint
	if !hi.IsPositive() {
		hi = math.LegacyOneDec()
	}
	for cfmmConstant(a, hi).LT(k) {
		lo = hi
		hi = hi.MulInt64(2)
	}
	for i := 0; i < solverIterations && hi.Sub(lo).GT(solverTolerance); i++ {
		mid := lo.Add(hi).QuoInt64(2)
		if cfmmConstant(a, mid).GTE(k) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}
