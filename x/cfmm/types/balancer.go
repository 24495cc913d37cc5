package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	poolmanagertypes "github.com/paw-chain/pawswap/x/poolmanager/types"
)

var _ poolmanagertypes.CFMMPool = &BalancerPool{}

// BalancerPool is a two-asset, equal-weight constant product pool.
type BalancerPool struct {
	Id           uint64         `json:"id"`
	Address      sdk.AccAddress `json:"address"`
	SpreadFactor math.LegacyDec `json:"spread_factor"`
	Reserves     sdk.Coins      `json:"reserves"`
}

// NewBalancerPool creates a pool holding reserves.
func NewBalancerPool(poolId uint64, spreadFactor math.LegacyDec, reserves sdk.Coins) *BalancerPool {
	return &BalancerPool{
		Id:           poolId,
		Address:      poolmanagertypes.NewPoolAddress(poolId),
		SpreadFactor: spreadFactor,
		Reserves:     reserves,
	}
}

func (p *BalancerPool) GetId() uint64                                  { return p.Id }
func (p *BalancerPool) GetType() poolmanagertypes.PoolType             { return poolmanagertypes.Balancer }
func (p *BalancerPool) GetAddress() sdk.AccAddress                     { return p.Address }
func (p *BalancerPool) GetSpreadFactor(context.Context) math.LegacyDec { return p.SpreadFactor }
func (p *BalancerPool) GetReserves() sdk.Coins                         { return p.Reserves }
func (p *BalancerPool) GetPoolDenoms() []string                        { return p.Reserves.Denoms() }

// Validate checks the pool's static invariants.
func (p *BalancerPool) Validate() error {
	return validateBase(p.Id, p.Address, p.SpreadFactor, p.Reserves)
}

// CalcOutAmtGivenIn returns reserveOut * in / (reserveIn + in).
func (p *BalancerPool) CalcOutAmtGivenIn(tokenIn sdk.Coin, tokenOutDenom string) (math.LegacyDec, error) {
	reserveIn, reserveOut, err := twoAssetReserves(p.Reserves, tokenIn.Denom, tokenOutDenom)
	if err != nil {
		return math.LegacyDec{}, err
	}
	amountIn := tokenIn.Amount.ToLegacyDec()
	return reserveOut.ToLegacyDec().Mul(amountIn).Quo(reserveIn.ToLegacyDec().Add(amountIn)), nil
}

// CalcInAmtGivenOut returns reserveIn * out / (reserveOut - out).
func (p *BalancerPool) CalcInAmtGivenOut(tokenOut sdk.Coin, tokenInDenom string) (math.LegacyDec, error) {
	reserveIn, reserveOut, err := twoAssetReserves(p.Reserves, tokenInDenom, tokenOut.Denom)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if tokenOut.Amount.GTE(reserveOut) {
		return math.LegacyDec{}, ErrInsufficientLiquidity.Wrapf("token out %s exceeds reserve %s", tokenOut, reserveOut)
	}
	amountOut := tokenOut.Amount.ToLegacyDec()
	return reserveIn.ToLegacyDec().Mul(amountOut).Quo(reserveOut.ToLegacyDec().Sub(amountOut)), nil
}

// ApplySwap moves the reserves.
func (p *BalancerPool) ApplySwap(tokenIn, tokenOut sdk.Coin) error {
	reserves, err := applyReserves(p.Reserves, tokenIn, tokenOut)
	if err != nil {
		return err
	}
	p.Reserves = reserves
	return nil
}

// Copy returns an independent copy of the pool.
func (p *BalancerPool) Copy() poolmanagertypes.CFMMPool {
	cp := *p
	cp.Reserves = copyCoins(p.Reserves)
	return &cp
}
