package types

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	poolmanagertypes "github.com/paw-chain/pawswap/x/poolmanager/types"
)

var (
	_ poolmanagertypes.CreatePoolMsg = MsgCreateBalancerPool{}
	_ poolmanagertypes.CreatePoolMsg = MsgCreateStableswapPool{}
	_ poolmanagertypes.CreatePoolMsg = MsgCreateConcentratedPool{}
)

// MsgCreateBalancerPool creates a constant product pool.
type MsgCreateBalancerPool struct {
	Sender       string         `json:"sender" yaml:"sender"`
	SpreadFactor math.LegacyDec `json:"spread_factor" yaml:"spread_factor"`
	Liquidity    sdk.Coins      `json:"liquidity" yaml:"liquidity"`
}

// MsgCreateStableswapPool creates a stableswap pool.
type MsgCreateStableswapPool struct {
	Sender         string         `json:"sender" yaml:"sender"`
	SpreadFactor   math.LegacyDec `json:"spread_factor" yaml:"spread_factor"`
	Liquidity      sdk.Coins      `json:"liquidity" yaml:"liquidity"`
	ScalingFactors []uint64       `json:"scaling_factors,omitempty" yaml:"scaling_factors"`
}

// MsgCreateConcentratedPool creates a single-position concentrated pool.
// Prices are quoted as Token1 per Token0.
type MsgCreateConcentratedPool struct {
	Sender       string         `json:"sender" yaml:"sender"`
	SpreadFactor math.LegacyDec `json:"spread_factor" yaml:"spread_factor"`
	Token0       sdk.Coin       `json:"token0" yaml:"token0"`
	Token1       sdk.Coin       `json:"token1" yaml:"token1"`
	CurrentPrice math.LegacyDec `json:"current_price" yaml:"current_price"`
	LowerPrice   math.LegacyDec `json:"lower_price" yaml:"lower_price"`
	UpperPrice   math.LegacyDec `json:"upper_price" yaml:"upper_price"`
}

func validateCreateBasic(sender string, spreadFactor math.LegacyDec, liquidity sdk.Coins) error {
	if _, err := sdk.AccAddressFromBech32(sender); err != nil {
		return sdkerrors.Wrapf(ErrInvalidCreator, "invalid sender address: %s", err)
	}
	if spreadFactor.IsNil() || spreadFactor.IsNegative() || spreadFactor.GTE(math.LegacyOneDec()) {
		return sdkerrors.Wrapf(poolmanagertypes.ErrInvalidSpreadFactor, "spread factor %s must be in [0,1)", spreadFactor)
	}
	if !liquidity.IsValid() || len(liquidity) != 2 {
		return sdkerrors.Wrapf(ErrInvalidPool, "pool needs exactly two positive assets, got %s", liquidity)
	}
	return nil
}

func creator(sender string) sdk.AccAddress {
	addr, err := sdk.AccAddressFromBech32(sender)
	if err != nil {
		return nil
	}
	return addr
}

func (msg MsgCreateBalancerPool) GetPoolType() poolmanagertypes.PoolType {
	return poolmanagertypes.Balancer
}
func (msg MsgCreateBalancerPool) PoolCreator() sdk.AccAddress { return creator(msg.Sender) }
func (msg MsgCreateBalancerPool) InitialLiquidity() sdk.Coins { return msg.Liquidity }

// ValidateBasic performs stateless checks
func (msg MsgCreateBalancerPool) ValidateBasic() error {
	return validateCreateBasic(msg.Sender, msg.SpreadFactor, msg.Liquidity)
}

// CreatePool builds the pool with the allocated id.
func (msg MsgCreateBalancerPool) CreatePool(_ context.Context, poolId uint64) (poolmanagertypes.PoolI, error) {
	return NewBalancerPool(poolId, msg.SpreadFactor, copyCoins(msg.Liquidity)), nil
}

func (msg MsgCreateStableswapPool) GetPoolType() poolmanagertypes.PoolType {
	return poolmanagertypes.Stableswap
}
func (msg MsgCreateStableswapPool) PoolCreator() sdk.AccAddress { return creator(msg.Sender) }
func (msg MsgCreateStableswapPool) InitialLiquidity() sdk.Coins { return msg.Liquidity }

// ValidateBasic performs stateless checks
func (msg MsgCreateStableswapPool) ValidateBasic() error {
	if err := validateCreateBasic(msg.Sender, msg.SpreadFactor, msg.Liquidity); err != nil {
		return err
	}
	if msg.ScalingFactors == nil {
		return nil
	}
	if len(msg.ScalingFactors) != len(msg.Liquidity) {
		return sdkerrors.Wrapf(ErrInvalidScalingFactor, "got %d scaling factors for %d assets", len(msg.ScalingFactors), len(msg.Liquidity))
	}
	for _, sf := range msg.ScalingFactors {
		if sf == 0 {
			return sdkerrors.Wrap(ErrInvalidScalingFactor, "scaling factor cannot be zero")
		}
	}
	return nil
}

// CreatePool builds the pool with the allocated id.
func (msg MsgCreateStableswapPool) CreatePool(_ context.Context, poolId uint64) (poolmanagertypes.PoolI, error) {
	var scaling []uint64
	if msg.ScalingFactors != nil {
		scaling = append([]uint64(nil), msg.ScalingFactors...)
	}
	return NewStableswapPool(poolId, msg.SpreadFactor, copyCoins(msg.Liquidity), scaling), nil
}

func (msg MsgCreateConcentratedPool) GetPoolType() poolmanagertypes.PoolType {
	return poolmanagertypes.Concentrated
}
func (msg MsgCreateConcentratedPool) PoolCreator() sdk.AccAddress { return creator(msg.Sender) }

// InitialLiquidity returns both deposits.
func (msg MsgCreateConcentratedPool) InitialLiquidity() sdk.Coins {
	if !msg.Token0.IsValid() || !msg.Token1.IsValid() || msg.Token0.Denom == msg.Token1.Denom {
		return nil
	}
	return sdk.NewCoins(msg.Token0, msg.Token1)
}

// ValidateBasic performs stateless checks
func (msg MsgCreateConcentratedPool) ValidateBasic() error {
	if msg.Token0.Denom == msg.Token1.Denom {
		return sdkerrors.Wrapf(ErrInvalidPool, "token0 and token1 must differ, both are %s", msg.Token0.Denom)
	}
	if err := validateCreateBasic(msg.Sender, msg.SpreadFactor, msg.InitialLiquidity()); err != nil {
		return err
	}
	for _, price := range []math.LegacyDec{msg.CurrentPrice, msg.LowerPrice, msg.UpperPrice} {
		if price.IsNil() || !price.IsPositive() {
			return sdkerrors.Wrap(ErrPriceOutOfRange, "prices must be positive")
		}
	}
	if !msg.LowerPrice.LT(msg.CurrentPrice) || !msg.CurrentPrice.LT(msg.UpperPrice) {
		return sdkerrors.Wrapf(ErrPriceOutOfRange, "need lower (%s) < current (%s) < upper (%s)", msg.LowerPrice, msg.CurrentPrice, msg.UpperPrice)
	}
	return nil
}

// CreatePool builds the pool with the allocated id.
func (msg MsgCreateConcentratedPool) CreatePool(_ context.Context, poolId uint64) (poolmanagertypes.PoolI, error) {
	return NewConcentratedPool(poolId, msg.SpreadFactor, msg.Token0, msg.Token1, msg.CurrentPrice, msg.LowerPrice, msg.UpperPrice)
}
