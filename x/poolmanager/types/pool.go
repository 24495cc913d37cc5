package types

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PoolType tags the pool implementation family. The set is closed.
type PoolType int32

const (
	Balancer PoolType = iota
	Stableswap
	Concentrated
	CosmWasm
)

var poolTypeNames = map[PoolType]string{
	Balancer:     "balancer",
	Stableswap:   "stableswap",
	Concentrated: "concentrated",
	CosmWasm:     "cosmwasm",
}

// String implements fmt.Stringer.
func (t PoolType) String() string {
	if name, ok := poolTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("pool_type(%d)", int32(t))
}

// Validate returns an error for values outside the enumeration.
func (t PoolType) Validate() error {
	if _, ok := poolTypeNames[t]; !ok {
		return ErrInvalidPool.Wrapf("unknown pool type %d", int32(t))
	}
	return nil
}

// ParsePoolType maps a pool type name back to its tag.
func ParsePoolType(name string) (PoolType, error) {
	for t, n := range poolTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, ErrInvalidPool.Wrapf("unknown pool type %q", name)
}

// PoolI is the view every pool exposes to the router.
type PoolI interface {
	GetId() uint64
	GetType() PoolType
	GetAddress() sdk.AccAddress
	GetSpreadFactor(ctx context.Context) math.LegacyDec
	GetPoolDenoms() []string
	GetReserves() sdk.Coins
	Validate() error
}

// CFMMPool is a pool whose pricing follows a constant function. The Calc
// methods return the fee-free amounts; spread factors and taker fees are
// applied by the swap engine. ApplySwap only moves reserves.
type CFMMPool interface {
	PoolI

	CalcOutAmtGivenIn(tokenIn sdk.Coin, tokenOutDenom string) (math.LegacyDec, error)
	CalcInAmtGivenOut(tokenOut sdk.Coin, tokenInDenom string) (math.LegacyDec, error)
	ApplySwap(tokenIn, tokenOut sdk.Coin) error
	Copy() CFMMPool
}

// PoolModuleI is implemented by every module that owns one or more pool types.
type PoolModuleI interface {
	PoolTypes() []PoolType

	GetPool(ctx context.Context, poolId uint64) (PoolI, error)
	GetPools(ctx context.Context) ([]PoolI, error)
	SetPool(ctx context.Context, pool PoolI) error
	InitializePool(ctx context.Context, pool PoolI, creator sdk.AccAddress) error

	// AsCFMM converts a pool owned by this module into its CFMM view.
	AsCFMM(pool PoolI) (CFMMPool, error)
}

// CreatePoolMsg is implemented by the create messages of each pool type.
type CreatePoolMsg interface {
	GetPoolType() PoolType
	PoolCreator() sdk.AccAddress
	InitialLiquidity() sdk.Coins
	ValidateBasic() error
	CreatePool(ctx context.Context, poolId uint64) (PoolI, error)
}

// ContainsDenom reports whether denom is one of the pool's assets.
func ContainsDenom(pool PoolI, denom string) bool {
	for _, d := range pool.GetPoolDenoms() {
		if d == denom {
			return true
		}
	}
	return false
}
