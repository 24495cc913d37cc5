package types

import (
	"cosmossdk.io/errors"
)

// CFMM module sentinel errors
var (
	ErrInvalidPool           = errors.Register(ModuleName, 2, "invalid pool")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 3, "insufficient liquidity in pool")
	ErrInvalidScalingFactor  = errors.Register(ModuleName, 4, "invalid scaling factor")
	ErrPriceOutOfRange       = errors.Register(ModuleName, 5, "price outside of the liquidity range")
	ErrPoolTypeNotSupported  = errors.Register(ModuleName, 6, "pool type not supported by cfmm module")
	ErrPoolAlreadyExists     = errors.Register(ModuleName, 7, "pool already exists")
	ErrInvalidCreator        = errors.Register(ModuleName, 8, "invalid pool creator")
)
