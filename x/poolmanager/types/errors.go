package types

import (
	"cosmossdk.io/errors"
)

// Pool manager sentinel errors
var (
	ErrPoolNotFound                  = errors.Register(ModuleName, 2, "pool not found")
	ErrUnroutablePoolType            = errors.Register(ModuleName, 3, "no pool module bound for pool type")
	ErrRouteAlreadyExists            = errors.Register(ModuleName, 4, "pool route already exists")
	ErrSameDenomSwap                 = errors.Register(ModuleName, 5, "cannot swap a denom for itself")
	ErrSpreadFactorTooLow            = errors.Register(ModuleName, 6, "spread factor below half of the pool spread factor")
	ErrNonPositiveOutput             = errors.Register(ModuleName, 7, "swap amount must be positive")
	ErrBelowMinimumOutput            = errors.Register(ModuleName, 8, "token out amount below minimum")
	ErrAboveMaximumInput             = errors.Register(ModuleName, 9, "token in amount above maximum")
	ErrInvalidRoute                  = errors.Register(ModuleName, 10, "invalid swap route")
	ErrOracleUnavailable             = errors.Register(ModuleName, 11, "fee distribution oracle unavailable")
	ErrDistributionInvariantViolated = errors.Register(ModuleName, 12, "taker fee distribution shares must sum to one")
	ErrTransferFailed                = errors.Register(ModuleName, 13, "coin transfer failed")
	ErrInternalPanic                 = errors.Register(ModuleName, 14, "route execution failed")
	ErrInvalidParams                 = errors.Register(ModuleName, 15, "invalid params")
	ErrUnauthorized                  = errors.Register(ModuleName, 16, "unauthorized")
	ErrInvalidAmount                 = errors.Register(ModuleName, 17, "invalid amount")
	ErrInvalidAddress                = errors.Register(ModuleName, 18, "invalid address")
	ErrInvalidSpreadFactor           = errors.Register(ModuleName, 19, "invalid spread factor")
	ErrDenomNotInPool                = errors.Register(ModuleName, 20, "denom does not exist in pool")
	ErrUnauthorizedQuoteDenom        = errors.Register(ModuleName, 21, "pool has no authorized quote denom")
	ErrInvalidPool                   = errors.Register(ModuleName, 22, "invalid pool")
	ErrInvalidTakerFee               = errors.Register(ModuleName, 23, "invalid taker fee")
)
