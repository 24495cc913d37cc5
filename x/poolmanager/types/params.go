package types

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	DefaultMaxHops             uint32 = 5
	DefaultOracleQueryGasLimit uint64 = 100_000
	DefaultQuoteDenom                 = "upaw"
)

// TakerFeeParams groups the governance-owned taker fee configuration.
type TakerFeeParams struct {
	DefaultTakerFee        math.LegacyDec       `json:"default_taker_fee"`
	PrimaryDistribution    TakerFeeDistribution `json:"primary_distribution"`
	NonPrimaryDistribution TakerFeeDistribution `json:"non_primary_distribution"`
	AdminAddresses         []string             `json:"admin_addresses"`
	ReducedFeeWhitelist    []string             `json:"reduced_fee_whitelist"`
	AuthorizedQuoteDenoms  []string             `json:"authorized_quote_denoms"`
}

// Params defines the parameters of the pool manager module.
type Params struct {
	PoolCreationFee         sdk.Coins      `json:"pool_creation_fee"`
	TakerFeeParams          TakerFeeParams `json:"taker_fee_params"`
	FeeDistributionContract string         `json:"fee_distribution_contract"`
	OracleQueryGasLimit     uint64         `json:"oracle_query_gas_limit"`
	MaxHops                 uint32         `json:"max_hops"`
}

// DefaultParams returns a default set of parameters
func DefaultParams() Params {
	return Params{
		PoolCreationFee: sdk.NewCoins(sdk.NewInt64Coin(DefaultQuoteDenom, 1_000_000)),
		TakerFeeParams: TakerFeeParams{
			DefaultTakerFee:        math.LegacyNewDecWithPrec(1, 3), // 0.1%
			PrimaryDistribution:    NewTakerFeeDistribution(math.LegacyOneDec(), math.LegacyZeroDec()),
			NonPrimaryDistribution: NewTakerFeeDistribution(math.LegacyNewDecWithPrec(67, 2), math.LegacyNewDecWithPrec(33, 2)),
			AdminAddresses:         []string{},
			ReducedFeeWhitelist:    []string{},
			AuthorizedQuoteDenoms:  []string{DefaultQuoteDenom},
		},
		FeeDistributionContract: "",
		OracleQueryGasLimit:     DefaultOracleQueryGasLimit,
		MaxHops:                 DefaultMaxHops,
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if !p.PoolCreationFee.IsValid() {
		return ErrInvalidParams.Wrapf("invalid pool creation fee %s", p.PoolCreationFee)
	}
	if err := p.TakerFeeParams.Validate(); err != nil {
		return err
	}
	if p.FeeDistributionContract != "" {
		if _, err := sdk.AccAddressFromBech32(p.FeeDistributionContract); err != nil {
			return ErrInvalidParams.Wrapf("fee distribution contract: %s", err)
		}
	}
	if p.OracleQueryGasLimit == 0 {
		return ErrInvalidParams.Wrap("oracle query gas limit must be positive")
	}
	if p.MaxHops == 0 {
		return ErrInvalidParams.Wrap("max hops must be positive")
	}
	return nil
}

// Validate checks the taker fee rate, both distributions and the address lists.
func (p TakerFeeParams) Validate() error {
	if p.DefaultTakerFee.IsNil() || p.DefaultTakerFee.IsNegative() || p.DefaultTakerFee.GT(math.LegacyOneDec()) {
		return ErrInvalidParams.Wrapf("default taker fee must be in [0,1], got %s", p.DefaultTakerFee)
	}
	if err := p.PrimaryDistribution.Validate(); err != nil {
		return ErrInvalidParams.Wrapf("primary distribution: %s", err)
	}
	if err := p.NonPrimaryDistribution.Validate(); err != nil {
		return ErrInvalidParams.Wrapf("non-primary distribution: %s", err)
	}
	if err := validateAddresses("admin", p.AdminAddresses); err != nil {
		return err
	}
	if err := validateAddresses("reduced fee whitelist", p.ReducedFeeWhitelist); err != nil {
		return err
	}
	if len(p.AuthorizedQuoteDenoms) == 0 {
		return ErrInvalidParams.Wrap("authorized quote denoms cannot be empty")
	}
	for _, denom := range p.AuthorizedQuoteDenoms {
		if err := sdk.ValidateDenom(denom); err != nil {
			return ErrInvalidParams.Wrapf("authorized quote denom: %s", err)
		}
	}
	return nil
}

// IsAdmin reports whether addr may set pair taker fees.
func (p TakerFeeParams) IsAdmin(addr string) bool {
	return containsString(p.AdminAddresses, addr)
}

// IsReducedFee reports whether addr is exempt from taker fees.
func (p TakerFeeParams) IsReducedFee(addr string) bool {
	return containsString(p.ReducedFeeWhitelist, addr)
}

// IsAuthorizedQuoteDenom reports whether denom may quote a concentrated pool.
func (p TakerFeeParams) IsAuthorizedQuoteDenom(denom string) bool {
	return containsString(p.AuthorizedQuoteDenoms, denom)
}

func validateAddresses(field string, addrs []string) error {
	seen := make(map[string]struct{}, len(addrs))
	for _, addr := range addrs {
		if _, err := sdk.AccAddressFromBech32(addr); err != nil {
			return ErrInvalidParams.Wrapf("%s address %q: %s", field, addr, err)
		}
		if _, dup := seen[addr]; dup {
			return ErrInvalidParams.Wrapf("duplicate %s address %s", field, addr)
		}
		seen[addr] = struct{}{}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (p Params) String() string {
	return fmt.Sprintf("taker_fee=%s primary=%s non_primary=%s quote_denoms=[%s] contract=%q max_hops=%d",
		p.TakerFeeParams.DefaultTakerFee,
		p.TakerFeeParams.PrimaryDistribution,
		p.TakerFeeParams.NonPrimaryDistribution,
		strings.Join(p.TakerFeeParams.AuthorizedQuoteDenoms, ","),
		p.FeeDistributionContract,
		p.MaxHops,
	)
}
