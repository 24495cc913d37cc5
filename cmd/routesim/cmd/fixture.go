package cmd

import (
	"fmt"
	"os"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"gopkg.in/yaml.v2"

	poolmanagertypes "github.com/paw-chain/pawswap/x/poolmanager/types"
)

// Fixture describes the starting state of a simulation.
type Fixture struct {
	Params        FixtureParams    `yaml:"params"`
	Oracle        FixtureOracle    `yaml:"oracle"`
	Accounts      []FixtureAccount `yaml:"accounts"`
	Pools         []FixturePool    `yaml:"pools"`
	PairTakerFees []FixturePairFee `yaml:"pair_taker_fees"`
	Swaps         []FixtureSwap    `yaml:"swaps"`
}

// FixtureParams overrides pool manager params. Empty fields keep defaults.
type FixtureParams struct {
	DefaultTakerFee       string   `yaml:"default_taker_fee"`
	AuthorizedQuoteDenoms []string `yaml:"authorized_quote_denoms"`
	PoolCreationFee       string   `yaml:"pool_creation_fee"`
	MaxHops               uint32   `yaml:"max_hops"`
	OracleQueryGasLimit   uint64   `yaml:"oracle_query_gas_limit"`
	ReducedFeeWhitelist   []string `yaml:"reduced_fee_whitelist"`
}

// FixtureDistribution is a staking/community split.
type FixtureDistribution struct {
	StakingRewards string `yaml:"staking_rewards"`
	CommunityPool  string `yaml:"community_pool"`
}

// FixtureOracle configures the fee distribution contract.
type FixtureOracle struct {
	Enabled    bool                 `yaml:"enabled"`
	Primary    *FixtureDistribution `yaml:"primary"`
	NonPrimary *FixtureDistribution `yaml:"non_primary"`

	// QueryGas overrides the gas each contract query consumes.
	QueryGas uint64 `yaml:"query_gas"`
}

// FixtureAccount is a named account and its starting balances.
type FixtureAccount struct {
	Name     string `yaml:"name"`
	Balances string `yaml:"balances"`
}

// FixturePool is a pool created at startup, in order. Pool ids start at 1.
type FixturePool struct {
	Type         string `yaml:"type"`
	SpreadFactor string `yaml:"spread_factor"`
	Liquidity    string `yaml:"liquidity"`

	ScalingFactors []uint64 `yaml:"scaling_factors,omitempty"`

	Token0       string `yaml:"token0,omitempty"`
	Token1       string `yaml:"token1,omitempty"`
	CurrentPrice string `yaml:"current_price,omitempty"`
	LowerPrice   string `yaml:"lower_price,omitempty"`
	UpperPrice   string `yaml:"upper_price,omitempty"`
}

// FixturePairFee overrides the taker fee of one denom pair.
type FixturePairFee struct {
	DenomA   string `yaml:"denom_a"`
	DenomB   string `yaml:"denom_b"`
	TakerFee string `yaml:"taker_fee"`
}

// FixtureSwap is one scripted swap executed by the run command.
type FixtureSwap struct {
	Sender  string   `yaml:"sender"`
	TokenIn string   `yaml:"token_in"`
	PoolIds []uint64 `yaml:"pool_ids"`
	Denoms  []string `yaml:"denoms"`
	MinOut  string   `yaml:"min_out"`
}

// LoadFixture reads and validates a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(bz)
}

// ParseFixture decodes and validates a YAML fixture.
func ParseFixture(bz []byte) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.UnmarshalStrict(bz, &fixture); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := fixture.Validate(); err != nil {
		return nil, err
	}
	return &fixture, nil
}

// Validate checks names, amounts and pool types without building any state.
func (f Fixture) Validate() error {
	names := make(map[string]bool, len(f.Accounts))
	for i, acc := range f.Accounts {
		if acc.Name == "" {
			return fmt.Errorf("account %d: name is required", i)
		}
		if names[acc.Name] {
			return fmt.Errorf("account %q defined twice", acc.Name)
		}
		names[acc.Name] = true
		if _, err := sdk.ParseCoinsNormalized(acc.Balances); err != nil {
			return fmt.Errorf("account %q balances: %w", acc.Name, err)
		}
	}

	for i, pool := range f.Pools {
		if _, err := poolmanagertypes.ParsePoolType(pool.Type); err != nil {
			return fmt.Errorf("pool %d: %w", i+1, err)
		}
		if _, err := math.LegacyNewDecFromStr(pool.SpreadFactor); err != nil {
			return fmt.Errorf("pool %d spread factor: %w", i+1, err)
		}
	}

	for i, fee := range f.PairTakerFees {
		if _, err := math.LegacyNewDecFromStr(fee.TakerFee); err != nil {
			return fmt.Errorf("pair taker fee %d: %w", i, err)
		}
	}

	for i, swap := range f.Swaps {
		if !names[swap.Sender] {
			return fmt.Errorf("swap %d: unknown sender %q", i, swap.Sender)
		}
		if len(swap.PoolIds) != len(swap.Denoms) {
			return fmt.Errorf("swap %d: %d pool ids for %d denoms", i, len(swap.PoolIds), len(swap.Denoms))
		}
		if _, err := sdk.ParseCoinNormalized(swap.TokenIn); err != nil {
			return fmt.Errorf("swap %d token in: %w", i, err)
		}
	}
	return nil
}

func (d *FixtureDistribution) parse() (poolmanagertypes.TakerFeeDistribution, error) {
	staking, err := math.LegacyNewDecFromStr(d.StakingRewards)
	if err != nil {
		return poolmanagertypes.TakerFeeDistribution{}, fmt.Errorf("staking rewards: %w", err)
	}
	community, err := math.LegacyNewDecFromStr(d.CommunityPool)
	if err != nil {
		return poolmanagertypes.TakerFeeDistribution{}, fmt.Errorf("community pool: %w", err)
	}
	dist := poolmanagertypes.NewTakerFeeDistribution(staking, community)
	return dist, dist.Validate()
}
