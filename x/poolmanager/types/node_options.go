package types

import (
	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	"github.com/spf13/cast"
)

// app.toml keys read by the pool manager. None of them affect consensus.
const (
	FlagMetricsEnabled   = "poolmanager.metrics-enabled"
	FlagEstimateGasLimit = "poolmanager.estimate-gas-limit"
)

const DefaultEstimateGasLimit uint64 = 3_000_000

// NodeConfig carries node-local options.
type NodeConfig struct {
	MetricsEnabled bool
	// EstimateGasLimit bounds the gas a single estimate query may consume.
	EstimateGasLimit uint64
}

// DefaultNodeConfig returns the options used when app.toml has no pool manager section.
func DefaultNodeConfig() NodeConfig {
	return NodeConfig{MetricsEnabled: true, EstimateGasLimit: DefaultEstimateGasLimit}
}

// NodeConfigFromAppOptions reads the pool manager section of app.toml.
func NodeConfigFromAppOptions(appOpts servertypes.AppOptions) NodeConfig {
	cfg := DefaultNodeConfig()
	if appOpts == nil {
		return cfg
	}
	if v := appOpts.Get(FlagMetricsEnabled); v != nil {
		cfg.MetricsEnabled = cast.ToBool(v)
	}
	if v := cast.ToUint64(appOpts.Get(FlagEstimateGasLimit)); v > 0 {
		cfg.EstimateGasLimit = v
	}
	return cfg
}
