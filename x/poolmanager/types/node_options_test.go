package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type mapAppOptions map[string]any

func (m mapAppOptions) Get(key string) any { return m[key] }

func TestNodeConfigFromAppOptions(t *testing.T) {
	tests := []struct {
		name string
		opts mapAppOptions
		want NodeConfig
	}{
		{"no section", nil, DefaultNodeConfig()},
		{"metrics off", mapAppOptions{FlagMetricsEnabled: "false"}, NodeConfig{MetricsEnabled: false, EstimateGasLimit: DefaultEstimateGasLimit}},
		{"gas limit", mapAppOptions{FlagEstimateGasLimit: 500_000}, NodeConfig{MetricsEnabled: true, EstimateGasLimit: 500_000}},
		{"zero gas limit keeps default", mapAppOptions{FlagEstimateGasLimit: "0"}, DefaultNodeConfig()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NodeConfigFromAppOptions(tt.opts))
		})
	}
}
