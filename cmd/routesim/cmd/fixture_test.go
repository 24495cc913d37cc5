package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testFixture = `
params:
  default_taker_fee: "0.001"
accounts:
  - name: alice
    balances: 1000000uatom,1000000upaw
  - name: bob
    balances: 5000uatom
pools:
  - type: balancer
    spread_factor: "0.003"
    liquidity: 1000000uatom,1000000upaw
  - type: balancer
    spread_factor: "0.003"
    liquidity: 1000000uosmo,1000000upaw
swaps:
  - sender: alice
    token_in: 1000uatom
    pool_ids: [1, 2]
    denoms: [upaw, uosmo]
  - sender: bob
    token_in: 1000uatom
    pool_ids: [1]
    denoms: [upaw]
    min_out: "1000000"
`

func TestParseFixture(t *testing.T) {
	fixture, err := ParseFixture([]byte(testFixture))
	require.NoError(t, err)
	require.Len(t, fixture.Accounts, 2)
	require.Len(t, fixture.Pools, 2)
	require.Equal(t, []uint64{1, 2}, fixture.Swaps[0].PoolIds)
	require.Equal(t, "1000000", fixture.Swaps[1].MinOut)
	require.False(t, fixture.Oracle.Enabled)
}

func TestParseFixture_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		errText string
	}{
		{
			name:    "unknown field",
			yaml:    "pools:\n  - type: balancer\n    fee: \"0.1\"\n",
			errText: "decode fixture",
		},
		{
			name:    "missing account name",
			yaml:    "accounts:\n  - balances: 1uatom\n",
			errText: "name is required",
		},
		{
			name:    "duplicate account",
			yaml:    "accounts:\n  - name: a\n    balances: 1uatom\n  - name: a\n    balances: 1uatom\n",
			errText: "defined twice",
		},
		{
			name:    "bad balances",
			yaml:    "accounts:\n  - name: a\n    balances: lots\n",
			errText: "balances",
		},
		{
			name:    "unknown pool type",
			yaml:    "pools:\n  - type: orderbook\n    spread_factor: \"0.01\"\n",
			errText: "unknown pool type",
		},
		{
			name:    "bad spread factor",
			yaml:    "pools:\n  - type: balancer\n    spread_factor: high\n",
			errText: "spread factor",
		},
		{
			name:    "bad pair taker fee",
			yaml:    "pair_taker_fees:\n  - denom_a: uatom\n    denom_b: upaw\n    taker_fee: x\n",
			errText: "pair taker fee 0",
		},
		{
			name:    "swap from unknown sender",
			yaml:    "swaps:\n  - sender: carol\n    token_in: 1uatom\n",
			errText: "unknown sender",
		},
		{
			name:    "swap with mismatched route",
			yaml:    "accounts:\n  - name: a\n    balances: 1uatom\nswaps:\n  - sender: a\n    token_in: 1uatom\n    pool_ids: [1, 2]\n    denoms: [upaw]\n",
			errText: "2 pool ids for 1 denoms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixture([]byte(tt.yaml))
			require.ErrorContains(t, err, tt.errText)
		})
	}
}

func TestLoadFixture_MissingFile(t *testing.T) {
	_, err := LoadFixture(t.TempDir() + "/missing.yaml")
	require.ErrorContains(t, err, "read fixture")
}
