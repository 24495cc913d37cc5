package cmd

import (
	"io"
	"sort"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"gopkg.in/yaml.v2"

	"github.com/paw-chain/pawswap/x/poolmanager/keeper"
)

type hopReport struct {
	PoolId       uint64 `yaml:"pool_id"`
	TokenIn      string `yaml:"token_in"`
	TokenOut     string `yaml:"token_out"`
	SpreadFactor string `yaml:"spread_factor"`
	SpreadFee    string `yaml:"spread_fee"`
	TakerFee     string `yaml:"taker_fee"`
}

type routeReport struct {
	Sender    string      `yaml:"sender"`
	TokenIn   string      `yaml:"token_in,omitempty"`
	TokenOut  string      `yaml:"token_out,omitempty"`
	TakerFees string      `yaml:"taker_fees,omitempty"`
	Hops      []hopReport `yaml:"hops,omitempty"`
	Balances  string      `yaml:"balances"`
	Error     string      `yaml:"error,omitempty"`
}

type estimateReport struct {
	TokenIn  string `yaml:"token_in"`
	TokenOut string `yaml:"token_out"`
}

type poolReport struct {
	Id           uint64 `yaml:"id"`
	Type         string `yaml:"type"`
	Address      string `yaml:"address"`
	SpreadFactor string `yaml:"spread_factor"`
	Reserves     string `yaml:"reserves"`
}

type feeReport struct {
	Denom          string `yaml:"denom"`
	StakingRewards string `yaml:"staking_rewards"`
	CommunityPool  string `yaml:"community_pool"`
}

type stateReport struct {
	Pools          []poolReport `yaml:"pools"`
	TotalLiquidity string       `yaml:"total_liquidity"`
	TakerFees      []feeReport  `yaml:"taker_fees,omitempty"`
	CommunityPool  string       `yaml:"community_pool"`
}

type runReport struct {
	Swaps []routeReport `yaml:"swaps"`
	Final stateReport   `yaml:"final"`
}

func printYAML(w io.Writer, v any) error {
	bz, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(bz)
	return err
}

func newRouteReport(sim *Simulator, sender string, result keeper.RouteResult, routeErr error) routeReport {
	report := routeReport{Sender: sender}
	if addr, err := sim.Account(sender); err == nil {
		report.Balances = sim.Ledger.GetAllBalances(sim.Ctx, addr).String()
	}
	if routeErr != nil {
		report.Error = routeErr.Error()
		return report
	}

	report.TokenIn = result.TokenIn.String()
	report.TokenOut = result.TokenOut.String()
	report.TakerFees = result.TakerFees.String()
	for _, hop := range result.Hops {
		report.Hops = append(report.Hops, hopReport{
			PoolId:       hop.PoolId,
			TokenIn:      hop.TokenIn.String(),
			TokenOut:     hop.TokenOut.String(),
			SpreadFactor: hop.SpreadFactor.String(),
			SpreadFee:    hop.SpreadFee.String(),
			TakerFee:     hop.TakerFee.String(),
		})
	}
	return report
}

func newStateReport(sim *Simulator) (stateReport, error) {
	pools, err := sim.Keeper.AllPools(sim.Ctx)
	if err != nil {
		return stateReport{}, err
	}
	liquidity, err := sim.Keeper.GetTotalLiquidity(sim.Ctx)
	if err != nil {
		return stateReport{}, err
	}

	report := stateReport{
		TotalLiquidity: liquidity.String(),
		CommunityPool:  sim.Ledger.GetCommunityPool(sim.Ctx).String(),
	}
	denoms := map[string]bool{}
	for _, pool := range pools {
		report.Pools = append(report.Pools, poolReport{
			Id:           pool.GetId(),
			Type:         pool.GetType().String(),
			Address:      pool.GetAddress().String(),
			SpreadFactor: pool.GetSpreadFactor(sim.Ctx).String(),
			Reserves:     pool.GetReserves().String(),
		})
		for _, denom := range pool.GetPoolDenoms() {
			denoms[denom] = true
		}
	}

	sorted := make([]string, 0, len(denoms))
	for denom := range denoms {
		sorted = append(sorted, denom)
	}
	sort.Strings(sorted)
	for _, denom := range sorted {
		staking, err := sim.Keeper.GetTakerFeeToStakingRewards(sim.Ctx, denom)
		if err != nil {
			return stateReport{}, err
		}
		community, err := sim.Keeper.GetTakerFeeToCommunityPool(sim.Ctx, denom)
		if err != nil {
			return stateReport{}, err
		}
		if staking.IsZero() && community.IsZero() {
			continue
		}
		report.TakerFees = append(report.TakerFees, feeReport{
			Denom:          denom,
			StakingRewards: sdk.NewCoin(denom, staking).String(),
			CommunityPool:  sdk.NewCoin(denom, community).String(),
		})
	}
	return report, nil
}
