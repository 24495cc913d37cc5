package keeper

import (
	"math/big"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PoolManagerMetrics holds all Prometheus metrics for the pool manager module
type PoolManagerMetrics struct {
	// Swap metrics
	SwapsTotal      *prometheus.CounterVec
	SwapVolume      *prometheus.CounterVec
	SpreadFees      *prometheus.CounterVec
	RoutesTotal     *prometheus.CounterVec
	RouteHops       prometheus.Histogram
	PanicsRecovered *prometheus.CounterVec

	// Taker fee metrics
	TakerFeesCollected   *prometheus.CounterVec
	TakerFeesDistributed *prometheus.CounterVec
	OracleQueries        *prometheus.CounterVec

	// Pool metrics
	PoolsCreated *prometheus.CounterVec
	HookFailures *prometheus.CounterVec
}

var (
	poolManagerMetricsOnce sync.Once
	poolManagerMetrics     *PoolManagerMetrics
)

// NewPoolManagerMetrics creates and registers pool manager metrics (singleton pattern)
func NewPoolManagerMetrics() *PoolManagerMetrics {
	poolManagerMetricsOnce.Do(func() {
		poolManagerMetrics = &PoolManagerMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "poolmanager",
					Name:      "swaps_total",
					Help:      "Total number of settled single-pool swaps",
				},
				[]string{"pool_type", "token_in", "token_out"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "poolmanager",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"denom"},
			),
			SpreadFees: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "poolmanager",
					Name:      "spread_fees_total",
					Help:      "Spread fees retained by pools, in output denom base units",
				},
				[]string{"denom"},
			),
			RoutesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "poolmanager",
					Name:      "routes_total",
					Help:      "Total number of routed swaps by kind and outcome",
				},
				[]string{"kind", "status"},
			),
			RouteHops: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "paw",
					Subsystem: "poolmanager",
					Name:      "route_hops",
					Help:      "Number of hops per routed swap",
					Buckets:   []float64{1, 2, 3, 4, 5, 8},
				},
			),
			PanicsRecovered: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "poolmanager",
					Name:      "panics_recovered_total",
					Help:      "Panics converted into errors at the route boundary",
				},
				[]string{"handler"},
			),
			TakerFeesCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "poolmanager",
					Name:      "taker_fees_collected_total",
					Help:      "Taker fees collected in base units",
				},
				[]string{"denom", "category"},
			),
			TakerFeesDistributed: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "poolmanager",
					Name:      "taker_fees_distributed_total",
					Help:      "Taker fees distributed in base units",
				},
				[]string{"denom", "destination"},
			),
			OracleQueries: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "poolmanager",
					Name:      "fee_oracle_queries_total",
					Help:      "Fee distribution resolutions by source",
				},
				[]string{"source"},
			),
			PoolsCreated: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "poolmanager",
					Name:      "pools_created_total",
					Help:      "Total number of pools created",
				},
				[]string{"pool_type"},
			),
			HookFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "poolmanager",
					Name:      "hook_failures_total",
					Help:      "Post-operation hook failures that were swallowed",
				},
				[]string{"hook"},
			),
		}
	})
	return poolManagerMetrics
}

// metrics may be disabled per node; every helper tolerates a nil receiver.

func (m *PoolManagerMetrics) recordSwap(poolType, denomIn, denomOut string, amountIn, spreadFee float64) {
	if m == nil {
		return
	}
	m.SwapsTotal.WithLabelValues(poolType, denomIn, denomOut).Inc()
	m.SwapVolume.WithLabelValues(denomIn).Add(amountIn)
	m.SpreadFees.WithLabelValues(denomOut).Add(spreadFee)
}

func (m *PoolManagerMetrics) recordRoute(kind, status string, hops int) {
	if m == nil {
		return
	}
	m.RoutesTotal.WithLabelValues(kind, status).Inc()
	if hops > 0 {
		m.RouteHops.Observe(float64(hops))
	}
}

func (m *PoolManagerMetrics) recordPanic(handler string) {
	if m == nil {
		return
	}
	m.PanicsRecovered.WithLabelValues(handler).Inc()
}

func (m *PoolManagerMetrics) recordTakerFee(denom, category string, amount float64) {
	if m == nil {
		return
	}
	m.TakerFeesCollected.WithLabelValues(denom, category).Add(amount)
}

func (m *PoolManagerMetrics) recordDistribution(denom, destination string, amount float64) {
	if m == nil {
		return
	}
	m.TakerFeesDistributed.WithLabelValues(denom, destination).Add(amount)
}

func (m *PoolManagerMetrics) recordOracle(source string) {
	if m == nil {
		return
	}
	m.OracleQueries.WithLabelValues(source).Inc()
}

func (m *PoolManagerMetrics) recordPoolCreated(poolType string) {
	if m == nil {
		return
	}
	m.PoolsCreated.WithLabelValues(poolType).Inc()
}

func (m *PoolManagerMetrics) recordHookFailure(hook string) {
	if m == nil {
		return
	}
	m.HookFailures.WithLabelValues(hook).Inc()
}

func toFloat(amount math.Int) float64 {
	if amount.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	return f
}
