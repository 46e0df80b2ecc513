package metrics

import (
	"github.com/ftchann/stableswap-simulator/lib/prices"
	"github.com/ftchann/stableswap-simulator/lib/swapmath"
	"github.com/ftchann/stableswap-simulator/lib/types"

	"cosmossdk.io/math"
	ui "github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "stableswap"
	subsystem = "pool"

	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Metrics holds the Prometheus collectors of a simulation run.
type Metrics struct {
	// Swap metrics
	SwapsTotal        *prometheus.CounterVec
	SwapVolume        *prometheus.CounterVec
	SwapFeesCollected *prometheus.CounterVec
	SwapPriceImpact   prometheus.Histogram

	// Liquidity metrics
	LiquidityOps  *prometheus.CounterVec
	PoolReserves  *prometheus.GaugeVec
	LPTokenSupply *prometheus.GaugeVec

	Rebalances *prometheus.CounterVec
}

// New registers every collector on reg. Passing a fresh registry per run
// keeps runs independent.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SwapsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "swaps_total",
				Help:      "Total number of swaps attempted",
			},
			[]string{"pool_id", "asset_in", "status"},
		),
		SwapVolume: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "swap_volume_total",
				Help:      "Total swap input volume in minor units",
			},
			[]string{"pool_id", "asset"},
		),
		SwapFeesCollected: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "swap_fees_collected_total",
				Help:      "Swap fees collected in minor units of the output asset",
			},
			[]string{"pool_id", "asset", "kind"},
		),
		SwapPriceImpact: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "swap_price_impact_percent",
				Help:      "Price impact of executed swaps against the midpoint, fees included",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
		),
		LiquidityOps: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "liquidity_operations_total",
				Help:      "Liquidity deposits and withdrawals attempted",
			},
			[]string{"pool_id", "op", "status"},
		),
		PoolReserves: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "reserves",
				Help:      "Current pool reserves in minor units",
			},
			[]string{"pool_id", "asset"},
		),
		LPTokenSupply: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "lp_supply",
				Help:      "Total LP supply including locked shares",
			},
			[]string{"pool_id"},
		),
		Rebalances: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rebalances_total",
				Help:      "Strategy rebalances attempted",
			},
			[]string{"strategy", "status"},
		),
	}
}

func status(err error) string {
	if err != nil {
		return StatusFailed
	}
	return StatusSuccess
}

// Float converts a minor unit amount for a collector.
func Float(v *ui.Int) float64 {
	return prices.Dec(v).MustFloat64()
}

// ObserveSwap counts a swap attempt. res and impact are ignored on failure.
func (m *Metrics) ObserveSwap(poolID string, assetIn types.Asset, res *swapmath.SwapResult, impact math.LegacyDec, err error) {
	m.SwapsTotal.WithLabelValues(poolID, assetIn.String(), status(err)).Inc()
	if err != nil || res == nil {
		return
	}
	out := res.AssetOut().String()
	m.SwapVolume.WithLabelValues(poolID, assetIn.String()).Add(Float(res.AmountIn))
	m.SwapFeesCollected.WithLabelValues(poolID, out, "protocol").Add(Float(res.ProtocolFee))
	m.SwapFeesCollected.WithLabelValues(poolID, out, "provider").Add(Float(res.ProviderFee))
	if !impact.IsNil() {
		m.SwapPriceImpact.Observe(impact.MulInt64(100).MustFloat64())
	}
}

func (m *Metrics) ObserveLiquidity(poolID, op string, err error) {
	m.LiquidityOps.WithLabelValues(poolID, op, status(err)).Inc()
}

func (m *Metrics) ObserveRebalance(strategy string, err error) {
	m.Rebalances.WithLabelValues(strategy, status(err)).Inc()
}

// SetPoolState publishes reserves and LP supply.
func (m *Metrics) SetPoolState(poolID string, reserves types.Reserves, lpSupply *ui.Int) {
	m.PoolReserves.WithLabelValues(poolID, types.AssetX.String()).Set(Float(reserves.X))
	m.PoolReserves.WithLabelValues(poolID, types.AssetY.String()).Set(Float(reserves.Y))
	m.LPTokenSupply.WithLabelValues(poolID).Set(Float(lpSupply))
}
