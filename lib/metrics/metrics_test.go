package metrics

import (
	"errors"
	"testing"

	"github.com/ftchann/stableswap-simulator/lib/swapmath"
	"github.com/ftchann/stableswap-simulator/lib/types"

	"cosmossdk.io/math"
	ui "github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveSwap(t *testing.T) {
	m := New(prometheus.NewRegistry())
	res := &swapmath.SwapResult{
		AssetIn:     types.AssetY,
		AmountIn:    ui.NewInt(1_000_000),
		GrossOut:    ui.NewInt(1_097_939),
		AmountOut:   ui.NewInt(1_097_279),
		ProtocolFee: ui.NewInt(330),
		ProviderFee: ui.NewInt(330),
	}
	m.ObserveSwap("p", types.AssetY, res, math.LegacyMustNewDecFromStr("0.0025"), nil)
	m.ObserveSwap("p", types.AssetY, nil, math.LegacyDec{}, errors.New("slippage"))

	require.Equal(t, 1.0, testutil.ToFloat64(m.SwapsTotal.WithLabelValues("p", "y", StatusSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SwapsTotal.WithLabelValues("p", "y", StatusFailed)))
	require.Equal(t, 1_000_000.0, testutil.ToFloat64(m.SwapVolume.WithLabelValues("p", "y")))
	require.Equal(t, 330.0, testutil.ToFloat64(m.SwapFeesCollected.WithLabelValues("p", "x", "protocol")))
	require.Equal(t, 1, testutil.CollectAndCount(m.SwapPriceImpact))
}

func TestSetPoolState(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.SetPoolState("p", types.NewReserves(ui.NewInt(10), ui.NewInt(20)), ui.NewInt(30))
	m.ObserveLiquidity("p", "add-liquidity", nil)
	m.ObserveRebalance("proportional", errors.New("paused"))

	require.Equal(t, 10.0, testutil.ToFloat64(m.PoolReserves.WithLabelValues("p", "x")))
	require.Equal(t, 20.0, testutil.ToFloat64(m.PoolReserves.WithLabelValues("p", "y")))
	require.Equal(t, 30.0, testutil.ToFloat64(m.LPTokenSupply.WithLabelValues("p")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.LiquidityOps.WithLabelValues("p", "add-liquidity", StatusSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Rebalances.WithLabelValues("proportional", StatusFailed)))
}

// Two runs in one process must not collide.
func TestIndependentRegistries(t *testing.T) {
	require.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
