package main

import (
	"context"
	"testing"

	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/core"
	"github.com/ftchann/stableswap-simulator/lib/logging"
	"github.com/ftchann/stableswap-simulator/lib/params"
	"github.com/ftchann/stableswap-simulator/lib/stablemath"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
)

func BenchmarkGetD(b *testing.B) {
	x, y := ui.NewInt(11_000_000*cons.UnitScale), ui.NewInt(9_000_000*cons.UnitScale)
	for i := 0; i < b.N; i++ {
		if _, err := stablemath.GetD(x, y, 25, cons.DefaultConvergenceThreshold); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSwap(b *testing.B) {
	c := core.New("deployer", logging.Nop())
	p, _, err := c.CreatePool("deployer", core.CreatePoolRequest{
		TokenX:  "USDA",
		TokenY:  "USDB",
		AmountX: ui.NewInt(10_000_000 * cons.UnitScale),
		AmountY: ui.NewInt(10_000_000 * cons.UnitScale),
		Params:  params.Default(),
	})
	if err != nil {
		b.Fatal(err)
	}
	amount := ui.NewInt(1_000 * cons.UnitScale)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		asset := types.AssetX
		if i%2 == 1 {
			asset = types.AssetY
		}
		if _, err := p.Swap(asset, amount, cons.Zero); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReplay(b *testing.B) {
	cfg := scenarioConfig(b, "proportional")
	txs := getTransactionsTest(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := runSimulation(context.Background(), cfg, txs, logging.Nop(), prometheus.NewRegistry()); err != nil {
			b.Fatal(err)
		}
	}
}
