package main

import (
	"context"

	"github.com/ftchann/stableswap-simulator/lib/config"
	"github.com/ftchann/stableswap-simulator/lib/core"
	"github.com/ftchann/stableswap-simulator/lib/executor"
	"github.com/ftchann/stableswap-simulator/lib/metrics"
	"github.com/ftchann/stableswap-simulator/lib/result"
	strat "github.com/ftchann/stableswap-simulator/lib/strategy"
	ent "github.com/ftchann/stableswap-simulator/lib/transaction"
	"github.com/ftchann/stableswap-simulator/lib/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// runSimulation creates the configured pool once and replays txs for every
// strategy, each against its own copy of it.
func runSimulation(ctx context.Context, cfg *config.Config, txs []ent.Transaction, log zerolog.Logger, reg prometheus.Registerer) (*result.Save, error) {
	if len(txs) == 0 {
		return nil, types.ErrInvalidTransaction.Wrap("nothing to replay")
	}
	deployer := types.Principal(cfg.Deployer)
	req, err := cfg.Pool.CreatePoolRequest()
	if err != nil {
		return nil, err
	}
	p, initial, err := core.New(deployer, log.With().Str("component", "core").Logger()).CreatePool(deployer, req)
	if err != nil {
		return nil, err
	}
	deposit, err := cfg.Simulation.Deposit()
	if err != nil {
		return nil, err
	}

	m := metrics.New(reg)
	startTime := txs[0].Timestamp + cfg.Simulation.StartOffset
	save := &result.Save{
		Pool:           p.ID().String(),
		UpdateInterval: cfg.Simulation.RebalanceInterval,
		StartAmountX:   deposit.X.Dec(),
		StartAmountY:   deposit.Y.Dec(),
		StartTime:      startTime,
		EndTime:        txs[len(txs)-1].Timestamp,
	}
	for _, name := range cfg.Simulation.Strategies {
		s, err := strat.New(name, deposit.X, deposit.Y, p)
		if err != nil {
			return nil, err
		}
		e := executor.CreateExecution(s, txs, executor.Config{
			StartTime:        startTime,
			UpdateInterval:   cfg.Simulation.RebalanceInterval,
			SnapshotInterval: cfg.Simulation.SnapshotInterval,
			ExternalLP:       initial.Minted,
			PriceWindow:      cfg.Simulation.PriceWindow,
			Logger:           log,
			Metrics:          m,
		})
		res, err := e.Run(ctx)
		if err != nil {
			return nil, err
		}
		save.Results = append(save.Results, *res)
	}
	return save, nil
}
