package executor

import (
	"context"
	"math"

	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/metrics"
	"github.com/ftchann/stableswap-simulator/lib/midpoint"
	"github.com/ftchann/stableswap-simulator/lib/pool"
	"github.com/ftchann/stableswap-simulator/lib/prices"
	"github.com/ftchann/stableswap-simulator/lib/result"
	strat "github.com/ftchann/stableswap-simulator/lib/strategy"
	ent "github.com/ftchann/stableswap-simulator/lib/transaction"
	"github.com/ftchann/stableswap-simulator/lib/types"

	sdkmath "cosmossdk.io/math"
	ui "github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const rebalanceType = "rebalance"

type Config struct {
	StartTime        int
	UpdateInterval   int
	SnapshotInterval int
	// ExternalLP is the LP held by everyone except the strategy. Replayed
	// withdrawals can burn at most this much.
	ExternalLP *ui.Int
	// PriceWindow is the number of snapshot prices volatility is taken over.
	PriceWindow int
	Logger      zerolog.Logger
	Metrics     *metrics.Metrics
}

type Execution struct {
	Strategy     strat.Strategy
	Transactions []ent.Transaction

	StartTime        int
	UpdateInterval   int
	SnapshotInterval int

	Outcomes  []result.Outcome
	Snapshots []result.Snapshot

	external *ui.Int
	prices   *prices.Prices
	log      zerolog.Logger
	metrics  *metrics.Metrics
	poolID   string
}

func CreateExecution(strategy strat.Strategy, transactions []ent.Transaction, cfg Config) *Execution {
	external := new(ui.Int)
	if cfg.ExternalLP != nil {
		external = cfg.ExternalLP.Clone()
	}
	m := cfg.Metrics
	if m == nil {
		m = metrics.New(prometheus.NewRegistry())
	}
	poolID := strategy.GetPool().ID().String()
	return &Execution{
		Strategy:         strategy,
		Transactions:     transactions,
		StartTime:        cfg.StartTime,
		UpdateInterval:   cfg.UpdateInterval,
		SnapshotInterval: cfg.SnapshotInterval,
		Outcomes:         make([]result.Outcome, 0, len(transactions)),
		external:         external,
		prices:           prices.NewPrices(cfg.PriceWindow),
		log:              cfg.Logger.With().Str("strategy", strategy.Name()).Str("pool", poolID).Logger(),
		metrics:          m,
		poolID:           poolID,
	}
}

// Run replays every transaction against the strategy's pool. Failed
// transactions are recorded and skipped. Only a cancelled context or a
// strategy that cannot start or unwind stops the run.
func (e *Execution) Run(ctx context.Context) (*result.RunResult, error) {
	strategy := e.Strategy
	p := strategy.GetPool()
	m := p.Snapshot().Params.Midpoint

	started := false
	nextUpdate := math.MaxInt
	nextSnapshot := math.MaxInt
	var startValue *ui.Int
	lastTimestamp := e.StartTime

	for _, trans := range e.Transactions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lastTimestamp = trans.Timestamp

		if !started && trans.Timestamp >= e.StartTime {
			amountX, amountY, err := strategy.Init()
			if err != nil {
				return nil, err
			}
			if startValue, err = prices.ValueInX(m, types.Reserves{X: amountX, Y: amountY}); err != nil {
				return nil, err
			}
			e.snapshot(trans.Timestamp, m)
			nextUpdate = addInterval(trans.Timestamp, e.UpdateInterval)
			nextSnapshot = addInterval(trans.Timestamp, e.SnapshotInterval)
			started = true
			e.log.Info().Int("timestamp", trans.Timestamp).Str("value_x", startValue.Dec()).Msg("strategy started")
		}

		if trans.Timestamp >= nextSnapshot {
			e.snapshot(trans.Timestamp, m)
			nextSnapshot = addInterval(nextSnapshot, e.SnapshotInterval)
		}

		if trans.Timestamp >= nextUpdate {
			e.rebalance(trans.Timestamp)
			nextUpdate = addInterval(nextUpdate, e.UpdateInterval)
		}

		e.Outcomes = append(e.Outcomes, e.apply(trans, m))
	}

	if !started {
		return nil, types.ErrInvalidTransaction.Wrapf("no transaction at or after start time %d", e.StartTime)
	}
	amountX, amountY, err := strategy.BurnAll()
	if err != nil {
		return nil, err
	}
	endValue, err := prices.ValueInX(m, types.Reserves{X: amountX, Y: amountY})
	if err != nil {
		return nil, err
	}
	e.snapshot(lastTimestamp, m)

	failed := 0
	for _, o := range e.Outcomes {
		if o.Status == metrics.StatusFailed {
			failed++
		}
	}
	volatility, err := e.prices.Volatility()
	if err != nil {
		return nil, err
	}
	ret := sdkmath.LegacyZeroDec()
	if !startValue.IsZero() {
		ret = prices.Dec(endValue).Quo(prices.Dec(startValue)).Sub(sdkmath.LegacyOneDec())
	}

	e.log.Info().
		Str("value_x", endValue.Dec()).
		Str("return", ret.String()).
		Int("transactions", len(e.Transactions)).
		Int("failed", failed).
		Msg("strategy finished")

	return &result.RunResult{
		Strategy:   strategy.Name(),
		StartValue: startValue.Dec(),
		EndValue:   endValue.Dec(),
		Return:     ret.String(),
		Volatility: volatility.String(),
		Failed:     failed,
		Outcomes:   e.Outcomes,
		Snapshots:  e.Snapshots,
	}, nil
}

func addInterval(t, interval int) int {
	if interval <= 0 {
		return math.MaxInt
	}
	return t + interval
}

func (e *Execution) rebalance(timestamp int) {
	_, _, err := e.Strategy.Rebalance()
	e.metrics.ObserveRebalance(e.Strategy.Name(), err)
	outcome := result.Outcome{Type: rebalanceType, Timestamp: timestamp, Status: metrics.StatusSuccess}
	if err != nil {
		outcome.Status = metrics.StatusFailed
		outcome.Error = err.Error()
		e.log.Warn().Err(err).Int("timestamp", timestamp).Msg("rebalance failed")
	}
	e.Outcomes = append(e.Outcomes, outcome)
}

// snapshot values the strategy and samples the marginal price of 1 UNIT Y.
func (e *Execution) snapshot(timestamp int, m midpoint.Midpoint) {
	p := e.Strategy.GetPool()
	snap := p.Snapshot()
	e.metrics.SetPoolState(e.poolID, snap.Reserves, snap.TotalShares)

	s := result.Snapshot{Timestamp: timestamp}
	amountX, amountY, err := e.Strategy.GetAmounts()
	if err != nil {
		e.log.Warn().Err(err).Int("timestamp", timestamp).Msg("cannot value strategy")
	} else {
		s.AmountX, s.AmountY = amountX.Dec(), amountY.Dec()
		if value, err := prices.ValueInX(m, types.Reserves{X: amountX, Y: amountY}); err == nil {
			s.ValueX = value.Dec()
		}
	}
	if out, err := p.GetDx(cons.Unit); err == nil {
		if price, err := prices.ExecutionPrice(cons.Unit, out); err == nil {
			s.Price = price.String()
			e.prices.Add(price)
		}
	}
	e.Snapshots = append(e.Snapshots, s)
}

func (e *Execution) apply(trans ent.Transaction, m midpoint.Midpoint) result.Outcome {
	p := e.Strategy.GetPool()
	outcome := result.Outcome{ID: trans.ID, Type: string(trans.Type), Timestamp: trans.Timestamp}

	var err error
	switch trans.Type {
	case ent.SwapXForY, ent.SwapYForX:
		assetIn := types.AssetX
		if trans.Type == ent.SwapYForX {
			assetIn = types.AssetY
		}
		var x, y *ui.Int
		if x, y, err = e.swap(p, m, assetIn, trans); err == nil {
			outcome.AmountX, outcome.AmountY = x.Dec(), y.Dec()
		}
	case ent.AddLiquidity:
		mint, mintErr := p.AddLiquidity(trans.AmountX, trans.AmountY, trans.Limit)
		e.metrics.ObserveLiquidity(e.poolID, string(trans.Type), mintErr)
		if err = mintErr; err == nil {
			e.external.Add(e.external, mint.Minted)
			outcome.AmountX, outcome.AmountY, outcome.LP = trans.AmountX.Dec(), trans.AmountY.Dec(), mint.Minted.Dec()
		}
	case ent.WithdrawLiquidity:
		if trans.Amount.Gt(e.external) {
			err = types.ErrInsufficientWithdrawal.Wrapf("burning %s, others hold %s", trans.Amount.Dec(), e.external.Dec())
			break
		}
		w, wErr := p.WithdrawLiquidity(trans.Amount, trans.AmountX, trans.AmountY)
		e.metrics.ObserveLiquidity(e.poolID, string(trans.Type), wErr)
		if err = wErr; err == nil {
			e.external.Sub(e.external, w.Burned)
			outcome.AmountX, outcome.AmountY, outcome.LP = w.AmountX.Dec(), w.AmountY.Dec(), w.Burned.Dec()
		}
	case ent.WithdrawImbalancedLiquidity:
		limit := trans.Limit
		if limit.Gt(e.external) {
			limit = e.external
		}
		w, wErr := p.WithdrawImbalancedLiquidity(trans.AmountX, trans.AmountY, limit)
		e.metrics.ObserveLiquidity(e.poolID, string(trans.Type), wErr)
		if err = wErr; err == nil {
			e.external.Sub(e.external, w.Burned)
			outcome.AmountX, outcome.AmountY, outcome.LP = w.AmountX.Dec(), w.AmountY.Dec(), w.Burned.Dec()
		}
	default:
		err = types.ErrInvalidTransaction.Wrapf("%s: unknown type %q", trans.ID, trans.Type)
	}

	if err != nil {
		outcome.Status = metrics.StatusFailed
		outcome.Error = err.Error()
		e.log.Debug().Err(err).Str("id", trans.ID).Str("type", string(trans.Type)).Msg("transaction failed")
		return outcome
	}
	outcome.Status = metrics.StatusSuccess
	return outcome
}

// swap returns the X and Y that changed hands, whichever way they moved.
func (e *Execution) swap(p *pool.Pool, m midpoint.Midpoint, assetIn types.Asset, trans ent.Transaction) (x, y *ui.Int, err error) {
	res, err := p.Swap(assetIn, trans.Amount, trans.Limit)
	if err != nil {
		e.metrics.ObserveSwap(e.poolID, assetIn, nil, sdkmath.LegacyDec{}, err)
		return nil, nil, err
	}
	impact, err := prices.PriceImpact(m, assetIn, res.AmountIn, res.AmountOut)
	if err != nil {
		impact = sdkmath.LegacyDec{}
	}
	e.metrics.ObserveSwap(e.poolID, assetIn, res, impact, nil)
	if assetIn == types.AssetX {
		return res.AmountIn, res.AmountOut, nil
	}
	return res.AmountOut, res.AmountIn, nil
}
