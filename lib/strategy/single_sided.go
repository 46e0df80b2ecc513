package strategy

import (
	"github.com/ftchann/stableswap-simulator/lib/pool"

	ui "github.com/holiman/uint256"
)

// SingleSidedCycleStrategy only ever deposits X. Any Y it holds is sold for X
// on an outside market at the pool midpoint before depositing.
type SingleSidedCycleStrategy struct {
	provision
}

func NewSingleSidedCycleStrategy(amountX, amountY *ui.Int, p *pool.Pool) *SingleSidedCycleStrategy {
	return &SingleSidedCycleStrategy{provision: newProvision(amountX, amountY, p)}
}

func (s *SingleSidedCycleStrategy) Name() string {
	return SingleSided
}

// convert swaps all idle Y into X at the midpoint, rounding down.
func (s *SingleSidedCycleStrategy) convert() error {
	if s.AmountY.IsZero() {
		return nil
	}
	x, err := s.Pool.Snapshot().Params.Midpoint.ToRateAdjusted(s.AmountY)
	if err != nil {
		return err
	}
	s.AmountX = new(ui.Int).Add(s.AmountX, x)
	s.AmountY = new(ui.Int)
	return nil
}

func (s *SingleSidedCycleStrategy) cycle() error {
	if err := s.convert(); err != nil {
		return err
	}
	return s.deposit(s.AmountX, new(ui.Int))
}

func (s *SingleSidedCycleStrategy) Init() (amountX, amountY *ui.Int, err error) {
	amountX, amountY = s.idle()
	if err := s.cycle(); err != nil {
		return nil, nil, err
	}
	return amountX, amountY, nil
}

func (s *SingleSidedCycleStrategy) Rebalance() (amountX, amountY *ui.Int, err error) {
	if err := s.withdrawAll(); err != nil {
		return nil, nil, err
	}
	amountX, amountY = s.idle()
	if err := s.cycle(); err != nil {
		return amountX, amountY, err
	}
	return amountX, amountY, nil
}
