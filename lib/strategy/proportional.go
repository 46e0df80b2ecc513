package strategy

import (
	"github.com/ftchann/stableswap-simulator/lib/pool"

	ui "github.com/holiman/uint256"
)

// ProportionalStrategy deposits everything it holds and on every rebalance
// withdraws and deposits it all again.
type ProportionalStrategy struct {
	provision
}

func NewProportionalStrategy(amountX, amountY *ui.Int, p *pool.Pool) *ProportionalStrategy {
	return &ProportionalStrategy{provision: newProvision(amountX, amountY, p)}
}

func (s *ProportionalStrategy) Name() string {
	return Proportional
}

func (s *ProportionalStrategy) Init() (amountX, amountY *ui.Int, err error) {
	amountX, amountY = s.idle()
	if err := s.deposit(s.AmountX, s.AmountY); err != nil {
		return nil, nil, err
	}
	return amountX, amountY, nil
}

// Rebalance returns the balances between withdrawal and deposit. A failed
// deposit leaves them idle.
func (s *ProportionalStrategy) Rebalance() (amountX, amountY *ui.Int, err error) {
	if err := s.withdrawAll(); err != nil {
		return nil, nil, err
	}
	amountX, amountY = s.idle()
	if err := s.deposit(s.AmountX, s.AmountY); err != nil {
		return amountX, amountY, err
	}
	return amountX, amountY, nil
}
