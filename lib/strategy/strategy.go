package strategy

import (
	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/liquidity_amounts"
	"github.com/ftchann/stableswap-simulator/lib/pool"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
)

// Strategy manages one LP's funds in a private copy of a pool. Every method
// returns the idle balances at the point the method describes.
type Strategy interface {
	Name() string
	Init() (amountX, amountY *ui.Int, err error)
	Rebalance() (amountX, amountY *ui.Int, err error)
	BurnAll() (amountX, amountY *ui.Int, err error)
	GetPool() *pool.Pool
	// GetAmounts includes what the strategy's LP would withdraw right now.
	GetAmounts() (amountX, amountY *ui.Int, err error)
}

const (
	NoProvision  = "none"
	Proportional = "proportional"
	SingleSided  = "single-sided"
)

// New builds a strategy by name. The pool is cloned.
func New(name string, amountX, amountY *ui.Int, p *pool.Pool) (Strategy, error) {
	switch name {
	case NoProvision:
		return NewNoProvisionStrategy(amountX, amountY, p), nil
	case Proportional:
		return NewProportionalStrategy(amountX, amountY, p), nil
	case SingleSided:
		return NewSingleSidedCycleStrategy(amountX, amountY, p), nil
	}
	return nil, types.ErrUnknownStrategy.Wrapf("%q", name)
}

// provision holds idle funds plus an LP balance in Pool.
type provision struct {
	AmountX *ui.Int
	AmountY *ui.Int
	LP      *ui.Int
	Pool    *pool.Pool
}

func newProvision(amountX, amountY *ui.Int, p *pool.Pool) provision {
	return provision{
		AmountX: amountX.Clone(),
		AmountY: amountY.Clone(),
		LP:      new(ui.Int),
		Pool:    p.Clone(),
	}
}

func (s *provision) GetPool() *pool.Pool {
	return s.Pool
}

func (s *provision) idle() (*ui.Int, *ui.Int) {
	return s.AmountX.Clone(), s.AmountY.Clone()
}

func (s *provision) GetAmounts() (amountX, amountY *ui.Int, err error) {
	amountX, amountY = s.idle()
	if s.LP.IsZero() {
		return amountX, amountY, nil
	}
	snap := s.Pool.Snapshot()
	res, err := liquidity_amounts.ComputeWithdraw(snap.Reserves, snap.TotalShares, s.LP)
	if err != nil {
		return nil, nil, err
	}
	amountX.Add(amountX, res.AmountX)
	amountY.Add(amountY, res.AmountY)
	return amountX, amountY, nil
}

// deposit moves x and y from the idle balances into the pool.
func (s *provision) deposit(x, y *ui.Int) error {
	if x.IsZero() && y.IsZero() {
		return nil
	}
	res, err := s.Pool.AddLiquidity(x, y, cons.Zero)
	if err != nil {
		return err
	}
	s.AmountX = new(ui.Int).Sub(s.AmountX, x)
	s.AmountY = new(ui.Int).Sub(s.AmountY, y)
	s.LP = new(ui.Int).Add(s.LP, res.Minted)
	return nil
}

// withdrawAll burns the whole LP balance proportionally.
func (s *provision) withdrawAll() error {
	if s.LP.IsZero() {
		return nil
	}
	res, err := s.Pool.WithdrawLiquidity(s.LP, cons.Zero, cons.Zero)
	if err != nil {
		return err
	}
	s.AmountX = new(ui.Int).Add(s.AmountX, res.AmountX)
	s.AmountY = new(ui.Int).Add(s.AmountY, res.AmountY)
	s.LP = new(ui.Int)
	return nil
}

func (s *provision) BurnAll() (amountX, amountY *ui.Int, err error) {
	if err := s.withdrawAll(); err != nil {
		return nil, nil, err
	}
	amountX, amountY = s.idle()
	return amountX, amountY, nil
}
