package shares

import (
	"github.com/ftchann/stableswap-simulator/lib/fullmath"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
)

// Supply tracks the LP token supply of a pool. Burnt shares are counted in
// Total and can never be withdrawn.
type Supply struct {
	Total        *ui.Int
	Burnt        *ui.Int
	MinimumTotal *ui.Int
}

func NewSupply(minimumTotal *ui.Int) *Supply {
	return &Supply{
		Total:        ui.NewInt(0),
		Burnt:        ui.NewInt(0),
		MinimumTotal: minimumTotal.Clone(),
	}
}

func (s *Supply) Clone() *Supply {
	return &Supply{
		Total:        s.Total.Clone(),
		Burnt:        s.Burnt.Clone(),
		MinimumTotal: s.MinimumTotal.Clone(),
	}
}

// Lock mints amount into the permanently burnt balance.
func (s *Supply) Lock(amount *ui.Int) error {
	total, err := fullmath.Add(s.Total, amount)
	if err != nil {
		return err
	}
	burnt, err := fullmath.Add(s.Burnt, amount)
	if err != nil {
		return err
	}
	s.Total, s.Burnt = total, burnt
	return nil
}

func (s *Supply) Mint(amount *ui.Int) error {
	total, err := fullmath.Add(s.Total, amount)
	if err != nil {
		return err
	}
	s.Total = total
	return nil
}

// Burn fails without changing the supply when it would leave fewer than
// MinimumTotal shares outstanding.
func (s *Supply) Burn(amount *ui.Int) error {
	remaining, underflow := new(ui.Int).SubOverflow(s.Total, amount)
	if underflow || remaining.Lt(s.MinimumTotal) {
		return types.ErrBelowMinimumShares.Wrapf("burning %s of %s shares, minimum %s", amount.Dec(), s.Total.Dec(), s.MinimumTotal.Dec())
	}
	if amount.Gt(s.Circulating()) {
		return types.ErrInsufficientWithdrawal.Wrapf("burning %s of %s circulating shares", amount.Dec(), s.Circulating().Dec())
	}
	s.Total = remaining
	return nil
}

// Circulating is the supply held by providers.
func (s *Supply) Circulating() *ui.Int {
	if s.Burnt.Gt(s.Total) {
		return new(ui.Int)
	}
	return new(ui.Int).Sub(s.Total, s.Burnt)
}
