package pool

import (
	"github.com/ftchann/stableswap-simulator/lib/liquidity_amounts"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
)

// AddLiquidity deposits any mix of the two assets, including one sided.
func (p *Pool) AddLiquidity(amountX, amountY, minLp *ui.Int) (*liquidity_amounts.MintResult, error) {
	var res *liquidity_amounts.MintResult
	err := p.mutate(func(s *state) error {
		if err := requireActive(s); err != nil {
			return err
		}
		var err error
		res, err = liquidity_amounts.ComputeMint(s.reserves, s.supply.Total, s.params, amountX, amountY)
		if err != nil {
			return err
		}
		if res.Minted.Lt(minLp) {
			return types.ErrInsufficientLiquidityMinted.Wrapf("minted %s, want at least %s", res.Minted.Dec(), minLp.Dec())
		}
		if err := s.supply.Mint(res.Minted); err != nil {
			return err
		}
		s.reserves = res.NewReserves
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// WithdrawLiquidity burns lp for a proportional share of both reserves.
func (p *Pool) WithdrawLiquidity(lp, minX, minY *ui.Int) (*liquidity_amounts.WithdrawResult, error) {
	var res *liquidity_amounts.WithdrawResult
	err := p.mutate(func(s *state) error {
		if err := requireActive(s); err != nil {
			return err
		}
		var err error
		res, err = liquidity_amounts.ComputeWithdraw(s.reserves, s.supply.Total, lp)
		if err != nil {
			return err
		}
		if res.AmountX.Lt(minX) || res.AmountY.Lt(minY) {
			return types.ErrInsufficientWithdrawal.Wrapf("got x=%s y=%s, want at least x=%s y=%s", res.AmountX.Dec(), res.AmountY.Dec(), minX.Dec(), minY.Dec())
		}
		if err := s.supply.Burn(res.Burned); err != nil {
			return err
		}
		s.reserves = res.NewReserves
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// WithdrawImbalancedLiquidity takes exact amounts out and burns whatever LP
// the resulting drop in the invariant is worth, up to maxLp.
func (p *Pool) WithdrawImbalancedLiquidity(amountX, amountY, maxLp *ui.Int) (*liquidity_amounts.WithdrawResult, error) {
	var res *liquidity_amounts.WithdrawResult
	err := p.mutate(func(s *state) error {
		if err := requireActive(s); err != nil {
			return err
		}
		var err error
		res, err = liquidity_amounts.ComputeWithdrawImbalanced(s.reserves, s.supply.Total, s.params, amountX, amountY)
		if err != nil {
			return err
		}
		if res.Burned.Gt(maxLp) {
			return types.ErrExcessiveBurn.Wrapf("burn %s exceeds %s", res.Burned.Dec(), maxLp.Dec())
		}
		if err := s.supply.Burn(res.Burned); err != nil {
			return err
		}
		s.reserves = res.NewReserves
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
