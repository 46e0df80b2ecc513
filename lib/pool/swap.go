package pool

import (
	fm "github.com/ftchann/stableswap-simulator/lib/fullmath"
	"github.com/ftchann/stableswap-simulator/lib/liquidity_amounts"
	"github.com/ftchann/stableswap-simulator/lib/swapmath"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
)

// Quote prices a swap against the current state without changing it.
func (p *Pool) Quote(assetIn types.Asset, amountIn *ui.Int) (*swapmath.SwapResult, error) {
	var res *swapmath.SwapResult
	err := p.read(func(s *state) error {
		if err := requireInitialized(s); err != nil {
			return err
		}
		var err error
		res, err = swapmath.ComputeSwap(s.reserves, s.params, assetIn, amountIn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetDy quotes the Y received for amountX.
func (p *Pool) GetDy(amountX *ui.Int) (*ui.Int, error) {
	res, err := p.Quote(types.AssetX, amountX)
	if err != nil {
		return nil, err
	}
	return res.AmountOut, nil
}

// GetDx quotes the X received for amountY.
func (p *Pool) GetDx(amountY *ui.Int) (*ui.Int, error) {
	res, err := p.Quote(types.AssetY, amountY)
	if err != nil {
		return nil, err
	}
	return res.AmountOut, nil
}

// GetDlp quotes the LP minted for a deposit.
func (p *Pool) GetDlp(amountX, amountY *ui.Int) (*ui.Int, error) {
	var minted *ui.Int
	err := p.read(func(s *state) error {
		if err := requireInitialized(s); err != nil {
			return err
		}
		res, err := liquidity_amounts.ComputeMint(s.reserves, s.supply.Total, s.params, amountX, amountY)
		if err != nil {
			return err
		}
		minted = res.Minted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return minted, nil
}

// Swap sells amountIn of assetIn. The protocol fee is paid out to the fee
// address, the provider fee stays in the reserves.
func (p *Pool) Swap(assetIn types.Asset, amountIn, minOut *ui.Int) (*swapmath.SwapResult, error) {
	var res *swapmath.SwapResult
	err := p.mutate(func(s *state) error {
		if err := requireActive(s); err != nil {
			return err
		}
		var err error
		res, err = swapmath.ComputeSwap(s.reserves, s.params, assetIn, amountIn)
		if err != nil {
			return err
		}
		if res.AmountOut.Lt(minOut) {
			return types.ErrInsufficientOutput.Wrapf("got %s %s, want at least %s", res.AmountOut.Dec(), res.AssetOut(), minOut.Dec())
		}

		out := res.AssetOut()
		protocol, err := fm.Add(s.protocolFees.Get(out), res.ProtocolFee)
		if err != nil {
			return err
		}
		provider, err := fm.Add(s.providerFees.Get(out), res.ProviderFee)
		if err != nil {
			return err
		}
		s.protocolFees = s.protocolFees.With(out, protocol)
		s.providerFees = s.providerFees.With(out, provider)
		s.reserves = res.NewReserves
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (p *Pool) SwapXForY(amountX, minY *ui.Int) (*ui.Int, error) {
	res, err := p.Swap(types.AssetX, amountX, minY)
	if err != nil {
		return nil, err
	}
	return res.AmountOut, nil
}

func (p *Pool) SwapYForX(amountY, minX *ui.Int) (*ui.Int, error) {
	res, err := p.Swap(types.AssetY, amountY, minX)
	if err != nil {
		return nil, err
	}
	return res.AmountOut, nil
}
