package swapmath

import (
	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	fm "github.com/ftchann/stableswap-simulator/lib/fullmath"
	"github.com/ftchann/stableswap-simulator/lib/params"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
)

// SwapResult describes an exact-input swap. AmountOut is what the trader
// receives after both fees.
type SwapResult struct {
	AssetIn     types.Asset
	AmountIn    *ui.Int
	GrossOut    *ui.Int
	AmountOut   *ui.Int
	ProtocolFee *ui.Int
	ProviderFee *ui.Int
	NewReserves types.Reserves
}

func (r *SwapResult) AssetOut() types.Asset {
	return r.AssetIn.Other()
}

// ComputeSwap prices selling amountIn of assetIn against reserves. It does
// not touch its arguments.
func ComputeSwap(reserves types.Reserves, p params.Params, assetIn types.Asset, amountIn *ui.Int) (*SwapResult, error) {
	if amountIn.IsZero() {
		return nil, types.ErrZeroAmount.Wrapf("swap %s in", assetIn)
	}

	adjusted, err := p.RateAdjust(reserves)
	if err != nil {
		return nil, err
	}
	solver := p.Amplification.Solver()
	d, err := solver.GetD(adjusted.X, adjusted.Y)
	if err != nil {
		return nil, err
	}

	var gross *ui.Int
	if assetIn == types.AssetX {
		gross, err = xForY(solver.GetY, p, adjusted, d, amountIn)
	} else {
		gross, err = yForX(solver.GetY, p, reserves, adjusted, d, amountIn)
	}
	if err != nil {
		return nil, err
	}

	protocolBps, providerBps := p.Fees.SwapFees(assetIn)
	protocolFee, err := fm.MulDivRoundingUp(gross, ui.NewInt(protocolBps), cons.BPS)
	if err != nil {
		return nil, err
	}
	providerFee, err := fm.MulDivRoundingUp(gross, ui.NewInt(providerBps), cons.BPS)
	if err != nil {
		return nil, err
	}
	fees := new(ui.Int).Add(protocolFee, providerFee)
	if !gross.Gt(fees) {
		return nil, types.ErrInsufficientOutput.Wrapf("output %s does not cover fees %s", gross.Dec(), fees.Dec())
	}
	net := new(ui.Int).Sub(gross, fees)

	// the provider fee stays in the pool, the protocol fee is paid out
	leaving := new(ui.Int).Add(net, protocolFee)
	next := reserves.Clone()
	if assetIn == types.AssetX {
		if next.X, err = fm.Add(next.X, amountIn); err != nil {
			return nil, err
		}
		if next.Y, err = fm.Sub(next.Y, leaving); err != nil {
			return nil, err
		}
	} else {
		if next.Y, err = fm.Add(next.Y, amountIn); err != nil {
			return nil, err
		}
		if next.X, err = fm.Sub(next.X, leaving); err != nil {
			return nil, err
		}
	}

	return &SwapResult{
		AssetIn:     assetIn,
		AmountIn:    amountIn.Clone(),
		GrossOut:    gross,
		AmountOut:   net,
		ProtocolFee: protocolFee,
		ProviderFee: providerFee,
		NewReserves: next,
	}, nil
}

type getY func(x, d *ui.Int) (*ui.Int, error)

// xForY returns the raw Y released for dx. The extra unit subtracted from the
// adjusted delta keeps integer rounding in favour of the pool.
func xForY(solve getY, p params.Params, adjusted types.Reserves, d, dx *ui.Int) (*ui.Int, error) {
	x, err := fm.Add(adjusted.X, dx)
	if err != nil {
		return nil, err
	}
	y, err := solve(x, d)
	if err != nil {
		return nil, err
	}
	dy, err := positiveDelta(adjusted.Y, y)
	if err != nil {
		return nil, err
	}
	out, err := p.Midpoint.FromRateAdjusted(dy)
	if err != nil {
		return nil, err
	}
	if out.IsZero() {
		return nil, types.ErrInsufficientOutput.Wrapf("%s x yields no y", dx.Dec())
	}
	return out, nil
}

func yForX(solve getY, p params.Params, reserves, adjusted types.Reserves, d, dy *ui.Int) (*ui.Int, error) {
	rawY, err := fm.Add(reserves.Y, dy)
	if err != nil {
		return nil, err
	}
	y, err := p.Midpoint.ToRateAdjusted(rawY)
	if err != nil {
		return nil, err
	}
	x, err := solve(y, d)
	if err != nil {
		return nil, err
	}
	return positiveDelta(adjusted.X, x)
}

// positiveDelta returns before - after - 1, or ErrInsufficientOutput.
func positiveDelta(before, after *ui.Int) (*ui.Int, error) {
	floor := new(ui.Int).Add(after, cons.One)
	if !before.Gt(floor) {
		return nil, types.ErrInsufficientOutput.Wrapf("balance %s after %s", before.Dec(), after.Dec())
	}
	return new(ui.Int).Sub(before, floor), nil
}
