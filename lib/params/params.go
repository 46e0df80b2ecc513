package params

import (
	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/midpoint"
	"github.com/ftchann/stableswap-simulator/lib/stablemath"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
)

// FeeConfig holds fees in basis points. Swap fees are charged on the output
// and selected by the input asset.
type FeeConfig struct {
	ProtocolFeeX uint64
	ProviderFeeX uint64
	ProtocolFeeY uint64
	ProviderFeeY uint64
	LiquidityFee uint64
}

func validatePair(asset types.Asset, protocol, provider uint64) error {
	if protocol >= cons.BPSDenominator || provider >= cons.BPSDenominator || protocol+provider >= cons.BPSDenominator {
		return types.ErrInvalidFee.Wrapf("%s fees protocol=%d provider=%d", asset, protocol, provider)
	}
	return nil
}

func (f FeeConfig) Validate() error {
	if err := validatePair(types.AssetX, f.ProtocolFeeX, f.ProviderFeeX); err != nil {
		return err
	}
	if err := validatePair(types.AssetY, f.ProtocolFeeY, f.ProviderFeeY); err != nil {
		return err
	}
	if f.LiquidityFee >= cons.BPSDenominator {
		return types.ErrInvalidFee.Wrapf("liquidity fee %d", f.LiquidityFee)
	}
	return nil
}

// SwapFees returns the protocol and provider fee charged when assetIn is sold.
func (f FeeConfig) SwapFees(assetIn types.Asset) (protocol, provider uint64) {
	if assetIn == types.AssetX {
		return f.ProtocolFeeX, f.ProviderFeeX
	}
	return f.ProtocolFeeY, f.ProviderFeeY
}

// WithSwapFees returns a copy with the fee pair of asset replaced.
func (f FeeConfig) WithSwapFees(asset types.Asset, protocol, provider uint64) (FeeConfig, error) {
	if err := validatePair(asset, protocol, provider); err != nil {
		return f, err
	}
	if asset == types.AssetX {
		f.ProtocolFeeX, f.ProviderFeeX = protocol, provider
	} else {
		f.ProtocolFeeY, f.ProviderFeeY = protocol, provider
	}
	return f, nil
}

type AmplificationConfig struct {
	Coefficient          uint64
	ConvergenceThreshold uint64
}

func (a AmplificationConfig) Solver() stablemath.Solver {
	return stablemath.Solver{Amplification: a.Coefficient, ConvergenceThreshold: a.ConvergenceThreshold}
}

func (a AmplificationConfig) Validate() error {
	return a.Solver().Validate()
}

// Params is everything the swap and liquidity engines read from a pool.
type Params struct {
	Fees          FeeConfig
	Amplification AmplificationConfig
	Midpoint      midpoint.Midpoint
}

func Default() Params {
	return Params{
		Fees: FeeConfig{
			ProtocolFeeX: cons.DefaultProtocolFee,
			ProviderFeeX: cons.DefaultProviderFee,
			ProtocolFeeY: cons.DefaultProtocolFee,
			ProviderFeeY: cons.DefaultProviderFee,
			LiquidityFee: cons.DefaultLiquidityFee,
		},
		Amplification: AmplificationConfig{
			Coefficient:          cons.DefaultAmplification,
			ConvergenceThreshold: cons.DefaultConvergenceThreshold,
		},
		Midpoint: midpoint.Parity,
	}
}

func (p Params) Validate() error {
	if err := p.Fees.Validate(); err != nil {
		return err
	}
	if err := p.Amplification.Validate(); err != nil {
		return err
	}
	return p.Midpoint.Validate()
}

// RateAdjust returns the reserves with Y expressed in X units.
func (p Params) RateAdjust(r types.Reserves) (types.Reserves, error) {
	y, err := p.Midpoint.ToRateAdjusted(r.Y)
	if err != nil {
		return types.Reserves{}, err
	}
	return types.Reserves{X: r.X.Clone(), Y: y}, nil
}

// Invariant returns D for raw reserves.
func (p Params) Invariant(r types.Reserves) (*ui.Int, error) {
	adjusted, err := p.RateAdjust(r)
	if err != nil {
		return nil, err
	}
	return p.Amplification.Solver().GetD(adjusted.X, adjusted.Y)
}
