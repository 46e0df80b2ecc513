package constants

import (
	ui "github.com/holiman/uint256"
)

// Shared values. Never mutate them, Clone first.
var (
	Zero       = new(ui.Int)
	One        = new(ui.Int).SetOne()
	Two        = ui.NewInt(2)
	Three      = ui.NewInt(3)
	MaxUint256 = new(ui.Int).SetAllOne()
	Unit       = ui.NewInt(UnitScale)
	BPS        = ui.NewInt(BPSDenominator)
)

const (
	UnitDecimals        = 6
	UnitScale    uint64 = 1_000_000

	BPSDenominator uint64 = 10_000

	// NCoins is fixed: the curve is a two asset curve.
	NCoins        = 2
	MaxIterations = 255

	MaxAdmins = 5

	MinAmplification uint64 = 1
	MaxAmplification uint64 = 1_000_000
)

// Defaults used when a pool is created without explicit parameters.
const (
	DefaultAmplification        uint64 = 100
	DefaultConvergenceThreshold uint64 = 2
	DefaultProtocolFee          uint64 = 3
	DefaultProviderFee          uint64 = 3
	DefaultLiquidityFee         uint64 = 50
	DefaultMinimumTotalShares   uint64 = 10_000
	DefaultMinimumBurntShares   uint64 = 1_000
)
