package prices

import (
	"github.com/ftchann/stableswap-simulator/lib/midpoint"
	"github.com/ftchann/stableswap-simulator/lib/types"

	"cosmossdk.io/math"
	ui "github.com/holiman/uint256"
)

// Dec converts an amount into a decimal.
func Dec(v *ui.Int) math.LegacyDec {
	return math.LegacyNewDecFromInt(math.NewIntFromBigInt(v.ToBig()))
}

// ValueInX values a balance pair in X at the midpoint rate.
func ValueInX(m midpoint.Midpoint, amounts types.Reserves) (*ui.Int, error) {
	y, err := m.ToRateAdjusted(amounts.Y)
	if err != nil {
		return nil, err
	}
	return new(ui.Int).Add(amounts.X, y), nil
}

// FairOutput is what amountIn of assetIn is worth in the other asset at the
// midpoint rate, without curve or fees.
func FairOutput(m midpoint.Midpoint, assetIn types.Asset, amountIn *ui.Int) (*ui.Int, error) {
	if assetIn == types.AssetX {
		return m.FromRateAdjusted(amountIn)
	}
	return m.ToRateAdjusted(amountIn)
}

// PriceImpact is 1 - amountOut/fair. It includes fees and is negative when a
// trade rebalances a pool beyond what the fees cost.
func PriceImpact(m midpoint.Midpoint, assetIn types.Asset, amountIn, amountOut *ui.Int) (math.LegacyDec, error) {
	fair, err := FairOutput(m, assetIn, amountIn)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if fair.IsZero() {
		return math.LegacyDec{}, types.ErrZeroAmount.Wrapf("%s %s has no fair value", amountIn.Dec(), assetIn)
	}
	return math.LegacyOneDec().Sub(Dec(amountOut).Quo(Dec(fair))), nil
}

// ExecutionPrice is amountOut per unit of amountIn.
func ExecutionPrice(amountIn, amountOut *ui.Int) (math.LegacyDec, error) {
	if amountIn.IsZero() {
		return math.LegacyDec{}, types.ErrDivisionByZero.Wrap("execution price of empty trade")
	}
	return Dec(amountOut).Quo(Dec(amountIn)), nil
}

// Prices is a fixed size rolling window.
type Prices struct {
	prices []math.LegacyDec
	index  int
	filled int
}

func NewPrices(length int) *Prices {
	if length < 1 {
		length = 1
	}
	return &Prices{prices: make([]math.LegacyDec, length)}
}

func (p *Prices) Add(price math.LegacyDec) {
	p.prices[p.index] = price
	p.index = (p.index + 1) % len(p.prices)
	if p.filled < len(p.prices) {
		p.filled++
	}
}

func (p *Prices) Len() int {
	return p.filled
}

func (p *Prices) Average() math.LegacyDec {
	if p.filled == 0 {
		return math.LegacyZeroDec()
	}
	sum := math.LegacyZeroDec()
	for _, price := range p.prices[:p.filled] {
		sum = sum.Add(price)
	}
	return sum.QuoInt64(int64(p.filled))
}

// Volatility is the sample standard deviation of the window.
func (p *Prices) Volatility() (math.LegacyDec, error) {
	if p.filled < 2 {
		return math.LegacyZeroDec(), nil
	}
	avg := p.Average()
	sum := math.LegacyZeroDec()
	for _, price := range p.prices[:p.filled] {
		diff := price.Sub(avg)
		sum = sum.Add(diff.Mul(diff))
	}
	return sum.QuoInt64(int64(p.filled - 1)).ApproxSqrt()
}
