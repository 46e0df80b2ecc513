// Package midpoint maps raw Y balances into the X denominated space in which
// the invariant treats both assets as having equal unit value.
package midpoint

import (
	"github.com/ftchann/stableswap-simulator/lib/fullmath"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
)

// Midpoint is the target exchange rate between the two assets.
// Not reversed, one unit of Y is worth Numerator/Denominator units of X.
// Reversed, it is worth Denominator/Numerator units of X.
type Midpoint struct {
	Numerator   uint64
	Denominator uint64
	Reversed    bool
}

// Parity is the 1:1 midpoint.
var Parity = Midpoint{Numerator: 1, Denominator: 1}

func New(numerator, denominator uint64, reversed bool) (Midpoint, error) {
	m := Midpoint{Numerator: numerator, Denominator: denominator, Reversed: reversed}
	if err := m.Validate(); err != nil {
		return Midpoint{}, err
	}
	return m, nil
}

func (m Midpoint) Validate() error {
	if m.Numerator == 0 || m.Denominator == 0 {
		return types.ErrInvalidMidpoint.Wrapf("%d/%d", m.Numerator, m.Denominator)
	}
	return nil
}

func (m Midpoint) ratio() (mul, div *ui.Int) {
	if m.Reversed {
		return ui.NewInt(m.Denominator), ui.NewInt(m.Numerator)
	}
	return ui.NewInt(m.Numerator), ui.NewInt(m.Denominator)
}

// ToRateAdjusted converts a raw Y amount into X units, rounding down.
func (m Midpoint) ToRateAdjusted(balanceY *ui.Int) (*ui.Int, error) {
	mul, div := m.ratio()
	return fullmath.MulDiv(balanceY, mul, div)
}

// FromRateAdjusted converts X units back into raw Y, rounding down.
func (m Midpoint) FromRateAdjusted(adjustedY *ui.Int) (*ui.Int, error) {
	mul, div := m.ratio()
	return fullmath.MulDiv(adjustedY, div, mul)
}
