package fullmath

import (
	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
)

// MulDiv computes floor(a*b/denominator) with a 512 bit intermediate.
func MulDiv(a, b, denominator *ui.Int) (*ui.Int, error) {
	if denominator.IsZero() {
		return nil, types.ErrDivisionByZero.Wrapf("mulDiv %s*%s/0", a.Dec(), b.Dec())
	}
	result, overflow := new(ui.Int).MulDivOverflow(a, b, denominator)
	if overflow {
		return nil, types.ErrArithmeticOverflow.Wrapf("mulDiv %s*%s/%s", a.Dec(), b.Dec(), denominator.Dec())
	}
	return result, nil
}

// MulDivRoundingUp computes ceil(a*b/denominator).
func MulDivRoundingUp(a, b, denominator *ui.Int) (*ui.Int, error) {
	result, err := MulDiv(a, b, denominator)
	if err != nil {
		return nil, err
	}
	if a.IsZero() || b.IsZero() {
		return result, nil
	}
	rem := new(ui.Int).MulMod(a, b, denominator)
	if !rem.IsZero() {
		return Add(result, cons.One)
	}
	return result, nil
}

func Div(a, b *ui.Int) (*ui.Int, error) {
	if b.IsZero() {
		return nil, types.ErrDivisionByZero.Wrapf("%s/0", a.Dec())
	}
	return new(ui.Int).Div(a, b), nil
}

func DivRoundingUp(a, b *ui.Int) (*ui.Int, error) {
	if b.IsZero() {
		return nil, types.ErrDivisionByZero.Wrapf("%s/0", a.Dec())
	}
	result := new(ui.Int).Div(a, b)
	if !new(ui.Int).Mod(a, b).IsZero() {
		result.Add(result, cons.One)
	}
	return result, nil
}

func Add(a, b *ui.Int) (*ui.Int, error) {
	result, overflow := new(ui.Int).AddOverflow(a, b)
	if overflow {
		return nil, types.ErrArithmeticOverflow.Wrapf("%s+%s", a.Dec(), b.Dec())
	}
	return result, nil
}

// Sub reports underflow as an overflow of the unsigned range.
func Sub(a, b *ui.Int) (*ui.Int, error) {
	result, underflow := new(ui.Int).SubOverflow(a, b)
	if underflow {
		return nil, types.ErrArithmeticOverflow.Wrapf("underflow %s-%s", a.Dec(), b.Dec())
	}
	return result, nil
}

func Mul(a, b *ui.Int) (*ui.Int, error) {
	result, overflow := new(ui.Int).MulOverflow(a, b)
	if overflow {
		return nil, types.ErrArithmeticOverflow.Wrapf("%s*%s", a.Dec(), b.Dec())
	}
	return result, nil
}

func AbsDiff(a, b *ui.Int) *ui.Int {
	if a.Cmp(b) >= 0 {
		return new(ui.Int).Sub(a, b)
	}
	return new(ui.Int).Sub(b, a)
}
