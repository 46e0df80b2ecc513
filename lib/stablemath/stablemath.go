// Package stablemath solves the two asset stableswap invariant
//
//	A*n^n*(x+y) + D = A*n^n*D + D^(n+1)/(n^n*x*y),  n = 2
//
// by Newton iteration on integer arithmetic.
package stablemath

import (
	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/fullmath"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
)

type Solver struct {
	Amplification        uint64
	ConvergenceThreshold uint64
	// MaxIterations defaults to constants.MaxIterations when zero.
	MaxIterations int
}

func NewSolver(amplification, threshold uint64) (Solver, error) {
	s := Solver{Amplification: amplification, ConvergenceThreshold: threshold}
	if err := s.Validate(); err != nil {
		return Solver{}, err
	}
	return s, nil
}

func (s Solver) Validate() error {
	if s.Amplification < cons.MinAmplification || s.Amplification > cons.MaxAmplification {
		return types.ErrInvalidAmplification.Wrapf("%d not in [%d, %d]", s.Amplification, cons.MinAmplification, cons.MaxAmplification)
	}
	if s.ConvergenceThreshold == 0 {
		return types.ErrInvalidConvergenceThreshold.Wrap("threshold must be positive")
	}
	return nil
}

func (s Solver) iterations() int {
	if s.MaxIterations <= 0 {
		return cons.MaxIterations
	}
	return s.MaxIterations
}

// k returns A*n^n.
func (s Solver) k() *ui.Int {
	return new(ui.Int).Mul(ui.NewInt(s.Amplification), ui.NewInt(cons.NCoins*cons.NCoins))
}

func converged(a, b *ui.Int, threshold *ui.Int) bool {
	return !fullmath.AbsDiff(a, b).Gt(threshold)
}

// GetD returns the invariant of the rate adjusted balances x and y.
func (s Solver) GetD(x, y *ui.Int) (*ui.Int, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	sum, err := fullmath.Add(x, y)
	if err != nil {
		return nil, err
	}
	if sum.IsZero() {
		return new(ui.Int), nil
	}
	if x.IsZero() || y.IsZero() {
		return nil, types.ErrEmptyReserve.Wrapf("x=%s y=%s", x.Dec(), y.Dec())
	}

	k := s.k()
	kMinusOne := new(ui.Int).Sub(k, cons.One)
	kSum, err := fullmath.Mul(k, sum)
	if err != nil {
		return nil, err
	}
	threshold := ui.NewInt(s.ConvergenceThreshold)

	d := sum.Clone()
	for i := 0; i < s.iterations(); i++ {
		dp, err := cubeOverProduct(d, x, y)
		if err != nil {
			return nil, err
		}

		twoDp, err := fullmath.Mul(dp, cons.Two)
		if err != nil {
			return nil, err
		}
		numerator, err := fullmath.Add(kSum, twoDp)
		if err != nil {
			return nil, err
		}
		threeDp, err := fullmath.Mul(dp, cons.Three)
		if err != nil {
			return nil, err
		}
		denominator, err := fullmath.Mul(kMinusOne, d)
		if err != nil {
			return nil, err
		}
		if denominator, err = fullmath.Add(denominator, threeDp); err != nil {
			return nil, err
		}

		next, err := fullmath.MulDiv(numerator, d, denominator)
		if err != nil {
			return nil, err
		}
		if converged(next, d, threshold) {
			return next, nil
		}
		d = next
	}
	return nil, types.ErrConvergenceFailure.Wrapf("D after %d iterations, x=%s y=%s", s.iterations(), x.Dec(), y.Dec())
}

// cubeOverProduct returns D^3 / (4xy) with a single rounding. Only when D^2
// or 4xy leave 256 bits does it divide in two steps, smaller balance first,
// so the result never depends on argument order.
func cubeOverProduct(d, x, y *ui.Int) (*ui.Int, error) {
	dd, ddErr := fullmath.Mul(d, d)
	xy, xyErr := fullmath.Mul(x, y)
	if ddErr == nil && xyErr == nil {
		if fourXY, err := fullmath.Mul(xy, ui.NewInt(4)); err == nil {
			return fullmath.MulDiv(dd, d, fourXY)
		}
	}
	small, big := x, y
	if small.Gt(big) {
		small, big = big, small
	}
	dp, err := fullmath.MulDiv(d, d, new(ui.Int).Mul(small, cons.Two))
	if err != nil {
		return nil, err
	}
	twoBig, err := fullmath.Mul(big, cons.Two)
	if err != nil {
		return nil, err
	}
	return fullmath.MulDiv(dp, d, twoBig)
}

// GetY returns the balance of the other asset that keeps the invariant at d
// when one side holds x. Both x and the result are rate adjusted.
func (s Solver) GetY(x, d *ui.Int) (*ui.Int, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if x.IsZero() {
		return nil, types.ErrEmptyReserve.Wrap("x=0")
	}
	if d.IsZero() {
		return new(ui.Int), nil
	}

	k := s.k()
	// c = D^3 / (4*x*K)
	c, err := fullmath.MulDiv(d, d, new(ui.Int).Mul(x, cons.Two))
	if err != nil {
		return nil, err
	}
	twoK := new(ui.Int).Mul(k, cons.Two)
	if c, err = fullmath.MulDiv(c, d, twoK); err != nil {
		return nil, err
	}
	b, err := fullmath.Add(x, new(ui.Int).Div(d, k))
	if err != nil {
		return nil, err
	}
	threshold := ui.NewInt(s.ConvergenceThreshold)

	y := d.Clone()
	for i := 0; i < s.iterations(); i++ {
		yy, err := fullmath.Mul(y, y)
		if err != nil {
			return nil, err
		}
		numerator, err := fullmath.Add(yy, c)
		if err != nil {
			return nil, err
		}
		denominator, err := fullmath.Mul(y, cons.Two)
		if err != nil {
			return nil, err
		}
		if denominator, err = fullmath.Add(denominator, b); err != nil {
			return nil, err
		}
		if !denominator.Gt(d) {
			return nil, types.ErrConvergenceFailure.Wrapf("degenerate y step, x=%s D=%s", x.Dec(), d.Dec())
		}
		denominator.Sub(denominator, d)

		next := new(ui.Int).Div(numerator, denominator)
		if converged(next, y, threshold) {
			return next, nil
		}
		y = next
	}
	return nil, types.ErrConvergenceFailure.Wrapf("y after %d iterations, x=%s D=%s", s.iterations(), x.Dec(), d.Dec())
}

func GetD(x, y *ui.Int, amplification, threshold uint64) (*ui.Int, error) {
	return Solver{Amplification: amplification, ConvergenceThreshold: threshold}.GetD(x, y)
}

func GetY(x, d *ui.Int, amplification, threshold uint64) (*ui.Int, error) {
	return Solver{Amplification: amplification, ConvergenceThreshold: threshold}.GetY(x, d)
}
