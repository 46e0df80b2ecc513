package liquidity_amounts

import (
	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/fullmath"
	"github.com/ftchann/stableswap-simulator/lib/params"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
)

type InitialMintResult struct {
	Total       *ui.Int
	Burnt       *ui.Int
	Minted      *ui.Int
	NewReserves types.Reserves
}

// MintResult reports the imbalance fee charged per side in raw units.
type MintResult struct {
	Minted      *ui.Int
	FeeX        *ui.Int
	FeeY        *ui.Int
	NewReserves types.Reserves
}

type WithdrawResult struct {
	AmountX     *ui.Int
	AmountY     *ui.Int
	Burned      *ui.Int
	FeeX        *ui.Int
	FeeY        *ui.Int
	NewReserves types.Reserves
}

// ComputeInitialMint prices the first deposit. The whole invariant is minted,
// minimumBurnt of it is locked and the rest goes to the depositor.
func ComputeInitialMint(p params.Params, amountX, amountY, minimumTotal, minimumBurnt *ui.Int) (*InitialMintResult, error) {
	if amountX.IsZero() || amountY.IsZero() {
		return nil, types.ErrZeroAmount.Wrapf("initial deposit needs both assets, x=%s y=%s", amountX.Dec(), amountY.Dec())
	}
	reserves := types.NewReserves(amountX, amountY)
	d, err := p.Invariant(reserves)
	if err != nil {
		return nil, err
	}
	if d.Lt(minimumTotal) || !d.Gt(minimumBurnt) {
		return nil, types.ErrBelowMinimumShares.Wrapf("initial invariant %s, minimum total %s, burnt %s", d.Dec(), minimumTotal.Dec(), minimumBurnt.Dec())
	}
	return &InitialMintResult{
		Total:       d,
		Burnt:       minimumBurnt.Clone(),
		Minted:      new(ui.Int).Sub(d, minimumBurnt),
		NewReserves: reserves,
	}, nil
}

// ComputeMint prices a deposit into a funded pool. Deviation from a
// proportional deposit is charged the liquidity fee, which stays in the pool.
func ComputeMint(reserves types.Reserves, totalShares *ui.Int, p params.Params, amountX, amountY *ui.Int) (*MintResult, error) {
	if amountX.IsZero() && amountY.IsZero() {
		return nil, types.ErrZeroAmount.Wrap("deposit")
	}
	next := reserves.Clone()
	var err error
	if next.X, err = fullmath.Add(next.X, amountX); err != nil {
		return nil, err
	}
	if next.Y, err = fullmath.Add(next.Y, amountY); err != nil {
		return nil, err
	}

	im, err := newImbalance(reserves, next, p)
	if err != nil {
		return nil, err
	}
	if !im.d1.Gt(im.d0) {
		return nil, types.ErrInsufficientLiquidityMinted.Wrapf("invariant %s -> %s", im.d0.Dec(), im.d1.Dec())
	}
	d2, err := im.chargedInvariant()
	if err != nil {
		return nil, err
	}
	if !d2.Gt(im.d0) {
		return nil, types.ErrInsufficientLiquidityMinted.Wrapf("deposit absorbed by imbalance fee, invariant %s -> %s", im.d0.Dec(), d2.Dec())
	}

	minted, err := fullmath.MulDiv(totalShares, new(ui.Int).Sub(d2, im.d0), im.d0)
	if err != nil {
		return nil, err
	}
	if minted.IsZero() {
		return nil, types.ErrInsufficientLiquidityMinted.Wrap("deposit too small to mint")
	}
	feeX, feeY, err := im.rawFees()
	if err != nil {
		return nil, err
	}
	return &MintResult{Minted: minted, FeeX: feeX, FeeY: feeY, NewReserves: next}, nil
}

// ComputeWithdraw pays out a proportional share of both reserves.
func ComputeWithdraw(reserves types.Reserves, totalShares, lp *ui.Int) (*WithdrawResult, error) {
	if lp.IsZero() {
		return nil, types.ErrZeroAmount.Wrap("withdraw")
	}
	if lp.Gt(totalShares) {
		return nil, types.ErrInsufficientWithdrawal.Wrapf("burning %s of %s shares", lp.Dec(), totalShares.Dec())
	}
	outX, err := fullmath.MulDiv(reserves.X, lp, totalShares)
	if err != nil {
		return nil, err
	}
	outY, err := fullmath.MulDiv(reserves.Y, lp, totalShares)
	if err != nil {
		return nil, err
	}
	return &WithdrawResult{
		AmountX:     outX,
		AmountY:     outY,
		Burned:      lp.Clone(),
		FeeX:        new(ui.Int),
		FeeY:        new(ui.Int),
		NewReserves: types.Reserves{X: new(ui.Int).Sub(reserves.X, outX), Y: new(ui.Int).Sub(reserves.Y, outY)},
	}, nil
}

// ComputeWithdrawImbalanced prices taking exact amounts out of the pool. The
// LP burned is rounded up and padded by one unit.
func ComputeWithdrawImbalanced(reserves types.Reserves, totalShares *ui.Int, p params.Params, amountX, amountY *ui.Int) (*WithdrawResult, error) {
	if amountX.IsZero() && amountY.IsZero() {
		return nil, types.ErrZeroAmount.Wrap("withdraw")
	}
	if !reserves.X.Gt(amountX) || !reserves.Y.Gt(amountY) {
		return nil, types.ErrInsufficientWithdrawal.Wrapf("requested x=%s y=%s from x=%s y=%s", amountX.Dec(), amountY.Dec(), reserves.X.Dec(), reserves.Y.Dec())
	}
	next := types.Reserves{X: new(ui.Int).Sub(reserves.X, amountX), Y: new(ui.Int).Sub(reserves.Y, amountY)}

	im, err := newImbalance(reserves, next, p)
	if err != nil {
		return nil, err
	}
	d2, err := im.chargedInvariant()
	if err != nil {
		return nil, err
	}
	if !im.d0.Gt(d2) {
		return nil, types.ErrInsufficientWithdrawal.Wrapf("invariant %s -> %s", im.d0.Dec(), d2.Dec())
	}

	burn, err := fullmath.MulDivRoundingUp(totalShares, new(ui.Int).Sub(im.d0, d2), im.d0)
	if err != nil {
		return nil, err
	}
	if burn, err = fullmath.Add(burn, cons.One); err != nil {
		return nil, err
	}
	if burn.Gt(totalShares) {
		return nil, types.ErrInsufficientWithdrawal.Wrapf("burning %s of %s shares", burn.Dec(), totalShares.Dec())
	}
	feeX, feeY, err := im.rawFees()
	if err != nil {
		return nil, err
	}
	return &WithdrawResult{
		AmountX:     amountX.Clone(),
		AmountY:     amountY.Clone(),
		Burned:      burn,
		FeeX:        feeX,
		FeeY:        feeY,
		NewReserves: next,
	}, nil
}

// imbalance holds the rate adjusted balances before and after a liquidity
// change together with the fee owed on each side.
type imbalance struct {
	p          params.Params
	next       types.Reserves
	d0, d1     *ui.Int
	feeX, feeY *ui.Int
}

func newImbalance(oldRaw, nextRaw types.Reserves, p params.Params) (*imbalance, error) {
	old, err := p.RateAdjust(oldRaw)
	if err != nil {
		return nil, err
	}
	next, err := p.RateAdjust(nextRaw)
	if err != nil {
		return nil, err
	}
	solver := p.Amplification.Solver()
	d0, err := solver.GetD(old.X, old.Y)
	if err != nil {
		return nil, err
	}
	if d0.IsZero() {
		return nil, types.ErrEmptyReserve.Wrap("pool holds no liquidity")
	}
	d1, err := solver.GetD(next.X, next.Y)
	if err != nil {
		return nil, err
	}

	im := &imbalance{p: p, next: next, d0: d0, d1: d1}
	if im.feeX, err = im.fee(old.X, next.X); err != nil {
		return nil, err
	}
	if im.feeY, err = im.fee(old.Y, next.Y); err != nil {
		return nil, err
	}
	return im, nil
}

// fee charges the liquidity fee on the distance between a side's new balance
// and the balance a proportional change would have produced.
func (im *imbalance) fee(old, next *ui.Int) (*ui.Int, error) {
	ideal, err := fullmath.MulDiv(im.d1, old, im.d0)
	if err != nil {
		return nil, err
	}
	return fullmath.MulDivRoundingUp(fullmath.AbsDiff(ideal, next), ui.NewInt(im.p.Fees.LiquidityFee), cons.BPS)
}

func (im *imbalance) chargedInvariant() (*ui.Int, error) {
	if !im.next.X.Gt(im.feeX) || !im.next.Y.Gt(im.feeY) {
		return nil, types.ErrInsufficientWithdrawal.Wrap("imbalance fee exceeds remaining balance")
	}
	x := new(ui.Int).Sub(im.next.X, im.feeX)
	y := new(ui.Int).Sub(im.next.Y, im.feeY)
	return im.p.Amplification.Solver().GetD(x, y)
}

func (im *imbalance) rawFees() (x, y *ui.Int, err error) {
	y, err = im.p.Midpoint.FromRateAdjusted(im.feeY)
	if err != nil {
		return nil, nil, err
	}
	return im.feeX.Clone(), y, nil
}
