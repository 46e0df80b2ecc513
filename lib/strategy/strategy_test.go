package strategy

import (
	"testing"

	"github.com/ftchann/stableswap-simulator/lib/adminset"
	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/midpoint"
	"github.com/ftchann/stableswap-simulator/lib/pool"
	"github.com/ftchann/stableswap-simulator/lib/prices"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const unit = cons.UnitScale

func u(v uint64) *ui.Int { return ui.NewInt(v) }

// newPool funds a pool whose two sides are worth the same at m.
func newPool(t require.TestingT, amp uint64, m midpoint.Midpoint) *pool.Pool {
	cfg := pool.DefaultInitConfig()
	cfg.Params.Amplification.Coefficient = amp
	cfg.Params.Midpoint = m
	amountY := u(10_000_000 * unit)
	amountX, err := m.ToRateAdjusted(amountY)
	require.NoError(t, err)

	p := pool.New("USDA", "USDB", adminset.New("deployer"))
	_, err = p.Initialize(cfg, amountX, amountY)
	require.NoError(t, err)
	return p
}

var premium = midpoint.Midpoint{Numerator: 1_100_000, Denominator: 1_000_000}

func TestNew(t *testing.T) {
	p := newPool(t, 25, premium)
	for _, name := range []string{NoProvision, Proportional, SingleSided} {
		s, err := New(name, u(unit), u(unit), p)
		require.NoError(t, err)
		require.Equal(t, name, s.Name())
		require.NotSame(t, p, s.GetPool())
	}
	_, err := New("martingale", u(unit), u(unit), p)
	require.ErrorIs(t, err, types.ErrUnknownStrategy)
}

func TestNoProvision(t *testing.T) {
	p := newPool(t, 25, premium)
	s := NewNoProvisionStrategy(u(5*unit), u(7*unit), p)

	x, y, err := s.Init()
	require.NoError(t, err)
	require.Equal(t, 5*unit, x.Uint64())
	require.Equal(t, 7*unit, y.Uint64())

	_, _, err = s.Rebalance()
	require.NoError(t, err)
	x, y, err = s.BurnAll()
	require.NoError(t, err)
	require.Equal(t, 5*unit, x.Uint64())
	require.Equal(t, 7*unit, y.Uint64())
	require.Equal(t, p.Snapshot().Reserves, s.GetPool().Snapshot().Reserves)
}

// Works on a private pool and never gets back more than it put in when
// nobody trades.
func TestProportional(t *testing.T) {
	p := newPool(t, 25, premium)
	depositX, depositY := u(110*unit), u(100*unit)
	s := NewProportionalStrategy(depositX, depositY, p)

	x, y, err := s.Init()
	require.NoError(t, err)
	require.True(t, x.Eq(depositX))
	require.True(t, y.Eq(depositY))
	require.False(t, s.LP.IsZero())
	require.NotEqual(t, p.Snapshot().Reserves, s.GetPool().Snapshot().Reserves)

	for i := 0; i < 3; i++ {
		x, y, err = s.Rebalance()
		require.NoError(t, err)
		require.False(t, x.Gt(depositX))
		require.False(t, y.Gt(depositY))
	}

	held, _, err := s.GetAmounts()
	require.NoError(t, err)
	x, y, err = s.BurnAll()
	require.NoError(t, err)
	require.True(t, held.Eq(x))
	require.True(t, s.LP.IsZero())
	require.False(t, x.Gt(depositX))
	require.False(t, y.Gt(depositY))
	require.True(t, x.Gt(u(110*unit-100)), x.Dec())
	require.True(t, y.Gt(u(100*unit-100)), y.Dec())
}

// Earns its share of the provider fee when others trade.
func TestProportionalEarnsFees(t *testing.T) {
	p := newPool(t, 25, premium)
	s := NewProportionalStrategy(u(1_100_000*unit), u(1_000_000*unit), p)
	_, _, err := s.Init()
	require.NoError(t, err)

	m := p.Snapshot().Params.Midpoint
	before, err := valueOf(s, m)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		out, err := s.GetPool().SwapYForX(u(100_000*unit), cons.Zero)
		require.NoError(t, err)
		_, err = s.GetPool().SwapXForY(out, cons.Zero)
		require.NoError(t, err)
	}
	after, err := valueOf(s, m)
	require.NoError(t, err)
	require.True(t, after.Gt(before), "before=%s after=%s", before.Dec(), after.Dec())
}

func valueOf(s Strategy, m midpoint.Midpoint) (*ui.Int, error) {
	x, y, err := s.GetAmounts()
	if err != nil {
		return nil, err
	}
	return prices.ValueInX(m, types.Reserves{X: x, Y: y})
}

func TestSingleSidedDepositsOnlyX(t *testing.T) {
	p := newPool(t, 25, premium)
	s := NewSingleSidedCycleStrategy(u(100*unit), u(10*unit), p)

	_, _, err := s.Init()
	require.NoError(t, err)
	require.True(t, s.AmountX.IsZero())
	require.True(t, s.AmountY.IsZero())

	snap := s.GetPool().Snapshot()
	require.Equal(t, uint64(10_000_000*unit), snap.Reserves.Y.Uint64())
	require.Equal(t, uint64(11_000_111*unit), snap.Reserves.X.Uint64())

	x, y, err := s.Rebalance()
	require.NoError(t, err)
	require.False(t, y.IsZero())
	require.True(t, x.Lt(u(111*unit)))
}

// Cycling single sided deposits through a pool at its peg is never a
// riskless profit.
func TestNoRisklessArbitrage(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		amp := rapid.SampledFrom([]uint64{1, 25, 500}).Draw(t, "amp")
		m := rapid.SampledFrom([]midpoint.Midpoint{midpoint.Parity, premium}).Draw(t, "midpoint")
		depositX := u(rapid.Uint64Range(unit, 100_000*unit).Draw(t, "x"))
		depositY := u(rapid.Uint64Range(0, 100_000*unit).Draw(t, "y"))
		cycles := rapid.IntRange(1, 5).Draw(t, "cycles")

		s := NewSingleSidedCycleStrategy(depositX, depositY, newPool(t, amp, m))
		start, err := prices.ValueInX(m, types.Reserves{X: depositX, Y: depositY})
		if err != nil {
			t.Fatal(err)
		}
		if _, _, err := s.Init(); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < cycles; i++ {
			if _, _, err := s.Rebalance(); err != nil {
				t.Fatal(err)
			}
		}
		x, y, err := s.BurnAll()
		if err != nil {
			t.Fatal(err)
		}
		end, err := prices.ValueInX(m, types.Reserves{X: x, Y: y})
		if err != nil {
			t.Fatal(err)
		}
		// end <= start * 1.001
		limit := new(ui.Int).Add(start, new(ui.Int).Div(start, u(1_000)))
		if end.Gt(limit) {
			t.Fatalf("%d cycles turned %s into %s", cycles, start.Dec(), end.Dec())
		}
	})
}
