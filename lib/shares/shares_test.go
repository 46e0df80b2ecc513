package shares

import (
	"testing"

	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestSupply(t *testing.T) {
	s := NewSupply(ui.NewInt(10_000))
	require.NoError(t, s.Lock(ui.NewInt(1_000)))
	require.NoError(t, s.Mint(ui.NewInt(20_000)))
	require.Equal(t, uint64(21_000), s.Total.Uint64())
	require.Equal(t, uint64(20_000), s.Circulating().Uint64())

	c := s.Clone()
	require.NoError(t, c.Burn(ui.NewInt(11_000)))
	require.Equal(t, uint64(10_000), c.Total.Uint64())
	require.Equal(t, uint64(21_000), s.Total.Uint64())
}

func TestBurnFloor(t *testing.T) {
	s := NewSupply(ui.NewInt(10_000))
	require.NoError(t, s.Lock(ui.NewInt(1_000)))
	require.NoError(t, s.Mint(ui.NewInt(20_000)))

	err := s.Burn(ui.NewInt(11_001))
	require.ErrorIs(t, err, types.ErrBelowMinimumShares)
	require.Equal(t, uint64(21_000), s.Total.Uint64())

	err = s.Burn(ui.NewInt(21_001))
	require.ErrorIs(t, err, types.ErrBelowMinimumShares)

	// the locked shares are never withdrawable, even without a floor
	open := NewSupply(ui.NewInt(0))
	require.NoError(t, open.Lock(ui.NewInt(1_000)))
	require.NoError(t, open.Mint(ui.NewInt(20_000)))
	err = open.Burn(ui.NewInt(20_001))
	require.ErrorIs(t, err, types.ErrInsufficientWithdrawal)
	require.Equal(t, uint64(21_000), open.Total.Uint64())
}
