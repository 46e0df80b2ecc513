package config

import (
	"os"
	"path/filepath"
	"testing"

	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/midpoint"
	"github.com/ftchann/stableswap-simulator/lib/types"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"none", "proportional", "single-sided"}, cfg.Simulation.Strategies)
	require.Equal(t, 86_400, cfg.Simulation.RebalanceInterval)

	p, err := cfg.Pool.Params()
	require.NoError(t, err)
	require.Equal(t, cons.DefaultAmplification, p.Amplification.Coefficient)
	require.Equal(t, midpoint.Parity, p.Midpoint)

	req, err := cfg.Pool.CreatePoolRequest()
	require.NoError(t, err)
	require.Equal(t, 10_000_000*cons.UnitScale, req.AmountX.Uint64())
}

func TestFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.yaml")
	body := `
log_level: debug
pool:
  token_x: USDA
  token_y: USDB
  amplification: 25
  midpoint_numerator: 1100000
  midpoint_denominator: 1000000
  midpoint_manager: manager
simulation:
  strategies: [single-sided]
  deposit_x: "5000000"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("STABLESWAP_POOL_AMPLIFICATION", "50")
	t.Setenv("STABLESWAP_SIMULATION_REBALANCE_INTERVAL", "7")
	t.Setenv("STABLESWAP_SIMULATION_STRATEGIES", "none,proportional")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"none", "proportional"}, cfg.Simulation.Strategies)
	require.Equal(t, 7, cfg.Simulation.RebalanceInterval)

	req, err := cfg.Pool.CreatePoolRequest()
	require.NoError(t, err)
	require.Equal(t, "USDA", req.TokenX)
	require.Equal(t, uint64(50), req.Params.Amplification.Coefficient)
	require.Equal(t, uint64(1_100_000), req.Params.Midpoint.Numerator)
	require.Equal(t, types.Principal("manager"), req.MidpointManager)

	deposit, err := cfg.Simulation.Deposit()
	require.NoError(t, err)
	require.Equal(t, uint64(5_000_000), deposit.X.Uint64())
}

func TestInvalid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	bad := cfg.Pool
	bad.MidpointDenominator = 0
	_, err = bad.Params()
	require.ErrorIs(t, err, types.ErrInvalidMidpoint)

	bad = cfg.Pool
	bad.AmountX = "1.5"
	_, err = bad.CreatePoolRequest()
	require.ErrorIs(t, err, types.ErrInvalidTransaction)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
