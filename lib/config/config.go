// Package config reads simulator settings from a file and STABLESWAP_
// environment variables.
package config

import (
	"fmt"
	"strings"

	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/core"
	"github.com/ftchann/stableswap-simulator/lib/midpoint"
	"github.com/ftchann/stableswap-simulator/lib/params"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
	"github.com/spf13/viper"
)

const EnvPrefix = "STABLESWAP"

type Config struct {
	LogLevel   string           `mapstructure:"log_level"`
	Deployer   string           `mapstructure:"deployer"`
	Pool       PoolConfig       `mapstructure:"pool"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// PoolConfig amounts are decimal strings in minor units.
type PoolConfig struct {
	TokenX               string `mapstructure:"token_x"`
	TokenY               string `mapstructure:"token_y"`
	AmountX              string `mapstructure:"amount_x"`
	AmountY              string `mapstructure:"amount_y"`
	Amplification        uint64 `mapstructure:"amplification"`
	ConvergenceThreshold uint64 `mapstructure:"convergence_threshold"`
	MidpointNumerator    uint64 `mapstructure:"midpoint_numerator"`
	MidpointDenominator  uint64 `mapstructure:"midpoint_denominator"`
	MidpointReversed     bool   `mapstructure:"midpoint_reversed"`
	ProtocolFeeX         uint64 `mapstructure:"protocol_fee_x"`
	ProviderFeeX         uint64 `mapstructure:"provider_fee_x"`
	ProtocolFeeY         uint64 `mapstructure:"protocol_fee_y"`
	ProviderFeeY         uint64 `mapstructure:"provider_fee_y"`
	LiquidityFee         uint64 `mapstructure:"liquidity_fee"`
	MidpointManager      string `mapstructure:"midpoint_manager"`
	FeeAddress           string `mapstructure:"fee_address"`
	URI                  string `mapstructure:"uri"`
}

// SimulationConfig intervals and offsets are in the transactions' time unit.
type SimulationConfig struct {
	Transactions      string   `mapstructure:"transactions"`
	Output            string   `mapstructure:"output"`
	Strategies        []string `mapstructure:"strategies"`
	StartOffset       int      `mapstructure:"start_offset"`
	RebalanceInterval int      `mapstructure:"rebalance_interval"`
	SnapshotInterval  int      `mapstructure:"snapshot_interval"`
	PriceWindow       int      `mapstructure:"price_window"`
	DepositX          string   `mapstructure:"deposit_x"`
	DepositY          string   `mapstructure:"deposit_y"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("deployer", "deployer")

	v.SetDefault("pool.token_x", "X")
	v.SetDefault("pool.token_y", "Y")
	v.SetDefault("pool.amount_x", fmt.Sprint(10_000_000*cons.UnitScale))
	v.SetDefault("pool.amount_y", fmt.Sprint(10_000_000*cons.UnitScale))
	v.SetDefault("pool.amplification", cons.DefaultAmplification)
	v.SetDefault("pool.convergence_threshold", cons.DefaultConvergenceThreshold)
	v.SetDefault("pool.midpoint_numerator", midpoint.Parity.Numerator)
	v.SetDefault("pool.midpoint_denominator", midpoint.Parity.Denominator)
	v.SetDefault("pool.midpoint_reversed", false)
	v.SetDefault("pool.protocol_fee_x", cons.DefaultProtocolFee)
	v.SetDefault("pool.provider_fee_x", cons.DefaultProviderFee)
	v.SetDefault("pool.protocol_fee_y", cons.DefaultProtocolFee)
	v.SetDefault("pool.provider_fee_y", cons.DefaultProviderFee)
	v.SetDefault("pool.liquidity_fee", cons.DefaultLiquidityFee)
	v.SetDefault("pool.midpoint_manager", "")
	v.SetDefault("pool.fee_address", "")
	v.SetDefault("pool.uri", "")

	v.SetDefault("simulation.transactions", "data/trans.json")
	v.SetDefault("simulation.output", "data/result.json")
	v.SetDefault("simulation.strategies", []string{"none", "proportional", "single-sided"})
	v.SetDefault("simulation.start_offset", 0)
	v.SetDefault("simulation.rebalance_interval", 60*60*24)
	v.SetDefault("simulation.snapshot_interval", 60*60)
	v.SetDefault("simulation.price_window", 24)
	v.SetDefault("simulation.deposit_x", fmt.Sprint(100_000*cons.UnitScale))
	v.SetDefault("simulation.deposit_y", fmt.Sprint(100_000*cons.UnitScale))
}

// Load reads path when it is not empty. Environment variables override the
// file, e.g. STABLESWAP_POOL_AMPLIFICATION for pool.amplification.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// ParseAmount parses a decimal amount in minor units.
func ParseAmount(name, s string) (*ui.Int, error) {
	v, err := ui.FromDecimal(strings.TrimSpace(s))
	if err != nil {
		return nil, types.ErrInvalidTransaction.Wrapf("%s %q: %s", name, s, err)
	}
	return v, nil
}

func (c PoolConfig) Params() (params.Params, error) {
	p := params.Params{
		Fees: params.FeeConfig{
			ProtocolFeeX: c.ProtocolFeeX,
			ProviderFeeX: c.ProviderFeeX,
			ProtocolFeeY: c.ProtocolFeeY,
			ProviderFeeY: c.ProviderFeeY,
			LiquidityFee: c.LiquidityFee,
		},
		Amplification: params.AmplificationConfig{
			Coefficient:          c.Amplification,
			ConvergenceThreshold: c.ConvergenceThreshold,
		},
		Midpoint: midpoint.Midpoint{
			Numerator:   c.MidpointNumerator,
			Denominator: c.MidpointDenominator,
			Reversed:    c.MidpointReversed,
		},
	}
	if err := p.Validate(); err != nil {
		return params.Params{}, err
	}
	return p, nil
}

func (c PoolConfig) CreatePoolRequest() (core.CreatePoolRequest, error) {
	p, err := c.Params()
	if err != nil {
		return core.CreatePoolRequest{}, err
	}
	x, err := ParseAmount("pool.amount_x", c.AmountX)
	if err != nil {
		return core.CreatePoolRequest{}, err
	}
	y, err := ParseAmount("pool.amount_y", c.AmountY)
	if err != nil {
		return core.CreatePoolRequest{}, err
	}
	return core.CreatePoolRequest{
		TokenX:          c.TokenX,
		TokenY:          c.TokenY,
		AmountX:         x,
		AmountY:         y,
		Params:          p,
		MidpointManager: types.Principal(c.MidpointManager),
		FeeAddress:      types.Principal(c.FeeAddress),
		URI:             c.URI,
	}, nil
}

// Deposit returns the amounts a strategy starts with.
func (c SimulationConfig) Deposit() (types.Reserves, error) {
	x, err := ParseAmount("simulation.deposit_x", c.DepositX)
	if err != nil {
		return types.Reserves{}, err
	}
	y, err := ParseAmount("simulation.deposit_y", c.DepositY)
	if err != nil {
		return types.Reserves{}, err
	}
	return types.Reserves{X: x, Y: y}, nil
}
