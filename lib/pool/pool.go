package pool

import (
	"encoding/hex"
	"sync"

	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/liquidity_amounts"
	"github.com/ftchann/stableswap-simulator/lib/params"
	"github.com/ftchann/stableswap-simulator/lib/shares"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
	"github.com/zeebo/blake3"
)

// Authorizer decides who may administer a pool.
type Authorizer interface {
	IsAdmin(p types.Principal) bool
}

type PoolID [32]byte

func (id PoolID) String() string {
	return hex.EncodeToString(id[:])
}

// ComputeID hashes the ordered token pair.
func ComputeID(tokenX, tokenY string) PoolID {
	h := blake3.New()
	h.Write([]byte(tokenX))
	h.Write([]byte{0})
	h.Write([]byte(tokenY))

	var id PoolID
	h.Digest().Read(id[:])
	return id
}

type InitConfig struct {
	Params             params.Params
	MidpointManager    types.Principal
	FeeAddress         types.Principal
	URI                string
	MinimumTotalShares *ui.Int
	MinimumBurntShares *ui.Int
}

// DefaultInitConfig uses the default parameters and share floors.
func DefaultInitConfig() InitConfig {
	return InitConfig{
		Params:             params.Default(),
		MinimumTotalShares: ui.NewInt(cons.DefaultMinimumTotalShares),
		MinimumBurntShares: ui.NewInt(cons.DefaultMinimumBurntShares),
	}
}

func (c InitConfig) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if c.MinimumTotalShares == nil || c.MinimumBurntShares == nil || c.MinimumBurntShares.IsZero() || c.MinimumBurntShares.Gt(c.MinimumTotalShares) {
		return types.ErrInvalidMinimumShares.Wrap("need 0 < burnt <= total")
	}
	return nil
}

type state struct {
	status          Status
	reserves        types.Reserves
	supply          *shares.Supply
	params          params.Params
	midpointManager types.Principal
	feeAddress      types.Principal
	uri             string
	protocolFees    types.Reserves
	providerFees    types.Reserves
}

func (s *state) clone() *state {
	return &state{
		status:          s.status,
		reserves:        s.reserves.Clone(),
		supply:          s.supply.Clone(),
		params:          s.params,
		midpointManager: s.midpointManager,
		feeAddress:      s.feeAddress,
		uri:             s.uri,
		protocolFees:    s.protocolFees.Clone(),
		providerFees:    s.providerFees.Clone(),
	}
}

// Pool owns the reserves, LP supply and configuration of one asset pair.
// Reads take a shared lock; every mutation works on a copy of the state and
// swaps it in only when the whole operation succeeded.
type Pool struct {
	TokenX string
	TokenY string

	mu    sync.RWMutex
	id    PoolID
	auth  Authorizer
	state *state
}

func New(tokenX, tokenY string, auth Authorizer) *Pool {
	zero := types.NewReserves(cons.Zero, cons.Zero)
	return &Pool{
		TokenX: tokenX,
		TokenY: tokenY,
		id:     ComputeID(tokenX, tokenY),
		auth:   auth,
		state: &state{
			status:       Uninitialized,
			reserves:     zero,
			supply:       shares.NewSupply(cons.Zero),
			params:       params.Default(),
			protocolFees: zero.Clone(),
			providerFees: zero.Clone(),
		},
	}
}

func (p *Pool) ID() PoolID {
	return p.id
}

// Clone returns an independent pool with the same state and authorizer.
func (p *Pool) Clone() *Pool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &Pool{
		TokenX: p.TokenX,
		TokenY: p.TokenY,
		id:     p.id,
		auth:   p.auth,
		state:  p.state.clone(),
	}
}

// Initialize funds the pool and activates it. It can only succeed once.
func (p *Pool) Initialize(cfg InitConfig, amountX, amountY *ui.Int) (*liquidity_amounts.InitialMintResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var res *liquidity_amounts.InitialMintResult
	err := p.mutate(func(s *state) error {
		if s.status != Uninitialized {
			return types.ErrPoolAlreadyInitialized.Wrapf("pool %s/%s is %s", p.TokenX, p.TokenY, s.status)
		}
		var err error
		res, err = liquidity_amounts.ComputeInitialMint(cfg.Params, amountX, amountY, cfg.MinimumTotalShares, cfg.MinimumBurntShares)
		if err != nil {
			return err
		}
		s.supply = shares.NewSupply(cfg.MinimumTotalShares)
		if err := s.supply.Lock(res.Burnt); err != nil {
			return err
		}
		if err := s.supply.Mint(res.Minted); err != nil {
			return err
		}
		s.reserves = res.NewReserves
		s.params = cfg.Params
		s.midpointManager = cfg.MidpointManager
		s.feeAddress = cfg.FeeAddress
		s.uri = cfg.URI
		s.status = Active
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (p *Pool) mutate(fn func(s *state) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	next := p.state.clone()
	if err := fn(next); err != nil {
		return err
	}
	p.state = next
	return nil
}

func (p *Pool) read(fn func(s *state) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return fn(p.state)
}

func requireActive(s *state) error {
	if s.status != Active {
		return types.ErrPoolNotActive.Wrapf("status %s", s.status)
	}
	return nil
}

func requireInitialized(s *state) error {
	if s.status == Uninitialized {
		return types.ErrPoolNotActive.Wrap("pool is not initialized")
	}
	return nil
}

// Snapshot is a detached copy of the pool state.
type Snapshot struct {
	ID                 PoolID
	TokenX             string
	TokenY             string
	Status             Status
	Reserves           types.Reserves
	Params             params.Params
	TotalShares        *ui.Int
	BurntShares        *ui.Int
	MinimumTotalShares *ui.Int
	MidpointManager    types.Principal
	FeeAddress         types.Principal
	URI                string
	ProtocolFees       types.Reserves
	ProviderFees       types.Reserves
}

func (p *Pool) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := p.state
	return Snapshot{
		ID:                 p.id,
		TokenX:             p.TokenX,
		TokenY:             p.TokenY,
		Status:             s.status,
		Reserves:           s.reserves.Clone(),
		Params:             s.params,
		TotalShares:        s.supply.Total.Clone(),
		BurntShares:        s.supply.Burnt.Clone(),
		MinimumTotalShares: s.supply.MinimumTotal.Clone(),
		MidpointManager:    s.midpointManager,
		FeeAddress:         s.feeAddress,
		URI:                s.uri,
		ProtocolFees:       s.protocolFees.Clone(),
		ProviderFees:       s.providerFees.Clone(),
	}
}

// Invariant returns D for the current reserves.
func (p *Pool) Invariant() (*ui.Int, error) {
	var d *ui.Int
	err := p.read(func(s *state) error {
		var err error
		d, err = s.params.Invariant(s.reserves)
		return err
	})
	return d, err
}
