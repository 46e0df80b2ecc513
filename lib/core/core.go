// Package core owns the protocol admin set and the settings that apply to
// every pool created through it.
package core

import (
	"sync"

	"github.com/ftchann/stableswap-simulator/lib/adminset"
	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/liquidity_amounts"
	"github.com/ftchann/stableswap-simulator/lib/params"
	"github.com/ftchann/stableswap-simulator/lib/pool"
	"github.com/ftchann/stableswap-simulator/lib/types"

	ui "github.com/holiman/uint256"
	"github.com/rs/zerolog"
)

type CreatePoolRequest struct {
	TokenX          string
	TokenY          string
	AmountX         *ui.Int
	AmountY         *ui.Int
	Params          params.Params
	MidpointManager types.Principal
	FeeAddress      types.Principal
	URI             string
}

func (r CreatePoolRequest) Validate() error {
	if r.TokenX == "" || r.TokenY == "" || r.TokenX == r.TokenY {
		return types.ErrInvalidAsset.Wrapf("token pair %q/%q", r.TokenX, r.TokenY)
	}
	if r.AmountX == nil || r.AmountY == nil {
		return types.ErrZeroAmount.Wrap("initial deposit missing")
	}
	return r.Params.Validate()
}

type Core struct {
	mu                 sync.RWMutex
	admins             *adminset.Set
	publicPoolCreation bool
	minimumTotalShares *ui.Int
	minimumBurntShares *ui.Int

	log zerolog.Logger
}

func New(deployer types.Principal, log zerolog.Logger) *Core {
	return &Core{
		admins:             adminset.New(deployer),
		minimumTotalShares: ui.NewInt(cons.DefaultMinimumTotalShares),
		minimumBurntShares: ui.NewInt(cons.DefaultMinimumBurntShares),
		log:                log,
	}
}

// IsAdmin makes Core the authorizer of the pools it creates.
func (c *Core) IsAdmin(p types.Principal) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.admins.IsAdmin(p)
}

func (c *Core) Admins() []types.Principal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.admins.Members()
}

func (c *Core) PublicPoolCreation() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.publicPoolCreation
}

// MinimumShares returns the floors applied to new pools.
func (c *Core) MinimumShares() (total, burnt *ui.Int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.minimumTotalShares.Clone(), c.minimumBurntShares.Clone()
}

// admin runs fn under the write lock when caller is an admin.
func (c *Core) admin(caller types.Principal, op string, fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.admins.IsAdmin(caller) {
		c.log.Warn().Str("caller", string(caller)).Str("op", op).Msg("unauthorized")
		return types.ErrUnauthorized.Wrapf("%q cannot %s", caller, op)
	}
	return fn()
}

func (c *Core) AddAdmin(caller, admin types.Principal) error {
	err := c.admin(caller, "add admin", func() error {
		return c.admins.Add(admin)
	})
	if err != nil {
		return err
	}
	c.log.Info().Str("caller", string(caller)).Str("admin", string(admin)).Msg("admin added")
	return nil
}

func (c *Core) RemoveAdmin(caller, admin types.Principal) error {
	err := c.admin(caller, "remove admin", func() error {
		return c.admins.Remove(admin)
	})
	if err != nil {
		return err
	}
	c.log.Info().Str("caller", string(caller)).Str("admin", string(admin)).Msg("admin removed")
	return nil
}

func (c *Core) SetPublicPoolCreation(caller types.Principal, enabled bool) error {
	err := c.admin(caller, "set public pool creation", func() error {
		c.publicPoolCreation = enabled
		return nil
	})
	if err != nil {
		return err
	}
	c.log.Info().Str("caller", string(caller)).Bool("enabled", enabled).Msg("public pool creation set")
	return nil
}

// SetMinimumShares changes the floors of pools created from now on. Existing
// pools keep theirs.
func (c *Core) SetMinimumShares(caller types.Principal, minimumTotal, minimumBurnt *ui.Int) error {
	err := c.admin(caller, "set minimum shares", func() error {
		if minimumTotal.IsZero() || minimumBurnt.IsZero() || minimumBurnt.Gt(minimumTotal) {
			return types.ErrInvalidMinimumShares.Wrapf("total=%s burnt=%s", minimumTotal.Dec(), minimumBurnt.Dec())
		}
		c.minimumTotalShares = minimumTotal.Clone()
		c.minimumBurntShares = minimumBurnt.Clone()
		return nil
	})
	if err != nil {
		return err
	}
	c.log.Info().
		Str("caller", string(caller)).
		Str("minimum_total", minimumTotal.Dec()).
		Str("minimum_burnt", minimumBurnt.Dec()).
		Msg("minimum shares set")
	return nil
}

// CreatePool builds and funds a pool. The returned result holds the LP
// credited to the caller.
func (c *Core) CreatePool(caller types.Principal, req CreatePoolRequest) (*pool.Pool, *liquidity_amounts.InitialMintResult, error) {
	if !c.PublicPoolCreation() && !c.IsAdmin(caller) {
		return nil, nil, types.ErrPoolCreationDisabled.Wrapf("%q is not an admin", caller)
	}
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	cfg := pool.InitConfig{
		Params:          req.Params,
		MidpointManager: req.MidpointManager,
		FeeAddress:      req.FeeAddress,
		URI:             req.URI,
	}
	cfg.MinimumTotalShares, cfg.MinimumBurntShares = c.MinimumShares()

	p := pool.New(req.TokenX, req.TokenY, c)
	res, err := p.Initialize(cfg, req.AmountX, req.AmountY)
	if err != nil {
		c.log.Warn().Err(err).Str("caller", string(caller)).Str("pair", req.TokenX+"/"+req.TokenY).Msg("pool creation failed")
		return nil, nil, err
	}

	c.log.Info().
		Str("caller", string(caller)).
		Stringer("pool", p.ID()).
		Str("token_x", req.TokenX).
		Str("token_y", req.TokenY).
		Str("minted", res.Minted.Dec()).
		Msg("pool created")
	return p, res, nil
}
