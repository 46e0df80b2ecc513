package pool

import (
	"github.com/ftchann/stableswap-simulator/lib/types"
)

func (p *Pool) isAdmin(caller types.Principal) bool {
	return p.auth != nil && p.auth.IsAdmin(caller)
}

// admin runs fn under the write lock for an admin caller on an initialized pool.
func (p *Pool) admin(caller types.Principal, op string, fn func(s *state) error) error {
	return p.mutate(func(s *state) error {
		if err := requireInitialized(s); err != nil {
			return err
		}
		if !p.isAdmin(caller) {
			return types.ErrUnauthorized.Wrapf("%q cannot %s", caller, op)
		}
		return fn(s)
	})
}

// midpointAdmin also accepts the pool's midpoint manager.
func (p *Pool) midpointAdmin(caller types.Principal, op string, fn func(s *state) error) error {
	return p.mutate(func(s *state) error {
		if err := requireInitialized(s); err != nil {
			return err
		}
		manager := s.midpointManager != "" && s.midpointManager == caller
		if !manager && !p.isAdmin(caller) {
			return types.ErrUnauthorized.Wrapf("%q cannot %s", caller, op)
		}
		if err := fn(s); err != nil {
			return err
		}
		return s.params.Midpoint.Validate()
	})
}

func (p *Pool) SetAmplificationCoefficient(caller types.Principal, coefficient uint64) error {
	return p.admin(caller, "set amplification", func(s *state) error {
		a := s.params.Amplification
		a.Coefficient = coefficient
		if err := a.Validate(); err != nil {
			return err
		}
		s.params.Amplification = a
		return nil
	})
}

func (p *Pool) SetConvergenceThreshold(caller types.Principal, threshold uint64) error {
	return p.admin(caller, "set convergence threshold", func(s *state) error {
		a := s.params.Amplification
		a.ConvergenceThreshold = threshold
		if err := a.Validate(); err != nil {
			return err
		}
		s.params.Amplification = a
		return nil
	})
}

// SetMidpoint sets the midpoint numerator.
func (p *Pool) SetMidpoint(caller types.Principal, numerator uint64) error {
	return p.midpointAdmin(caller, "set midpoint", func(s *state) error {
		s.params.Midpoint.Numerator = numerator
		return nil
	})
}

// SetMidpointFactor sets the midpoint denominator.
func (p *Pool) SetMidpointFactor(caller types.Principal, denominator uint64) error {
	return p.midpointAdmin(caller, "set midpoint factor", func(s *state) error {
		s.params.Midpoint.Denominator = denominator
		return nil
	})
}

func (p *Pool) SetMidpointReversed(caller types.Principal, reversed bool) error {
	return p.midpointAdmin(caller, "set midpoint reversed", func(s *state) error {
		s.params.Midpoint.Reversed = reversed
		return nil
	})
}

func (p *Pool) SetMidpointManager(caller types.Principal, manager types.Principal) error {
	return p.admin(caller, "set midpoint manager", func(s *state) error {
		s.midpointManager = manager
		return nil
	})
}

func (p *Pool) setSwapFees(caller types.Principal, asset types.Asset, protocol, provider uint64) error {
	return p.admin(caller, "set "+asset.String()+" fees", func(s *state) error {
		fees, err := s.params.Fees.WithSwapFees(asset, protocol, provider)
		if err != nil {
			return err
		}
		s.params.Fees = fees
		return nil
	})
}

// SetXFees sets the fees charged when X is sold.
func (p *Pool) SetXFees(caller types.Principal, protocol, provider uint64) error {
	return p.setSwapFees(caller, types.AssetX, protocol, provider)
}

// SetYFees sets the fees charged when Y is sold.
func (p *Pool) SetYFees(caller types.Principal, protocol, provider uint64) error {
	return p.setSwapFees(caller, types.AssetY, protocol, provider)
}

func (p *Pool) SetLiquidityFee(caller types.Principal, fee uint64) error {
	return p.admin(caller, "set liquidity fee", func(s *state) error {
		fees := s.params.Fees
		fees.LiquidityFee = fee
		if err := fees.Validate(); err != nil {
			return err
		}
		s.params.Fees = fees
		return nil
	})
}

func (p *Pool) SetFeeAddress(caller types.Principal, address types.Principal) error {
	return p.admin(caller, "set fee address", func(s *state) error {
		s.feeAddress = address
		return nil
	})
}

// SetPoolStatus toggles between Active and Paused.
func (p *Pool) SetPoolStatus(caller types.Principal, status Status) error {
	return p.admin(caller, "set pool status", func(s *state) error {
		if status != Active && status != Paused {
			return types.ErrInvalidPoolStatus.Wrapf("cannot move to %s", status)
		}
		s.status = status
		return nil
	})
}

func (p *Pool) SetPoolURI(caller types.Principal, uri string) error {
	return p.admin(caller, "set pool uri", func(s *state) error {
		s.uri = uri
		return nil
	})
}

