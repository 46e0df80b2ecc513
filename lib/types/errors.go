package types

import (
	"cosmossdk.io/errors"
)

// ModuleName is the codespace of every engine error.
const ModuleName = "stableswap"

// Arithmetic errors
var (
	ErrArithmeticOverflow = errors.Register(ModuleName, 2, "arithmetic overflow")
	ErrDivisionByZero     = errors.Register(ModuleName, 3, "division by zero")
)

// Configuration errors
var (
	ErrInvalidMidpoint             = errors.Register(ModuleName, 10, "invalid midpoint")
	ErrInvalidAmplification        = errors.Register(ModuleName, 11, "invalid amplification coefficient")
	ErrInvalidConvergenceThreshold = errors.Register(ModuleName, 12, "invalid convergence threshold")
	ErrInvalidFee                  = errors.Register(ModuleName, 13, "invalid fee")
	ErrInvalidMinimumShares        = errors.Register(ModuleName, 14, "invalid minimum shares")
)

// Solver errors
var (
	ErrConvergenceFailure = errors.Register(ModuleName, 20, "invariant did not converge")
	ErrEmptyReserve       = errors.Register(ModuleName, 21, "reserve balance is zero")
)

// Slippage and amount errors
var (
	ErrZeroAmount                  = errors.Register(ModuleName, 30, "amount cannot be zero")
	ErrInsufficientOutput          = errors.Register(ModuleName, 31, "output amount less than minimum required")
	ErrInsufficientLiquidityMinted = errors.Register(ModuleName, 32, "insufficient liquidity minted")
	ErrInsufficientWithdrawal      = errors.Register(ModuleName, 33, "withdrawal amount less than minimum required")
	ErrExcessiveBurn               = errors.Register(ModuleName, 34, "lp burn exceeds maximum")
	ErrBelowMinimumShares          = errors.Register(ModuleName, 35, "total shares below minimum")
)

// Access control errors
var (
	ErrDuplicateAdmin       = errors.Register(ModuleName, 40, "admin already exists")
	ErrNotAnAdmin           = errors.Register(ModuleName, 41, "principal is not an admin")
	ErrAdminLimitReached    = errors.Register(ModuleName, 42, "admin limit reached")
	ErrCannotRemoveDeployer = errors.Register(ModuleName, 43, "cannot remove deployer")
	ErrUnauthorized         = errors.Register(ModuleName, 44, "unauthorized")
)

// Pool state errors
var (
	ErrPoolNotActive          = errors.Register(ModuleName, 50, "pool is not active")
	ErrPoolAlreadyInitialized = errors.Register(ModuleName, 51, "pool already initialized")
	ErrInvalidPoolStatus      = errors.Register(ModuleName, 52, "invalid pool status")
	ErrPoolCreationDisabled   = errors.Register(ModuleName, 53, "public pool creation disabled")
	ErrInvalidAsset           = errors.Register(ModuleName, 54, "invalid asset")
	ErrInvalidTransaction     = errors.Register(ModuleName, 55, "invalid transaction")
)

// Simulation errors
var (
	ErrUnknownStrategy = errors.Register(ModuleName, 60, "unknown strategy")
)
