package types

import (
	"errors"
	"fmt"

	sdkerrors "cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrInvalidDimension      = sdkerrors.Register(ModuleName, 1, "invalid pool dimension")
	ErrDimensionMismatch     = sdkerrors.Register(ModuleName, 2, "reserve dimension mismatch")
	ErrInvalidTradeParams    = sdkerrors.Register(ModuleName, 3, "invalid trade parameters")
	ErrInsufficientLiquidity = sdkerrors.Register(ModuleName, 4, "insufficient liquidity in pool")
	ErrOverflow              = sdkerrors.Register(ModuleName, 5, "arithmetic overflow")
	ErrUnderflow             = sdkerrors.Register(ModuleName, 6, "arithmetic underflow")
	ErrDivisionByZero        = sdkerrors.Register(ModuleName, 7, "division by zero")
	ErrSlippageExceeded      = sdkerrors.Register(ModuleName, 8, "output amount less than minimum required")
	ErrInvariantViolation    = sdkerrors.Register(ModuleName, 9, "pool invariant violated")
	ErrInvalidPoolState      = sdkerrors.Register(ModuleName, 10, "invalid pool state")
	ErrInvalidTick           = sdkerrors.Register(ModuleName, 11, "invalid tick configuration")
	ErrTradeTooLarge         = sdkerrors.Register(ModuleName, 12, "trade size exceeds pool limit")
	ErrPriceImpactTooHigh    = sdkerrors.Register(ModuleName, 13, "price impact exceeds maximum")
	ErrConvergenceFailure    = sdkerrors.Register(ModuleName, 14, "numeric approximation did not converge")
	ErrInvalidParams         = sdkerrors.Register(ModuleName, 15, "invalid module parameters")
	ErrInsufficientShares    = sdkerrors.Register(ModuleName, 16, "insufficient liquidity shares")
	ErrInvalidCurve          = sdkerrors.Register(ModuleName, 17, "invalid curve configuration")
)

// RecoverySuggestions maps sentinel errors to operator-facing guidance.
// Callers surface these at the system boundary so integrators can
// distinguish expected conditions from internal faults.
var RecoverySuggestions = map[error]string{
	ErrInvalidDimension:      "Check that the pool dimension is between 2 and 1024 and matches the reserve vector length.",
	ErrDimensionMismatch:     "Ensure all reserve vectors passed to an operation share the pool's dimension.",
	ErrInvalidTradeParams:    "Verify asset indices are in range, distinct, and the input amount is positive.",
	ErrInsufficientLiquidity: "Reduce the trade size or wait for liquidity providers to deepen the pool.",
	ErrOverflow:              "Reduce the operand magnitudes; split the operation into smaller amounts.",
	ErrUnderflow:             "Check that withdrawals and subtractions do not exceed available balances.",
	ErrDivisionByZero:        "Verify pool reserves are positive before querying prices or quotes.",
	ErrSlippageExceeded:      "Increase the slippage tolerance or split the trade into smaller pieces.",
	ErrInvariantViolation:    "Internal fault: capture the pool state and report it; do not retry the operation.",
	ErrInvalidPoolState:      "Query the pool state and verify reserves, shares, and ticks are consistent.",
	ErrInvalidTick:           "Ensure tick boundary constants are unique, sorted, and liquidity depths are non-negative.",
	ErrTradeTooLarge:         "Split the trade into smaller pieces; single trades are capped relative to pool depth.",
	ErrPriceImpactTooHigh:    "Reduce the trade size to stay within the configured price impact ceiling.",
	ErrConvergenceFailure:    "Internal fault: check curve parameters; report reproducible inputs.",
	ErrInvalidParams:         "Review fee, tolerance, and limit parameters against their documented ranges.",
	ErrInsufficientShares:    "Check the share balance; withdrawals cannot exceed shares held.",
	ErrInvalidCurve:          "Use a supported curve type and a shape parameter u >= 2.",
}

// recoverable marks the conditions a caller can act on without operator
// intervention. Everything else is treated as an internal fault.
var recoverable = map[error]bool{
	ErrInsufficientLiquidity: true,
	ErrSlippageExceeded:      true,
	ErrTradeTooLarge:         true,
	ErrPriceImpactTooHigh:    true,
	ErrInvalidTradeParams:    true,
}

// ErrorWithRecovery pairs an error with its recovery suggestion.
type ErrorWithRecovery struct {
	Err      error
	Recovery string
}

// Error implements the error interface.
func (e *ErrorWithRecovery) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ErrorWithRecovery) Unwrap() error {
	return e.Err
}

// WrapWithRecovery wraps err with a formatted message and attaches the
// registered recovery suggestion when one exists for the sentinel.
func WrapWithRecovery(err error, format string, args ...interface{}) error {
	wrapped := sdkerrors.Wrapf(err, format, args...)

	if suggestion, ok := RecoverySuggestions[err]; ok {
		return &ErrorWithRecovery{
			Err:      wrapped,
			Recovery: suggestion,
		}
	}

	return wrapped
}

// GetRecoverySuggestion walks the wrap chain and returns the suggestion for
// the first registered sentinel it finds.
func GetRecoverySuggestion(err error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if suggestion, ok := RecoverySuggestions[e]; ok {
			return suggestion
		}
	}
	return "No recovery suggestion available. Check error message for details."
}

// IsRecoverable reports whether the error is an expected condition the
// caller can resolve (resize the trade, raise tolerance) rather than an
// internal fault.
func IsRecoverable(err error) bool {
	for sentinel, ok := range recoverable {
		if ok && errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// FormatInvariantBreach renders a uniform message for invariant failures.
func FormatInvariantBreach(name, detail string) string {
	return fmt.Sprintf("%s invariant breached: %s", name, detail)
}
