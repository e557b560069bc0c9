// Package mathutil provides deterministic, rounding-explicit fixed-point
// arithmetic for the AMM core: overflow-checked integer operations,
// power and root approximation with bounded iteration counts, and vector
// helpers over reserve-shaped slices.
//
// All decimal values are math.LegacyDec (18 decimal places over a big
// integer). Every approximation here terminates within a fixed iteration
// budget; nothing in this package loops on data-dependent conditions
// without a cap.
package mathutil

import (
	"errors"
	"math/big"

	"cosmossdk.io/math"
)

// Sentinel errors. Callers in upper layers wrap these into their
// registered error taxonomy.
var (
	ErrOverflow          = errors.New("overflow")
	ErrUnderflow         = errors.New("underflow")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrNegativeInput     = errors.New("negative input")
)

const (
	// MaxIterations bounds every Newton-style refinement loop.
	MaxIterations = 64

	// fracBits is the number of binary digits of a fractional exponent
	// consumed by Pow. The residual exponent below 2^-60 keeps the
	// relative error under 1e-12 for bases within [1e-18, 1e18].
	fracBits = 60
)

// DefaultTolerance is the relative convergence tolerance (1e-12 in scaled
// units) used by the iterative approximations.
func DefaultTolerance() math.LegacyDec {
	return math.LegacyNewDecWithPrec(1, 12)
}

// maxInt256 bounds all checked arithmetic, matching the numeric width of
// on-chain balances.
var maxInt256 = new(big.Int).Exp(big.NewInt(2), big.NewInt(256), nil)

// decOne is the raw scale factor of LegacyDec (10^18).
var decScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

func withinWidth(v *big.Int) bool {
	return new(big.Int).Abs(v).Cmp(maxInt256) < 0
}
