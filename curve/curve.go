// Package curve implements the invariant curves that price swaps: the
// sphere constraint sum(x_i^2) = R^2 and the superellipse constraint
// sum(|x_i|^u) = K with shape parameter u >= 2. Implementations are
// stateless pure functions over an effective reserve vector; they never
// mutate pool state and are safe for concurrent use.
package curve

import (
	"errors"

	"cosmossdk.io/math"

	"github.com/orbital-amm/orbital/mathutil"
	"github.com/orbital-amm/orbital/types"
)

// Curve computes swap outputs, marginal prices, and invariant checks for
// one constraint family. The effective reserve slice is real + virtual,
// expressed as decimals; the constant is R^2 for the sphere and K for the
// superellipse.
type Curve interface {
	// Kind identifies the constraint family.
	Kind() types.CurveType

	// Constant computes the constraint constant from the effective
	// reserves.
	Constant(effective []math.LegacyDec) (math.LegacyDec, error)

	// SwapOutput solves the constraint for the new output coordinate
	// after amountIn is added to assetIn, holding every other coordinate
	// fixed, and returns the amount released. Fails with
	// ErrInsufficientLiquidity when the input would deplete the output
	// coordinate to zero or below.
	SwapOutput(effective []math.LegacyDec, constant math.LegacyDec, assetIn, assetOut int, amountIn math.LegacyDec) (math.LegacyDec, error)

	// InstantaneousPrice returns the marginal rate between the pair at
	// the current point: how much of assetOut one infinitesimal unit of
	// assetIn buys.
	InstantaneousPrice(effective []math.LegacyDec, assetIn, assetOut int) (math.LegacyDec, error)

	// VerifyInvariant recomputes the constant and compares it against the
	// stored value within the relative tolerance. Never uses exact
	// equality; derived quantities carry fixed-point rounding.
	VerifyInvariant(effective []math.LegacyDec, constant, tolerance math.LegacyDec) error

	// PriceImpact quotes amountIn through the curve and returns the
	// relative deviation of the realized output from the zero-impact
	// reference amountIn * InstantaneousPrice.
	PriceImpact(effective []math.LegacyDec, constant math.LegacyDec, assetIn, assetOut int, amountIn math.LegacyDec) (math.LegacyDec, error)
}

// ForPool returns the curve implementation configured for the pool.
func ForPool(pool *types.PoolState) (Curve, error) {
	switch pool.Curve {
	case types.CurveSphere:
		return NewSphere(), nil
	case types.CurveSuperellipse:
		se, err := NewSuperellipse(pool.ShapeU)
		if err != nil {
			return nil, err
		}
		return se, nil
	default:
		return nil, types.ErrInvalidCurve.Wrapf("unsupported curve type %d", pool.Curve)
	}
}

// validatePair checks that the asset indices address two distinct
// coordinates of the effective vector.
func validatePair(effective []math.LegacyDec, assetIn, assetOut int) error {
	if assetIn < 0 || assetIn >= len(effective) {
		return types.ErrInvalidTradeParams.Wrapf("asset in index %d out of range [0, %d)", assetIn, len(effective))
	}
	if assetOut < 0 || assetOut >= len(effective) {
		return types.ErrInvalidTradeParams.Wrapf("asset out index %d out of range [0, %d)", assetOut, len(effective))
	}
	if assetIn == assetOut {
		return types.ErrInvalidTradeParams.Wrapf("asset in and asset out are both %d", assetIn)
	}
	return nil
}

// validateSwapArgs extends validatePair with the input amount check.
func validateSwapArgs(effective []math.LegacyDec, assetIn, assetOut int, amountIn math.LegacyDec) error {
	if err := validatePair(effective, assetIn, assetOut); err != nil {
		return err
	}
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return types.ErrInvalidTradeParams.Wrapf("input amount must be positive, got %s", amountIn)
	}
	return nil
}

// wrapMath maps a mathutil sentinel onto the registered error taxonomy.
func wrapMath(err error, op string) error {
	switch {
	case errors.Is(err, mathutil.ErrDimensionMismatch):
		return types.ErrDimensionMismatch.Wrapf("%s: %v", op, err)
	case errors.Is(err, mathutil.ErrDivisionByZero):
		return types.ErrDivisionByZero.Wrapf("%s: %v", op, err)
	case errors.Is(err, mathutil.ErrUnderflow):
		return types.ErrUnderflow.Wrapf("%s: %v", op, err)
	case errors.Is(err, mathutil.ErrNegativeInput):
		return types.ErrInvalidTradeParams.Wrapf("%s: %v", op, err)
	default:
		return types.ErrOverflow.Wrapf("%s: %v", op, err)
	}
}

// priceImpact implements the shared impact computation for both curves:
// impact = |reference - actual| / reference, with reference the output at
// the pre-trade marginal price.
func priceImpact(c Curve, effective []math.LegacyDec, constant math.LegacyDec, assetIn, assetOut int, amountIn math.LegacyDec) (math.LegacyDec, error) {
	price, err := c.InstantaneousPrice(effective, assetIn, assetOut)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if price.IsZero() {
		return math.LegacyDec{}, types.ErrDivisionByZero.Wrap("zero marginal price")
	}
	reference, err := mathutil.SafeDecMul(amountIn, price)
	if err != nil {
		return math.LegacyDec{}, wrapMath(err, "zero-impact reference")
	}
	actual, err := c.SwapOutput(effective, constant, assetIn, assetOut, amountIn)
	if err != nil {
		return math.LegacyDec{}, err
	}
	impact, err := mathutil.SafeDecQuo(reference.Sub(actual).Abs(), reference)
	if err != nil {
		return math.LegacyDec{}, wrapMath(err, "impact ratio")
	}
	return impact, nil
}

// probeVector copies the effective reserves with the input applied to
// assetIn and the output coordinate zeroed, so a constraint sum over it
// covers exactly the fixed coordinates of the solve.
func probeVector(effective []math.LegacyDec, assetIn, assetOut int, newIn math.LegacyDec) []math.LegacyDec {
	probe := make([]math.LegacyDec, len(effective))
	copy(probe, effective)
	probe[assetIn] = newIn
	probe[assetOut] = math.LegacyZeroDec()
	return probe
}
