package curve

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/orbital-amm/orbital/mathutil"
	"github.com/orbital-amm/orbital/types"
)

// Sphere prices swaps on the constraint sum(x_i^2) = R^2. The solve is
// closed form: one pass to sum the fixed coordinates, one square root.
type Sphere struct{}

// NewSphere returns the sphere curve.
func NewSphere() Sphere { return Sphere{} }

// Kind implements Curve.
func (Sphere) Kind() types.CurveType { return types.CurveSphere }

// Constant returns R^2, the sum of squared effective reserves.
func (Sphere) Constant(effective []math.LegacyDec) (math.LegacyDec, error) {
	rSquared, err := mathutil.Dot(effective, effective)
	if err != nil {
		return math.LegacyDec{}, wrapMath(err, "sum of squares")
	}
	return rSquared, nil
}

// SwapOutput implements Curve.
//
// With x_in raised by amountIn, the constraint pins the output coordinate
// at sqrt(R^2 - sum of the other squares); the released amount is the drop
// of the output coordinate.
func (s Sphere) SwapOutput(effective []math.LegacyDec, constant math.LegacyDec, assetIn, assetOut int, amountIn math.LegacyDec) (math.LegacyDec, error) {
	if err := validateSwapArgs(effective, assetIn, assetOut, amountIn); err != nil {
		return math.LegacyDec{}, err
	}

	newIn := effective[assetIn].Add(amountIn)
	fixedSum, err := s.Constant(probeVector(effective, assetIn, assetOut, newIn))
	if err != nil {
		return math.LegacyDec{}, err
	}

	radicand := constant.Sub(fixedSum)
	if !radicand.IsPositive() {
		return math.LegacyDec{}, types.ErrInsufficientLiquidity.Wrapf(
			"input %s exhausts output reserve %s", amountIn, effective[assetOut])
	}

	newOut, err := radicand.ApproxSqrt()
	if err != nil {
		return math.LegacyDec{}, types.ErrConvergenceFailure.Wrapf("output solve: %v", err)
	}

	amountOut := effective[assetOut].Sub(newOut)
	if amountOut.IsNegative() {
		// Rounding on a dust input; the pool never pays out more than the
		// coordinate drop.
		amountOut = math.LegacyZeroDec()
	}
	return amountOut, nil
}

// InstantaneousPrice returns x_in / x_out, the gradient ratio of the
// sphere constraint at the current point.
func (Sphere) InstantaneousPrice(effective []math.LegacyDec, assetIn, assetOut int) (math.LegacyDec, error) {
	if err := validatePair(effective, assetIn, assetOut); err != nil {
		return math.LegacyDec{}, err
	}
	if effective[assetOut].IsZero() {
		return math.LegacyDec{}, types.ErrDivisionByZero.Wrapf("output reserve %d is zero", assetOut)
	}
	price, err := mathutil.SafeDecQuo(effective[assetIn], effective[assetOut])
	if err != nil {
		return math.LegacyDec{}, wrapMath(err, "marginal price")
	}
	return price, nil
}

// VerifyInvariant implements Curve.
func (s Sphere) VerifyInvariant(effective []math.LegacyDec, constant, tolerance math.LegacyDec) error {
	current, err := s.Constant(effective)
	if err != nil {
		return err
	}
	if !mathutil.ApproxEqual(current, constant, tolerance) {
		return types.ErrInvariantViolation.Wrap(types.FormatInvariantBreach(
			"sphere",
			fmt.Sprintf("computed R^2 %s vs stored %s, tolerance %s", current, constant, tolerance)))
	}
	return nil
}

// PriceImpact implements Curve.
func (s Sphere) PriceImpact(effective []math.LegacyDec, constant math.LegacyDec, assetIn, assetOut int, amountIn math.LegacyDec) (math.LegacyDec, error) {
	return priceImpact(s, effective, constant, assetIn, assetOut, amountIn)
}
