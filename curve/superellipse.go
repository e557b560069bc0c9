package curve

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/orbital-amm/orbital/mathutil"
	"github.com/orbital-amm/orbital/types"
)

var (
	minShapeU = math.LegacyNewDec(2)
	maxShapeU = math.LegacyNewDec(10)

	// limitShapeU is the validity ceiling; maxShapeU above is only where
	// the volatility mapping saturates.
	limitShapeU = math.LegacyNewDec(types.MaxShapeU)

	// shapeVolSensitivity controls how fast the optimal exponent decays
	// toward the sphere as realized volatility grows.
	shapeVolSensitivity = math.LegacyNewDec(20)
)

// Superellipse prices swaps on the constraint sum(|x_i|^u) = K with
// u >= 2. Higher exponents flatten the curve around the equal-price point,
// concentrating liquidity for tightly correlated asset sets; u = 2 reduces
// to the sphere. Fractional exponents (u = 2.5) are supported through the
// bounded-iteration power and root approximations.
type Superellipse struct {
	u math.LegacyDec
}

// NewSuperellipse returns a superellipse curve with the given shape
// exponent.
func NewSuperellipse(u math.LegacyDec) (Superellipse, error) {
	if u.IsNil() || u.LT(minShapeU) {
		return Superellipse{}, types.ErrInvalidCurve.Wrapf("shape parameter must be >= %s, got %s", minShapeU, u)
	}
	if u.GT(limitShapeU) {
		return Superellipse{}, types.ErrInvalidCurve.Wrapf("shape parameter must be <= %s, got %s", limitShapeU, u)
	}
	return Superellipse{u: u}, nil
}

// ShapeU returns the configured exponent.
func (s Superellipse) ShapeU() math.LegacyDec { return s.u }

// Kind implements Curve.
func (Superellipse) Kind() types.CurveType { return types.CurveSuperellipse }

// Constant returns K, the sum of effective reserves raised to u.
func (s Superellipse) Constant(effective []math.LegacyDec) (math.LegacyDec, error) {
	k, err := mathutil.PowSum(effective, s.u)
	if err != nil {
		return math.LegacyDec{}, wrapMath(err, "power sum")
	}
	return k, nil
}

// SwapOutput implements Curve. Same shape as the sphere solve with the
// square and square root generalized to u and its inverse.
func (s Superellipse) SwapOutput(effective []math.LegacyDec, constant math.LegacyDec, assetIn, assetOut int, amountIn math.LegacyDec) (math.LegacyDec, error) {
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

	newOut, err := mathutil.Root(radicand, s.u)
	if err != nil {
		return math.LegacyDec{}, wrapMath(err, "output solve")
	}

	amountOut := effective[assetOut].Sub(newOut)
	if amountOut.IsNegative() {
		amountOut = math.LegacyZeroDec()
	}
	return amountOut, nil
}

// InstantaneousPrice returns (x_in / x_out)^(u-1), the gradient ratio of
// the superellipse constraint at the current point.
func (s Superellipse) InstantaneousPrice(effective []math.LegacyDec, assetIn, assetOut int) (math.LegacyDec, error) {
	if err := validatePair(effective, assetIn, assetOut); err != nil {
		return math.LegacyDec{}, err
	}
	if effective[assetOut].IsZero() {
		return math.LegacyDec{}, types.ErrDivisionByZero.Wrapf("output reserve %d is zero", assetOut)
	}
	ratio, err := mathutil.SafeDecQuo(effective[assetIn], effective[assetOut])
	if err != nil {
		return math.LegacyDec{}, wrapMath(err, "reserve ratio")
	}
	price, err := mathutil.Pow(ratio, s.u.Sub(math.LegacyOneDec()))
	if err != nil {
		return math.LegacyDec{}, wrapMath(err, "marginal price")
	}
	return price, nil
}

// VerifyInvariant implements Curve.
func (s Superellipse) VerifyInvariant(effective []math.LegacyDec, constant, tolerance math.LegacyDec) error {
	current, err := s.Constant(effective)
	if err != nil {
		return err
	}
	if !mathutil.ApproxEqual(current, constant, tolerance) {
		return types.ErrInvariantViolation.Wrap(types.FormatInvariantBreach(
			"superellipse",
			fmt.Sprintf("computed K %s vs stored %s, tolerance %s", current, constant, tolerance)))
	}
	return nil
}

// PriceImpact implements Curve.
func (s Superellipse) PriceImpact(effective []math.LegacyDec, constant math.LegacyDec, assetIn, assetOut int, amountIn math.LegacyDec) (math.LegacyDec, error) {
	return priceImpact(s, effective, constant, assetIn, assetOut, amountIn)
}

// OptimalShape maps a realized-volatility estimate to a superellipse
// exponent. Calm asset sets get a high exponent, concentrating liquidity
// at the equal-price point; volatile sets decay toward the sphere. The
// mapping u = 2 + 8 / (1 + 20*vol) is monotonically decreasing in vol and
// bounded to (2, 10]. Deterministic: equal inputs always produce equal
// exponents.
func OptimalShape(volatility math.LegacyDec) math.LegacyDec {
	if volatility.IsNil() || !volatility.IsPositive() {
		return maxShapeU
	}
	denom := math.LegacyOneDec().Add(volatility.Mul(shapeVolSensitivity))
	span := maxShapeU.Sub(minShapeU).Quo(denom)
	return minShapeU.Add(span)
}
