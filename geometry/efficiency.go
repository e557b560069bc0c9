package geometry

import (
	"cosmossdk.io/math"

	"github.com/orbital-amm/orbital/mathutil"
	"github.com/orbital-amm/orbital/types"
)

// CapitalEfficiency returns max/(max - min) over the range a single
// reserve coordinate spans on the tick's boundary, the multiplier by
// which the tick's concentration improves effective depth versus
// full-range liquidity. Reporting only; swap math never consults it.
func CapitalEfficiency(pool *types.PoolState, tick types.Tick) (math.LegacyDec, error) {
	minReserve, maxReserve, err := ReserveRange(pool, tick)
	if err != nil {
		return math.LegacyDec{}, err
	}
	width := maxReserve.Sub(minReserve)
	if !width.IsPositive() {
		return math.LegacyDec{}, types.ErrInvalidTick.Wrapf(
			"degenerate reserve range at boundary constant %s", tick.Constant)
	}
	efficiency, err := mathutil.SafeDecQuo(maxReserve, width)
	if err != nil {
		return math.LegacyDec{}, wrapMath(err, "efficiency ratio")
	}
	return efficiency, nil
}

// ReserveRange computes the extreme values one reserve coordinate takes
// on the intersection of the pool's curve with the tick plane. Extremes
// are evaluated on the symmetric slice (all remaining coordinates equal)
// and clamped to the non-negative orthant.
func ReserveRange(pool *types.PoolState, tick types.Tick) (minReserve, maxReserve math.LegacyDec, err error) {
	plane, err := tick.PlaneValue(pool.Dimension)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	switch pool.Curve {
	case types.CurveSphere:
		return sphereReserveRange(pool.Dimension, pool.InvariantK, plane)
	case types.CurveSuperellipse:
		return superellipseReserveRange(pool.Dimension, pool.InvariantK, plane, pool.ShapeU)
	default:
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrInvalidCurve.Wrapf("unsupported curve type %d", pool.Curve)
	}
}

// sphereReserveRange solves the slice extremes in closed form: with
// plane-sum P and constant R^2 over N assets, the coordinate extremes are
// (P +- sqrt((N-1)(N*R^2 - P^2))) / N.
func sphereReserveRange(dim int, rSquared, plane math.LegacyDec) (math.LegacyDec, math.LegacyDec, error) {
	n := math.LegacyNewDec(int64(dim))
	planeSq, err := mathutil.SafeDecMul(plane, plane)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, wrapMath(err, "plane square")
	}
	nrSquared, err := mathutil.SafeDecMul(n, rSquared)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, wrapMath(err, "curve bound")
	}
	gap := nrSquared.Sub(planeSq)
	if gap.IsNegative() {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrInvalidTick.Wrapf(
			"boundary plane %s does not intersect the curve", plane)
	}
	disc, err := mathutil.SafeDecMul(math.LegacyNewDec(int64(dim-1)), gap)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, wrapMath(err, "discriminant")
	}
	sqrtDisc, err := disc.ApproxSqrt()
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrConvergenceFailure.Wrapf("range discriminant: %v", err)
	}

	maxReserve := plane.Add(sqrtDisc).Quo(n)
	minReserve := plane.Sub(sqrtDisc).Quo(n)
	mn, mx := clampRange(minReserve, maxReserve, plane)
	return mn, mx, nil
}

// superellipseReserveRange solves the slice extremes by bisection of
// f(t) = t^u + (P-t)^u / (N-1)^(u-1) - K, which is decreasing below the
// equal point t = P/N and increasing above it.
func superellipseReserveRange(dim int, k, plane, shapeU math.LegacyDec) (math.LegacyDec, math.LegacyDec, error) {
	n := math.LegacyNewDec(int64(dim))
	othersPow, err := mathutil.Pow(math.LegacyNewDec(int64(dim-1)), shapeU.Sub(math.LegacyOneDec()))
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, wrapMath(err, "slice scale")
	}

	f := func(t math.LegacyDec) (math.LegacyDec, error) {
		own, err := mathutil.Pow(t, shapeU)
		if err != nil {
			return math.LegacyDec{}, wrapMath(err, "slice own term")
		}
		rest, err := mathutil.Pow(plane.Sub(t), shapeU)
		if err != nil {
			return math.LegacyDec{}, wrapMath(err, "slice rest term")
		}
		shared, err := mathutil.SafeDecQuo(rest, othersPow)
		if err != nil {
			return math.LegacyDec{}, wrapMath(err, "slice shared term")
		}
		return own.Add(shared).Sub(k), nil
	}

	equal := plane.Quo(n)
	atEqual, err := f(equal)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if atEqual.IsPositive() {
		return math.LegacyDec{}, math.LegacyDec{}, types.ErrInvalidTick.Wrapf(
			"boundary plane %s does not intersect the curve", plane)
	}
	atVertex, err := f(plane)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if atVertex.IsNegative() {
		// The whole plane simplex sits inside the curve; the boundary
		// never binds, so the range spans the full simplex edge.
		return math.LegacyZeroDec(), plane, nil
	}

	maxReserve, err := bisectRoot(f, equal, plane, true)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}

	minReserve := math.LegacyZeroDec()
	atZero, err := f(math.LegacyZeroDec())
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if !atZero.IsNegative() {
		minReserve, err = bisectRoot(f, math.LegacyZeroDec(), equal, false)
		if err != nil {
			return math.LegacyDec{}, math.LegacyDec{}, err
		}
	}
	mn, mx := clampRange(minReserve, maxReserve, plane)
	return mn, mx, nil
}

// clampRange restricts slice extremes to the orthant face [0, plane].
func clampRange(minReserve, maxReserve, plane math.LegacyDec) (math.LegacyDec, math.LegacyDec) {
	if minReserve.IsNegative() {
		minReserve = math.LegacyZeroDec()
	}
	if maxReserve.GT(plane) {
		maxReserve = plane
	}
	return minReserve, maxReserve
}

// bisectRoot finds a zero of f on a monotone bracket with a fixed
// iteration budget.
func bisectRoot(f func(math.LegacyDec) (math.LegacyDec, error), lo, hi math.LegacyDec, rising bool) (math.LegacyDec, error) {
	for i := 0; i < mathutil.MaxIterations; i++ {
		mid := lo.Add(hi).Mul(decHalf)
		v, err := f(mid)
		if err != nil {
			return math.LegacyDec{}, err
		}
		if v.IsNegative() == rising {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo.Add(hi).Mul(decHalf), nil
}
