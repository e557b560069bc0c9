package geometry

import (
	"errors"
	"sort"

	"cosmossdk.io/math"

	"github.com/orbital-amm/orbital/curve"
	"github.com/orbital-amm/orbital/mathutil"
	"github.com/orbital-amm/orbital/types"
)

var decHalf = math.LegacyNewDecWithPrec(5, 1)

// binaryScanThreshold is the tick count above which the crossing search
// narrows the candidate window by binary search instead of scanning the
// whole set.
const binaryScanThreshold = 16

// Crossing reports the nearest active boundary strictly ahead on a trade
// path.
type Crossing struct {
	Found     bool
	TickIndex int
	// AmountIn is the input the current region absorbs before the path
	// reaches the boundary, in asset-in units at full precision.
	AmountIn math.LegacyDec
}

// DistanceToBoundary finds the first active tick plane the trade path
// crosses when amountIn flows into assetIn and out of assetOut.
//
// Along the path only the pair coordinates move, so the plane-sum is
// x_in + x_out plus a fixed remainder. The pair sum rises until the two
// coordinates meet and falls afterwards, which means a single plane can be
// crossed at up to two input levels; every candidate strictly ahead of the
// current point competes, the smallest absorbed input wins, and ties
// resolve to the lowest boundary constant. A point already sitting on a
// plane absorbs nothing further there, so the search skips candidates
// within relative tolerance of the current coordinate.
//
// Only planes inside the pair's reachable sum band can intersect the path.
// Ticks are sorted by constant, so for small sets the scan is linear and
// past binaryScanThreshold the band's window is located by binary search;
// the per-tick root checks stay authoritative either way.
func DistanceToBoundary(pool *types.PoolState, cv curve.Curve, effective []math.LegacyDec, constant math.LegacyDec, assetIn, assetOut int) (Crossing, error) {
	none := Crossing{Found: false, TickIndex: -1}

	if len(effective) != pool.Dimension {
		return none, types.ErrDimensionMismatch.Wrapf(
			"point has %d coordinates, pool dimension is %d", len(effective), pool.Dimension)
	}
	if assetIn < 0 || assetIn >= len(effective) || assetOut < 0 || assetOut >= len(effective) || assetIn == assetOut {
		return none, types.ErrInvalidTradeParams.Wrapf("asset pair (%d, %d) invalid for dimension %d", assetIn, assetOut, pool.Dimension)
	}
	if pool.ActiveTickCount() == 0 {
		return none, nil
	}

	// Split the state into the moving pair and the fixed remainder.
	fixed := make([]math.LegacyDec, len(effective))
	copy(fixed, effective)
	fixed[assetIn] = math.LegacyZeroDec()
	fixed[assetOut] = math.LegacyZeroDec()

	fixedConstraint, err := cv.Constant(fixed)
	if err != nil {
		return none, err
	}
	pairBudget := constant.Sub(fixedConstraint)
	if !pairBudget.IsPositive() {
		return none, nil
	}
	fixedPlaneSum, err := mathutil.Sum(fixed)
	if err != nil {
		return none, wrapMath(err, "fixed plane sum")
	}

	xCur := effective[assetIn]
	epsilon := mathutil.DefaultTolerance()
	if xCur.GT(math.LegacyOneDec()) {
		epsilon = epsilon.Mul(xCur)
	}

	// The pair plane-sum peaks where the two coordinates meet; planes above
	// that peak (or behind the fixed remainder) never intersect the path.
	var peakSum math.LegacyDec
	switch cv.Kind() {
	case types.CurveSphere:
		peakSum, err = pairBudget.MulInt64(2).ApproxSqrt()
		if err != nil {
			return none, types.ErrConvergenceFailure.Wrapf("pair peak: %v", err)
		}
	case types.CurveSuperellipse:
		peak, err := mathutil.Root(pairBudget.Mul(decHalf), pool.ShapeU)
		if err != nil {
			return none, wrapMath(err, "pair peak")
		}
		peakSum = peak.MulInt64(2)
	default:
		return none, types.ErrInvalidCurve.Wrapf("unsupported curve type %d", cv.Kind())
	}

	sqrtDim, err := math.LegacyNewDec(int64(pool.Dimension)).ApproxSqrt()
	if err != nil {
		return none, types.ErrConvergenceFailure.Wrapf("sqrt(%d): %v", pool.Dimension, err)
	}

	scanLo, scanHi := 0, len(pool.Ticks)
	if len(pool.Ticks) >= binaryScanThreshold {
		// Widen the band by the tolerance so rounding in the peak estimate
		// can only admit extra candidates, never drop a real one.
		slack := mathutil.DefaultTolerance()
		if peakSum.GT(math.LegacyOneDec()) {
			slack = slack.Mul(peakSum)
		}
		hiBound := fixedPlaneSum.Add(peakSum).Add(slack)
		scanLo = sort.Search(len(pool.Ticks), func(i int) bool {
			return math.LegacyNewDecFromInt(pool.Ticks[i].Constant).Mul(sqrtDim).GT(fixedPlaneSum)
		})
		scanHi = sort.Search(len(pool.Ticks), func(i int) bool {
			return math.LegacyNewDecFromInt(pool.Ticks[i].Constant).Mul(sqrtDim).GT(hiBound)
		})
	}

	best := none
	bestAhead := math.LegacyZeroDec()
	for i := scanLo; i < scanHi; i++ {
		tick := pool.Ticks[i]
		if !tick.Active {
			continue
		}
		plane := math.LegacyNewDecFromInt(tick.Constant).Mul(sqrtDim)
		pairTarget := plane.Sub(fixedPlaneSum)
		if !pairTarget.IsPositive() {
			continue
		}

		var roots []math.LegacyDec
		switch cv.Kind() {
		case types.CurveSphere:
			roots, err = sphereCrossings(pairBudget, pairTarget)
		case types.CurveSuperellipse:
			roots, err = superellipseCrossings(pairBudget, pairTarget, pool.ShapeU)
		default:
			return none, types.ErrInvalidCurve.Wrapf("unsupported curve type %d", cv.Kind())
		}
		if err != nil {
			return none, err
		}

		for _, root := range roots {
			ahead := root.Sub(xCur)
			if ahead.LTE(epsilon) {
				continue
			}
			if pairTarget.Sub(root).IsNegative() {
				// The other pair coordinate would be negative there; the
				// path exhausts before reaching this intersection.
				continue
			}
			if !best.Found || ahead.LT(bestAhead) {
				best = Crossing{Found: true, TickIndex: i, AmountIn: ahead}
				bestAhead = ahead
			}
		}
	}
	return best, nil
}

// sphereCrossings solves x_in + x_out = target on x_in^2 + x_out^2 =
// budget. The crossing coordinates are the roots of
// 2z^2 - 2*target*z + target^2 - budget = 0.
func sphereCrossings(pairBudget, pairTarget math.LegacyDec) ([]math.LegacyDec, error) {
	targetSq, err := mathutil.SafeDecMul(pairTarget, pairTarget)
	if err != nil {
		return nil, wrapMath(err, "crossing target square")
	}
	disc := pairBudget.MulInt64(2).Sub(targetSq)
	if disc.IsNegative() {
		return nil, nil
	}
	sqrtDisc, err := disc.ApproxSqrt()
	if err != nil {
		return nil, types.ErrConvergenceFailure.Wrapf("crossing discriminant: %v", err)
	}
	lo := pairTarget.Sub(sqrtDisc).Mul(decHalf)
	if disc.IsZero() {
		return []math.LegacyDec{lo}, nil
	}
	hi := pairTarget.Add(sqrtDisc).Mul(decHalf)
	return []math.LegacyDec{lo, hi}, nil
}

// superellipseCrossings solves x_in + x_out = target on
// x_in^u + x_out^u = budget by bisecting each monotone leg of the pair
// sum, which peaks where the coordinates meet at (budget/2)^(1/u).
func superellipseCrossings(pairBudget, pairTarget, shapeU math.LegacyDec) ([]math.LegacyDec, error) {
	endSum, err := mathutil.Root(pairBudget, shapeU)
	if err != nil {
		return nil, wrapMath(err, "crossing endpoint")
	}
	peak, err := mathutil.Root(pairBudget.Mul(decHalf), shapeU)
	if err != nil {
		return nil, wrapMath(err, "crossing peak")
	}
	peakSum := peak.MulInt64(2)

	// Below the endpoint sum the plane never meets the path; above the
	// peak sum it sits beyond the reachable range.
	if pairTarget.LTE(endSum) || pairTarget.GT(peakSum) {
		return nil, nil
	}

	rise, err := bisectPlaneSum(pairBudget, shapeU, pairTarget, math.LegacyZeroDec(), peak, true)
	if err != nil {
		return nil, err
	}
	fall, err := bisectPlaneSum(pairBudget, shapeU, pairTarget, peak, endSum, false)
	if err != nil {
		return nil, err
	}
	return []math.LegacyDec{rise, fall}, nil
}

// bisectPlaneSum finds x with pairPlaneSum(x) = target on a leg where the
// sum is monotone. The loop always runs MaxIterations halvings, narrowing
// the bracket to well below the solver tolerance.
func bisectPlaneSum(pairBudget, shapeU, target, lo, hi math.LegacyDec, rising bool) (math.LegacyDec, error) {
	for i := 0; i < mathutil.MaxIterations; i++ {
		mid := lo.Add(hi).Mul(decHalf)
		sum, err := pairPlaneSum(pairBudget, shapeU, mid)
		if err != nil {
			return math.LegacyDec{}, err
		}
		if sum.LT(target) == rising {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo.Add(hi).Mul(decHalf), nil
}

// pairPlaneSum evaluates x + (budget - x^u)^(1/u), the pair's plane-sum
// at in-coordinate x.
func pairPlaneSum(pairBudget, shapeU, x math.LegacyDec) (math.LegacyDec, error) {
	pow, err := mathutil.Pow(x, shapeU)
	if err != nil {
		return math.LegacyDec{}, wrapMath(err, "pair power")
	}
	residual := pairBudget.Sub(pow)
	if residual.IsNegative() {
		residual = math.LegacyZeroDec()
	}
	other, err := mathutil.Root(residual, shapeU)
	if err != nil {
		return math.LegacyDec{}, wrapMath(err, "pair root")
	}
	return x.Add(other), nil
}

// wrapMath maps a mathutil sentinel onto the registered error taxonomy.
func wrapMath(err error, op string) error {
	switch {
	case errors.Is(err, mathutil.ErrDimensionMismatch):
		return types.ErrDimensionMismatch.Wrapf("%s: %v", op, err)
	case errors.Is(err, mathutil.ErrDivisionByZero):
		return types.ErrDivisionByZero.Wrapf("%s: %v", op, err)
	case errors.Is(err, mathutil.ErrNegativeInput):
		return types.ErrInvalidTradeParams.Wrapf("%s: %v", op, err)
	default:
		return types.ErrOverflow.Wrapf("%s: %v", op, err)
	}
}
