package engine

import (
	"errors"

	"cosmossdk.io/math"

	"github.com/orbital-amm/orbital/curve"
	"github.com/orbital-amm/orbital/mathutil"
	"github.com/orbital-amm/orbital/types"
)

// invariantRadius maps the constraint constant to its linear scale: R for
// the sphere, K^(1/u) for the superellipse. Shares track this radius
// because it is homothety-linear: doubling every reserve doubles it.
// A product-of-reserves mint would exceed the arithmetic width at high
// dimension counts.
func invariantRadius(pool *types.PoolState, constant math.LegacyDec) (math.LegacyDec, error) {
	switch pool.Curve {
	case types.CurveSphere:
		radius, err := constant.ApproxSqrt()
		if err != nil {
			return math.LegacyDec{}, types.ErrConvergenceFailure.Wrapf("radius: %v", err)
		}
		return radius, nil
	case types.CurveSuperellipse:
		radius, err := mathutil.Root(constant, pool.ShapeU)
		if err != nil {
			return math.LegacyDec{}, wrapMathErr(err, "radius")
		}
		return radius, nil
	default:
		return math.LegacyDec{}, types.ErrInvalidCurve.Wrapf("unsupported curve type %d", pool.Curve)
	}
}

// AddLiquidity deposits reserves and mints shares. The first deposit
// mints shares equal to the invariant radius; later deposits mint
// proportionally to the radius growth they cause. The invariant constant
// is re-derived and verified before any mutation is committed.
func (e *Engine) AddLiquidity(pool *types.PoolState, deposits types.ReservePoint) (types.LiquidityShares, error) {
	if len(deposits) != pool.Dimension {
		return math.Int{}, types.ErrDimensionMismatch.Wrapf(
			"deposit has %d coordinates, pool dimension is %d", len(deposits), pool.Dimension)
	}
	if err := deposits.Validate(); err != nil {
		return math.Int{}, err
	}
	if !deposits.HasPositive() {
		return math.Int{}, types.ErrInvalidTradeParams.Wrap("deposit must have at least one positive coordinate")
	}

	cv, err := curve.ForPool(pool)
	if err != nil {
		return math.Int{}, err
	}

	working := pool.Clone()
	working.Reserves, err = working.Reserves.Add(deposits)
	if err != nil {
		return math.Int{}, err
	}

	newConstant, err := cv.Constant(working.Effective())
	if err != nil {
		return math.Int{}, err
	}
	newRadius, err := invariantRadius(working, newConstant)
	if err != nil {
		return math.Int{}, err
	}

	var shares math.Int
	if pool.TotalShares.IsZero() {
		shares = newRadius.TruncateInt()
		minimum := e.params.MinInitialLiquidity
		if pool.FeeTier.MinLiquidity.GT(minimum) {
			minimum = pool.FeeTier.MinLiquidity
		}
		if shares.LT(minimum) {
			return math.Int{}, types.ErrInsufficientLiquidity.Wrapf(
				"initial shares %s below minimum %s", shares, minimum)
		}
	} else {
		oldRadius, err := invariantRadius(pool, pool.InvariantK)
		if err != nil {
			return math.Int{}, err
		}
		if !oldRadius.IsPositive() {
			return math.Int{}, types.ErrInvalidPoolState.Wrap("pool has shares but zero invariant radius")
		}
		growth := newRadius.Sub(oldRadius)
		shares = math.LegacyNewDecFromInt(pool.TotalShares).Mul(growth).Quo(oldRadius).TruncateInt()
		if !shares.IsPositive() {
			return math.Int{}, types.ErrInsufficientLiquidity.Wrap("deposit too small to mint shares")
		}
	}

	working.TotalShares = working.TotalShares.Add(shares)
	working.InvariantK = newConstant
	if err := cv.VerifyInvariant(working.Effective(), working.InvariantK, e.params.InvariantTolerance); err != nil {
		return math.Int{}, err
	}
	if err := working.Validate(); err != nil {
		return math.Int{}, err
	}

	*pool = *working
	e.telemetry.LiquidityEvents.Inc()
	e.logger.Info(types.EventTypeLiquidityAdded,
		types.AttributeKeyShares, shares.String(),
		types.AttributeKeyTotalShares, pool.TotalShares.String(),
		types.AttributeKeyInvariantK, pool.InvariantK.String(),
	)
	return shares, nil
}

// RemoveLiquidity burns shares and pays out the pro-rata slice of the
// real reserves. Virtual offsets never leave the pool. Amounts round down
// so remainders always favor the pool.
func (e *Engine) RemoveLiquidity(pool *types.PoolState, shares types.LiquidityShares) (types.ReservePoint, error) {
	if shares.IsNil() || !shares.IsPositive() {
		return nil, types.ErrInvalidTradeParams.Wrapf("share amount must be positive, got %s", shares)
	}
	if shares.GT(pool.TotalShares) {
		return nil, types.ErrInsufficientShares.Wrapf(
			"burning %s shares with only %s outstanding", shares, pool.TotalShares)
	}

	cv, err := curve.ForPool(pool)
	if err != nil {
		return nil, err
	}

	working := pool.Clone()
	withdrawal := types.NewReservePoint(pool.Dimension)
	for i := 0; i < pool.Dimension; i++ {
		amount, err := mathutil.SafeMulDiv(working.Reserves[i], shares, working.TotalShares)
		if err != nil {
			return nil, wrapMathErr(err, "pro-rata withdrawal")
		}
		withdrawal[i] = amount
		working.Reserves[i] = working.Reserves[i].Sub(amount)
	}
	working.TotalShares = working.TotalShares.Sub(shares)

	working.InvariantK, err = cv.Constant(working.Effective())
	if err != nil {
		return nil, err
	}
	if err := cv.VerifyInvariant(working.Effective(), working.InvariantK, e.params.InvariantTolerance); err != nil {
		return nil, err
	}
	if err := working.Validate(); err != nil {
		return nil, err
	}

	*pool = *working
	e.telemetry.LiquidityEvents.Inc()
	e.logger.Info(types.EventTypeLiquidityRemoved,
		types.AttributeKeyShares, shares.String(),
		types.AttributeKeyTotalShares, pool.TotalShares.String(),
		types.AttributeKeyInvariantK, pool.InvariantK.String(),
	)
	return withdrawal, nil
}

// wrapMathErr maps a mathutil sentinel onto the registered taxonomy.
func wrapMathErr(err error, op string) error {
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
