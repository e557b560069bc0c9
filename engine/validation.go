package engine

import (
	"cosmossdk.io/math"

	"github.com/orbital-amm/orbital/curve"
	"github.com/orbital-amm/orbital/types"
)

// validateTradeRequest rejects malformed trades before any computation.
// The pool itself is re-validated here because the engine does not own
// pool storage and callers may hand in a mutated state.
func (e *Engine) validateTradeRequest(pool *types.PoolState, cv curve.Curve, assetIn, assetOut int, amountIn math.Int, minAmountOut math.Int) error {
	if err := pool.Validate(); err != nil {
		return err
	}
	if assetIn == assetOut {
		return types.ErrInvalidTradeParams.Wrap("cannot trade an asset against itself")
	}
	if assetIn < 0 || assetIn >= pool.Dimension {
		return types.ErrInvalidTradeParams.Wrapf("asset in index %d out of range [0, %d)", assetIn, pool.Dimension)
	}
	if assetOut < 0 || assetOut >= pool.Dimension {
		return types.ErrInvalidTradeParams.Wrapf("asset out index %d out of range [0, %d)", assetOut, pool.Dimension)
	}
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return types.ErrInvalidTradeParams.Wrapf("trade amount must be positive, got %s", amountIn)
	}
	if !minAmountOut.IsNil() && minAmountOut.IsNegative() {
		return types.ErrInvalidTradeParams.Wrapf("minimum output cannot be negative, got %s", minAmountOut)
	}

	effective := pool.Effective()
	if !effective[assetIn].IsPositive() || !effective[assetOut].IsPositive() {
		return types.ErrInsufficientLiquidity.Wrapf(
			"pool has no depth on the %d/%d pair", assetIn, assetOut)
	}

	// Trading against a drifted pool would compound the drift, so the
	// stored constant is checked before the trade starts.
	if err := cv.VerifyInvariant(effective, pool.InvariantK, e.params.InvariantTolerance); err != nil {
		return err
	}
	return nil
}

// validateTradeSize caps the net input against the effective depth of the
// input asset. Oversized trades distort the marginal price enough to
// invite sandwich patterns, so they are refused outright.
func (e *Engine) validateTradeSize(pool *types.PoolState, assetIn int, amountInAfterFee math.Int) error {
	depth := pool.EffectiveCoord(assetIn)
	ratio := math.LegacyNewDecFromInt(amountInAfterFee).Quo(math.LegacyNewDecFromInt(depth))
	if ratio.GT(e.params.MaxTradeSizeRatio) {
		return types.ErrTradeTooLarge.Wrapf(
			"trade is %s%% of effective depth, maximum is %s%%",
			ratio.Mul(math.LegacyNewDec(100)),
			e.params.MaxTradeSizeRatio.Mul(math.LegacyNewDec(100)),
		)
	}
	return nil
}
