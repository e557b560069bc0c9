package engine

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/orbital-amm/orbital/curve"
	"github.com/orbital-amm/orbital/geometry"
	"github.com/orbital-amm/orbital/mathutil"
	"github.com/orbital-amm/orbital/types"
)

// tradeState tracks a trade request through its lifecycle. A trade either
// reaches stateCompleted with every segment applied or stateFailed with
// zero mutation of the caller's pool.
type tradeState int

const (
	statePending tradeState = iota
	stateSegmenting
	stateExecuting
	stateCompleted
	stateFailed
)

func (s tradeState) String() string {
	switch s {
	case statePending:
		return "pending"
	case stateSegmenting:
		return "segmenting"
	case stateExecuting:
		return "executing"
	case stateCompleted:
		return "completed"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// runTrade executes the full trade state machine against a clone of the
// pool and returns the mutated clone plus the trade record. The caller
// decides whether to adopt the clone (execute) or discard it (quote), so
// quotes and executions share every code path that affects the result.
func (e *Engine) runTrade(pool *types.PoolState, assetIn, assetOut int, amountIn, minAmountOut math.Int) (working *types.PoolState, info *types.TradeInfo, err error) {
	state := statePending
	advance := func(next tradeState) {
		e.logger.Debug("trade_state",
			"from", state.String(),
			"to", next.String(),
		)
		state = next
	}
	defer func() {
		if err != nil {
			advance(stateFailed)
		}
	}()

	cv, err := curve.ForPool(pool)
	if err != nil {
		return nil, nil, err
	}

	// 1. Pending: structural validation before any curve math.
	if err = e.validateTradeRequest(pool, cv, assetIn, assetOut, amountIn, minAmountOut); err != nil {
		return nil, nil, err
	}

	// 2. Fee comes off the top; only the net amount moves along the curve.
	fee := pool.FeeTier.SwapFee.MulInt(amountIn).TruncateInt()
	amountInAfterFee := amountIn.Sub(fee)
	if !amountInAfterFee.IsPositive() {
		return nil, nil, types.ErrInvalidTradeParams.Wrapf(
			"amount %s is consumed entirely by the fee", amountIn)
	}
	if err = e.validateTradeSize(pool, assetIn, amountInAfterFee); err != nil {
		return nil, nil, err
	}

	// 3. All mutation happens on a clone. The working reserve path stays in
	// full decimal precision until commit; truncation happens exactly once,
	// on the aggregate payout.
	working = pool.Clone()
	effective := working.Effective()
	constant := working.InvariantK

	preTradePrice, err := cv.InstantaneousPrice(effective, assetIn, assetOut)
	if err != nil {
		return nil, nil, err
	}

	// 4. Segmenting and Executing alternate until the net input is spent.
	// The trade path can meet each tick plane at most twice, so the
	// segment count is bounded by twice the active tick count plus the
	// closing interior segment.
	maxSegments := 2*working.ActiveTickCount() + 2
	remaining := math.LegacyNewDecFromInt(amountInAfterFee)
	totalOut := math.LegacyZeroDec()
	segments := 0

	for remaining.IsPositive() {
		if segments >= maxSegments {
			return nil, nil, types.ErrConvergenceFailure.Wrapf(
				"trade segmentation did not terminate within %d segments", maxSegments)
		}

		advance(stateSegmenting)
		crossing, cerr := geometry.DistanceToBoundary(working, cv, effective, constant, assetIn, assetOut)
		if cerr != nil {
			return nil, nil, cerr
		}

		// An exact landing on a boundary is not a crossing; the remainder
		// is zero and the loop ends with this segment.
		stepIn := remaining
		crossed := false
		if crossing.Found && crossing.AmountIn.LT(remaining) {
			stepIn = crossing.AmountIn
			crossed = true
		}

		advance(stateExecuting)
		stepOut, serr := cv.SwapOutput(effective, constant, assetIn, assetOut, stepIn)
		if serr != nil {
			return nil, nil, serr
		}

		effective[assetIn] = effective[assetIn].Add(stepIn)
		effective[assetOut] = effective[assetOut].Sub(stepOut)
		totalOut = totalOut.Add(stepOut)
		remaining = remaining.Sub(stepIn)
		segments++

		// Post-segment drift from the stored constant is a fatal fault,
		// never corrected silently.
		if err = cv.VerifyInvariant(effective, constant, e.params.InvariantTolerance); err != nil {
			return nil, nil, err
		}

		if crossed {
			e.logger.Debug(types.EventTypeTickCrossed,
				types.AttributeKeyTickConstant, working.Ticks[crossing.TickIndex].Constant.String(),
				types.AttributeKeySegments, segments,
			)
		}
	}

	amountOut := totalOut.TruncateInt()

	// 5. Guard rails apply to the aggregate result, not per segment.
	if !minAmountOut.IsNil() && amountOut.LT(minAmountOut) {
		return nil, nil, types.WrapWithRecovery(types.ErrSlippageExceeded,
			"output %s below minimum %s", amountOut, minAmountOut)
	}

	reference := preTradePrice.MulInt(amountInAfterFee)
	impact := math.LegacyZeroDec()
	if reference.IsPositive() {
		impact = reference.Sub(totalOut).Abs().Quo(reference)
	}
	if impact.GT(e.params.MaxPriceImpact) {
		return nil, nil, types.WrapWithRecovery(types.ErrPriceImpactTooHigh,
			"price impact %s exceeds maximum %s", impact, e.params.MaxPriceImpact)
	}

	// 6. The payout leaves the real reserves only. Virtual depth shapes
	// pricing but is never paid out.
	if amountOut.GT(working.Reserves[assetOut]) {
		return nil, nil, types.WrapWithRecovery(types.ErrInsufficientLiquidity,
			"payout %s exceeds withdrawable reserve %s", amountOut, working.Reserves[assetOut])
	}

	// 7. Commit to the working copy. The gross input enters the reserves,
	// folding the fee back into pool depth.
	working.Reserves[assetIn] = working.Reserves[assetIn].Add(amountIn)
	working.Reserves[assetOut] = working.Reserves[assetOut].Sub(amountOut)
	working.VolumeIn[assetIn] = working.VolumeIn[assetIn].Add(amountIn)
	working.FeesAccrued[assetIn] = working.FeesAccrued[assetIn].Add(fee)
	working.TradeCount++

	newConstant, err := cv.Constant(working.Effective())
	if err != nil {
		return nil, nil, err
	}
	// Fees and payout truncation both deepen the pool, so the re-derived
	// constant can fall below the old one only by rounding noise.
	if newConstant.LT(constant) && !mathutil.ApproxEqual(newConstant, constant, e.params.InvariantTolerance) {
		return nil, nil, types.ErrInvariantViolation.Wrap(types.FormatInvariantBreach(
			"monotonicity", fmt.Sprintf("constant decreased from %s to %s", constant, newConstant)))
	}
	working.InvariantK = newConstant

	advance(stateCompleted)
	info = &types.TradeInfo{
		AssetIn:     assetIn,
		AssetOut:    assetOut,
		AmountIn:    amountIn,
		AmountOut:   amountOut,
		Fee:         fee,
		Segments:    segments,
		PriceImpact: impact,
	}
	return working, info, nil
}

// ExecuteTrade swaps amountIn of assetIn for assetOut, mutating the pool.
// The pool is updated only when every segment succeeds; any failure leaves
// it exactly as it was.
func (e *Engine) ExecuteTrade(pool *types.PoolState, assetIn, assetOut int, amountIn, minAmountOut math.Int) (*types.TradeInfo, error) {
	working, info, err := e.runTrade(pool, assetIn, assetOut, amountIn, minAmountOut)
	if err != nil {
		e.telemetry.TradesFailed.Inc()
		e.logger.Error(types.EventTypeTradeFailed,
			types.AttributeKeyAssetIn, assetIn,
			types.AttributeKeyAssetOut, assetOut,
			types.AttributeKeyAmountIn, amountIn.String(),
			types.AttributeKeyReason, err.Error(),
		)
		return nil, err
	}

	*pool = *working
	e.telemetry.TradesExecuted.Inc()
	e.telemetry.SegmentsTotal.Add(uint64(info.Segments))
	e.logger.Info(types.EventTypeTradeExecuted,
		types.AttributeKeyAssetIn, info.AssetIn,
		types.AttributeKeyAssetOut, info.AssetOut,
		types.AttributeKeyAmountIn, info.AmountIn.String(),
		types.AttributeKeyAmountOut, info.AmountOut.String(),
		types.AttributeKeyFee, info.Fee.String(),
		types.AttributeKeySegments, info.Segments,
		types.AttributeKeyPriceImpact, info.PriceImpact.String(),
	)
	return info, nil
}

// QuoteTrade prices a trade without applying it. Quotes run the same
// state machine as executions, so a quote is exact for the pool state it
// was computed against.
func (e *Engine) QuoteTrade(pool *types.PoolState, assetIn, assetOut int, amountIn math.Int) (*types.TradeInfo, error) {
	_, info, err := e.runTrade(pool, assetIn, assetOut, amountIn, math.Int{})
	if err != nil {
		return nil, err
	}
	e.telemetry.QuotesServed.Inc()
	return info, nil
}
