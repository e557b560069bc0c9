package types

import (
	"cosmossdk.io/math"
)

// TradeInfo is the immutable record of one completed trade. It is created
// once at commit and returned to the caller; the executor never mutates a
// returned TradeInfo.
type TradeInfo struct {
	// AssetIn and AssetOut are reserve indices.
	AssetIn  int
	AssetOut int

	// AmountIn is the gross input including fee; AmountOut is what the
	// trader receives; Fee is the charged portion of AmountIn.
	AmountIn  math.Int
	AmountOut math.Int
	Fee       math.Int

	// Segments is the number of curve segments the trade executed, one
	// more than the number of tick boundaries crossed.
	Segments int

	// PriceImpact is (zero-impact quote - actual output) / zero-impact
	// quote, where the zero-impact quote prices the post-fee input at the
	// pre-trade instantaneous price.
	PriceImpact math.LegacyDec
}

// EffectivePrice returns the realized output per unit of gross input.
func (t TradeInfo) EffectivePrice() math.LegacyDec {
	if t.AmountIn.IsZero() {
		return math.LegacyZeroDec()
	}
	return math.LegacyNewDecFromInt(t.AmountOut).Quo(math.LegacyNewDecFromInt(t.AmountIn))
}

// CrossedBoundaries returns how many tick boundaries the trade crossed.
func (t TradeInfo) CrossedBoundaries() int {
	if t.Segments <= 1 {
		return 0
	}
	return t.Segments - 1
}
