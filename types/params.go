package types

import (
	"cosmossdk.io/math"
)

// Params are the guard-rail settings applied to every pool the engine
// creates. Fee schedule lives in the pool's FeeTier; these bound trade
// shape and numeric drift.
type Params struct {
	// MaxPriceImpact is the ceiling on a single trade's price impact.
	MaxPriceImpact math.LegacyDec
	// MaxTradeSizeRatio caps the post-fee input against the input-side
	// effective depth. Limits single-trade manipulation potential.
	MaxTradeSizeRatio math.LegacyDec
	// InvariantTolerance is the relative tolerance used when comparing
	// derived invariant values. Exact equality is never used on derived
	// quantities.
	InvariantTolerance math.LegacyDec
	// MinInitialLiquidity is the minimum invariant radius a new pool must
	// reach with its first deposit.
	MinInitialLiquidity math.Int
}

// DefaultParams returns the default guard rails.
func DefaultParams() Params {
	return Params{
		MaxPriceImpact:      math.LegacyNewDecWithPrec(10, 2), // 10%
		MaxTradeSizeRatio:   math.LegacyNewDecWithPrec(30, 2), // 30% of effective depth
		InvariantTolerance:  math.LegacyNewDecWithPrec(1, 8),  // 1e-8 relative
		MinInitialLiquidity: math.NewInt(1000),
	}
}

// Validate checks the parameter set.
func (p Params) Validate() error {
	if p.MaxPriceImpact.IsNil() || p.MaxPriceImpact.IsNegative() || p.MaxPriceImpact.GT(math.LegacyOneDec()) {
		return ErrInvalidParams.Wrapf("max price impact must be within [0, 1], got %s", p.MaxPriceImpact)
	}
	if p.MaxTradeSizeRatio.IsNil() || !p.MaxTradeSizeRatio.IsPositive() || p.MaxTradeSizeRatio.GT(math.LegacyOneDec()) {
		return ErrInvalidParams.Wrapf("max trade size ratio must be within (0, 1], got %s", p.MaxTradeSizeRatio)
	}
	if p.InvariantTolerance.IsNil() || !p.InvariantTolerance.IsPositive() || p.InvariantTolerance.GT(math.LegacyNewDecWithPrec(1, 2)) {
		return ErrInvalidParams.Wrapf("invariant tolerance must be within (0, 0.01], got %s", p.InvariantTolerance)
	}
	if p.MinInitialLiquidity.IsNil() || p.MinInitialLiquidity.IsNegative() {
		return ErrInvalidParams.Wrapf("min initial liquidity must be non-negative, got %s", p.MinInitialLiquidity)
	}
	return nil
}
