package types

import (
	"cosmossdk.io/math"
)

// PoolState is the complete state of one N-dimensional pool. It is plain
// data: all mutation goes through the trade executor and the liquidity
// path, which buffer changes and re-verify the invariant before commit.
type PoolState struct {
	// Dimension is the asset count N, fixed at creation.
	Dimension int
	// Curve selects the invariant; ShapeU is the superellipse exponent
	// (ignored for sphere pools).
	Curve  CurveType
	ShapeU math.LegacyDec

	// Reserves are the real, withdrawable balances. Virtual is the
	// permanent depth offset merged into every invariant evaluation as
	// effective_i = real_i + virtual_i; it is never withdrawable and
	// never stored pre-merged.
	Reserves ReservePoint
	Virtual  ReservePoint

	// Ticks partition the state space into concentrated-liquidity
	// regions. Sorted ascending by boundary constant, constants unique.
	Ticks []Tick

	// InvariantK is the current constraint constant: R^2 for sphere, K
	// for superellipse. Re-derived at creation, liquidity changes, and
	// trade commit; it never decreases trade-over-trade because fees fold
	// back into reserves.
	InvariantK math.LegacyDec

	// FeeTier fixes the swap fee schedule for the pool.
	FeeTier FeeTier

	// VolumeIn accumulates gross input volume per asset. FeesAccrued
	// accumulates charged fees per input asset; fees also live inside
	// Reserves, so this is a ledger, not a separate balance.
	VolumeIn    ReservePoint
	FeesAccrued ReservePoint

	// TotalShares is the outstanding liquidity share supply.
	TotalShares math.Int

	// TradeCount is the number of completed trades.
	TradeCount uint64
}

// Effective returns the invariant-bearing view real + virtual as LegacyDec
// coordinates. Always a fresh slice; callers may mutate it freely.
func (p *PoolState) Effective() []math.LegacyDec {
	eff := make([]math.LegacyDec, p.Dimension)
	for i := 0; i < p.Dimension; i++ {
		eff[i] = math.LegacyNewDecFromInt(p.Reserves[i].Add(p.Virtual[i]))
	}
	return eff
}

// EffectiveCoord returns real_i + virtual_i for a single asset.
func (p *PoolState) EffectiveCoord(i int) math.Int {
	return p.Reserves[i].Add(p.Virtual[i])
}

// ActiveTickCount returns how many ticks participate in crossing search.
func (p *PoolState) ActiveTickCount() int {
	n := 0
	for _, t := range p.Ticks {
		if t.Active {
			n++
		}
	}
	return n
}

// SqrtDim returns sqrt(N) for plane-value computations.
func (p *PoolState) SqrtDim() (math.LegacyDec, error) {
	sqrtDim, err := math.LegacyNewDec(int64(p.Dimension)).ApproxSqrt()
	if err != nil {
		return math.LegacyZeroDec(), ErrConvergenceFailure.Wrapf("sqrt(%d): %v", p.Dimension, err)
	}
	return sqrtDim, nil
}

// Clone returns a deep copy used by the executor as its working buffer.
func (p *PoolState) Clone() *PoolState {
	out := &PoolState{
		Dimension:   p.Dimension,
		Curve:       p.Curve,
		ShapeU:      p.ShapeU,
		Reserves:    p.Reserves.Clone(),
		Virtual:     p.Virtual.Clone(),
		Ticks:       make([]Tick, len(p.Ticks)),
		InvariantK:  p.InvariantK,
		FeeTier:     p.FeeTier,
		VolumeIn:    p.VolumeIn.Clone(),
		FeesAccrued: p.FeesAccrued.Clone(),
		TotalShares: p.TotalShares,
		TradeCount:  p.TradeCount,
	}
	copy(out.Ticks, p.Ticks)
	return out
}

// Validate performs structural validation of the pool state. Invariant
// satisfaction is checked separately by the curve, which owns the math.
func (p *PoolState) Validate() error {
	if p.Dimension < MinDimension || p.Dimension > MaxDimension {
		return ErrInvalidDimension.Wrapf("dimension %d outside [%d, %d]", p.Dimension, MinDimension, MaxDimension)
	}
	if p.Curve != CurveSphere && p.Curve != CurveSuperellipse {
		return ErrInvalidCurve.Wrapf("unsupported curve type %d", p.Curve)
	}
	if p.Curve == CurveSuperellipse {
		if p.ShapeU.IsNil() || p.ShapeU.LT(math.LegacyNewDec(2)) {
			return ErrInvalidCurve.Wrapf("superellipse shape parameter must be >= 2, got %s", p.ShapeU)
		}
		if p.ShapeU.GT(math.LegacyNewDec(MaxShapeU)) {
			return ErrInvalidCurve.Wrapf("superellipse shape parameter must be <= %d, got %s", MaxShapeU, p.ShapeU)
		}
	}
	for _, rp := range []struct {
		name string
		vec  ReservePoint
	}{
		{"reserves", p.Reserves},
		{"virtual", p.Virtual},
		{"volume_in", p.VolumeIn},
		{"fees_accrued", p.FeesAccrued},
	} {
		if len(rp.vec) != p.Dimension {
			return ErrDimensionMismatch.Wrapf("%s has %d coordinates, pool dimension is %d", rp.name, len(rp.vec), p.Dimension)
		}
		if err := rp.vec.Validate(); err != nil {
			return err
		}
	}
	if err := ValidateTicks(p.Ticks); err != nil {
		return err
	}
	if p.TotalShares.IsNil() || p.TotalShares.IsNegative() {
		return ErrInvalidPoolState.Wrapf("invalid total shares %s", p.TotalShares)
	}
	// A pool with real reserves must have shares outstanding, and shares
	// imply reserves. Virtual-only pools hold no withdrawable value.
	if p.Reserves.HasPositive() && p.TotalShares.IsZero() {
		return ErrInvalidPoolState.Wrap("pool has reserves but no shares")
	}
	if p.TotalShares.IsPositive() && !p.Reserves.HasPositive() {
		return ErrInvalidPoolState.Wrap("pool has shares but no reserves")
	}
	if p.InvariantK.IsNil() || p.InvariantK.IsNegative() {
		return ErrInvalidPoolState.Wrapf("invalid invariant constant %s", p.InvariantK)
	}
	return p.FeeTier.Validate()
}

// LiquidityShares is a quantity of pool shares minted by deposits and
// burned by withdrawals.
type LiquidityShares = math.Int
