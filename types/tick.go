package types

import (
	"sort"

	"cosmossdk.io/math"
)

// Tick is a hyperplane boundary of the form r.1 = c*sqrt(N) over the
// effective reserve vector, where c is the boundary constant. Reserves on
// the plane mark the edge of a concentrated-liquidity region.
type Tick struct {
	// Constant is the boundary constant c in integer base units.
	Constant math.Int
	// LiquidityDepth is the liquidity attributed to the tick's range.
	// Reporting only; it does not enter swap math.
	LiquidityDepth math.Int
	// Active ticks participate in crossing detection. Inactive ticks are
	// retained configuration.
	Active bool
}

// Validate checks a single tick in isolation.
func (t Tick) Validate() error {
	if t.Constant.IsNil() || !t.Constant.IsPositive() {
		return ErrInvalidTick.Wrapf("boundary constant must be positive, got %s", t.Constant)
	}
	if t.LiquidityDepth.IsNil() {
		return ErrInvalidTick.Wrap("liquidity depth is nil")
	}
	if t.Active && t.LiquidityDepth.IsNegative() {
		return ErrInvalidTick.Wrapf("active tick has negative liquidity depth %s", t.LiquidityDepth)
	}
	return nil
}

// PlaneValue returns c*sqrt(dim), the plane-sum at which the boundary sits.
func (t Tick) PlaneValue(dim int) (math.LegacyDec, error) {
	sqrtDim, err := math.LegacyNewDec(int64(dim)).ApproxSqrt()
	if err != nil {
		return math.LegacyZeroDec(), ErrConvergenceFailure.Wrapf("sqrt(%d): %v", dim, err)
	}
	return math.LegacyNewDecFromInt(t.Constant).Mul(sqrtDim), nil
}

// ValidateTicks checks a pool's full tick set: each tick valid on its own,
// boundary constants unique and sorted ascending.
func ValidateTicks(ticks []Tick) error {
	if len(ticks) > MaxTicks {
		return ErrInvalidTick.Wrapf("%d ticks exceeds maximum %d", len(ticks), MaxTicks)
	}
	for i, t := range ticks {
		if err := t.Validate(); err != nil {
			return err
		}
		if i == 0 {
			continue
		}
		prev := ticks[i-1].Constant
		if t.Constant.LT(prev) {
			return ErrInvalidTick.Wrapf("ticks not sorted: constant %s at %d after %s", t.Constant, i, prev)
		}
		if t.Constant.Equal(prev) {
			return ErrInvalidTick.Wrapf("duplicate boundary constant %s", t.Constant)
		}
	}
	return nil
}

// SortTicks orders ticks ascending by boundary constant. Crossing search
// and the equidistant tie-break both rely on this order.
func SortTicks(ticks []Tick) {
	sort.Slice(ticks, func(i, j int) bool {
		return ticks[i].Constant.LT(ticks[j].Constant)
	})
}
