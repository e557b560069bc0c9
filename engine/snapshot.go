package engine

import (
	"errors"

	"cosmossdk.io/math"

	"github.com/orbital-amm/orbital/geometry"
	"github.com/orbital-amm/orbital/mathutil"
	"github.com/orbital-amm/orbital/types"
)

// TickSnapshot is the reporting view of one tick, with the derived
// capital efficiency alongside the stored configuration.
type TickSnapshot struct {
	Constant          math.Int
	LiquidityDepth    math.Int
	Active            bool
	CapitalEfficiency math.LegacyDec
}

// PoolSnapshot is a read-only view of a pool plus derived analytics.
// Every vector is a copy; holding a snapshot never aliases live state.
type PoolSnapshot struct {
	Dimension   int
	Curve       types.CurveType
	ShapeU      math.LegacyDec
	Reserves    types.ReservePoint
	Virtual     types.ReservePoint
	InvariantK  math.LegacyDec
	TotalShares math.Int
	TradeCount  uint64
	VolumeIn    types.ReservePoint
	FeesAccrued types.ReservePoint

	Ticks []TickSnapshot

	// AvgCapitalEfficiency is the liquidity-weighted mean efficiency over
	// active ticks whose boundary intersects the curve. Zero when no tick
	// qualifies.
	AvgCapitalEfficiency math.LegacyDec
}

// Snapshot builds the reporting view. Ticks whose plane does not intersect
// the current curve report zero efficiency and are excluded from the
// average rather than failing the whole snapshot.
func (e *Engine) Snapshot(pool *types.PoolState) (*PoolSnapshot, error) {
	if err := pool.Validate(); err != nil {
		return nil, err
	}

	snap := &PoolSnapshot{
		Dimension:            pool.Dimension,
		Curve:                pool.Curve,
		ShapeU:               pool.ShapeU,
		Reserves:             pool.Reserves.Clone(),
		Virtual:              pool.Virtual.Clone(),
		InvariantK:           pool.InvariantK,
		TotalShares:          pool.TotalShares,
		TradeCount:           pool.TradeCount,
		VolumeIn:             pool.VolumeIn.Clone(),
		FeesAccrued:          pool.FeesAccrued.Clone(),
		Ticks:                make([]TickSnapshot, 0, len(pool.Ticks)),
		AvgCapitalEfficiency: math.LegacyZeroDec(),
	}

	var efficiencies, weights []math.LegacyDec
	for _, tick := range pool.Ticks {
		ts := TickSnapshot{
			Constant:          tick.Constant,
			LiquidityDepth:    tick.LiquidityDepth,
			Active:            tick.Active,
			CapitalEfficiency: math.LegacyZeroDec(),
		}
		if tick.Active {
			eff, err := geometry.CapitalEfficiency(pool, tick)
			switch {
			case err == nil:
				ts.CapitalEfficiency = eff
				if tick.LiquidityDepth.IsPositive() {
					efficiencies = append(efficiencies, eff)
					weights = append(weights, math.LegacyNewDecFromInt(tick.LiquidityDepth))
				}
			case errors.Is(err, types.ErrInvalidTick):
				// Boundary outside the current curve; nothing to report.
			default:
				return nil, err
			}
		}
		snap.Ticks = append(snap.Ticks, ts)
	}

	if len(efficiencies) > 0 {
		avg, err := mathutil.WeightedAverage(efficiencies, weights)
		if err != nil {
			return nil, wrapMathErr(err, "efficiency average")
		}
		snap.AvgCapitalEfficiency = avg
	}
	return snap, nil
}
