// Package testutil builds valid pool fixtures for package tests. Fixtures
// derive the invariant constant and the initial share supply the same way
// the liquidity path does at pool creation, so a fixture pool is
// indistinguishable from one the engine created.
package testutil

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/orbital-amm/orbital/curve"
	"github.com/orbital-amm/orbital/mathutil"
	"github.com/orbital-amm/orbital/types"
)

// SpherePool returns a valid sphere pool holding the given real reserves,
// with the standard fee tier and no ticks.
func SpherePool(t testing.TB, reserves ...int64) *types.PoolState {
	t.Helper()
	return buildPool(t, types.CurveSphere, math.LegacyZeroDec(), reserves)
}

// SuperellipsePool returns a valid superellipse pool with shape parameter
// shapeU (a decimal string such as "2.5") over the given real reserves.
func SuperellipsePool(t testing.TB, shapeU string, reserves ...int64) *types.PoolState {
	t.Helper()
	return buildPool(t, types.CurveSuperellipse, math.LegacyMustNewDecFromStr(shapeU), reserves)
}

func buildPool(t testing.TB, kind types.CurveType, shapeU math.LegacyDec, reserves []int64) *types.PoolState {
	t.Helper()

	pool := &types.PoolState{
		Dimension:   len(reserves),
		Curve:       kind,
		ShapeU:      shapeU,
		Reserves:    types.NewReservePointFromInt64s(reserves...),
		Virtual:     types.NewReservePoint(len(reserves)),
		InvariantK:  math.LegacyZeroDec(),
		FeeTier:     types.StandardFeeTier,
		VolumeIn:    types.NewReservePoint(len(reserves)),
		FeesAccrued: types.NewReservePoint(len(reserves)),
		TotalShares: math.ZeroInt(),
	}

	cv, err := curve.ForPool(pool)
	require.NoError(t, err)
	constant, err := cv.Constant(pool.Effective())
	require.NoError(t, err)
	pool.InvariantK = constant

	if pool.Reserves.HasPositive() {
		pool.TotalShares = radius(t, pool, constant).TruncateInt()
	}
	require.NoError(t, pool.Validate())
	return pool
}

// radius returns the invariant radius the share supply is denominated in.
func radius(t testing.TB, pool *types.PoolState, constant math.LegacyDec) math.LegacyDec {
	t.Helper()
	switch pool.Curve {
	case types.CurveSphere:
		r, err := constant.ApproxSqrt()
		require.NoError(t, err)
		return r
	default:
		r, err := mathutil.Root(constant, pool.ShapeU)
		require.NoError(t, err)
		return r
	}
}

// WithVirtual sets the pool's virtual offsets and re-derives the invariant
// constant over the widened effective reserves.
func WithVirtual(t testing.TB, pool *types.PoolState, offsets ...int64) *types.PoolState {
	t.Helper()
	require.Len(t, offsets, pool.Dimension)

	pool.Virtual = types.NewReservePointFromInt64s(offsets...)
	cv, err := curve.ForPool(pool)
	require.NoError(t, err)
	constant, err := cv.Constant(pool.Effective())
	require.NoError(t, err)
	pool.InvariantK = constant

	require.NoError(t, pool.Validate())
	return pool
}

// WithTicks installs one active tick per boundary constant, sorted
// ascending, each carrying a nominal liquidity depth.
func WithTicks(t testing.TB, pool *types.PoolState, constants ...int64) *types.PoolState {
	t.Helper()

	ticks := make([]types.Tick, 0, len(constants))
	for _, c := range constants {
		ticks = append(ticks, types.Tick{
			Constant:       math.NewInt(c),
			LiquidityDepth: math.NewInt(1_000_000),
			Active:         true,
		})
	}
	types.SortTicks(ticks)
	require.NoError(t, types.ValidateTicks(ticks))
	pool.Ticks = ticks

	require.NoError(t, pool.Validate())
	return pool
}
