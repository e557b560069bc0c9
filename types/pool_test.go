package types

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func validPool() *PoolState {
	return &PoolState{
		Dimension:   2,
		Curve:       CurveSphere,
		ShapeU:      math.LegacyZeroDec(),
		Reserves:    NewReservePointFromInt64s(100000, 200000),
		Virtual:     NewReservePoint(2),
		InvariantK:  math.LegacyNewDec(50000000000),
		FeeTier:     StandardFeeTier,
		VolumeIn:    NewReservePoint(2),
		FeesAccrued: NewReservePoint(2),
		TotalShares: math.NewInt(223606),
	}
}

func TestPoolState_Validate(t *testing.T) {
	require.NoError(t, validPool().Validate())
}

func TestPoolState_ValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PoolState)
		wantErr error
	}{
		{"dimension too small", func(p *PoolState) { p.Dimension = 1 }, ErrInvalidDimension},
		{"unspecified curve", func(p *PoolState) { p.Curve = CurveUnspecified }, ErrInvalidCurve},
		{"superellipse u below 2", func(p *PoolState) {
			p.Curve = CurveSuperellipse
			p.ShapeU = math.LegacyNewDecWithPrec(15, 1)
		}, ErrInvalidCurve},
		{"superellipse u above cap", func(p *PoolState) {
			p.Curve = CurveSuperellipse
			p.ShapeU = math.LegacyNewDec(MaxShapeU + 1)
		}, ErrInvalidCurve},
		{"reserve length mismatch", func(p *PoolState) { p.Reserves = NewReservePointFromInt64s(1, 2, 3) }, ErrDimensionMismatch},
		{"negative reserve", func(p *PoolState) { p.Reserves[0] = math.NewInt(-1) }, ErrInvalidPoolState},
		{"unsorted ticks", func(p *PoolState) {
			p.Ticks = []Tick{tick(20, 1, true), tick(10, 1, true)}
		}, ErrInvalidTick},
		{"reserves without shares", func(p *PoolState) { p.TotalShares = math.ZeroInt() }, ErrInvalidPoolState},
		{"shares without reserves", func(p *PoolState) { p.Reserves = NewReservePoint(2) }, ErrInvalidPoolState},
		{"negative invariant", func(p *PoolState) { p.InvariantK = math.LegacyNewDec(-1) }, ErrInvalidPoolState},
		{"broken fee tier", func(p *PoolState) { p.FeeTier.SwapFee = math.LegacyNewDec(2) }, ErrInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := validPool()
			tt.mutate(pool)
			require.ErrorIs(t, pool.Validate(), tt.wantErr)
		})
	}
}

func TestPoolState_Effective(t *testing.T) {
	pool := validPool()
	pool.Virtual = NewReservePointFromInt64s(50, 70)

	eff := pool.Effective()
	require.Len(t, eff, 2)
	require.True(t, eff[0].Equal(math.LegacyNewDec(100050)))
	require.True(t, eff[1].Equal(math.LegacyNewDec(200070)))

	require.True(t, pool.EffectiveCoord(0).Equal(math.NewInt(100050)))
	require.True(t, pool.EffectiveCoord(1).Equal(math.NewInt(200070)))

	// The effective view is a copy; writing through it must not reach the
	// pool.
	eff[0] = math.LegacyZeroDec()
	require.True(t, pool.Reserves[0].Equal(math.NewInt(100000)))
}

func TestPoolState_CloneIsDeep(t *testing.T) {
	pool := validPool()
	pool.Ticks = []Tick{tick(100, 5, true)}

	clone := pool.Clone()
	clone.Reserves[0] = math.NewInt(1)
	clone.Ticks[0].Active = false
	clone.TradeCount = 99

	require.True(t, pool.Reserves[0].Equal(math.NewInt(100000)))
	require.True(t, pool.Ticks[0].Active)
	require.EqualValues(t, 0, pool.TradeCount)
}

func TestPoolState_ActiveTickCount(t *testing.T) {
	pool := validPool()
	require.Equal(t, 0, pool.ActiveTickCount())

	pool.Ticks = []Tick{tick(10, 1, true), tick(20, 1, false), tick(30, 1, true)}
	require.Equal(t, 2, pool.ActiveTickCount())
}

func TestCurveType_StringRoundTrip(t *testing.T) {
	for _, ct := range []CurveType{CurveSphere, CurveSuperellipse} {
		parsed, err := CurveTypeFromString(ct.String())
		require.NoError(t, err)
		require.Equal(t, ct, parsed)
	}

	_, err := CurveTypeFromString("hyperbola")
	require.ErrorIs(t, err, ErrInvalidCurve)
	require.Equal(t, "unspecified", CurveUnspecified.String())
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	p := DefaultParams()
	p.MaxPriceImpact = math.LegacyNewDec(2)
	require.ErrorIs(t, p.Validate(), ErrInvalidParams)

	p = DefaultParams()
	p.MaxTradeSizeRatio = math.LegacyZeroDec()
	require.ErrorIs(t, p.Validate(), ErrInvalidParams)

	p = DefaultParams()
	p.InvariantTolerance = math.LegacyNewDecWithPrec(2, 2)
	require.ErrorIs(t, p.Validate(), ErrInvalidParams)

	p = DefaultParams()
	p.MinInitialLiquidity = math.NewInt(-1)
	require.ErrorIs(t, p.Validate(), ErrInvalidParams)
}

func TestTradeInfo_Accessors(t *testing.T) {
	info := TradeInfo{
		AssetIn:   0,
		AssetOut:  1,
		AmountIn:  math.NewInt(1000),
		AmountOut: math.NewInt(500),
		Fee:       math.NewInt(3),
		Segments:  3,
	}

	require.True(t, info.EffectivePrice().Equal(math.LegacyNewDecWithPrec(5, 1)))
	require.Equal(t, 2, info.CrossedBoundaries())

	single := TradeInfo{AmountIn: math.NewInt(10), AmountOut: math.NewInt(5), Segments: 1}
	require.Equal(t, 0, single.CrossedBoundaries())

	empty := TradeInfo{AmountIn: math.ZeroInt(), AmountOut: math.ZeroInt()}
	require.True(t, empty.EffectivePrice().IsZero())
}
