package engine_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/orbital-amm/orbital/engine"
	"github.com/orbital-amm/orbital/testutil"
	"github.com/orbital-amm/orbital/types"
)

func TestAddLiquidity_FirstDeposit(t *testing.T) {
	e := engine.New()
	pool, err := e.CreatePool(engine.PoolConfig{Dimension: 2, Curve: types.CurveSphere})
	require.NoError(t, err)

	// The founder mint equals the invariant radius: sqrt(5e10) = 223606.79.
	shares, err := e.AddLiquidity(pool, types.NewReservePointFromInt64s(100_000, 200_000))
	require.NoError(t, err)
	require.True(t, shares.Equal(math.NewInt(223_606)), "got %s", shares)
	require.True(t, pool.TotalShares.Equal(math.NewInt(223_606)))
	require.True(t, pool.Reserves.Equal(types.NewReservePointFromInt64s(100_000, 200_000)))
	require.True(t, pool.InvariantK.Equal(math.LegacyNewDec(50_000_000_000)))
	require.NoError(t, e.VerifyInvariant(pool))
	require.Equal(t, uint64(1), e.Telemetry().LiquidityEvents.Load())
}

func TestAddLiquidity_MinimumDependsOnTier(t *testing.T) {
	e := engine.New()
	deposit := types.NewReservePointFromInt64s(5000, 5000)

	// Radius sqrt(5e7) = 7071 clears the standard floor of 1000.
	standard, err := e.CreatePool(engine.PoolConfig{Dimension: 2, Curve: types.CurveSphere})
	require.NoError(t, err)
	shares, err := e.AddLiquidity(standard, deposit.Clone())
	require.NoError(t, err)
	require.True(t, shares.Equal(math.NewInt(7071)))

	// The low-fee tier demands 10000, so the same deposit is refused.
	low, err := e.CreatePool(engine.PoolConfig{
		Dimension: 2,
		Curve:     types.CurveSphere,
		FeeTier:   types.LowFeeTier,
	})
	require.NoError(t, err)
	before := low.Clone()
	_, err = e.AddLiquidity(low, deposit.Clone())
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
	require.Equal(t, before, low)
	require.True(t, low.TotalShares.IsZero())
}

func TestAddLiquidity_ProportionalGrowth(t *testing.T) {
	e := engine.New()
	pool := testutil.SpherePool(t, 100_000, 200_000)
	require.True(t, pool.TotalShares.Equal(math.NewInt(223_606)))

	// One-sided deposit grows the radius from sqrt(5e10) to exactly
	// 250000; the mint follows the radius, not the deposit value.
	shares, err := e.AddLiquidity(pool, types.NewReservePointFromInt64s(50_000, 0))
	require.NoError(t, err)
	require.True(t, shares.Equal(math.NewInt(26_393)), "got %s", shares)
	require.True(t, pool.TotalShares.Equal(math.NewInt(249_999)))
	require.True(t, pool.Reserves.Equal(types.NewReservePointFromInt64s(150_000, 200_000)))
	require.True(t, pool.InvariantK.Equal(math.LegacyNewDec(62_500_000_000)))
	require.NoError(t, e.VerifyInvariant(pool))
}

func TestAddLiquidity_SuperellipseGrowth(t *testing.T) {
	e := engine.New()
	pool := testutil.SuperellipsePool(t, "3", 100_000, 100_000)
	require.True(t, pool.TotalShares.Equal(math.NewInt(125_992)))

	// Cube-law radius: K goes 2e15 -> 4.375e15, radius 125992.1 -> 163553.3.
	shares, err := e.AddLiquidity(pool, types.NewReservePointFromInt64s(50_000, 0))
	require.NoError(t, err)
	require.True(t, shares.Equal(math.NewInt(37_561)), "got %s", shares)
	require.True(t, pool.TotalShares.Equal(math.NewInt(163_553)))
	require.True(t, pool.InvariantK.Equal(math.LegacyNewDec(4_375_000_000_000_000)))
	require.NoError(t, e.VerifyInvariant(pool))
}

func TestAddLiquidity_DepositTooSmallToMint(t *testing.T) {
	e := engine.New()
	pool := testutil.SpherePool(t, 100_000, 200_000)
	before := pool.Clone()

	// One unit moves the radius by ~0.45, rounding the mint to zero.
	_, err := e.AddLiquidity(pool, types.NewReservePointFromInt64s(1, 0))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
	require.Equal(t, before, pool)
}

func TestAddLiquidity_Rejects(t *testing.T) {
	e := engine.New()

	cases := []struct {
		name    string
		deposit types.ReservePoint
		want    error
	}{
		{"dimension mismatch", types.NewReservePointFromInt64s(100, 100, 100), types.ErrDimensionMismatch},
		{"all zero", types.NewReservePointFromInt64s(0, 0), types.ErrInvalidTradeParams},
		{"negative coordinate", types.NewReservePointFromInt64s(100, -1), types.ErrInvalidPoolState},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pool := testutil.SpherePool(t, 100_000, 200_000)
			before := pool.Clone()
			_, err := e.AddLiquidity(pool, tc.deposit)
			require.ErrorIs(t, err, tc.want)
			require.Equal(t, before, pool)
		})
	}
}

func TestRemoveLiquidity_ProRata(t *testing.T) {
	e := engine.New()
	pool := testutil.SpherePool(t, 100_000, 200_000)

	// 111803 of 223606 shares is exactly half, so the payout divides
	// evenly with no rounding remainder.
	withdrawal, err := e.RemoveLiquidity(pool, math.NewInt(111_803))
	require.NoError(t, err)
	require.True(t, withdrawal.Equal(types.NewReservePointFromInt64s(50_000, 100_000)))
	require.True(t, pool.Reserves.Equal(types.NewReservePointFromInt64s(50_000, 100_000)))
	require.True(t, pool.TotalShares.Equal(math.NewInt(111_803)))
	require.True(t, pool.InvariantK.Equal(math.LegacyNewDec(12_500_000_000)))
	require.NoError(t, e.VerifyInvariant(pool))
}

func TestRemoveLiquidity_FullExit(t *testing.T) {
	e := engine.New()
	pool := testutil.SpherePool(t, 100_000, 200_000)

	withdrawal, err := e.RemoveLiquidity(pool, math.NewInt(223_606))
	require.NoError(t, err)
	require.True(t, withdrawal.Equal(types.NewReservePointFromInt64s(100_000, 200_000)))
	require.True(t, pool.Reserves.IsZero())
	require.True(t, pool.TotalShares.IsZero())
	require.True(t, pool.InvariantK.IsZero())

	// A drained pool is structurally valid and can be refunded.
	require.NoError(t, pool.Validate())
	shares, err := e.AddLiquidity(pool, types.NewReservePointFromInt64s(100_000, 200_000))
	require.NoError(t, err)
	require.True(t, shares.Equal(math.NewInt(223_606)))
}

func TestRemoveLiquidity_VirtualDepthStaysBehind(t *testing.T) {
	e := engine.New()
	pool, err := e.CreatePool(engine.PoolConfig{
		Dimension:       2,
		Curve:           types.CurveSphere,
		VirtualOffsets:  types.NewReservePointFromInt64s(50_000, 50_000),
		InitialDeposits: types.NewReservePointFromInt64s(100_000, 200_000),
	})
	require.NoError(t, err)
	require.True(t, pool.InvariantK.Equal(math.LegacyNewDec(85_000_000_000)))
	require.True(t, pool.TotalShares.Equal(math.NewInt(291_547)))

	// A full exit pays out only the real reserves; the offsets and the
	// invariant they imply remain.
	withdrawal, err := e.RemoveLiquidity(pool, math.NewInt(291_547))
	require.NoError(t, err)
	require.True(t, withdrawal.Equal(types.NewReservePointFromInt64s(100_000, 200_000)))
	require.True(t, pool.Reserves.IsZero())
	require.True(t, pool.Virtual.Equal(types.NewReservePointFromInt64s(50_000, 50_000)))
	require.True(t, pool.InvariantK.Equal(math.LegacyNewDec(5_000_000_000)))
}

func TestRemoveLiquidity_Rejects(t *testing.T) {
	e := engine.New()

	cases := []struct {
		name   string
		shares math.Int
		want   error
	}{
		{"more than outstanding", math.NewInt(223_607), types.ErrInsufficientShares},
		{"zero", math.ZeroInt(), types.ErrInvalidTradeParams},
		{"negative", math.NewInt(-1), types.ErrInvalidTradeParams},
		{"nil", math.Int{}, types.ErrInvalidTradeParams},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pool := testutil.SpherePool(t, 100_000, 200_000)
			before := pool.Clone()
			_, err := e.RemoveLiquidity(pool, tc.shares)
			require.ErrorIs(t, err, tc.want)
			require.Equal(t, before, pool)
		})
	}
}

func TestLiquidity_RoundTripFavorsPool(t *testing.T) {
	e := engine.New()
	pool := testutil.SpherePool(t, 100_000, 200_000)

	// A proportional deposit of one fifth of the pool mints one fifth of
	// the outstanding shares, shaved by truncation.
	minted, err := e.AddLiquidity(pool, types.NewReservePointFromInt64s(20_000, 40_000))
	require.NoError(t, err)
	require.True(t, minted.Equal(math.NewInt(44_721)), "got %s", minted)

	// Burning those shares back rounds against the depositor on both
	// coordinates, so the round trip leaves dust in the pool.
	withdrawal, err := e.RemoveLiquidity(pool, minted)
	require.NoError(t, err)
	require.True(t, withdrawal.Equal(types.NewReservePointFromInt64s(19_999, 39_999)))
	require.NoError(t, e.VerifyInvariant(pool))
}
