package curve_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/orbital-amm/orbital/curve"
	"github.com/orbital-amm/orbital/types"
)

// effVec builds an effective reserve vector from whole base units.
func effVec(values ...int64) []math.LegacyDec {
	out := make([]math.LegacyDec, len(values))
	for i, v := range values {
		out[i] = math.LegacyNewDec(v)
	}
	return out
}

// requireDecNear asserts actual lies within tol of the expected decimal.
func requireDecNear(t *testing.T, expected string, actual math.LegacyDec, tol string) {
	t.Helper()
	exp := math.LegacyMustNewDecFromStr(expected)
	bound := math.LegacyMustNewDecFromStr(tol)
	require.True(t, actual.Sub(exp).Abs().LTE(bound),
		"got %s, want %s within %s", actual, expected, tol)
}

func mustConstant(t *testing.T, c curve.Curve, eff []math.LegacyDec) math.LegacyDec {
	t.Helper()
	k, err := c.Constant(eff)
	require.NoError(t, err)
	return k
}

// TestSphereConstant verifies the sum-of-squares constant on integer
// reserves, where the computation is exact.
func TestSphereConstant(t *testing.T) {
	s := curve.NewSphere()
	k := mustConstant(t, s, effVec(100_000, 200_000))
	require.True(t, k.Equal(math.LegacyNewDec(50_000_000_000)), "got %s", k)
}

// TestSphereSwapOutput_Valid checks the closed-form solve on an
// unbalanced two-asset pool: 997 units of the scarcer asset in releases
// 200000 - sqrt(5e10 - 100997^2) of the other.
func TestSphereSwapOutput_Valid(t *testing.T) {
	s := curve.NewSphere()
	eff := effVec(100_000, 200_000)
	k := mustConstant(t, s, eff)

	out, err := s.SwapOutput(eff, k, 0, 1, math.LegacyNewDec(997))
	require.NoError(t, err)
	requireDecNear(t, "501.614", out, "0.01")

	// The post-swap point must still sit on the sphere.
	post := []math.LegacyDec{eff[0].Add(math.LegacyNewDec(997)), eff[1].Sub(out)}
	require.NoError(t, s.VerifyInvariant(post, k, math.LegacyNewDecWithPrec(1, 8)))
}

// TestSphereSwapOutput_ReverseDirection swaps the abundant asset in.
func TestSphereSwapOutput_ReverseDirection(t *testing.T) {
	s := curve.NewSphere()
	eff := effVec(100_000, 200_000)
	k := mustConstant(t, s, eff)

	out, err := s.SwapOutput(eff, k, 1, 0, math.LegacyNewDec(997))
	require.NoError(t, err)
	requireDecNear(t, "2019.359", out, "0.01")
}

// TestSphereSwapOutput_EqualReserves checks the solve at the equal-price
// point, where the marginal rate is one.
func TestSphereSwapOutput_EqualReserves(t *testing.T) {
	s := curve.NewSphere()
	eff := effVec(100_000, 100_000)
	k := mustConstant(t, s, eff)

	out, err := s.SwapOutput(eff, k, 0, 1, math.LegacyNewDec(997))
	require.NoError(t, err)
	requireDecNear(t, "1007.041", out, "0.01")
}

// TestSphereSwapOutput_DeeperPoolPaysMore verifies that adding depth to
// both coordinates improves the realized quote for the same trade. This is
// the mechanism by which virtual offsets improve pricing.
func TestSphereSwapOutput_DeeperPoolPaysMore(t *testing.T) {
	s := curve.NewSphere()

	shallow := effVec(100_000, 200_000)
	deep := effVec(200_000, 300_000)
	amount := math.LegacyNewDec(997)

	outShallow, err := s.SwapOutput(shallow, mustConstant(t, s, shallow), 0, 1, amount)
	require.NoError(t, err)
	outDeep, err := s.SwapOutput(deep, mustConstant(t, s, deep), 0, 1, amount)
	require.NoError(t, err)

	require.True(t, outDeep.GT(outShallow), "deep %s <= shallow %s", outDeep, outShallow)
}

// TestSphereSwapOutput_Exhaustion drives the output coordinate past zero.
func TestSphereSwapOutput_Exhaustion(t *testing.T) {
	s := curve.NewSphere()
	eff := effVec(100_000, 200_000)
	k := mustConstant(t, s, eff)

	_, err := s.SwapOutput(eff, k, 0, 1, math.LegacyNewDec(1_000_000))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

// TestSphereSwapOutput_InvalidArgs covers index and amount validation.
func TestSphereSwapOutput_InvalidArgs(t *testing.T) {
	s := curve.NewSphere()
	eff := effVec(100_000, 200_000)
	k := mustConstant(t, s, eff)

	tests := []struct {
		name     string
		assetIn  int
		assetOut int
		amountIn math.LegacyDec
	}{
		{"same asset", 0, 0, math.LegacyNewDec(100)},
		{"in index out of range", 2, 1, math.LegacyNewDec(100)},
		{"negative in index", -1, 1, math.LegacyNewDec(100)},
		{"out index out of range", 0, 5, math.LegacyNewDec(100)},
		{"zero amount", 0, 1, math.LegacyZeroDec()},
		{"negative amount", 0, 1, math.LegacyNewDec(-5)},
		{"nil amount", 0, 1, math.LegacyDec{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.SwapOutput(eff, k, tc.assetIn, tc.assetOut, tc.amountIn)
			require.ErrorIs(t, err, types.ErrInvalidTradeParams)
		})
	}
}

// TestSphereInstantaneousPrice checks the gradient ratio in both
// directions.
func TestSphereInstantaneousPrice(t *testing.T) {
	s := curve.NewSphere()
	eff := effVec(100_000, 200_000)

	price, err := s.InstantaneousPrice(eff, 0, 1)
	require.NoError(t, err)
	require.True(t, price.Equal(math.LegacyNewDecWithPrec(5, 1)), "got %s", price)

	price, err = s.InstantaneousPrice(eff, 1, 0)
	require.NoError(t, err)
	require.True(t, price.Equal(math.LegacyNewDec(2)), "got %s", price)

	_, err = s.InstantaneousPrice([]math.LegacyDec{math.LegacyNewDec(10), math.LegacyZeroDec()}, 0, 1)
	require.ErrorIs(t, err, types.ErrDivisionByZero)
}

// TestSphereVerifyInvariant_Breach rejects a constant off by more than
// the tolerance.
func TestSphereVerifyInvariant_Breach(t *testing.T) {
	s := curve.NewSphere()
	eff := effVec(100_000, 200_000)

	stored := math.LegacyNewDec(50_001_000_000)
	err := s.VerifyInvariant(eff, stored, math.LegacyNewDecWithPrec(1, 8))
	require.ErrorIs(t, err, types.ErrInvariantViolation)
}

// TestSpherePriceImpact_IncreasesWithSize checks impact monotonicity for
// a fixed pair and direction.
func TestSpherePriceImpact_IncreasesWithSize(t *testing.T) {
	s := curve.NewSphere()
	eff := effVec(100_000, 200_000)
	k := mustConstant(t, s, eff)

	prev := math.LegacyZeroDec()
	for _, amount := range []int64{1_000, 5_000, 20_000, 50_000} {
		impact, err := s.PriceImpact(eff, k, 0, 1, math.LegacyNewDec(amount))
		require.NoError(t, err)
		require.True(t, impact.GT(prev), "impact %s at size %d not above %s", impact, amount, prev)
		prev = impact
	}
}

// TestSphereFiveAssetSymmetry verifies that on an equal-reserve pool the
// pair choice does not matter.
func TestSphereFiveAssetSymmetry(t *testing.T) {
	s := curve.NewSphere()
	eff := effVec(1_000_000, 1_000_000, 1_000_000, 1_000_000, 1_000_000)
	k := mustConstant(t, s, eff)
	amount := math.LegacyNewDec(5_000)

	first, err := s.SwapOutput(eff, k, 0, 1, amount)
	require.NoError(t, err)
	second, err := s.SwapOutput(eff, k, 3, 4, amount)
	require.NoError(t, err)
	require.True(t, first.Equal(second), "%s vs %s", first, second)

	impactFirst, err := s.PriceImpact(eff, k, 0, 1, amount)
	require.NoError(t, err)
	impactSecond, err := s.PriceImpact(eff, k, 3, 4, amount)
	require.NoError(t, err)
	require.True(t, impactFirst.Equal(impactSecond))
}
