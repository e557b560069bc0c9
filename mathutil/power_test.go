package mathutil_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/orbital-amm/orbital/mathutil"
)

// requireNear asserts |actual - expected| <= tol with readable output.
func requireNear(t *testing.T, expected string, actual math.LegacyDec, tol string) {
	t.Helper()
	exp := math.LegacyMustNewDecFromStr(expected)
	bound := math.LegacyMustNewDecFromStr(tol)
	require.True(t, actual.Sub(exp).Abs().LTE(bound),
		"got %s, want %s within %s", actual, expected, tol)
}

func TestPow_IntegerExponents(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		exponent string
		want     string
	}{
		{"square", "7", "2", "49"},
		{"cube", "100000", "3", "1000000000000000"},
		{"identity", "42", "1", "42"},
		{"anything to zero", "42", "0", "1"},
		{"zero base", "0", "5", "0"},
		{"fractional base", "0.5", "3", "0.125"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mathutil.Pow(
				math.LegacyMustNewDecFromStr(tt.base),
				math.LegacyMustNewDecFromStr(tt.exponent),
			)
			require.NoError(t, err)
			require.True(t, got.Equal(math.LegacyMustNewDecFromStr(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestPow_FractionalExponents(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		exponent string
		want     string
		tol      string
	}{
		{"square root", "9", "0.5", "3", "0.000000001"},
		{"two to the 2.5", "2", "2.5", "5.656854249492380195", "0.000000001"},
		{"sixteen to the 0.25", "16", "0.25", "2", "0.000000001"},
		{"ten to the 1.5", "10", "1.5", "31.622776601683793319", "0.00000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mathutil.Pow(
				math.LegacyMustNewDecFromStr(tt.base),
				math.LegacyMustNewDecFromStr(tt.exponent),
			)
			require.NoError(t, err)
			requireNear(t, tt.want, got, tt.tol)
		})
	}
}

func TestPow_RejectsNegative(t *testing.T) {
	_, err := mathutil.Pow(math.LegacyNewDec(-2), math.LegacyNewDec(2))
	require.ErrorIs(t, err, mathutil.ErrNegativeInput)

	_, err = mathutil.Pow(math.LegacyNewDec(2), math.LegacyNewDec(-1))
	require.ErrorIs(t, err, mathutil.ErrNegativeInput)
}

func TestPow_OverflowingExponent(t *testing.T) {
	_, err := mathutil.Pow(math.LegacyNewDec(10), math.LegacyNewDec(1<<21))
	require.ErrorIs(t, err, mathutil.ErrOverflow)

	// Large base with a modest exponent overflows the width check, not a
	// panic inside the multiply.
	big := math.LegacyNewDecFromInt(math.NewIntWithDecimal(1, 40))
	_, err = mathutil.Pow(big, math.LegacyNewDec(3))
	require.ErrorIs(t, err, mathutil.ErrOverflow)
}
