package types

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestNamedFeeTiersAreValid(t *testing.T) {
	for _, tier := range []FeeTier{StandardFeeTier, LowFeeTier, HighFeeTier} {
		require.NoError(t, tier.Validate(), "tier %s", tier.Name)
	}
}

func TestFeeTierByName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantTier string
		wantErr  bool
	}{
		{"standard", "standard", "standard", false},
		{"empty defaults to standard", "", "standard", false},
		{"low", "low", "low", false},
		{"high", "high", "high", false},
		{"unknown", "ultra", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, err := FeeTierByName(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidParams)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantTier, tier.Name)
		})
	}
}

func TestFeeTier_Validate(t *testing.T) {
	base := StandardFeeTier

	broken := base
	broken.SwapFee = math.LegacyNewDec(1)
	require.ErrorIs(t, broken.Validate(), ErrInvalidParams)

	broken = base
	broken.LPFee = math.LegacyNewDecWithPrec(-1, 4)
	require.ErrorIs(t, broken.Validate(), ErrInvalidParams)

	broken = base
	broken.ProtocolFee = math.LegacyNewDecWithPrec(6, 4) // split no longer sums
	require.ErrorIs(t, broken.Validate(), ErrInvalidParams)

	broken = base
	broken.MinLiquidity = math.NewInt(-1)
	require.ErrorIs(t, broken.Validate(), ErrInvalidParams)
}

func TestFeeTier_SplitFee(t *testing.T) {
	// Standard tier: protocol share is 0.0005/0.003 = 1/6 of the fee.
	lp, protocol := StandardFeeTier.SplitFee(math.NewInt(1000))
	require.True(t, protocol.Equal(math.NewInt(166)), "protocol fee %s", protocol)
	require.True(t, lp.Equal(math.NewInt(834)), "lp fee %s", lp)
	require.True(t, lp.Add(protocol).Equal(math.NewInt(1000)))
}

func TestFeeTier_SplitFeeSumsExactly(t *testing.T) {
	// Truncation dust lands on the LP side for every tier and amount.
	amounts := []int64{1, 2, 3, 7, 999, 1000, 123457}
	for _, tier := range []FeeTier{StandardFeeTier, LowFeeTier, HighFeeTier} {
		for _, amt := range amounts {
			fee := math.NewInt(amt)
			lp, protocol := tier.SplitFee(fee)
			require.True(t, lp.Add(protocol).Equal(fee),
				"tier %s fee %s: %s + %s", tier.Name, fee, lp, protocol)
			require.False(t, lp.IsNegative())
			require.False(t, protocol.IsNegative())
		}
	}
}

func TestFeeTier_SplitFeeZero(t *testing.T) {
	lp, protocol := StandardFeeTier.SplitFee(math.ZeroInt())
	require.True(t, lp.IsZero())
	require.True(t, protocol.IsZero())
}
