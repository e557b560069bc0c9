package types

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func tick(constant int64, depth int64, active bool) Tick {
	return Tick{
		Constant:       math.NewInt(constant),
		LiquidityDepth: math.NewInt(depth),
		Active:         active,
	}
}

func TestTick_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tick    Tick
		wantErr bool
	}{
		{"valid active", tick(100, 50, true), false},
		{"valid inactive", tick(100, 0, false), false},
		{"zero constant", tick(0, 50, true), true},
		{"negative constant", tick(-5, 50, true), true},
		{"nil constant", Tick{LiquidityDepth: math.NewInt(1)}, true},
		{"nil depth", Tick{Constant: math.NewInt(1)}, true},
		{"active negative depth", tick(100, -1, true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tick.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTick)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTick_PlaneValue(t *testing.T) {
	// sqrt(4) = 2, so the plane sits at exactly 2c.
	pv, err := tick(150, 0, true).PlaneValue(4)
	require.NoError(t, err)
	require.True(t, pv.Sub(math.LegacyNewDec(300)).Abs().LTE(math.LegacyNewDecWithPrec(1, 10)),
		"plane value %s not near 300", pv)

	// dim 2: 100*sqrt(2) = 141.42...
	pv, err = tick(100, 0, true).PlaneValue(2)
	require.NoError(t, err)
	expected := math.LegacyMustNewDecFromStr("141.421356237309504880")
	require.True(t, pv.Sub(expected).Abs().LTE(math.LegacyNewDecWithPrec(1, 8)),
		"plane value %s not near %s", pv, expected)
}

func TestValidateTicks(t *testing.T) {
	tests := []struct {
		name    string
		ticks   []Tick
		wantErr bool
	}{
		{"empty", nil, false},
		{"sorted unique", []Tick{tick(10, 1, true), tick(20, 1, true), tick(30, 1, false)}, false},
		{"unsorted", []Tick{tick(20, 1, true), tick(10, 1, true)}, true},
		{"duplicate constant", []Tick{tick(10, 1, true), tick(10, 2, true)}, true},
		{"invalid member", []Tick{tick(10, 1, true), tick(0, 1, true)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTicks(tt.ticks)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTick)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateTicks_TooMany(t *testing.T) {
	ticks := make([]Tick, MaxTicks+1)
	for i := range ticks {
		ticks[i] = tick(int64(i+1), 1, true)
	}
	require.ErrorIs(t, ValidateTicks(ticks), ErrInvalidTick)
}

func TestSortTicks(t *testing.T) {
	ticks := []Tick{tick(30, 1, true), tick(10, 2, true), tick(20, 3, false)}
	SortTicks(ticks)

	require.True(t, ticks[0].Constant.Equal(math.NewInt(10)))
	require.True(t, ticks[1].Constant.Equal(math.NewInt(20)))
	require.True(t, ticks[2].Constant.Equal(math.NewInt(30)))
	require.NoError(t, ValidateTicks(ticks))
}
