package types

import (
	"cosmossdk.io/math"
)

// FeeTier is a fee schedule for a pool.
//
// Different asset sets warrant different fees: stable sets trade tight and
// cheap, volatile sets pay for the liquidity risk. The swap fee is charged
// on input; LPFee and ProtocolFee split it for accounting, with
// SwapFee = LPFee + ProtocolFee.
type FeeTier struct {
	Name         string
	SwapFee      math.LegacyDec
	LPFee        math.LegacyDec
	ProtocolFee  math.LegacyDec
	MinLiquidity math.Int
}

var (
	// StandardFeeTier (0.3%) suits most asset sets.
	StandardFeeTier = FeeTier{
		Name:         "standard",
		SwapFee:      math.LegacyNewDecWithPrec(3, 3),
		LPFee:        math.LegacyNewDecWithPrec(25, 4),
		ProtocolFee:  math.LegacyNewDecWithPrec(5, 4),
		MinLiquidity: math.NewInt(1000),
	}

	// LowFeeTier (0.05%) for tightly correlated sets such as stablecoins.
	LowFeeTier = FeeTier{
		Name:         "low",
		SwapFee:      math.LegacyNewDecWithPrec(5, 4),
		LPFee:        math.LegacyNewDecWithPrec(4, 4),
		ProtocolFee:  math.LegacyNewDecWithPrec(1, 4),
		MinLiquidity: math.NewInt(10000),
	}

	// HighFeeTier (1%) for volatile or thin asset sets.
	HighFeeTier = FeeTier{
		Name:         "high",
		SwapFee:      math.LegacyNewDecWithPrec(1, 2),
		LPFee:        math.LegacyNewDecWithPrec(8, 3),
		ProtocolFee:  math.LegacyNewDecWithPrec(2, 3),
		MinLiquidity: math.NewInt(500),
	}
)

// FeeTierByName resolves a tier from its textual name, defaulting to the
// standard tier for the empty string.
func FeeTierByName(name string) (FeeTier, error) {
	switch name {
	case "", "standard":
		return StandardFeeTier, nil
	case "low":
		return LowFeeTier, nil
	case "high":
		return HighFeeTier, nil
	default:
		return FeeTier{}, ErrInvalidParams.Wrapf("unknown fee tier %q", name)
	}
}

// Validate checks internal consistency of the tier.
func (f FeeTier) Validate() error {
	if f.SwapFee.IsNil() || f.SwapFee.IsNegative() || f.SwapFee.GTE(math.LegacyOneDec()) {
		return ErrInvalidParams.Wrapf("swap fee must be within [0, 1), got %s", f.SwapFee)
	}
	if f.LPFee.IsNil() || f.LPFee.IsNegative() {
		return ErrInvalidParams.Wrapf("lp fee must be non-negative, got %s", f.LPFee)
	}
	if f.ProtocolFee.IsNil() || f.ProtocolFee.IsNegative() {
		return ErrInvalidParams.Wrapf("protocol fee must be non-negative, got %s", f.ProtocolFee)
	}
	if !f.LPFee.Add(f.ProtocolFee).Equal(f.SwapFee) {
		return ErrInvalidParams.Wrapf("fee split %s + %s does not equal swap fee %s", f.LPFee, f.ProtocolFee, f.SwapFee)
	}
	if f.MinLiquidity.IsNil() || f.MinLiquidity.IsNegative() {
		return ErrInvalidParams.Wrapf("min liquidity must be non-negative, got %s", f.MinLiquidity)
	}
	return nil
}

// SplitFee divides a charged fee amount into its LP and protocol portions.
// The protocol share is computed first and truncated; the LP share takes
// the remainder so the split always sums to the charged amount.
func (f FeeTier) SplitFee(fee math.Int) (lpFee, protocolFee math.Int) {
	if fee.IsZero() || f.SwapFee.IsZero() {
		return math.ZeroInt(), math.ZeroInt()
	}
	protocolShare := f.ProtocolFee.Quo(f.SwapFee)
	protocolFee = math.LegacyNewDecFromInt(fee).Mul(protocolShare).TruncateInt()
	lpFee = fee.Sub(protocolFee)
	return lpFee, protocolFee
}
