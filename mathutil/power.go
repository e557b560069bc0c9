package mathutil

import (
	"fmt"

	"cosmossdk.io/math"
)

// maxIntegerExponent caps the integer part of an exponent. Repeated
// squaring makes the cost logarithmic, but results above base^2^20 are
// far outside the numeric width anyway.
const maxIntegerExponent = 1 << 20

// Pow raises a non-negative base to a non-negative, possibly fractional
// exponent. The integer part is computed by repeated squaring; the
// fractional part by binary decomposition into successive square roots,
// consuming 60 fractional bits. Both stages are overflow-checked and run
// a fixed number of steps.
func Pow(base, exponent math.LegacyDec) (math.LegacyDec, error) {
	if base.IsNegative() {
		return math.LegacyDec{}, fmt.Errorf("%w: base %s", ErrNegativeInput, base)
	}
	if exponent.IsNegative() {
		return math.LegacyDec{}, fmt.Errorf("%w: exponent %s", ErrNegativeInput, exponent)
	}
	if exponent.IsZero() {
		return math.LegacyOneDec(), nil
	}
	if base.IsZero() {
		return math.LegacyZeroDec(), nil
	}

	intPart := exponent.TruncateInt()
	frac := exponent.Sub(math.LegacyNewDecFromInt(intPart))

	if !intPart.IsInt64() || intPart.Int64() > maxIntegerExponent {
		return math.LegacyDec{}, fmt.Errorf("%w: integer exponent %s too large", ErrOverflow, intPart)
	}

	result, err := powInt(base, uint64(intPart.Int64()))
	if err != nil {
		return math.LegacyDec{}, err
	}

	if frac.IsPositive() {
		fracResult, err := powFrac(base, frac)
		if err != nil {
			return math.LegacyDec{}, err
		}
		result, err = SafeDecMul(result, fracResult)
		if err != nil {
			return math.LegacyDec{}, err
		}
	}

	return result, nil
}

// powInt computes base^n by repeated squaring with width-checked products.
func powInt(base math.LegacyDec, n uint64) (math.LegacyDec, error) {
	result := math.LegacyOneDec()
	sq := base
	for n > 0 {
		var err error
		if n&1 == 1 {
			result, err = SafeDecMul(result, sq)
			if err != nil {
				return math.LegacyDec{}, err
			}
		}
		n >>= 1
		if n > 0 {
			sq, err = SafeDecMul(sq, sq)
			if err != nil {
				return math.LegacyDec{}, err
			}
		}
	}
	return result, nil
}

// powFrac computes base^frac for frac in (0, 1) by walking the binary
// digits of frac: the k-th square root of base contributes when bit k is
// set. At most fracBits digits are consumed, so the loop is bounded.
func powFrac(base, frac math.LegacyDec) (math.LegacyDec, error) {
	result := math.LegacyOneDec()
	r := base
	one := math.LegacyOneDec()

	for i := 0; i < fracBits && frac.IsPositive(); i++ {
		var err error
		r, err = r.ApproxSqrt()
		if err != nil {
			return math.LegacyDec{}, fmt.Errorf("square root failed at bit %d: %w", i, err)
		}
		frac = frac.MulInt64(2)
		if frac.GTE(one) {
			frac = frac.Sub(one)
			result, err = SafeDecMul(result, r)
			if err != nil {
				return math.LegacyDec{}, err
			}
		}
	}

	return result, nil
}
