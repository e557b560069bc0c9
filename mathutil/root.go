package mathutil

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
)

// maxRootOrder bounds the root order. Newton's linear approach phase
// costs on the order of n iterations from any fixed overshoot, so the
// budget below scales with n and needs a ceiling to stay bounded.
const maxRootOrder = 256

// NthRoot approximates value^(1/n) with Newton iteration:
//
//	y_{k+1} = ((n-1)*y_k + value / y_k^(n-1)) / n
//
// The starting estimate is derived from the bit length of the raw value,
// landing within a factor of eight of the true root regardless of
// magnitude. From an overshoot of c the linear phase contracts by
// (n-1)/n per step, so the loop budget is MaxIterations plus 3n steps;
// it stops early once the relative step size drops below
// DefaultTolerance and returns the best estimate either way, so the call
// always terminates.
func NthRoot(value math.LegacyDec, n uint64) (math.LegacyDec, error) {
	if value.IsNegative() {
		return math.LegacyDec{}, fmt.Errorf("%w: value %s", ErrNegativeInput, value)
	}
	if n == 0 {
		return math.LegacyDec{}, fmt.Errorf("%w: zeroth root", ErrDivisionByZero)
	}
	if n > maxRootOrder {
		return math.LegacyDec{}, fmt.Errorf("%w: root order %d exceeds maximum %d", ErrOverflow, n, maxRootOrder)
	}
	if n == 1 || value.IsZero() {
		return value, nil
	}

	tol := DefaultTolerance()
	nDec := math.LegacyNewDec(int64(n))
	nMinusOne := math.LegacyNewDec(int64(n - 1))

	y := rootSeed(value, n)

	budget := MaxIterations + 3*int(n)
	for i := 0; i < budget; i++ {
		yPow, err := powInt(y, n-1)
		if err != nil {
			return math.LegacyDec{}, err
		}
		if yPow.IsZero() {
			break
		}
		quotient, err := SafeDecQuo(value, yPow)
		if err != nil {
			return math.LegacyDec{}, err
		}
		term, err := SafeDecMul(nMinusOne, y)
		if err != nil {
			return math.LegacyDec{}, err
		}
		next, err := SafeDecQuo(term.Add(quotient), nDec)
		if err != nil {
			return math.LegacyDec{}, err
		}

		step := next.Sub(y).Abs()
		y = next
		if !y.IsZero() && step.Quo(y).LTE(tol) {
			break
		}
	}

	return y, nil
}

// rawScaleBits over-approximates the bit width of the LegacyDec scale
// factor 10^18 (about 2^59.79), keeping the seed an overestimate.
const rawScaleBits = 60

// rootSeed returns a power of two at or slightly above value^(1/n). For a
// raw (scaled) integer of b bits, the raw root has close to
// b/n + rawScaleBits*(n-1)/n bits.
func rootSeed(value math.LegacyDec, n uint64) math.LegacyDec {
	rawBits := uint64(value.BigInt().BitLen())
	seedBits := rawBits/n + 1 + (rawScaleBits*(n-1))/n + 1
	raw := new(big.Int).Lsh(big.NewInt(1), uint(seedBits))
	return math.LegacyNewDecFromBigIntWithPrec(raw, math.LegacyPrecision)
}

// Root raises value to 1/exponent for a possibly fractional exponent.
// The superellipse solve uses this with exponent u >= 2.
func Root(value, exponent math.LegacyDec) (math.LegacyDec, error) {
	if exponent.IsNil() || !exponent.IsPositive() {
		return math.LegacyDec{}, fmt.Errorf("%w: root exponent %s", ErrDivisionByZero, exponent)
	}
	// Integer exponents take the dedicated Newton path; it is cheaper and
	// does not compound the Pow fractional-bit error.
	if exponent.IsInteger() && exponent.TruncateInt().IsInt64() {
		return NthRoot(value, uint64(exponent.TruncateInt64()))
	}
	inverse, err := SafeDecQuo(math.LegacyOneDec(), exponent)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return Pow(value, inverse)
}
