package mathutil

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
)

// Overflow-safe arithmetic over math.Int. Results are bounded at 2^256;
// anything wider is an error rather than a silent wrap or panic.

// SafeAdd adds two math.Int values with overflow checking.
func SafeAdd(a, b math.Int) (math.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	if !withinWidth(result) {
		return math.Int{}, fmt.Errorf("%w: addition result exceeds maximum width", ErrOverflow)
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeSub subtracts b from a, failing on a negative result.
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, fmt.Errorf("%w: cannot subtract %s from %s", ErrUnderflow, b, a)
	}
	return a.Sub(b), nil
}

// SafeMul multiplies two math.Int values with overflow checking.
func SafeMul(a, b math.Int) (math.Int, error) {
	if a.IsZero() || b.IsZero() {
		return math.ZeroInt(), nil
	}
	result := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if !withinWidth(result) {
		return math.Int{}, fmt.Errorf("%w: multiplication result exceeds maximum width", ErrOverflow)
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeQuo divides a by b, truncating toward zero.
func SafeQuo(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.Int{}, ErrDivisionByZero
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(a.BigInt(), b.BigInt())), nil
}

// SafeMulDiv computes (a * b) / c with a width check on the intermediate
// product. Truncates toward zero; this is the share-accounting primitive.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, ErrDivisionByZero
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if !withinWidth(intermediate) {
		return math.Int{}, fmt.Errorf("%w: intermediate product exceeds maximum width", ErrOverflow)
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(intermediate, c.BigInt())), nil
}

// SafeDecMul multiplies two decimals through the raw scaled integers,
// truncating the result at 18 decimal places.
func SafeDecMul(a, b math.LegacyDec) (math.LegacyDec, error) {
	raw := new(big.Int).Mul(a.BigInt(), b.BigInt())
	raw.Quo(raw, decScale)
	if !withinWidth(raw) {
		return math.LegacyDec{}, fmt.Errorf("%w: decimal product exceeds maximum width", ErrOverflow)
	}
	return math.LegacyNewDecFromBigIntWithPrec(raw, math.LegacyPrecision), nil
}

// SafeDecQuo divides a by b through the raw scaled integers, truncating
// the result at 18 decimal places.
func SafeDecQuo(a, b math.LegacyDec) (math.LegacyDec, error) {
	if b.IsZero() {
		return math.LegacyDec{}, ErrDivisionByZero
	}
	raw := new(big.Int).Mul(a.BigInt(), decScale)
	raw.Quo(raw, b.BigInt())
	if !withinWidth(raw) {
		return math.LegacyDec{}, fmt.Errorf("%w: decimal quotient exceeds maximum width", ErrOverflow)
	}
	return math.LegacyNewDecFromBigIntWithPrec(raw, math.LegacyPrecision), nil
}
