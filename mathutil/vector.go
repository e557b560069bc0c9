package mathutil

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
)

// Vector helpers over reserve-shaped []LegacyDec slices. Accumulation
// happens on raw scaled integers with a width check per step, so a long
// vector cannot silently wrap.

// Dot returns the inner product of a and b.
func Dot(a, b []math.LegacyDec) (math.LegacyDec, error) {
	if len(a) != len(b) {
		return math.LegacyDec{}, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	sum := new(big.Int)
	for i := range a {
		term := new(big.Int).Mul(a[i].BigInt(), b[i].BigInt())
		term.Quo(term, decScale)
		sum.Add(sum, term)
		if !withinWidth(sum) {
			return math.LegacyDec{}, fmt.Errorf("%w: dot product exceeds maximum width at term %d", ErrOverflow, i)
		}
	}
	return math.LegacyNewDecFromBigIntWithPrec(sum, math.LegacyPrecision), nil
}

// Sum returns the coordinate sum of a. This is the plane-sum used by tick
// geometry.
func Sum(a []math.LegacyDec) (math.LegacyDec, error) {
	sum := new(big.Int)
	for i := range a {
		sum.Add(sum, a[i].BigInt())
		if !withinWidth(sum) {
			return math.LegacyDec{}, fmt.Errorf("%w: sum exceeds maximum width at term %d", ErrOverflow, i)
		}
	}
	return math.LegacyNewDecFromBigIntWithPrec(sum, math.LegacyPrecision), nil
}

// L2Norm returns sqrt(sum(a_i^2)).
func L2Norm(a []math.LegacyDec) (math.LegacyDec, error) {
	dot, err := Dot(a, a)
	if err != nil {
		return math.LegacyDec{}, err
	}
	norm, err := dot.ApproxSqrt()
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("norm square root: %w", err)
	}
	return norm, nil
}

// WeightedAverage returns sum(values_i * weights_i) / sum(weights_i).
func WeightedAverage(values, weights []math.LegacyDec) (math.LegacyDec, error) {
	if len(values) != len(weights) {
		return math.LegacyDec{}, fmt.Errorf("%w: %d values vs %d weights", ErrDimensionMismatch, len(values), len(weights))
	}
	numerator, err := Dot(values, weights)
	if err != nil {
		return math.LegacyDec{}, err
	}
	denominator, err := Sum(weights)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if denominator.IsZero() {
		return math.LegacyDec{}, fmt.Errorf("%w: total weight is zero", ErrDivisionByZero)
	}
	return SafeDecQuo(numerator, denominator)
}

// PowSum returns sum(a_i^exponent), the generalized constraint sum the
// superellipse uses. Exponent 2 takes the cheap Dot path.
func PowSum(a []math.LegacyDec, exponent math.LegacyDec) (math.LegacyDec, error) {
	if exponent.Equal(math.LegacyNewDec(2)) {
		return Dot(a, a)
	}
	sum := new(big.Int)
	for i := range a {
		term, err := Pow(a[i].Abs(), exponent)
		if err != nil {
			return math.LegacyDec{}, fmt.Errorf("term %d: %w", i, err)
		}
		sum.Add(sum, term.BigInt())
		if !withinWidth(sum) {
			return math.LegacyDec{}, fmt.Errorf("%w: power sum exceeds maximum width at term %d", ErrOverflow, i)
		}
	}
	return math.LegacyNewDecFromBigIntWithPrec(sum, math.LegacyPrecision), nil
}
