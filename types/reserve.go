package types

import (
	"strings"

	"cosmossdk.io/math"
)

// ReservePoint is an ordered vector of non-negative reserve magnitudes in
// integer base units. The index position is the asset's identity for the
// pool's lifetime; the vector length never changes once the pool exists.
type ReservePoint []math.Int

// NewReservePoint returns a zero vector of the given dimension.
func NewReservePoint(dim int) ReservePoint {
	rp := make(ReservePoint, dim)
	for i := range rp {
		rp[i] = math.ZeroInt()
	}
	return rp
}

// NewReservePointFromInt64s builds a vector from literal values. Intended
// for tests and pool definition files.
func NewReservePointFromInt64s(values ...int64) ReservePoint {
	rp := make(ReservePoint, len(values))
	for i, v := range values {
		rp[i] = math.NewInt(v)
	}
	return rp
}

// Dim returns the vector dimension.
func (rp ReservePoint) Dim() int {
	return len(rp)
}

// Clone returns a deep copy. math.Int is immutable under arithmetic but the
// slice itself is not, so mutation paths always work on a clone.
func (rp ReservePoint) Clone() ReservePoint {
	out := make(ReservePoint, len(rp))
	copy(out, rp)
	return out
}

// Validate checks that every coordinate is initialized and non-negative.
func (rp ReservePoint) Validate() error {
	if len(rp) < MinDimension {
		return ErrInvalidDimension.Wrapf("reserve point has %d coordinates, need at least %d", len(rp), MinDimension)
	}
	if len(rp) > MaxDimension {
		return ErrInvalidDimension.Wrapf("reserve point has %d coordinates, maximum is %d", len(rp), MaxDimension)
	}
	for i, v := range rp {
		if v.IsNil() {
			return ErrInvalidPoolState.Wrapf("reserve %d is nil", i)
		}
		if v.IsNegative() {
			return ErrInvalidPoolState.Wrapf("reserve %d is negative: %s", i, v)
		}
	}
	return nil
}

// Equal reports coordinate-wise equality.
func (rp ReservePoint) Equal(other ReservePoint) bool {
	if len(rp) != len(other) {
		return false
	}
	for i := range rp {
		if !rp[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// IsZero reports whether every coordinate is zero.
func (rp ReservePoint) IsZero() bool {
	for _, v := range rp {
		if !v.IsZero() {
			return false
		}
	}
	return true
}

// HasPositive reports whether at least one coordinate is strictly positive.
func (rp ReservePoint) HasPositive() bool {
	for _, v := range rp {
		if v.IsPositive() {
			return true
		}
	}
	return false
}

// Add returns rp + other coordinate-wise.
func (rp ReservePoint) Add(other ReservePoint) (ReservePoint, error) {
	if len(rp) != len(other) {
		return nil, ErrDimensionMismatch.Wrapf("cannot add vectors of dimension %d and %d", len(rp), len(other))
	}
	out := make(ReservePoint, len(rp))
	for i := range rp {
		out[i] = rp[i].Add(other[i])
	}
	return out, nil
}

// Sub returns rp - other coordinate-wise, failing if any coordinate would
// go negative.
func (rp ReservePoint) Sub(other ReservePoint) (ReservePoint, error) {
	if len(rp) != len(other) {
		return nil, ErrDimensionMismatch.Wrapf("cannot subtract vectors of dimension %d and %d", len(rp), len(other))
	}
	out := make(ReservePoint, len(rp))
	for i := range rp {
		if rp[i].LT(other[i]) {
			return nil, ErrUnderflow.Wrapf("reserve %d: cannot subtract %s from %s", i, other[i], rp[i])
		}
		out[i] = rp[i].Sub(other[i])
	}
	return out, nil
}

// Dec converts the vector to LegacyDec coordinates for curve math.
func (rp ReservePoint) Dec() []math.LegacyDec {
	out := make([]math.LegacyDec, len(rp))
	for i, v := range rp {
		out[i] = math.LegacyNewDecFromInt(v)
	}
	return out
}

// Min returns the smallest coordinate.
func (rp ReservePoint) Min() math.Int {
	min := rp[0]
	for _, v := range rp[1:] {
		if v.LT(min) {
			min = v
		}
	}
	return min
}

// Max returns the largest coordinate.
func (rp ReservePoint) Max() math.Int {
	max := rp[0]
	for _, v := range rp[1:] {
		if v.GT(max) {
			max = v
		}
	}
	return max
}

// String renders the vector as [a, b, ...] for logs and errors.
func (rp ReservePoint) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range rp {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}
