package mathutil

import (
	"cosmossdk.io/math"
)

// ApproxEqual reports whether a and b agree within the given relative
// tolerance. The comparison scale is max(|a|, |b|, 1) so values near zero
// degrade to an absolute check instead of dividing by a vanishing base.
func ApproxEqual(a, b, tolerance math.LegacyDec) bool {
	diff := a.Sub(b).Abs()
	scale := math.LegacyOneDec()
	if abs := a.Abs(); abs.GT(scale) {
		scale = abs
	}
	if abs := b.Abs(); abs.GT(scale) {
		scale = abs
	}
	return diff.LTE(tolerance.Mul(scale))
}

// ApproxZero reports whether v is within tolerance of zero.
func ApproxZero(v, tolerance math.LegacyDec) bool {
	return v.Abs().LTE(tolerance)
}
