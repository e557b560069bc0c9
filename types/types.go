package types

// ModuleName is the codespace for registered errors and the logging scope
// for everything in this library.
const ModuleName = "amm"

// Bounds on pool geometry. MinDimension is the degenerate two-asset pool;
// MaxDimension caps the reserve vector so per-trade work stays linear in a
// known constant.
const (
	MinDimension = 2
	MaxDimension = 1024

	// MaxTicks bounds the crossing search and, together with the segment
	// cap of 2*MaxTicks+2, guarantees trade execution terminates. A trade
	// path can meet each tick plane at most twice.
	MaxTicks = 256

	// MaxShapeU caps the superellipse exponent. The u-th root solve
	// converges within its iteration budget up to this order, and
	// exponents beyond it price like a constant-sum curve anyway.
	MaxShapeU = 64
)

// CurveType selects the invariant a pool enforces. It is fixed at pool
// creation.
type CurveType int32

const (
	CurveUnspecified CurveType = iota
	// CurveSphere enforces sum(x_i^2) == R^2 over effective reserves.
	CurveSphere
	// CurveSuperellipse enforces sum(|x_i|^u) == K with shape parameter
	// u >= 2. Higher u concentrates liquidity around the equal-price point.
	CurveSuperellipse
)

// String implements fmt.Stringer.
func (c CurveType) String() string {
	switch c {
	case CurveSphere:
		return "sphere"
	case CurveSuperellipse:
		return "superellipse"
	default:
		return "unspecified"
	}
}

// CurveTypeFromString parses the textual form used in pool definitions.
func CurveTypeFromString(s string) (CurveType, error) {
	switch s {
	case "sphere":
		return CurveSphere, nil
	case "superellipse":
		return CurveSuperellipse, nil
	default:
		return CurveUnspecified, ErrInvalidCurve.Wrapf("unknown curve type %q", s)
	}
}
