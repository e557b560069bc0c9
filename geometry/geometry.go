// Package geometry partitions a pool's state space along its tick
// boundaries. A tick is the hyperplane sum(x_i) = c*sqrt(N) over the
// effective reserves; the package classifies points against the active
// planes, detects where a trade path crosses them, and reports the
// capital efficiency a tick's range affords.
package geometry

import (
	"cosmossdk.io/math"

	"github.com/orbital-amm/orbital/mathutil"
	"github.com/orbital-amm/orbital/types"
)

// RegionKind labels where a point sits relative to the tick planes.
type RegionKind int

const (
	// RegionInterior is the open region between boundaries.
	RegionInterior RegionKind = iota
	// RegionOnBoundary is a point on an active tick plane, within
	// tolerance.
	RegionOnBoundary
	// RegionExterior is an invalid point. It cannot result from a
	// correctly computed swap.
	RegionExterior
)

// String renders the region kind for logs and errors.
func (k RegionKind) String() string {
	switch k {
	case RegionInterior:
		return "interior"
	case RegionOnBoundary:
		return "on_boundary"
	case RegionExterior:
		return "exterior"
	default:
		return "unknown"
	}
}

// Region is the classification result. TickIndex addresses pool.Ticks and
// is meaningful only when Kind is RegionOnBoundary.
type Region struct {
	Kind      RegionKind
	TickIndex int
}

// Classify places the effective point against the pool's active tick
// planes. A point with any negative coordinate is exterior. A point whose
// plane-sum lies within the relative tolerance of an active boundary is on
// that boundary; ties resolve to the lowest boundary constant because
// ticks are kept sorted ascending. Everything else is interior.
func Classify(pool *types.PoolState, effective []math.LegacyDec, tolerance math.LegacyDec) (Region, error) {
	if len(effective) != pool.Dimension {
		return Region{}, types.ErrDimensionMismatch.Wrapf(
			"point has %d coordinates, pool dimension is %d", len(effective), pool.Dimension)
	}
	for _, coord := range effective {
		if coord.IsNil() || coord.IsNegative() {
			return Region{Kind: RegionExterior, TickIndex: -1}, nil
		}
	}

	planeSum, err := mathutil.Sum(effective)
	if err != nil {
		return Region{}, types.ErrOverflow.Wrapf("plane sum: %v", err)
	}

	for i, tick := range pool.Ticks {
		if !tick.Active {
			continue
		}
		plane, err := tick.PlaneValue(pool.Dimension)
		if err != nil {
			return Region{}, err
		}
		if mathutil.ApproxEqual(planeSum, plane, tolerance) {
			return Region{Kind: RegionOnBoundary, TickIndex: i}, nil
		}
	}
	return Region{Kind: RegionInterior, TickIndex: -1}, nil
}
