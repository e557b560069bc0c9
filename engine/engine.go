// Package engine orchestrates pools: creation, liquidity provisioning,
// quoting, and multi-tick trade execution. It owns no storage; callers
// hold the PoolState and must serialize writes to it. Every mutating
// operation works on a buffered copy and commits only on success, so a
// failed call leaves the pool untouched.
package engine

import (
	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/orbital-amm/orbital/curve"
	"github.com/orbital-amm/orbital/types"
)

// Engine evaluates pool operations under a fixed parameter set. Safe for
// concurrent use as long as callers serialize access to each PoolState;
// the engine itself keeps no per-pool state.
type Engine struct {
	logger    log.Logger
	params    types.Params
	telemetry *Telemetry
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger injects the logger used for lifecycle events.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithParams overrides the default guard-rail parameters.
func WithParams(params types.Params) Option {
	return func(e *Engine) { e.params = params }
}

// New builds an engine with a nop logger and default parameters unless
// options say otherwise.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:    log.NewNopLogger(),
		params:    types.DefaultParams(),
		telemetry: NewTelemetry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Params returns the engine's guard-rail parameters.
func (e *Engine) Params() types.Params { return e.params }

// Telemetry exposes the engine's activity counters.
func (e *Engine) Telemetry() *Telemetry { return e.telemetry }

// PoolConfig describes a pool to create.
type PoolConfig struct {
	Dimension int
	Curve     types.CurveType
	// ShapeU is the superellipse exponent; ignored for sphere pools.
	ShapeU math.LegacyDec
	// VirtualOffsets is the permanent depth offset per asset; nil means
	// zero offsets.
	VirtualOffsets types.ReservePoint
	// InitialDeposits seeds real reserves and mints the founder shares;
	// nil or all-zero creates an unfunded pool awaiting AddLiquidity.
	InitialDeposits types.ReservePoint
	// FeeTier pins the fee schedule; the zero value selects the standard
	// tier.
	FeeTier types.FeeTier
}

// CreatePool builds a pool from the config, establishes the invariant
// constant, and, when initial deposits are given, mints the founder
// shares.
func (e *Engine) CreatePool(cfg PoolConfig) (*types.PoolState, error) {
	if err := e.params.Validate(); err != nil {
		return nil, err
	}
	if cfg.Dimension < types.MinDimension || cfg.Dimension > types.MaxDimension {
		return nil, types.ErrInvalidDimension.Wrapf(
			"dimension %d outside [%d, %d]", cfg.Dimension, types.MinDimension, types.MaxDimension)
	}

	shapeU := cfg.ShapeU
	if cfg.Curve == types.CurveSphere {
		shapeU = math.LegacyZeroDec()
	}
	feeTier := cfg.FeeTier
	if feeTier.SwapFee.IsNil() {
		feeTier = types.StandardFeeTier
	}
	if err := feeTier.Validate(); err != nil {
		return nil, err
	}

	virtual := cfg.VirtualOffsets
	if virtual == nil {
		virtual = types.NewReservePoint(cfg.Dimension)
	}
	if len(virtual) != cfg.Dimension {
		return nil, types.ErrDimensionMismatch.Wrapf(
			"virtual offsets have %d coordinates, dimension is %d", len(virtual), cfg.Dimension)
	}
	if err := virtual.Validate(); err != nil {
		return nil, err
	}

	pool := &types.PoolState{
		Dimension:   cfg.Dimension,
		Curve:       cfg.Curve,
		ShapeU:      shapeU,
		Reserves:    types.NewReservePoint(cfg.Dimension),
		Virtual:     virtual.Clone(),
		Ticks:       nil,
		FeeTier:     feeTier,
		VolumeIn:    types.NewReservePoint(cfg.Dimension),
		FeesAccrued: types.NewReservePoint(cfg.Dimension),
		TotalShares: math.ZeroInt(),
	}

	cv, err := curve.ForPool(pool)
	if err != nil {
		return nil, err
	}
	pool.InvariantK, err = cv.Constant(pool.Effective())
	if err != nil {
		return nil, err
	}
	if err := pool.Validate(); err != nil {
		return nil, err
	}

	if cfg.InitialDeposits.HasPositive() {
		if _, err := e.AddLiquidity(pool, cfg.InitialDeposits); err != nil {
			return nil, err
		}
	}

	e.telemetry.PoolsCreated.Inc()
	e.logger.Info(types.EventTypePoolCreated,
		types.AttributeKeyDimension, pool.Dimension,
		types.AttributeKeyCurve, pool.Curve.String(),
		types.AttributeKeyShapeU, pool.ShapeU.String(),
		types.AttributeKeyInvariantK, pool.InvariantK.String(),
	)
	return pool, nil
}

// SetTicks replaces the pool's tick configuration. Ticks are sorted by
// boundary constant before validation; crossing search depends on the
// order.
func (e *Engine) SetTicks(pool *types.PoolState, ticks []types.Tick) error {
	sorted := make([]types.Tick, len(ticks))
	copy(sorted, ticks)
	types.SortTicks(sorted)
	if err := types.ValidateTicks(sorted); err != nil {
		return err
	}
	pool.Ticks = sorted
	e.logger.Info(types.EventTypeTicksConfigured,
		types.AttributeKeyTickCount, len(sorted),
	)
	return nil
}

// InstantaneousPrice returns the marginal rate between two assets at the
// pool's current point.
func (e *Engine) InstantaneousPrice(pool *types.PoolState, assetIn, assetOut int) (math.LegacyDec, error) {
	cv, err := curve.ForPool(pool)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return cv.InstantaneousPrice(pool.Effective(), assetIn, assetOut)
}

// VerifyInvariant checks the pool's effective reserves against its stored
// constant within the engine tolerance.
func (e *Engine) VerifyInvariant(pool *types.PoolState) error {
	cv, err := curve.ForPool(pool)
	if err != nil {
		return err
	}
	return cv.VerifyInvariant(pool.Effective(), pool.InvariantK, e.params.InvariantTolerance)
}
