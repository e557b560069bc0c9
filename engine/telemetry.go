package engine

import "go.uber.org/atomic"

// Telemetry holds lock-free counters for engine activity. Counters only
// ever increase; readers take a Snapshot for a consistent-enough view.
type Telemetry struct {
	PoolsCreated    atomic.Uint64
	TradesExecuted  atomic.Uint64
	TradesFailed    atomic.Uint64
	QuotesServed    atomic.Uint64
	SegmentsTotal   atomic.Uint64
	LiquidityEvents atomic.Uint64
}

// NewTelemetry returns a zeroed counter set.
func NewTelemetry() *Telemetry {
	return &Telemetry{}
}

// TelemetrySnapshot is a plain-value copy of the counters.
type TelemetrySnapshot struct {
	PoolsCreated    uint64
	TradesExecuted  uint64
	TradesFailed    uint64
	QuotesServed    uint64
	SegmentsTotal   uint64
	LiquidityEvents uint64
}

// Snapshot reads every counter once. Individual loads are atomic; the set
// as a whole is not, which is fine for reporting.
func (t *Telemetry) Snapshot() TelemetrySnapshot {
	return TelemetrySnapshot{
		PoolsCreated:    t.PoolsCreated.Load(),
		TradesExecuted:  t.TradesExecuted.Load(),
		TradesFailed:    t.TradesFailed.Load(),
		QuotesServed:    t.QuotesServed.Load(),
		SegmentsTotal:   t.SegmentsTotal.Load(),
		LiquidityEvents: t.LiquidityEvents.Load(),
	}
}
