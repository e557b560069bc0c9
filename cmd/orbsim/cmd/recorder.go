package cmd

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/orbital-amm/orbital/types"
)

const tracerName = "orbsim"

// Recorder publishes simulator activity as OpenTelemetry metrics and spans.
// Against a no-op meter every method is safe and free.
type Recorder struct {
	tracer trace.Tracer

	tradeCounter  metric.Int64Counter
	tradeDuration metric.Float64Histogram
	tradeSegments metric.Int64Histogram
	quoteCounter  metric.Int64Counter
	invariantK    metric.Float64Gauge
}

// NewRecorder builds the instrument set on the given meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	tradeCounter, err := meter.Int64Counter(
		"orbital.trades.total",
		metric.WithDescription("Total number of trade executions"),
		metric.WithUnit("{trade}"),
	)
	if err != nil {
		return nil, err
	}

	tradeDuration, err := meter.Float64Histogram(
		"orbital.trade.duration",
		metric.WithDescription("Trade execution time"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	tradeSegments, err := meter.Int64Histogram(
		"orbital.trade.segments",
		metric.WithDescription("Curve segments executed per trade"),
		metric.WithUnit("{segment}"),
	)
	if err != nil {
		return nil, err
	}

	quoteCounter, err := meter.Int64Counter(
		"orbital.quotes.total",
		metric.WithDescription("Total number of quotes served"),
		metric.WithUnit("{quote}"),
	)
	if err != nil {
		return nil, err
	}

	invariantK, err := meter.Float64Gauge(
		"orbital.pool.invariant",
		metric.WithDescription("Current pool invariant constant"),
	)
	if err != nil {
		return nil, err
	}

	return &Recorder{
		tracer:        otel.Tracer(tracerName),
		tradeCounter:  tradeCounter,
		tradeDuration: tradeDuration,
		tradeSegments: tradeSegments,
		quoteCounter:  quoteCounter,
		invariantK:    invariantK,
	}, nil
}

// RecordTrade records one trade attempt. The info may be nil on failure.
func (r *Recorder) RecordTrade(ctx context.Context, info *types.TradeInfo, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "failed"
	}
	attrs := []attribute.KeyValue{
		attribute.String("trade.status", status),
	}

	r.tradeCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
	r.tradeDuration.Record(ctx, float64(duration.Microseconds())/1000.0, metric.WithAttributes(attrs...))
	if info != nil {
		r.tradeSegments.Record(ctx, int64(info.Segments), metric.WithAttributes(attrs...))
	}
}

// RecordQuote records one served quote.
func (r *Recorder) RecordQuote(ctx context.Context, duration time.Duration) {
	r.quoteCounter.Add(ctx, 1)
	r.tradeDuration.Record(ctx, float64(duration.Microseconds())/1000.0,
		metric.WithAttributes(attribute.String("trade.status", "quote")))
}

// RecordInvariant publishes the pool's current invariant constant.
func (r *Recorder) RecordInvariant(ctx context.Context, pool *types.PoolState) {
	value, err := pool.InvariantK.Float64()
	if err != nil {
		return
	}
	r.invariantK.Record(ctx, value,
		metric.WithAttributes(attribute.String("curve", pool.Curve.String())))
}

// StartSpan opens a traced region; the returned func ends it.
func (r *Recorder) StartSpan(ctx context.Context, name string) (context.Context, func()) {
	ctx, span := r.tracer.Start(ctx, name)
	return ctx, func() { span.End() }
}
