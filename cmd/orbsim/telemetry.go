package main

import (
	"context"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const serviceName = "orbsim"

// TelemetryConfig holds the tracing and metrics settings.
type TelemetryConfig struct {
	Enabled           bool
	OTLPEndpoint      string
	PrometheusEnabled bool
	MetricsPort       int
	SampleRate        float64
}

// Telemetry manages the OpenTelemetry providers for the simulator.
type Telemetry struct {
	tracer       *trace.TracerProvider
	meter        metric.Meter
	config       TelemetryConfig
	shutdownFunc func(context.Context) error
}

// initTelemetry wires tracing and metrics per the config. With telemetry
// disabled every instrument still works, against no-op providers.
func initTelemetry(cfg TelemetryConfig) (*Telemetry, error) {
	tel := &Telemetry{config: cfg}
	if !cfg.Enabled {
		return tel, nil
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion("1.0.0"),
			attribute.String("component", "amm-simulator"),
		),
	)
	if err != nil {
		return nil, err
	}

	if err := tel.initTracing(res); err != nil {
		return nil, err
	}
	if err := tel.initMetrics(res); err != nil {
		return nil, err
	}
	return tel, nil
}

// initTracing sets up OTLP/HTTP trace export with ratio sampling.
func (t *Telemetry) initTracing(res *resource.Resource) error {
	if _, err := url.Parse(t.config.OTLPEndpoint); err != nil {
		return err
	}

	endpoint := strings.TrimPrefix(t.config.OTLPEndpoint, "http://")
	exp, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(
			trace.TraceIDRatioBased(t.config.SampleRate),
		)),
	)

	otel.SetTracerProvider(tp)
	t.tracer = tp
	t.shutdownFunc = tp.Shutdown
	return nil
}

// initMetrics exposes the meter through the Prometheus default registry,
// which the metrics HTTP server serves.
func (t *Telemetry) initMetrics(res *resource.Resource) error {
	if !t.config.PrometheusEnabled {
		return nil
	}

	exporter, err := prometheus.New()
	if err != nil {
		return err
	}

	provider := metricsdk.NewMeterProvider(
		metricsdk.WithResource(res),
		metricsdk.WithReader(exporter),
	)

	otel.SetMeterProvider(provider)
	t.meter = provider.Meter(serviceName)
	return nil
}

// Meter returns the simulator meter, no-op when metrics are off.
func (t *Telemetry) Meter() metric.Meter {
	if t.meter == nil {
		return noop.NewMeterProvider().Meter(serviceName)
	}
	return t.meter
}

// Shutdown flushes and stops the providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t.shutdownFunc != nil {
		return t.shutdownFunc(ctx)
	}
	return nil
}
