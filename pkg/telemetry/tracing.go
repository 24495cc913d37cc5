// Package telemetry configures OpenTelemetry tracing and metrics for the
// route simulator and provides helpers for instrumenting swap operations.
// Traces go to an OTLP/HTTP collector; metrics are collected through a
// Prometheus exporter and written out in the text exposition format.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "pawswap-routesim"
	serviceVersion = "1.0.0"
)

// Config holds the configuration for tracing and metrics
type Config struct {
	Enabled     bool
	Endpoint    string
	SampleRate  float64
	Environment string
	RunID       string

	// PrometheusEnabled collects route metrics through the Prometheus
	// exporter, independent of tracing.
	PrometheusEnabled bool
}

// Provider manages the OpenTelemetry tracer and meter providers
type Provider struct {
	tracerProvider *tracesdk.TracerProvider
	meterProvider  *metricsdk.MeterProvider
	tracer         trace.Tracer
	meter          metric.Meter
	registry       *promclient.Registry
	routeMetrics   *RouteMetrics
	config         Config
}

// NewProvider initializes tracing and metrics. Whatever the config leaves
// disabled falls back to the global no-op tracer or meter.
func NewProvider(cfg Config) (*Provider, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid telemetry config: %w", err)
	}

	provider := &Provider{config: cfg}
	if cfg.Enabled || cfg.PrometheusEnabled {
		if err := provider.init(); err != nil {
			return nil, err
		}
	}

	routeMetrics, err := newRouteMetrics(provider.Meter())
	if err != nil {
		return nil, fmt.Errorf("failed to create route metrics: %w", err)
	}
	provider.routeMetrics = routeMetrics
	return provider, nil
}

func (p *Provider) init() error {
	cfg := p.config

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("environment", cfg.Environment),
			attribute.String("routesim.run_id", cfg.RunID),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	if cfg.Enabled {
		if err := p.initTracing(res); err != nil {
			return fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}
	if cfg.PrometheusEnabled {
		if err := p.initMetrics(res); err != nil {
			return fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}
	return nil
}

// ValidateConfig validates the tracing configuration
func ValidateConfig(cfg Config) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Endpoint == "" {
		return fmt.Errorf("otlp endpoint is required")
	}
	if _, err := url.Parse(cfg.Endpoint); err != nil {
		return fmt.Errorf("invalid otlp endpoint: %w", err)
	}
	if cfg.SampleRate < 0 || cfg.SampleRate > 1 {
		return fmt.Errorf("sample rate must be between 0 and 1")
	}
	return nil
}

func (p *Provider) initTracing(res *resource.Resource) error {
	endpoint := strings.TrimPrefix(p.config.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	client := otlptracehttp.NewClient(
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithURLPath("/v1/traces"),
	)

	exporter, err := otlptrace.New(context.Background(), client)
	if err != nil {
		return fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	tp := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exporter,
			tracesdk.WithMaxExportBatchSize(512),
			tracesdk.WithBatchTimeout(5*time.Second),
		),
		tracesdk.WithResource(res),
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(p.config.SampleRate))),
	)
	otel.SetTracerProvider(tp)

	p.tracerProvider = tp
	p.tracer = tp.Tracer(serviceName)
	return nil
}

// Shutdown flushes and stops the tracer and meter providers
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.tracerProvider != nil {
		if err := p.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown tracer provider: %w", err))
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown meter provider: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Tracer returns the OpenTelemetry tracer
func (p *Provider) Tracer() trace.Tracer {
	if p.tracer == nil {
		return otel.Tracer(serviceName)
	}
	return p.tracer
}

// StartRouteSpan starts a span for one simulated route operation.
func (p *Provider) StartRouteSpan(ctx context.Context, operation string, poolIds []uint64) (context.Context, trace.Span) {
	ids := make([]int64, len(poolIds))
	for i, id := range poolIds {
		ids[i] = int64(id)
	}
	return p.Tracer().Start(ctx, fmt.Sprintf("routesim.%s", operation),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("routesim.operation", operation),
			attribute.Int64Slice("route.pool_ids", ids),
			attribute.Int("route.hops", len(poolIds)),
		),
	)
}

// RecordError records an error on the span
func RecordError(span trace.Span, err error) {
	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// AddSpanAttributes adds attributes to a span
func AddSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	if span != nil {
		span.SetAttributes(attrs...)
	}
}
