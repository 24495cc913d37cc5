package telemetry

import (
	"context"
	"fmt"
	"io"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// RouteMetrics are the instruments recorded for every simulated route.
type RouteMetrics struct {
	routes   metric.Int64Counter
	hops     metric.Int64Histogram
	duration metric.Float64Histogram
}

// initMetrics sets up a meter provider backed by a Prometheus exporter. The
// exporter registers on a private registry so a run only reports its own
// series.
func (p *Provider) initMetrics(res *resource.Resource) error {
	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	mp := metricsdk.NewMeterProvider(
		metricsdk.WithResource(res),
		metricsdk.WithReader(exporter),
	)
	otel.SetMeterProvider(mp)

	p.registry = registry
	p.meterProvider = mp
	p.meter = mp.Meter(serviceName)
	return nil
}

// Meter returns the OpenTelemetry meter
func (p *Provider) Meter() metric.Meter {
	if p.meter == nil {
		return otel.Meter(serviceName)
	}
	return p.meter
}

func newRouteMetrics(meter metric.Meter) (*RouteMetrics, error) {
	routes, err := meter.Int64Counter("routesim.routes",
		metric.WithDescription("Routes simulated, by operation and result"))
	if err != nil {
		return nil, err
	}
	hops, err := meter.Int64Histogram("routesim.route.hops",
		metric.WithDescription("Hops per simulated route"),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 4, 6, 8, 12))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("routesim.route.duration",
		metric.WithDescription("Wall time spent simulating one route"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	return &RouteMetrics{routes: routes, hops: hops, duration: duration}, nil
}

// RouteMetrics returns the route instruments.
func (p *Provider) RouteMetrics() *RouteMetrics {
	return p.routeMetrics
}

// RecordRoute records one simulated route. A nil err counts as "ok".
func (m *RouteMetrics) RecordRoute(ctx context.Context, operation string, hops int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	op := attribute.String("operation", operation)
	m.routes.Add(ctx, 1, metric.WithAttributes(op, attribute.String("result", result)))
	m.hops.Record(ctx, int64(hops), metric.WithAttributes(op))
	m.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(op))
}

// WriteMetrics writes every collected series in the Prometheus text format.
// It writes nothing when metrics are disabled.
func (p *Provider) WriteMetrics(w io.Writer) error {
	if p.registry == nil {
		return nil
	}
	families, err := p.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
