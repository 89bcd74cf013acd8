package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "TripMate"

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	UpstreamRequestsTotal   metric.Int64Counter
	UpstreamDurationSeconds metric.Float64Histogram
	CacheLookupsTotal       metric.Int64Counter
	RankerPassesTotal       metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider, so it must run
// after the tracer package installed the Prometheus-backed provider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter(meterName)
		var err error
		m := &AppMetrics{}

		m.UpstreamRequestsTotal, err = meter.Int64Counter(
			"upstream_requests_total",
			metric.WithDescription("Total number of calls made to external data sources"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create upstream_requests_total: %v", err)
		}

		m.UpstreamDurationSeconds, err = meter.Float64Histogram(
			"upstream_request_duration_seconds",
			metric.WithDescription("Duration of calls to external data sources in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create upstream_request_duration_seconds: %v", err)
		}

		m.CacheLookupsTotal, err = meter.Int64Counter(
			"cache_lookups_total",
			metric.WithDescription("Cache lookups by namespace and result"),
			metric.WithUnit("{lookup}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create cache_lookups_total: %v", err)
		}

		m.RankerPassesTotal, err = meter.Int64Counter(
			"ranker_passes_total",
			metric.WithDescription("Attraction ranking passes executed, by pass and outcome"),
			metric.WithUnit("{pass}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create ranker_passes_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the AppMetrics instance, initializing it against the current
// global MeterProvider (a no-op provider in tests) on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
