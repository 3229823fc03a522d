package controller

import (
	"net/http"
	"time"

	"urix/pkg/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records request counts and latency histograms for HTTP routes
// through OpenTelemetry instruments.
type Metrics struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
}

// NewMetrics creates the request instruments on the provided meter provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter("urix/api")

	duration, err := meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("Time spent handling HTTP requests."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, err
	}
	total, err := meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of handled HTTP requests."))
	if err != nil {
		return nil, err
	}

	return &Metrics{duration: duration, total: total}, nil
}

// Handler wraps next so every request is recorded under the given route
// label. Routes are labeled with their registered pattern, not the raw URL,
// to keep metric cardinality bounded.
func (m *Metrics) Handler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		attrs := metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.String("route", route),
			attribute.Int("status", rec.status),
		)
		m.duration.Record(r.Context(), time.Since(start).Seconds(), attrs)
		m.total.Add(r.Context(), 1, attrs)
	})
}
