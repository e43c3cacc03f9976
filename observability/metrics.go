package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Search metrics
	SearchRequestsTotal *prometheus.CounterVec
	SearchDuration      *prometheus.HistogramVec
	SearchResultCount   *prometheus.HistogramVec

	// Resolution metrics. Totals are plain counters: labelling them by
	// symbol would let user input mint unbounded label cardinality, so the
	// symbol goes to the logs instead.
	ResolutionRequestsTotal prometheus.Counter
	ResolutionDuration      *prometheus.HistogramVec
	ResolutionFailuresTotal prometheus.Counter
	SyntheticFillsTotal     *prometheus.CounterVec

	// Provider metrics
	ProviderRequestsTotal *prometheus.CounterVec
	ProviderErrorsTotal   *prometheus.CounterVec
	ProviderDuration      *prometheus.HistogramVec

	// Generation backend metrics
	BackendAttemptsTotal  *prometheus.CounterVec
	BackendFallbacksTotal *prometheus.CounterVec
	BackendDuration       *prometheus.HistogramVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// defaultBuckets are the default histogram buckets for duration metrics (in seconds)
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// resultCountBuckets are histogram buckets for search result counts (0 to the 15 cap)
var resultCountBuckets = []float64{0, 1, 2, 5, 10, 15}

// globalMetrics is the global metrics instance
var globalMetrics *Metrics

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	m := &Metrics{
		SearchRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_scout",
				Subsystem: "search",
				Name:      "requests_total",
				Help:      "Total number of stock search requests",
			},
			[]string{"source"},
		),
		SearchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_scout",
				Subsystem: "search",
				Name:      "duration_seconds",
				Help:      "Duration of search aggregation in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"source"},
		),
		SearchResultCount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_scout",
				Subsystem: "search",
				Name:      "result_count",
				Help:      "Distribution of result counts returned per search",
				Buckets:   resultCountBuckets,
			},
			[]string{"source"},
		),

		ResolutionRequestsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "stock_scout",
				Subsystem: "resolution",
				Name:      "requests_total",
				Help:      "Total number of quote resolution requests",
			},
		),
		ResolutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_scout",
				Subsystem: "resolution",
				Name:      "duration_seconds",
				Help:      "Duration of quote resolution in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"status"},
		),
		ResolutionFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "stock_scout",
				Subsystem: "resolution",
				Name:      "failures_total",
				Help:      "Total number of resolutions where every provider failed",
			},
		),
		SyntheticFillsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_scout",
				Subsystem: "resolution",
				Name:      "synthetic_fills_total",
				Help:      "Total number of records completed by the synthetic filler",
			},
			[]string{"field"},
		),

		ProviderRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_scout",
				Subsystem: "provider",
				Name:      "requests_total",
				Help:      "Total number of upstream provider requests",
			},
			[]string{"provider", "operation"},
		),
		ProviderErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_scout",
				Subsystem: "provider",
				Name:      "errors_total",
				Help:      "Total number of upstream provider errors",
			},
			[]string{"provider", "operation", "error_type"},
		),
		ProviderDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_scout",
				Subsystem: "provider",
				Name:      "duration_seconds",
				Help:      "Duration of upstream provider calls in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"provider", "operation"},
		),

		BackendAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_scout",
				Subsystem: "backend",
				Name:      "attempts_total",
				Help:      "Total number of generation backend attempts",
			},
			[]string{"backend", "status"},
		),
		BackendFallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_scout",
				Subsystem: "backend",
				Name:      "fallbacks_total",
				Help:      "Total number of analyses served by the template fallback",
			},
			[]string{"category"},
		),
		BackendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_scout",
				Subsystem: "backend",
				Name:      "duration_seconds",
				Help:      "Duration of generation backend calls in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"backend"},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_scout",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_scout",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_scout",
				Subsystem: "http",
				Name:      "response_size_bytes",
				Help:      "Size of HTTP responses in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path"},
		),

		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "stock_scout",
				Subsystem: "circuit_breaker",
				Name:      "state",
				Help:      "Current state of circuit breakers (0=closed, 1=half-open, 2=open)",
			},
			[]string{"service"},
		),
		CircuitBreakerTrips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_scout",
				Subsystem: "circuit_breaker",
				Name:      "trips_total",
				Help:      "Total number of circuit breaker trips",
			},
			[]string{"service"},
		),
	}

	return m
}

// InitMetrics initializes the global metrics instance
func InitMetrics() *Metrics {
	globalMetrics = NewMetrics(nil)
	return globalMetrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	if globalMetrics == nil {
		return InitMetrics()
	}
	return globalMetrics
}

// RecordSearch records a completed search request
func (m *Metrics) RecordSearch(source string, resultCount int, duration time.Duration) {
	m.SearchRequestsTotal.WithLabelValues(source).Inc()
	m.SearchDuration.WithLabelValues(source).Observe(duration.Seconds())
	m.SearchResultCount.WithLabelValues(source).Observe(float64(resultCount))
}

// RecordResolutionRequest records a quote resolution request
func (m *Metrics) RecordResolutionRequest() {
	m.ResolutionRequestsTotal.Inc()
}

// RecordResolutionDuration records the duration of a quote resolution
func (m *Metrics) RecordResolutionDuration(status string, duration time.Duration) {
	m.ResolutionDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordResolutionFailure records a resolution where all providers failed
func (m *Metrics) RecordResolutionFailure() {
	m.ResolutionFailuresTotal.Inc()
}

// RecordSyntheticFill records a field completed by the synthetic filler
func (m *Metrics) RecordSyntheticFill(field string) {
	m.SyntheticFillsTotal.WithLabelValues(field).Inc()
}

// RecordProviderRequest records an upstream provider request
func (m *Metrics) RecordProviderRequest(provider, operation string) {
	m.ProviderRequestsTotal.WithLabelValues(provider, operation).Inc()
}

// RecordProviderError records an upstream provider error
func (m *Metrics) RecordProviderError(provider, operation, errorType string) {
	m.ProviderErrorsTotal.WithLabelValues(provider, operation, errorType).Inc()
}

// RecordProviderDuration records the duration of an upstream provider call
func (m *Metrics) RecordProviderDuration(provider, operation string, duration time.Duration) {
	m.ProviderDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

// RecordBackendAttempt records a generation backend attempt
func (m *Metrics) RecordBackendAttempt(backend, status string) {
	m.BackendAttemptsTotal.WithLabelValues(backend, status).Inc()
}

// RecordBackendFallback records an analysis served by the template fallback
func (m *Metrics) RecordBackendFallback(category string) {
	m.BackendFallbacksTotal.WithLabelValues(category).Inc()
}

// RecordBackendDuration records the duration of a generation backend call
func (m *Metrics) RecordBackendDuration(backend string, duration time.Duration) {
	m.BackendDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration, responseSize int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}

// SetCircuitBreakerState sets the current state of a circuit breaker
func (m *Metrics) SetCircuitBreakerState(service string, state int) {
	m.CircuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(service string) {
	m.CircuitBreakerTrips.WithLabelValues(service).Inc()
}

// Timer is a helper for timing operations
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// NewTimer creates a new timer
func (m *Metrics) NewTimer() *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: m,
	}
}

// ObserveSearch records the search duration and result count
func (t *Timer) ObserveSearch(source string, resultCount int) {
	t.metrics.RecordSearch(source, resultCount, time.Since(t.start))
}

// ObserveResolution records the resolution duration
func (t *Timer) ObserveResolution(status string) {
	t.metrics.RecordResolutionDuration(status, time.Since(t.start))
}

// ObserveProvider records the provider call duration
func (t *Timer) ObserveProvider(provider, operation string) {
	t.metrics.RecordProviderDuration(provider, operation, time.Since(t.start))
}

// ObserveBackend records the generation backend call duration
func (t *Timer) ObserveBackend(backend string) {
	t.metrics.RecordBackendDuration(backend, time.Since(t.start))
}

// Duration returns the elapsed time
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
