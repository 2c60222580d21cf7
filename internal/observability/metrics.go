package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "ftc_team_stats"

// Metrics is the service's Prometheus surface. All methods are safe on a
// nil receiver so callers can run without metrics.
type Metrics struct {
	registry *prometheus.Registry

	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	circuitChanges   *prometheus.CounterVec
	seasonFallbacks  *prometheus.CounterVec
	panelStates      *prometheus.CounterVec
	loadDuration     prometheus.Histogram
	loadTimeouts     prometheus.Counter
	pathDivergence   prometheus.Counter
	httpRequests     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "ftcscout",
			Name:      "requests_total",
			Help:      "GraphQL requests sent to FTCScout by operation and outcome.",
		}, []string{"operation", "outcome"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "ftcscout",
			Name:      "request_duration_seconds",
			Help:      "GraphQL request latency by operation.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"operation"}),
		circuitChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "ftcscout",
			Name:      "circuit_transitions_total",
			Help:      "Circuit breaker transitions by target state.",
		}, []string{"state"}),
		seasonFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "stats",
			Name:      "season_fallbacks_total",
			Help:      "Loads that fell back to the previous season, by task.",
		}, []string{"task"}),
		panelStates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "stats",
			Name:      "panel_states_total",
			Help:      "Final panel state per load.",
		}, []string{"panel", "state"}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "stats",
			Name:      "load_duration_seconds",
			Help:      "Time until all load tasks settled or the load timed out.",
			Buckets:   prometheus.DefBuckets,
		}),
		loadTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "stats",
			Name:      "load_timeouts_total",
			Help:      "Loads that hit the overall timeout.",
		}),
		pathDivergence: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "stats",
			Name:      "aggregation_divergence_total",
			Help:      "Loads where event stats and match counts disagreed.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.providerRequests,
		m.providerLatency,
		m.circuitChanges,
		m.seasonFallbacks,
		m.panelStates,
		m.loadDuration,
		m.loadTimeouts,
		m.pathDivergence,
		m.httpRequests,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveProviderRequest(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.providerRequests.WithLabelValues(operation, outcome).Inc()
	m.providerLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveCircuitTransition(state string) {
	if m == nil {
		return
	}
	m.circuitChanges.WithLabelValues(state).Inc()
}

func (m *Metrics) ObserveSeasonFallback(task string) {
	if m == nil {
		return
	}
	m.seasonFallbacks.WithLabelValues(task).Inc()
}

func (m *Metrics) ObservePanel(panel, state string) {
	if m == nil {
		return
	}
	m.panelStates.WithLabelValues(panel, state).Inc()
}

func (m *Metrics) ObserveLoad(elapsed time.Duration, timedOut bool) {
	if m == nil {
		return
	}
	m.loadDuration.Observe(elapsed.Seconds())
	if timedOut {
		m.loadTimeouts.Inc()
	}
}

func (m *Metrics) ObserveAggregationDivergence() {
	if m == nil {
		return
	}
	m.pathDivergence.Inc()
}

func (m *Metrics) ObserveHTTPRequest(route string, code int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, httpCode(code)).Inc()
}

func httpCode(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
