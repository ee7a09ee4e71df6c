package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskibarqy/chess-ratings/internal/platform/resilience"
)

const defaultMetricsNamespace = "chess_ratings"

// MetricsOption customizes NewMetrics.
type MetricsOption func(*Metrics)

func WithMetricsNamespace(namespace string) MetricsOption {
	return func(m *Metrics) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry registers collectors on registry instead of a fresh one.
func WithRegistry(registry *prometheus.Registry) MetricsOption {
	return func(m *Metrics) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// WithRuntimeCollectors adds the Go runtime and process collectors.
func WithRuntimeCollectors() MetricsOption {
	return func(m *Metrics) {
		m.runtime = true
	}
}

// Metrics owns the service's Prometheus collectors.
type Metrics struct {
	namespace string
	registry  *prometheus.Registry
	runtime   bool

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	fideSyncPlayers     *prometheus.CounterVec
	cacheLookups        *prometheus.CounterVec
	breakerState        *prometheus.GaugeVec
}

func NewMetrics(opts ...MetricsOption) *Metrics {
	m := &Metrics{
		namespace: defaultMetricsNamespace,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.runtime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	auto := promauto.With(m.registry)
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	m.fideSyncPlayers = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "fide_sync",
		Name:      "players_total",
		Help:      "Players processed by FIDE refreshes, by outcome.",
	}, []string{"outcome"})

	m.cacheLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Repository cache lookups by namespace and result.",
	}, []string{"namespace", "result"})

	m.breakerState = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "fide_client",
		Name:      "circuit_state",
		Help:      "1 for the FIDE client circuit breaker's current state, 0 otherwise.",
	}, []string{"state"})
	m.ObserveBreakerState(resilience.CircuitStateClosed, resilience.CircuitStateClosed)

	return m
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveFideSync(outcome string) {
	m.fideSyncPlayers.WithLabelValues(outcome).Inc()
}

// ObserveCacheLookup matches cache.Observer.
func (m *Metrics) ObserveCacheLookup(namespace string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(namespace, result).Inc()
}

// ObserveBreakerState matches resilience.StateChangeFunc.
func (m *Metrics) ObserveBreakerState(_, to resilience.CircuitState) {
	for _, state := range []resilience.CircuitState{
		resilience.CircuitStateClosed,
		resilience.CircuitStateOpen,
		resilience.CircuitStateHalfOpen,
	} {
		value := 0.0
		if state == to {
			value = 1
		}
		m.breakerState.WithLabelValues(string(state)).Set(value)
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
