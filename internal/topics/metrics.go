package topics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricRefreshes      = "topics_cache_refreshes_total"
	MetricRefreshErrors  = "topics_cache_refresh_errors_total"
	MetricFallbacks      = "topics_cache_fallbacks_total"
	MetricMatches        = "topics_matches_total"
	MetricRefreshLatency = "topics_cache_refresh_latency_seconds"
)

// Match strategy labels.
const (
	StrategyExact     = "exact"
	StrategySynonym   = "synonym"
	StrategySubstring = "substring"
	StrategyFuzzy     = "fuzzy"
	StrategyMiss      = "miss"
)

// Metrics contains Prometheus metrics for the topic matcher.
// All operations are thread-safe; a nil *Metrics is a no-op.
type Metrics struct {
	refreshes      prometheus.Counter
	refreshErrors  prometheus.Counter
	fallbacks      prometheus.Counter
	matches        *prometheus.CounterVec
	refreshLatency prometheus.Histogram
}

// NewMetrics creates a new Metrics instance with all collectors
// initialized. The metrics are not registered; call Register to register
// them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRefreshes,
			Help: "Total number of topic cache refresh attempts",
		}),
		refreshErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRefreshErrors,
			Help: "Total number of failed topic cache refreshes",
		}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricFallbacks,
			Help: "Total number of times the default topic set was installed",
		}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricMatches,
			Help: "Total number of keyword match attempts by resolution strategy",
		}, []string{"strategy"}),
		refreshLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricRefreshLatency,
			Help:    "Histogram of topic cache refresh latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.refreshes,
		m.refreshErrors,
		m.fallbacks,
		m.matches,
		m.refreshLatency,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveRefresh records one refresh attempt and its latency.
func (m *Metrics) ObserveRefresh(seconds float64, err error) {
	if m == nil {
		return
	}
	m.refreshes.Inc()
	m.refreshLatency.Observe(seconds)
	if err != nil {
		m.refreshErrors.Inc()
	}
}

// IncFallback counts an installation of the default topic set.
func (m *Metrics) IncFallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

// IncMatch counts one match attempt under its resolution strategy.
func (m *Metrics) IncMatch(strategy string) {
	if m == nil {
		return
	}
	m.matches.WithLabelValues(strategy).Inc()
}
