package scoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricItemsScored    = "relevance_items_scored_total"
	MetricScoringPasses  = "relevance_scoring_passes_total"
	MetricScoringLatency = "relevance_scoring_latency_seconds"
)

// Metrics contains Prometheus metrics for the composite scorer.
// All operations are thread-safe.
type Metrics struct {
	itemsScored    prometheus.Counter
	scoringPasses  prometheus.Counter
	scoringLatency prometheus.Histogram
}

// NewMetrics creates a new Metrics instance with all collectors
// initialized. The metrics are not registered; call Register to register
// them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		itemsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricItemsScored,
			Help: "Total number of candidate items scored",
		}),
		scoringPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricScoringPasses,
			Help: "Total number of scoring passes executed",
		}),
		scoringLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricScoringLatency,
			Help:    "Histogram of scoring pass latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.itemsScored,
		m.scoringPasses,
		m.scoringLatency,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObservePass records one completed scoring pass.
func (m *Metrics) ObservePass(itemCount int, seconds float64) {
	if m == nil {
		return
	}
	m.scoringPasses.Inc()
	m.itemsScored.Add(float64(itemCount))
	m.scoringLatency.Observe(seconds)
}
