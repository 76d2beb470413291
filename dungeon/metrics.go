package dungeon

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes run-level Prometheus instruments. A nil *Metrics is a
// valid no-op.
type Metrics struct {
	runs      *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	agents    prometheus.Counter
	evaluated prometheus.Counter
	steps     prometheus.Histogram
	coverage  prometheus.Gauge
}

// NewMetrics registers the hunt instruments with reg. A nil reg creates
// unregistered instruments.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		// Labels: strategy, result ("ok" | "failed")
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "manahunt_runs_total",
			Help: "Hunts executed by strategy and result",
		}, []string{"strategy", "result"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "manahunt_reduction_duration_seconds",
			Help:    "Wall-clock time from dispatch to reduction completion",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"strategy"}),
		agents: f.NewCounter(prometheus.CounterOpts{
			Name: "manahunt_agents_total",
			Help: "Search agents run to completion",
		}),
		evaluated: f.NewCounter(prometheus.CounterOpts{
			Name: "manahunt_cells_evaluated_total",
			Help: "Distinct field cells evaluated",
		}),
		steps: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "manahunt_agent_steps",
			Help:    "Moves per agent before reaching a local maximum",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 200, 500},
		}),
		coverage: f.NewGauge(prometheus.GaugeOpts{
			Name: "manahunt_last_coverage_ratio",
			Help: "Fraction of grid cells evaluated by the last successful hunt",
		}),
	}
}

func (m *Metrics) observeFailure(s Strategy, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(s.String(), "failed").Inc()
	m.duration.WithLabelValues(s.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) observeReport(rep *Report, steps []int) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(rep.Strategy.String(), "ok").Inc()
	m.duration.WithLabelValues(rep.Strategy.String()).Observe(rep.Elapsed.Seconds())
	m.agents.Add(float64(rep.Agents))
	m.evaluated.Add(float64(rep.Evaluated))
	m.coverage.Set(rep.Coverage)
	for _, s := range steps {
		m.steps.Observe(float64(s))
	}
}
