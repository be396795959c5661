// Package metrics records per-invocation search telemetry with Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ff"

const (
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
)

// Recorder owns a private registry so that every invocation, and every test,
// starts from zero.
type Recorder struct {
	registry *prometheus.Registry

	Searches       *prometheus.CounterVec
	SearchDuration *prometheus.HistogramVec
	SearchResults  prometheus.Histogram
	Actions        *prometheus.CounterVec
	ConfigLoads    *prometheus.CounterVec
}

// New registers the ff metrics on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	r := &Recorder{
		registry: reg,
		Searches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "search",
				Name:      "runs_total",
			},
			[]string{"executor", "type", "outcome"},
		),
		SearchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "search",
				Name:      "duration_seconds",
				Buckets: []float64{
					0.01, // 10ms
					0.05, // 50ms
					0.1,  // 100ms
					0.5,  // 500ms
					1,    // 1s
					5,    // 5s
					15,   // 15s
					60,   // 1m
				},
			},
			[]string{"executor"},
		),
		SearchResults: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "search",
				Name:      "results",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		Actions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "actions",
				Name:      "total",
			},
			[]string{"action", "status"},
		),
		ConfigLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "config",
				Name:      "loads_total",
			},
			[]string{"source"},
		),
	}
	return r
}

// Registry exposes the underlying registry, e.g. for a Gatherer.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveSearch records one finished search.
func (r *Recorder) ObserveSearch(executor, searchType string, cancelled bool, elapsed time.Duration, results int) {
	outcome := OutcomeCompleted
	if cancelled {
		outcome = OutcomeCancelled
	}
	r.Searches.WithLabelValues(executor, searchType, outcome).Inc()
	r.SearchDuration.WithLabelValues(executor).Observe(elapsed.Seconds())
	r.SearchResults.Observe(float64(results))
}

// ObserveAction records a clipboard or terminal action and whether it succeeded.
func (r *Recorder) ObserveAction(action string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.Actions.WithLabelValues(action, status).Inc()
}

// WriteToTextfile writes all metrics in the text exposition format, suitable
// for the node_exporter textfile collector.
func (r *Recorder) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
