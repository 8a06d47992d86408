package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "matchup"

const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the daemon's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	DatasetLoads   *prometheus.CounterVec
	LoadDuration   prometheus.Histogram
	TeamsLoaded    prometheus.Gauge
	Matchups       *prometheus.CounterVec
	LookupFailures *prometheus.CounterVec
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DatasetLoads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Dataset loads by result.",
		}, []string{"source", "result"}),
		LoadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Time to read and score a dataset.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		TeamsLoaded: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "teams_loaded",
			Help:      "Teams in the published field.",
		}),
		Matchups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matchups_resolved_total",
			Help:      "Resolved comparisons by outcome and lean.",
		}, []string{"outcome", "lean"}),
		LookupFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_failures_total",
			Help:      "Failed team or matchup lookups by reason.",
		}, []string{"reason"}),
	}
}

func (m *Metrics) ObserveLoad(source string, d time.Duration, teams int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.DatasetLoads.WithLabelValues(source, ResultError).Inc()
		return
	}
	m.DatasetLoads.WithLabelValues(source, ResultOK).Inc()
	m.LoadDuration.Observe(d.Seconds())
	m.TeamsLoaded.Set(float64(teams))
}

func (m *Metrics) ObserveMatchup(outcome, lean string) {
	if m == nil {
		return
	}
	m.Matchups.WithLabelValues(outcome, lean).Inc()
}

func (m *Metrics) ObserveLookupFailure(reason string) {
	if m == nil {
		return
	}
	m.LookupFailures.WithLabelValues(reason).Inc()
}
