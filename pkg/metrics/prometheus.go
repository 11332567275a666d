package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	snapshotSize *prometheus.GaugeVec
	latency      *prometheus.HistogramVec
}

// New creates a recorder registered on the default registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a recorder registered on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signaldash_upstream_fetches_total",
				Help: "Total number of upstream fetches by source, symbol and result",
			},
			[]string{"source", "symbol", "result"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signaldash_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		snapshotSize: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "signaldash_snapshot_size",
				Help: "Number of records in the most recent snapshot",
			},
			[]string{"kind"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "signaldash_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch records one upstream fetch outcome.
func (r *Recorder) RecordFetch(source, symbol, result string) {
	r.fetchesTotal.WithLabelValues(source, symbol, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordSnapshot records the size of the latest snapshot of a kind.
func (r *Recorder) RecordSnapshot(kind string, size int) {
	r.snapshotSize.WithLabelValues(kind).Set(float64(size))
}
