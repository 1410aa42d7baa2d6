package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	scansTotal  *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	basesFound  *prometheus.GaugeVec
	latency     *prometheus.HistogramVec
}

var (
	newOnce sync.Once
	std     *Recorder
)

// New returns the process-wide Prometheus metrics recorder. Collectors
// register on the default registry once.
func New() *Recorder {
	newOnce.Do(func() { std = newRecorder() })
	return std
}

func newRecorder() *Recorder {
	return &Recorder{
		scansTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basescan_scans_total",
				Help: "Total number of detection scans executed",
			},
			[]string{"symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basescan_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		basesFound: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "basescan_bases_found",
				Help: "Bases found by the most recent scan of a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "basescan_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordScan records a completed detection scan.
func (r *Recorder) RecordScan(symbol string, bases int) {
	r.scansTotal.WithLabelValues(symbol).Inc()
	r.basesFound.WithLabelValues(symbol).Set(float64(bases))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordBasesFound records the base count for a symbol.
func (r *Recorder) RecordBasesFound(symbol string, count int) {
	r.basesFound.WithLabelValues(symbol).Set(float64(count))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
