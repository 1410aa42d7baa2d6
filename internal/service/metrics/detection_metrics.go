package metrics

import (
    "sync"

    "github.com/prometheus/client_golang/prometheus"
)

var (
    once sync.Once

    DetectionLatency = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "basescan",
            Subsystem: "api",
            Name:      "latency_seconds",
            Help:      "Latency of detection endpoints",
            Buckets:   prometheus.DefBuckets,
        },
        []string{"endpoint"},
    )

    DetectionErrors = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "basescan",
            Subsystem: "api",
            Name:      "errors_total",
            Help:      "Errors by detection endpoint",
        },
        []string{"endpoint"},
    )

    CacheHits = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "basescan",
            Subsystem: "api",
            Name:      "cache_hits_total",
            Help:      "Response cache hits by endpoint",
        },
        []string{"endpoint"},
    )
)

func Register() {
    once.Do(func() {
        prometheus.MustRegister(DetectionLatency, DetectionErrors, CacheHits)
    })
}
