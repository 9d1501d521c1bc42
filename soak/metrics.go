package soak

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sortedlist",
		Subsystem: "soak",
		Name:      "operations_total",
		Help:      "Operations applied to soak lists, by operation",
	}, []string{"op"})

	invariantFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sortedlist",
		Subsystem: "soak",
		Name:      "failures_total",
		Help:      "Soak trials that ended with a failed check, by the operation that exposed it",
	}, []string{"op"})

	trialDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sortedlist",
		Subsystem: "soak",
		Name:      "trial_duration_seconds",
		Help:      "Wall time of a soak trial",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), //nolint:mnd
	}, []string{"elements", "failed"})
)
