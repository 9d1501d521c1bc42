package validate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// validationsTotal counts calls to Validate.
	//
	// Labels:
	//   - can_validate_type: "true" if the value implemented a validation interface.
	//   - has_error: "true" if validation failed.
	validationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "validation_calls_total",
		Help: "The total number of calls to Validate",
	}, []string{"can_validate_type", "has_error"})

	// validationTime records how long validators take, in milliseconds, per
	// Go type. Validating a large sorted list walks every node, so the
	// buckets reach well past the sub-millisecond range.
	validationTime = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name: "validation_time_millis",
		Help: "The time it takes to validate, in milliseconds",
		Buckets: []float64{
			0.01, 0.1, 1, 5, 10, 25, 50, 100, 250, 500, 1000,
		},
	}, []string{"type", "has_error"})
)

// init creates every validationsTotal series up front so rates are defined
// before the first call.
func init() {
	for _, canValidate := range []string{"true", "false"} {
		for _, hasError := range []string{"true", "false"} {
			validationsTotal.WithLabelValues(canValidate, hasError).Add(0)
		}
	}
}
