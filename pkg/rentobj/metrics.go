package rentobj

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Backend client metrics
var (
	backendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rentobj_backend_request_duration_seconds",
			Help:    "Duration of backend storage requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"endpoint"},
	)

	backendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentobj_backend_errors_total",
			Help: "Total number of failed backend transport requests",
		},
		[]string{"endpoint"},
	)
)
