// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ClientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "client_requests_total",
			Help: "Total number of requests issued to the backend",
		},
		[]string{"endpoint", "method", "status"},
	)

	ClientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "client_request_duration_seconds",
			Help: "Duration of backend requests in seconds",
		},
		[]string{"endpoint", "method"},
	)

	ScreenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screen_refreshes_total",
			Help: "Total number of polling refreshes per screen",
		},
		[]string{"screen"},
	)
)
