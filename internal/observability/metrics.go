package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shippoctl",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total Shippo API requests issued by the client.",
		},
		[]string{"resource", "method", "status"},
	)
	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shippoctl",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Shippo API request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"resource", "method", "status"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shippoctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests served by the mock API.",
		},
		[]string{"server", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shippoctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Mock API request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"server", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(apiRequests, apiDuration, httpRequests, httpDuration)
	})
}

// RecordAPIRequest records one client call. status is 0 when no response
// was received.
func RecordAPIRequest(resource, method string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	apiRequests.WithLabelValues(resource, method, statusLabel).Inc()
	apiDuration.WithLabelValues(resource, method, statusLabel).Observe(duration.Seconds())
}

func RecordHTTPRequest(server, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(server, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(server, method, path, statusLabel).Observe(duration.Seconds())
}
