package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiofront_http_requests_total",
			Help: "Total number of HTTP requests served by the frontend",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studiofront_http_request_duration_seconds",
			Help:    "Frontend HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiofront_upstream_requests_total",
			Help: "Total number of requests sent to the studio backend API",
		},
		[]string{"method", "status"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studiofront_upstream_request_duration_seconds",
			Help:    "Studio backend API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiofront_bookings_total",
			Help: "Total number of booking attempts made through the frontend",
		},
		[]string{"outcome"},
	)

	CheckinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiofront_checkins_total",
			Help: "Total number of attendance actions",
		},
		[]string{"action"},
	)

	CSVExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiofront_csv_exports_total",
			Help: "Total number of CSV report downloads",
		},
		[]string{"report"},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiofront_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordUpstreamRequest(method, status string, duration float64) {
	UpstreamRequestsTotal.WithLabelValues(method, status).Inc()
	UpstreamRequestDuration.WithLabelValues(method).Observe(duration)
}

func RecordBooking(outcome string) {
	BookingsTotal.WithLabelValues(outcome).Inc()
}

func RecordCheckin(action string) {
	CheckinsTotal.WithLabelValues(action).Inc()
}

func RecordCSVExport(report string) {
	CSVExportsTotal.WithLabelValues(report).Inc()
}

func RecordLogin(result string) {
	LoginsTotal.WithLabelValues(result).Inc()
}
