// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentroll_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rentroll_http_request_duration_seconds",
			Help:    "HTTP request duration by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	TenantsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rentroll_tenants_created_total",
			Help: "Total number of tenants created",
		},
	)

	PaymentsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rentroll_payments_recorded_total",
			Help: "Total number of payments recorded",
		},
	)

	ReceiptsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rentroll_receipts_sent_total",
			Help: "Total number of receipt emails sent by the worker",
		},
	)
)

// Init registers metrics with Prometheus
func Init() {
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPDuration)
	prometheus.MustRegister(TenantsCreated)
	prometheus.MustRegister(PaymentsRecorded)
	prometheus.MustRegister(ReceiptsSent)
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
