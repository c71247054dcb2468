package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asf_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "asf_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// DocumentsCreated counts invoices and employees that received an identifier
	DocumentsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asf_documents_created_total",
			Help: "Records persisted with a freshly allocated identifier",
		},
		[]string{"collection"},
	)

	// AllocationConflicts counts writes rejected by the unique constraint
	AllocationConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asf_allocation_conflicts_total",
			Help: "Identifier allocations that collided and were retried",
		},
		[]string{"collection"},
	)

	PDFsRendered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "asf_invoice_pdfs_rendered_total",
			Help: "Invoice PDFs rendered",
		},
	)
)
