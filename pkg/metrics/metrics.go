// Package metrics registers the prometheus collectors the service exposes
// on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// InvoiceEmailsSent counts outbound invoice mails by outcome.
	InvoiceEmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_emails_sent_total",
			Help: "Invoice emails attempted, labelled by outcome.",
		},
		[]string{"outcome"},
	)

	// OverdueSweepRuns counts scheduled overdue invoice sweeps by outcome.
	OverdueSweepRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_overdue_sweep_runs_total",
			Help: "Overdue invoice sweep executions, labelled by outcome.",
		},
		[]string{"outcome"},
	)

	// OverdueSweepFlipped counts invoices flipped to overdue by the sweep.
	OverdueSweepFlipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "invoice_overdue_sweep_flipped_total",
			Help: "Invoices marked overdue by the scheduled sweep.",
		},
	)
)
