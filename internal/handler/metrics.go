package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for ContactSubmissionsTotal.
const (
	outcomeCreated      = "created"
	outcomeMissingField = "missing_field"
	outcomeInvalidEmail = "invalid_email"
	outcomeMalformed    = "malformed"
	outcomeStoreError   = "store_error"
	outcomeRateLimited  = "rate_limited"
)

var (
	// ContactSubmissionsTotal counts POST /api/contact requests by outcome.
	ContactSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_contact_submissions_total",
		Help: "Contact form submissions by outcome",
	}, []string{"outcome"})

	// RequestDurationSeconds records HTTP handling time by route pattern.
	RequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfolio_http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
