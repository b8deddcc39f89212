// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, matched route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and matched route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	SignUps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "partyplanner_signups_total",
		Help: "Accounts created.",
	})

	ProjectsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "partyplanner_projects_created_total",
		Help: "Projects created.",
	})

	GuestsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "partyplanner_guests_added_total",
		Help: "Guests appended to project guest lists.",
	})
)
