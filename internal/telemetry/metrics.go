package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics, labelled by the gin route template rather than the raw URL.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)
)

// Registry metrics.
var (
	OrganizationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registry_organizations_created_total",
			Help: "Total number of committed organization creations.",
		},
	)

	OrganizationMembersWrittenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_organization_members_written_total",
			Help: "Member records written by organization creations, by kind.",
		},
		[]string{"kind"},
	)

	LastCreationHeight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registry_last_creation_height",
			Help: "Block height of the most recent committed organization creation.",
		},
	)
)
