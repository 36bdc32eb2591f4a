// Package metrics declares the Prometheus collectors shared by modules.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GeographyCacheLookups counts per-UF cache lookups by outcome (hit|miss).
	GeographyCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecoleta_geography_cache_lookups_total",
			Help: "Geography cache lookups by resource and outcome",
		},
		[]string{"resource", "outcome"},
	)

	// GeographyUpstreamRequests counts calls made to the IBGE API.
	GeographyUpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecoleta_geography_upstream_requests_total",
			Help: "Requests sent to the IBGE localidades API",
		},
		[]string{"resource", "result"},
	)

	// GeographyUpstreamDuration observes IBGE request latency.
	GeographyUpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecoleta_geography_upstream_duration_seconds",
			Help:    "Latency of IBGE localidades requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	// PointsCreated counts successfully registered collection points by UF.
	PointsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecoleta_points_created_total",
			Help: "Collection points registered",
		},
		[]string{"uf"},
	)

	// ConfirmationEmails counts confirmation e-mail attempts by result.
	ConfirmationEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecoleta_confirmation_emails_total",
			Help: "Point confirmation e-mails by delivery result",
		},
		[]string{"result"},
	)
)
