// README: Prometheus collectors for the offering engine.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rentalpromo", Name: "catalog_batches_total", Help: "Batched catalog lookups issued"},
		[]string{"collection"},
	)
	CatalogBatchFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rentalpromo", Name: "catalog_batch_failures_total", Help: "Batched catalog lookups that failed and were omitted"},
		[]string{"collection"},
	)
	CatalogUnavailableTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rentalpromo", Name: "catalog_unavailable_total", Help: "Resolutions answered empty because a full catalog scan failed"},
		[]string{"mode"},
	)
	ResolveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rentalpromo",
			Name:      "resolve_duration_seconds",
			Help:      "Offering resolution latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
	OfferingsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rentalpromo",
			Name:      "offerings_returned",
			Help:      "Rows returned per resolution after filtering",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
		[]string{"mode"},
	)
	PositionSourceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rentalpromo", Name: "position_source_total", Help: "Which link of the fallback chain produced the requester position"},
		[]string{"source"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rentalpromo", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rentalpromo",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
