package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pelada_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pelada_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CheckoutSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pelada_checkout_sessions_total",
			Help: "Total number of hosted checkout sessions created",
		},
		[]string{"plan", "mode"},
	)

	CheckoutFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pelada_checkout_failures_total",
			Help: "Total number of rejected or failed checkout requests",
		},
		[]string{"reason"},
	)

	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pelada_auth_requests_total",
			Help: "Total number of identity provider calls",
		},
		[]string{"operation", "outcome"},
	)

	CollectionFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pelada_collection_fetches_total",
			Help: "Total number of resource fetches by outcome",
		},
		[]string{"resource", "outcome"},
	)

	BackendUnconfiguredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pelada_backend_unconfigured_total",
			Help: "Operations short-circuited because the backend is not configured",
		},
		[]string{"operation"},
	)

	CatalogCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pelada_catalog_cache_total",
			Help: "Catalog cache lookups by result",
		},
		[]string{"resource", "result"},
	)

	ActiveShells = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pelada_active_shells",
			Help: "Number of live per-user view shells",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordCheckoutSession(plan, mode string) {
	CheckoutSessionsTotal.WithLabelValues(plan, mode).Inc()
}

func RecordCheckoutFailure(reason string) {
	CheckoutFailuresTotal.WithLabelValues(reason).Inc()
}

func RecordAuth(operation, outcome string) {
	AuthRequestsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordCollectionFetch(resource, outcome string) {
	CollectionFetchesTotal.WithLabelValues(resource, outcome).Inc()
}

func RecordBackendUnconfigured(operation string) {
	BackendUnconfiguredTotal.WithLabelValues(operation).Inc()
}

func RecordCatalogCache(resource, result string) {
	CatalogCacheTotal.WithLabelValues(resource, result).Inc()
}
