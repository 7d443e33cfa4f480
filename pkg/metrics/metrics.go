// Package metrics exposes Prometheus instrumentation for the API server
// and the upstream platform client.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	registry     *prometheus.Registry
	registryOnce sync.Once
)

// Collectors are created eagerly so instrumented code can update them
// before Init runs; Init only attaches them to the scrape registry.
var (
	// HTTP server metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "convopulse_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "convopulse_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	HTTPRequestsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "convopulse_http_requests_active",
			Help: "Number of HTTP requests currently in flight",
		},
	)

	// Upstream client metrics
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "convopulse_upstream_requests_total",
			Help: "Total number of requests sent to the interaction platform",
		},
		[]string{"endpoint", "outcome"},
	)
	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "convopulse_upstream_request_duration_seconds",
			Help:    "Duration of interaction platform requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Snapshot cache metrics
	InteractionsFetched = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "convopulse_interactions_fetched",
			Help: "Number of interactions in the most recent snapshot",
		},
	)
	SnapshotRefreshes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "convopulse_snapshot_refreshes_total",
			Help: "Total number of interaction snapshot refreshes",
		},
	)
	SnapshotStaleServes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "convopulse_snapshot_stale_serves_total",
			Help: "Total number of requests served from a stale snapshot after a fetch failure",
		},
	)
)

// Init registers all collectors with the scrape registry
func Init(logger *zap.Logger) {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			HTTPRequestsActive,
			UpstreamRequestsTotal,
			UpstreamRequestDuration,
			InteractionsFetched,
			SnapshotRefreshes,
			SnapshotStaleServes,
		)

		logger.Info("prometheus metrics registered")
	})
}

// Handler returns an HTTP handler serving the metrics registry
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
