package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Naming follows the <app>_<subject>_<unit> convention (§6).
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dpc_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dpc_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	compareRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dpc_compare_runs_total",
			Help: "Total number of compare runs, by outcome",
		},
		[]string{"outcome"}, // passed, failed, error
	)

	compareDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dpc_compare_duration_seconds",
			Help:    "Compare run duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	similarityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dpc_similarity_score",
			Help:    "Distribution of computed similarity scores",
			Buckets: []float64{0, .1, .2, .3, .4, .5, .6, .7, .8, .9, .95, .99, 1},
		},
	)

	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dpc_websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)
)

func promHandler() http.Handler {
	return promhttp.Handler()
}
