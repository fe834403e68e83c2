package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Inbound HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "polydash_http_requests_total",
			Help: "Total number of handled HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "polydash_http_request_duration_seconds",
			Help:    "Duration of handled HTTP requests",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"route"},
	)

	// Upstream API metrics
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "polydash_upstream_requests_total",
			Help: "Total number of upstream API requests",
		},
		[]string{"api", "endpoint", "status"}, // gamma/data/clob/llm, /events, success/error
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "polydash_upstream_request_duration_seconds",
			Help:    "Duration of upstream API requests",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"api", "endpoint"},
	)

	// Degraded responses: a non-critical collaborator failed and defaults were served
	DegradedResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "polydash_degraded_responses_total",
			Help: "Total number of responses served with fallback data",
		},
		[]string{"endpoint"},
	)

	HoldersAggregated = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "polydash_holders_aggregated",
			Help:    "Number of unique holder entries after aggregation",
			Buckets: []float64{0, 10, 50, 100, 250, 500, 1000, 2000},
		},
	)
)

// RecordHTTPRequest records inbound request metrics
func RecordHTTPRequest(route, method string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordUpstreamRequest records upstream API request metrics
func RecordUpstreamRequest(api, endpoint string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	UpstreamRequests.WithLabelValues(api, endpoint, status).Inc()
	UpstreamRequestDuration.WithLabelValues(api, endpoint).Observe(duration.Seconds())
}

// RecordDegraded records a response that fell back to default data
func RecordDegraded(endpoint string) {
	DegradedResponses.WithLabelValues(endpoint).Inc()
}

// RecordHolders records the size of an aggregated holder set
func RecordHolders(count int) {
	HoldersAggregated.Observe(float64(count))
}
