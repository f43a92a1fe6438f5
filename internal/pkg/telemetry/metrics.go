package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for commerce platform calls.
const (
	OutcomeSuccess   = "success"
	OutcomeCached    = "cached"
	OutcomeUpstream  = "upstream_error"
	OutcomeTransport = "transport_error"
	OutcomeTimeout   = "timeout"
)

var (
	commerceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "order_lookup",
			Name:      "commerce_requests_total",
			Help:      "Total requests sent to the commerce platform.",
		},
		[]string{"endpoint", "outcome"},
	)

	commerceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "order_lookup",
			Name:      "commerce_request_duration_seconds",
			Help:      "Duration of commerce platform requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	lookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "order_lookup",
			Name:      "lookups_total",
			Help:      "Total orchestrated order lookups by result.",
		},
		[]string{"result"},
	)
)

// ObserveCommerceCall records one outbound call to the commerce platform.
func ObserveCommerceCall(endpoint, outcome string, elapsed time.Duration) {
	commerceRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	if outcome != OutcomeCached {
		commerceRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	}
}

// ObserveLookup records the final result of an orchestrated lookup.
func ObserveLookup(result string) {
	lookupsTotal.WithLabelValues(result).Inc()
}
