package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "streambot"

var (
	FlowEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flow_events_total",
		Help:      "Events handled by conversation flows, by flow, step and outcome.",
	}, []string{"flow", "step", "outcome"})

	CommerceRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commerce_requests_total",
		Help:      "Requests to the commerce API, by operation and outcome.",
	}, []string{"op", "outcome"})

	CommerceLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "commerce_request_duration_seconds",
		Help:      "Commerce API request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})

	BroadcastSends = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_sends_total",
		Help:      "Broadcast deliveries by outcome.",
	}, []string{"outcome"})
)

// Outcome labels shared by the counters above.
const (
	OutcomeOK        = "ok"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
	OutcomeInvalid   = "invalid"
	OutcomeCompleted = "completed"
	OutcomeAdvanced  = "advanced"
)
