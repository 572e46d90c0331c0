package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// WebhooksReceived counts inbound webhook deliveries by source and outcome.
	// Outcomes: accepted, ignored, invalid_signature, malformed, processing_failed.
	WebhooksReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "disputedesk",
			Subsystem: "webhook",
			Name:      "received_total",
			Help:      "Total number of inbound webhook deliveries",
		},
		[]string{"source", "outcome"},
	)

	// MatchesResolved counts reconciliation outcomes by match method.
	MatchesResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "disputedesk",
			Subsystem: "match",
			Name:      "resolved_total",
			Help:      "Total number of reconciliation runs by resulting method",
		},
		[]string{"method"},
	)

	// StoreFallback counts event store operations served by the in-memory
	// tier because the durable tier was unavailable.
	StoreFallback = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "disputedesk",
			Subsystem: "store",
			Name:      "fallback_total",
			Help:      "Event store operations degraded to the in-memory tier",
		},
		[]string{"op"},
	)
)

func init() {
	Registry.MustRegister(WebhooksReceived, MatchesResolved, StoreFallback)
}
