package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the nudge trigger HTTP handler
	NudgeTriggerLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "nudge_trigger_latency_seconds",
		Help:    "Latency of the nudge trigger handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of nudge trigger requests served
	NudgeTriggerRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nudge_trigger_requests_total",
		Help: "Total number of nudge trigger requests",
	})
)

func Init() {
	prometheus.MustRegister(
		NudgeTriggerLatency,
		NudgeTriggerRequests,
	)
}
