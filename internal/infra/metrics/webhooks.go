package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		webhookEventsTotal,
		webhookSignatureFailures,
		webhookDuration,
	)
}

var (
	webhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Webhook deliveries by event type and outcome (applied/duplicate/ignored/missing_owner/error).",
		},
		[]string{"type", "outcome"},
	)

	webhookSignatureFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_signature_failures_total",
			Help: "Webhook deliveries rejected because signature verification failed.",
		},
	)

	webhookDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webhook_processing_seconds",
			Help:    "Webhook processing duration by event type.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type"},
	)
)

func IncWebhookEvent(eventType, outcome string) {
	webhookEventsTotal.WithLabelValues(norm(eventType), norm(outcome)).Inc()
}

func IncSignatureFailure() {
	webhookSignatureFailures.Inc()
}

func ObserveWebhookDuration(eventType string, seconds float64) {
	webhookDuration.WithLabelValues(norm(eventType)).Observe(seconds)
}
