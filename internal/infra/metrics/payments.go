package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		intentsTotal,
		paymentsTotal,
		paymentsRevenueTotal,
	)
}

var (
	intentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_intents_total",
			Help: "Payment intent creations by outcome (created/rejected/provider_error).",
		},
		[]string{"outcome"},
	)

	paymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Confirmed payment events by status (succeeded/failed).",
		},
		[]string{"status"},
	)

	paymentsRevenueTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_revenue_minor_units_total",
			Help: "Total value of succeeded payments in minor units, labeled by currency.",
		},
		[]string{"currency"},
	)
)

func IncIntent(outcome string) {
	intentsTotal.WithLabelValues(norm(outcome)).Inc()
}

func IncPayment(status string) {
	paymentsTotal.WithLabelValues(norm(status)).Inc()
}

func AddPaymentRevenue(currency string, amountMinor int64) {
	paymentsRevenueTotal.WithLabelValues(norm(currency)).Add(float64(amountMinor))
}
