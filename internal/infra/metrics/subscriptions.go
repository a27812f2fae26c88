package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(entitlementUpdatesTotal)
}

var entitlementUpdatesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "entitlement_updates_total",
		Help: "Subscription entitlement writes by plan.",
	},
	[]string{"plan"},
)

func IncEntitlementUpdate(plan string) {
	entitlementUpdatesTotal.WithLabelValues(norm(plan)).Inc()
}
