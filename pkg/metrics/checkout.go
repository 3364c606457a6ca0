package metrics

import "github.com/prometheus/client_golang/prometheus"

// CheckoutMetrics counts order placements and notification outcomes.
type CheckoutMetrics struct {
	ordersCreated        prometheus.Counter
	notificationFailures *prometheus.CounterVec
}

// NewCheckoutMetrics registers checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders persisted through checkout.",
	})
	notificationFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_failures_total",
		Help: "Best-effort notification steps that failed.",
	}, []string{"channel"})
	reg.MustRegister(ordersCreated, notificationFailures)
	return &CheckoutMetrics{
		ordersCreated:        ordersCreated,
		notificationFailures: notificationFailures,
	}
}

// IncOrdersCreated increments the placed-order counter.
func (c *CheckoutMetrics) IncOrdersCreated() {
	if c == nil || c.ordersCreated == nil {
		return
	}
	c.ordersCreated.Inc()
}

// IncNotificationFailure increments the failure counter for a channel.
func (c *CheckoutMetrics) IncNotificationFailure(channel string) {
	if c == nil || c.notificationFailures == nil {
		return
	}
	c.notificationFailures.WithLabelValues(normalizeLabel(channel)).Inc()
}
