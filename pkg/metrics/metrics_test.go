package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("POST", "/api/orders", "201", 25*time.Millisecond)
	m.Observe("POST", "/api/orders", "201", 30*time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/orders", "201")); got != 2 {
		t.Fatalf("expected 2 requests recorded, got %v", got)
	}
}

func TestCheckoutMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)

	m.IncOrdersCreated()
	m.IncNotificationFailure("whatsapp")
	m.IncNotificationFailure("")

	if got := testutil.ToFloat64(m.ordersCreated); got != 1 {
		t.Fatalf("expected 1 order counted, got %v", got)
	}
	if got := testutil.ToFloat64(m.notificationFailures.WithLabelValues("whatsapp")); got != 1 {
		t.Fatalf("expected 1 whatsapp failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.notificationFailures.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected empty channel to normalize to unknown, got %v", got)
	}
}

func TestNilReceiversAreSafe(t *testing.T) {
	var h *HTTPMetrics
	var c *CheckoutMetrics
	h.Observe("GET", "/", "200", time.Millisecond)
	c.IncOrdersCreated()
	c.IncNotificationFailure("email")
}
