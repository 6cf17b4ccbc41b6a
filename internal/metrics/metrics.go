// Package metrics collects and exposes Prometheus metrics for the
// storefront.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records storefront-side counters: page serving, gateway calls,
// payment polls and push events.
type Collector struct {
	httpStatus   *prometheus.CounterVec
	gatewayCalls *prometheus.CounterVec
	pollResults  *prometheus.CounterVec
	pushEvents   *prometheus.CounterVec
	pageLatency  prometheus.Histogram
}

// NewCollector registers the storefront metrics on the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Responses served, by status code.",
		}, []string{"status_code"}),
		gatewayCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_gateway_requests_total",
			Help: "Backend gateway calls, by outcome.",
		}, []string{"outcome"}),
		pollResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_payment_poll_total",
			Help: "Checkout-status poll terminal states.",
		}, []string{"state"}),
		pushEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_push_events_total",
			Help: "Push-channel events received, by event type.",
		}, []string{"event"}),
		pageLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "storefront_page_latency_seconds",
			Help:    "Page render latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.gatewayCalls,
		c.pollResults,
		c.pushEvents,
		c.pageLatency,
	)
	return c
}

// RecordHTTPStatus counts one served response.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordGatewayCall counts one backend call outcome ("ok" or "error").
func (c *Collector) RecordGatewayCall(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.gatewayCalls.WithLabelValues(outcome).Inc()
}

// RecordPollResult counts one terminal poll state.
func (c *Collector) RecordPollResult(state string) {
	c.pollResults.WithLabelValues(state).Inc()
}

// RecordPushEvent counts one push-channel event.
func (c *Collector) RecordPushEvent(event string) {
	c.pushEvents.WithLabelValues(event).Inc()
}

// RecordPageLatency observes one page render duration.
func (c *Collector) RecordPageLatency(d time.Duration) {
	c.pageLatency.Observe(d.Seconds())
}

// Handler exposes the registry for scraping.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
