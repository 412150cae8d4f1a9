// Package metrics exposes Prometheus collectors for the widget.
// Each Metrics owns its registry so tests can create as many as they like.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the widget's collectors.
type Metrics struct {
	registry        *prometheus.Registry
	fetches         *prometheus.CounterVec
	payments        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fieldtrip",
			Name:      "fetches_total",
			Help:      "Field trip fetches by outcome.",
		}, []string{"outcome"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fieldtrip",
			Name:      "payment_submissions_total",
			Help:      "Payment submissions by outcome.",
		}, []string{"outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fieldtrip",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests served by the widget.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(
		m.fetches,
		m.payments,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveFetch counts one field trip fetch.
func (m *Metrics) ObserveFetch(outcome string) {
	m.fetches.WithLabelValues(outcome).Inc()
}

// ObservePayment counts one payment submission.
func (m *Metrics) ObservePayment(outcome string) {
	m.payments.WithLabelValues(outcome).Inc()
}

// ObserveRequest records the duration of one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
