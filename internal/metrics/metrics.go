// Package metrics exposes Prometheus collectors for the catalog, the
// synthesizer and the HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector groups the orrery's metrics on a private registry.
type Collector struct {
	registry *prometheus.Registry

	fetchDuration    *prometheus.HistogramVec
	catalogRows      prometheus.Gauge
	catalogHosts     prometheus.Gauge
	systemsTotal     *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsTotal    *prometheus.CounterVec
	rateLimited      prometheus.Counter
	websocketClients prometheus.Gauge
	framesSent       prometheus.Counter
}

// NewCollector creates and registers all collectors.
func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "orrery",
				Name:      "catalog_fetch_duration_seconds",
				Help:      "Time spent fetching and parsing the planet catalog",
				Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"result"},
		),
		catalogRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "orrery",
			Name:      "catalog_rows",
			Help:      "Planet rows in the loaded catalog",
		}),
		catalogHosts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "orrery",
			Name:      "catalog_hosts",
			Help:      "Distinct host stars in the loaded catalog",
		}),
		systemsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "orrery",
				Name:      "systems_synthesized_total",
				Help:      "Systems built from catalog records",
			},
			[]string{"result"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "orrery",
				Name:      "http_request_duration_seconds",
				Help:      "Time spent serving API requests",
			},
			[]string{"route", "code"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "orrery",
				Name:      "http_requests_total",
				Help:      "Total API requests",
			},
			[]string{"route", "code"},
		),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orrery",
			Name:      "http_rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter",
		}),
		websocketClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "orrery",
			Name:      "websocket_clients",
			Help:      "Open orbit stream connections",
		}),
		framesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orrery",
			Name:      "orbit_frames_sent_total",
			Help:      "Orbit frames written to stream clients",
		}),
	}

	m.registry.MustRegister(
		m.fetchDuration,
		m.catalogRows,
		m.catalogHosts,
		m.systemsTotal,
		m.requestDuration,
		m.requestsTotal,
		m.rateLimited,
		m.websocketClients,
		m.framesSent,
	)

	return m
}

// Registry returns the private registry.
func (m *Collector) Registry() *prometheus.Registry {
	return m.registry
}

// RecordFetch records a catalog fetch and, on success, the catalog size.
func (m *Collector) RecordFetch(duration time.Duration, rows, hosts int, err error) {
	if err != nil {
		m.fetchDuration.WithLabelValues("error").Observe(duration.Seconds())
		return
	}
	m.fetchDuration.WithLabelValues("ok").Observe(duration.Seconds())
	m.catalogRows.Set(float64(rows))
	m.catalogHosts.Set(float64(hosts))
}

// RecordSystem counts a synthesis attempt.
func (m *Collector) RecordSystem(err error) {
	if err != nil {
		m.systemsTotal.WithLabelValues("not_found").Inc()
		return
	}
	m.systemsTotal.WithLabelValues("ok").Inc()
}

// RecordRequest records one served API request.
func (m *Collector) RecordRequest(route string, code int, duration time.Duration) {
	c := strconv.Itoa(code)
	m.requestDuration.WithLabelValues(route, c).Observe(duration.Seconds())
	m.requestsTotal.WithLabelValues(route, c).Inc()
}

// RecordRateLimited counts a rejected request.
func (m *Collector) RecordRateLimited() {
	m.rateLimited.Inc()
}

// StreamOpened and StreamClosed track live orbit streams.
func (m *Collector) StreamOpened() { m.websocketClients.Inc() }

func (m *Collector) StreamClosed() { m.websocketClients.Dec() }

// RecordFrame counts one frame sent on an orbit stream.
func (m *Collector) RecordFrame() {
	m.framesSent.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
