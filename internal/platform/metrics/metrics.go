package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"livestock-records/internal/lifecycle"
)

const namespace = "livestock"

// Metrics agrupa los collectors del servicio sobre un registry propio,
// así los tests pueden crear varios sin chocar con el registry global.
type Metrics struct {
	registry *prometheus.Registry

	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	classified *prometheus.CounterVec
	byUrgency  *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		classified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vaccinations_classified_total",
			Help:      "Vaccination records classified, by urgency.",
		}, []string{"urgency"}),
		byUrgency: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vaccinations_by_urgency",
			Help:      "Vaccinations of alive animals per urgency at the last digest.",
		}, []string{"urgency"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.latency,
		m.classified,
		m.byUrgency,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveUrgency(u lifecycle.Urgency, n int) {
	if n <= 0 {
		return
	}
	m.classified.WithLabelValues(string(u)).Add(float64(n))
}

// SetDigest reemplaza el gauge con los conteos del último resumen; las
// categorías ausentes quedan en cero.
func (m *Metrics) SetDigest(counts map[lifecycle.Urgency]int) {
	for _, u := range lifecycle.Urgencies() {
		m.byUrgency.WithLabelValues(string(u)).Set(float64(counts[u]))
	}
}
