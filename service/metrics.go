package service

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry *prometheus.Registry
	queries  *prometheus.CounterVec
	seconds  *prometheus.HistogramVec
	fetches  *prometheus.CounterVec
	views    prometheus.Gauge
}

// newMetrics uses its own registry so several services can live in the same
// process (tests do).
func newMetrics() *metrics {

	m := &metrics{
		registry: prometheus.NewRegistry(),
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmgrid_queries_total",
				Help: "Total number of dataset queries",
			},
			[]string{"dataset", "origin"},
		),
		seconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "farmgrid_query_seconds",
				Help:    "Time spent running the search, filter, sort and paginate pipeline",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"dataset"},
		),
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmgrid_view_fetches_total",
				Help: "Page and page size changes requested by views",
			},
			[]string{"dataset", "reason"},
		),
		views: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "farmgrid_views_open",
				Help: "Number of open views",
			},
		),
	}

	m.registry.MustRegister(m.queries, m.seconds, m.fetches, m.views)

	return m
}

func (m *metrics) observe(dataset, origin string, started time.Time) {
	m.queries.WithLabelValues(dataset, origin).Inc()
	m.seconds.WithLabelValues(dataset).Observe(time.Since(started).Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
