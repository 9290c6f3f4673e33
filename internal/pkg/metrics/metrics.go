package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fieldecon"

var DefaultDurationBuckets = []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

// Metrics holds the application collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	CalculationsTotal   *prometheus.CounterVec
	CalculationDuration *prometheus.HistogramVec
	CacheAccessTotal    *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	PriceRefreshTotal   *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		CalculationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "economics",
			Name:      "calculations_total",
			Help:      "Economics calculations by operation and status.",
		}, []string{"operation", "status"}),
		CalculationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "economics",
			Name:      "calculation_duration_seconds",
			Help:      "Duration of economics calculations including snapshot load.",
			Buckets:   DefaultDurationBuckets,
		}, []string{"operation"}),
		CacheAccessTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "access_total",
			Help:      "Totals cache lookups by result.",
		}, []string{"result"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		PriceRefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prices",
			Name:      "refresh_total",
			Help:      "Price sheet refreshes by status.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.CalculationsTotal,
		m.CalculationDuration,
		m.CacheAccessTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.PriceRefreshTotal,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveCalculation(operation string, started time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.CalculationsTotal.WithLabelValues(operation, status).Inc()
	m.CalculationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveCacheAccess(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheAccessTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveHTTPRequest(method, route string, code int, started time.Time) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObservePriceRefresh(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.PriceRefreshTotal.WithLabelValues(status).Inc()
}
