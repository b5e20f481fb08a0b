package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gaurav-prasanna/qbformat/core"
	"github.com/gaurav-prasanna/qbformat/core/pipeline"
)

// Metrics holds the server's Prometheus collectors. Each Metrics owns its
// registry so several servers (and tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	conversions *prometheus.CounterVec
	records     *prometheus.CounterVec
	unmatched   *prometheus.CounterVec
	requests    *prometheus.HistogramVec
}

// NewMetrics creates and registers the qbformat collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qbformat_conversions_total",
			Help: "Conversions attempted, by mode and result.",
		}, []string{"mode", "result"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qbformat_records_converted_total",
			Help: "Records produced by successful conversions.",
		}, []string{"mode"}),
		unmatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qbformat_unmatched_chapters_total",
			Help: "Records whose chapter label matched no taxonomy rule.",
		}, []string{"mode"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "qbformat_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.conversions,
		m.records,
		m.unmatched,
		m.requests,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveConversion records a successful conversion.
func (m *Metrics) ObserveConversion(t core.Taxonomy, records, unmatched int) {
	mode := string(t)
	m.conversions.WithLabelValues(mode, "ok").Inc()
	m.records.WithLabelValues(mode).Add(float64(records))
	m.unmatched.WithLabelValues(mode).Add(float64(unmatched))
}

// ObserveFailure records a failed conversion by error kind.
func (m *Metrics) ObserveFailure(t core.Taxonomy, kind pipeline.Kind) {
	result := string(kind)
	if result == "" {
		result = "error"
	}
	m.conversions.WithLabelValues(string(t), result).Inc()
}

// Middleware times every request.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requests.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}
