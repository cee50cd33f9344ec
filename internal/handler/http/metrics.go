package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the Prometheus collectors of the sync server. A dedicated
// registry keeps the /metrics output stable regardless of what other packages
// register globally.
type metrics struct {
	registry *prometheus.Registry

	pushTotal        *prometheus.CounterVec
	conflictsTotal   prometheus.Counter
	pullRecordsTotal prometheus.Counter
	requestDuration  *prometheus.HistogramVec
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()

	m := &metrics{
		registry: registry,
		pushTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_push_total",
			Help: "Pushed operations by outcome.",
		}, []string{"status"}),
		conflictsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sync_conflicts_total",
			Help: "Push operations answered with a version conflict.",
		}),
		pullRecordsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sync_pull_records_total",
			Help: "Records served to pull (changes) queries.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Inbound request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	registry.MustRegister(
		m.pushTotal,
		m.conflictsTotal,
		m.pullRecordsTotal,
		m.requestDuration,
		collectors.NewGoCollector(),
	)

	return m
}

// handler serves the /metrics endpoint from the private registry.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// withInstrumentation records the latency histogram per routed pattern. The
// chi route pattern is resolved after the handler ran so parameterised paths
// collapse into one series instead of one per entity ID.
func (h *Handler) withInstrumentation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		pattern := routePattern(r)
		status := lw.status
		if status == 0 {
			status = http.StatusOK
		}

		h.metrics.requestDuration.
			WithLabelValues(r.Method, pattern, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
