package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	analysesTotal      *prometheus.CounterVec
	cacheHitsTotal     prometheus.Counter
	summarySourceTotal *prometheus.CounterVec
	redFlagsPerResult  prometheus.Histogram
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "risklens",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "risklens",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "risklens",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	analysesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "risklens",
			Subsystem: "analysis",
			Name:      "requests_total",
			Help:      "Total analysis requests by outcome.",
		},
		[]string{"service", "outcome"},
	)
	cacheHitsTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "risklens",
			Subsystem: "analysis",
			Name:      "cache_hits_total",
			Help:      "Total analysis requests answered from the cache.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	summarySourceTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "risklens",
			Subsystem: "analysis",
			Name:      "summary_source_total",
			Help:      "Summaries produced by source (remote or fallback).",
		},
		[]string{"service", "source"},
	)
	redFlagsPerResult := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "risklens",
			Subsystem: "analysis",
			Name:      "red_flags",
			Help:      "Distribution of red flags per completed analysis.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 7, 10},
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		analysesTotal,
		cacheHitsTotal,
		summarySourceTotal,
		redFlagsPerResult,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		analysesTotal:      analysesTotal,
		cacheHitsTotal:     cacheHitsTotal,
		summarySourceTotal: summarySourceTotal,
		redFlagsPerResult:  redFlagsPerResult,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// RecordAnalysis and RecordSummarySource satisfy the pipeline observer
// used by the analysis use case.

func (m *HTTPServerMetrics) RecordAnalysis(outcome string, cacheHit bool, redFlags int) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.analysesTotal.WithLabelValues("risklens", outcome).Inc()
	if cacheHit {
		m.cacheHitsTotal.Inc()
	}
	if outcome == "ok" || outcome == "cached" {
		m.redFlagsPerResult.Observe(float64(redFlags))
	}
}

func (m *HTTPServerMetrics) RecordSummarySource(source string) {
	if source == "" {
		source = "unknown"
	}
	m.summarySourceTotal.WithLabelValues("risklens", source).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}
