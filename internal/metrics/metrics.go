// Package metrics exposes Prometheus instrumentation for the HR directory:
// HTTP request counters, latency histograms and gauges sampled from the store.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/hr-directory/internal/application"
)

const namespace = "hrdirectory"

// StatsSource provides the dashboard aggregates sampled on every scrape.
type StatsSource interface {
	Stats(ctx context.Context) (application.DashboardStats, error)
}

// Registry owns the process metrics registry and the HTTP instruments.
type Registry struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New returns a registry with the Go runtime, process and HTTP collectors registered.
func New() *Registry {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by method, route and status code.",
	}, []string{"method", "route", "code"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requests,
		duration,
	)

	return &Registry{registry: registry, requests: requests, duration: duration}
}

// Gatherer exposes the underlying registry for scraping in tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RegisterStore adds gauges sampled from source on every scrape.
func (r *Registry) RegisterStore(source StatsSource) error {
	return r.registry.Register(NewStoreCollector(source))
}

// RegisterMutations adds a per-collection mutation counter read from source on
// every scrape.
func (r *Registry) RegisterMutations(source MutationSource) error {
	return r.registry.Register(NewMutationCollector(source))
}

// Middleware records request counts and latency for every request passing through it.
func (r *Registry) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(recorder, req)

			route := Route(req.URL.Path)
			r.duration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
			r.requests.WithLabelValues(req.Method, route, strconv.Itoa(recorder.status)).Inc()
		})
	}
}

// Route collapses a request path into a bounded label value so identifiers
// do not explode label cardinality.
func Route(path string) string {
	if path == "/" {
		return "/"
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	switch segments[0] {
	case "employees":
		switch {
		case len(segments) == 1:
			return "/employees"
		case len(segments) == 2:
			return "/employees/{id}"
		case len(segments) == 3 && segments[2] == "availability":
			return "/employees/{id}/availability"
		}
	case "departments", "availability":
		switch len(segments) {
		case 1:
			return "/" + segments[0]
		case 2:
			return "/" + segments[0] + "/{id}"
		}
	case "healthz", "metrics":
		if len(segments) == 1 {
			return "/" + segments[0]
		}
	}
	return "other"
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(status int) {
	if !s.wroteHeader {
		s.status = status
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	s.wroteHeader = true
	return s.ResponseWriter.Write(p)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
