// Package metrics wires Prometheus collectors for the generator: how long a
// solve takes, what the solver decided, and how big the search space was.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry groups every collector the scheduler and its HTTP shell emit.
type Registry struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	solveDuration prometheus.Histogram
	solveStatus   *prometheus.CounterVec
	sessionCount  prometheus.Histogram
	candidateSize prometheus.Histogram
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
}

// New registers the generator's collectors against a fresh registry.
func New() *Registry {
	reg := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	solveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_solve_duration_seconds",
		Help:    "Wall-clock time spent inside the CP-SAT solve",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	solveStatus := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_solve_status_total",
		Help: "Count of solves by terminal status",
	}, []string{"status"})

	sessionCount := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_sessions_per_run",
		Help:    "Number of sessions expanded from assignments in one run",
		Buckets: prometheus.ExponentialBuckets(4, 2, 10),
	})

	candidateSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_candidate_cells_per_run",
		Help:    "Total (session, cell) candidate pairs considered in one run",
		Buckets: prometheus.ExponentialBuckets(16, 2, 14),
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_proposal_cache_hits_total",
		Help: "Generate requests served from the proposal cache",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_proposal_cache_misses_total",
		Help: "Generate requests that required a fresh solve",
	})

	reg.MustRegister(requestDuration, requestTotal, solveDuration, solveStatus, sessionCount, candidateSize, cacheHits, cacheMisses)

	return &Registry{
		registry:        reg,
		handler:         promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		solveDuration:   solveDuration,
		solveStatus:     solveStatus,
		sessionCount:    sessionCount,
		candidateSize:   candidateSize,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

// ObserveHTTPRequest records one finished HTTP request.
func (r *Registry) ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	if r == nil {
		return
	}
	label := http.StatusText(status)
	if label == "" {
		label = "unknown"
	}
	r.requestDuration.WithLabelValues(method, path, label).Observe(d.Seconds())
	r.requestTotal.WithLabelValues(method, path, label).Inc()
}

// ObserveSolve records one completed solver run.
func (r *Registry) ObserveSolve(status string, d time.Duration, sessions, candidateCells int) {
	if r == nil {
		return
	}
	r.solveDuration.Observe(d.Seconds())
	r.solveStatus.WithLabelValues(status).Inc()
	r.sessionCount.Observe(float64(sessions))
	r.candidateSize.Observe(float64(candidateCells))
}

// ObserveCache records whether a generate request was served from cache.
func (r *Registry) ObserveCache(hit bool) {
	if r == nil {
		return
	}
	if hit {
		r.cacheHits.Inc()
		return
	}
	r.cacheMisses.Inc()
}
