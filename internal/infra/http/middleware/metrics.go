package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/xavierca1/recruit-pipeline/internal/engine"
	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	candidatesByStage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pipeline_candidates",
			Help: "Candidates per board stage in the latest snapshot",
		},
		[]string{"stage"},
	)

	candidatesHired = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pipeline_candidates_hired",
			Help: "Hired candidates in the latest snapshot",
		},
	)

	averageScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pipeline_average_score",
			Help: "Average overall score in the latest snapshot",
		},
	)

	stageTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_stage_transitions_total",
			Help: "Total number of committed stage transitions",
		},
		[]string{"from", "to"},
	)

	rateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of write requests rejected by the rate limiter",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern labels by chi pattern (/api/candidates/{id}) so ids do not explode cardinality.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// ObservePipeline publishes a snapshot's metrics to the pipeline gauges.
func ObservePipeline(m engine.Metrics) {
	for _, stage := range entity.BoardStages() {
		candidatesByStage.WithLabelValues(string(stage)).Set(float64(m.StageDistribution[stage]))
	}
	candidatesHired.Set(float64(m.Hired))
	averageScore.Set(m.AverageScore)
}

func RecordStageTransition(from, to entity.Stage) {
	stageTransitions.WithLabelValues(string(from), string(to)).Inc()
}

// StageTransitions adapts RecordStageTransition to the use case recorder.
type StageTransitions struct{}

func (StageTransitions) StageChanged(from, to entity.Stage) {
	RecordStageTransition(from, to)
}
