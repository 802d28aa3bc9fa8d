// Package metrics holds the Prometheus registry and collectors for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the process-wide metrics registry exposed on /metrics.
var Registry = prometheus.NewRegistry()

var (
	// HTTPDuration observes request latency per method/route/status.
	HTTPDuration = promauto.With(Registry).NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.1, 0.3, 0.5, 0.7, 1, 3, 5, 7, 10},
	}, []string{"method", "route", "code"})

	// APICalls counts requests per endpoint/method/status.
	APICalls = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "api_calls_total",
		Help: "Total number of API calls",
	}, []string{"endpoint", "method", "status"})

	// PlansGenerated counts created plans by source ("generative" or "fallback").
	PlansGenerated = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "plans_generated_total",
		Help: "Total number of itinerary plans generated, by source",
	}, []string{"source"})

	// PlanEdits counts applied edits by the backend that produced them.
	PlanEdits = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "plan_edits_total",
		Help: "Total number of plan edits applied, by backend",
	}, []string{"backend"})
)

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the response status code for labeling.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records duration and call counts for every request.
// Routes are labeled by chi pattern, not raw path, to keep cardinality bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		code := strconv.Itoa(rec.status)

		HTTPDuration.WithLabelValues(r.Method, route, code).Observe(time.Since(start).Seconds())
		APICalls.WithLabelValues(route, r.Method, code).Inc()
	})
}
