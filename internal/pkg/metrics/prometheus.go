package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "freelancehub"

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Gateway metrics
	gatewayCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "call_duration_seconds",
			Help:      "Data gateway call duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"backend", "operation", "table"},
	)

	gatewayErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "errors_total",
			Help:      "Total number of failed data gateway calls",
		},
		[]string{"backend", "operation", "table"},
	)

	// Entitlement metrics
	entitlementChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "entitlement",
			Name:      "checks_total",
			Help:      "Total number of entitlement checks by outcome",
		},
		[]string{"outcome"},
	)

	profilesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "entitlement",
			Name:      "profiles_created_total",
			Help:      "Total number of lazily created trial profiles",
		},
	)

	// Insight metrics
	insightSlotsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "insights",
			Name:      "slots_total",
			Help:      "Insight slot results by slot and outcome",
		},
		[]string{"slot", "outcome"},
	)

	insightGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "insights",
			Name:      "generation_duration_seconds",
			Help:      "Duration of a full insight generation in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	// Worker metrics
	invoicesMarkedOverdue = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "worker",
			Name:      "invoices_marked_overdue_total",
			Help:      "Total number of invoices moved to overdue by the sweeper",
		},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordGatewayCall records a data gateway call and whether it failed
func RecordGatewayCall(backend, operation, table string, duration time.Duration, err error) {
	gatewayCallDuration.WithLabelValues(backend, operation, table).Observe(duration.Seconds())
	if err != nil {
		gatewayErrorsTotal.WithLabelValues(backend, operation, table).Inc()
	}
}

// RecordEntitlementCheck records the outcome of a status check (allowed, blocked, error)
func RecordEntitlementCheck(outcome string) {
	entitlementChecksTotal.WithLabelValues(outcome).Inc()
}

// RecordProfileCreated counts a lazily created trial profile
func RecordProfileCreated() {
	profilesCreatedTotal.Inc()
}

// RecordInsightSlot records one slot result (generated, empty, failed)
func RecordInsightSlot(slot, outcome string) {
	insightSlotsTotal.WithLabelValues(slot, outcome).Inc()
}

// RecordInsightGeneration records the duration of a full generation
func RecordInsightGeneration(duration time.Duration) {
	insightGenerationDuration.Observe(duration.Seconds())
}

// AddInvoicesMarkedOverdue adds to the sweeper counter
func AddInvoicesMarkedOverdue(n int) {
	invoicesMarkedOverdue.Add(float64(n))
}
