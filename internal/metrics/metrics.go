package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the case service.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP traffic by route and status
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Cases accepted by the create operation
	CasesCreated prometheus.Counter

	// Judgment generation outcomes and upstream latency
	JudgmentOutcome  *prometheus.CounterVec
	JudgmentDuration prometheus.Histogram
}

// New registers all metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nyaya_http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nyaya_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		CasesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "nyaya_cases_created_total",
			Help: "Total cases successfully submitted",
		}),

		JudgmentOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nyaya_judgment_outcomes_total",
			Help: "Judgment generation attempts by outcome",
		}, []string{"outcome"}), // outcome: "complete", "error", "conflict"

		JudgmentDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nyaya_judgment_generation_duration_seconds",
			Help:    "Duration of calls to the text-generation provider",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		}),
	}
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncrementCasesCreated counts a stored case.
func (m *Metrics) IncrementCasesCreated() {
	if m != nil {
		m.CasesCreated.Inc()
	}
}

// IncrementJudgmentOutcome records a generation outcome.
func (m *Metrics) IncrementJudgmentOutcome(outcome string) {
	if m != nil {
		m.JudgmentOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveJudgmentDuration records the provider call duration.
func (m *Metrics) ObserveJudgmentDuration(d time.Duration) {
	if m != nil {
		m.JudgmentDuration.Observe(d.Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
