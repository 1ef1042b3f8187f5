package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sells-group/lead-agent/internal/pipeline"
)

// Metrics holds the Prometheus collectors for the API and the pipeline runs
// it serves. It implements pipeline.Observer.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal       *prometheus.CounterVec
	fallbackTotal   prometheus.Counter
	rankedLeads     prometheus.Histogram
	runDuration     prometheus.Histogram
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		runsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lead_agent_runs_total",
				Help: "Total number of prioritization runs by outcome",
			},
			[]string{"outcome"},
		),
		fallbackTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "lead_agent_fallback_total",
			Help: "Runs where no lead matched the campaign filters and the full catalog was ranked",
		}),
		rankedLeads: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "lead_agent_ranked_leads",
			Help:    "Number of leads returned per run",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),
		runDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "lead_agent_run_duration_seconds",
			Help:    "Duration of prioritization runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lead_agent_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// ObserveRun implements pipeline.Observer.
func (m *Metrics) ObserveRun(outcome string, ranked int, fallback bool, elapsed time.Duration) {
	m.runsTotal.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(elapsed.Seconds())
	if outcome != pipeline.OutcomeSuccess {
		return
	}
	m.rankedLeads.Observe(float64(ranked))
	if fallback {
		m.fallbackTotal.Inc()
	}
}

func (m *Metrics) observeRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
