package oracle

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tatianab/narrative-engine/internal/models"
)

// Metrics counts oracle calls in its own registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	verdicts *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return &Metrics{
		registry: reg,
		requests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "narrative_oracle_requests_total",
				Help: "Total number of oracle evaluations, partitioned by outcome.",
			},
			[]string{"provider", "status"},
		),
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "narrative_oracle_request_duration_seconds",
				Help:    "Histogram of oracle evaluation durations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		verdicts: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "narrative_oracle_verdicts_total",
				Help: "Scenario turns by verdict: continue, cleared or died.",
			},
			[]string{"provider", "verdict"},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

type instrumented struct {
	Client
	provider string
	metrics  *Metrics
}

// Instrument records every Evaluate call made through c.
func (m *Metrics) Instrument(c Client, provider string) Client {
	return &instrumented{Client: c, provider: provider, metrics: m}
}

func (i *instrumented) Evaluate(ctx context.Context, req models.EvaluationRequest) (*models.Evaluation, error) {
	start := time.Now()
	ev, err := i.Client.Evaluate(ctx, req)
	i.metrics.duration.WithLabelValues(i.provider).Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, models.ErrContractViolation):
		i.metrics.requests.WithLabelValues(i.provider, "contract_violation").Inc()
	case errors.Is(err, context.DeadlineExceeded):
		i.metrics.requests.WithLabelValues(i.provider, "timeout").Inc()
	case err != nil:
		i.metrics.requests.WithLabelValues(i.provider, "error").Inc()
	default:
		i.metrics.requests.WithLabelValues(i.provider, "success").Inc()
		i.metrics.verdicts.WithLabelValues(i.provider, verdict(ev)).Inc()
	}
	return ev, err
}

func verdict(ev *models.Evaluation) string {
	switch {
	case ev.GameOver:
		return "died"
	case ev.ScenarioOver:
		return "cleared"
	default:
		return "continue"
	}
}
