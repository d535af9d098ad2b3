// Package metrics exposes Prometheus collectors for machine runs.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mfeilner/unimach/pkg/domain"
)

// Metrics bundles the run collectors. Wire them into an engine with
// Hooks() and report finished runs with ObserveRun.
type Metrics struct {
	RunsTotal      *prometheus.CounterVec
	StepsTotal     prometheus.Counter
	RunDuration    prometheus.Histogram
	FallbacksTotal prometheus.Counter
}

// New creates and registers the collectors. A nil registerer falls back
// to the default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unimach_runs_total",
				Help: "Total number of machine runs by final status",
			},
			[]string{"status"},
		),
		StepsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "unimach_steps_total",
				Help: "Total number of transitions applied across all runs",
			},
		),
		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "unimach_run_duration_seconds",
				Help: "Duration of machine runs",
			},
		),
		FallbacksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "unimach_transition_fallbacks_total",
				Help: "Times a run fell back to the first rule because no transition matched",
			},
		),
	}
	reg.MustRegister(m.RunsTotal, m.StepsTotal, m.RunDuration, m.FallbacksTotal)
	return m
}

// Hooks returns lifecycle hooks that feed the step-level collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.StepsTotal.Inc()
		},
		OnFallback: func(ctx context.Context, e *domain.FallbackEvent) {
			m.FallbacksTotal.Inc()
		},
	}
}

// ObserveRun records the outcome of one run. Failed runs never emit a
// halt hook, so callers report here instead.
func (m *Metrics) ObserveRun(status domain.RunStatus, duration time.Duration) {
	m.RunsTotal.WithLabelValues(string(status)).Inc()
	m.RunDuration.Observe(duration.Seconds())
}
