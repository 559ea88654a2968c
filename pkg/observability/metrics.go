package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/espalier/pkg/domain"
)

// Metrics collects pipeline execution metrics.
type Metrics struct {
	hookDuration *prometheus.HistogramVec
	hookErrors   *prometheus.CounterVec
	phaseAborts  *prometheus.CounterVec
	hooksRun     *prometheus.CounterVec
}

// NewMetrics creates the collectors. Call Register to attach them to a
// Prometheus registry.
func NewMetrics() *Metrics {
	return &Metrics{
		hookDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "espalier",
			Name:      "hook_duration_seconds",
			Help:      "Wall time of individual hook invocations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"phase", "hook_id"}),
		hookErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "espalier",
			Name:      "hook_errors_total",
			Help:      "Hook invocations that returned an error.",
		}, []string{"phase", "hook_id"}),
		phaseAborts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "espalier",
			Name:      "phase_aborts_total",
			Help:      "Phases cut short by a fail-fast error.",
		}, []string{"phase"}),
		hooksRun: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "espalier",
			Name:      "hooks_run_total",
			Help:      "Hook invocations, successful or not.",
		}, []string{"phase"}),
	}
}

// Register attaches all collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.hookDuration, m.hookErrors, m.phaseAborts, m.hooksRun} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Hooks returns lifecycle callbacks that feed the collectors. The returned
// value can be passed directly to a runner or merged by the caller.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnHookEnd: func(ctx context.Context, ev *domain.HookEvent) {
			phase := ev.Phase.String()
			m.hooksRun.WithLabelValues(phase).Inc()
			m.hookDuration.WithLabelValues(phase, ev.HookID).Observe(ev.Duration.Seconds())
			if ev.Err != nil {
				m.hookErrors.WithLabelValues(phase, ev.HookID).Inc()
			}
		},
		OnPhaseEnd: func(ctx context.Context, ev *domain.PhaseEvent) {
			if ev.Aborted {
				m.phaseAborts.WithLabelValues(ev.Phase.String()).Inc()
			}
		},
	}
}
