package observability

import (
	"context"

	"github.com/aretw0/lotka/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lotka"

// Metrics holds the navigation counters of a process.
type Metrics struct {
	SceneRenders     *prometheus.CounterVec
	UnresolvedScenes prometheus.Counter
	Backs            prometheus.Counter
	Restarts         prometheus.Counter
	LoadFailures     prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg.
// A nil reg leaves them unregistered, which is convenient in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SceneRenders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scene_renders_total",
				Help:      "Total number of scenes rendered, by scene id.",
			},
			[]string{"scene_id"},
		),
		UnresolvedScenes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unresolved_scenes_total",
			Help:      "Total number of navigations to a scene id missing from the story.",
		}),
		Backs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "back_total",
			Help:      "Total number of back navigations.",
		}),
		Restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restarts_total",
			Help:      "Total number of confirmed restarts.",
		}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_failures_total",
			Help:      "Total number of sessions whose story failed to load.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.SceneRenders, m.UnresolvedScenes, m.Backs, m.Restarts, m.LoadFailures)
	}
	return m
}

// Hooks returns lifecycle hooks that update the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSceneEnter: func(_ context.Context, e *domain.SceneEvent) {
			m.SceneRenders.WithLabelValues(e.SceneID).Inc()
		},
		OnSceneUnresolved: func(context.Context, *domain.SceneEvent) {
			m.UnresolvedScenes.Inc()
		},
		OnBack: func(context.Context, *domain.SceneEvent) {
			m.Backs.Inc()
		},
		OnRestart: func(context.Context, *domain.SceneEvent) {
			m.Restarts.Inc()
		},
		OnLoadFailed: func(context.Context, *domain.SceneEvent) {
			m.LoadFailures.Inc()
		},
	}
}
