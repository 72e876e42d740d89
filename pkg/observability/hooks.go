package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/lotka/pkg/domain"
)

// LoggingHooks logs every transition at debug level, unresolved scenes and load
// failures at warn.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	debug := func(ctx context.Context, e *domain.SceneEvent) {
		logger.DebugContext(ctx, string(e.Type), "scene_id", e.SceneID, "depth", e.Depth)
	}
	warn := func(ctx context.Context, e *domain.SceneEvent) {
		logger.WarnContext(ctx, string(e.Type), "scene_id", e.SceneID, "depth", e.Depth, "err", e.Err)
	}
	return domain.LifecycleHooks{
		OnSceneEnter:      debug,
		OnSceneUnresolved: warn,
		OnBack:            debug,
		OnRestart:         debug,
		OnLoadFailed:      warn,
	}
}

// Chain merges hook sets. Each event is delivered to every set in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	pick := func(get func(domain.LifecycleHooks) func(context.Context, *domain.SceneEvent)) func(context.Context, *domain.SceneEvent) {
		var fns []func(context.Context, *domain.SceneEvent)
		for _, s := range sets {
			if fn := get(s); fn != nil {
				fns = append(fns, fn)
			}
		}
		if len(fns) == 0 {
			return nil
		}
		return func(ctx context.Context, e *domain.SceneEvent) {
			for _, fn := range fns {
				fn(ctx, e)
			}
		}
	}

	return domain.LifecycleHooks{
		OnSceneEnter:      pick(func(h domain.LifecycleHooks) func(context.Context, *domain.SceneEvent) { return h.OnSceneEnter }),
		OnSceneUnresolved: pick(func(h domain.LifecycleHooks) func(context.Context, *domain.SceneEvent) { return h.OnSceneUnresolved }),
		OnBack:            pick(func(h domain.LifecycleHooks) func(context.Context, *domain.SceneEvent) { return h.OnBack }),
		OnRestart:         pick(func(h domain.LifecycleHooks) func(context.Context, *domain.SceneEvent) { return h.OnRestart }),
		OnLoadFailed:      pick(func(h domain.LifecycleHooks) func(context.Context, *domain.SceneEvent) { return h.OnLoadFailed }),
	}
}
