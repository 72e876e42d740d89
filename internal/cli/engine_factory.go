package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/lotka"
	"github.com/aretw0/lotka/internal/config"
	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/observability"
)

// createEngine initializes a Lotka engine with standard CLI conventions.
// extra hooks are chained after the debug logging hooks.
func createEngine(cfg *config.Config, logger *slog.Logger, extra ...domain.LifecycleHooks) (*lotka.Engine, error) {
	hooks := append([]domain.LifecycleHooks{}, extra...)
	if cfg.Debug {
		hooks = append([]domain.LifecycleHooks{observability.LoggingHooks(logger)}, hooks...)
	}

	engine, err := lotka.New(cfg.Story,
		lotka.WithLogger(logger),
		lotka.WithLifecycleHooks(observability.Chain(hooks...)),
		lotka.WithStartScene(cfg.Start),
		lotka.WithRedisAuth(cfg.Redis.Password, cfg.Redis.DB),
		lotka.WithMessages(lotka.Messages{
			Ended:        cfg.Messages.Ended,
			UnknownScene: cfg.Messages.UnknownScene,
			LoadFailed:   cfg.Messages.LoadFailed,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// closeEngine releases the story source, logging instead of failing the command.
func closeEngine(logger *slog.Logger, engine *lotka.Engine) {
	if err := engine.Close(); err != nil {
		logger.Warn("failed to close story source", "err", err)
	}
}
