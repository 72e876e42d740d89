package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/lotka/internal/config"
	"github.com/aretw0/lotka/internal/logging"
	httpAdapter "github.com/aretw0/lotka/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/lotka/pkg/adapters/mcp"
	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// Serve runs the multi-session HTTP API until ctx is cancelled.
func Serve(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(levelFor(cfg.Debug))

	var serverOpts []httpAdapter.Option
	var hooks []domain.LifecycleHooks
	if cfg.HTTP.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		hooks = append(hooks, observability.NewMetrics(reg).Hooks())
		serverOpts = append(serverOpts, httpAdapter.WithRegistry(reg))
	}
	serverOpts = append(serverOpts, httpAdapter.WithLogger(logger), httpAdapter.WithSessionTTL(cfg.HTTP.SessionTTL))

	engine, err := createEngine(cfg, logger, hooks...)
	if err != nil {
		return err
	}
	defer closeEngine(logger, engine)

	api := httpAdapter.NewServer(engine, serverOpts...)
	go api.Sessions.RunJanitor(ctx, janitorInterval(cfg.HTTP.SessionTTL))

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Lotka server listening", "address", srv.Addr, "story", cfg.Story)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down", "timeout", ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		return nil
	}
}

// janitorInterval sweeps idle sessions a few times per TTL.
func janitorInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	return max(ttl/4, time.Second)
}

// ServeMCP exposes one reading session as an MCP server.
func ServeMCP(ctx context.Context, cfg *config.Config) error {
	// Stdout belongs to the protocol; logs go to stderr only.
	logger := logging.New(levelFor(cfg.Debug))

	engine, err := createEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer closeEngine(logger, engine)

	session, err := engine.Start(ctx)
	if err != nil {
		logger.Error("story failed to load", "story", cfg.Story, "err", err)
	}

	server := mcpAdapter.NewServer(session, engine, logger)
	if cfg.MCP.Transport == "sse" {
		return server.ServeSSE(ctx, cfg.MCP.Port)
	}
	return server.ServeStdio()
}
