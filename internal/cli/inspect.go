package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/lotka/internal/config"
	"github.com/aretw0/lotka/internal/logging"
	"github.com/aretw0/lotka/internal/presentation/graph"
	"github.com/aretw0/lotka/internal/validator"
)

func levelFor(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Graph writes the Mermaid flowchart of the configured story to w.
func Graph(ctx context.Context, cfg *config.Config, w io.Writer) error {
	logger := logging.ForDebug(cfg.Debug)
	engine, err := createEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer closeEngine(logger, engine)

	story, err := engine.Inspect(ctx)
	if err != nil {
		return fmt.Errorf("error inspecting story: %w", err)
	}

	_, err = io.WriteString(w, graph.GenerateMermaid(story, nil))
	return err
}

// Validate checks the configured story and writes the report to w.
// With strict set, warnings fail the validation too.
func Validate(ctx context.Context, cfg *config.Config, strict bool, w io.Writer) error {
	logger := logging.ForDebug(cfg.Debug)
	engine, err := createEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer closeEngine(logger, engine)

	story, err := engine.Inspect(ctx)
	if err != nil {
		return fmt.Errorf("story could not be loaded: %w", err)
	}

	report := validator.ValidateStory(story)
	for _, issue := range report.Issues {
		fmt.Fprintln(w, issue.String())
	}
	fmt.Fprintf(w, "%d of %d scenes reachable from '%s'\n", report.Reachable, report.Total, story.StartID)

	return report.Err(strict)
}
