package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/lotka"
	"github.com/aretw0/lotka/internal/logging"
	"github.com/aretw0/lotka/internal/presentation/tui"
	"github.com/aretw0/lotka/pkg/runner"
)

// RunSession reads one story in the terminal.
//
// On an interactive terminal the full-screen reader is used; otherwise, or
// when asked for, the line runner reads commands from stdin.
func RunSession(opts RunOptions) error {
	logger := logging.ForDebug(opts.Config.Debug)

	engine, err := createEngine(opts.Config, logger)
	if err != nil {
		return err
	}
	defer closeEngine(logger, engine)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	// A failed load still yields a session showing the failure.
	session, startErr := engine.Start(sigCtx)
	if startErr != nil {
		logger.Error("story failed to load", "story", opts.Config.Story, "err", startErr)
	}

	if opts.useTUI(isInteractive()) {
		runErr := tui.Run(session, tui.WithMarkdown(tui.NewRenderer(terminalWidth())))
		return finish(logger, session, runErr, startErr)
	}

	r := runner.NewRunner(createRunnerOptions(logger, opts, os.Stdin, os.Stdout)...)
	if !opts.Headless && !opts.JSON {
		tui.PrintBanner(os.Stdout)
	}
	runErr := r.Run(sigCtx, session)
	if !opts.Headless && !opts.JSON {
		printSystemMessage(os.Stdout, "Stopped at '%s'.", session.State().CurrentNodeID)
	}
	return finish(logger, session, runErr, startErr)
}

// finish reports the outcome. A story that never loaded is a failed run even
// when the reader left cleanly.
func finish(logger *slog.Logger, session *lotka.Session, runErr, startErr error) error {
	logger.Debug("session finished", "scene_id", session.State().CurrentNodeID, "history", len(session.State().History))
	if err := handleExecutionError(runErr); err != nil {
		return err
	}
	if startErr != nil {
		return fmt.Errorf("story could not be loaded: %w", startErr)
	}
	return nil
}

// createRunnerOptions prepares the functional options for the line runner.
func createRunnerOptions(logger *slog.Logger, opts RunOptions, in io.Reader, out io.Writer) []runner.Option {
	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithHeadless(opts.Headless),
		runner.WithIO(in, out),
	}

	switch {
	case opts.JSON || opts.Config.Format == "json":
		runnerOpts = append(runnerOpts, runner.WithInputHandler(runner.NewJSONHandler(in, out)))
	case !opts.Headless && isInteractive():
		runnerOpts = append(runnerOpts, runner.WithRenderer(tui.NewRenderer(terminalWidth())))
	}
	return runnerOpts
}
