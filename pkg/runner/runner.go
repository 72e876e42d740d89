package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/ports"
)

// HelpText lists the line commands.
const HelpText = `Commands:
  <n>        follow choice n
  b, back    return to the previous scene
  r, restart ask to restart from the beginning
  q, quit    leave the story`

// Runner drives one reading session over line-oriented IO.
// This allows for easy testing and integration with pipes and terminals alike.
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler over Input/Output is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// NewRunner creates a new Runner with default Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run presents the current view and applies reader commands until the reader
// quits, input ends or ctx is cancelled. End of input is a normal exit.
func (r *Runner) Run(ctx context.Context, nav ports.Navigator) error {
	handler := r.resolveHandler()

	view := nav.View()
	if err := handler.Output(ctx, view); err != nil {
		return fmt.Errorf("output error: %w", err)
	}

	for {
		line, err := handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.Logger.Debug("input closed", "scene_id", view.SceneID)
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("input error: %w", err)
		}

		cmd, err := ParseCommand(line, view.RestartPrompt)
		if err != nil {
			r.Logger.Debug("rejected input", "err", err)
			if err := handler.Notify(ctx, "Unknown command. Type ? for help."); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
			continue
		}

		next, changed, msg := r.apply(nav, view, cmd)
		if cmd.Kind == CommandQuit {
			r.Logger.Debug("reader quit", "scene_id", view.SceneID)
			return nil
		}
		if msg != "" {
			if err := handler.Notify(ctx, msg); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
		if !changed {
			continue
		}

		view = next
		if err := handler.Output(ctx, view); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
}

// apply runs one command. It reports the resulting view, whether it must be
// presented and an optional notice for the reader.
func (r *Runner) apply(nav ports.Navigator, view domain.View, cmd Command) (domain.View, bool, string) {
	switch cmd.Kind {
	case CommandChoose:
		if cmd.Index >= len(view.Choices) {
			return view, false, fmt.Sprintf("There is no choice %d.", cmd.Index+1)
		}
		return nav.Choose(cmd.Index), true, ""
	case CommandBack:
		if !view.BackEnabled {
			return view, false, "There is nothing to go back to."
		}
		return nav.Back(), true, ""
	case CommandRestart:
		return nav.OpenRestart(), true, ""
	case CommandConfirm:
		return nav.ConfirmRestart(), true, ""
	case CommandCancel:
		return nav.CancelRestart(), true, ""
	case CommandHelp:
		return view, false, HelpText
	}
	return view, false, ""
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}
	th := NewTextHandler(r.Input, r.Output)
	th.Renderer = r.Renderer
	th.Hints = !r.Headless
	if !r.Headless && r.Output != nil {
		fmt.Fprintln(r.Output, "--- Lotka (line runner) ---")
	}
	r.Handler = th
	return th
}
