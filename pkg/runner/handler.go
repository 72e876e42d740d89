package runner

import (
	"context"

	"github.com/aretw0/lotka/pkg/domain"
)

// IOHandler defines the strategy for interacting with the reader.
// This allows switching between Text (CLI) and JSON (structured) modes.
type IOHandler interface {
	// Output presents a view.
	Output(ctx context.Context, view domain.View) error

	// Notify presents a short out-of-band message (help, rejected input).
	Notify(ctx context.Context, msg string) error

	// Input reads one line of reader input.
	Input(ctx context.Context) (string, error)
}

// ContentRenderer transforms markdown before it is written.
// This allows for terminal rendering (markdown to ANSI) without coupling the package.
type ContentRenderer func(string) (string, error)
