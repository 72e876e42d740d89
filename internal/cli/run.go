package cli

import (
	"github.com/aretw0/lotka/internal/config"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Config *config.Config
	// Headless disables the banner, the control hints and the full-screen reader.
	Headless bool
	// JSON switches the line runner to JSON lines; implies the line runner.
	JSON bool
	// Plain forces the line runner even on a terminal.
	Plain bool
}

// useTUI decides between the full-screen reader and the line runner.
func (o RunOptions) useTUI(interactive bool) bool {
	if o.Headless || o.JSON || o.Plain {
		return false
	}
	if o.Config != nil && o.Config.Format == "json" {
		return false
	}
	return interactive
}
