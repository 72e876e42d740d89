package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/schema"
)

// DefaultPath is the story file looked up when no path is configured.
const DefaultPath = "story.json"

// Loader implements ports.StoryLoader by reading a JSON or YAML file.
type Loader struct {
	Path string
}

// New creates a new Loader for path.
// If path is empty, it defaults to DefaultPath.
func New(path string) *Loader {
	if path == "" {
		path = DefaultPath
	}
	return &Loader{Path: path}
}

// Load reads and parses the file.
func (l *Loader) Load(ctx context.Context) (*domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, l.fail(err)
	}

	data, err := os.ReadFile(filepath.Clean(l.Path))
	if err != nil {
		return nil, l.fail(err)
	}

	story, err := schema.Parse(data)
	if err != nil {
		return nil, &domain.LoadError{Source: l.Path, Err: err}
	}
	return story, nil
}

func (l *Loader) fail(err error) error {
	return &domain.LoadError{Source: l.Path, Err: fmt.Errorf("%w: %v", domain.ErrLoad, err)}
}
