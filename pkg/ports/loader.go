package ports

import (
	"context"

	"github.com/aretw0/lotka/pkg/domain"
)

// StoryLoader fetches the story document.
// Load is called once per session start. Implementations report transport and
// parse failures as domain.ErrLoad and missing fields as domain.ErrStructure.
type StoryLoader interface {
	Load(ctx context.Context) (*domain.Story, error)
}

// LoaderFunc adapts a function to StoryLoader.
type LoaderFunc func(ctx context.Context) (*domain.Story, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) (*domain.Story, error) {
	return f(ctx)
}
