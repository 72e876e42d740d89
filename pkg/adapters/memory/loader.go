package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/schema"
)

// Loader implements ports.StoryLoader over a document held in memory.
type Loader struct {
	raw map[string]any
}

// NewLoader creates a Loader from a generic document map, as decoded from JSON or YAML.
func NewLoader(raw map[string]any) *Loader {
	return &Loader{raw: raw}
}

// NewFromStory creates a Loader from a domain story.
// This handles serialization automatically, improving DX for tests.
func NewFromStory(story *domain.Story) (*Loader, error) {
	if story == nil {
		return nil, fmt.Errorf("story is nil")
	}
	bytes, err := json.Marshal(story)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal story: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal story: %w", err)
	}
	return &Loader{raw: raw}, nil
}

// Load decodes the held document. Every call yields a fresh story value.
func (l *Loader) Load(ctx context.Context) (*domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.LoadError{Source: "memory", Err: fmt.Errorf("%w: %v", domain.ErrLoad, err)}
	}
	return schema.Decode(l.raw)
}
