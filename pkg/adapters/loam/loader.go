// Package loam loads a story from a directory with one Markdown file per scene.
//
// The frontmatter carries the title and the choices, the body is the scene text:
//
//	---
//	title: The Forest
//	choices:
//	  - text: Follow the path
//	    next: path
//	---
//	Lotka walks into the forest. It is quiet.
//
// The scene ID is the "id" field or, when absent, the file path without extension.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/schema"
)

// DefaultStartID is the start scene used when none is configured.
const DefaultStartID = "start"

// Loader adapts the Loam library to the StoryLoader interface.
type Loader struct {
	Repo    *loam.TypedRepository[SceneMetadata]
	StartID string
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[SceneMetadata], startID string) *Loader {
	if startID == "" {
		startID = DefaultStartID
	}
	return &Loader{
		Repo:    repo,
		StartID: startID,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir, startID string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numeric frontmatter consistent across formats.
	// The engine never writes scenes, so the repository is opened read-only.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[SceneMetadata](repo), startID), nil
}

// Load lists every scene document and assembles the story.
func (l *Loader) Load(ctx context.Context) (*domain.Story, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, &domain.LoadError{Source: "loam", Err: fmt.Errorf("%w: loam list failed: %v", domain.ErrLoad, err)}
	}

	seen := make(map[string]string)
	scenes := make(map[string]any, len(docs))

	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, &domain.LoadError{
				Source: "loam",
				Err:    fmt.Errorf("%w: scene '%s' is defined in both '%s' and '%s'", domain.ErrStructure, id, existingPath, doc.ID),
			}
		}
		seen[id] = doc.ID

		choices := make([]any, 0, len(doc.Data.Choices))
		for _, c := range doc.Data.Choices {
			choices = append(choices, map[string]any{
				"text":   c.Text,
				"nextId": c.target(),
			})
		}

		scenes[id] = map[string]any{
			"title":   doc.Data.Title,
			"text":    strings.TrimSpace(doc.Content),
			"choices": choices,
		}
	}

	story, err := schema.Decode(map[string]any{
		schema.KeyStartID: l.StartID,
		schema.KeyScenes:  scenes,
	})
	if err != nil {
		return nil, &domain.LoadError{Source: "loam", Err: err}
	}
	return story, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
