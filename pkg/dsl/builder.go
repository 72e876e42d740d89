package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/lotka/pkg/adapters/memory"
	"github.com/aretw0/lotka/pkg/domain"
)

// ErrEmptyStory is returned by Build when no scene was added.
var ErrEmptyStory = errors.New("story has no scenes")

// Builder manages the story construction.
type Builder struct {
	start  string
	scenes map[string]*SceneBuilder
}

// New creates a new story builder.
func New() *Builder {
	return &Builder{
		scenes: make(map[string]*SceneBuilder),
	}
}

// Start sets the start scene. By default the first added scene is the start.
func (b *Builder) Start(id string) *Builder {
	b.start = id
	return b
}

// Add creates a new scene in the story.
// If the scene already exists, it returns the existing builder.
func (b *Builder) Add(id string) *SceneBuilder {
	if sb, ok := b.scenes[id]; ok {
		return sb
	}
	if b.start == "" {
		b.start = id
	}
	sb := &SceneBuilder{builder: b}
	b.scenes[id] = sb
	return sb
}

// Story returns the constructed story without wrapping it in a loader.
func (b *Builder) Story() (*domain.Story, error) {
	if len(b.scenes) == 0 {
		return nil, ErrEmptyStory
	}
	if _, ok := b.scenes[b.start]; !ok {
		return nil, fmt.Errorf("%w: start scene %q was never added", domain.ErrStructure, b.start)
	}

	story := &domain.Story{
		StartID: b.start,
		Scenes:  make(map[string]domain.Scene, len(b.scenes)),
	}
	for id, sb := range b.scenes {
		scene := sb.scene
		scene.Choices = append([]domain.Choice(nil), sb.scene.Choices...)
		story.Scenes[id] = scene
	}
	return story, nil
}

// Build compiles the story into a memory loader.
func (b *Builder) Build() (*memory.Loader, error) {
	story, err := b.Story()
	if err != nil {
		return nil, err
	}

	loader, err := memory.NewFromStory(story)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
