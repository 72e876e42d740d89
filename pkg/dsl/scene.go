package dsl

import "github.com/aretw0/lotka/pkg/domain"

// SceneBuilder provides a fluent API for configuring a scene.
type SceneBuilder struct {
	scene   domain.Scene
	builder *Builder
}

// Title sets the scene heading.
func (s *SceneBuilder) Title(title string) *SceneBuilder {
	s.scene.Title = title
	return s
}

// Text sets the scene prose. Paragraphs are derived from it when rendered.
func (s *SceneBuilder) Text(text string) *SceneBuilder {
	s.scene.Text = text
	return s
}

// Choice appends a labelled transition to the scene.
func (s *SceneBuilder) Choice(label, next string) *SceneBuilder {
	s.scene.Choices = append(s.scene.Choices, domain.Choice{Text: label, NextID: next})
	return s
}

// Add returns to the story builder to define the next scene.
func (s *SceneBuilder) Add(id string) *SceneBuilder {
	return s.builder.Add(id)
}
