package domain

import "sort"

// Choice is a labelled transition from one scene to another.
type Choice struct {
	Text   string `json:"text" yaml:"text" mapstructure:"text"`
	NextID string `json:"nextId" yaml:"nextId" mapstructure:"nextId"`
}

// Scene is one unit of narrative content.
// A scene without choices is terminal.
type Scene struct {
	Title   string   `json:"title" yaml:"title" mapstructure:"title"`
	Text    string   `json:"text" yaml:"text" mapstructure:"text"`
	Choices []Choice `json:"choices" yaml:"choices" mapstructure:"choices"`
}

// Terminal reports whether the scene ends the narrative.
func (s Scene) Terminal() bool {
	return len(s.Choices) == 0
}

// Story is the loaded story document. It is treated as immutable once loaded.
type Story struct {
	StartID string           `json:"startId" yaml:"startId" mapstructure:"startId"`
	Scenes  map[string]Scene `json:"scenes" yaml:"scenes" mapstructure:"scenes"`
}

// Resolve looks up a scene by ID.
// The boolean is false when the ID is not part of the story; it never panics,
// not even on a nil story.
func (s *Story) Resolve(id string) (Scene, bool) {
	if s == nil || s.Scenes == nil {
		return Scene{}, false
	}
	scene, ok := s.Scenes[id]
	return scene, ok
}

// SceneIDs returns every scene ID in deterministic order.
func (s *Story) SceneIDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.Scenes))
	for id := range s.Scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
