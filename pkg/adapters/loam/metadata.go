package loam

// SceneMetadata is the frontmatter of one scene file.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type SceneMetadata struct {
	ID      string           `json:"id" mapstructure:"id"`
	Title   string           `json:"title" mapstructure:"title"`
	Choices []ChoiceMetadata `json:"choices" mapstructure:"choices"`
}

// ChoiceMetadata is one entry of the choices list.
// Both "next" and the document-style "nextId" are accepted.
type ChoiceMetadata struct {
	Text   string `json:"text" mapstructure:"text"`
	Next   string `json:"next" mapstructure:"next"`
	NextID string `json:"nextId" mapstructure:"nextId"`
}

func (c ChoiceMetadata) target() string {
	if c.Next != "" {
		return c.Next
	}
	return c.NextID
}
